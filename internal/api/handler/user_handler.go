package handler

import (
	"encoding/json"
	"errors"
	"net/http"

	"github.com/blaisecz/nightlog/internal/domain"
	"github.com/blaisecz/nightlog/internal/service"
	"github.com/blaisecz/nightlog/pkg/problem"
	"github.com/go-chi/chi/v5"
	"github.com/google/uuid"
)

type UserHandler struct {
	service service.UserService
}

func NewUserHandler(service service.UserService) *UserHandler {
	return &UserHandler{service: service}
}

// List handles GET /v1/users
// @Summary List users
// @Description List every user that has loaded sleep data
// @Tags users
// @Produce json
// @Success 200 {array} domain.UserResponse
// @Failure 500 {object} problem.Problem
// @Router /users [get]
func (h *UserHandler) List(w http.ResponseWriter, r *http.Request) {
	users, err := h.service.List(r.Context())
	if err != nil {
		problem.InternalError("Failed to list users").Write(w)
		return
	}

	response := make([]domain.UserResponse, len(users))
	for i := range users {
		response[i] = users[i].ToResponse()
	}

	writeJSON(w, http.StatusOK, response)
}

// GetByID handles GET /v1/users/{userId}
// @Summary Get user by ID
// @Description Get a user's details by their UUID
// @Tags users
// @Produce json
// @Param userId path string true "User ID" format(uuid)
// @Success 200 {object} domain.UserResponse
// @Failure 400 {object} problem.Problem
// @Failure 404 {object} problem.Problem
// @Failure 500 {object} problem.Problem
// @Router /users/{userId} [get]
func (h *UserHandler) GetByID(w http.ResponseWriter, r *http.Request) {
	userID, err := uuid.Parse(chi.URLParam(r, "userId"))
	if err != nil {
		problem.BadRequest("Invalid user ID format").Write(w)
		return
	}

	user, err := h.service.GetByID(r.Context(), userID)
	if err != nil {
		if errors.Is(err, domain.ErrNotFound) {
			problem.NotFound("User not found").Write(w)
			return
		}
		problem.InternalError("Failed to get user").Write(w)
		return
	}

	writeJSON(w, http.StatusOK, user.ToResponse())
}

func writeJSON(w http.ResponseWriter, status int, v any) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	json.NewEncoder(w).Encode(v)
}
