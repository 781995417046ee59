package handler

import (
	"errors"
	"net/http"

	"github.com/blaisecz/nightlog/internal/domain"
	"github.com/blaisecz/nightlog/internal/service"
	"github.com/blaisecz/nightlog/pkg/problem"
	"github.com/go-chi/chi/v5"
	"github.com/google/uuid"
)

type SleepRecordHandler struct {
	service service.SleepRecordService
}

func NewSleepRecordHandler(service service.SleepRecordService) *SleepRecordHandler {
	return &SleepRecordHandler{service: service}
}

// List handles GET /v1/users/{userId}/sleeps
// @Summary List normalized nights
// @Description Paginated nights of a user. Optional score range and bedtime date range filters.
// @Tags sleeps
// @Produce json
// @Param userId path string true "User UUID" format(uuid) example(550e8400-e29b-41d4-a716-446655440000)
// @Param page query integer false "Page number" default(1) minimum(1)
// @Param limit query integer false "Results per page (1-1000)" default(50) minimum(1) maximum(1000)
// @Param sortBy query string false "Sort column" Enums(date, score, duration_min, bedtime_full) default(date)
// @Param sortOrder query string false "Sort direction" Enums(asc, desc) default(asc)
// @Param minScore query number false "Minimum score"
// @Param maxScore query number false "Maximum score"
// @Param dateFrom query string false "First bedtime day (YYYY-MM-DD)" format(date) example(2025-05-01)
// @Param dateTo query string false "Last bedtime day (YYYY-MM-DD)" format(date) example(2025-05-31)
// @Success 200 {object} domain.SleepRecordListResponse "Nights with pagination"
// @Failure 400 {object} problem.Problem "Invalid query parameters"
// @Failure 404 {object} problem.Problem "User not found"
// @Failure 422 {object} problem.Problem "Validation error"
// @Failure 500 {object} problem.Problem "Server error"
// @Router /users/{userId}/sleeps [get]
func (h *SleepRecordHandler) List(w http.ResponseWriter, r *http.Request) {
	userID, err := uuid.Parse(chi.URLParam(r, "userId"))
	if err != nil {
		problem.BadRequest("Invalid user ID format").Write(w)
		return
	}

	filter, fieldErrors := parseListQuery(r.URL.Query())
	if fieldErrors != nil {
		problem.ValidationError("Invalid query parameters", fieldErrors).Write(w)
		return
	}

	response, err := h.service.List(r.Context(), userID, filter)
	if err != nil {
		switch {
		case errors.Is(err, domain.ErrNotFound):
			problem.NotFound("User not found").Write(w)
		case errors.Is(err, domain.ErrInvalidInput):
			problem.BadRequest("minScore must not exceed maxScore").Write(w)
		case errors.Is(err, domain.ErrInvalidWindow):
			problem.BadRequest("dateFrom must not be after dateTo").Write(w)
		default:
			problem.InternalError("Failed to list sleep records").Write(w)
		}
		return
	}

	writeJSON(w, http.StatusOK, response)
}

// Get handles GET /v1/users/{userId}/sleeps/{sleepId}
// @Summary Get one night
// @Tags sleeps
// @Produce json
// @Param userId path string true "User UUID" format(uuid)
// @Param sleepId path string true "Sleep record UUID" format(uuid)
// @Success 200 {object} domain.SleepRecord
// @Failure 400 {object} problem.Problem
// @Failure 404 {object} problem.Problem
// @Failure 500 {object} problem.Problem
// @Router /users/{userId}/sleeps/{sleepId} [get]
func (h *SleepRecordHandler) Get(w http.ResponseWriter, r *http.Request) {
	userID, err := uuid.Parse(chi.URLParam(r, "userId"))
	if err != nil {
		problem.BadRequest("Invalid user ID format").Write(w)
		return
	}
	sleepID, err := uuid.Parse(chi.URLParam(r, "sleepId"))
	if err != nil {
		problem.BadRequest("Invalid sleep ID format").Write(w)
		return
	}

	record, err := h.service.Get(r.Context(), userID, sleepID)
	if err != nil {
		if errors.Is(err, domain.ErrNotFound) {
			problem.NotFound("Sleep record not found").Write(w)
			return
		}
		problem.InternalError("Failed to get sleep record").Write(w)
		return
	}

	writeJSON(w, http.StatusOK, record)
}
