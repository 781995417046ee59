package handler

import (
	"context"
	"encoding/json"
	"errors"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/blaisecz/nightlog/internal/domain"
	"github.com/go-chi/chi/v5"
	"github.com/google/uuid"
)

func TestUserHandler_List(t *testing.T) {
	tests := []struct {
		name           string
		mockService    *MockUserService
		wantStatusCode int
		wantCount      int
	}{
		{
			name: "two users",
			mockService: &MockUserService{
				listFunc: func(ctx context.Context) ([]domain.User, error) {
					return []domain.User{
						{ID: uuid.New(), FirstName: "Ada", LastName: "Lovelace"},
						{ID: uuid.New(), FirstName: "Alan", LastName: "Turing"},
					}, nil
				},
			},
			wantStatusCode: http.StatusOK,
			wantCount:      2,
		},
		{
			name:           "no users",
			mockService:    &MockUserService{},
			wantStatusCode: http.StatusOK,
			wantCount:      0,
		},
		{
			name: "service error",
			mockService: &MockUserService{
				listFunc: func(ctx context.Context) ([]domain.User, error) {
					return nil, errors.New("db down")
				},
			},
			wantStatusCode: http.StatusInternalServerError,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			handler := NewUserHandler(tt.mockService)

			req := httptest.NewRequest(http.MethodGet, "/v1/users", nil)
			rec := httptest.NewRecorder()

			handler.List(rec, req)

			if rec.Code != tt.wantStatusCode {
				t.Fatalf("List() status = %d, want %d, body: %s", rec.Code, tt.wantStatusCode, rec.Body.String())
			}
			if tt.wantStatusCode != http.StatusOK {
				return
			}
			var users []domain.UserResponse
			if err := json.NewDecoder(rec.Body).Decode(&users); err != nil {
				t.Fatalf("decode: %v", err)
			}
			if len(users) != tt.wantCount {
				t.Errorf("List() returned %d users, want %d", len(users), tt.wantCount)
			}
		})
	}
}

func TestUserHandler_GetByID(t *testing.T) {
	existingUserID := uuid.New()
	existingUser := &domain.User{
		ID:        existingUserID,
		FirstName: "Ada",
		LastName:  "Lovelace",
	}

	tests := []struct {
		name           string
		userID         string
		mockService    *MockUserService
		wantStatusCode int
	}{
		{
			name:   "existing user",
			userID: existingUserID.String(),
			mockService: &MockUserService{
				getByIDFunc: func(ctx context.Context, id uuid.UUID) (*domain.User, error) {
					if id == existingUserID {
						return existingUser, nil
					}
					return nil, domain.ErrNotFound
				},
			},
			wantStatusCode: http.StatusOK,
		},
		{
			name:           "non-existing user",
			userID:         uuid.New().String(),
			mockService:    &MockUserService{},
			wantStatusCode: http.StatusNotFound,
		},
		{
			name:           "invalid uuid",
			userID:         "not-a-uuid",
			mockService:    &MockUserService{},
			wantStatusCode: http.StatusBadRequest,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			handler := NewUserHandler(tt.mockService)

			r := chi.NewRouter()
			r.Get("/v1/users/{userId}", handler.GetByID)

			req := httptest.NewRequest(http.MethodGet, "/v1/users/"+tt.userID, nil)
			rec := httptest.NewRecorder()

			r.ServeHTTP(rec, req)

			if rec.Code != tt.wantStatusCode {
				t.Errorf("GetByID() status = %d, want %d, body: %s", rec.Code, tt.wantStatusCode, rec.Body.String())
			}
		})
	}
}
