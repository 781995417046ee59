package api

import (
	"context"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"

	"github.com/blaisecz/nightlog/internal/api/handler"
	"github.com/blaisecz/nightlog/internal/domain"
	"github.com/blaisecz/nightlog/internal/metrics"
	"github.com/google/uuid"
)

type stubUsers struct{}

func (stubUsers) List(ctx context.Context) ([]domain.User, error) {
	return []domain.User{{ID: uuid.New(), FirstName: "Ada", LastName: "Lovelace"}}, nil
}

func (stubUsers) GetByID(ctx context.Context, id uuid.UUID) (*domain.User, error) {
	return nil, domain.ErrNotFound
}

func newTestRouter() http.Handler {
	m := metrics.New(nil)
	return NewRouter(handler.NewUserHandler(stubUsers{}), nil, nil, m).Setup()
}

func TestRouter_Health(t *testing.T) {
	rec := httptest.NewRecorder()
	newTestRouter().ServeHTTP(rec, httptest.NewRequest(http.MethodGet, "/health", nil))

	if rec.Code != http.StatusOK {
		t.Fatalf("status = %d, want 200", rec.Code)
	}
	if !strings.Contains(rec.Body.String(), `"status":"ok"`) {
		t.Fatalf("unexpected body: %s", rec.Body.String())
	}
}

func TestRouter_MetricsCountsRoutes(t *testing.T) {
	router := newTestRouter()

	router.ServeHTTP(httptest.NewRecorder(), httptest.NewRequest(http.MethodGet, "/v1/users", nil))
	router.ServeHTTP(httptest.NewRecorder(), httptest.NewRequest(http.MethodGet, "/v1/users/"+uuid.NewString(), nil))

	rec := httptest.NewRecorder()
	router.ServeHTTP(rec, httptest.NewRequest(http.MethodGet, "/metrics", nil))
	body := rec.Body.String()

	if !strings.Contains(body, `nightlog_http_requests_total{route="/v1/users`) || !strings.Contains(body, `status="200"} 1`) {
		t.Errorf("list route not counted:\n%s", body)
	}
	if !strings.Contains(body, `nightlog_http_requests_total{route="/v1/users/{userId}",status="404"} 1`) {
		t.Errorf("user route not counted:\n%s", body)
	}
}

func TestRouter_SwaggerDoc(t *testing.T) {
	rec := httptest.NewRecorder()
	newTestRouter().ServeHTTP(rec, httptest.NewRequest(http.MethodGet, "/swagger/doc.json", nil))

	if rec.Code != http.StatusOK {
		t.Fatalf("status = %d, want 200", rec.Code)
	}
	if !strings.Contains(rec.Body.String(), "/users/{userId}/sleeps/kpi") {
		t.Fatalf("doc.json missing kpi path")
	}
}
