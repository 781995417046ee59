package handler

import (
	"errors"
	"net/http"

	"github.com/blaisecz/nightlog/internal/domain"
	"github.com/blaisecz/nightlog/internal/kpi"
	"github.com/blaisecz/nightlog/internal/llm"
	"github.com/blaisecz/nightlog/internal/service"
	"github.com/blaisecz/nightlog/pkg/problem"
	"github.com/go-chi/chi/v5"
	"github.com/google/uuid"
	"go.opentelemetry.io/otel/trace"
)

type KPIHandler struct {
	kpiService      service.KPIService
	insightsService service.InsightsService
}

func NewKPIHandler(kpiService service.KPIService, insightsService service.InsightsService) *KPIHandler {
	return &KPIHandler{
		kpiService:      kpiService,
		insightsService: insightsService,
	}
}

// window resolves the request's user and window, writing a problem on failure.
func (h *KPIHandler) window(w http.ResponseWriter, r *http.Request) (uuid.UUID, kpi.Window, bool) {
	userID, err := uuid.Parse(chi.URLParam(r, "userId"))
	if err != nil {
		problem.BadRequest("Invalid user ID format").Write(w)
		return uuid.Nil, kpi.Window{}, false
	}

	win, days, explicit, fieldErrors := parseWindowQuery(r.URL.Query())
	if fieldErrors != nil {
		problem.ValidationError("Invalid query parameters", fieldErrors).Write(w)
		return uuid.Nil, kpi.Window{}, false
	}
	if !explicit {
		win = h.kpiService.TrailingWindow(days)
	}
	return userID, win, true
}

// GetKPI handles GET /v1/users/{userId}/sleeps/kpi
// @Summary KPI comparison
// @Description Window KPIs (linear means, circular mean bed/wake times) against the previous window of the same length, with per-night outlier flags. Defaults to the configured trailing window ending today.
// @Tags kpi
// @Produce json
// @Param userId path string true "User UUID" format(uuid)
// @Param from query string false "First day of the window (YYYY-MM-DD), requires to" format(date) example(2025-05-01)
// @Param to query string false "Last day of the window (YYYY-MM-DD), requires from" format(date) example(2025-05-30)
// @Param days query integer false "Trailing window length ending today" minimum(1) maximum(366)
// @Success 200 {object} domain.KPIComparison
// @Failure 400 {object} problem.Problem "Invalid user ID or window"
// @Failure 404 {object} problem.Problem "User not found"
// @Failure 422 {object} problem.Problem "Validation error"
// @Failure 500 {object} problem.Problem "Server error"
// @Router /users/{userId}/sleeps/kpi [get]
func (h *KPIHandler) GetKPI(w http.ResponseWriter, r *http.Request) {
	userID, win, ok := h.window(w, r)
	if !ok {
		return
	}

	result, err := h.kpiService.Compare(r.Context(), userID, win)
	if err != nil {
		writeKPIError(w, err, "Failed to compute KPIs")
		return
	}

	writeJSON(w, http.StatusOK, result)
}

// GetInsights handles GET /v1/users/{userId}/sleeps/insights
// @Summary LLM insights over the KPI comparison
// @Description Same window selection as the KPI endpoint. Requires OPENAI_API_KEY.
// @Tags kpi
// @Produce json
// @Param userId path string true "User UUID" format(uuid)
// @Param from query string false "First day of the window (YYYY-MM-DD), requires to" format(date)
// @Param to query string false "Last day of the window (YYYY-MM-DD), requires from" format(date)
// @Param days query integer false "Trailing window length ending today" minimum(1) maximum(366)
// @Success 200 {object} domain.InsightsResponse
// @Failure 400 {object} problem.Problem
// @Failure 404 {object} problem.Problem
// @Failure 502 {object} problem.Problem "LLM request or response failed"
// @Failure 503 {object} problem.Problem "LLM not configured"
// @Router /users/{userId}/sleeps/insights [get]
func (h *KPIHandler) GetInsights(w http.ResponseWriter, r *http.Request) {
	userID, win, ok := h.window(w, r)
	if !ok {
		return
	}

	result, err := h.insightsService.Generate(r.Context(), userID, win)
	if err != nil {
		switch {
		case errors.Is(err, llm.ErrOpenAIUnavailable):
			problem.ServiceUnavailable("OpenAI service is not configured").Write(w)
		case errors.Is(err, llm.ErrOpenAIRequest), errors.Is(err, llm.ErrOpenAIResponse):
			problem.BadGateway("Failed to generate insights from LLM").Write(w)
		default:
			writeKPIError(w, err, "Failed to generate insights")
		}
		return
	}

	// Attach OTEL trace ID (if present) to response
	span := trace.SpanFromContext(r.Context())
	if span.SpanContext().IsValid() {
		result.TraceID = span.SpanContext().TraceID().String()
	}

	writeJSON(w, http.StatusOK, result)
}

func writeKPIError(w http.ResponseWriter, err error, fallback string) {
	switch {
	case errors.Is(err, domain.ErrNotFound):
		problem.NotFound("User not found").Write(w)
	case errors.Is(err, domain.ErrInvalidWindow):
		problem.BadRequest("from must not be after to").Write(w)
	default:
		problem.InternalError(fallback).Write(w)
	}
}
