package api

import (
	"encoding/json"
	"net/http"

	_ "github.com/blaisecz/nightlog/docs"
	"github.com/blaisecz/nightlog/internal/api/handler"
	"github.com/blaisecz/nightlog/internal/api/middleware"
	"github.com/blaisecz/nightlog/internal/metrics"
	"github.com/go-chi/chi/v5"
	httpSwagger "github.com/swaggo/http-swagger/v2"
)

type Router struct {
	userHandler  *handler.UserHandler
	sleepHandler *handler.SleepRecordHandler
	kpiHandler   *handler.KPIHandler
	metrics      *metrics.Metrics
}

func NewRouter(
	userHandler *handler.UserHandler,
	sleepHandler *handler.SleepRecordHandler,
	kpiHandler *handler.KPIHandler,
	m *metrics.Metrics,
) *Router {
	return &Router{
		userHandler:  userHandler,
		sleepHandler: sleepHandler,
		kpiHandler:   kpiHandler,
		metrics:      m,
	}
}

func (rt *Router) Setup() http.Handler {
	r := chi.NewRouter()

	// Middleware
	r.Use(middleware.Recovery)
	r.Use(middleware.Logger)
	r.Use(middleware.Tracing)
	r.Use(rt.metrics.Middleware)

	// Health check
	r.Get("/health", func(w http.ResponseWriter, r *http.Request) {
		w.Header().Set("Content-Type", "application/json")
		json.NewEncoder(w).Encode(map[string]string{"status": "ok"})
	})

	// Prometheus scrape endpoint
	r.Handle("/metrics", rt.metrics.Handler())

	// Swagger documentation
	r.Get("/swagger/*", httpSwagger.Handler(
		httpSwagger.URL("/swagger/doc.json"),
		httpSwagger.DeepLinking(true),
		httpSwagger.DocExpansion("list"),
		httpSwagger.DomID("swagger-ui"),
	))

	// API v1 routes
	r.Route("/v1", func(r chi.Router) {
		r.Route("/users", func(r chi.Router) {
			r.Get("/", rt.userHandler.List)
			r.Get("/{userId}", rt.userHandler.GetByID)

			// Normalized nights and their KPIs (nested under users)
			r.Route("/{userId}/sleeps", func(r chi.Router) {
				r.Get("/", rt.sleepHandler.List)
				r.Get("/kpi", rt.kpiHandler.GetKPI)
				r.Get("/insights", rt.kpiHandler.GetInsights)
				r.Get("/{sleepId}", rt.sleepHandler.Get)
			})
		})
	})

	return r
}
