// Nightlog API
//
// REST API over normalized sleep tracker exports with window KPIs.
//
//	@title			Nightlog API
//	@version		1.0
//	@description	Browse normalized nights, compare KPI windows and request LLM insights.
//
//	@BasePath	/v1
//
//	@tag.name			users
//	@tag.description	Users created by ingestion
//
//	@tag.name			sleeps
//	@tag.description	Normalized nights
//
//	@tag.name			kpi
//	@tag.description	Window statistics and insights
package main

import (
	"context"
	"errors"
	"log"
	"net/http"
	"os/signal"
	"syscall"
	"time"

	"github.com/blaisecz/nightlog/internal/api"
	"github.com/blaisecz/nightlog/internal/api/handler"
	"github.com/blaisecz/nightlog/internal/cache"
	"github.com/blaisecz/nightlog/internal/config"
	"github.com/blaisecz/nightlog/internal/domain"
	"github.com/blaisecz/nightlog/internal/kpi"
	"github.com/blaisecz/nightlog/internal/llm"
	"github.com/blaisecz/nightlog/internal/metrics"
	"github.com/blaisecz/nightlog/internal/repository"
	"github.com/blaisecz/nightlog/internal/seed"
	"github.com/blaisecz/nightlog/internal/service"
	"github.com/blaisecz/nightlog/internal/telemetry"
)

func main() {
	ctx, stop := signal.NotifyContext(context.Background(), syscall.SIGINT, syscall.SIGTERM)
	defer stop()

	cfg := config.Load()

	db, err := config.NewDatabase(cfg)
	if err != nil {
		log.Fatalf("Failed to connect to database: %v", err)
	}

	if err := db.AutoMigrate(&domain.User{}, &domain.SleepRecord{}); err != nil {
		log.Fatalf("Failed to migrate database: %v", err)
	}
	log.Println("Database migration completed")

	shutdownTracer, err := telemetry.InitTracer(ctx, cfg, "nightlog-api")
	if err != nil {
		log.Fatalf("Failed to initialize tracing: %v", err)
	}
	defer func() {
		if err := shutdownTracer(context.Background()); err != nil {
			log.Printf("[telemetry] shutdown: %v", err)
		}
	}()

	m := metrics.New(nil)

	var kpiCache cache.KPICache = cache.Noop{}
	if cfg.RedisAddr != "" {
		redisCache := cache.NewRedisCache(cfg.RedisAddr, cfg.RedisPassword, cfg.RedisDB, cfg.KPICacheTTL)
		if err := redisCache.Ping(ctx); err != nil {
			log.Printf("Warning: redis at %s unreachable, KPI cache disabled: %v", cfg.RedisAddr, err)
			_ = redisCache.Close()
		} else {
			log.Printf("[cache] KPI cache on %s (ttl %s)", cfg.RedisAddr, cfg.KPICacheTTL)
			kpiCache = redisCache
		}
	}
	defer kpiCache.Close()

	// Repositories
	userRepo := repository.NewUserRepository(db)
	sleepRepo := repository.NewSleepRecordRepository(db)

	// Services
	engine := kpi.NewEngine(cfg.KPI())
	userService := service.NewUserService(userRepo)
	sleepService := service.NewSleepRecordService(sleepRepo, userRepo)
	kpiService := service.NewKPIService(engine, sleepRepo, userRepo, kpiCache, m)
	ingestService := service.NewIngestService(userRepo, sleepRepo, kpiCache, m)

	if cfg.Seed {
		log.Println("Seeding database with sample data (SEED=true)...")
		if err := seed.Run(ctx, ingestService, time.Now()); err != nil {
			log.Fatalf("Failed to seed database: %v", err)
		}
	}

	// A typed nil would defeat the nil check in the insights service.
	var insightsLLM llm.InsightsLLM
	if client := llm.NewOpenAIClient(cfg.OpenAIAPIKey, cfg.OpenAISleepInsightsModel); client != nil {
		insightsLLM = client
	} else {
		log.Println("Warning: OpenAI API key not configured, insights endpoint will be unavailable")
	}
	insightsService := service.NewInsightsService(kpiService, insightsLLM)

	// Handlers
	userHandler := handler.NewUserHandler(userService)
	sleepHandler := handler.NewSleepRecordHandler(sleepService)
	kpiHandler := handler.NewKPIHandler(kpiService, insightsService)

	router := api.NewRouter(userHandler, sleepHandler, kpiHandler, m)

	server := &http.Server{
		Addr:              ":" + cfg.Port,
		Handler:           router.Setup(),
		ReadHeaderTimeout: 10 * time.Second,
	}

	go func() {
		<-ctx.Done()
		shutdownCtx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
		defer cancel()
		if err := server.Shutdown(shutdownCtx); err != nil {
			log.Printf("Server shutdown: %v", err)
		}
	}()

	log.Printf("Starting server on %s", server.Addr)
	if err := server.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
		log.Fatalf("Server failed: %v", err)
	}
	log.Println("Server stopped")
}
