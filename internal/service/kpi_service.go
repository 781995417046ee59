package service

import (
	"context"
	"log"
	"time"

	"github.com/blaisecz/nightlog/internal/cache"
	"github.com/blaisecz/nightlog/internal/domain"
	"github.com/blaisecz/nightlog/internal/kpi"
	"github.com/blaisecz/nightlog/internal/metrics"
	"github.com/blaisecz/nightlog/internal/repository"
	"github.com/google/uuid"
	"go.opentelemetry.io/otel"
	"go.opentelemetry.io/otel/attribute"
	"go.opentelemetry.io/otel/codes"
	"go.opentelemetry.io/otel/trace"
	"golang.org/x/sync/errgroup"
)

// KPIService compares a user's sleep KPIs between a window and the one before it.
type KPIService interface {
	// Compare computes the comparison for the current window w.
	Compare(ctx context.Context, userID uuid.UUID, w kpi.Window) (*domain.KPIComparison, error)
	// TrailingWindow is the window of the last days calendar days ending today.
	// A non-positive days uses the configured window length.
	TrailingWindow(days int) kpi.Window
}

type kpiService struct {
	engine   *kpi.Engine
	repo     repository.SleepRecordRepository
	userRepo repository.UserRepository
	cache    cache.KPICache
	metrics  *metrics.Metrics
	now      func() time.Time
}

// NewKPIService creates a new KPIService. kpiCache and m may be nil.
func NewKPIService(
	engine *kpi.Engine,
	repo repository.SleepRecordRepository,
	userRepo repository.UserRepository,
	kpiCache cache.KPICache,
	m *metrics.Metrics,
) KPIService {
	if kpiCache == nil {
		kpiCache = cache.Noop{}
	}
	return &kpiService{
		engine:   engine,
		repo:     repo,
		userRepo: userRepo,
		cache:    kpiCache,
		metrics:  m,
		now:      time.Now,
	}
}

func (s *kpiService) TrailingWindow(days int) kpi.Window {
	if days <= 0 {
		days = s.engine.Config().WindowDays
	}
	return kpi.TrailingWindow(kpi.Naive(s.now()), days)
}

func (s *kpiService) Compare(ctx context.Context, userID uuid.UUID, w kpi.Window) (*domain.KPIComparison, error) {
	tracer := otel.Tracer("nightlog/kpi")
	ctx, span := tracer.Start(ctx, "KPIService.Compare",
		trace.WithAttributes(
			attribute.String("user.id", userID.String()),
			attribute.String("window.from", w.From.Format(time.RFC3339)),
			attribute.String("window.to", w.To.Format(time.RFC3339)),
			attribute.Int("window.days", w.Days()),
		),
	)
	defer span.End()

	if err := w.Validate(); err != nil {
		return nil, err
	}
	if err := ensureUser(ctx, s.userRepo, userID); err != nil {
		return nil, err
	}

	key := cache.Key(userID, w)
	cached, err := s.cache.Get(ctx, key)
	if err != nil {
		log.Printf("[cache] get %s: %v", key, err)
	}
	if cached != nil {
		s.metrics.CacheHit()
		span.SetAttributes(attribute.Bool("cache.hit", true))
		return cached, nil
	}
	s.metrics.CacheMiss()
	span.SetAttributes(attribute.Bool("cache.hit", false))

	start := time.Now()
	prev := w.Previous()

	var currentRecords, previousRecords []domain.NormalizedSleepRecord
	g, gctx := errgroup.WithContext(ctx)
	g.Go(func() error {
		var err error
		currentRecords, err = s.repo.ListForWindow(gctx, userID, w.From, w.To)
		return err
	})
	g.Go(func() error {
		var err error
		previousRecords, err = s.repo.ListForWindow(gctx, userID, prev.From, prev.To)
		return err
	})
	if err := g.Wait(); err != nil {
		span.RecordError(err)
		span.SetStatus(codes.Error, err.Error())
		return nil, err
	}

	cmp := s.engine.Compare(
		s.engine.Compute(currentRecords, w),
		s.engine.Compute(previousRecords, prev),
	)
	s.metrics.ObserveKPI(time.Since(start))
	span.SetAttributes(
		attribute.Int("kpi.current.count", cmp.Current.Count),
		attribute.Int("kpi.previous.count", cmp.Previous.Count),
	)

	if err := s.cache.Set(ctx, key, &cmp); err != nil {
		log.Printf("[cache] set %s: %v", key, err)
	}

	return &cmp, nil
}
