package service

import (
	"context"
	"fmt"
	"log"
	"strings"

	"github.com/blaisecz/nightlog/internal/cache"
	"github.com/blaisecz/nightlog/internal/domain"
	"github.com/blaisecz/nightlog/internal/metrics"
	"github.com/blaisecz/nightlog/internal/normalizer"
	"github.com/blaisecz/nightlog/internal/repository"
)

// IngestResult describes one stored batch.
type IngestResult struct {
	User   *domain.User
	Report normalizer.Report
}

// IngestService normalizes tracker exports and stores them for their user.
type IngestService interface {
	// Ingest normalizes a raw export and stores it.
	Ingest(ctx context.Context, raw domain.RawSleepData) (*IngestResult, error)
	// Store replaces the user's nights with an already normalized batch.
	Store(ctx context.Context, data domain.NormalizedData) (*IngestResult, error)
}

type ingestService struct {
	userRepo repository.UserRepository
	repo     repository.SleepRecordRepository
	cache    cache.KPICache
	metrics  *metrics.Metrics
}

// NewIngestService creates a new IngestService. kpiCache and m may be nil.
func NewIngestService(
	userRepo repository.UserRepository,
	repo repository.SleepRecordRepository,
	kpiCache cache.KPICache,
	m *metrics.Metrics,
) IngestService {
	if kpiCache == nil {
		kpiCache = cache.Noop{}
	}
	return &ingestService{
		userRepo: userRepo,
		repo:     repo,
		cache:    kpiCache,
		metrics:  m,
	}
}

func (s *ingestService) Ingest(ctx context.Context, raw domain.RawSleepData) (*IngestResult, error) {
	return s.Store(ctx, normalizer.Normalize(raw))
}

func (s *ingestService) Store(ctx context.Context, data domain.NormalizedData) (*IngestResult, error) {
	if strings.TrimSpace(data.User.FirstName) == "" || strings.TrimSpace(data.User.LastName) == "" {
		return nil, fmt.Errorf("%w: firstname and lastname are required", domain.ErrInvalidInput)
	}

	user, err := s.userRepo.FindOrCreate(ctx, data.User)
	if err != nil {
		return nil, fmt.Errorf("find or create user: %w", err)
	}

	if err := s.repo.ReplaceForUser(ctx, user.ID, data.Sleeps); err != nil {
		return nil, fmt.Errorf("store sleep records: %w", err)
	}

	if err := s.cache.InvalidateUser(ctx, user.ID); err != nil {
		log.Printf("[cache] invalidate %s: %v", user.ID, err)
	}

	report := normalizer.Summarize(data.Sleeps)
	s.metrics.ObserveIngest(report)
	log.Printf("[ingest] %s %s (%s): %s", user.FirstName, user.LastName, user.ID, report)

	return &IngestResult{User: user, Report: report}, nil
}
