package service

import (
	"context"
	"errors"
	"testing"
	"time"

	"github.com/blaisecz/nightlog/internal/cache"
	"github.com/blaisecz/nightlog/internal/domain"
	"github.com/blaisecz/nightlog/internal/kpi"
	"github.com/blaisecz/nightlog/internal/metrics"
	"github.com/blaisecz/nightlog/internal/normalizer"
	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func night(date, duration, bedtime, waketime string, hr, score float64) domain.NormalizedSleepRecord {
	return normalizer.NormalizeEntry(date, domain.RawNightEntry{
		Duration:      strPtr(duration),
		MeanHeartRate: floatPtr(hr),
		Bedtime:       strPtr(bedtime),
		Waketime:      strPtr(waketime),
		Score:         floatPtr(score),
	})
}

func mayWindow() kpi.Window {
	return kpi.DayWindow(time.Date(2025, 5, 1, 0, 0, 0, 0, time.UTC), time.Date(2025, 5, 10, 0, 0, 0, 0, time.UTC))
}

type kpiFixture struct {
	svc      KPIService
	userRepo *MockUserRepository
	repo     *MockSleepRecordRepository
	cache    *MockKPICache
	user     *domain.User
}

func newKPIFixture(t *testing.T) *kpiFixture {
	t.Helper()
	userRepo := NewMockUserRepository()
	repo := NewMockSleepRecordRepository()
	kpiCache := NewMockKPICache()
	user := userRepo.add("Ada", "Lovelace")

	err := repo.ReplaceForUser(context.Background(), user.ID, []domain.NormalizedSleepRecord{
		night("25/04/2025", "8h", "12:10 AM", "08:10 AM", 50, 80),
		night("05/05/2025", "7h12", "11:50 PM", "07:02 AM", 55, 72),
		night("06/05/2025", "7h12", "11:50 PM", "07:02 AM", 55, 72),
		{Date: "07/05/2025", Duration: strPtr("n/a")},
	})
	require.NoError(t, err)

	svc := NewKPIService(kpi.NewEngine(kpi.DefaultConfig()), repo, userRepo, kpiCache, metrics.New(nil))
	return &kpiFixture{svc: svc, userRepo: userRepo, repo: repo, cache: kpiCache, user: user}
}

func TestKPIService_Compare(t *testing.T) {
	fx := newKPIFixture(t)

	cmp, err := fx.svc.Compare(context.Background(), fx.user.ID, mayWindow())
	require.NoError(t, err)

	assert.Equal(t, 3, cmp.Current.Count)
	assert.Equal(t, 1, cmp.Previous.Count)
	require.NotNil(t, cmp.Deltas.DurationPct)
	assert.InDelta(t, -10, *cmp.Deltas.DurationPct, 1e-9)
	require.NotNil(t, cmp.Deltas.BedtimePct)
	assert.InDelta(t, -200, *cmp.Deltas.BedtimePct, 1e-6)
	assert.Len(t, cmp.Assessments, 3)
	assert.Equal(t, 2, fx.repo.windowCalls)
}

func TestKPIService_Compare_UsesCache(t *testing.T) {
	fx := newKPIFixture(t)
	ctx := context.Background()

	first, err := fx.svc.Compare(ctx, fx.user.ID, mayWindow())
	require.NoError(t, err)
	require.Contains(t, fx.cache.entries, cache.Key(fx.user.ID, mayWindow()))

	second, err := fx.svc.Compare(ctx, fx.user.ID, mayWindow())
	require.NoError(t, err)
	assert.Equal(t, first, second)
	assert.Equal(t, 2, fx.repo.windowCalls, "cache hit must not query the repository")
}

func TestKPIService_Compare_CacheErrorFallsThrough(t *testing.T) {
	fx := newKPIFixture(t)
	fx.cache.getErr = errors.New("redis down")

	cmp, err := fx.svc.Compare(context.Background(), fx.user.ID, mayWindow())
	require.NoError(t, err)
	assert.Equal(t, 3, cmp.Current.Count)
}

func TestKPIService_Compare_Errors(t *testing.T) {
	fx := newKPIFixture(t)
	ctx := context.Background()

	_, err := fx.svc.Compare(ctx, uuid.New(), mayWindow())
	assert.True(t, errors.Is(err, domain.ErrNotFound))

	w := mayWindow()
	_, err = fx.svc.Compare(ctx, fx.user.ID, kpi.Window{From: w.To, To: w.From})
	assert.True(t, errors.Is(err, domain.ErrInvalidWindow))

	dbErr := errors.New("db down")
	fx.repo.SetError(dbErr)
	_, err = fx.svc.Compare(ctx, fx.user.ID, mayWindow())
	assert.True(t, errors.Is(err, dbErr))
}

func TestKPIService_TrailingWindow(t *testing.T) {
	svc := NewKPIService(kpi.NewEngine(kpi.Config{WindowDays: 7}), nil, nil, nil, nil).(*kpiService)
	svc.now = func() time.Time { return time.Date(2025, 5, 30, 15, 0, 0, 0, time.FixedZone("CEST", 2*3600)) }

	w := svc.TrailingWindow(0)
	assert.Equal(t, time.Date(2025, 5, 24, 0, 0, 0, 0, time.UTC), w.From)
	assert.Equal(t, 7, w.Days())

	assert.Equal(t, 3, svc.TrailingWindow(3).Days())
}
