package handler

import (
	"context"
	"time"

	"github.com/blaisecz/nightlog/internal/domain"
	"github.com/blaisecz/nightlog/internal/kpi"
	"github.com/google/uuid"
)

// MockUserService is a mock implementation of UserService
type MockUserService struct {
	listFunc    func(ctx context.Context) ([]domain.User, error)
	getByIDFunc func(ctx context.Context, id uuid.UUID) (*domain.User, error)
}

func (m *MockUserService) List(ctx context.Context) ([]domain.User, error) {
	if m.listFunc != nil {
		return m.listFunc(ctx)
	}
	return []domain.User{}, nil
}

func (m *MockUserService) GetByID(ctx context.Context, id uuid.UUID) (*domain.User, error) {
	if m.getByIDFunc != nil {
		return m.getByIDFunc(ctx, id)
	}
	return nil, domain.ErrNotFound
}

// MockSleepRecordService is a mock implementation of SleepRecordService
type MockSleepRecordService struct {
	listFunc func(ctx context.Context, userID uuid.UUID, filter domain.SleepRecordFilter) (*domain.SleepRecordListResponse, error)
	getFunc  func(ctx context.Context, userID, id uuid.UUID) (*domain.SleepRecord, error)
}

func (m *MockSleepRecordService) List(ctx context.Context, userID uuid.UUID, filter domain.SleepRecordFilter) (*domain.SleepRecordListResponse, error) {
	if m.listFunc != nil {
		return m.listFunc(ctx, userID, filter)
	}
	return &domain.SleepRecordListResponse{
		Data:       []domain.SleepRecord{},
		Pagination: domain.PaginationResponse{Page: 1, Limit: 50},
	}, nil
}

func (m *MockSleepRecordService) Get(ctx context.Context, userID, id uuid.UUID) (*domain.SleepRecord, error) {
	if m.getFunc != nil {
		return m.getFunc(ctx, userID, id)
	}
	return nil, domain.ErrNotFound
}

// MockKPIService is a mock implementation of KPIService
type MockKPIService struct {
	compareFunc func(ctx context.Context, userID uuid.UUID, w kpi.Window) (*domain.KPIComparison, error)
	trailingDay int
}

func (m *MockKPIService) Compare(ctx context.Context, userID uuid.UUID, w kpi.Window) (*domain.KPIComparison, error) {
	if m.compareFunc != nil {
		return m.compareFunc(ctx, userID, w)
	}
	return &domain.KPIComparison{
		Current:  domain.WindowKPI{From: w.From, To: w.To},
		Previous: domain.WindowKPI{From: w.Previous().From, To: w.Previous().To},
	}, nil
}

func (m *MockKPIService) TrailingWindow(days int) kpi.Window {
	m.trailingDay = days
	if days <= 0 {
		days = kpi.DefaultWindowDays
	}
	return kpi.TrailingWindow(time.Date(2025, 5, 30, 0, 0, 0, 0, time.UTC), days)
}

// MockInsightsService is a mock implementation of InsightsService
type MockInsightsService struct {
	generateFunc func(ctx context.Context, userID uuid.UUID, w kpi.Window) (*domain.InsightsResponse, error)
}

func (m *MockInsightsService) Generate(ctx context.Context, userID uuid.UUID, w kpi.Window) (*domain.InsightsResponse, error) {
	if m.generateFunc != nil {
		return m.generateFunc(ctx, userID, w)
	}
	return &domain.InsightsResponse{Insights: domain.LLMInsightsOutput{Summary: "ok"}}, nil
}
