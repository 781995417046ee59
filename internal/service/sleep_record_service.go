package service

import (
	"context"

	"github.com/blaisecz/nightlog/internal/domain"
	"github.com/blaisecz/nightlog/internal/repository"
	"github.com/blaisecz/nightlog/pkg/pagination"
	"github.com/google/uuid"
)

type SleepRecordService interface {
	List(ctx context.Context, userID uuid.UUID, filter domain.SleepRecordFilter) (*domain.SleepRecordListResponse, error)
	Get(ctx context.Context, userID, id uuid.UUID) (*domain.SleepRecord, error)
}

type sleepRecordService struct {
	repo     repository.SleepRecordRepository
	userRepo repository.UserRepository
}

func NewSleepRecordService(repo repository.SleepRecordRepository, userRepo repository.UserRepository) SleepRecordService {
	return &sleepRecordService{
		repo:     repo,
		userRepo: userRepo,
	}
}

func (s *sleepRecordService) List(ctx context.Context, userID uuid.UUID, filter domain.SleepRecordFilter) (*domain.SleepRecordListResponse, error) {
	if err := ensureUser(ctx, s.userRepo, userID); err != nil {
		return nil, err
	}

	if filter.MinScore != nil && filter.MaxScore != nil && *filter.MinScore > *filter.MaxScore {
		return nil, domain.ErrInvalidInput
	}
	if filter.From != nil && filter.To != nil && filter.To.Before(*filter.From) {
		return nil, domain.ErrInvalidWindow
	}

	page := pagination.New(filter.Page, filter.Limit)
	filter.Page, filter.Limit = page.Page, page.Limit

	records, total, err := s.repo.List(ctx, userID, filter)
	if err != nil {
		return nil, err
	}
	if records == nil {
		records = []domain.SleepRecord{}
	}

	return &domain.SleepRecordListResponse{
		Data: records,
		Pagination: domain.PaginationResponse{
			Page:    page.Page,
			Limit:   page.Limit,
			Total:   total,
			HasMore: page.HasMore(total),
		},
	}, nil
}

func (s *sleepRecordService) Get(ctx context.Context, userID, id uuid.UUID) (*domain.SleepRecord, error) {
	if err := ensureUser(ctx, s.userRepo, userID); err != nil {
		return nil, err
	}
	return s.repo.GetByID(ctx, userID, id)
}

// ensureUser returns domain.ErrNotFound when the user does not exist.
func ensureUser(ctx context.Context, repo repository.UserRepository, userID uuid.UUID) error {
	exists, err := repo.Exists(ctx, userID)
	if err != nil {
		return err
	}
	if !exists {
		return domain.ErrNotFound
	}
	return nil
}
