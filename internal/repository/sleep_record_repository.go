package repository

import (
	"context"
	"errors"
	"time"

	"github.com/blaisecz/nightlog/internal/domain"
	"github.com/blaisecz/nightlog/pkg/pagination"
	"github.com/google/uuid"
	"gorm.io/gorm"
)

const insertBatchSize = 200

// SortColumns maps the accepted sortBy values to their columns.
var SortColumns = map[string]string{
	"date":         "date",
	"score":        "score",
	"duration_min": "duration_min",
	"bedtime_full": "bedtime_full",
}

type SleepRecordRepository interface {
	// ReplaceForUser deletes the user's records and inserts the given ones in one transaction.
	ReplaceForUser(ctx context.Context, userID uuid.UUID, records []domain.NormalizedSleepRecord) error
	GetByID(ctx context.Context, userID, id uuid.UUID) (*domain.SleepRecord, error)
	// List returns one page of records and the total number of matches.
	List(ctx context.Context, userID uuid.UUID, filter domain.SleepRecordFilter) ([]domain.SleepRecord, int64, error)
	// ListForWindow returns every record that may belong to the window. Records
	// without a bedtime are included so the caller can place them exactly.
	ListForWindow(ctx context.Context, userID uuid.UUID, from, to time.Time) ([]domain.NormalizedSleepRecord, error)
}

type sleepRecordRepository struct {
	db *gorm.DB
}

func NewSleepRecordRepository(db *gorm.DB) SleepRecordRepository {
	return &sleepRecordRepository{db: db}
}

func (r *sleepRecordRepository) ReplaceForUser(ctx context.Context, userID uuid.UUID, records []domain.NormalizedSleepRecord) error {
	return r.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		if err := tx.Where("user_id = ?", userID).Delete(&domain.SleepRecord{}).Error; err != nil {
			return err
		}
		if len(records) == 0 {
			return nil
		}

		rows := make([]domain.SleepRecord, len(records))
		for i, rec := range records {
			rows[i] = domain.SleepRecord{UserID: userID, NormalizedSleepRecord: rec}
		}
		return tx.CreateInBatches(rows, insertBatchSize).Error
	})
}

func (r *sleepRecordRepository) GetByID(ctx context.Context, userID, id uuid.UUID) (*domain.SleepRecord, error) {
	var rec domain.SleepRecord
	err := r.db.WithContext(ctx).
		Where("user_id = ? AND id = ?", userID, id).
		First(&rec).Error
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, domain.ErrNotFound
		}
		return nil, err
	}
	return &rec, nil
}

func (r *sleepRecordRepository) List(ctx context.Context, userID uuid.UUID, filter domain.SleepRecordFilter) ([]domain.SleepRecord, int64, error) {
	query := r.db.WithContext(ctx).
		Model(&domain.SleepRecord{}).
		Where("user_id = ?", userID)

	if filter.MinScore != nil {
		query = query.Where("score >= ?", *filter.MinScore)
	}
	if filter.MaxScore != nil {
		query = query.Where("score <= ?", *filter.MaxScore)
	}
	if filter.From != nil {
		query = query.Where("bedtime_full >= ?", *filter.From)
	}
	if filter.To != nil {
		query = query.Where("bedtime_full <= ?", *filter.To)
	}

	var total int64
	if err := query.Count(&total).Error; err != nil {
		return nil, 0, err
	}

	page := pagination.New(filter.Page, filter.Limit)
	var records []domain.SleepRecord
	err := query.
		Order(orderClause(filter.SortBy, filter.SortOrder)).
		Order("id ASC").
		Offset(page.Offset()).
		Limit(page.Limit).
		Find(&records).Error
	if err != nil {
		return nil, 0, err
	}

	return records, total, nil
}

// orderClause builds the ORDER BY term from whitelisted input only.
func orderClause(sortBy, sortOrder string) string {
	column, ok := SortColumns[sortBy]
	if !ok {
		column = "date"
	}
	direction := "ASC"
	if sortOrder == "desc" {
		direction = "DESC"
	}
	return column + " " + direction + " NULLS LAST"
}

func (r *sleepRecordRepository) ListForWindow(ctx context.Context, userID uuid.UUID, from, to time.Time) ([]domain.NormalizedSleepRecord, error) {
	var rows []domain.SleepRecord
	err := r.db.WithContext(ctx).
		Where("user_id = ?", userID).
		Where("((bedtime_full BETWEEN ? AND ?) OR bedtime_full IS NULL)", from, to).
		Order("bedtime_full ASC NULLS LAST").
		Order("date ASC").
		Find(&rows).Error
	if err != nil {
		return nil, err
	}

	records := make([]domain.NormalizedSleepRecord, len(rows))
	for i, row := range rows {
		records[i] = row.NormalizedSleepRecord
	}
	return records, nil
}
