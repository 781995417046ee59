package service

import (
	"context"
	"sync"
	"time"

	"github.com/blaisecz/nightlog/internal/domain"
	"github.com/blaisecz/nightlog/internal/kpi"
	"github.com/google/uuid"
)

// MockUserRepository is a mock implementation of UserRepository
type MockUserRepository struct {
	users map[uuid.UUID]*domain.User
	err   error
}

func NewMockUserRepository() *MockUserRepository {
	return &MockUserRepository{
		users: make(map[uuid.UUID]*domain.User),
	}
}

func (m *MockUserRepository) Create(ctx context.Context, user *domain.User) error {
	if m.err != nil {
		return m.err
	}
	if user.ID == uuid.Nil {
		user.ID = uuid.New()
	}
	m.users[user.ID] = user
	return nil
}

func (m *MockUserRepository) GetByID(ctx context.Context, id uuid.UUID) (*domain.User, error) {
	if m.err != nil {
		return nil, m.err
	}
	user, ok := m.users[id]
	if !ok {
		return nil, domain.ErrNotFound
	}
	return user, nil
}

func (m *MockUserRepository) Exists(ctx context.Context, id uuid.UUID) (bool, error) {
	if m.err != nil {
		return false, m.err
	}
	_, ok := m.users[id]
	return ok, nil
}

func (m *MockUserRepository) List(ctx context.Context) ([]domain.User, error) {
	if m.err != nil {
		return nil, m.err
	}
	var users []domain.User
	for _, u := range m.users {
		users = append(users, *u)
	}
	return users, nil
}

func (m *MockUserRepository) FindOrCreate(ctx context.Context, identity domain.UserIdentity) (*domain.User, error) {
	if m.err != nil {
		return nil, m.err
	}
	for _, u := range m.users {
		if u.FirstName == identity.FirstName && u.LastName == identity.LastName {
			return u, nil
		}
	}
	user := &domain.User{ID: uuid.New(), FirstName: identity.FirstName, LastName: identity.LastName, CreatedAt: time.Now()}
	m.users[user.ID] = user
	return user, nil
}

func (m *MockUserRepository) SetError(err error) {
	m.err = err
}

func (m *MockUserRepository) add(first, last string) *domain.User {
	user := &domain.User{ID: uuid.New(), FirstName: first, LastName: last}
	m.users[user.ID] = user
	return user
}

// MockSleepRecordRepository is a mock implementation of SleepRecordRepository
type MockSleepRecordRepository struct {
	mu          sync.Mutex
	records     map[uuid.UUID][]domain.SleepRecord
	lastFilter  domain.SleepRecordFilter
	windowCalls int
	err         error
}

func NewMockSleepRecordRepository() *MockSleepRecordRepository {
	return &MockSleepRecordRepository{
		records: make(map[uuid.UUID][]domain.SleepRecord),
	}
}

func (m *MockSleepRecordRepository) ReplaceForUser(ctx context.Context, userID uuid.UUID, records []domain.NormalizedSleepRecord) error {
	m.mu.Lock()
	defer m.mu.Unlock()
	if m.err != nil {
		return m.err
	}
	rows := make([]domain.SleepRecord, len(records))
	for i, r := range records {
		rows[i] = domain.SleepRecord{ID: uuid.New(), UserID: userID, NormalizedSleepRecord: r}
	}
	m.records[userID] = rows
	return nil
}

func (m *MockSleepRecordRepository) GetByID(ctx context.Context, userID, id uuid.UUID) (*domain.SleepRecord, error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	if m.err != nil {
		return nil, m.err
	}
	for _, r := range m.records[userID] {
		if r.ID == id {
			rec := r
			return &rec, nil
		}
	}
	return nil, domain.ErrNotFound
}

func (m *MockSleepRecordRepository) List(ctx context.Context, userID uuid.UUID, filter domain.SleepRecordFilter) ([]domain.SleepRecord, int64, error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.lastFilter = filter
	if m.err != nil {
		return nil, 0, m.err
	}
	all := m.records[userID]
	start := (filter.Page - 1) * filter.Limit
	if start > len(all) {
		start = len(all)
	}
	end := start + filter.Limit
	if end > len(all) {
		end = len(all)
	}
	return all[start:end], int64(len(all)), nil
}

func (m *MockSleepRecordRepository) ListForWindow(ctx context.Context, userID uuid.UUID, from, to time.Time) ([]domain.NormalizedSleepRecord, error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.windowCalls++
	if m.err != nil {
		return nil, m.err
	}
	var out []domain.NormalizedSleepRecord
	w := kpi.Window{From: from, To: to}
	for _, r := range m.records[userID] {
		if r.BedtimeFull == nil || w.Contains(r.BedtimeFull.Time) {
			out = append(out, r.NormalizedSleepRecord)
		}
	}
	return out, nil
}

func (m *MockSleepRecordRepository) SetError(err error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.err = err
}

// MockKPICache is an in-memory KPICache
type MockKPICache struct {
	mu          sync.Mutex
	entries     map[string]*domain.KPIComparison
	invalidated []uuid.UUID
	getErr      error
}

func NewMockKPICache() *MockKPICache {
	return &MockKPICache{entries: make(map[string]*domain.KPIComparison)}
}

func (m *MockKPICache) Get(ctx context.Context, key string) (*domain.KPIComparison, error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	if m.getErr != nil {
		return nil, m.getErr
	}
	return m.entries[key], nil
}

func (m *MockKPICache) Set(ctx context.Context, key string, cmp *domain.KPIComparison) error {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.entries[key] = cmp
	return nil
}

func (m *MockKPICache) InvalidateUser(ctx context.Context, userID uuid.UUID) error {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.invalidated = append(m.invalidated, userID)
	prefix := "kpi:" + userID.String() + ":"
	for k := range m.entries {
		if len(k) >= len(prefix) && k[:len(prefix)] == prefix {
			delete(m.entries, k)
		}
	}
	return nil
}

func (m *MockKPICache) Close() error { return nil }

// MockInsightsLLM returns a fixed output or error
type MockInsightsLLM struct {
	output   *domain.LLMInsightsOutput
	err      error
	received *domain.KPIComparison
}

func (m *MockInsightsLLM) GenerateInsights(ctx context.Context, cmp *domain.KPIComparison) (*domain.LLMInsightsOutput, error) {
	m.received = cmp
	if m.err != nil {
		return nil, m.err
	}
	return m.output, nil
}

// Helper functions
func strPtr(s string) *string {
	return &s
}

func floatPtr(f float64) *float64 {
	return &f
}

func timePtr(t time.Time) *time.Time {
	return &t
}
