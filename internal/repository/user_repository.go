package repository

import (
	"context"
	"errors"

	"github.com/blaisecz/nightlog/internal/domain"
	"github.com/google/uuid"
	"gorm.io/gorm"
)

type UserRepository interface {
	Create(ctx context.Context, user *domain.User) error
	GetByID(ctx context.Context, id uuid.UUID) (*domain.User, error)
	Exists(ctx context.Context, id uuid.UUID) (bool, error)
	List(ctx context.Context) ([]domain.User, error)
	// FindOrCreate returns the user with the given name, creating it when absent.
	FindOrCreate(ctx context.Context, identity domain.UserIdentity) (*domain.User, error)
}

type userRepository struct {
	db *gorm.DB
}

func NewUserRepository(db *gorm.DB) UserRepository {
	return &userRepository{db: db}
}

func (r *userRepository) Create(ctx context.Context, user *domain.User) error {
	return r.db.WithContext(ctx).Create(user).Error
}

func (r *userRepository) GetByID(ctx context.Context, id uuid.UUID) (*domain.User, error) {
	var user domain.User
	err := r.db.WithContext(ctx).First(&user, "id = ?", id).Error
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, domain.ErrNotFound
		}
		return nil, err
	}
	return &user, nil
}

func (r *userRepository) Exists(ctx context.Context, id uuid.UUID) (bool, error) {
	var count int64
	err := r.db.WithContext(ctx).Model(&domain.User{}).Where("id = ?", id).Count(&count).Error
	return count > 0, err
}

func (r *userRepository) List(ctx context.Context) ([]domain.User, error) {
	var users []domain.User
	err := r.db.WithContext(ctx).
		Order("lastname ASC, firstname ASC").
		Find(&users).Error
	return users, err
}

func (r *userRepository) FindOrCreate(ctx context.Context, identity domain.UserIdentity) (*domain.User, error) {
	user := domain.User{FirstName: identity.FirstName, LastName: identity.LastName}
	err := r.db.WithContext(ctx).
		Where("firstname = ? AND lastname = ?", identity.FirstName, identity.LastName).
		FirstOrCreate(&user).Error
	if err != nil {
		return nil, err
	}
	return &user, nil
}
