package domain

import (
	"time"

	"github.com/google/uuid"
)

type User struct {
	ID        uuid.UUID `gorm:"type:uuid;primaryKey;default:gen_random_uuid()" json:"id"`
	FirstName string    `gorm:"column:firstname;type:varchar(128);not null;uniqueIndex:idx_users_name" json:"firstname"`
	LastName  string    `gorm:"column:lastname;type:varchar(128);not null;uniqueIndex:idx_users_name" json:"lastname"`
	CreatedAt time.Time `gorm:"autoCreateTime" json:"created_at"`
}

func (User) TableName() string {
	return "users"
}

// UserIdentity is the name pair carried through a normalization run unchanged.
type UserIdentity struct {
	FirstName string `json:"firstname"`
	LastName  string `json:"lastname"`
}

// UserResponse is the response body for user endpoints
type UserResponse struct {
	ID        uuid.UUID `json:"id"`
	FirstName string    `json:"firstname"`
	LastName  string    `json:"lastname"`
	CreatedAt time.Time `json:"created_at"`
}

func (u *User) ToResponse() UserResponse {
	return UserResponse{
		ID:        u.ID,
		FirstName: u.FirstName,
		LastName:  u.LastName,
		CreatedAt: u.CreatedAt,
	}
}

func (u *User) Identity() UserIdentity {
	return UserIdentity{FirstName: u.FirstName, LastName: u.LastName}
}
