package store

import (
	"context"
	"errors"
	"time"

	"gorm.io/gorm"
)

// AccountRole restricts what an account may do on the marketplace.
type AccountRole string

const (
	RoleClient   AccountRole = "Client"
	RoleOwner    AccountRole = "Owner"
	RoleDelivery AccountRole = "Delivery"
)

// ValidRole reports whether r is one of the known roles.
func ValidRole(r AccountRole) bool {
	switch r {
	case RoleClient, RoleOwner, RoleDelivery:
		return true
	}
	return false
}

type Account struct {
	ID           int32       `gorm:"primaryKey" json:"id"`
	Email        string      `gorm:"uniqueIndex;not null" json:"email"`
	PasswordHash string      `gorm:"not null" json:"-"`
	Role         AccountRole `gorm:"type:varchar(16);not null;default:'Client'" json:"role"`
	Verified     bool        `gorm:"not null;default:false" json:"verified"`
	CreatedAt    time.Time   `json:"created_at"`
	UpdatedAt    time.Time   `json:"updated_at"`
}

type AccountStore struct {
	db *gorm.DB
}

func (s *AccountStore) Create(ctx context.Context, a *Account) error {
	return s.db.WithContext(ctx).Create(a).Error
}

func (s *AccountStore) FindByID(ctx context.Context, id int32) (*Account, error) {
	var a Account
	err := s.db.WithContext(ctx).First(&a, id).Error
	if errors.Is(err, gorm.ErrRecordNotFound) {
		return nil, nil
	}
	if err != nil {
		return nil, err
	}
	return &a, nil
}

func (s *AccountStore) FindByEmail(ctx context.Context, email string) (*Account, error) {
	var a Account
	err := s.db.WithContext(ctx).Where("email = ?", email).First(&a).Error
	if errors.Is(err, gorm.ErrRecordNotFound) {
		return nil, nil
	}
	if err != nil {
		return nil, err
	}
	return &a, nil
}

func (s *AccountStore) Save(ctx context.Context, a *Account) error {
	return s.db.WithContext(ctx).Save(a).Error
}
