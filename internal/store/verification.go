package store

import (
	"context"
	"errors"
	"time"

	"github.com/google/uuid"
	"gorm.io/gorm"
)

// Verification is the single-use proof that an account controls its email
// address. At most one pending verification exists per account; it is
// replaced when the email changes and deleted once consumed.
type Verification struct {
	ID        int32   `gorm:"primaryKey" json:"id"`
	Code      string  `gorm:"uniqueIndex;not null" json:"code"`
	AccountID int32   `gorm:"uniqueIndex;not null" json:"account_id"`
	Account   Account `gorm:"constraint:OnDelete:CASCADE" json:"-"`
	CreatedAt time.Time `json:"created_at"`
	UpdatedAt time.Time `json:"updated_at"`
}

// BeforeCreate fills in an opaque code unless the caller set one.
func (v *Verification) BeforeCreate(tx *gorm.DB) error {
	if v.Code == "" {
		v.Code = uuid.NewString()
	}
	return nil
}

type VerificationStore struct {
	db *gorm.DB
}

func (s *VerificationStore) Create(ctx context.Context, v *Verification) error {
	return s.db.WithContext(ctx).Create(v).Error
}

// FindByCode loads a verification and the account it belongs to.
func (s *VerificationStore) FindByCode(ctx context.Context, code string) (*Verification, error) {
	var v Verification
	err := s.db.WithContext(ctx).Preload("Account").Where("code = ?", code).First(&v).Error
	if errors.Is(err, gorm.ErrRecordNotFound) {
		return nil, nil
	}
	if err != nil {
		return nil, err
	}
	return &v, nil
}

func (s *VerificationStore) Delete(ctx context.Context, id int32) error {
	return s.db.WithContext(ctx).Delete(&Verification{}, id).Error
}

// DeleteByAccount drops the pending verification of an account, if any.
func (s *VerificationStore) DeleteByAccount(ctx context.Context, accountID int32) error {
	return s.db.WithContext(ctx).Where("account_id = ?", accountID).Delete(&Verification{}).Error
}
