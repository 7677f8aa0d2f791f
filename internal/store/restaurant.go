package store

import (
	"context"
	"errors"
	"strings"
	"time"

	"gorm.io/gorm"
)

type Restaurant struct {
	ID         int32  `gorm:"primaryKey" json:"id"`
	Name       string `gorm:"not null;index" json:"name"`
	CoverImage string `json:"cover_image"`
	Address    string `json:"address"`

	OwnerID    int32    `gorm:"not null;index" json:"owner_id"`
	Owner      Account  `gorm:"foreignKey:OwnerID" json:"-"`
	CategoryID int32    `gorm:"not null;index" json:"category_id"`
	Category   Category `gorm:"foreignKey:CategoryID" json:"-"`

	CreatedAt time.Time `json:"created_at"`
	UpdatedAt time.Time `json:"updated_at"`
}

type RestaurantStore struct {
	db *gorm.DB
}

func (s *RestaurantStore) Create(ctx context.Context, r *Restaurant) error {
	return s.db.WithContext(ctx).Create(r).Error
}

// FindByID loads a restaurant with its category.
func (s *RestaurantStore) FindByID(ctx context.Context, id int32) (*Restaurant, error) {
	var r Restaurant
	err := s.db.WithContext(ctx).Preload("Category").First(&r, id).Error
	if errors.Is(err, gorm.ErrRecordNotFound) {
		return nil, nil
	}
	if err != nil {
		return nil, err
	}
	return &r, nil
}

func (s *RestaurantStore) Save(ctx context.Context, r *Restaurant) error {
	return s.db.WithContext(ctx).Save(r).Error
}

func (s *RestaurantStore) Delete(ctx context.Context, id int32) error {
	return s.db.WithContext(ctx).Delete(&Restaurant{}, id).Error
}

// Page returns one fixed-size page of all restaurants plus the total count.
func (s *RestaurantStore) Page(ctx context.Context, page int32) ([]Restaurant, int64, error) {
	return pageOf(s.db.WithContext(ctx).Model(&Restaurant{}), page)
}

// PageByCategory returns one page of a category's restaurants plus the
// category's total count.
func (s *RestaurantStore) PageByCategory(ctx context.Context, categoryID int32, page int32) ([]Restaurant, int64, error) {
	q := s.db.WithContext(ctx).Model(&Restaurant{}).Where("category_id = ?", categoryID)
	return pageOf(q, page)
}

// SearchByName returns one page of restaurants whose name contains query,
// matched case-insensitively. No match is a success with an empty page.
func (s *RestaurantStore) SearchByName(ctx context.Context, query string, page int32) ([]Restaurant, int64, error) {
	pattern := "%" + strings.ToLower(query) + "%"
	q := s.db.WithContext(ctx).Model(&Restaurant{}).Where("LOWER(name) LIKE ?", pattern)
	return pageOf(q, page)
}

// pageOf runs the count and the windowed select off one reusable chain.
func pageOf(q *gorm.DB, page int32) ([]Restaurant, int64, error) {
	q = q.Session(&gorm.Session{})

	var total int64
	if err := q.Count(&total).Error; err != nil {
		return nil, 0, err
	}

	var rows []Restaurant
	err := q.Scopes(pageScope(page)).Order("id").Find(&rows).Error
	if err != nil {
		return nil, 0, err
	}
	return rows, total, nil
}
