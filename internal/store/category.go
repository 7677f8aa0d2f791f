package store

import (
	"context"
	"errors"
	"strings"
	"time"

	"gorm.io/gorm"
	"gorm.io/gorm/clause"
)

// Category groups restaurants under a browsable, slug-addressed name.
// Categories are created lazily on first reference and never deleted.
type Category struct {
	ID         int32  `gorm:"primaryKey" json:"id"`
	Name       string `gorm:"uniqueIndex;not null" json:"name"`
	Slug       string `gorm:"uniqueIndex;not null" json:"slug"`
	CoverImage string `json:"cover_image"`

	Restaurants []Restaurant `gorm:"foreignKey:CategoryID" json:"-"`

	CreatedAt time.Time `json:"created_at"`
	UpdatedAt time.Time `json:"updated_at"`
}

// Slugify derives the URL-safe identifier of a category display name:
// trimmed, lowercased, runs of whitespace collapsed into single dashes.
func Slugify(name string) string {
	return strings.Join(strings.Fields(strings.ToLower(strings.TrimSpace(name))), "-")
}

type CategoryStore struct {
	db *gorm.DB
}

// GetOrCreate returns the category whose slug matches name, inserting it
// first if no such row exists. Two callers racing on the same name both end
// up with the one surviving row: the insert is an upsert that backs off on a
// slug conflict, and the winner is re-read afterwards.
func (s *CategoryStore) GetOrCreate(ctx context.Context, name string) (*Category, error) {
	slug := Slugify(name)

	existing, err := s.FindBySlug(ctx, slug)
	if err != nil {
		return nil, err
	}
	if existing != nil {
		return existing, nil
	}

	cat := Category{Name: strings.TrimSpace(name), Slug: slug}
	err = s.db.WithContext(ctx).
		Clauses(clause.OnConflict{
			Columns:   []clause.Column{{Name: "slug"}},
			DoNothing: true,
		}).
		Create(&cat).Error
	if err != nil {
		return nil, err
	}

	// On conflict the insert was a no-op and cat.ID stayed zero; either way
	// the row under this slug is the canonical one.
	return s.FindBySlug(ctx, slug)
}

func (s *CategoryStore) FindBySlug(ctx context.Context, slug string) (*Category, error) {
	var cat Category
	err := s.db.WithContext(ctx).Where("slug = ?", slug).First(&cat).Error
	if errors.Is(err, gorm.ErrRecordNotFound) {
		return nil, nil
	}
	if err != nil {
		return nil, err
	}
	return &cat, nil
}

// All returns every category, unpaginated.
func (s *CategoryStore) All(ctx context.Context) ([]Category, error) {
	var cats []Category
	if err := s.db.WithContext(ctx).Order("name").Find(&cats).Error; err != nil {
		return nil, err
	}
	return cats, nil
}

// CountRestaurants reports how many restaurants currently sit in a category.
func (s *CategoryStore) CountRestaurants(ctx context.Context, categoryID int32) (int64, error) {
	var n int64
	err := s.db.WithContext(ctx).
		Model(&Restaurant{}).
		Where("category_id = ?", categoryID).
		Count(&n).Error
	return n, err
}
