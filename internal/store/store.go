// Package store holds the gorm-mapped entities of the marketplace and one
// thin store per entity. Lookups that find nothing return (nil, nil); the
// caller decides whether absence is an error.
package store

import (
	"context"
	"fmt"

	"gorm.io/driver/postgres"
	"gorm.io/gorm"
	"gorm.io/gorm/logger"
)

// PageSize is the fixed size of every paginated listing.
const PageSize = 25

// Store bundles the per-entity stores over one shared connection.
type Store struct {
	db *gorm.DB

	Accounts      *AccountStore
	Verifications *VerificationStore
	Categories    *CategoryStore
	Restaurants   *RestaurantStore
}

// Open connects to Postgres and migrates the schema.
func Open(dsn string) (*Store, error) {
	db, err := gorm.Open(postgres.Open(dsn), &gorm.Config{
		Logger: logger.Default.LogMode(logger.Warn),
	})
	if err != nil {
		return nil, fmt.Errorf("connect database: %w", err)
	}
	return New(db)
}

// New migrates the schema on an already-open connection and returns the
// bundled stores. Tests pass an in-memory SQLite connection here.
func New(db *gorm.DB) (*Store, error) {
	err := db.AutoMigrate(
		&Account{},
		&Verification{},
		&Category{},
		&Restaurant{},
	)
	if err != nil {
		return nil, fmt.Errorf("migrate schema: %w", err)
	}
	return bind(db), nil
}

func bind(db *gorm.DB) *Store {
	return &Store{
		db:            db,
		Accounts:      &AccountStore{db: db},
		Verifications: &VerificationStore{db: db},
		Categories:    &CategoryStore{db: db},
		Restaurants:   &RestaurantStore{db: db},
	}
}

// Transaction runs fn against a transaction-bound copy of the store.
// The transaction commits when fn returns nil and rolls back otherwise.
func (s *Store) Transaction(ctx context.Context, fn func(tx *Store) error) error {
	return s.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		return fn(bind(tx))
	})
}

// TotalPages converts a total row count into a page count under the fixed
// page size: ceil(total/PageSize).
func TotalPages(total int64) int32 {
	return int32((total + PageSize - 1) / PageSize)
}

// pageScope applies the offset/limit window for a 1-indexed page.
func pageScope(page int32) func(*gorm.DB) *gorm.DB {
	return func(db *gorm.DB) *gorm.DB {
		if page < 1 {
			page = 1
		}
		return db.Offset(int(page-1) * PageSize).Limit(PageSize)
	}
}
