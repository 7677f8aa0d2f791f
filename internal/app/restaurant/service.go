// Package restaurant implements the browsing and owner-facing CRUD surface:
// restaurants, their categories, fixed-size paginated listings and search.
package restaurant

import (
	"context"

	"github.com/go-playground/validator/v10"
	"github.com/sirupsen/logrus"

	"eats-backend/internal/store"
)

// ---------------------------------------------------------------------------
// Parameters and results (passed to/from resolvers)
// ---------------------------------------------------------------------------

type CreateParams struct {
	Name         string `validate:"required"`
	Address      string `validate:"required"`
	CoverImage   string
	CategoryName string `validate:"required"`
}

// EditParams carries a partial update; nil fields stay untouched. The
// category is only resolved when a new name is supplied.
type EditParams struct {
	RestaurantID int32 `validate:"required"`
	Name         *string
	Address      *string
	CoverImage   *string
	CategoryName *string
}

// Page is one fixed-size window of restaurants plus the page math the
// listing envelopes expose.
type Page struct {
	Restaurants  []store.Restaurant
	TotalPages   int32
	TotalResults int64
}

// CategoryView pairs a category with its current restaurant count.
type CategoryView struct {
	Category        store.Category
	RestaurantCount int64
}

// CategoryPage is a category plus one page of its restaurants.
type CategoryPage struct {
	Category        store.Category
	RestaurantCount int64
	Restaurants     []store.Restaurant
	TotalPages      int32
	TotalResults    int64
}

// ---------------------------------------------------------------------------
// Service
// ---------------------------------------------------------------------------

type Service struct {
	store    *store.Store
	validate *validator.Validate
	log      *logrus.Entry
}

func NewService(st *store.Store, log *logrus.Entry) *Service {
	return &Service{
		store:    st,
		validate: validator.New(),
		log:      log,
	}
}

// ---------------------------------------------------------------------------
// Create
// ---------------------------------------------------------------------------

// Create resolves (or lazily creates) the category and inserts a restaurant
// owned by owner. Storage failures surface as the generic ErrCreateFailed;
// the root cause is logged, never exposed. A category created here outlives
// a failed restaurant insert on purpose: categories are never deleted.
func (s *Service) Create(ctx context.Context, owner *store.Account, p CreateParams) (*store.Restaurant, error) {
	if err := s.validate.Struct(p); err != nil {
		return nil, ErrInvalidInput
	}

	cat, err := s.store.Categories.GetOrCreate(ctx, p.CategoryName)
	if err != nil {
		s.log.WithError(err).Error("create restaurant: resolve category")
		return nil, ErrCreateFailed
	}

	r := &store.Restaurant{
		Name:       p.Name,
		Address:    p.Address,
		CoverImage: p.CoverImage,
		OwnerID:    owner.ID,
		CategoryID: cat.ID,
	}
	if err := s.store.Restaurants.Create(ctx, r); err != nil {
		s.log.WithError(err).Error("create restaurant: insert")
		return nil, ErrCreateFailed
	}
	r.Category = *cat
	return r, nil
}

// ---------------------------------------------------------------------------
// Edit
// ---------------------------------------------------------------------------

// Edit applies a partial update to a restaurant the caller owns.
func (s *Service) Edit(ctx context.Context, owner *store.Account, p EditParams) error {
	if err := s.validate.Struct(p); err != nil {
		return ErrInvalidInput
	}

	r, err := s.store.Restaurants.FindByID(ctx, p.RestaurantID)
	if err != nil {
		return err
	}
	if r == nil {
		return ErrNotFound
	}
	if r.OwnerID != owner.ID {
		return ErrNotOwner
	}

	if p.Name != nil {
		r.Name = *p.Name
	}
	if p.Address != nil {
		r.Address = *p.Address
	}
	if p.CoverImage != nil {
		r.CoverImage = *p.CoverImage
	}
	if p.CategoryName != nil {
		cat, err := s.store.Categories.GetOrCreate(ctx, *p.CategoryName)
		if err != nil {
			return err
		}
		r.CategoryID = cat.ID
		r.Category = *cat
	}

	return s.store.Restaurants.Save(ctx, r)
}

// ---------------------------------------------------------------------------
// Delete
// ---------------------------------------------------------------------------

// Delete removes a restaurant the caller owns. Its category stays.
func (s *Service) Delete(ctx context.Context, owner *store.Account, restaurantID int32) error {
	r, err := s.store.Restaurants.FindByID(ctx, restaurantID)
	if err != nil {
		return err
	}
	if r == nil {
		return ErrNotFound
	}
	if r.OwnerID != owner.ID {
		return ErrNotOwner
	}
	return s.store.Restaurants.Delete(ctx, r.ID)
}

// ---------------------------------------------------------------------------
// Browsing
// ---------------------------------------------------------------------------

// Page returns one page of all restaurants.
func (s *Service) Page(ctx context.Context, page int32) (Page, error) {
	rows, total, err := s.store.Restaurants.Page(ctx, page)
	if err != nil {
		return Page{}, err
	}
	return Page{Restaurants: rows, TotalPages: store.TotalPages(total), TotalResults: total}, nil
}

func (s *Service) FindByID(ctx context.Context, id int32) (*store.Restaurant, error) {
	r, err := s.store.Restaurants.FindByID(ctx, id)
	if err != nil {
		return nil, err
	}
	if r == nil {
		return nil, ErrNotFound
	}
	return r, nil
}

// SearchByName returns one page of restaurants whose name contains query,
// case-insensitively. No match is a success with an empty page, never an
// error.
func (s *Service) SearchByName(ctx context.Context, query string, page int32) (Page, error) {
	rows, total, err := s.store.Restaurants.SearchByName(ctx, query, page)
	if err != nil {
		return Page{}, err
	}
	return Page{Restaurants: rows, TotalPages: store.TotalPages(total), TotalResults: total}, nil
}

// ---------------------------------------------------------------------------
// Categories
// ---------------------------------------------------------------------------

// AllCategories lists every category with its restaurant count.
func (s *Service) AllCategories(ctx context.Context) ([]CategoryView, error) {
	cats, err := s.store.Categories.All(ctx)
	if err != nil {
		return nil, err
	}
	views := make([]CategoryView, 0, len(cats))
	for _, c := range cats {
		n, err := s.store.Categories.CountRestaurants(ctx, c.ID)
		if err != nil {
			return nil, err
		}
		views = append(views, CategoryView{Category: c, RestaurantCount: n})
	}
	return views, nil
}

// CategoryBySlug loads a category and one page of its restaurants.
func (s *Service) CategoryBySlug(ctx context.Context, slug string, page int32) (CategoryPage, error) {
	cat, err := s.store.Categories.FindBySlug(ctx, slug)
	if err != nil {
		return CategoryPage{}, err
	}
	if cat == nil {
		return CategoryPage{}, ErrCategoryNotFound
	}

	rows, total, err := s.store.Restaurants.PageByCategory(ctx, cat.ID, page)
	if err != nil {
		return CategoryPage{}, err
	}
	return CategoryPage{
		Category:        *cat,
		RestaurantCount: total,
		Restaurants:     rows,
		TotalPages:      store.TotalPages(total),
		TotalResults:    total,
	}, nil
}
