// Package graph is the GraphQL surface of the marketplace: the embedded SDL
// schema, the root resolver and the uniform {ok, err, ...payload} envelopes
// every operation answers with.
package graph

import (
	"context"
	"errors"

	"github.com/sirupsen/logrus"

	"eats-backend/internal/app/account"
	"eats-backend/internal/app/restaurant"
	"eats-backend/internal/auth"
	"eats-backend/internal/store"
)

// AccountService is what the resolvers need from the account service.
// *account.Service implements it; tests inject a lightweight mock.
type AccountService interface {
	Create(ctx context.Context, p account.CreateParams) error
	Login(ctx context.Context, p account.LoginParams) (string, error)
	FindByID(ctx context.Context, id int32) (*store.Account, error)
	EditProfile(ctx context.Context, accountID int32, p account.EditProfileParams) error
	VerifyEmail(ctx context.Context, code string) error
}

// RestaurantService is what the resolvers need from the restaurant service.
type RestaurantService interface {
	Create(ctx context.Context, owner *store.Account, p restaurant.CreateParams) (*store.Restaurant, error)
	Edit(ctx context.Context, owner *store.Account, p restaurant.EditParams) error
	Delete(ctx context.Context, owner *store.Account, restaurantID int32) error
	Page(ctx context.Context, page int32) (restaurant.Page, error)
	FindByID(ctx context.Context, id int32) (*store.Restaurant, error)
	SearchByName(ctx context.Context, query string, page int32) (restaurant.Page, error)
	AllCategories(ctx context.Context) ([]restaurant.CategoryView, error)
	CategoryBySlug(ctx context.Context, slug string, page int32) (restaurant.CategoryPage, error)
}

// Resolver is the root dependency-injection struct wired in cmd/api/main.go.
type Resolver struct {
	AccountSvc    AccountService
	RestaurantSvc RestaurantService
	Log           *logrus.Entry
}

// ErrUnauthenticated is returned when a private operation is called without
// a valid account in the request context. It surfaces as a top-level GraphQL
// error, never inside the envelope.
var ErrUnauthenticated = errors.New("unauthenticated")

// ErrOwnerRoleRequired is returned when a restaurant mutation is called by
// an account whose role is not Owner. Same channel as ErrUnauthenticated.
var ErrOwnerRoleRequired = errors.New("owner role required")

// caller returns the authenticated account from the request context.
func (r *Resolver) caller(ctx context.Context) (*store.Account, error) {
	a, ok := auth.FromContext(ctx)
	if !ok {
		return nil, ErrUnauthenticated
	}
	return a, nil
}

// ownerCaller is caller plus the Owner role check used by the restaurant
// mutations.
func (r *Resolver) ownerCaller(ctx context.Context) (*store.Account, error) {
	a, err := r.caller(ctx)
	if err != nil {
		return nil, err
	}
	if a.Role != store.RoleOwner {
		return nil, ErrOwnerRoleRequired
	}
	return a, nil
}

// envErr maps a service error to the envelope's err field. Known sentinel
// errors keep their message; anything else is logged with its cause and
// masked behind a generic message.
func (r *Resolver) envErr(op string, err error, known ...error) *string {
	for _, k := range known {
		if errors.Is(err, k) {
			return strPtr(err.Error())
		}
	}
	r.logger().WithError(err).Error(op)
	return strPtr("something went wrong")
}

func (r *Resolver) logger() *logrus.Entry {
	if r.Log != nil {
		return r.Log
	}
	return logrus.NewEntry(logrus.StandardLogger())
}

// pageNumber defaults a missing or out-of-range page argument to the first
// page.
func pageNumber(p *int32) int32 {
	if p == nil || *p < 1 {
		return 1
	}
	return *p
}

func strPtr(s string) *string { return &s }

// stringPtrOrNil converts an empty string to nil. Used when mapping store
// strings to nullable GraphQL fields.
func stringPtrOrNil(s string) *string {
	if s == "" {
		return nil
	}
	return &s
}

// ---------------------------------------------------------------------------
// Account mutations
// ---------------------------------------------------------------------------

type CreateAccountArgs struct{ Input CreateAccountInput }

func (r *Resolver) CreateAccount(ctx context.Context, args CreateAccountArgs) (*CreateAccountOutput, error) {
	err := r.AccountSvc.Create(ctx, account.CreateParams{
		Email:    args.Input.Email,
		Password: args.Input.Password,
		Role:     store.AccountRole(args.Input.Role),
	})
	if err != nil {
		return &CreateAccountOutput{
			Err: r.envErr("createAccount", err, account.ErrEmailTaken, account.ErrInvalidInput),
		}, nil
	}
	return &CreateAccountOutput{Ok: true}, nil
}

type LoginArgs struct{ Input LoginInput }

func (r *Resolver) Login(ctx context.Context, args LoginArgs) (*LoginOutput, error) {
	token, err := r.AccountSvc.Login(ctx, account.LoginParams{
		Email:    args.Input.Email,
		Password: args.Input.Password,
	})
	if err != nil {
		return &LoginOutput{
			Err: r.envErr("login", err, account.ErrNotFound, account.ErrWrongPassword, account.ErrInvalidInput),
		}, nil
	}
	return &LoginOutput{Ok: true, Token: &token}, nil
}

type EditProfileArgs struct{ Input EditProfileInput }

func (r *Resolver) EditProfile(ctx context.Context, args EditProfileArgs) (*EditProfileOutput, error) {
	a, err := r.caller(ctx)
	if err != nil {
		return nil, err
	}
	err = r.AccountSvc.EditProfile(ctx, a.ID, account.EditProfileParams{
		Email:    args.Input.Email,
		Password: args.Input.Password,
	})
	if err != nil {
		return &EditProfileOutput{
			Err: r.envErr("editProfile", err, account.ErrEmailTaken, account.ErrNotFound, account.ErrInvalidInput),
		}, nil
	}
	return &EditProfileOutput{Ok: true}, nil
}

type VerifyEmailArgs struct{ Input VerifyEmailInput }

func (r *Resolver) VerifyEmail(ctx context.Context, args VerifyEmailArgs) (*VerifyEmailOutput, error) {
	if err := r.AccountSvc.VerifyEmail(ctx, args.Input.Code); err != nil {
		return &VerifyEmailOutput{
			Err: r.envErr("verifyEmail", err, account.ErrCodeNotFound),
		}, nil
	}
	return &VerifyEmailOutput{Ok: true}, nil
}

// ---------------------------------------------------------------------------
// Account queries
// ---------------------------------------------------------------------------

func (r *Resolver) Me(ctx context.Context) (*User, error) {
	a, err := r.caller(ctx)
	if err != nil {
		return nil, err
	}
	return toUser(a), nil
}

type UserProfileArgs struct{ UserID int32 }

func (r *Resolver) UserProfile(ctx context.Context, args UserProfileArgs) (*UserProfileOutput, error) {
	if _, err := r.caller(ctx); err != nil {
		return nil, err
	}
	a, err := r.AccountSvc.FindByID(ctx, args.UserID)
	if err != nil {
		return &UserProfileOutput{
			Err: r.envErr("userProfile", err, account.ErrNotFound),
		}, nil
	}
	return &UserProfileOutput{Ok: true, User: toUser(a)}, nil
}

// ---------------------------------------------------------------------------
// Restaurant mutations (owner only)
// ---------------------------------------------------------------------------

type CreateRestaurantArgs struct{ Input CreateRestaurantInput }

func (r *Resolver) CreateRestaurant(ctx context.Context, args CreateRestaurantArgs) (*CreateRestaurantOutput, error) {
	owner, err := r.ownerCaller(ctx)
	if err != nil {
		return nil, err
	}
	var cover string
	if args.Input.CoverImage != nil {
		cover = *args.Input.CoverImage
	}
	created, err := r.RestaurantSvc.Create(ctx, owner, restaurant.CreateParams{
		Name:         args.Input.Name,
		Address:      args.Input.Address,
		CoverImage:   cover,
		CategoryName: args.Input.CategoryName,
	})
	if err != nil {
		return &CreateRestaurantOutput{
			Err: r.envErr("createRestaurant", err, restaurant.ErrCreateFailed, restaurant.ErrInvalidInput),
		}, nil
	}
	return &CreateRestaurantOutput{Ok: true, RestaurantID: &created.ID}, nil
}

type EditRestaurantArgs struct{ Input EditRestaurantInput }

func (r *Resolver) EditRestaurant(ctx context.Context, args EditRestaurantArgs) (*EditRestaurantOutput, error) {
	owner, err := r.ownerCaller(ctx)
	if err != nil {
		return nil, err
	}
	err = r.RestaurantSvc.Edit(ctx, owner, restaurant.EditParams{
		RestaurantID: args.Input.RestaurantID,
		Name:         args.Input.Name,
		Address:      args.Input.Address,
		CoverImage:   args.Input.CoverImage,
		CategoryName: args.Input.CategoryName,
	})
	if err != nil {
		return &EditRestaurantOutput{
			Err: r.envErr("editRestaurant", err, restaurant.ErrNotFound, restaurant.ErrNotOwner, restaurant.ErrInvalidInput),
		}, nil
	}
	return &EditRestaurantOutput{Ok: true}, nil
}

type DeleteRestaurantArgs struct{ RestaurantID int32 }

func (r *Resolver) DeleteRestaurant(ctx context.Context, args DeleteRestaurantArgs) (*DeleteRestaurantOutput, error) {
	owner, err := r.ownerCaller(ctx)
	if err != nil {
		return nil, err
	}
	err = r.RestaurantSvc.Delete(ctx, owner, args.RestaurantID)
	if err != nil {
		return &DeleteRestaurantOutput{
			Err: r.envErr("deleteRestaurant", err, restaurant.ErrNotFound, restaurant.ErrNotOwner),
		}, nil
	}
	return &DeleteRestaurantOutput{Ok: true}, nil
}

// ---------------------------------------------------------------------------
// Browsing queries (public)
// ---------------------------------------------------------------------------

type RestaurantsArgs struct{ Page *int32 }

func (r *Resolver) Restaurants(ctx context.Context, args RestaurantsArgs) (*RestaurantsOutput, error) {
	page, err := r.RestaurantSvc.Page(ctx, pageNumber(args.Page))
	if err != nil {
		return &RestaurantsOutput{
			Err:     r.envErr("restaurants", err),
			Results: []Restaurant{},
		}, nil
	}
	total := int32(page.TotalResults)
	return &RestaurantsOutput{
		Ok:           true,
		Results:      toRestaurants(page.Restaurants),
		TotalPages:   &page.TotalPages,
		TotalResults: &total,
	}, nil
}

type RestaurantArgs struct{ RestaurantID int32 }

func (r *Resolver) Restaurant(ctx context.Context, args RestaurantArgs) (*RestaurantOutput, error) {
	found, err := r.RestaurantSvc.FindByID(ctx, args.RestaurantID)
	if err != nil {
		return &RestaurantOutput{
			Err: r.envErr("restaurant", err, restaurant.ErrNotFound),
		}, nil
	}
	return &RestaurantOutput{Ok: true, Restaurant: toRestaurant(found)}, nil
}

type SearchRestaurantArgs struct {
	Query string
	Page  *int32
}

func (r *Resolver) SearchRestaurant(ctx context.Context, args SearchRestaurantArgs) (*SearchRestaurantOutput, error) {
	page, err := r.RestaurantSvc.SearchByName(ctx, args.Query, pageNumber(args.Page))
	if err != nil {
		return &SearchRestaurantOutput{
			Err:         r.envErr("searchRestaurant", err),
			Restaurants: []Restaurant{},
		}, nil
	}
	total := int32(page.TotalResults)
	return &SearchRestaurantOutput{
		Ok:           true,
		Restaurants:  toRestaurants(page.Restaurants),
		TotalPages:   &page.TotalPages,
		TotalResults: &total,
	}, nil
}

func (r *Resolver) AllCategories(ctx context.Context) (*AllCategoriesOutput, error) {
	views, err := r.RestaurantSvc.AllCategories(ctx)
	if err != nil {
		return &AllCategoriesOutput{
			Err:        r.envErr("allCategories", err),
			Categories: []Category{},
		}, nil
	}
	cats := make([]Category, 0, len(views))
	for i := range views {
		cats = append(cats, *toCategory(&views[i].Category, views[i].RestaurantCount))
	}
	return &AllCategoriesOutput{Ok: true, Categories: cats}, nil
}

type CategoryArgs struct {
	Slug string
	Page *int32
}

func (r *Resolver) Category(ctx context.Context, args CategoryArgs) (*CategoryOutput, error) {
	page, err := r.RestaurantSvc.CategoryBySlug(ctx, args.Slug, pageNumber(args.Page))
	if err != nil {
		return &CategoryOutput{
			Err:         r.envErr("category", err, restaurant.ErrCategoryNotFound),
			Restaurants: []Restaurant{},
		}, nil
	}
	total := int32(page.TotalResults)
	return &CategoryOutput{
		Ok:           true,
		Category:     toCategory(&page.Category, page.RestaurantCount),
		Restaurants:  toRestaurants(page.Restaurants),
		TotalPages:   &page.TotalPages,
		TotalResults: &total,
	}, nil
}
