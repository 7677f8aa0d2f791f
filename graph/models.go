package graph

import "eats-backend/internal/store"

// ---------------------------------------------------------------------------
// GraphQL object types (resolved by field, see schema.graphql)
// ---------------------------------------------------------------------------

type User struct {
	ID       int32
	Email    string
	Role     string
	Verified bool
}

type Category struct {
	ID              int32
	Name            string
	Slug            string
	CoverImage      *string
	RestaurantCount int32
}

type Restaurant struct {
	ID         int32
	Name       string
	CoverImage *string
	Address    string
	Category   *Category
}

// ---------------------------------------------------------------------------
// Envelopes — the uniform {ok, err, ...payload} shape of every operation
// ---------------------------------------------------------------------------

type CreateAccountOutput struct {
	Ok  bool
	Err *string
}

type LoginOutput struct {
	Ok    bool
	Err   *string
	Token *string
}

type UserProfileOutput struct {
	Ok   bool
	Err  *string
	User *User
}

type EditProfileOutput struct {
	Ok  bool
	Err *string
}

type VerifyEmailOutput struct {
	Ok  bool
	Err *string
}

type CreateRestaurantOutput struct {
	Ok           bool
	Err          *string
	RestaurantID *int32
}

type EditRestaurantOutput struct {
	Ok  bool
	Err *string
}

type DeleteRestaurantOutput struct {
	Ok  bool
	Err *string
}

type RestaurantsOutput struct {
	Ok           bool
	Err          *string
	Results      []Restaurant
	TotalPages   *int32
	TotalResults *int32
}

type RestaurantOutput struct {
	Ok         bool
	Err        *string
	Restaurant *Restaurant
}

type SearchRestaurantOutput struct {
	Ok           bool
	Err          *string
	Restaurants  []Restaurant
	TotalPages   *int32
	TotalResults *int32
}

type AllCategoriesOutput struct {
	Ok         bool
	Err        *string
	Categories []Category
}

type CategoryOutput struct {
	Ok           bool
	Err          *string
	Category     *Category
	Restaurants  []Restaurant
	TotalPages   *int32
	TotalResults *int32
}

// ---------------------------------------------------------------------------
// Input types
// ---------------------------------------------------------------------------

type CreateAccountInput struct {
	Email    string
	Password string
	Role     string
}

type LoginInput struct {
	Email    string
	Password string
}

type EditProfileInput struct {
	Email    *string
	Password *string
}

type VerifyEmailInput struct {
	Code string
}

type CreateRestaurantInput struct {
	Name         string
	Address      string
	CoverImage   *string
	CategoryName string
}

type EditRestaurantInput struct {
	RestaurantID int32
	Name         *string
	Address      *string
	CoverImage   *string
	CategoryName *string
}

// ---------------------------------------------------------------------------
// Mapping from store entities
// ---------------------------------------------------------------------------

func toUser(a *store.Account) *User {
	return &User{
		ID:       a.ID,
		Email:    a.Email,
		Role:     string(a.Role),
		Verified: a.Verified,
	}
}

func toCategory(c *store.Category, restaurantCount int64) *Category {
	return &Category{
		ID:              c.ID,
		Name:            c.Name,
		Slug:            c.Slug,
		CoverImage:      stringPtrOrNil(c.CoverImage),
		RestaurantCount: int32(restaurantCount),
	}
}

func toRestaurant(r *store.Restaurant) *Restaurant {
	out := &Restaurant{
		ID:         r.ID,
		Name:       r.Name,
		CoverImage: stringPtrOrNil(r.CoverImage),
		Address:    r.Address,
	}
	if r.Category.ID != 0 {
		out.Category = &Category{
			ID:         r.Category.ID,
			Name:       r.Category.Name,
			Slug:       r.Category.Slug,
			CoverImage: stringPtrOrNil(r.Category.CoverImage),
		}
	}
	return out
}

func toRestaurants(rows []store.Restaurant) []Restaurant {
	out := make([]Restaurant, 0, len(rows))
	for i := range rows {
		out = append(out, *toRestaurant(&rows[i]))
	}
	return out
}
