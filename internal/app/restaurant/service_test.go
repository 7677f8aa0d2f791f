package restaurant

import (
	"context"
	"errors"
	"fmt"
	"io"
	"testing"

	"github.com/glebarez/sqlite"
	"github.com/sirupsen/logrus"
	"gorm.io/gorm"
	"gorm.io/gorm/logger"

	"eats-backend/internal/store"
)

// ---------------------------------------------------------------------------
// Test fixtures
// ---------------------------------------------------------------------------

// newTestStore opens a per-test in-memory SQLite database.
func newTestStore(t *testing.T) *store.Store {
	t.Helper()
	dsn := fmt.Sprintf("file:%s?mode=memory&cache=shared", t.Name())
	db, err := gorm.Open(sqlite.Open(dsn), &gorm.Config{
		Logger: logger.Default.LogMode(logger.Silent),
	})
	if err != nil {
		t.Fatalf("open sqlite: %v", err)
	}
	st, err := store.New(db)
	if err != nil {
		t.Fatalf("migrate: %v", err)
	}
	return st
}

func newSvc(t *testing.T) (*Service, *store.Store) {
	t.Helper()
	st := newTestStore(t)
	l := logrus.New()
	l.SetOutput(io.Discard)
	return NewService(st, logrus.NewEntry(l)), st
}

// newOwner inserts an Owner account to hang restaurants off.
func newOwner(t *testing.T, st *store.Store, email string) *store.Account {
	t.Helper()
	a := &store.Account{Email: email, PasswordHash: "x", Role: store.RoleOwner}
	if err := st.Accounts.Create(context.Background(), a); err != nil {
		t.Fatalf("create owner: %v", err)
	}
	return a
}

func mustCreateRestaurant(t *testing.T, svc *Service, owner *store.Account, name, categoryName string) *store.Restaurant {
	t.Helper()
	r, err := svc.Create(context.Background(), owner, CreateParams{
		Name:         name,
		Address:      "1 Main St",
		CategoryName: categoryName,
	})
	if err != nil {
		t.Fatalf("create restaurant %s: %v", name, err)
	}
	return r
}

// ---------------------------------------------------------------------------
// Create
// ---------------------------------------------------------------------------

func TestCreate_LazyCategory(t *testing.T) {
	svc, st := newSvc(t)
	owner := newOwner(t, st, "owner@example.com")

	r := mustCreateRestaurant(t, svc, owner, "Pizza Palace", "Italian Food")

	if r.OwnerID != owner.ID {
		t.Errorf("owner: want %d, got %d", owner.ID, r.OwnerID)
	}
	if r.Category.Slug != "italian-food" {
		t.Errorf("category slug: want italian-food, got %q", r.Category.Slug)
	}

	cat, err := st.Categories.FindBySlug(context.Background(), "italian-food")
	if err != nil || cat == nil {
		t.Fatalf("category was not persisted: cat=%v err=%v", cat, err)
	}
}

func TestCreate_CategoryDedupedAcrossVariants(t *testing.T) {
	svc, st := newSvc(t)
	owner := newOwner(t, st, "owner@example.com")

	a := mustCreateRestaurant(t, svc, owner, "First", "Fast Food")
	b := mustCreateRestaurant(t, svc, owner, "Second", "FAST FOOD")
	c := mustCreateRestaurant(t, svc, owner, "Third", "  fast   food  ")

	if a.CategoryID != b.CategoryID || b.CategoryID != c.CategoryID {
		t.Errorf("slug-equivalent names must share one category: %d %d %d",
			a.CategoryID, b.CategoryID, c.CategoryID)
	}

	cats, err := st.Categories.All(context.Background())
	if err != nil {
		t.Fatalf("list categories: %v", err)
	}
	if len(cats) != 1 {
		t.Errorf("want exactly 1 category, got %d", len(cats))
	}
}

func TestCreate_InvalidInput(t *testing.T) {
	svc, st := newSvc(t)
	owner := newOwner(t, st, "owner@example.com")

	_, err := svc.Create(context.Background(), owner, CreateParams{Name: "", Address: "1 Main St", CategoryName: "x"})
	if !errors.Is(err, ErrInvalidInput) {
		t.Fatalf("want ErrInvalidInput, got %v", err)
	}
}

// ---------------------------------------------------------------------------
// Edit
// ---------------------------------------------------------------------------

func TestEdit_PartialMerge(t *testing.T) {
	svc, st := newSvc(t)
	owner := newOwner(t, st, "owner@example.com")
	r := mustCreateRestaurant(t, svc, owner, "Old Name", "Italian Food")

	name := "New Name"
	if err := svc.Edit(context.Background(), owner, EditParams{RestaurantID: r.ID, Name: &name}); err != nil {
		t.Fatalf("edit: %v", err)
	}

	got, err := svc.FindByID(context.Background(), r.ID)
	if err != nil {
		t.Fatalf("find: %v", err)
	}
	if got.Name != "New Name" {
		t.Errorf("name: want New Name, got %q", got.Name)
	}
	if got.Address != "1 Main St" {
		t.Errorf("untouched address must survive the edit, got %q", got.Address)
	}
	if got.Category.Slug != "italian-food" {
		t.Errorf("untouched category must survive the edit, got %q", got.Category.Slug)
	}
}

func TestEdit_CategoryResolvedOnlyWhenSupplied(t *testing.T) {
	svc, st := newSvc(t)
	owner := newOwner(t, st, "owner@example.com")
	r := mustCreateRestaurant(t, svc, owner, "Mover", "Italian Food")

	next := "Korean BBQ"
	if err := svc.Edit(context.Background(), owner, EditParams{RestaurantID: r.ID, CategoryName: &next}); err != nil {
		t.Fatalf("edit: %v", err)
	}

	got, err := svc.FindByID(context.Background(), r.ID)
	if err != nil {
		t.Fatalf("find: %v", err)
	}
	if got.Category.Slug != "korean-bbq" {
		t.Errorf("category: want korean-bbq, got %q", got.Category.Slug)
	}

	// The old category is never deleted, even when emptied.
	old, err := st.Categories.FindBySlug(context.Background(), "italian-food")
	if err != nil || old == nil {
		t.Errorf("old category must survive: cat=%v err=%v", old, err)
	}
}

func TestEdit_NotFound(t *testing.T) {
	svc, st := newSvc(t)
	owner := newOwner(t, st, "owner@example.com")

	err := svc.Edit(context.Background(), owner, EditParams{RestaurantID: 999})
	if !errors.Is(err, ErrNotFound) {
		t.Fatalf("want ErrNotFound, got %v", err)
	}
}

func TestEdit_ForeignOwnerRejected(t *testing.T) {
	svc, st := newSvc(t)
	owner := newOwner(t, st, "owner@example.com")
	intruder := newOwner(t, st, "intruder@example.com")
	r := mustCreateRestaurant(t, svc, owner, "Mine", "Italian Food")

	name := "Stolen"
	err := svc.Edit(context.Background(), intruder, EditParams{RestaurantID: r.ID, Name: &name})
	if !errors.Is(err, ErrNotOwner) {
		t.Fatalf("want ErrNotOwner, got %v", err)
	}

	got, _ := svc.FindByID(context.Background(), r.ID)
	if got.Name != "Mine" {
		t.Errorf("rejected edit must not stick, got %q", got.Name)
	}
}

// ---------------------------------------------------------------------------
// Delete
// ---------------------------------------------------------------------------

func TestDelete_OwnerOnly(t *testing.T) {
	svc, st := newSvc(t)
	owner := newOwner(t, st, "owner@example.com")
	intruder := newOwner(t, st, "intruder@example.com")
	r := mustCreateRestaurant(t, svc, owner, "Mine", "Italian Food")
	ctx := context.Background()

	if err := svc.Delete(ctx, intruder, r.ID); !errors.Is(err, ErrNotOwner) {
		t.Fatalf("intruder delete: want ErrNotOwner, got %v", err)
	}
	if err := svc.Delete(ctx, owner, r.ID); err != nil {
		t.Fatalf("owner delete: %v", err)
	}
	if _, err := svc.FindByID(ctx, r.ID); !errors.Is(err, ErrNotFound) {
		t.Errorf("deleted restaurant must be gone, got %v", err)
	}

	// The category outlives its last restaurant.
	cat, err := st.Categories.FindBySlug(ctx, "italian-food")
	if err != nil || cat == nil {
		t.Errorf("category must survive delete: cat=%v err=%v", cat, err)
	}
}

func TestDelete_NotFound(t *testing.T) {
	svc, st := newSvc(t)
	owner := newOwner(t, st, "owner@example.com")

	err := svc.Delete(context.Background(), owner, 999)
	if !errors.Is(err, ErrNotFound) {
		t.Fatalf("want ErrNotFound, got %v", err)
	}
}

// ---------------------------------------------------------------------------
// Pagination and search
// ---------------------------------------------------------------------------

func TestPage_Boundaries(t *testing.T) {
	svc, st := newSvc(t)
	owner := newOwner(t, st, "owner@example.com")
	ctx := context.Background()

	// 26 rows: one row past the fixed page size of 25.
	for i := 0; i < 26; i++ {
		mustCreateRestaurant(t, svc, owner, fmt.Sprintf("Place %02d", i), "Fast Food")
	}

	first, err := svc.Page(ctx, 1)
	if err != nil {
		t.Fatalf("page 1: %v", err)
	}
	if len(first.Restaurants) != store.PageSize {
		t.Errorf("page 1 size: want %d, got %d", store.PageSize, len(first.Restaurants))
	}
	if first.TotalPages != 2 {
		t.Errorf("totalPages: want 2, got %d", first.TotalPages)
	}
	if first.TotalResults != 26 {
		t.Errorf("totalResults: want 26, got %d", first.TotalResults)
	}

	second, err := svc.Page(ctx, 2)
	if err != nil {
		t.Fatalf("page 2: %v", err)
	}
	if len(second.Restaurants) != 1 {
		t.Errorf("page 2 size: want 1, got %d", len(second.Restaurants))
	}
}

func TestSearchByName_CaseInsensitiveSubstring(t *testing.T) {
	svc, st := newSvc(t)
	owner := newOwner(t, st, "owner@example.com")
	ctx := context.Background()
	mustCreateRestaurant(t, svc, owner, "Pizza Palace", "Italian Food")
	mustCreateRestaurant(t, svc, owner, "Burger Barn", "Fast Food")

	page, err := svc.SearchByName(ctx, "PIZZA", 1)
	if err != nil {
		t.Fatalf("search: %v", err)
	}
	if len(page.Restaurants) != 1 || page.Restaurants[0].Name != "Pizza Palace" {
		t.Errorf("unexpected hits: %+v", page.Restaurants)
	}
}

func TestSearchByName_EmptyMatchIsSuccess(t *testing.T) {
	svc, st := newSvc(t)
	owner := newOwner(t, st, "owner@example.com")
	mustCreateRestaurant(t, svc, owner, "Pizza Palace", "Italian Food")

	page, err := svc.SearchByName(context.Background(), "sushi", 1)
	if err != nil {
		t.Fatalf("no match must not be an error, got %v", err)
	}
	if len(page.Restaurants) != 0 || page.TotalResults != 0 || page.TotalPages != 0 {
		t.Errorf("want empty success, got %+v", page)
	}
}

// ---------------------------------------------------------------------------
// Categories
// ---------------------------------------------------------------------------

func TestAllCategories_Counts(t *testing.T) {
	svc, st := newSvc(t)
	owner := newOwner(t, st, "owner@example.com")
	mustCreateRestaurant(t, svc, owner, "Pizza Palace", "Italian Food")
	mustCreateRestaurant(t, svc, owner, "Pasta Point", "Italian Food")
	mustCreateRestaurant(t, svc, owner, "Burger Barn", "Fast Food")

	views, err := svc.AllCategories(context.Background())
	if err != nil {
		t.Fatalf("all categories: %v", err)
	}
	if len(views) != 2 {
		t.Fatalf("want 2 categories, got %d", len(views))
	}

	counts := map[string]int64{}
	for _, v := range views {
		counts[v.Category.Slug] = v.RestaurantCount
	}
	if counts["italian-food"] != 2 {
		t.Errorf("italian-food count: want 2, got %d", counts["italian-food"])
	}
	if counts["fast-food"] != 1 {
		t.Errorf("fast-food count: want 1, got %d", counts["fast-food"])
	}
}

func TestCategoryBySlug_NotFound(t *testing.T) {
	svc, _ := newSvc(t)

	_, err := svc.CategoryBySlug(context.Background(), "no-such-slug", 1)
	if !errors.Is(err, ErrCategoryNotFound) {
		t.Fatalf("want ErrCategoryNotFound, got %v", err)
	}
}

func TestCategoryBySlug_AttachesPagedRestaurants(t *testing.T) {
	svc, st := newSvc(t)
	owner := newOwner(t, st, "owner@example.com")
	mustCreateRestaurant(t, svc, owner, "Pizza Palace", "Italian Food")
	mustCreateRestaurant(t, svc, owner, "Pasta Point", "Italian Food")
	mustCreateRestaurant(t, svc, owner, "Burger Barn", "Fast Food")

	page, err := svc.CategoryBySlug(context.Background(), "italian-food", 1)
	if err != nil {
		t.Fatalf("category by slug: %v", err)
	}
	if page.Category.Name != "Italian Food" {
		t.Errorf("category name: want Italian Food, got %q", page.Category.Name)
	}
	if len(page.Restaurants) != 2 || page.RestaurantCount != 2 {
		t.Errorf("want the category's 2 restaurants, got %d rows count=%d",
			len(page.Restaurants), page.RestaurantCount)
	}
	if page.TotalPages != 1 || page.TotalResults != 2 {
		t.Errorf("page math: want 1/2, got %d/%d", page.TotalPages, page.TotalResults)
	}
}
