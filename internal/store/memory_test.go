package store

import (
	"context"
	"errors"
	"testing"
	"time"

	"github.com/vekodev/catalog-admin-golang/internal/models"
)

func newBrand(id, nameEn string) *models.Brand {
	now := time.Now().UTC()
	return &models.Brand{
		ID:        id,
		Name:      models.LocalizedText{Ka: "ბ-" + id, En: nameEn},
		Slug:      "brand-" + id,
		CreatedAt: now,
		UpdatedAt: now,
	}
}

func newCategory(id, nameEn string, brandIDs ...string) *models.Category {
	now := time.Now().UTC()
	return &models.Category{
		ID:        id,
		Name:      models.LocalizedText{Ka: "კ-" + id, En: nameEn},
		Slug:      "category-" + id,
		BrandIDs:  brandIDs,
		CreatedAt: now,
		UpdatedAt: now,
	}
}

func newChildCategory(id, nameEn string, categoryID *string, brandIDs ...string) *models.ChildCategory {
	now := time.Now().UTC()
	return &models.ChildCategory{
		ID:         id,
		Name:       models.LocalizedText{Ka: "ქ-" + id, En: nameEn},
		Slug:       "child-" + id,
		BrandIDs:   brandIDs,
		CategoryID: categoryID,
		CreatedAt:  now,
		UpdatedAt:  now,
	}
}

func ptr(s string) *string { return &s }

func TestMemoryBrandCRUD(t *testing.T) {
	ctx := context.Background()
	brands := NewMemory().Brands()

	if err := brands.Create(ctx, newBrand("b1", "Bosch")); err != nil {
		t.Fatalf("create: %v", err)
	}
	if err := brands.Create(ctx, newBrand("b2", "Apple")); err != nil {
		t.Fatalf("create: %v", err)
	}

	got, err := brands.Get(ctx, "b1")
	if err != nil {
		t.Fatalf("get: %v", err)
	}
	if got.Name.En != "Bosch" {
		t.Fatalf("name: want=Bosch got=%q", got.Name.En)
	}

	// Lists come back sorted by English name.
	list, err := brands.List(ctx)
	if err != nil {
		t.Fatalf("list: %v", err)
	}
	if len(list) != 2 || list[0].ID != "b2" || list[1].ID != "b1" {
		t.Fatalf("list order: got=%v", list)
	}

	newName := models.LocalizedText{Ka: "ბოში", En: "Bosch GmbH"}
	updated, err := brands.Update(ctx, "b1", BrandPatch{Name: &newName})
	if err != nil {
		t.Fatalf("update: %v", err)
	}
	if updated.Name.En != "Bosch GmbH" {
		t.Fatalf("updated name: got=%q", updated.Name.En)
	}
	if updated.Slug != "brand-b1" {
		t.Fatalf("patch touched slug: got=%q", updated.Slug)
	}

	if err := brands.Delete(ctx, "b1"); err != nil {
		t.Fatalf("delete: %v", err)
	}
	if _, err := brands.Get(ctx, "b1"); !errors.Is(err, ErrNotFound) {
		t.Fatalf("get after delete: want ErrNotFound got %v", err)
	}
	if err := brands.Delete(ctx, "b1"); !errors.Is(err, ErrNotFound) {
		t.Fatalf("double delete: want ErrNotFound got %v", err)
	}
}

func TestMemoryCategoryFilterAndDedupe(t *testing.T) {
	ctx := context.Background()
	cats := NewMemory().Categories()

	// Duplicate and blank ids are scrubbed on the way in.
	if err := cats.Create(ctx, newCategory("c1", "Drills", "b1", "b1", "", "b2")); err != nil {
		t.Fatalf("create: %v", err)
	}
	if err := cats.Create(ctx, newCategory("c2", "Saws", "b2")); err != nil {
		t.Fatalf("create: %v", err)
	}

	c1, err := cats.Get(ctx, "c1")
	if err != nil {
		t.Fatalf("get: %v", err)
	}
	if len(c1.BrandIDs) != 2 || c1.BrandIDs[0] != "b1" || c1.BrandIDs[1] != "b2" {
		t.Fatalf("brandIds not deduped: %v", c1.BrandIDs)
	}

	byBrand, err := cats.List(ctx, CategoryFilter{BrandID: "b1"})
	if err != nil {
		t.Fatalf("list: %v", err)
	}
	if len(byBrand) != 1 || byBrand[0].ID != "c1" {
		t.Fatalf("brand filter: got=%v", byBrand)
	}

	all, err := cats.List(ctx, CategoryFilter{})
	if err != nil {
		t.Fatalf("list: %v", err)
	}
	if len(all) != 2 {
		t.Fatalf("unfiltered list: want 2 got %d", len(all))
	}

	brandIDs := []string{"b3", "b3"}
	updated, err := cats.Update(ctx, "c1", CategoryPatch{BrandIDs: &brandIDs})
	if err != nil {
		t.Fatalf("update: %v", err)
	}
	if len(updated.BrandIDs) != 1 || updated.BrandIDs[0] != "b3" {
		t.Fatalf("update dedupe: %v", updated.BrandIDs)
	}
}

func TestMemoryCategoryCopyIsolation(t *testing.T) {
	ctx := context.Background()
	cats := NewMemory().Categories()
	if err := cats.Create(ctx, newCategory("c1", "Drills", "b1")); err != nil {
		t.Fatalf("create: %v", err)
	}

	got, err := cats.Get(ctx, "c1")
	if err != nil {
		t.Fatalf("get: %v", err)
	}
	got.BrandIDs[0] = "mutated"

	again, err := cats.Get(ctx, "c1")
	if err != nil {
		t.Fatalf("get: %v", err)
	}
	if again.BrandIDs[0] != "b1" {
		t.Fatalf("caller mutation leaked into the store: %v", again.BrandIDs)
	}
}

func TestMemoryChildCategoryFilters(t *testing.T) {
	ctx := context.Background()
	children := NewMemory().ChildCategories()

	seed := []*models.ChildCategory{
		newChildCategory("x1", "Hammer drills", ptr("c1"), "b1"),
		newChildCategory("x2", "Impact drivers", ptr("c1"), "b2"),
		newChildCategory("x3", "Jigsaws", ptr("c2"), "b1"),
		newChildCategory("x4", "Unfiled", nil, "b1"),
	}
	for _, c := range seed {
		if err := children.Create(ctx, c); err != nil {
			t.Fatalf("create %s: %v", c.ID, err)
		}
	}

	byBrand, err := children.List(ctx, ChildCategoryFilter{BrandID: "b1"})
	if err != nil {
		t.Fatalf("list: %v", err)
	}
	if len(byBrand) != 3 {
		t.Fatalf("brand filter: want 3 got %d", len(byBrand))
	}

	byPair, err := children.List(ctx, ChildCategoryFilter{BrandID: "b1", CategoryID: "c1"})
	if err != nil {
		t.Fatalf("list: %v", err)
	}
	if len(byPair) != 1 || byPair[0].ID != "x1" {
		t.Fatalf("pair filter: got=%v", byPair)
	}

	byCategory, err := children.List(ctx, ChildCategoryFilter{CategoryID: "c2"})
	if err != nil {
		t.Fatalf("list: %v", err)
	}
	if len(byCategory) != 1 || byCategory[0].ID != "x3" {
		t.Fatalf("category filter: got=%v", byCategory)
	}
}

func TestMemoryChildCategoryPatchCategoryID(t *testing.T) {
	ctx := context.Background()
	children := NewMemory().ChildCategories()
	if err := children.Create(ctx, newChildCategory("x1", "Hammer drills", ptr("c1"), "b1")); err != nil {
		t.Fatalf("create: %v", err)
	}

	// Nil CategoryID leaves the link untouched.
	brandIDs := []string{"b1", "b2"}
	got, err := children.Update(ctx, "x1", ChildCategoryPatch{BrandIDs: &brandIDs})
	if err != nil {
		t.Fatalf("update: %v", err)
	}
	if got.CategoryID == nil || *got.CategoryID != "c1" {
		t.Fatalf("categoryId should be untouched, got %v", got.CategoryID)
	}

	// Setting repoints it.
	got, err = children.Update(ctx, "x1", ChildCategoryPatch{CategoryID: ptr("c2")})
	if err != nil {
		t.Fatalf("update: %v", err)
	}
	if got.CategoryID == nil || *got.CategoryID != "c2" {
		t.Fatalf("categoryId should be c2, got %v", got.CategoryID)
	}

	// ClearCategoryID wins even when CategoryID is also set.
	got, err = children.Update(ctx, "x1", ChildCategoryPatch{CategoryID: ptr("c3"), ClearCategoryID: true})
	if err != nil {
		t.Fatalf("update: %v", err)
	}
	if got.CategoryID != nil {
		t.Fatalf("categoryId should be cleared, got %q", *got.CategoryID)
	}
}

func TestDedupe(t *testing.T) {
	got := dedupe([]string{"a", "", "b", "a", "c", "b"})
	want := []string{"a", "b", "c"}
	if len(got) != len(want) {
		t.Fatalf("want=%v got=%v", want, got)
	}
	for i := range want {
		if got[i] != want[i] {
			t.Fatalf("order not preserved: want=%v got=%v", want, got)
		}
	}
}
