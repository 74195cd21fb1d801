package taxonomy

import (
	"testing"

	"github.com/vekodev/catalog-admin-golang/internal/models"
)

func cat(id string, brandIDs ...string) models.Category {
	return models.Category{
		ID:       id,
		Name:     models.LocalizedText{Ka: "კ-" + id, En: "Cat " + id},
		Slug:     "cat-" + id,
		BrandIDs: brandIDs,
	}
}

func child(id string, categoryID *string, brandIDs ...string) models.ChildCategory {
	return models.ChildCategory{
		ID:         id,
		Name:       models.LocalizedText{Ka: "ქ-" + id, En: "Child " + id},
		Slug:       "child-" + id,
		BrandIDs:   brandIDs,
		CategoryID: categoryID,
	}
}

func TestAssignedCategoryIDs(t *testing.T) {
	all := []models.Category{
		cat("c1", "b1", "b2"),
		cat("c2", "b2"),
		cat("c3"),
	}
	got := AssignedCategoryIDs("b1", all)
	if !equalIDs(got, []string{"c1"}) {
		t.Fatalf("want=[c1] got=%v", got)
	}
	if got := AssignedCategoryIDs("b9", all); len(got) != 0 {
		t.Fatalf("unknown brand: want empty got=%v", got)
	}
}

func TestAssignedChildCategoryIDs(t *testing.T) {
	// Membership needs both the brand link and the matching parent category.
	all := []models.ChildCategory{
		child("x1", strPtr("c1"), "b1"),
		child("x2", strPtr("c2"), "b1"),
		child("x3", strPtr("c1"), "b2"),
		child("x4", nil, "b1"),
	}
	got := AssignedChildCategoryIDs("b1", "c1", all)
	if !equalIDs(got, []string{"x1"}) {
		t.Fatalf("want=[x1] got=%v", got)
	}
}

func TestEligibleCategories(t *testing.T) {
	all := []models.Category{
		cat("c1", "b1"),
		cat("c2", "b2"),
		cat("c3", "b1", "b2"),
	}
	got := EligibleCategories("b1", all)
	ids := make([]string, 0, len(got))
	for _, c := range got {
		ids = append(ids, c.ID)
	}
	if !equalIDs(ids, []string{"c1", "c3"}) {
		t.Fatalf("want=[c1 c3] got=%v", ids)
	}
}

func TestChildTargetSetBrandKeepsEligibleCategory(t *testing.T) {
	categories := []models.Category{cat("c1", "b1", "b2")}
	target := ChildTarget{}
	target.SetBrand("b1", categories)
	target.SetCategory("c1")

	target.SetBrand("b2", categories)
	if target.CategoryID != "c1" {
		t.Fatalf("category should survive the brand switch, got %q", target.CategoryID)
	}
	if !target.Complete() {
		t.Fatal("target should be complete")
	}
}

func TestChildTargetSetBrandDropsIneligibleCategory(t *testing.T) {
	categories := []models.Category{
		cat("c1", "b1"),
		cat("c2", "b2"),
	}
	target := ChildTarget{}
	target.SetBrand("b1", categories)
	target.SetCategory("c1")

	// c1 is not linked to b2, so switching brands resets the category half.
	target.SetBrand("b2", categories)
	if target.CategoryID != "" {
		t.Fatalf("category should have been dropped, got %q", target.CategoryID)
	}
	if target.Complete() {
		t.Fatal("target should be incomplete after the reset")
	}
}
