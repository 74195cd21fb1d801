package taxonomy

import "github.com/vekodev/catalog-admin-golang/internal/models"

// Preselection helpers: given the full candidate list, derive which ids are
// currently linked to the target. The assignment dialogs call these every
// time the target changes, replacing whatever the operator had toggled.

// AssignedCategoryIDs returns the ids of categories currently linked to the
// brand.
func AssignedCategoryIDs(brandID string, all []models.Category) []string {
	ids := make([]string, 0, len(all))
	for _, c := range all {
		if c.LinkedToBrand(brandID) {
			ids = append(ids, c.ID)
		}
	}
	return ids
}

// AssignedChildCategoryIDs returns the ids of child-categories currently
// assigned to the (brand, category) pair.
func AssignedChildCategoryIDs(brandID, categoryID string, all []models.ChildCategory) []string {
	ids := make([]string, 0, len(all))
	for _, c := range all {
		if c.AssignedTo(brandID, categoryID) {
			ids = append(ids, c.ID)
		}
	}
	return ids
}

// EligibleCategories filters the category selector for the child-category
// workflow: only categories already linked to the chosen brand are offered.
func EligibleCategories(brandID string, all []models.Category) []models.Category {
	out := make([]models.Category, 0, len(all))
	for _, c := range all {
		if c.LinkedToBrand(brandID) {
			out = append(out, c)
		}
	}
	return out
}

// ChildTarget tracks the brand+category pair while the operator is choosing
// one in the child-category workflow.
type ChildTarget struct {
	BrandID    string
	CategoryID string
}

// SetBrand switches the brand and drops the chosen category if it is not
// eligible under the new brand.
func (t *ChildTarget) SetBrand(brandID string, categories []models.Category) {
	t.BrandID = brandID
	if t.CategoryID == "" {
		return
	}
	for _, c := range EligibleCategories(brandID, categories) {
		if c.ID == t.CategoryID {
			return
		}
	}
	t.CategoryID = ""
}

func (t *ChildTarget) SetCategory(categoryID string) {
	t.CategoryID = categoryID
}

// Complete reports whether both halves of the target are selected.
func (t ChildTarget) Complete() bool {
	return t.BrandID != "" && t.CategoryID != ""
}
