package models

import "time"

// ChildCategory is the third taxonomy level. Like Category it links to any
// number of brands, and it may additionally point at a single parent Category.
// The pair (brand ∈ BrandIDs, CategoryID == category) is what the bulk
// assignment workflow treats as "assigned to (brand, category)".
//
// CategoryID is only meaningful alongside brand membership: a child-category
// with no brand links has no parent-category context, which is why emptying
// BrandIDs also clears CategoryID in the assignment workflow.
type ChildCategory struct {
	ID         string        `json:"id"`
	Name       LocalizedText `json:"name"`
	Slug       string        `json:"slug"`
	BrandIDs   []string      `json:"brandIds"`
	CategoryID *string       `json:"categoryId,omitempty"`
	CreatedAt  time.Time     `json:"createdAt"`
	UpdatedAt  time.Time     `json:"updatedAt"`
}

// LinkedToBrand reports whether the child-category carries a link to the brand.
func (c ChildCategory) LinkedToBrand(brandID string) bool {
	for _, id := range c.BrandIDs {
		if id == brandID {
			return true
		}
	}
	return false
}

// AssignedTo reports whether the compound (brand, category) relation holds.
func (c ChildCategory) AssignedTo(brandID, categoryID string) bool {
	return c.LinkedToBrand(brandID) && c.CategoryID != nil && *c.CategoryID == categoryID
}

// --- API Input Structs ---

type CreateChildCategoryInput struct {
	Name       LocalizedText `json:"name"`
	Slug       string        `json:"slug"`
	BrandIDs   []EntityRef   `json:"brandIds"`
	CategoryID *EntityRef    `json:"categoryId"`
}

func (in CreateChildCategoryInput) Validate() map[string]string {
	errs := map[string]string{}
	in.Name.ValidateInto("name", errs)
	if in.Slug == "" {
		errs["slug"] = "slug is required"
	} else if !ValidSlug(in.Slug) {
		errs["slug"] = "slug must be lowercase and URL-safe"
	}
	return errs
}

// UpdateChildCategoryInput patches a child-category. Sending "categoryId": ""
// clears the parent-category link; omitting the field leaves it untouched.
type UpdateChildCategoryInput struct {
	Name       *LocalizedText `json:"name"`
	Slug       *string        `json:"slug"`
	BrandIDs   *[]EntityRef   `json:"brandIds"`
	CategoryID *EntityRef     `json:"categoryId"`
}

func (in UpdateChildCategoryInput) Validate() map[string]string {
	errs := map[string]string{}
	if in.Name != nil {
		in.Name.ValidateInto("name", errs)
	}
	if in.Slug != nil && !ValidSlug(*in.Slug) {
		errs["slug"] = "slug must be lowercase and URL-safe"
	}
	return errs
}
