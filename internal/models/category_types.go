package models

import "time"

// Category is the second taxonomy level. A category can belong to several
// brands at once; BrandIDs is a set (no duplicates, order not meaningful).
// A category with no brand links is valid, it just stays out of brand-scoped
// views until an operator assigns it.
type Category struct {
	ID        string        `json:"id"`
	Name      LocalizedText `json:"name"`
	Slug      string        `json:"slug"`
	BrandIDs  []string      `json:"brandIds"`
	CreatedAt time.Time     `json:"createdAt"`
	UpdatedAt time.Time     `json:"updatedAt"`
}

// LinkedToBrand reports whether the category carries a link to the brand.
func (c Category) LinkedToBrand(brandID string) bool {
	for _, id := range c.BrandIDs {
		if id == brandID {
			return true
		}
	}
	return false
}

// --- API Input Structs ---

type CreateCategoryInput struct {
	Name     LocalizedText `json:"name"`
	Slug     string        `json:"slug"`
	BrandIDs []EntityRef   `json:"brandIds"`
}

func (in CreateCategoryInput) Validate() map[string]string {
	errs := map[string]string{}
	in.Name.ValidateInto("name", errs)
	if in.Slug == "" {
		errs["slug"] = "slug is required"
	} else if !ValidSlug(in.Slug) {
		errs["slug"] = "slug must be lowercase and URL-safe"
	}
	return errs
}

type UpdateCategoryInput struct {
	Name     *LocalizedText `json:"name"`
	Slug     *string        `json:"slug"`
	BrandIDs *[]EntityRef   `json:"brandIds"`
}

func (in UpdateCategoryInput) Validate() map[string]string {
	errs := map[string]string{}
	if in.Name != nil {
		in.Name.ValidateInto("name", errs)
	}
	if in.Slug != nil && !ValidSlug(*in.Slug) {
		errs["slug"] = "slug must be lowercase and URL-safe"
	}
	return errs
}
