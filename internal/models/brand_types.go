package models

import "time"

// Brand is the top level of the catalog taxonomy (a manufacturer).
type Brand struct {
	ID        string        `json:"id"`
	Name      LocalizedText `json:"name"`
	Slug      string        `json:"slug"`
	CreatedAt time.Time     `json:"createdAt"`
	UpdatedAt time.Time     `json:"updatedAt"`
}

// --- API Input Structs ---

type CreateBrandInput struct {
	Name LocalizedText `json:"name"`
	Slug string        `json:"slug"`
}

// Validate returns field-level errors; an empty map means the input is good.
func (in CreateBrandInput) Validate() map[string]string {
	errs := map[string]string{}
	in.Name.ValidateInto("name", errs)
	if in.Slug == "" {
		errs["slug"] = "slug is required"
	} else if !ValidSlug(in.Slug) {
		errs["slug"] = "slug must be lowercase and URL-safe"
	}
	return errs
}

type UpdateBrandInput struct {
	Name *LocalizedText `json:"name"`
	Slug *string        `json:"slug"`
}

func (in UpdateBrandInput) Validate() map[string]string {
	errs := map[string]string{}
	if in.Name != nil {
		in.Name.ValidateInto("name", errs)
	}
	if in.Slug != nil && !ValidSlug(*in.Slug) {
		errs["slug"] = "slug must be lowercase and URL-safe"
	}
	return errs
}
