package models

import "time"

// Product is a catalog item. Taxonomy references are plain foreign keys; any
// of them may be absent while an operator is still filing the product.
type Product struct {
	ID              string        `json:"id"`
	Name            LocalizedText `json:"name"`
	Slug            string        `json:"slug"`
	Price           float64       `json:"price"`
	BrandID         *string       `json:"brandId,omitempty"`
	CategoryID      *string       `json:"categoryId,omitempty"`
	ChildCategoryID *string       `json:"childCategoryId,omitempty"`
	CreatedAt       time.Time     `json:"createdAt"`
	UpdatedAt       time.Time     `json:"updatedAt"`
}

type CreateProductInput struct {
	Name            LocalizedText `json:"name"`
	Price           float64       `json:"price"`
	BrandID         *EntityRef    `json:"brandId"`
	CategoryID      *EntityRef    `json:"categoryId"`
	ChildCategoryID *EntityRef    `json:"childCategoryId"`
}

func (in CreateProductInput) Validate() map[string]string {
	errs := map[string]string{}
	in.Name.ValidateInto("name", errs)
	if in.Price < 0 {
		errs["price"] = "price cannot be negative"
	}
	return errs
}

type UpdateProductInput struct {
	Name            *LocalizedText `json:"name"`
	Price           *float64       `json:"price"`
	BrandID         *EntityRef     `json:"brandId"`
	CategoryID      *EntityRef     `json:"categoryId"`
	ChildCategoryID *EntityRef     `json:"childCategoryId"`
}

func (in UpdateProductInput) Validate() map[string]string {
	errs := map[string]string{}
	if in.Name != nil {
		in.Name.ValidateInto("name", errs)
	}
	if in.Price != nil && *in.Price < 0 {
		errs["price"] = "price cannot be negative"
	}
	return errs
}
