package models

import "time"

// NewsArticle is a bilingual editorial post shown on the storefront.
type NewsArticle struct {
	ID          string        `json:"id"`
	Title       LocalizedText `json:"title"`
	Body        LocalizedText `json:"body"`
	Slug        string        `json:"slug"`
	PublishedAt *time.Time    `json:"publishedAt,omitempty"`
	CreatedAt   time.Time     `json:"createdAt"`
	UpdatedAt   time.Time     `json:"updatedAt"`
}

type CreateNewsInput struct {
	Title       LocalizedText `json:"title"`
	Body        LocalizedText `json:"body"`
	PublishedAt *time.Time    `json:"publishedAt"`
}

func (in CreateNewsInput) Validate() map[string]string {
	errs := map[string]string{}
	in.Title.ValidateInto("title", errs)
	in.Body.ValidateInto("body", errs)
	return errs
}

type UpdateNewsInput struct {
	Title       *LocalizedText `json:"title"`
	Body        *LocalizedText `json:"body"`
	PublishedAt *time.Time     `json:"publishedAt"`
}

func (in UpdateNewsInput) Validate() map[string]string {
	errs := map[string]string{}
	if in.Title != nil {
		in.Title.ValidateInto("title", errs)
	}
	if in.Body != nil {
		in.Body.ValidateInto("body", errs)
	}
	return errs
}
