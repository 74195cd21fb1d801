// Package store defines the persistence interfaces for the taxonomy entities
// and ships a MySQL implementation plus an in-memory one used by tests.
// Everything above this package works with plain ids and these interfaces;
// nothing else knows about link tables or SQL.
package store

import (
	"context"
	"errors"

	"github.com/vekodev/catalog-admin-golang/internal/models"
)

// ErrNotFound is returned when an id does not resolve to a record.
var ErrNotFound = errors.New("record not found")

// CategoryFilter narrows a category listing. Zero value means "all".
type CategoryFilter struct {
	BrandID string
}

// ChildCategoryFilter narrows a child-category listing. Zero value means "all".
type ChildCategoryFilter struct {
	BrandID    string
	CategoryID string
}

// Patches carry partial updates; nil fields are left untouched.

type BrandPatch struct {
	Name *models.LocalizedText
	Slug *string
}

type CategoryPatch struct {
	Name     *models.LocalizedText
	Slug     *string
	BrandIDs *[]string // replaces the whole brand link set
}

// ChildCategoryPatch needs a tri-state for CategoryID: set it, clear it, or
// leave it alone. ClearCategoryID wins over CategoryID when both are given.
type ChildCategoryPatch struct {
	Name            *models.LocalizedText
	Slug            *string
	BrandIDs        *[]string
	CategoryID      *string
	ClearCategoryID bool
}

type BrandStore interface {
	List(ctx context.Context) ([]models.Brand, error)
	Get(ctx context.Context, id string) (*models.Brand, error)
	Create(ctx context.Context, b *models.Brand) error
	Update(ctx context.Context, id string, patch BrandPatch) (*models.Brand, error)
	Delete(ctx context.Context, id string) error
}

type CategoryStore interface {
	List(ctx context.Context, f CategoryFilter) ([]models.Category, error)
	Get(ctx context.Context, id string) (*models.Category, error)
	Create(ctx context.Context, c *models.Category) error
	Update(ctx context.Context, id string, patch CategoryPatch) (*models.Category, error)
	Delete(ctx context.Context, id string) error
}

// ChildCategoryStore persists child-categories. Writes are permissive about
// the CategoryID/BrandIDs relationship: nothing here checks that the parent
// category is linked to one of the child's brands. Only the guided assignment
// workflow maintains that consistency; direct edits can bypass it.
type ChildCategoryStore interface {
	List(ctx context.Context, f ChildCategoryFilter) ([]models.ChildCategory, error)
	Get(ctx context.Context, id string) (*models.ChildCategory, error)
	Create(ctx context.Context, c *models.ChildCategory) error
	Update(ctx context.Context, id string, patch ChildCategoryPatch) (*models.ChildCategory, error)
	Delete(ctx context.Context, id string) error
}

// dedupe returns ids with duplicates and blanks removed, preserving order.
// Brand link sets go through here on every write so stores never persist a
// duplicate reference.
func dedupe(ids []string) []string {
	seen := make(map[string]bool, len(ids))
	out := make([]string, 0, len(ids))
	for _, id := range ids {
		if id == "" || seen[id] {
			continue
		}
		seen[id] = true
		out = append(out, id)
	}
	return out
}
