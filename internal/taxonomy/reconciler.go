// Package taxonomy implements the assignment core of the catalog: given a
// target brand (or brand+category pair) and the set of entities an operator
// wants linked to it, it computes the minimal add/remove diff and applies it
// as a batch of per-entity updates against the stores.
package taxonomy

import (
	"context"
	"errors"
	"fmt"
	"sort"

	"golang.org/x/sync/errgroup"

	"github.com/vekodev/catalog-admin-golang/internal/cache"
	"github.com/vekodev/catalog-admin-golang/internal/pkg/logger"
	"github.com/vekodev/catalog-admin-golang/internal/store"
)

// ErrMissingTarget is returned before any store call when the brand (or
// brand+category) target has not been selected.
var ErrMissingTarget = errors.New("taxonomy: assignment target is not set")

// Outcome distinguishes "nothing to do" from an applied batch. A no-op run
// issues zero store updates and must not invalidate any caches.
type Outcome int

const (
	OutcomeNoChange Outcome = iota
	OutcomeApplied
)

// Summary carries the computed diff sizes for the operator-facing message.
type Summary struct {
	Added   int
	Removed int
}

// Message renders "Added 1 category, Removed 2 categories" style summaries.
func (s Summary) Message(singular, plural string) string {
	return fmt.Sprintf("Added %s, Removed %s",
		countNoun(s.Added, singular, plural),
		countNoun(s.Removed, singular, plural))
}

func countNoun(n int, singular, plural string) string {
	if n == 1 {
		return "1 " + singular
	}
	return fmt.Sprintf("%d %s", n, plural)
}

// Diff computes the id sets that take current to desired:
// toAdd = desired − current, toRemove = current − desired. The two results are
// always disjoint. They are sorted only so logs and tests stay stable; apply
// order is irrelevant because each id appears in at most one set.
func Diff(current, desired []string) (toAdd, toRemove []string) {
	cur := toSet(current)
	want := toSet(desired)
	for id := range want {
		if !cur[id] {
			toAdd = append(toAdd, id)
		}
	}
	for id := range cur {
		if !want[id] {
			toRemove = append(toRemove, id)
		}
	}
	sort.Strings(toAdd)
	sort.Strings(toRemove)
	return toAdd, toRemove
}

func toSet(ids []string) map[string]bool {
	set := make(map[string]bool, len(ids))
	for _, id := range ids {
		set[id] = true
	}
	return set
}

// Reconciler applies assignment diffs against the taxonomy stores.
//
// Batches are best-effort: every update is issued concurrently and awaited,
// there is no cross-entity transaction and no rollback. On partial failure the
// aggregate error is returned and callers re-read authoritative state. Caches
// are invalidated whenever at least one update was issued, success or not,
// since any subset of the batch may have landed.
type Reconciler struct {
	Categories      store.CategoryStore
	ChildCategories store.ChildCategoryStore
	Cache           cache.Store
	Log             *logger.Logger
}

func NewReconciler(categories store.CategoryStore, childCategories store.ChildCategoryStore, c cache.Store, log *logger.Logger) *Reconciler {
	if c == nil {
		c = cache.Noop{}
	}
	if log == nil {
		log = logger.NewNop()
	}
	return &Reconciler{Categories: categories, ChildCategories: childCategories, Cache: c, Log: log}
}

// AssignCategories reconciles which categories are linked to the brand.
// desired is the full post-operation selection, not a delta.
func (r *Reconciler) AssignCategories(ctx context.Context, brandID string, desired []string) (Outcome, Summary, error) {
	if brandID == "" {
		return OutcomeNoChange, Summary{}, ErrMissingTarget
	}

	all, err := r.Categories.List(ctx, store.CategoryFilter{})
	if err != nil {
		return OutcomeNoChange, Summary{}, fmt.Errorf("load category candidates: %w", err)
	}
	current := AssignedCategoryIDs(brandID, all)
	toAdd, toRemove := Diff(current, desired)
	summary := Summary{Added: len(toAdd), Removed: len(toRemove)}
	if len(toAdd) == 0 && len(toRemove) == 0 {
		return OutcomeNoChange, summary, nil
	}

	// Updates run concurrently and all of them run to completion; a plain
	// errgroup (no context cancellation) keeps the first error without
	// aborting in-flight siblings.
	var g errgroup.Group
	for _, id := range toAdd {
		id := id
		g.Go(func() error {
			cat, err := r.Categories.Get(ctx, id)
			if err != nil {
				return fmt.Errorf("add category %s: %w", id, err)
			}
			brandIDs := cat.BrandIDs
			if !cat.LinkedToBrand(brandID) {
				brandIDs = append(copyIDs(brandIDs), brandID)
			}
			if _, err := r.Categories.Update(ctx, id, store.CategoryPatch{BrandIDs: &brandIDs}); err != nil {
				return fmt.Errorf("add category %s: %w", id, err)
			}
			return nil
		})
	}
	for _, id := range toRemove {
		id := id
		g.Go(func() error {
			cat, err := r.Categories.Get(ctx, id)
			if err != nil {
				return fmt.Errorf("remove category %s: %w", id, err)
			}
			brandIDs := removeID(cat.BrandIDs, brandID)
			if _, err := r.Categories.Update(ctx, id, store.CategoryPatch{BrandIDs: &brandIDs}); err != nil {
				return fmt.Errorf("remove category %s: %w", id, err)
			}
			return nil
		})
	}
	applyErr := g.Wait()

	r.Cache.Invalidate(ctx, cache.CollectionCategories)
	if applyErr != nil {
		r.Log.Error("category assignment batch failed",
			"brandId", brandID, "toAdd", len(toAdd), "toRemove", len(toRemove), "error", applyErr)
		return OutcomeApplied, summary, fmt.Errorf("assignment batch failed: %w", applyErr)
	}
	r.Log.Info("category assignment applied",
		"brandId", brandID, "added", summary.Added, "removed", summary.Removed)
	return OutcomeApplied, summary, nil
}

// AssignChildCategories reconciles which child-categories are assigned to the
// (brand, category) pair. Membership means the brand is in the child's brand
// set AND its parent category equals the target category.
//
// Adding always points the child's categoryId at the target category, even if
// it previously pointed elsewhere. Removing drops the brand link; categoryId
// is cleared only when the brand set empties, otherwise it is kept as-is even
// when the removed brand was the one the category came with. Working out
// whether a remaining brand still "owns" the category would need information
// the candidate alone doesn't carry, so the link is conservatively retained.
func (r *Reconciler) AssignChildCategories(ctx context.Context, brandID, categoryID string, desired []string) (Outcome, Summary, error) {
	if brandID == "" || categoryID == "" {
		return OutcomeNoChange, Summary{}, ErrMissingTarget
	}

	all, err := r.ChildCategories.List(ctx, store.ChildCategoryFilter{})
	if err != nil {
		return OutcomeNoChange, Summary{}, fmt.Errorf("load child-category candidates: %w", err)
	}
	current := AssignedChildCategoryIDs(brandID, categoryID, all)
	toAdd, toRemove := Diff(current, desired)
	summary := Summary{Added: len(toAdd), Removed: len(toRemove)}
	if len(toAdd) == 0 && len(toRemove) == 0 {
		return OutcomeNoChange, summary, nil
	}

	var g errgroup.Group
	for _, id := range toAdd {
		id := id
		g.Go(func() error {
			child, err := r.ChildCategories.Get(ctx, id)
			if err != nil {
				return fmt.Errorf("add child-category %s: %w", id, err)
			}
			brandIDs := child.BrandIDs
			if !child.LinkedToBrand(brandID) {
				brandIDs = append(copyIDs(brandIDs), brandID)
			}
			patch := store.ChildCategoryPatch{BrandIDs: &brandIDs, CategoryID: &categoryID}
			if _, err := r.ChildCategories.Update(ctx, id, patch); err != nil {
				return fmt.Errorf("add child-category %s: %w", id, err)
			}
			return nil
		})
	}
	for _, id := range toRemove {
		id := id
		g.Go(func() error {
			child, err := r.ChildCategories.Get(ctx, id)
			if err != nil {
				return fmt.Errorf("remove child-category %s: %w", id, err)
			}
			brandIDs := removeID(child.BrandIDs, brandID)
			patch := store.ChildCategoryPatch{BrandIDs: &brandIDs}
			if len(brandIDs) == 0 {
				// No brand links left, so a single parent category has no
				// context anymore.
				patch.ClearCategoryID = true
			}
			if _, err := r.ChildCategories.Update(ctx, id, patch); err != nil {
				return fmt.Errorf("remove child-category %s: %w", id, err)
			}
			return nil
		})
	}
	applyErr := g.Wait()

	r.Cache.Invalidate(ctx, cache.CollectionChildCategories)
	if applyErr != nil {
		r.Log.Error("child-category assignment batch failed",
			"brandId", brandID, "categoryId", categoryID,
			"toAdd", len(toAdd), "toRemove", len(toRemove), "error", applyErr)
		return OutcomeApplied, summary, fmt.Errorf("assignment batch failed: %w", applyErr)
	}
	r.Log.Info("child-category assignment applied",
		"brandId", brandID, "categoryId", categoryID,
		"added", summary.Added, "removed", summary.Removed)
	return OutcomeApplied, summary, nil
}

func copyIDs(ids []string) []string {
	out := make([]string, len(ids))
	copy(out, ids)
	return out
}

func removeID(ids []string, drop string) []string {
	out := make([]string, 0, len(ids))
	for _, id := range ids {
		if id != drop {
			out = append(out, id)
		}
	}
	return out
}
