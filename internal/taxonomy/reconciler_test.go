package taxonomy

import (
	"context"
	"errors"
	"sort"
	"sync"
	"testing"
	"time"

	"github.com/vekodev/catalog-admin-golang/internal/models"
	"github.com/vekodev/catalog-admin-golang/internal/pkg/logger"
	"github.com/vekodev/catalog-admin-golang/internal/store"
)

func TestDiff(t *testing.T) {
	cases := []struct {
		name       string
		current    []string
		desired    []string
		wantAdd    []string
		wantRemove []string
	}{
		{"both empty", nil, nil, nil, nil},
		{"equal sets", []string{"a", "b"}, []string{"b", "a"}, nil, nil},
		{"add only", []string{"a"}, []string{"a", "b", "c"}, []string{"b", "c"}, nil},
		{"remove only", []string{"a", "b", "c"}, []string{"b"}, nil, []string{"a", "c"}},
		{"swap", []string{"a", "b"}, []string{"b", "c"}, []string{"c"}, []string{"a"}},
		{"disjoint", []string{"a"}, []string{"b"}, []string{"b"}, []string{"a"}},
	}
	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			toAdd, toRemove := Diff(tc.current, tc.desired)
			if !equalIDs(toAdd, tc.wantAdd) {
				t.Fatalf("toAdd: want=%v got=%v", tc.wantAdd, toAdd)
			}
			if !equalIDs(toRemove, tc.wantRemove) {
				t.Fatalf("toRemove: want=%v got=%v", tc.wantRemove, toRemove)
			}

			// toAdd and toRemove are disjoint, toAdd is new, toRemove comes
			// from current, and (current ∪ toAdd) − toRemove == desired.
			cur := toSet(tc.current)
			for _, id := range toAdd {
				if cur[id] {
					t.Fatalf("toAdd contains current id %q", id)
				}
			}
			for _, id := range toRemove {
				if !cur[id] {
					t.Fatalf("toRemove contains non-current id %q", id)
				}
			}
			result := toSet(tc.current)
			for _, id := range toAdd {
				result[id] = true
			}
			for _, id := range toRemove {
				delete(result, id)
			}
			want := toSet(tc.desired)
			if len(result) != len(want) {
				t.Fatalf("reconstructed set: want=%v got=%v", want, result)
			}
			for id := range want {
				if !result[id] {
					t.Fatalf("reconstructed set is missing %q", id)
				}
			}
		})
	}
}

func TestSummaryMessage(t *testing.T) {
	msg := Summary{Added: 1, Removed: 1}.Message("category", "categories")
	if msg != "Added 1 category, Removed 1 category" {
		t.Fatalf("unexpected message: %q", msg)
	}
	msg = Summary{Added: 0, Removed: 2}.Message("child category", "child categories")
	if msg != "Added 0 child categories, Removed 2 child categories" {
		t.Fatalf("unexpected message: %q", msg)
	}
}

// --- Test doubles ---

type recordingCache struct {
	mu          sync.Mutex
	invalidated []string
}

func (c *recordingCache) GetList(context.Context, string, interface{}) (bool, error) {
	return false, nil
}
func (c *recordingCache) SetList(context.Context, string, interface{}) {}
func (c *recordingCache) Invalidate(_ context.Context, collections ...string) {
	c.mu.Lock()
	defer c.mu.Unlock()
	c.invalidated = append(c.invalidated, collections...)
}

type countingCategoryStore struct {
	store.CategoryStore
	mu         sync.Mutex
	updates    int
	failUpdate map[string]error
}

func (s *countingCategoryStore) Update(ctx context.Context, id string, patch store.CategoryPatch) (*models.Category, error) {
	s.mu.Lock()
	s.updates++
	failErr := s.failUpdate[id]
	s.mu.Unlock()
	if failErr != nil {
		return nil, failErr
	}
	return s.CategoryStore.Update(ctx, id, patch)
}

func (s *countingCategoryStore) updateCount() int {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.updates
}

type countingChildStore struct {
	store.ChildCategoryStore
	mu      sync.Mutex
	updates int
}

func (s *countingChildStore) Update(ctx context.Context, id string, patch store.ChildCategoryPatch) (*models.ChildCategory, error) {
	s.mu.Lock()
	s.updates++
	s.mu.Unlock()
	return s.ChildCategoryStore.Update(ctx, id, patch)
}

func (s *countingChildStore) updateCount() int {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.updates
}

// --- Fixtures ---

func seedCategory(t *testing.T, s store.CategoryStore, id string, brandIDs ...string) {
	t.Helper()
	now := time.Now().UTC()
	err := s.Create(context.Background(), &models.Category{
		ID:        id,
		Name:      models.LocalizedText{Ka: "კატეგორია " + id, En: "Category " + id},
		Slug:      "category-" + id,
		BrandIDs:  brandIDs,
		CreatedAt: now,
		UpdatedAt: now,
	})
	if err != nil {
		t.Fatalf("seed category %s: %v", id, err)
	}
}

func seedChildCategory(t *testing.T, s store.ChildCategoryStore, id string, categoryID *string, brandIDs ...string) {
	t.Helper()
	now := time.Now().UTC()
	err := s.Create(context.Background(), &models.ChildCategory{
		ID:         id,
		Name:       models.LocalizedText{Ka: "ქვეკატეგორია " + id, En: "Child " + id},
		Slug:       "child-" + id,
		BrandIDs:   brandIDs,
		CategoryID: categoryID,
		CreatedAt:  now,
		UpdatedAt:  now,
	})
	if err != nil {
		t.Fatalf("seed child-category %s: %v", id, err)
	}
}

func strPtr(s string) *string { return &s }

func newTestReconciler(mem *store.Memory, rc *recordingCache) (*Reconciler, *countingCategoryStore, *countingChildStore) {
	cats := &countingCategoryStore{CategoryStore: mem.Categories()}
	children := &countingChildStore{ChildCategoryStore: mem.ChildCategories()}
	r := NewReconciler(cats, children, rc, logger.NewNop())
	return r, cats, children
}

// --- Category workflow (workflow A) ---

func TestAssignCategoriesNoChanges(t *testing.T) {
	mem := store.NewMemory()
	rc := &recordingCache{}
	r, cats, _ := newTestReconciler(mem, rc)
	seedCategory(t, mem.Categories(), "c1", "b1")
	seedCategory(t, mem.Categories(), "c2", "b1")
	seedCategory(t, mem.Categories(), "c3")

	outcome, summary, err := r.AssignCategories(context.Background(), "b1", []string{"c1", "c2"})
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if outcome != OutcomeNoChange {
		t.Fatalf("outcome: want=NoChange got=%v", outcome)
	}
	if summary.Added != 0 || summary.Removed != 0 {
		t.Fatalf("summary: want 0/0 got %d/%d", summary.Added, summary.Removed)
	}
	if n := cats.updateCount(); n != 0 {
		t.Fatalf("no-op issued %d updates", n)
	}
	if len(rc.invalidated) != 0 {
		t.Fatalf("no-op invalidated caches: %v", rc.invalidated)
	}
}

func TestAssignCategoriesAddAndRemove(t *testing.T) {
	mem := store.NewMemory()
	rc := &recordingCache{}
	r, cats, _ := newTestReconciler(mem, rc)
	seedCategory(t, mem.Categories(), "c1", "b1")
	seedCategory(t, mem.Categories(), "c2", "b1")
	seedCategory(t, mem.Categories(), "c3", "b2")

	outcome, summary, err := r.AssignCategories(context.Background(), "b1", []string{"c2", "c3"})
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if outcome != OutcomeApplied {
		t.Fatalf("outcome: want=Applied got=%v", outcome)
	}
	if summary.Added != 1 || summary.Removed != 1 {
		t.Fatalf("summary: want 1/1 got %d/%d", summary.Added, summary.Removed)
	}
	if msg := summary.Message("category", "categories"); msg != "Added 1 category, Removed 1 category" {
		t.Fatalf("unexpected summary message: %q", msg)
	}
	// Only the two changed categories were touched.
	if n := cats.updateCount(); n != 2 {
		t.Fatalf("update count: want=2 got=%d", n)
	}

	c1, _ := mem.Categories().Get(context.Background(), "c1")
	if c1.LinkedToBrand("b1") {
		t.Fatalf("c1 should have been unlinked from b1: %v", c1.BrandIDs)
	}
	c3, _ := mem.Categories().Get(context.Background(), "c3")
	if !c3.LinkedToBrand("b1") || !c3.LinkedToBrand("b2") {
		t.Fatalf("c3 should be linked to both brands: %v", c3.BrandIDs)
	}
	if len(rc.invalidated) == 0 {
		t.Fatal("applied batch did not invalidate the categories cache")
	}
}

func TestAssignCategoriesMissingTarget(t *testing.T) {
	mem := store.NewMemory()
	r, cats, _ := newTestReconciler(mem, &recordingCache{})

	_, _, err := r.AssignCategories(context.Background(), "", []string{"c1"})
	if !errors.Is(err, ErrMissingTarget) {
		t.Fatalf("want ErrMissingTarget, got %v", err)
	}
	if n := cats.updateCount(); n != 0 {
		t.Fatalf("validation failure issued %d updates", n)
	}
}

func TestAssignCategoriesPartialFailure(t *testing.T) {
	mem := store.NewMemory()
	rc := &recordingCache{}
	r, cats, _ := newTestReconciler(mem, rc)
	seedCategory(t, mem.Categories(), "c1")
	seedCategory(t, mem.Categories(), "c2")
	cats.failUpdate = map[string]error{"c2": errors.New("boom")}

	_, summary, err := r.AssignCategories(context.Background(), "b1", []string{"c1", "c2"})
	if err == nil {
		t.Fatal("expected aggregate failure")
	}
	if summary.Added != 2 {
		t.Fatalf("summary.Added: want=2 got=%d", summary.Added)
	}
	// The successful update is not rolled back.
	c1, _ := mem.Categories().Get(context.Background(), "c1")
	if !c1.LinkedToBrand("b1") {
		t.Fatalf("c1 update should have stuck: %v", c1.BrandIDs)
	}
	c2, _ := mem.Categories().Get(context.Background(), "c2")
	if c2.LinkedToBrand("b1") {
		t.Fatalf("c2 update should have failed: %v", c2.BrandIDs)
	}
	// Caches are still invalidated: a subset of the batch may have landed.
	if len(rc.invalidated) == 0 {
		t.Fatal("failed batch must still invalidate caches")
	}
}

// --- Child-category workflow (workflow B) ---

func TestAssignChildCategoriesSelectUnassigned(t *testing.T) {
	mem := store.NewMemory()
	r, _, _ := newTestReconciler(mem, &recordingCache{})
	seedChildCategory(t, mem.ChildCategories(), "y", nil)

	outcome, _, err := r.AssignChildCategories(context.Background(), "b1", "c1", []string{"y"})
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if outcome != OutcomeApplied {
		t.Fatalf("outcome: want=Applied got=%v", outcome)
	}
	y, _ := mem.ChildCategories().Get(context.Background(), "y")
	if !equalIDs(y.BrandIDs, []string{"b1"}) {
		t.Fatalf("brandIds: want=[b1] got=%v", y.BrandIDs)
	}
	if y.CategoryID == nil || *y.CategoryID != "c1" {
		t.Fatalf("categoryId: want=c1 got=%v", y.CategoryID)
	}
}

func TestAssignChildCategoriesNoDuplicateBrand(t *testing.T) {
	// x already carries b1 but points at a different category, so it is not
	// currently assigned to (b1, c1). Adding it must not double the b1 link.
	mem := store.NewMemory()
	r, _, _ := newTestReconciler(mem, &recordingCache{})
	seedChildCategory(t, mem.ChildCategories(), "x", strPtr("c2"), "b1")

	if _, _, err := r.AssignChildCategories(context.Background(), "b1", "c1", []string{"x"}); err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	x, _ := mem.ChildCategories().Get(context.Background(), "x")
	if !equalIDs(x.BrandIDs, []string{"b1"}) {
		t.Fatalf("brandIds: want=[b1] got=%v", x.BrandIDs)
	}
	if x.CategoryID == nil || *x.CategoryID != "c1" {
		t.Fatalf("categoryId should be repointed to c1, got %v", x.CategoryID)
	}
}

func TestAssignChildCategoriesRemoveKeepsCategoryWhenBrandsRemain(t *testing.T) {
	mem := store.NewMemory()
	r, _, _ := newTestReconciler(mem, &recordingCache{})
	seedChildCategory(t, mem.ChildCategories(), "x", strPtr("c1"), "b1", "b2")

	if _, _, err := r.AssignChildCategories(context.Background(), "b1", "c1", nil); err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	x, _ := mem.ChildCategories().Get(context.Background(), "x")
	if !equalIDs(x.BrandIDs, []string{"b2"}) {
		t.Fatalf("brandIds: want=[b2] got=%v", x.BrandIDs)
	}
	// Another brand still references x, so the category link is retained.
	if x.CategoryID == nil || *x.CategoryID != "c1" {
		t.Fatalf("categoryId should be retained, got %v", x.CategoryID)
	}
}

func TestAssignChildCategoriesRemoveLastBrandClearsCategory(t *testing.T) {
	mem := store.NewMemory()
	r, children, _ := newTestReconcilerChildFirst(mem)
	seedChildCategory(t, mem.ChildCategories(), "x", strPtr("c1"), "b1")

	if _, _, err := r.AssignChildCategories(context.Background(), "b1", "c1", nil); err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	x, _ := mem.ChildCategories().Get(context.Background(), "x")
	if len(x.BrandIDs) != 0 {
		t.Fatalf("brandIds: want empty got=%v", x.BrandIDs)
	}
	if x.CategoryID != nil {
		t.Fatalf("categoryId should be cleared, got %q", *x.CategoryID)
	}
	if n := children.updateCount(); n != 1 {
		t.Fatalf("update count: want=1 got=%d", n)
	}
}

func TestAssignChildCategoriesMissingCategoryTarget(t *testing.T) {
	mem := store.NewMemory()
	r, _, _ := newTestReconciler(mem, &recordingCache{})

	_, _, err := r.AssignChildCategories(context.Background(), "b1", "", []string{"x"})
	if !errors.Is(err, ErrMissingTarget) {
		t.Fatalf("want ErrMissingTarget, got %v", err)
	}
}

func newTestReconcilerChildFirst(mem *store.Memory) (*Reconciler, *countingChildStore, *recordingCache) {
	rc := &recordingCache{}
	children := &countingChildStore{ChildCategoryStore: mem.ChildCategories()}
	r := NewReconciler(mem.Categories(), children, rc, logger.NewNop())
	return r, children, rc
}

func equalIDs(got, want []string) bool {
	if len(got) != len(want) {
		return false
	}
	g := append([]string{}, got...)
	w := append([]string{}, want...)
	sort.Strings(g)
	sort.Strings(w)
	for i := range g {
		if g[i] != w[i] {
			return false
		}
	}
	return true
}
