package store

import (
	"context"
	"sort"
	"sync"
	"time"

	"github.com/vekodev/catalog-admin-golang/internal/models"
)

// Memory is a map-backed implementation of the three taxonomy stores, guarded
// by a single RWMutex. Tests run against it; it behaves like the MySQL stores
// (ErrNotFound semantics, deduped brand sets, copies on the way in and out so
// callers can't alias internal state).
type Memory struct {
	mu              sync.RWMutex
	brands          map[string]models.Brand
	categories      map[string]models.Category
	childCategories map[string]models.ChildCategory
}

func NewMemory() *Memory {
	return &Memory{
		brands:          map[string]models.Brand{},
		categories:      map[string]models.Category{},
		childCategories: map[string]models.ChildCategory{},
	}
}

func (m *Memory) Brands() BrandStore                  { return &memoryBrands{m} }
func (m *Memory) Categories() CategoryStore           { return &memoryCategories{m} }
func (m *Memory) ChildCategories() ChildCategoryStore { return &memoryChildCategories{m} }

func copyIDs(ids []string) []string {
	out := make([]string, len(ids))
	copy(out, ids)
	return out
}

func copyCategory(c models.Category) models.Category {
	c.BrandIDs = copyIDs(c.BrandIDs)
	return c
}

func copyChildCategory(c models.ChildCategory) models.ChildCategory {
	c.BrandIDs = copyIDs(c.BrandIDs)
	if c.CategoryID != nil {
		id := *c.CategoryID
		c.CategoryID = &id
	}
	return c
}

// --- Brands ---

type memoryBrands struct{ m *Memory }

func (s *memoryBrands) List(_ context.Context) ([]models.Brand, error) {
	s.m.mu.RLock()
	defer s.m.mu.RUnlock()
	out := make([]models.Brand, 0, len(s.m.brands))
	for _, b := range s.m.brands {
		out = append(out, b)
	}
	sort.Slice(out, func(i, j int) bool { return out[i].Name.En < out[j].Name.En })
	return out, nil
}

func (s *memoryBrands) Get(_ context.Context, id string) (*models.Brand, error) {
	s.m.mu.RLock()
	defer s.m.mu.RUnlock()
	b, ok := s.m.brands[id]
	if !ok {
		return nil, ErrNotFound
	}
	return &b, nil
}

func (s *memoryBrands) Create(_ context.Context, b *models.Brand) error {
	s.m.mu.Lock()
	defer s.m.mu.Unlock()
	s.m.brands[b.ID] = *b
	return nil
}

func (s *memoryBrands) Update(_ context.Context, id string, patch BrandPatch) (*models.Brand, error) {
	s.m.mu.Lock()
	defer s.m.mu.Unlock()
	b, ok := s.m.brands[id]
	if !ok {
		return nil, ErrNotFound
	}
	if patch.Name != nil {
		b.Name = *patch.Name
	}
	if patch.Slug != nil {
		b.Slug = *patch.Slug
	}
	b.UpdatedAt = time.Now().UTC()
	s.m.brands[id] = b
	return &b, nil
}

func (s *memoryBrands) Delete(_ context.Context, id string) error {
	s.m.mu.Lock()
	defer s.m.mu.Unlock()
	if _, ok := s.m.brands[id]; !ok {
		return ErrNotFound
	}
	delete(s.m.brands, id)
	return nil
}

// --- Categories ---

type memoryCategories struct{ m *Memory }

func (s *memoryCategories) List(_ context.Context, f CategoryFilter) ([]models.Category, error) {
	s.m.mu.RLock()
	defer s.m.mu.RUnlock()
	out := make([]models.Category, 0, len(s.m.categories))
	for _, c := range s.m.categories {
		if f.BrandID != "" && !c.LinkedToBrand(f.BrandID) {
			continue
		}
		out = append(out, copyCategory(c))
	}
	sort.Slice(out, func(i, j int) bool { return out[i].Name.En < out[j].Name.En })
	return out, nil
}

func (s *memoryCategories) Get(_ context.Context, id string) (*models.Category, error) {
	s.m.mu.RLock()
	defer s.m.mu.RUnlock()
	c, ok := s.m.categories[id]
	if !ok {
		return nil, ErrNotFound
	}
	out := copyCategory(c)
	return &out, nil
}

func (s *memoryCategories) Create(_ context.Context, c *models.Category) error {
	s.m.mu.Lock()
	defer s.m.mu.Unlock()
	stored := copyCategory(*c)
	stored.BrandIDs = dedupe(stored.BrandIDs)
	s.m.categories[c.ID] = stored
	return nil
}

func (s *memoryCategories) Update(_ context.Context, id string, patch CategoryPatch) (*models.Category, error) {
	s.m.mu.Lock()
	defer s.m.mu.Unlock()
	c, ok := s.m.categories[id]
	if !ok {
		return nil, ErrNotFound
	}
	if patch.Name != nil {
		c.Name = *patch.Name
	}
	if patch.Slug != nil {
		c.Slug = *patch.Slug
	}
	if patch.BrandIDs != nil {
		c.BrandIDs = dedupe(copyIDs(*patch.BrandIDs))
	}
	c.UpdatedAt = time.Now().UTC()
	s.m.categories[id] = c
	out := copyCategory(c)
	return &out, nil
}

func (s *memoryCategories) Delete(_ context.Context, id string) error {
	s.m.mu.Lock()
	defer s.m.mu.Unlock()
	if _, ok := s.m.categories[id]; !ok {
		return ErrNotFound
	}
	delete(s.m.categories, id)
	return nil
}

// --- Child-categories ---

type memoryChildCategories struct{ m *Memory }

func (s *memoryChildCategories) List(_ context.Context, f ChildCategoryFilter) ([]models.ChildCategory, error) {
	s.m.mu.RLock()
	defer s.m.mu.RUnlock()
	out := make([]models.ChildCategory, 0, len(s.m.childCategories))
	for _, c := range s.m.childCategories {
		if f.BrandID != "" && !c.LinkedToBrand(f.BrandID) {
			continue
		}
		if f.CategoryID != "" && (c.CategoryID == nil || *c.CategoryID != f.CategoryID) {
			continue
		}
		out = append(out, copyChildCategory(c))
	}
	sort.Slice(out, func(i, j int) bool { return out[i].Name.En < out[j].Name.En })
	return out, nil
}

func (s *memoryChildCategories) Get(_ context.Context, id string) (*models.ChildCategory, error) {
	s.m.mu.RLock()
	defer s.m.mu.RUnlock()
	c, ok := s.m.childCategories[id]
	if !ok {
		return nil, ErrNotFound
	}
	out := copyChildCategory(c)
	return &out, nil
}

func (s *memoryChildCategories) Create(_ context.Context, c *models.ChildCategory) error {
	s.m.mu.Lock()
	defer s.m.mu.Unlock()
	stored := copyChildCategory(*c)
	stored.BrandIDs = dedupe(stored.BrandIDs)
	s.m.childCategories[c.ID] = stored
	return nil
}

func (s *memoryChildCategories) Update(_ context.Context, id string, patch ChildCategoryPatch) (*models.ChildCategory, error) {
	s.m.mu.Lock()
	defer s.m.mu.Unlock()
	c, ok := s.m.childCategories[id]
	if !ok {
		return nil, ErrNotFound
	}
	if patch.Name != nil {
		c.Name = *patch.Name
	}
	if patch.Slug != nil {
		c.Slug = *patch.Slug
	}
	if patch.BrandIDs != nil {
		c.BrandIDs = dedupe(copyIDs(*patch.BrandIDs))
	}
	if patch.ClearCategoryID {
		c.CategoryID = nil
	} else if patch.CategoryID != nil {
		categoryID := *patch.CategoryID
		c.CategoryID = &categoryID
	}
	c.UpdatedAt = time.Now().UTC()
	s.m.childCategories[id] = c
	out := copyChildCategory(c)
	return &out, nil
}

func (s *memoryChildCategories) Delete(_ context.Context, id string) error {
	s.m.mu.Lock()
	defer s.m.mu.Unlock()
	if _, ok := s.m.childCategories[id]; !ok {
		return ErrNotFound
	}
	delete(s.m.childCategories, id)
	return nil
}
