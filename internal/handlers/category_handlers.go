package handlers

import (
	"errors"
	"net/http"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/google/uuid"

	"github.com/vekodev/catalog-admin-golang/internal/cache"
	"github.com/vekodev/catalog-admin-golang/internal/models"
	"github.com/vekodev/catalog-admin-golang/internal/store"
)

// GetAllCategories is the handler for GET /v1/categories?brandId=
// Only the unfiltered listing is cached; brand-scoped views are cheap and
// would multiply the keys to invalidate.
func (h *Handlers) GetAllCategories(c *gin.Context) {
	filter := store.CategoryFilter{BrandID: c.Query("brandId")}

	if filter.BrandID == "" {
		var categories []models.Category
		if hit, err := h.Cache.GetList(c.Request.Context(), cache.CollectionCategories, &categories); err == nil && hit {
			c.JSON(http.StatusOK, gin.H{"categories": categories})
			return
		}
	}

	categories, err := h.Categories.List(c.Request.Context(), filter)
	if err != nil {
		h.Log.Error("list categories failed", "error", err)
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Database query failed"})
		return
	}
	if filter.BrandID == "" {
		h.Cache.SetList(c.Request.Context(), cache.CollectionCategories, categories)
	}

	c.JSON(http.StatusOK, gin.H{"categories": categories})
}

// GetCategory is the handler for GET /v1/categories/:id
func (h *Handlers) GetCategory(c *gin.Context) {
	category, err := h.Categories.Get(c.Request.Context(), c.Param("id"))
	if err != nil {
		if errors.Is(err, store.ErrNotFound) {
			c.JSON(http.StatusNotFound, gin.H{"error": "Category not found"})
			return
		}
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Database query failed"})
		return
	}
	c.JSON(http.StatusOK, gin.H{"category": category})
}

// CreateCategory is the handler for POST /v1/categories (manager only)
func (h *Handlers) CreateCategory(c *gin.Context) {
	var input models.CreateCategoryInput
	if err := c.ShouldBindJSON(&input); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}
	if errs := input.Validate(); len(errs) > 0 {
		c.JSON(http.StatusBadRequest, gin.H{"errors": errs})
		return
	}

	now := time.Now().UTC()
	category := &models.Category{
		ID:        uuid.NewString(),
		Name:      input.Name,
		Slug:      input.Slug,
		BrandIDs:  models.RefIDs(input.BrandIDs),
		CreatedAt: now,
		UpdatedAt: now,
	}
	if err := h.Categories.Create(c.Request.Context(), category); err != nil {
		h.Log.Error("create category failed", "slug", input.Slug, "error", err)
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to create category, the slug may already exist"})
		return
	}
	h.Cache.Invalidate(c.Request.Context(), cache.CollectionCategories)

	c.JSON(http.StatusCreated, gin.H{"message": "Category created", "category": category})
}

// UpdateCategory is the handler for PUT /v1/categories/:id (manager only)
func (h *Handlers) UpdateCategory(c *gin.Context) {
	var input models.UpdateCategoryInput
	if err := c.ShouldBindJSON(&input); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}
	if errs := input.Validate(); len(errs) > 0 {
		c.JSON(http.StatusBadRequest, gin.H{"errors": errs})
		return
	}

	patch := store.CategoryPatch{Name: input.Name, Slug: input.Slug}
	if input.BrandIDs != nil {
		brandIDs := models.RefIDs(*input.BrandIDs)
		patch.BrandIDs = &brandIDs
	}
	category, err := h.Categories.Update(c.Request.Context(), c.Param("id"), patch)
	if err != nil {
		if errors.Is(err, store.ErrNotFound) {
			c.JSON(http.StatusNotFound, gin.H{"error": "Category not found"})
			return
		}
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to update category"})
		return
	}
	h.Cache.Invalidate(c.Request.Context(), cache.CollectionCategories)

	c.JSON(http.StatusOK, gin.H{"message": "Category updated", "category": category})
}

// DeleteCategory is the handler for DELETE /v1/categories/:id (manager only).
// Child-categories pointing at it get their category_id nulled by the
// database, so that collection's cache goes too.
func (h *Handlers) DeleteCategory(c *gin.Context) {
	if err := h.Categories.Delete(c.Request.Context(), c.Param("id")); err != nil {
		if errors.Is(err, store.ErrNotFound) {
			c.JSON(http.StatusNotFound, gin.H{"error": "Category not found"})
			return
		}
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to delete category"})
		return
	}
	h.Cache.Invalidate(c.Request.Context(), cache.CollectionCategories, cache.CollectionChildCategories)

	c.JSON(http.StatusOK, gin.H{"message": "Category deleted"})
}
