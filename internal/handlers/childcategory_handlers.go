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

// GetAllChildCategories is the handler for GET /v1/childcategories?brandId=&categoryId=
func (h *Handlers) GetAllChildCategories(c *gin.Context) {
	filter := store.ChildCategoryFilter{
		BrandID:    c.Query("brandId"),
		CategoryID: c.Query("categoryId"),
	}

	if filter.BrandID == "" && filter.CategoryID == "" {
		var childCategories []models.ChildCategory
		if hit, err := h.Cache.GetList(c.Request.Context(), cache.CollectionChildCategories, &childCategories); err == nil && hit {
			c.JSON(http.StatusOK, gin.H{"childCategories": childCategories})
			return
		}
	}

	childCategories, err := h.ChildCategories.List(c.Request.Context(), filter)
	if err != nil {
		h.Log.Error("list child-categories failed", "error", err)
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Database query failed"})
		return
	}
	if filter.BrandID == "" && filter.CategoryID == "" {
		h.Cache.SetList(c.Request.Context(), cache.CollectionChildCategories, childCategories)
	}

	c.JSON(http.StatusOK, gin.H{"childCategories": childCategories})
}

// GetChildCategory is the handler for GET /v1/childcategories/:id
func (h *Handlers) GetChildCategory(c *gin.Context) {
	childCategory, err := h.ChildCategories.Get(c.Request.Context(), c.Param("id"))
	if err != nil {
		if errors.Is(err, store.ErrNotFound) {
			c.JSON(http.StatusNotFound, gin.H{"error": "Child-category not found"})
			return
		}
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Database query failed"})
		return
	}
	c.JSON(http.StatusOK, gin.H{"childCategory": childCategory})
}

// CreateChildCategory is the handler for POST /v1/childcategories (manager only)
func (h *Handlers) CreateChildCategory(c *gin.Context) {
	var input models.CreateChildCategoryInput
	if err := c.ShouldBindJSON(&input); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}
	if errs := input.Validate(); len(errs) > 0 {
		c.JSON(http.StatusBadRequest, gin.H{"errors": errs})
		return
	}

	now := time.Now().UTC()
	childCategory := &models.ChildCategory{
		ID:        uuid.NewString(),
		Name:      input.Name,
		Slug:      input.Slug,
		BrandIDs:  models.RefIDs(input.BrandIDs),
		CreatedAt: now,
		UpdatedAt: now,
	}
	if input.CategoryID != nil && input.CategoryID.String() != "" {
		categoryID := input.CategoryID.String()
		childCategory.CategoryID = &categoryID
	}
	if err := h.ChildCategories.Create(c.Request.Context(), childCategory); err != nil {
		h.Log.Error("create child-category failed", "slug", input.Slug, "error", err)
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to create child-category, the slug may already exist"})
		return
	}
	h.Cache.Invalidate(c.Request.Context(), cache.CollectionChildCategories)

	c.JSON(http.StatusCreated, gin.H{"message": "Child-category created", "childCategory": childCategory})
}

// UpdateChildCategory is the handler for PUT /v1/childcategories/:id (manager only).
// Sending "categoryId": "" clears the parent category link. Direct edits here
// can break the brand/category consistency the assignment workflow maintains;
// the store stays permissive about that on purpose.
func (h *Handlers) UpdateChildCategory(c *gin.Context) {
	var input models.UpdateChildCategoryInput
	if err := c.ShouldBindJSON(&input); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}
	if errs := input.Validate(); len(errs) > 0 {
		c.JSON(http.StatusBadRequest, gin.H{"errors": errs})
		return
	}

	patch := store.ChildCategoryPatch{Name: input.Name, Slug: input.Slug}
	if input.BrandIDs != nil {
		brandIDs := models.RefIDs(*input.BrandIDs)
		patch.BrandIDs = &brandIDs
	}
	if input.CategoryID != nil {
		if input.CategoryID.String() == "" {
			patch.ClearCategoryID = true
		} else {
			categoryID := input.CategoryID.String()
			patch.CategoryID = &categoryID
		}
	}
	childCategory, err := h.ChildCategories.Update(c.Request.Context(), c.Param("id"), patch)
	if err != nil {
		if errors.Is(err, store.ErrNotFound) {
			c.JSON(http.StatusNotFound, gin.H{"error": "Child-category not found"})
			return
		}
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to update child-category"})
		return
	}
	h.Cache.Invalidate(c.Request.Context(), cache.CollectionChildCategories)

	c.JSON(http.StatusOK, gin.H{"message": "Child-category updated", "childCategory": childCategory})
}

// DeleteChildCategory is the handler for DELETE /v1/childcategories/:id (manager only)
func (h *Handlers) DeleteChildCategory(c *gin.Context) {
	if err := h.ChildCategories.Delete(c.Request.Context(), c.Param("id")); err != nil {
		if errors.Is(err, store.ErrNotFound) {
			c.JSON(http.StatusNotFound, gin.H{"error": "Child-category not found"})
			return
		}
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to delete child-category"})
		return
	}
	h.Cache.Invalidate(c.Request.Context(), cache.CollectionChildCategories)

	c.JSON(http.StatusOK, gin.H{"message": "Child-category deleted"})
}
