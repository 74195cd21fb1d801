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

// GetAllBrands is the handler for GET /v1/brands
func (h *Handlers) GetAllBrands(c *gin.Context) {
	var brands []models.Brand
	if hit, err := h.Cache.GetList(c.Request.Context(), cache.CollectionBrands, &brands); err == nil && hit {
		c.JSON(http.StatusOK, gin.H{"brands": brands})
		return
	}

	brands, err := h.Brands.List(c.Request.Context())
	if err != nil {
		h.Log.Error("list brands failed", "error", err)
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Database query failed"})
		return
	}
	h.Cache.SetList(c.Request.Context(), cache.CollectionBrands, brands)

	c.JSON(http.StatusOK, gin.H{"brands": brands})
}

// GetBrand is the handler for GET /v1/brands/:id
func (h *Handlers) GetBrand(c *gin.Context) {
	brand, err := h.Brands.Get(c.Request.Context(), c.Param("id"))
	if err != nil {
		if errors.Is(err, store.ErrNotFound) {
			c.JSON(http.StatusNotFound, gin.H{"error": "Brand not found"})
			return
		}
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Database query failed"})
		return
	}
	c.JSON(http.StatusOK, gin.H{"brand": brand})
}

// CreateBrand is the handler for POST /v1/brands (manager only)
func (h *Handlers) CreateBrand(c *gin.Context) {
	var input models.CreateBrandInput
	if err := c.ShouldBindJSON(&input); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}
	if errs := input.Validate(); len(errs) > 0 {
		c.JSON(http.StatusBadRequest, gin.H{"errors": errs})
		return
	}

	now := time.Now().UTC()
	brand := &models.Brand{
		ID:        uuid.NewString(),
		Name:      input.Name,
		Slug:      input.Slug,
		CreatedAt: now,
		UpdatedAt: now,
	}
	if err := h.Brands.Create(c.Request.Context(), brand); err != nil {
		// Most likely a UNIQUE violation on slug.
		h.Log.Error("create brand failed", "slug", input.Slug, "error", err)
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to create brand, the slug may already exist"})
		return
	}
	h.Cache.Invalidate(c.Request.Context(), cache.CollectionBrands)

	c.JSON(http.StatusCreated, gin.H{"message": "Brand created", "brand": brand})
}

// UpdateBrand is the handler for PUT /v1/brands/:id (manager only)
func (h *Handlers) UpdateBrand(c *gin.Context) {
	var input models.UpdateBrandInput
	if err := c.ShouldBindJSON(&input); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}
	if errs := input.Validate(); len(errs) > 0 {
		c.JSON(http.StatusBadRequest, gin.H{"errors": errs})
		return
	}

	brand, err := h.Brands.Update(c.Request.Context(), c.Param("id"), store.BrandPatch{
		Name: input.Name,
		Slug: input.Slug,
	})
	if err != nil {
		if errors.Is(err, store.ErrNotFound) {
			c.JSON(http.StatusNotFound, gin.H{"error": "Brand not found"})
			return
		}
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to update brand"})
		return
	}
	h.Cache.Invalidate(c.Request.Context(), cache.CollectionBrands)

	c.JSON(http.StatusOK, gin.H{"message": "Brand updated", "brand": brand})
}

// DeleteBrand is the handler for DELETE /v1/brands/:id (manager only).
// Category and child-category brand links cascade away in the database, so
// their cached views are stale too and get invalidated together.
func (h *Handlers) DeleteBrand(c *gin.Context) {
	if err := h.Brands.Delete(c.Request.Context(), c.Param("id")); err != nil {
		if errors.Is(err, store.ErrNotFound) {
			c.JSON(http.StatusNotFound, gin.H{"error": "Brand not found"})
			return
		}
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to delete brand"})
		return
	}
	h.Cache.Invalidate(c.Request.Context(),
		cache.CollectionBrands, cache.CollectionCategories, cache.CollectionChildCategories)

	c.JSON(http.StatusOK, gin.H{"message": "Brand deleted"})
}
