package handlers

import (
	"errors"
	"net/http"

	"github.com/gin-gonic/gin"

	"github.com/vekodev/catalog-admin-golang/internal/models"
	"github.com/vekodev/catalog-admin-golang/internal/store"
	"github.com/vekodev/catalog-admin-golang/internal/taxonomy"
)

// The two bulk-assignment workflows. Each has a GET that returns the full
// candidate list plus the ids currently assigned to the target (the dialog's
// preselection), and a PUT that takes the operator's final selection and lets
// the reconciler work out the minimal add/remove batch.

// CategoryAssignmentsInput carries the desired selection for workflow A.
// References may be bare ids or expanded objects.
type CategoryAssignmentsInput struct {
	CategoryIDs []models.EntityRef `json:"categoryIds"`
}

// ChildCategoryAssignmentsInput carries the desired selection for workflow B.
type ChildCategoryAssignmentsInput struct {
	ChildCategoryIDs []models.EntityRef `json:"childCategoryIds"`
}

// GetCategoryAssignments is the handler for GET /v1/brands/:id/category-assignments
func (h *Handlers) GetCategoryAssignments(c *gin.Context) {
	brandID := c.Param("id")
	if !h.brandExists(c, brandID) {
		return
	}

	categories, err := h.Categories.List(c.Request.Context(), store.CategoryFilter{})
	if err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Database query failed"})
		return
	}

	c.JSON(http.StatusOK, gin.H{
		"candidates":  categories,
		"assignedIds": taxonomy.AssignedCategoryIDs(brandID, categories),
	})
}

// PutCategoryAssignments is the handler for PUT /v1/brands/:id/category-assignments
// (manager only). The body is the complete desired selection, not a delta.
func (h *Handlers) PutCategoryAssignments(c *gin.Context) {
	brandID := c.Param("id")
	if !h.brandExists(c, brandID) {
		return
	}

	var input CategoryAssignmentsInput
	if err := c.ShouldBindJSON(&input); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}

	outcome, summary, err := h.Reconciler.AssignCategories(
		c.Request.Context(), brandID, models.RefIDs(input.CategoryIDs))
	h.respondAssignment(c, outcome, summary, err, "category", "categories")
}

// GetEligibleCategories is the handler for GET /v1/brands/:id/eligible-categories
// It backs the category selector of the child-category workflow: only
// categories already linked to the brand are offered.
func (h *Handlers) GetEligibleCategories(c *gin.Context) {
	brandID := c.Param("id")
	if !h.brandExists(c, brandID) {
		return
	}

	categories, err := h.Categories.List(c.Request.Context(), store.CategoryFilter{BrandID: brandID})
	if err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Database query failed"})
		return
	}
	// The store already filtered by brand; re-filter in memory anyway so a
	// backend that ignores the parameter can't widen the selector.
	categories = taxonomy.EligibleCategories(brandID, categories)

	c.JSON(http.StatusOK, gin.H{"categories": categories})
}

// GetChildCategoryAssignments is the handler for
// GET /v1/brands/:id/categories/:categoryId/childcategory-assignments
func (h *Handlers) GetChildCategoryAssignments(c *gin.Context) {
	brandID := c.Param("id")
	categoryID := c.Param("categoryId")
	if !h.brandExists(c, brandID) || !h.categoryExists(c, categoryID) {
		return
	}

	childCategories, err := h.ChildCategories.List(c.Request.Context(), store.ChildCategoryFilter{})
	if err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Database query failed"})
		return
	}

	c.JSON(http.StatusOK, gin.H{
		"candidates":  childCategories,
		"assignedIds": taxonomy.AssignedChildCategoryIDs(brandID, categoryID, childCategories),
	})
}

// PutChildCategoryAssignments is the handler for
// PUT /v1/brands/:id/categories/:categoryId/childcategory-assignments (manager only)
func (h *Handlers) PutChildCategoryAssignments(c *gin.Context) {
	brandID := c.Param("id")
	categoryID := c.Param("categoryId")
	if !h.brandExists(c, brandID) || !h.categoryExists(c, categoryID) {
		return
	}

	var input ChildCategoryAssignmentsInput
	if err := c.ShouldBindJSON(&input); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}

	outcome, summary, err := h.Reconciler.AssignChildCategories(
		c.Request.Context(), brandID, categoryID, models.RefIDs(input.ChildCategoryIDs))
	h.respondAssignment(c, outcome, summary, err, "child category", "child categories")
}

func (h *Handlers) respondAssignment(c *gin.Context, outcome taxonomy.Outcome, summary taxonomy.Summary, err error, singular, plural string) {
	if err != nil {
		if errors.Is(err, taxonomy.ErrMissingTarget) {
			c.JSON(http.StatusBadRequest, gin.H{"error": "Assignment target is not set"})
			return
		}
		// Some updates may have landed; the client re-fetches either way.
		c.JSON(http.StatusInternalServerError, gin.H{
			"error":   "Failed to apply some assignment changes",
			"added":   summary.Added,
			"removed": summary.Removed,
		})
		return
	}
	if outcome == taxonomy.OutcomeNoChange {
		c.JSON(http.StatusOK, gin.H{
			"message": "No changes",
			"noop":    true,
			"added":   0,
			"removed": 0,
		})
		return
	}
	c.JSON(http.StatusOK, gin.H{
		"message": summary.Message(singular, plural),
		"noop":    false,
		"added":   summary.Added,
		"removed": summary.Removed,
	})
}

func (h *Handlers) brandExists(c *gin.Context, brandID string) bool {
	if _, err := h.Brands.Get(c.Request.Context(), brandID); err != nil {
		if errors.Is(err, store.ErrNotFound) {
			c.JSON(http.StatusNotFound, gin.H{"error": "Brand not found"})
		} else {
			c.JSON(http.StatusInternalServerError, gin.H{"error": "Database query failed"})
		}
		return false
	}
	return true
}

func (h *Handlers) categoryExists(c *gin.Context, categoryID string) bool {
	if _, err := h.Categories.Get(c.Request.Context(), categoryID); err != nil {
		if errors.Is(err, store.ErrNotFound) {
			c.JSON(http.StatusNotFound, gin.H{"error": "Category not found"})
		} else {
			c.JSON(http.StatusInternalServerError, gin.H{"error": "Database query failed"})
		}
		return false
	}
	return true
}
