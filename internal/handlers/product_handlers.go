package handlers

import (
	"database/sql"
	"errors"
	"net/http"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/google/uuid"
	"github.com/gosimple/slug"

	"github.com/vekodev/catalog-admin-golang/internal/cache"
	"github.com/vekodev/catalog-admin-golang/internal/models"
)

// Products are plain back-office CRUD, so the handlers query the database
// directly instead of going through a store layer.

type productRow struct {
	ID              string         `db:"id"`
	NameKa          string         `db:"name_ka"`
	NameEn          string         `db:"name_en"`
	Slug            string         `db:"slug"`
	Price           float64        `db:"price"`
	BrandID         sql.NullString `db:"brand_id"`
	CategoryID      sql.NullString `db:"category_id"`
	ChildCategoryID sql.NullString `db:"child_category_id"`
	CreatedAt       time.Time      `db:"created_at"`
	UpdatedAt       time.Time      `db:"updated_at"`
}

func (r productRow) toModel() models.Product {
	p := models.Product{
		ID:        r.ID,
		Name:      models.LocalizedText{Ka: r.NameKa, En: r.NameEn},
		Slug:      r.Slug,
		Price:     r.Price,
		CreatedAt: r.CreatedAt,
		UpdatedAt: r.UpdatedAt,
	}
	if r.BrandID.Valid {
		v := r.BrandID.String
		p.BrandID = &v
	}
	if r.CategoryID.Valid {
		v := r.CategoryID.String
		p.CategoryID = &v
	}
	if r.ChildCategoryID.Valid {
		v := r.ChildCategoryID.String
		p.ChildCategoryID = &v
	}
	return p
}

// GetAllProducts is the handler for GET /v1/products?brandId=&categoryId=
func (h *Handlers) GetAllProducts(c *gin.Context) {
	query := `
		SELECT id, name_ka, name_en, slug, price, brand_id, category_id, child_category_id, created_at, updated_at
		FROM products`
	var args []interface{}
	brandID := c.Query("brandId")
	categoryID := c.Query("categoryId")

	if brandID == "" && categoryID == "" {
		var products []models.Product
		if hit, err := h.Cache.GetList(c.Request.Context(), cache.CollectionProducts, &products); err == nil && hit {
			c.JSON(http.StatusOK, gin.H{"products": products})
			return
		}
	}

	switch {
	case brandID != "" && categoryID != "":
		query += ` WHERE brand_id = ? AND category_id = ?`
		args = append(args, brandID, categoryID)
	case brandID != "":
		query += ` WHERE brand_id = ?`
		args = append(args, brandID)
	case categoryID != "":
		query += ` WHERE category_id = ?`
		args = append(args, categoryID)
	}
	query += ` ORDER BY name_en ASC`

	var rows []productRow
	if err := h.DB.SelectContext(c.Request.Context(), &rows, query, args...); err != nil {
		h.Log.Error("list products failed", "error", err)
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Database query failed"})
		return
	}
	products := make([]models.Product, 0, len(rows))
	for _, r := range rows {
		products = append(products, r.toModel())
	}
	if brandID == "" && categoryID == "" {
		h.Cache.SetList(c.Request.Context(), cache.CollectionProducts, products)
	}

	c.JSON(http.StatusOK, gin.H{"products": products})
}

// GetProduct is the handler for GET /v1/products/:id
func (h *Handlers) GetProduct(c *gin.Context) {
	var row productRow
	query := `
		SELECT id, name_ka, name_en, slug, price, brand_id, category_id, child_category_id, created_at, updated_at
		FROM products WHERE id = ?`
	if err := h.DB.GetContext(c.Request.Context(), &row, query, c.Param("id")); err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			c.JSON(http.StatusNotFound, gin.H{"error": "Product not found"})
			return
		}
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Database query failed"})
		return
	}
	product := row.toModel()
	c.JSON(http.StatusOK, gin.H{"product": product})
}

// CreateProduct is the handler for POST /v1/products (manager only)
func (h *Handlers) CreateProduct(c *gin.Context) {
	var input models.CreateProductInput
	if err := c.ShouldBindJSON(&input); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}
	if errs := input.Validate(); len(errs) > 0 {
		c.JSON(http.StatusBadRequest, gin.H{"errors": errs})
		return
	}

	now := time.Now().UTC()
	product := models.Product{
		ID:        uuid.NewString(),
		Name:      input.Name,
		Slug:      slug.Make(input.Name.En),
		Price:     input.Price,
		CreatedAt: now,
		UpdatedAt: now,
	}
	product.BrandID = refToID(input.BrandID)
	product.CategoryID = refToID(input.CategoryID)
	product.ChildCategoryID = refToID(input.ChildCategoryID)

	query := `
		INSERT INTO products (id, name_ka, name_en, slug, price, brand_id, category_id, child_category_id, created_at, updated_at)
		VALUES (?, ?, ?, ?, ?, ?, ?, ?, ?, ?)`
	if _, err := h.DB.ExecContext(c.Request.Context(), query,
		product.ID, product.Name.Ka, product.Name.En, product.Slug, product.Price,
		product.BrandID, product.CategoryID, product.ChildCategoryID,
		product.CreatedAt, product.UpdatedAt); err != nil {
		h.Log.Error("create product failed", "error", err)
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to create product"})
		return
	}
	h.Cache.Invalidate(c.Request.Context(), cache.CollectionProducts)

	c.JSON(http.StatusCreated, gin.H{"message": "Product created", "product": product})
}

// UpdateProduct is the handler for PUT /v1/products/:id (manager only)
func (h *Handlers) UpdateProduct(c *gin.Context) {
	var input models.UpdateProductInput
	if err := c.ShouldBindJSON(&input); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}
	if errs := input.Validate(); len(errs) > 0 {
		c.JSON(http.StatusBadRequest, gin.H{"errors": errs})
		return
	}

	var row productRow
	getQuery := `
		SELECT id, name_ka, name_en, slug, price, brand_id, category_id, child_category_id, created_at, updated_at
		FROM products WHERE id = ?`
	if err := h.DB.GetContext(c.Request.Context(), &row, getQuery, c.Param("id")); err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			c.JSON(http.StatusNotFound, gin.H{"error": "Product not found"})
			return
		}
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Database query failed"})
		return
	}
	product := row.toModel()

	if input.Name != nil {
		product.Name = *input.Name
		product.Slug = slug.Make(input.Name.En)
	}
	if input.Price != nil {
		product.Price = *input.Price
	}
	if input.BrandID != nil {
		product.BrandID = refToID(input.BrandID)
	}
	if input.CategoryID != nil {
		product.CategoryID = refToID(input.CategoryID)
	}
	if input.ChildCategoryID != nil {
		product.ChildCategoryID = refToID(input.ChildCategoryID)
	}
	product.UpdatedAt = time.Now().UTC()

	query := `
		UPDATE products
		SET name_ka = ?, name_en = ?, slug = ?, price = ?, brand_id = ?, category_id = ?, child_category_id = ?, updated_at = ?
		WHERE id = ?`
	if _, err := h.DB.ExecContext(c.Request.Context(), query,
		product.Name.Ka, product.Name.En, product.Slug, product.Price,
		product.BrandID, product.CategoryID, product.ChildCategoryID,
		product.UpdatedAt, product.ID); err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to update product"})
		return
	}
	h.Cache.Invalidate(c.Request.Context(), cache.CollectionProducts)

	c.JSON(http.StatusOK, gin.H{"message": "Product updated", "product": product})
}

// DeleteProduct is the handler for DELETE /v1/products/:id (manager only)
func (h *Handlers) DeleteProduct(c *gin.Context) {
	res, err := h.DB.ExecContext(c.Request.Context(), `DELETE FROM products WHERE id = ?`, c.Param("id"))
	if err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to delete product"})
		return
	}
	if n, err := res.RowsAffected(); err == nil && n == 0 {
		c.JSON(http.StatusNotFound, gin.H{"error": "Product not found"})
		return
	}
	h.Cache.Invalidate(c.Request.Context(), cache.CollectionProducts)

	c.JSON(http.StatusOK, gin.H{"message": "Product deleted"})
}

// refToID converts an optional reference to a nullable plain id. An empty
// reference clears the field.
func refToID(ref *models.EntityRef) *string {
	if ref == nil || ref.String() == "" {
		return nil
	}
	id := ref.String()
	return &id
}
