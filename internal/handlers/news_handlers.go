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

type newsRow struct {
	ID          string       `db:"id"`
	TitleKa     string       `db:"title_ka"`
	TitleEn     string       `db:"title_en"`
	BodyKa      string       `db:"body_ka"`
	BodyEn      string       `db:"body_en"`
	Slug        string       `db:"slug"`
	PublishedAt sql.NullTime `db:"published_at"`
	CreatedAt   time.Time    `db:"created_at"`
	UpdatedAt   time.Time    `db:"updated_at"`
}

func (r newsRow) toModel() models.NewsArticle {
	article := models.NewsArticle{
		ID:        r.ID,
		Title:     models.LocalizedText{Ka: r.TitleKa, En: r.TitleEn},
		Body:      models.LocalizedText{Ka: r.BodyKa, En: r.BodyEn},
		Slug:      r.Slug,
		CreatedAt: r.CreatedAt,
		UpdatedAt: r.UpdatedAt,
	}
	if r.PublishedAt.Valid {
		t := r.PublishedAt.Time
		article.PublishedAt = &t
	}
	return article
}

// GetAllNews is the handler for GET /v1/news
func (h *Handlers) GetAllNews(c *gin.Context) {
	var articles []models.NewsArticle
	if hit, err := h.Cache.GetList(c.Request.Context(), cache.CollectionNews, &articles); err == nil && hit {
		c.JSON(http.StatusOK, gin.H{"news": articles})
		return
	}

	var rows []newsRow
	query := `
		SELECT id, title_ka, title_en, body_ka, body_en, slug, published_at, created_at, updated_at
		FROM news ORDER BY created_at DESC`
	if err := h.DB.SelectContext(c.Request.Context(), &rows, query); err != nil {
		h.Log.Error("list news failed", "error", err)
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Database query failed"})
		return
	}
	articles = make([]models.NewsArticle, 0, len(rows))
	for _, r := range rows {
		articles = append(articles, r.toModel())
	}
	h.Cache.SetList(c.Request.Context(), cache.CollectionNews, articles)

	c.JSON(http.StatusOK, gin.H{"news": articles})
}

// GetNews is the handler for GET /v1/news/:id
func (h *Handlers) GetNews(c *gin.Context) {
	var row newsRow
	query := `
		SELECT id, title_ka, title_en, body_ka, body_en, slug, published_at, created_at, updated_at
		FROM news WHERE id = ?`
	if err := h.DB.GetContext(c.Request.Context(), &row, query, c.Param("id")); err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			c.JSON(http.StatusNotFound, gin.H{"error": "Article not found"})
			return
		}
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Database query failed"})
		return
	}
	article := row.toModel()
	c.JSON(http.StatusOK, gin.H{"article": article})
}

// CreateNews is the handler for POST /v1/news (manager only)
func (h *Handlers) CreateNews(c *gin.Context) {
	var input models.CreateNewsInput
	if err := c.ShouldBindJSON(&input); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}
	if errs := input.Validate(); len(errs) > 0 {
		c.JSON(http.StatusBadRequest, gin.H{"errors": errs})
		return
	}

	now := time.Now().UTC()
	article := models.NewsArticle{
		ID:          uuid.NewString(),
		Title:       input.Title,
		Body:        input.Body,
		Slug:        slug.Make(input.Title.En),
		PublishedAt: input.PublishedAt,
		CreatedAt:   now,
		UpdatedAt:   now,
	}

	query := `
		INSERT INTO news (id, title_ka, title_en, body_ka, body_en, slug, published_at, created_at, updated_at)
		VALUES (?, ?, ?, ?, ?, ?, ?, ?, ?)`
	if _, err := h.DB.ExecContext(c.Request.Context(), query,
		article.ID, article.Title.Ka, article.Title.En, article.Body.Ka, article.Body.En,
		article.Slug, article.PublishedAt, article.CreatedAt, article.UpdatedAt); err != nil {
		h.Log.Error("create news failed", "error", err)
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to create article"})
		return
	}
	h.Cache.Invalidate(c.Request.Context(), cache.CollectionNews)

	c.JSON(http.StatusCreated, gin.H{"message": "Article created", "article": article})
}

// UpdateNews is the handler for PUT /v1/news/:id (manager only)
func (h *Handlers) UpdateNews(c *gin.Context) {
	var input models.UpdateNewsInput
	if err := c.ShouldBindJSON(&input); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}
	if errs := input.Validate(); len(errs) > 0 {
		c.JSON(http.StatusBadRequest, gin.H{"errors": errs})
		return
	}

	var row newsRow
	getQuery := `
		SELECT id, title_ka, title_en, body_ka, body_en, slug, published_at, created_at, updated_at
		FROM news WHERE id = ?`
	if err := h.DB.GetContext(c.Request.Context(), &row, getQuery, c.Param("id")); err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			c.JSON(http.StatusNotFound, gin.H{"error": "Article not found"})
			return
		}
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Database query failed"})
		return
	}
	article := row.toModel()

	if input.Title != nil {
		article.Title = *input.Title
		article.Slug = slug.Make(input.Title.En)
	}
	if input.Body != nil {
		article.Body = *input.Body
	}
	if input.PublishedAt != nil {
		article.PublishedAt = input.PublishedAt
	}
	article.UpdatedAt = time.Now().UTC()

	query := `
		UPDATE news
		SET title_ka = ?, title_en = ?, body_ka = ?, body_en = ?, slug = ?, published_at = ?, updated_at = ?
		WHERE id = ?`
	if _, err := h.DB.ExecContext(c.Request.Context(), query,
		article.Title.Ka, article.Title.En, article.Body.Ka, article.Body.En,
		article.Slug, article.PublishedAt, article.UpdatedAt, article.ID); err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to update article"})
		return
	}
	h.Cache.Invalidate(c.Request.Context(), cache.CollectionNews)

	c.JSON(http.StatusOK, gin.H{"message": "Article updated", "article": article})
}

// DeleteNews is the handler for DELETE /v1/news/:id (manager only)
func (h *Handlers) DeleteNews(c *gin.Context) {
	res, err := h.DB.ExecContext(c.Request.Context(), `DELETE FROM news WHERE id = ?`, c.Param("id"))
	if err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to delete article"})
		return
	}
	if n, err := res.RowsAffected(); err == nil && n == 0 {
		c.JSON(http.StatusNotFound, gin.H{"error": "Article not found"})
		return
	}
	h.Cache.Invalidate(c.Request.Context(), cache.CollectionNews)

	c.JSON(http.StatusOK, gin.H{"message": "Article deleted"})
}
