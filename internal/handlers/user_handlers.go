package handlers

import (
	"database/sql"
	"errors"
	"net/http"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/google/uuid"
	"golang.org/x/crypto/bcrypt"

	"github.com/vekodev/catalog-admin-golang/internal/auth"
	"github.com/vekodev/catalog-admin-golang/internal/models"
)

// Login is the handler for POST /v1/login
func (h *Handlers) Login(c *gin.Context) {
	var input models.LoginInput
	if err := c.ShouldBindJSON(&input); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}

	var user struct {
		ID           string `db:"id"`
		Email        string `db:"email"`
		PasswordHash string `db:"password_hash"`
		Role         string `db:"role"`
	}
	query := `SELECT id, email, password_hash, role FROM users WHERE email = ?`
	if err := h.DB.GetContext(c.Request.Context(), &user, query, input.Email); err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			// Same message as a bad password so the endpoint doesn't leak
			// which emails exist.
			c.JSON(http.StatusUnauthorized, gin.H{"error": "Invalid email or password"})
			return
		}
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Database query failed"})
		return
	}

	if err := bcrypt.CompareHashAndPassword([]byte(user.PasswordHash), []byte(input.Password)); err != nil {
		c.JSON(http.StatusUnauthorized, gin.H{"error": "Invalid email or password"})
		return
	}

	token, err := auth.GenerateToken([]byte(h.Cfg.JWTSecret), user.ID, user.Role)
	if err != nil {
		h.Log.Error("token generation failed", "userId", user.ID, "error", err)
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to generate token"})
		return
	}

	c.JSON(http.StatusOK, gin.H{
		"token": token,
		"user":  gin.H{"id": user.ID, "email": user.Email, "role": user.Role},
	})
}

// CreateManager is the handler for POST /v1/admin/create-manager (admin only)
func (h *Handlers) CreateManager(c *gin.Context) {
	var input models.CreateManagerInput
	if err := c.ShouldBindJSON(&input); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}

	hash, err := bcrypt.GenerateFromPassword([]byte(input.Password), bcrypt.DefaultCost)
	if err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to hash password"})
		return
	}

	now := time.Now().UTC()
	user := models.User{
		ID:        uuid.NewString(),
		Email:     input.Email,
		Role:      models.RoleManager,
		CreatedAt: now,
		UpdatedAt: now,
	}
	query := `INSERT INTO users (id, email, password_hash, role, created_at, updated_at) VALUES (?, ?, ?, ?, ?, ?)`
	if _, err := h.DB.ExecContext(c.Request.Context(), query,
		user.ID, user.Email, string(hash), user.Role, user.CreatedAt, user.UpdatedAt); err != nil {
		h.Log.Error("create manager failed", "email", input.Email, "error", err)
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to create manager, the email may already exist"})
		return
	}

	c.JSON(http.StatusCreated, gin.H{"message": "Manager created", "user": user})
}
