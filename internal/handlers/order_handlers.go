package handlers

import (
	"database/sql"
	"encoding/json"
	"errors"
	"net/http"
	"time"

	"github.com/gin-gonic/gin"

	"github.com/vekodev/catalog-admin-golang/internal/models"
)

// Orders come in from the storefront; the back-office only lists them and
// moves the status label. The status is a plain field, not a state machine.

type orderRow struct {
	ID           string    `db:"id"`
	CustomerName string    `db:"customer_name"`
	Phone        string    `db:"phone"`
	ItemsJSON    []byte    `db:"items"`
	Total        float64   `db:"total"`
	Status       string    `db:"status"`
	CreatedAt    time.Time `db:"created_at"`
	UpdatedAt    time.Time `db:"updated_at"`
}

func (r orderRow) toModel() (models.Order, error) {
	order := models.Order{
		ID:           r.ID,
		CustomerName: r.CustomerName,
		Phone:        r.Phone,
		Items:        []models.OrderItem{},
		Total:        r.Total,
		Status:       r.Status,
		CreatedAt:    r.CreatedAt,
		UpdatedAt:    r.UpdatedAt,
	}
	if len(r.ItemsJSON) > 0 {
		if err := json.Unmarshal(r.ItemsJSON, &order.Items); err != nil {
			return order, err
		}
	}
	return order, nil
}

// GetAllOrders is the handler for GET /v1/orders?status=
func (h *Handlers) GetAllOrders(c *gin.Context) {
	query := `SELECT id, customer_name, phone, items, total, status, created_at, updated_at FROM orders`
	var args []interface{}
	if status := c.Query("status"); status != "" {
		query += ` WHERE status = ?`
		args = append(args, status)
	}
	query += ` ORDER BY created_at DESC`

	var rows []orderRow
	if err := h.DB.SelectContext(c.Request.Context(), &rows, query, args...); err != nil {
		h.Log.Error("list orders failed", "error", err)
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Database query failed"})
		return
	}
	orders := make([]models.Order, 0, len(rows))
	for _, r := range rows {
		order, err := r.toModel()
		if err != nil {
			h.Log.Warn("order has malformed items payload", "orderId", r.ID, "error", err)
			continue
		}
		orders = append(orders, order)
	}

	c.JSON(http.StatusOK, gin.H{"orders": orders})
}

// GetOrder is the handler for GET /v1/orders/:id
func (h *Handlers) GetOrder(c *gin.Context) {
	var row orderRow
	query := `SELECT id, customer_name, phone, items, total, status, created_at, updated_at FROM orders WHERE id = ?`
	if err := h.DB.GetContext(c.Request.Context(), &row, query, c.Param("id")); err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			c.JSON(http.StatusNotFound, gin.H{"error": "Order not found"})
			return
		}
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Database query failed"})
		return
	}
	order, err := row.toModel()
	if err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Order payload is malformed"})
		return
	}
	c.JSON(http.StatusOK, gin.H{"order": order})
}

// UpdateOrderStatus is the handler for PATCH /v1/orders/:id/status (manager only)
func (h *Handlers) UpdateOrderStatus(c *gin.Context) {
	var input models.UpdateOrderStatusInput
	if err := c.ShouldBindJSON(&input); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}
	if !models.ValidOrderStatus(input.Status) {
		c.JSON(http.StatusBadRequest, gin.H{"errors": gin.H{"status": "unknown order status"}})
		return
	}

	query := `UPDATE orders SET status = ?, updated_at = ? WHERE id = ?`
	res, err := h.DB.ExecContext(c.Request.Context(), query, input.Status, time.Now().UTC(), c.Param("id"))
	if err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to update order"})
		return
	}
	if n, err := res.RowsAffected(); err == nil && n == 0 {
		c.JSON(http.StatusNotFound, gin.H{"error": "Order not found"})
		return
	}

	c.JSON(http.StatusOK, gin.H{"message": "Order status updated", "status": input.Status})
}
