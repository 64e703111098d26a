// internal/interfaces/http/handlers/cart.go
package handlers

import (
	"fmt"
	"net/http"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/your-org/storefront-backend/internal/domain/cart"
	"github.com/your-org/storefront-backend/internal/interfaces/http/middleware"
)

// CartHandler handles cart endpoints
type CartHandler struct {
	carts *cart.Manager
}

// NewCartHandler creates a new cart handler
func NewCartHandler(carts *cart.Manager) *CartHandler {
	return &CartHandler{carts: carts}
}

// GetCart handles GET /cart
func (h *CartHandler) GetCart(c *gin.Context) {
	store := h.carts.Store(middleware.GetTenantFromContext(c))

	c.JSON(http.StatusOK, gin.H{
		"message": "Cart retrieved successfully",
		"data":    store.Snapshot(),
	})
}

// AddItem handles POST /cart/items
func (h *CartHandler) AddItem(c *gin.Context) {
	store := h.carts.Store(middleware.GetTenantFromContext(c))

	var req cart.AddItemRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{
			"error":   "Invalid request data",
			"details": err.Error(),
		})
		return
	}

	lineID := req.LineID
	if lineID == "" {
		lineID = fmt.Sprintf("%s-%d", req.ProductID, time.Now().UnixMilli())
	}

	store.AddItem(cart.LineItem{
		LineID:       lineID,
		ProductID:    req.ProductID,
		DisplayName:  req.DisplayName,
		Slug:         req.Slug,
		UnitPrice:    req.UnitPrice,
		Quantity:     req.Quantity,
		ImageURL:     req.ImageURL,
		StockCeiling: req.StockCeiling,
	})

	c.JSON(http.StatusOK, gin.H{
		"message": "Item added to cart successfully",
		"data":    store.Snapshot(),
	})
}

// UpdateItem handles PUT /cart/items/:productId
func (h *CartHandler) UpdateItem(c *gin.Context) {
	store := h.carts.Store(middleware.GetTenantFromContext(c))

	var req cart.UpdateQuantityRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{
			"error":   "Invalid request data",
			"details": err.Error(),
		})
		return
	}

	store.UpdateQuantity(c.Param("productId"), req.Quantity)

	c.JSON(http.StatusOK, gin.H{
		"message": "Cart item updated successfully",
		"data":    store.Snapshot(),
	})
}

// RemoveItem handles DELETE /cart/items/:productId
func (h *CartHandler) RemoveItem(c *gin.Context) {
	store := h.carts.Store(middleware.GetTenantFromContext(c))

	store.RemoveItem(c.Param("productId"))

	c.JSON(http.StatusOK, gin.H{
		"message": "Item removed from cart successfully",
		"data":    store.Snapshot(),
	})
}

// ClearCart handles DELETE /cart
func (h *CartHandler) ClearCart(c *gin.Context) {
	store := h.carts.Store(middleware.GetTenantFromContext(c))

	store.Clear()

	c.JSON(http.StatusOK, gin.H{
		"message": "Cart cleared successfully",
		"data":    store.Snapshot(),
	})
}

// OpenCart handles POST /cart/open
func (h *CartHandler) OpenCart(c *gin.Context) {
	store := h.carts.Store(middleware.GetTenantFromContext(c))

	store.Open()

	c.JSON(http.StatusOK, gin.H{
		"message": "Cart opened",
		"data":    store.Snapshot(),
	})
}

// CloseCart handles POST /cart/close
func (h *CartHandler) CloseCart(c *gin.Context) {
	store := h.carts.Store(middleware.GetTenantFromContext(c))

	store.Close()

	c.JSON(http.StatusOK, gin.H{
		"message": "Cart closed",
		"data":    store.Snapshot(),
	})
}
