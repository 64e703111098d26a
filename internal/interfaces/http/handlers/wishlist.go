// internal/interfaces/http/handlers/wishlist.go
package handlers

import (
	"net/http"

	"github.com/gin-gonic/gin"
	"github.com/google/uuid"
	"github.com/your-org/storefront-backend/internal/domain/wishlist"
	"github.com/your-org/storefront-backend/internal/interfaces/http/middleware"
)

// WishlistHandler handles wishlist endpoints
type WishlistHandler struct {
	wishlistService *wishlist.Service
}

// NewWishlistHandler creates a new wishlist handler
func NewWishlistHandler(wishlistService *wishlist.Service) *WishlistHandler {
	return &WishlistHandler{wishlistService: wishlistService}
}

// GetWishlist handles GET /wishlist
func (h *WishlistHandler) GetWishlist(c *gin.Context) {
	tenant := middleware.GetTenantFromContext(c)
	sessionID := h.getOrCreateSessionID(c)

	items, err := h.wishlistService.List(c.Request.Context(), tenant, sessionID)
	if err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{
			"error": "Failed to retrieve wishlist",
		})
		return
	}

	c.JSON(http.StatusOK, gin.H{
		"message": "Wishlist retrieved successfully",
		"data":    items,
	})
}

// AddToWishlist handles POST /wishlist/items
func (h *WishlistHandler) AddToWishlist(c *gin.Context) {
	tenant := middleware.GetTenantFromContext(c)
	sessionID := h.getOrCreateSessionID(c)

	var req wishlist.AddRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{
			"error":   "Invalid request data",
			"details": err.Error(),
		})
		return
	}

	items, err := h.wishlistService.Add(c.Request.Context(), tenant, sessionID, &req)
	if err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{
			"error": "Failed to add to wishlist",
		})
		return
	}

	c.JSON(http.StatusOK, gin.H{
		"message": "Item added to wishlist successfully",
		"data":    items,
	})
}

// RemoveFromWishlist handles DELETE /wishlist/items/:productId
func (h *WishlistHandler) RemoveFromWishlist(c *gin.Context) {
	tenant := middleware.GetTenantFromContext(c)
	sessionID := h.getOrCreateSessionID(c)

	items, err := h.wishlistService.Remove(c.Request.Context(), tenant, sessionID, c.Param("productId"))
	if err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{
			"error": "Failed to remove from wishlist",
		})
		return
	}

	c.JSON(http.StatusOK, gin.H{
		"message": "Item removed from wishlist successfully",
		"data":    items,
	})
}

// ClearWishlist handles DELETE /wishlist
func (h *WishlistHandler) ClearWishlist(c *gin.Context) {
	tenant := middleware.GetTenantFromContext(c)
	sessionID := h.getOrCreateSessionID(c)

	if err := h.wishlistService.Clear(c.Request.Context(), tenant, sessionID); err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{
			"error": "Failed to clear wishlist",
		})
		return
	}

	c.JSON(http.StatusOK, gin.H{
		"message": "Wishlist cleared successfully",
	})
}

// getOrCreateSessionID gets the device session ID from cookie or creates
// a new one
func (h *WishlistHandler) getOrCreateSessionID(c *gin.Context) string {
	sessionID, err := c.Cookie("session_id")
	if err != nil || sessionID == "" {
		sessionID = uuid.New().String()

		// Set session cookie (90 days, matching the wishlist TTL)
		c.SetCookie("session_id", sessionID, 90*86400, "/", "", false, true)
	}

	return sessionID
}
