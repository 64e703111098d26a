// internal/interfaces/http/handlers/catalog.go
package handlers

import (
	"net/http"

	"github.com/gin-gonic/gin"
	"github.com/your-org/storefront-backend/internal/domain/catalog"
	"github.com/your-org/storefront-backend/internal/interfaces/http/middleware"
)

// CatalogHandler handles company profile and product endpoints
type CatalogHandler struct {
	catalog *catalog.Client
}

// NewCatalogHandler creates a new catalog handler
func NewCatalogHandler(catalogClient *catalog.Client) *CatalogHandler {
	return &CatalogHandler{catalog: catalogClient}
}

// GetCompany handles GET /company
func (h *CatalogHandler) GetCompany(c *gin.Context) {
	tenant := middleware.GetTenantFromContext(c)

	company, err := h.catalog.GetCompany(c.Request.Context(), tenant)
	if err == catalog.ErrNotFound {
		c.JSON(http.StatusNotFound, gin.H{
			"error": "Store not found",
		})
		return
	}
	if err != nil {
		c.JSON(http.StatusBadGateway, gin.H{
			"error": "Failed to load store profile",
		})
		return
	}

	c.JSON(http.StatusOK, gin.H{
		"message": "Company retrieved successfully",
		"data":    company,
	})
}

// GetProducts handles GET /products with filter, sort and pagination
// query parameters
func (h *CatalogHandler) GetProducts(c *gin.Context) {
	tenant := middleware.GetTenantFromContext(c)

	var req catalog.ListRequest
	if err := c.ShouldBindQuery(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{
			"error":   "Invalid query parameters",
			"details": err.Error(),
		})
		return
	}

	products, err := h.catalog.ListProducts(c.Request.Context(), tenant)
	if err == catalog.ErrNotFound {
		c.JSON(http.StatusNotFound, gin.H{
			"error": "Store not found",
		})
		return
	}
	if err != nil {
		c.JSON(http.StatusBadGateway, gin.H{
			"error": "Failed to load products",
		})
		return
	}

	c.JSON(http.StatusOK, gin.H{
		"message": "Products retrieved successfully",
		"data":    catalog.ApplyListing(products, &req),
	})
}

// GetProduct handles GET /products/:slug
func (h *CatalogHandler) GetProduct(c *gin.Context) {
	tenant := middleware.GetTenantFromContext(c)

	product, err := h.catalog.GetProduct(c.Request.Context(), tenant, c.Param("slug"))
	if err == catalog.ErrNotFound {
		c.JSON(http.StatusNotFound, gin.H{
			"error": "Product not found",
		})
		return
	}
	if err != nil {
		c.JSON(http.StatusBadGateway, gin.H{
			"error": "Failed to load product",
		})
		return
	}

	c.JSON(http.StatusOK, gin.H{
		"message": "Product retrieved successfully",
		"data":    product,
	})
}

// GetReviews handles GET /reviews
func (h *CatalogHandler) GetReviews(c *gin.Context) {
	tenant := middleware.GetTenantFromContext(c)

	reviews, err := h.catalog.ListReviews(c.Request.Context(), tenant)
	if err != nil {
		c.JSON(http.StatusBadGateway, gin.H{
			"error": "Failed to load reviews",
		})
		return
	}

	c.JSON(http.StatusOK, gin.H{
		"message": "Reviews retrieved successfully",
		"data":    reviews,
	})
}

// GetFAQs handles GET /faqs
func (h *CatalogHandler) GetFAQs(c *gin.Context) {
	tenant := middleware.GetTenantFromContext(c)

	faqs, err := h.catalog.ListFAQs(c.Request.Context(), tenant)
	if err != nil {
		c.JSON(http.StatusBadGateway, gin.H{
			"error": "Failed to load FAQs",
		})
		return
	}

	c.JSON(http.StatusOK, gin.H{
		"message": "FAQs retrieved successfully",
		"data":    faqs,
	})
}
