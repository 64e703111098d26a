// internal/interfaces/http/routes/routes.go
package routes

import (
	"github.com/gin-gonic/gin"
	"github.com/your-org/storefront-backend/internal/domain/cart"
	"github.com/your-org/storefront-backend/internal/domain/catalog"
	"github.com/your-org/storefront-backend/internal/domain/checkout"
	"github.com/your-org/storefront-backend/internal/domain/wishlist"
	"github.com/your-org/storefront-backend/internal/interfaces/http/handlers"
	"github.com/your-org/storefront-backend/internal/interfaces/http/middleware"
)

// Services carries the constructed domain services into route setup
type Services struct {
	Carts    *cart.Manager
	Catalog  *catalog.Client
	Checkout *checkout.Service
	Wishlist *wishlist.Service
}

// SetupRoutes registers every tenant-scoped storefront route under
// /t/:tenant
func SetupRoutes(rg *gin.RouterGroup, svc *Services) {
	tenant := rg.Group("/t/:tenant")
	tenant.Use(middleware.Tenant())

	setupCatalogRoutes(tenant, svc)
	setupCartRoutes(tenant, svc)
	setupCheckoutRoutes(tenant, svc)
	setupWishlistRoutes(tenant, svc)
}

// setupCatalogRoutes sets up company profile and product routes
func setupCatalogRoutes(rg *gin.RouterGroup, svc *Services) {
	catalogHandler := handlers.NewCatalogHandler(svc.Catalog)

	rg.GET("/company", catalogHandler.GetCompany)
	rg.GET("/products", catalogHandler.GetProducts)
	rg.GET("/products/:slug", catalogHandler.GetProduct)
	rg.GET("/reviews", catalogHandler.GetReviews)
	rg.GET("/faqs", catalogHandler.GetFAQs)
}

// setupCartRoutes sets up cart routes
func setupCartRoutes(rg *gin.RouterGroup, svc *Services) {
	cartHandler := handlers.NewCartHandler(svc.Carts)

	cartGroup := rg.Group("/cart")
	{
		cartGroup.GET("", cartHandler.GetCart)
		cartGroup.POST("/items", cartHandler.AddItem)
		cartGroup.PUT("/items/:productId", cartHandler.UpdateItem)
		cartGroup.DELETE("/items/:productId", cartHandler.RemoveItem)
		cartGroup.DELETE("", cartHandler.ClearCart)
		cartGroup.POST("/open", cartHandler.OpenCart)
		cartGroup.POST("/close", cartHandler.CloseCart)
	}
}

// setupCheckoutRoutes sets up checkout and confirmation routes
func setupCheckoutRoutes(rg *gin.RouterGroup, svc *Services) {
	checkoutHandler := handlers.NewCheckoutHandler(svc.Checkout)

	rg.POST("/checkout", checkoutHandler.Checkout)
	rg.GET("/orders/:id", checkoutHandler.GetOrder)
}

// setupWishlistRoutes sets up wishlist routes
func setupWishlistRoutes(rg *gin.RouterGroup, svc *Services) {
	wishlistHandler := handlers.NewWishlistHandler(svc.Wishlist)

	wishlistGroup := rg.Group("/wishlist")
	{
		wishlistGroup.GET("", wishlistHandler.GetWishlist)
		wishlistGroup.POST("/items", wishlistHandler.AddToWishlist)
		wishlistGroup.DELETE("/items/:productId", wishlistHandler.RemoveFromWishlist)
		wishlistGroup.DELETE("", wishlistHandler.ClearWishlist)
	}
}
