package product

import (
	"github.com/Picancianmartin/UniformesCoachSite/internal/auth"
	"github.com/Picancianmartin/UniformesCoachSite/internal/middleware"

	"github.com/gin-gonic/gin"
)

func RegisterRoutes(r *gin.RouterGroup, handler *Handler) {
	products := r.Group("/products")
	{
		// Loose enough for normal browsing, tight enough to slow scraping.
		products.GET("", middleware.RateLimitByIP(10, 20), handler.GetPublicList)
		products.GET("/:id", middleware.RateLimitByIP(5, 10), handler.GetByID)
	}

	adminProducts := r.Group("/admin/products")
	adminProducts.Use(middleware.AuthMiddleware())
	adminProducts.Use(middleware.RoleMiddleware(auth.RoleAdmin))
	{
		adminProducts.GET("", middleware.RateLimitByUser(10, 20), handler.GetAdminList)
		adminProducts.GET("/:id", middleware.RateLimitByUser(10, 20), handler.GetByIDAdmin)
		adminProducts.POST("", middleware.RateLimitByUser(5, 10), handler.Create)
		adminProducts.PATCH("/:id", middleware.RateLimitByUser(5, 10), handler.Update)
		adminProducts.DELETE("/:id", middleware.RateLimitByUser(5, 10), handler.Delete)
		adminProducts.POST("/:id/restore", middleware.RateLimitByUser(5, 10), handler.Restore)

		adminProducts.PUT("/:id/stock", middleware.RateLimitByUser(5, 10), handler.ReplaceStock)
		adminProducts.PATCH("/:id/stock", middleware.RateLimitByUser(5, 10), handler.AdjustStock)
	}
}
