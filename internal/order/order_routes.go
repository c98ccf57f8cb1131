package order

import (
	"github.com/Picancianmartin/UniformesCoachSite/internal/auth"
	"github.com/Picancianmartin/UniformesCoachSite/internal/middleware"

	"github.com/gin-gonic/gin"
	"github.com/redis/go-redis/v9"
)

func RegisterRoutes(r *gin.RouterGroup, handler *Handler, rdb *redis.Client) {
	orders := r.Group("/orders")
	orders.Use(middleware.AuthMiddleware())
	orders.Use(middleware.RateLimitByUser(5, 10))
	{
		// Checkout is deliberately the tightest endpoint: one request per
		// ten seconds plus a Redis idempotency key against double orders.
		orders.POST("/checkout",
			middleware.RateLimitByUser(0.1, 1),
			middleware.Idempotency(rdb),
			handler.Checkout,
		)

		orders.GET("", handler.List)
		orders.GET("/:id", handler.Detail)
		orders.GET("/:id/pix-qr", handler.PixQR)

		orders.PATCH("/:id/cancel",
			middleware.RateLimitByUser(0.5, 2),
			handler.Cancel,
		)
	}

	adminOrders := r.Group("/admin/orders")
	adminOrders.Use(middleware.AuthMiddleware())
	adminOrders.Use(middleware.RoleMiddleware(auth.RoleAdmin))
	adminOrders.Use(middleware.RateLimitByIP(10, 20))
	{
		adminOrders.GET("", handler.ListAdmin)
		adminOrders.GET("/:id", handler.DetailAdmin)
		adminOrders.PATCH("/:id/status",
			middleware.RateLimitByUser(2, 5),
			handler.UpdateStatusByAdmin,
		)
	}
}
