package customer

import (
	"github.com/Picancianmartin/UniformesCoachSite/internal/middleware"

	"github.com/gin-gonic/gin"
)

func RegisterRoutes(r *gin.RouterGroup, handler *Handler) {
	customers := r.Group("/customers")
	customers.Use(middleware.AuthMiddleware())
	{
		customers.GET("/profile", handler.Profile)
		customers.PATCH("/profile",
			middleware.RateLimitByUser(1, 3),
			handler.UpdateProfile,
		)
	}
}
