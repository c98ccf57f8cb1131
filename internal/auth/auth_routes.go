package auth

import (
	"github.com/Picancianmartin/UniformesCoachSite/internal/middleware"

	"github.com/gin-gonic/gin"
)

func RegisterRoutes(r *gin.RouterGroup, handler *Handler) {
	auth := r.Group("/auth")
	{
		// Tight IP limits on the credential endpoints
		auth.POST("/register", middleware.RateLimitByIP(0.5, 3), handler.Register)
		auth.POST("/login", middleware.RateLimitByIP(1, 5), handler.Login)
		auth.POST("/refresh", handler.Refresh)
		auth.POST("/logout", handler.Logout)

		auth.GET("/me", middleware.AuthMiddleware(), handler.Me)
	}
}
