package report

import (
	"github.com/Picancianmartin/UniformesCoachSite/internal/auth"
	"github.com/Picancianmartin/UniformesCoachSite/internal/middleware"

	"github.com/gin-gonic/gin"
)

func RegisterRoutes(r *gin.RouterGroup, handler *Handler) {
	reports := r.Group("/admin/reports")
	reports.Use(middleware.AuthMiddleware())
	reports.Use(middleware.RoleMiddleware(auth.RoleAdmin))
	reports.Use(middleware.RateLimitByIP(10, 20))
	{
		reports.GET("/summary", handler.Summary)

		// Workbook generation is heavier, keep it slow.
		reports.GET("/sales.xlsx",
			middleware.RateLimitByUser(0.2, 2),
			handler.SalesXLSX,
		)
	}
}
