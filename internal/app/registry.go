package app

import (
	"database/sql"

	"github.com/Picancianmartin/UniformesCoachSite/internal/auth"
	"github.com/Picancianmartin/UniformesCoachSite/internal/cart"
	"github.com/Picancianmartin/UniformesCoachSite/internal/customer"
	"github.com/Picancianmartin/UniformesCoachSite/internal/order"
	"github.com/Picancianmartin/UniformesCoachSite/internal/outbox"
	"github.com/Picancianmartin/UniformesCoachSite/internal/product"
	"github.com/Picancianmartin/UniformesCoachSite/internal/report"

	"github.com/gin-gonic/gin"
	"github.com/redis/go-redis/v9"
	"go.uber.org/zap"
)

func registerModules(router *gin.Engine, db *sql.DB, rdb *redis.Client, logger *zap.Logger) {
	// --- Repositories ---
	authRepo := auth.NewRepository(db)
	customerRepo := customer.NewRepository(db)
	productRepo := product.NewRepository(db)
	cartRepo := cart.NewRepository(db)
	orderRepo := order.NewRepository(db)
	outboxRepo := outbox.NewRepository(db)
	reportRepo := report.NewRepository(db)

	// --- Services ---
	authService := auth.NewService(authRepo)
	customerService := customer.NewService(db, customerRepo)
	productService := product.NewService(productRepo)
	cartService := cart.NewService(db, cartRepo, productRepo)
	orderService := order.NewService(order.Deps{
		DB:          db,
		Repo:        orderRepo,
		OutboxRepo:  outboxRepo,
		CartSvc:     cartService,
		ProductRepo: productRepo,
		Logger:      logger,
	})
	reportService := report.NewService(reportRepo)

	// --- Handlers ---
	authHandler := auth.NewHandler(authService)
	customerHandler := customer.NewHandler(customerService)
	productHandler := product.NewHandler(productService)
	cartHandler := cart.NewHandler(cartService)
	orderHandler := order.NewHandler(orderService, rdb, logger)
	reportHandler := report.NewHandler(reportService)

	// --- Routes Registration ---
	api := router.Group("/api/v1")
	{
		auth.RegisterRoutes(api, authHandler)
		customer.RegisterRoutes(api, customerHandler)
		product.RegisterRoutes(api, productHandler)
		cart.RegisterRoutes(api, cartHandler)
		order.RegisterRoutes(api, orderHandler, rdb)
		report.RegisterRoutes(api, reportHandler)
	}
}
