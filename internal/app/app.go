package app

import (
	"os"

	"github.com/Picancianmartin/UniformesCoachSite/internal/middleware"
	"github.com/Picancianmartin/UniformesCoachSite/internal/shared/connection"

	"github.com/gin-gonic/gin"
	"go.uber.org/zap"
)

// NewLogger builds the process-wide zap logger and installs it as the
// global, so handlers built without an explicit logger pick it up.
func NewLogger() (*zap.Logger, error) {
	var (
		logger *zap.Logger
		err    error
	)
	if os.Getenv("APP_ENV") == "development" {
		logger, err = zap.NewDevelopment()
	} else {
		logger, err = zap.NewProduction()
	}
	if err != nil {
		return nil, err
	}

	zap.ReplaceGlobals(logger)
	return logger, nil
}

func BuildApp(router *gin.Engine, logger *zap.Logger) error {
	// 1. Setup Infrastructure
	db, err := connection.ConnectDBWithRetry(os.Getenv("DB_URL"), 5)
	if err != nil {
		return err
	}

	redisClient, err := connection.ConnectRedisWithRetry(os.Getenv("REDIS_ADDR"), 5)
	if err != nil {
		return err
	}

	// 2. Global middleware + request validators
	router.Use(middleware.RequestID())
	registerValidators()

	// 3. Register Modules & Routes
	registerModules(router, db, redisClient, logger)

	return nil
}
