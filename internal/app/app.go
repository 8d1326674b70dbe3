package app

import (
	"fmt"
	"net/http"

	"vthr/internal/config"
	"vthr/internal/db"
	"vthr/internal/middleware"
	"vthr/internal/shared/connection"

	"github.com/gin-gonic/gin"
	"go.uber.org/zap"
)

// BuildApp connects the infrastructure, runs pending migrations and wires
// every module's routes onto the router.
func BuildApp(router *gin.Engine, cfg *config.Config, logger *zap.Logger) error {
	if cfg.JWTSecret == "" {
		return fmt.Errorf("VTHR_JWT_SECRET is required")
	}

	gormDB, err := connection.ConnectGORMWithRetry(
		cfg.Database.Host,
		cfg.Database.User,
		cfg.Database.Password,
		cfg.Database.Name,
		cfg.Database.Port,
		cfg.Database.SSLMode,
		5,
	)
	if err != nil {
		return err
	}

	if err := db.Migrate(gormDB); err != nil {
		return err
	}
	logger.Info("database migrated")

	sqlDB, err := gormDB.DB()
	if err != nil {
		return err
	}

	rdb, err := connection.ConnectRedisWithRetry(cfg.RedisAddr, 5)
	if err != nil {
		return err
	}

	router.Use(middleware.RequestID())
	router.GET("/healthz", func(c *gin.Context) {
		c.JSON(http.StatusOK, gin.H{"status": "ok"})
	})

	return registerModules(router, cfg, gormDB, sqlDB, rdb, logger)
}
