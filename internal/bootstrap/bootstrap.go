package bootstrap

import (
	"context"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/go-crew/crew/internal/crew/conf"
	"github.com/go-crew/crew/internal/crew/router"
	"github.com/go-crew/crew/pkg/database"
	httpx "github.com/go-crew/crew/pkg/http"
	"github.com/go-crew/crew/pkg/storage"
	"github.com/redis/go-redis/v9"
	"go.uber.org/zap"
	"gorm.io/gorm"
)

/**
 * @author: gagral.x@gmail.com
 * @time: 2025/8/29 12:08
 * @file: bootstrap.go
 * @description: application bootstrap
 */

type App struct {
	Engine  *gin.Engine
	Logger  *zap.Logger
	Storage storage.StorageProvider
	AppConf conf.AppConfig
}

// NewApp assembles the gin engine and the ordered-close cleanup,
// wired by the injector in cmd/crew
func NewApp(
	rt *router.Router,
	logger *zap.Logger,
	store storage.StorageProvider,
	appConf conf.AppConfig,
	dbClient *gorm.DB,
	mongoClient *database.MongoClient,
	redisClient *redis.Client,
) (*App, func(), error) {
	engine := rt.Router(logger)

	cleanup := func() {
		closeCtx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
		defer cancel()
		if err := mongoClient.Close(closeCtx); err != nil {
			logger.Sugar().Errorf("mongodb close error: %v", err)
		}
		if err := redisClient.Close(); err != nil {
			logger.Sugar().Errorf("redis close error: %v", err)
		}
		if sqlDB, err := dbClient.DB(); err == nil {
			if err := sqlDB.Close(); err != nil {
				logger.Sugar().Errorf("database close error: %v", err)
			}
		}
		_ = logger.Sync()
	}

	app := &App{
		Engine:  engine,
		Logger:  logger,
		Storage: store,
		AppConf: appConf,
	}
	return app, cleanup, nil
}

// Run start app and wait for exit signal, then gracefully shutdown
func Run(app *App, cleanup func()) {
	// NewHttp returns a hook that blocks until a termination signal arrives
	shutdown := httpx.NewHttp(app.AppConf.Http, app.Engine)
	shutdown()

	// close components in order
	cleanup()

	app.Logger.Info("Server shutdown complete")
}
