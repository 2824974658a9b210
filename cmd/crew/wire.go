//go:build wireinject
// +build wireinject

package main

import (
	"context"

	"github.com/go-crew/crew/internal/bootstrap"
	"github.com/go-crew/crew/internal/crew/conf"
	"github.com/go-crew/crew/internal/crew/router"
	"github.com/go-crew/crew/pkg/cache"
	"github.com/go-crew/crew/pkg/ctx"
	"github.com/go-crew/crew/pkg/database"
	httpx "github.com/go-crew/crew/pkg/http"
	"github.com/go-crew/crew/pkg/log"
	"github.com/go-crew/crew/pkg/storage"
	"github.com/google/wire"
	"go.uber.org/zap"
)

func initApp(configFile string) (*bootstrap.App, func(), error) {
	panic(wire.Build(
		// 配置层
		conf.ProviderSet,
		confProviderSet,
		// 基础设施层
		infraProviderSet,
		// 存储层
		storageProviderSet,
		// 路由层
		router.NewRouter,
		// 应用层
		bootstrap.NewApp,
	))
}

// confProviderSet 配置层 ProviderSet
var confProviderSet = wire.NewSet(
	provideAppConfig,
	provideHttpConfig,
	provideLogConfig,
	provideDatabaseConfig,
	provideMongoConfig,
	provideRedisConfig,
)

func provideAppConfig(appConf conf.AppConfig) *conf.AppConfig {
	return &appConf
}

func provideHttpConfig(appConf conf.AppConfig) *httpx.Http {
	return &appConf.Http
}

func provideLogConfig(appConf conf.AppConfig) *log.Conf {
	return &appConf.Log
}

func provideDatabaseConfig(appConf conf.AppConfig) database.Database {
	return appConf.Database
}

func provideMongoConfig(appConf conf.AppConfig) database.MongoDB {
	return appConf.Database.MongoDB
}

func provideRedisConfig(appConf conf.AppConfig) cache.Redis {
	return appConf.Redis
}

// infraProviderSet 基础设施层 ProviderSet
var infraProviderSet = wire.NewSet(
	log.NewLog,
	provideSugaredLogger,
	provideBaseContext,
	database.NewDatabase,
	database.NewGormDB,
	database.NewMongoDB,
	cache.ProviderSet,
	ctx.NewContext,
)

func provideSugaredLogger(logger *zap.Logger) *zap.SugaredLogger {
	return logger.Sugar()
}

func provideBaseContext() context.Context {
	return context.Background()
}

// storageProviderSet 存储层 ProviderSet
var storageProviderSet = wire.NewSet(
	provideStorageConfig,
	storage.ProviderSet,
)

func provideStorageConfig(appConf conf.AppConfig, appCtx *ctx.Context) *storage.Storage {
	s := appConf.Storage
	s.Ctx = appCtx
	return &s
}
