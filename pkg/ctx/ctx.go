package ctx

import (
	"context"

	"go.uber.org/zap"

	"github.com/go-crew/crew/pkg/cache"
	"github.com/go-crew/crew/pkg/database"
)

/**
 * @author: gagral.x@gmail.com
 * @time: 2024/9/9 0:12
 * @file: ctx.go
 * @description: Global context
 */

type Context struct {
	Ctx   context.Context
	Log   *zap.SugaredLogger
	DB    database.IDatabase
	Mongo *database.MongoClient
	Cache cache.ICache
}

func NewContext(ctx context.Context, log *zap.SugaredLogger, db database.IDatabase, mongo *database.MongoClient, c cache.ICache) *Context {
	return &Context{
		Ctx:   ctx,
		Log:   log,
		DB:    db,
		Mongo: mongo,
		Cache: c,
	}
}

func (c *Context) GetCtx() context.Context {
	return c.Ctx
}

func (c *Context) GetDB() database.IDatabase {
	return c.DB
}

func (c *Context) GetMongo() *database.MongoClient {
	return c.Mongo
}

func (c *Context) GetCache() cache.ICache {
	return c.Cache
}
