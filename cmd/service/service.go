// File: cmd/service/service.go
package main

import (
	"context"
	"fmt"
	"os"

	"nadespensa/internal/api"
	"nadespensa/internal/cache"
	"nadespensa/internal/config"
	"nadespensa/internal/database"
	"nadespensa/internal/logger"
	"nadespensa/internal/router"
	"nadespensa/internal/service"
	"nadespensa/internal/worker"

	"github.com/labstack/echo/v4"
	"github.com/labstack/echo/v4/middleware"

	_ "nadespensa/docs" // 引入 swag 產出的 docs

	echoSwagger "github.com/swaggo/echo-swagger"
)

var (
	loadConfig      = config.Load
	newPgxPool      = database.NewPgxPool
	newRedisClient  = cache.NewRedisClient
	runMigrationsFn = database.RunMigrations
	rollbackFn      = database.RollbackAll
	startServer     = func(e *echo.Echo, addr string) error { return e.Start(addr) }
	newWorkerPool   = worker.NewPool
	exitFunc        = os.Exit
)

func run() error {
	cfg, err := loadConfig()
	if err != nil {
		return fmt.Errorf("載入設定失敗: %w", err)
	}
	zl := logger.New(logger.Config{Env: cfg.App.Env, Level: cfg.App.LogLevel})

	dbURL := cfg.DB.ConnectionString()
	db, err := newPgxPool(context.Background(), dbURL)
	if err != nil {
		return fmt.Errorf("DB 連線失敗: %w", err)
	}
	defer db.Close()

	rdb, err := newRedisClient(cfg.Redis.Addr, cfg.Redis.Password, cfg.Redis.DB)
	if err != nil {
		return fmt.Errorf("Redis 連線失敗: %w", err)
	}
	defer rdb.Close()

	if err := runMigrationsFn(dbURL); err != nil {
		return fmt.Errorf("Migration 執行失敗: %w", err)
	}

	tokens, err := service.NewTokenService(cfg.JWT.Secret)
	if err != nil {
		return err
	}

	// bcrypt 只在 worker 上執行，限制同時運算的數量
	wp := newWorkerPool(cfg.Hash.Workers)
	defer wp.Stop()

	e := echo.New()
	e.HideBanner = true
	e.Validator = api.NewValidator()
	e.Use(middleware.Recover())
	e.Use(logger.RequestLogger(zl))

	router.Setup(e, router.Deps{
		DB:        db,
		Cache:     rdb,
		FoodCache: cache.NewFoodCache(rdb, cfg.Cache.FoodTTL),
		Hasher:    service.NewPasswordHasher(cfg.Hash.Cost, wp),
		Tokens:    tokens,
	})

	e.GET("/swagger/*", echoSwagger.WrapHandler)

	zl.Info().Str("addr", cfg.HTTP.Addr).Str("env", cfg.App.Env).Msg("starting server")
	return startServer(e, cfg.HTTP.Addr)
}

// rollback 將所有 migration 回復到初始狀態
func rollback() error {
	cfg, err := loadConfig()
	if err != nil {
		return fmt.Errorf("載入設定失敗: %w", err)
	}
	zl := logger.New(logger.Config{Env: cfg.App.Env, Level: cfg.App.LogLevel})
	if err := rollbackFn(cfg.DB.ConnectionString()); err != nil {
		return fmt.Errorf("Migration 回復失敗: %w", err)
	}
	zl.Info().Msg("migrations rolled back")
	return nil
}
