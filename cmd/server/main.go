package main

import (
	"context"
	"errors"
	"io/fs"
	"log/slog"
	"os"

	"github.com/joho/godotenv"

	"stock_api/internal/app/di"
	"stock_api/internal/app/router"
	"stock_api/internal/platform/config"
	"stock_api/internal/platform/db"
	"stock_api/internal/platform/logging"
	"stock_api/internal/platform/redis"
)

func main() {
	// .env は任意
	if err := godotenv.Load(); err != nil && !errors.Is(err, fs.ErrNotExist) {
		slog.Warn("failed to load .env", "error", err)
	}

	cfg, err := config.Load(os.Getenv("CONFIG_PATH"))
	if err != nil {
		slog.Error("failed to load config", "error", err)
		os.Exit(1)
	}
	if err := cfg.Validate(); err != nil {
		slog.Error("invalid config", "error", err)
		os.Exit(1)
	}

	logger := logging.New(os.Stdout, cfg.Log.Level, cfg.Log.Format)
	slog.SetDefault(logger)

	// db
	gdb, err := db.Open(di.DBConfig(cfg))
	if err != nil {
		logger.Error("failed to open database", "error", err)
		os.Exit(1)
	}
	if cfg.Database.RunMigrations {
		if err := db.Migrate(gdb); err != nil {
			logger.Error("failed to migrate", "error", err)
			os.Exit(1)
		}
	}

	// Redis（任意）
	rdb, err := redis.NewClient(context.Background(), cfg.Cache.RedisAddr, cfg.Cache.RedisPassword, cfg.Cache.RedisDB)
	if err != nil {
		logger.Warn("Redis unavailable. Running without cache.", "error", err)
		rdb = nil
	}
	if rdb != nil {
		defer func() {
			if err := rdb.Close(); err != nil {
				logger.Error("failed to close Redis client", "error", err)
			}
		}()
	}

	handlers, err := di.NewHandlers(gdb, rdb, cfg)
	if err != nil {
		logger.Error("failed to wire handlers", "error", err)
		os.Exit(1)
	}

	// ルータ生成
	r := router.NewRouter(handlers, router.Auth{Header: cfg.Auth.Header, APIKey: cfg.Auth.APIKey}, logger)

	logger.Info("server starting", "addr", cfg.Server.Addr)
	if err := r.Run(cfg.Server.Addr); err != nil {
		logger.Error("server stopped", "error", err)
		os.Exit(1)
	}
}
