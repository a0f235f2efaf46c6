// Command ingest manages the local price database.
//
//	ingest create   create the tables
//	ingest load     create the tables and load every archive of the data dir
//	ingest clean    delete all rows, keeping the tables
//	ingest rm       delete the sqlite database file
package main

import (
	"context"
	"errors"
	"flag"
	"fmt"
	"io/fs"
	"log/slog"
	"os"
	"os/signal"
	"syscall"

	"github.com/joho/godotenv"

	"stock_api/internal/app/di"
	"stock_api/internal/platform/config"
	"stock_api/internal/platform/db"
	"stock_api/internal/platform/logging"
	"stock_api/internal/platform/redis"
)

func main() {
	configPath := flag.String("config", os.Getenv("CONFIG_PATH"), "path to YAML config")
	dataDir := flag.String("data", "", "directory holding the zip archives (overrides config)")
	flag.Usage = func() {
		fmt.Fprintf(flag.CommandLine.Output(), "usage: %s [flags] create|load|clean|rm\n", os.Args[0])
		flag.PrintDefaults()
	}
	flag.Parse()
	if flag.NArg() != 1 {
		flag.Usage()
		os.Exit(2)
	}

	if err := godotenv.Load(); err != nil && !errors.Is(err, fs.ErrNotExist) {
		slog.Warn("failed to load .env", "error", err)
	}
	cfg, err := config.Load(*configPath)
	if err != nil {
		slog.Error("failed to load config", "error", err)
		os.Exit(1)
	}
	if *dataDir != "" {
		cfg.Ingest.DataDir = *dataDir
	}

	logger := logging.New(os.Stderr, cfg.Log.Level, cfg.Log.Format)
	slog.SetDefault(logger)

	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	if err := run(ctx, flag.Arg(0), cfg); err != nil {
		logger.Error("ingest failed", "command", flag.Arg(0), "error", err)
		os.Exit(1)
	}
}

func run(ctx context.Context, cmd string, cfg *config.Config) error {
	dbCfg := di.DBConfig(cfg)

	if cmd == "rm" {
		if err := db.Remove(dbCfg); err != nil {
			return err
		}
		slog.Info("database removed", "path", dbCfg.Path)
		return nil
	}

	gdb, err := db.Open(dbCfg)
	if err != nil {
		return err
	}

	switch cmd {
	case "create":
		if err := db.Migrate(gdb); err != nil {
			return err
		}
		slog.Info("tables created")
		return nil

	case "load":
		if err := db.Migrate(gdb); err != nil {
			return err
		}
		rdb, err := redis.NewClient(ctx, cfg.Cache.RedisAddr, cfg.Cache.RedisPassword, cfg.Cache.RedisDB)
		if err != nil {
			slog.Warn("Redis unavailable. Cached series will expire by TTL.", "error", err)
			rdb = nil
		}
		if rdb != nil {
			defer rdb.Close()
		}
		report, err := di.NewIngestUsecase(gdb, rdb, cfg).IngestAll(ctx)
		slog.Info("ingest finished",
			"archives", report.Archives,
			"records", report.Records,
			"skipped", report.Skipped,
			"failed", len(report.Failed),
		)
		return err

	case "clean":
		if err := db.Clean(gdb); err != nil {
			return err
		}
		slog.Info("tables cleaned")
		return nil

	default:
		return fmt.Errorf("unknown command %q", cmd)
	}
}
