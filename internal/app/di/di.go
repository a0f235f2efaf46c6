// Package di provides dependency injection factories for creating application components.
package di

import (
	"fmt"
	"time"

	"github.com/redis/go-redis/v9"
	"gorm.io/gorm"

	"stock_api/internal/app/router"
	backtesthandler "stock_api/internal/feature/backtest/transport/handler"
	backtestusecase "stock_api/internal/feature/backtest/usecase"
	ledgeradapters "stock_api/internal/feature/ledger/adapters"
	ledgerhandler "stock_api/internal/feature/ledger/transport/handler"
	ledgerusecase "stock_api/internal/feature/ledger/usecase"
	priceadapters "stock_api/internal/feature/prices/adapters"
	"stock_api/internal/feature/prices/adapters/archive"
	pricehandler "stock_api/internal/feature/prices/transport/handler"
	priceusecase "stock_api/internal/feature/prices/usecase"
	symboladapters "stock_api/internal/feature/symbols/adapters"
	symbolhandler "stock_api/internal/feature/symbols/transport/handler"
	symbolusecase "stock_api/internal/feature/symbols/usecase"
	"stock_api/internal/platform/cache"
	"stock_api/internal/platform/config"
	"stock_api/internal/platform/db"
	"stock_api/internal/platform/http/handler"
)

// DBConfig maps the application config onto the storage bootstrap config.
func DBConfig(cfg *config.Config) db.Config {
	d := cfg.Database
	return db.Config{
		Driver:   d.Driver,
		Path:     d.Path,
		Host:     d.Host,
		Port:     d.Port,
		User:     d.User,
		Password: d.Password,
		Name:     d.Name,
		SSLMode:  d.SSLMode,
	}
}

// PriceStore wraps the gorm Price Store with the Redis series cache. A nil client disables caching.
func PriceStore(gdb *gorm.DB, rdb *redis.Client, cfg *config.Config) *cache.CachingPriceRepository {
	ttl := time.Duration(cfg.Cache.TTLSeconds) * time.Second
	return cache.NewCachingPriceRepository(rdb, ttl, priceadapters.NewPriceRepository(gdb), "prices")
}

// NewHandlers wires adapters -> usecases -> handlers over one connection.
func NewHandlers(gdb *gorm.DB, rdb *redis.Client, cfg *config.Config) (router.Handlers, error) {
	sqlDB, err := gdb.DB()
	if err != nil {
		return router.Handlers{}, fmt.Errorf("get sql.DB: %w", err)
	}

	// Repository
	priceRepo := priceadapters.NewPriceRepository(gdb)
	symbolRepo := symboladapters.NewSymbolRepository(gdb)
	ledgerRepo := ledgeradapters.NewLedgerRepository(gdb)

	// Usecase
	pricesUC := priceusecase.NewPricesUsecase(PriceStore(gdb, rdb, cfg))
	symbolUC := symbolusecase.NewSymbolUsecase(symbolRepo)
	backtestUC := backtestusecase.NewBackTestUsecase(priceRepo)
	accountUC := ledgerusecase.NewAccountUsecase(ledgerRepo, ledgerRepo)
	holdingUC := ledgerusecase.NewHoldingUsecase(ledgerRepo, ledgerRepo, priceRepo)
	returnCalc := ledgerusecase.NewReturnCalculator(ledgerRepo, ledgerRepo, priceRepo)

	// Handler
	return router.Handlers{
		Health:   handler.NewHealthHandler(sqlDB),
		Prices:   pricehandler.NewPricesHandler(pricesUC),
		Symbols:  symbolhandler.NewSymbolHandler(symbolUC),
		BackTest: backtesthandler.NewBackTestHandler(backtestUC),
		Accounts: ledgerhandler.NewAccountHandler(accountUC, returnCalc),
		Holdings: ledgerhandler.NewHoldingHandler(holdingUC),
	}, nil
}

// NewIngestUsecase wires the zip archive source of the data dir to the Price Store.
// Writes go through the cache so re-ingested symbols are invalidated.
func NewIngestUsecase(gdb *gorm.DB, rdb *redis.Client, cfg *config.Config) *priceusecase.IngestUsecase {
	source := archive.NewZipSource(cfg.Ingest.DataDir)
	return priceusecase.NewIngestUsecase(source, PriceStore(gdb, rdb, cfg), cfg.Ingest.BatchSize)
}
