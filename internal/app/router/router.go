package router

import (
	"log/slog"

	"github.com/gin-gonic/gin"

	backtesthandler "stock_api/internal/feature/backtest/transport/handler"
	ledgerhandler "stock_api/internal/feature/ledger/transport/handler"
	pricehandler "stock_api/internal/feature/prices/transport/handler"
	symbolhandler "stock_api/internal/feature/symbols/transport/handler"
	"stock_api/internal/platform/apikey"
	"stock_api/internal/platform/http/handler"
	"stock_api/internal/platform/http/middleware"
)

// Handlers はルーティング対象のハンドラー一式です。
type Handlers struct {
	Health   *handler.HealthHandler
	Prices   *pricehandler.PricesHandler
	Symbols  *symbolhandler.SymbolHandler
	BackTest *backtesthandler.BackTestHandler
	Accounts *ledgerhandler.AccountHandler
	Holdings *ledgerhandler.HoldingHandler
}

// Auth は共有シークレットのヘッダー名と期待値です。
type Auth struct {
	Header string
	APIKey string
}

func NewRouter(h Handlers, auth Auth, logger *slog.Logger) *gin.Engine {
	r := gin.New()
	r.Use(gin.Recovery(), middleware.RequestLogger(logger))

	// 認証不要
	// 導通確認用
	r.GET("/healthz", h.Health.Health)
	r.HEAD("/healthz", h.Health.Health)
	r.GET("/readyz", h.Health.Ready)

	// 認証必須のルート
	// → リクエストヘッダーに API キーが必要になる
	api := r.Group("/")
	api.Use(apikey.Required(auth.Header, auth.APIKey))
	{
		api.GET("/prices/year/:year", h.Prices.CountYear)
		api.GET("/prices/:priceType/:symbol", h.Prices.GetPrices)

		api.GET("/symbols", h.Symbols.List)
		api.GET("/stats/row_count", h.Symbols.RowCount)
		api.GET("/stats/unique_stock_count", h.Symbols.UniqueStockCount)
		api.GET("/stats/row_by_market_count", h.Symbols.RowsByMarket)

		api.POST("/backtest", h.BackTest.Run)

		api.GET("/accounts", h.Accounts.List)
		api.POST("/accounts", h.Accounts.Create)
		api.DELETE("/accounts", h.Accounts.Delete)
		api.GET("/accounts/return/:id", h.Accounts.Return)
		api.GET("/accounts/:id", h.Accounts.Get)

		api.POST("/stocks", h.Holdings.Create)
		api.DELETE("/stocks", h.Holdings.Delete)
		api.GET("/stocks/:symbol", h.Holdings.BySymbol)
	}

	return r
}
