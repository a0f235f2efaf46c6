package handler

import (
	"context"
	"net/http"

	"github.com/gin-gonic/gin"

	"stock_api/internal/feature/symbols/domain/entity"
	"stock_api/internal/feature/symbols/transport/http/dto"
	"stock_api/internal/platform/http/response"
)

// SymbolUsecase は銘柄統計に関するユースケースのインターフェースです。
// Following Go convention: interfaces are defined by the consumer (handler), not the provider (usecase).
type SymbolUsecase interface {
	RowCount(ctx context.Context) (int64, error)
	UniqueSymbolCount(ctx context.Context) (int64, error)
	MarketCounts(ctx context.Context) (entity.MarketCounts, error)
	ListSymbols(ctx context.Context) ([]entity.Symbol, error)
}

// SymbolHandler は銘柄統計に関するHTTPリクエストを処理します。
type SymbolHandler struct {
	uc SymbolUsecase
}

// NewSymbolHandler は新しい SymbolHandler を作成します。
func NewSymbolHandler(uc SymbolUsecase) *SymbolHandler {
	return &SymbolHandler{uc: uc}
}

// List は銘柄の一覧を返します。
func (h *SymbolHandler) List(c *gin.Context) {
	symbols, err := h.uc.ListSymbols(c.Request.Context())
	if err != nil {
		response.Error(c, err)
		return
	}
	out := make([]dto.SymbolItem, 0, len(symbols))
	for _, s := range symbols {
		out = append(out, dto.SymbolItem{Symbol: s.Code, Market: s.Market, Rows: s.Rows})
	}
	c.JSON(http.StatusOK, out)
}

// RowCount はレコード総数を返します。
func (h *SymbolHandler) RowCount(c *gin.Context) {
	n, err := h.uc.RowCount(c.Request.Context())
	if err != nil {
		response.Error(c, err)
		return
	}
	c.JSON(http.StatusOK, dto.RowCountResponse{RowCount: n})
}

// UniqueStockCount は銘柄の種類数を返します。
func (h *SymbolHandler) UniqueStockCount(c *gin.Context) {
	n, err := h.uc.UniqueSymbolCount(c.Request.Context())
	if err != nil {
		response.Error(c, err)
		return
	}
	c.JSON(http.StatusOK, dto.UniqueStockCountResponse{UniqueStockCount: n})
}

// RowsByMarket はNYSEとNASDAQのレコード数を返します。
func (h *SymbolHandler) RowsByMarket(c *gin.Context) {
	mc, err := h.uc.MarketCounts(c.Request.Context())
	if err != nil {
		response.Error(c, err)
		return
	}
	c.JSON(http.StatusOK, dto.MarketCountResponse{NYSE: mc.NYSE, NASDAQ: mc.NASDAQ})
}
