// Package handler はpricesフィーチャーのHTTPハンドラーを提供します。
package handler

import (
	"context"
	"net/http"
	"strconv"
	"strings"

	"github.com/gin-gonic/gin"

	"stock_api/internal/feature/prices/domain/entity"
	"stock_api/internal/feature/prices/transport/http/dto"
	"stock_api/internal/feature/prices/usecase"
	"stock_api/internal/platform/http/response"
	"stock_api/internal/shared/tradingdate"
)

// PricesUsecase は価格データ参照のユースケースインターフェースを定義します。
// Goの慣例に従い、インターフェースは利用者（handler）側で定義します。
type PricesUsecase interface {
	GetPrices(ctx context.Context, priceType, symbol string) (entity.PriceType, []usecase.PricePoint, error)
	CountYear(ctx context.Context, year int) (int64, error)
}

// PricesHandler は価格データのHTTPリクエストを処理します。
type PricesHandler struct {
	uc PricesUsecase
}

// NewPricesHandler は指定されたusecaseでPricesHandlerの新しいインスタンスを生成します。
func NewPricesHandler(uc PricesUsecase) *PricesHandler {
	return &PricesHandler{uc: uc}
}

// GetPrices は銘柄の指定価格を日付昇順で返します。
//
// エンドポイント例:
// GET /prices/close/AAPL
func (h *PricesHandler) GetPrices(c *gin.Context) {
	pt, points, err := h.uc.GetPrices(c.Request.Context(), c.Param("priceType"), c.Param("symbol"))
	if err != nil {
		response.Error(c, err)
		return
	}

	out := make([]dto.PriceInfo, 0, len(points))
	for _, p := range points {
		out = append(out, dto.PriceInfo{
			"date":     tradingdate.Format(p.Record.Date),
			string(pt): p.Value,
		})
	}

	c.JSON(http.StatusOK, dto.PricesResponse{
		Symbol:    strings.ToUpper(c.Param("symbol")),
		PriceInfo: out,
	})
}

// CountYear は指定年のレコード数を返します。
//
// エンドポイント例:
// GET /prices/year/2020
func (h *PricesHandler) CountYear(c *gin.Context) {
	year, err := strconv.Atoi(c.Param("year"))
	if err != nil {
		response.BadRequest(c, "year must be an integer")
		return
	}

	n, err := h.uc.CountYear(c.Request.Context(), year)
	if err != nil {
		response.Error(c, err)
		return
	}

	c.JSON(http.StatusOK, dto.YearCountResponse{Year: year, Count: n})
}
