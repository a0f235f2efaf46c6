package handler

import (
	"context"
	"net/http"

	"github.com/gin-gonic/gin"

	"stock_api/internal/feature/ledger/domain/entity"
	"stock_api/internal/feature/ledger/transport/http/dto"
	"stock_api/internal/feature/ledger/usecase"
	"stock_api/internal/platform/http/response"
)

// HoldingUsecase は保有操作のユースケースインターフェースです。
type HoldingUsecase interface {
	Create(ctx context.Context, in usecase.HoldingInput) (*entity.Holding, error)
	Delete(ctx context.Context, in usecase.HoldingInput) error
	BySymbol(ctx context.Context, symbol string) ([]entity.Holding, error)
}

// HoldingHandler は保有に関するHTTPリクエストを処理します。
type HoldingHandler struct {
	uc HoldingUsecase
}

// NewHoldingHandler は新しい HoldingHandler を作成します。
func NewHoldingHandler(uc HoldingUsecase) *HoldingHandler {
	return &HoldingHandler{uc: uc}
}

func bindHolding(c *gin.Context) (usecase.HoldingInput, bool) {
	var req dto.HoldingRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		response.BadRequest(c, "account_id, symbol, purchase_date and sale_date are required")
		return usecase.HoldingInput{}, false
	}
	return usecase.HoldingInput{
		AccountID:      req.AccountID,
		Symbol:         req.Symbol,
		PurchaseDate:   req.PurchaseDate,
		SaleDate:       req.SaleDate,
		NumberOfShares: req.NumberOfShares,
	}, true
}

// Create は保有を追加します。
//
// エンドポイント例:
// POST /stocks {"account_id":1,"symbol":"AAPL","purchase_date":"2020-01-02","sale_date":"2020-06-01","number_of_shares":10}
func (h *HoldingHandler) Create(c *gin.Context) {
	in, ok := bindHolding(c)
	if !ok {
		return
	}
	stored, err := h.uc.Create(c.Request.Context(), in)
	if err != nil {
		response.Error(c, err)
		return
	}
	c.JSON(http.StatusCreated, dto.NewHoldingResponse(*stored))
}

// Delete は全フィールドが一致する保有を削除します。
func (h *HoldingHandler) Delete(c *gin.Context) {
	in, ok := bindHolding(c)
	if !ok {
		return
	}
	if err := h.uc.Delete(c.Request.Context(), in); err != nil {
		response.Error(c, err)
		return
	}
	c.JSON(http.StatusOK, gin.H{"deleted": true})
}

// BySymbol は銘柄の保有一覧を返します。
func (h *HoldingHandler) BySymbol(c *gin.Context) {
	hs, err := h.uc.BySymbol(c.Request.Context(), c.Param("symbol"))
	if err != nil {
		response.Error(c, err)
		return
	}
	c.JSON(http.StatusOK, dto.NewHoldingResponses(hs))
}
