// Package handler はledgerフィーチャーのHTTPハンドラーを提供します。
package handler

import (
	"context"
	"net/http"
	"strconv"

	"github.com/gin-gonic/gin"

	"stock_api/internal/feature/ledger/domain/entity"
	"stock_api/internal/feature/ledger/transport/http/dto"
	"stock_api/internal/platform/http/response"
)

// AccountUsecase はアカウント操作のユースケースインターフェースです。
// Goの慣例に従い、インターフェースは利用者（handler）側で定義します。
type AccountUsecase interface {
	List(ctx context.Context) ([]entity.Account, error)
	Create(ctx context.Context, name string) (*entity.Account, error)
	Delete(ctx context.Context, id uint) error
	Get(ctx context.Context, id uint) (*entity.AccountDetail, error)
}

// ReturnCalculator はアカウント収益計算のインターフェースです。
type ReturnCalculator interface {
	AccountReturn(ctx context.Context, accountID uint) (*entity.AccountReturn, error)
}

// AccountHandler はアカウントに関するHTTPリクエストを処理します。
type AccountHandler struct {
	uc   AccountUsecase
	calc ReturnCalculator
}

// NewAccountHandler は新しい AccountHandler を作成します。
func NewAccountHandler(uc AccountUsecase, calc ReturnCalculator) *AccountHandler {
	return &AccountHandler{uc: uc, calc: calc}
}

// List はアカウントの一覧を返します。
func (h *AccountHandler) List(c *gin.Context) {
	accounts, err := h.uc.List(c.Request.Context())
	if err != nil {
		response.Error(c, err)
		return
	}
	out := make([]dto.AccountResponse, 0, len(accounts))
	for _, a := range accounts {
		out = append(out, dto.AccountResponse{AccountID: a.ID, Name: a.Name})
	}
	c.JSON(http.StatusOK, out)
}

// Create はアカウントを作成します。
//
// エンドポイント例:
// POST /accounts {"name":"alice"}
func (h *AccountHandler) Create(c *gin.Context) {
	var req dto.CreateAccountRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		response.BadRequest(c, "name is required")
		return
	}
	a, err := h.uc.Create(c.Request.Context(), req.Name)
	if err != nil {
		response.Error(c, err)
		return
	}
	c.JSON(http.StatusCreated, dto.AccountResponse{AccountID: a.ID, Name: a.Name})
}

// Delete はアカウントと保有を削除します。
//
// エンドポイント例:
// DELETE /accounts {"account_id":1}
func (h *AccountHandler) Delete(c *gin.Context) {
	var req dto.DeleteAccountRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		response.BadRequest(c, "account_id is required")
		return
	}
	if err := h.uc.Delete(c.Request.Context(), req.AccountID); err != nil {
		response.Error(c, err)
		return
	}
	c.JSON(http.StatusOK, dto.AccountIDResponse{AccountID: req.AccountID})
}

// Get はアカウントと保有の一覧を返します。
func (h *AccountHandler) Get(c *gin.Context) {
	id, ok := accountID(c)
	if !ok {
		return
	}
	d, err := h.uc.Get(c.Request.Context(), id)
	if err != nil {
		response.Error(c, err)
		return
	}
	c.JSON(http.StatusOK, dto.AccountDetailResponse{
		AccountID:     d.ID,
		Name:          d.Name,
		StockHoldings: dto.NewHoldingResponses(d.Holdings),
	})
}

// Return はアカウントの実現収益を返します。
//
// エンドポイント例:
// GET /accounts/return/1
func (h *AccountHandler) Return(c *gin.Context) {
	id, ok := accountID(c)
	if !ok {
		return
	}
	r, err := h.calc.AccountReturn(c.Request.Context(), id)
	if err != nil {
		response.Error(c, err)
		return
	}
	c.JSON(http.StatusOK, dto.AccountReturnResponse{AccountID: r.AccountID, Return: r.TotalReturn})
}

// accountID はパスの :id を読み取ります。不正な場合は400を書き込み false を返します。
func accountID(c *gin.Context) (uint, bool) {
	id, err := strconv.ParseUint(c.Param("id"), 10, 64)
	if err != nil || id == 0 {
		response.BadRequest(c, "account id must be a positive integer")
		return 0, false
	}
	return uint(id), true
}
