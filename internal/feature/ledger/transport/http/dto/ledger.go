// Package dto defines request and response bodies of the ledger HTTP API.
package dto

import (
	"stock_api/internal/feature/ledger/domain/entity"
	"stock_api/internal/shared/tradingdate"
)

// CreateAccountRequest は POST /accounts のリクエストボディです。
type CreateAccountRequest struct {
	Name string `json:"name" binding:"required"`
}

// DeleteAccountRequest は DELETE /accounts のリクエストボディです。
type DeleteAccountRequest struct {
	AccountID uint `json:"account_id" binding:"required"`
}

// AccountResponse はアカウント1件です。
type AccountResponse struct {
	AccountID uint   `json:"account_id"`
	Name      string `json:"name"`
}

// AccountIDResponse は DELETE /accounts のレスポンスです。
type AccountIDResponse struct {
	AccountID uint `json:"account_id"`
}

// AccountDetailResponse は GET /accounts/:id のレスポンスです。
type AccountDetailResponse struct {
	AccountID     uint              `json:"account_id"`
	Name          string            `json:"name"`
	StockHoldings []HoldingResponse `json:"stock_holdings"`
}

// AccountReturnResponse は GET /accounts/return/:id のレスポンスです。
type AccountReturnResponse struct {
	AccountID uint    `json:"account_id"`
	Return    float64 `json:"return"`
}

// HoldingRequest は POST/DELETE /stocks のリクエストボディです。
type HoldingRequest struct {
	AccountID      uint   `json:"account_id" binding:"required"`
	Symbol         string `json:"symbol" binding:"required"`
	PurchaseDate   string `json:"purchase_date" binding:"required"`
	SaleDate       string `json:"sale_date" binding:"required"`
	NumberOfShares int64  `json:"number_of_shares"`
}

// HoldingResponse は保有1件です。
type HoldingResponse struct {
	AccountID      uint   `json:"account_id"`
	Symbol         string `json:"symbol"`
	PurchaseDate   string `json:"purchase_date"`
	SaleDate       string `json:"sale_date"`
	NumberOfShares int64  `json:"number_of_shares"`
}

func NewHoldingResponse(h entity.Holding) HoldingResponse {
	return HoldingResponse{
		AccountID:      h.AccountID,
		Symbol:         h.Symbol,
		PurchaseDate:   tradingdate.Format(h.PurchaseDate),
		SaleDate:       tradingdate.Format(h.SaleDate),
		NumberOfShares: h.NumberOfShares,
	}
}

func NewHoldingResponses(hs []entity.Holding) []HoldingResponse {
	out := make([]HoldingResponse, 0, len(hs))
	for _, h := range hs {
		out = append(out, NewHoldingResponse(h))
	}
	return out
}
