// Package handler はbacktestフィーチャーのHTTPハンドラーを提供します。
package handler

import (
	"context"
	"net/http"

	"github.com/gin-gonic/gin"

	"stock_api/internal/feature/backtest/domain/entity"
	"stock_api/internal/feature/backtest/transport/http/dto"
	"stock_api/internal/feature/backtest/usecase"
	"stock_api/internal/platform/http/response"
)

// BackTestUsecase は back-test 実行のユースケースインターフェースです。
type BackTestUsecase interface {
	Run(ctx context.Context, req entity.Request) (entity.Result, error)
}

// BackTestHandler は back-test のHTTPリクエストを処理します。
type BackTestHandler struct {
	uc BackTestUsecase
}

// NewBackTestHandler は新しい BackTestHandler を作成します。
func NewBackTestHandler(uc BackTestUsecase) *BackTestHandler {
	return &BackTestHandler{uc: uc}
}

// Run はリクエストを検証して back-test を実行します。
//
// エンドポイント例:
// POST /backtest {"value_1":"O7","value_2":"C0","operator":"LT","purchase_type":"B","start_date":"2020-01-08","end_date":"2020-01-08"}
func (h *BackTestHandler) Run(c *gin.Context) {
	var body dto.BackTestRequest
	if err := c.ShouldBindJSON(&body); err != nil {
		response.BadRequest(c, "invalid request body: "+err.Error())
		return
	}

	req, err := usecase.ParseRequest(usecase.RequestInput{
		Value1:       body.Value1,
		Value2:       body.Value2,
		Operator:     body.Operator,
		PurchaseType: body.PurchaseType,
		StartDate:    body.StartDate,
		EndDate:      body.EndDate,
	})
	if err != nil {
		response.Error(c, err)
		return
	}

	res, err := h.uc.Run(c.Request.Context(), req)
	if err != nil {
		response.Error(c, err)
		return
	}

	c.JSON(http.StatusOK, dto.BackTestResponse{
		Return:          res.TotalReturn,
		NumObservations: res.Observations,
	})
}
