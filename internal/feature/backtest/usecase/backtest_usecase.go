// Package usecase implements the lag join and the back-test computation.
package usecase

import (
	"context"
	"fmt"
	"log/slog"
	"time"

	"stock_api/internal/feature/backtest/domain/entity"
	priceentity "stock_api/internal/feature/prices/domain/entity"
	"stock_api/internal/shared/money"
	"stock_api/internal/shared/tradingdate"
)

// PriceSource は back-test が参照する価格データの読み取りインターフェースです。
type PriceSource interface {
	DateExists(ctx context.Context, date time.Time) (bool, error)
	FindRange(ctx context.Context, from, to time.Time) ([]priceentity.PriceRecord, error)
}

// RequestInput は HTTP 層から受け取る未検証のリクエストです。
type RequestInput struct {
	Value1       string
	Value2       string
	Operator     string
	PurchaseType string
	StartDate    string
	EndDate      string
}

// ParseRequest は入力を検証して entity.Request を組み立てます。
// 取引日の存在確認は Run で行います。
func ParseRequest(in RequestInput) (entity.Request, error) {
	var req entity.Request
	var ok bool

	if req.ValueA, ok = entity.ParseLaggedField(in.Value1); !ok {
		return req, fmt.Errorf("%w: value_1 %q", ErrInvalidValueCode, in.Value1)
	}
	if req.ValueB, ok = entity.ParseLaggedField(in.Value2); !ok {
		return req, fmt.Errorf("%w: value_2 %q", ErrInvalidValueCode, in.Value2)
	}
	if req.Operator, ok = entity.ParseOperator(in.Operator); !ok {
		return req, fmt.Errorf("%w: got %q", ErrInvalidOperator, in.Operator)
	}
	if req.PurchaseType, ok = entity.ParsePurchaseType(in.PurchaseType); !ok {
		return req, fmt.Errorf("%w: got %q", ErrInvalidPurchaseType, in.PurchaseType)
	}

	var err error
	if req.Start, err = tradingdate.Parse(in.StartDate); err != nil {
		return req, fmt.Errorf("%w: start_date: %v", ErrInvalidDate, err)
	}
	if req.End, err = tradingdate.Parse(in.EndDate); err != nil {
		return req, fmt.Errorf("%w: end_date: %v", ErrInvalidDate, err)
	}
	if req.Start.After(req.End) {
		return req, ErrInvalidRange
	}
	return req, nil
}

// Evaluate applies the predicate to every row carrying both lagged values
// and sums the day return of the rows that satisfy it.
func Evaluate(rows []entity.AlignedRow, op entity.Operator, side entity.PurchaseType) entity.Result {
	var res entity.Result
	for _, r := range rows {
		if !r.HasA || !r.HasB {
			continue
		}
		if !op.Holds(r.ValueA, r.ValueB) {
			continue
		}
		res.TotalReturn += side.DayReturn(r.Open, r.Close)
		res.Observations++
	}
	res.TotalReturn = money.Round2(res.TotalReturn)
	return res
}

// BackTestUsecase runs back-tests against the Price Store.
type BackTestUsecase struct {
	prices PriceSource
}

func NewBackTestUsecase(prices PriceSource) *BackTestUsecase {
	return &BackTestUsecase{prices: prices}
}

// Run validates that both dates are stored trading dates, loads the window
// [start - max lag, end], aligns it and evaluates the request.
func (u *BackTestUsecase) Run(ctx context.Context, req entity.Request) (entity.Result, error) {
	if req.Start.After(req.End) {
		return entity.Result{}, ErrInvalidRange
	}
	for _, d := range []time.Time{req.Start, req.End} {
		ok, err := u.prices.DateExists(ctx, d)
		if err != nil {
			return entity.Result{}, err
		}
		if !ok {
			return entity.Result{}, fmt.Errorf("%w: %s is not a trading date in the data", ErrInvalidDate, tradingdate.Format(d))
		}
	}

	from := tradingdate.DaysBefore(req.Start, req.MaxLag())
	series, err := u.prices.FindRange(ctx, from, req.End)
	if err != nil {
		return entity.Result{}, err
	}

	rows := AlignLagged(series, req.Start, req.End, req.ValueA, req.ValueB)
	res := Evaluate(rows, req.Operator, req.PurchaseType)

	slog.Debug("back-test evaluated",
		"value_1", req.ValueA.String(),
		"value_2", req.ValueB.String(),
		"operator", req.Operator,
		"purchase_type", req.PurchaseType,
		"window_rows", len(series),
		"aligned_rows", len(rows),
		"observations", res.Observations,
	)
	return res, nil
}
