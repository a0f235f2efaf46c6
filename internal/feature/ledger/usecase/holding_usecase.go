package usecase

import (
	"context"
	"fmt"
	"log/slog"
	"strings"
	"time"

	"stock_api/internal/feature/ledger/domain/entity"
	"stock_api/internal/shared/tradingdate"
)

// HoldingInput is an unvalidated holding tuple from the transport layer.
type HoldingInput struct {
	AccountID      uint
	Symbol         string
	PurchaseDate   string
	SaleDate       string
	NumberOfShares int64
}

// parse validates the shape of the tuple and normalizes the symbol.
func (in HoldingInput) parse() (entity.Holding, error) {
	h := entity.Holding{
		AccountID:      in.AccountID,
		Symbol:         strings.ToUpper(strings.TrimSpace(in.Symbol)),
		NumberOfShares: in.NumberOfShares,
	}
	if h.AccountID == 0 {
		return h, fmt.Errorf("%w: account_id", ErrMissingField)
	}
	if h.Symbol == "" {
		return h, fmt.Errorf("%w: symbol", ErrMissingField)
	}

	var err error
	if h.PurchaseDate, err = tradingdate.Parse(in.PurchaseDate); err != nil {
		return h, fmt.Errorf("%w: purchase_date: %v", ErrInvalidDate, err)
	}
	if h.SaleDate, err = tradingdate.Parse(in.SaleDate); err != nil {
		return h, fmt.Errorf("%w: sale_date: %v", ErrInvalidDate, err)
	}
	return h, nil
}

// HoldingUsecase manages holdings.
type HoldingUsecase struct {
	accounts AccountRepository
	holdings HoldingRepository
	prices   PriceLookup
}

func NewHoldingUsecase(accounts AccountRepository, holdings HoldingRepository, prices PriceLookup) *HoldingUsecase {
	return &HoldingUsecase{accounts: accounts, holdings: holdings, prices: prices}
}

// Create stores a holding after checking the account exists and both dates
// have a price record for the symbol.
func (u *HoldingUsecase) Create(ctx context.Context, in HoldingInput) (*entity.Holding, error) {
	h, err := in.parse()
	if err != nil {
		return nil, err
	}
	if h.NumberOfShares <= 0 {
		return nil, ErrInvalidShares
	}
	if h.SaleDate.Before(h.PurchaseDate) {
		return nil, ErrInvalidHoldingDates
	}
	if _, err := u.accounts.FindAccount(ctx, h.AccountID); err != nil {
		return nil, err
	}
	for _, d := range []time.Time{h.PurchaseDate, h.SaleDate} {
		p, err := u.prices.FindOne(ctx, h.Symbol, d)
		if err != nil {
			return nil, err
		}
		if p == nil {
			return nil, fmt.Errorf("%w: %s %s", ErrPriceNotFound, h.Symbol, tradingdate.Format(d))
		}
	}

	if err := u.holdings.CreateHolding(ctx, h); err != nil {
		return nil, err
	}
	slog.Info("holding created", "account_id", h.AccountID, "symbol", h.Symbol, "shares", h.NumberOfShares)
	return &h, nil
}

// Delete removes every holding equal to the tuple.
func (u *HoldingUsecase) Delete(ctx context.Context, in HoldingInput) error {
	h, err := in.parse()
	if err != nil {
		return err
	}
	n, err := u.holdings.DeleteHoldings(ctx, h)
	if err != nil {
		return err
	}
	if n == 0 {
		return ErrHoldingNotFound
	}
	slog.Info("holdings deleted", "account_id", h.AccountID, "symbol", h.Symbol, "rows", n)
	return nil
}

// BySymbol returns the holdings of every account for the symbol.
func (u *HoldingUsecase) BySymbol(ctx context.Context, symbol string) ([]entity.Holding, error) {
	return u.holdings.HoldingsBySymbol(ctx, strings.ToUpper(strings.TrimSpace(symbol)))
}
