package usecase

import (
	"context"
	"log/slog"

	"stock_api/internal/feature/ledger/domain/entity"
	"stock_api/internal/shared/money"
	"stock_api/internal/shared/tradingdate"
)

// ReturnCalculator computes the realized return of an account.
type ReturnCalculator struct {
	accounts AccountRepository
	holdings HoldingRepository
	prices   PriceLookup
}

func NewReturnCalculator(accounts AccountRepository, holdings HoldingRepository, prices PriceLookup) *ReturnCalculator {
	return &ReturnCalculator{accounts: accounts, holdings: holdings, prices: prices}
}

// AccountReturn sums shares * (close on sale date - open on purchase date) over
// the holdings of the account. A holding missing either price record adds nothing.
// An account without holdings returns 0.
func (c *ReturnCalculator) AccountReturn(ctx context.Context, accountID uint) (*entity.AccountReturn, error) {
	if _, err := c.accounts.FindAccount(ctx, accountID); err != nil {
		return nil, err
	}
	hs, err := c.holdings.HoldingsByAccount(ctx, accountID)
	if err != nil {
		return nil, err
	}

	var total float64
	for _, h := range hs {
		bought, err := c.prices.FindOne(ctx, h.Symbol, h.PurchaseDate)
		if err != nil {
			return nil, err
		}
		sold, err := c.prices.FindOne(ctx, h.Symbol, h.SaleDate)
		if err != nil {
			return nil, err
		}
		if bought == nil || sold == nil {
			slog.Debug("holding has no matching price rows",
				"account_id", accountID,
				"symbol", h.Symbol,
				"purchase_date", tradingdate.Format(h.PurchaseDate),
				"sale_date", tradingdate.Format(h.SaleDate),
			)
			continue
		}
		total += float64(h.NumberOfShares) * (sold.Close - bought.Open)
	}

	return &entity.AccountReturn{AccountID: accountID, TotalReturn: money.Round2(total)}, nil
}
