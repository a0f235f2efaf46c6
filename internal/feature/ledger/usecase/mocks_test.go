package usecase

import (
	"context"
	"errors"
	"time"

	"stock_api/internal/feature/ledger/domain/entity"
	priceentity "stock_api/internal/feature/prices/domain/entity"
	"stock_api/internal/shared/tradingdate"
)

// mockAccountRepository is a mock implementation of the AccountRepository interface.
type mockAccountRepository struct {
	ListAccountsFunc  func(ctx context.Context) ([]entity.Account, error)
	FindAccountFunc   func(ctx context.Context, id uint) (*entity.Account, error)
	CreateAccountFunc func(ctx context.Context, name string) (*entity.Account, error)
	DeleteAccountFunc func(ctx context.Context, id uint) error
}

func (m *mockAccountRepository) ListAccounts(ctx context.Context) ([]entity.Account, error) {
	return m.ListAccountsFunc(ctx)
}

func (m *mockAccountRepository) FindAccount(ctx context.Context, id uint) (*entity.Account, error) {
	if m.FindAccountFunc != nil {
		return m.FindAccountFunc(ctx, id)
	}
	return nil, errors.New("FindAccountFunc is not implemented")
}

func (m *mockAccountRepository) CreateAccount(ctx context.Context, name string) (*entity.Account, error) {
	return m.CreateAccountFunc(ctx, name)
}

func (m *mockAccountRepository) DeleteAccount(ctx context.Context, id uint) error {
	return m.DeleteAccountFunc(ctx, id)
}

// existingAccounts returns a FindAccountFunc that knows the given ids.
func existingAccounts(ids ...uint) func(ctx context.Context, id uint) (*entity.Account, error) {
	return func(_ context.Context, id uint) (*entity.Account, error) {
		for _, known := range ids {
			if id == known {
				return &entity.Account{ID: id, Name: "acct"}, nil
			}
		}
		return nil, ErrAccountNotFound
	}
}

// mockHoldingRepository is a mock implementation of the HoldingRepository interface.
type mockHoldingRepository struct {
	CreateHoldingFunc     func(ctx context.Context, h entity.Holding) error
	DeleteHoldingsFunc    func(ctx context.Context, h entity.Holding) (int64, error)
	HoldingsByAccountFunc func(ctx context.Context, accountID uint) ([]entity.Holding, error)
	HoldingsBySymbolFunc  func(ctx context.Context, symbol string) ([]entity.Holding, error)
}

func (m *mockHoldingRepository) CreateHolding(ctx context.Context, h entity.Holding) error {
	return m.CreateHoldingFunc(ctx, h)
}

func (m *mockHoldingRepository) DeleteHoldings(ctx context.Context, h entity.Holding) (int64, error) {
	return m.DeleteHoldingsFunc(ctx, h)
}

func (m *mockHoldingRepository) HoldingsByAccount(ctx context.Context, accountID uint) ([]entity.Holding, error) {
	return m.HoldingsByAccountFunc(ctx, accountID)
}

func (m *mockHoldingRepository) HoldingsBySymbol(ctx context.Context, symbol string) ([]entity.Holding, error) {
	return m.HoldingsBySymbolFunc(ctx, symbol)
}

// memoryPrices is a PriceLookup keyed by "SYMBOL|YYYY-MM-DD".
type memoryPrices map[string]priceentity.PriceRecord

func (m memoryPrices) FindOne(_ context.Context, symbol string, date time.Time) (*priceentity.PriceRecord, error) {
	r, ok := m[symbol+"|"+tradingdate.Format(date)]
	if !ok {
		return nil, nil
	}
	return &r, nil
}

func (m memoryPrices) add(symbol, date string, open, close float64) memoryPrices {
	d, err := tradingdate.Parse(date)
	if err != nil {
		panic(err)
	}
	m[symbol+"|"+date] = priceentity.PriceRecord{Symbol: symbol, Date: d, Open: open, Close: close}
	return m
}

func mustDate(s string) time.Time {
	d, err := tradingdate.Parse(s)
	if err != nil {
		panic(err)
	}
	return d
}
