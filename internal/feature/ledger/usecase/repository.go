package usecase

import (
	"context"
	"time"

	"stock_api/internal/feature/ledger/domain/entity"
	priceentity "stock_api/internal/feature/prices/domain/entity"
)

// AccountRepository abstracts persistence of accounts.
// Following Go convention: interfaces are defined by the consumer (usecase), not the provider (adapters).
type AccountRepository interface {
	ListAccounts(ctx context.Context) ([]entity.Account, error)
	// FindAccount returns ErrAccountNotFound when the id does not exist.
	FindAccount(ctx context.Context, id uint) (*entity.Account, error)
	// CreateAccount returns ErrAccountNameTaken on a duplicate name.
	CreateAccount(ctx context.Context, name string) (*entity.Account, error)
	// DeleteAccount removes the account and its holdings in one transaction.
	DeleteAccount(ctx context.Context, id uint) error
}

// HoldingRepository abstracts persistence of holdings.
type HoldingRepository interface {
	CreateHolding(ctx context.Context, h entity.Holding) error
	// DeleteHoldings removes every holding equal to h and returns how many were removed.
	DeleteHoldings(ctx context.Context, h entity.Holding) (int64, error)
	HoldingsByAccount(ctx context.Context, accountID uint) ([]entity.Holding, error)
	HoldingsBySymbol(ctx context.Context, symbol string) ([]entity.Holding, error)
}

// PriceLookup reads a single price record. It returns (nil, nil) when absent.
type PriceLookup interface {
	FindOne(ctx context.Context, symbol string, date time.Time) (*priceentity.PriceRecord, error)
}
