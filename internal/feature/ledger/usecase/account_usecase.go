// Package usecase implements account and holding management and the account return calculation.
package usecase

import (
	"context"
	"log/slog"
	"strings"

	"stock_api/internal/feature/ledger/domain/entity"
)

// AccountUsecase manages accounts.
type AccountUsecase struct {
	accounts AccountRepository
	holdings HoldingRepository
}

func NewAccountUsecase(accounts AccountRepository, holdings HoldingRepository) *AccountUsecase {
	return &AccountUsecase{accounts: accounts, holdings: holdings}
}

// List returns every account ordered by id.
func (u *AccountUsecase) List(ctx context.Context) ([]entity.Account, error) {
	return u.accounts.ListAccounts(ctx)
}

// Create adds an account. The name is trimmed and must not be empty.
func (u *AccountUsecase) Create(ctx context.Context, name string) (*entity.Account, error) {
	name = strings.TrimSpace(name)
	if name == "" {
		return nil, ErrMissingField
	}
	a, err := u.accounts.CreateAccount(ctx, name)
	if err != nil {
		return nil, err
	}
	slog.Info("account created", "account_id", a.ID, "name", a.Name)
	return a, nil
}

// Delete removes the account and all of its holdings.
func (u *AccountUsecase) Delete(ctx context.Context, id uint) error {
	if id == 0 {
		return ErrMissingField
	}
	if err := u.accounts.DeleteAccount(ctx, id); err != nil {
		return err
	}
	slog.Info("account deleted", "account_id", id)
	return nil
}

// Get returns the account with its holdings.
func (u *AccountUsecase) Get(ctx context.Context, id uint) (*entity.AccountDetail, error) {
	a, err := u.accounts.FindAccount(ctx, id)
	if err != nil {
		return nil, err
	}
	hs, err := u.holdings.HoldingsByAccount(ctx, id)
	if err != nil {
		return nil, err
	}
	return &entity.AccountDetail{Account: *a, Holdings: hs}, nil
}
