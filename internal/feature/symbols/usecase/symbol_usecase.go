// Package usecase implements the market statistics operations.
package usecase

import (
	"context"

	"stock_api/internal/feature/symbols/domain/entity"
)

// SymbolRepository abstracts the aggregate queries over stored price records.
// Following Go convention: interfaces are defined by the consumer (usecase), not the provider (adapters).
type SymbolRepository interface {
	CountRows(ctx context.Context) (int64, error)
	CountSymbols(ctx context.Context) (int64, error)
	CountByMarket(ctx context.Context) (entity.MarketCounts, error)
	ListSymbols(ctx context.Context) ([]entity.Symbol, error)
}

// SymbolUsecase provides the statistics endpoints with data.
type SymbolUsecase struct {
	repo SymbolRepository
}

// NewSymbolUsecase creates a new SymbolUsecase with the given repository.
func NewSymbolUsecase(r SymbolRepository) *SymbolUsecase {
	return &SymbolUsecase{repo: r}
}

// RowCount returns the number of stored price records.
func (u *SymbolUsecase) RowCount(ctx context.Context) (int64, error) {
	return u.repo.CountRows(ctx)
}

// UniqueSymbolCount returns the number of distinct symbols.
func (u *SymbolUsecase) UniqueSymbolCount(ctx context.Context) (int64, error) {
	return u.repo.CountSymbols(ctx)
}

// MarketCounts returns the record count for NYSE and NASDAQ.
func (u *SymbolUsecase) MarketCounts(ctx context.Context) (entity.MarketCounts, error) {
	return u.repo.CountByMarket(ctx)
}

// ListSymbols returns every distinct symbol sorted by code.
func (u *SymbolUsecase) ListSymbols(ctx context.Context) ([]entity.Symbol, error) {
	return u.repo.ListSymbols(ctx)
}
