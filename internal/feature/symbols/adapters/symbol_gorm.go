// Package adapters はsymbolsフィーチャーのリポジトリ実装を提供します。
package adapters

import (
	"context"
	"strings"

	"gorm.io/gorm"

	"stock_api/internal/feature/symbols/domain/entity"
	"stock_api/internal/feature/symbols/usecase"
	"stock_api/internal/shared/apperror"
)

// pricesTable は集計対象のテーブル名です。pricesフィーチャーのPriceModelと一致させます。
const pricesTable = "prices"

// symbolGorm はSymbolRepositoryインターフェースのGORM実装です。
type symbolGorm struct {
	db *gorm.DB
}

var _ usecase.SymbolRepository = (*symbolGorm)(nil)

// NewSymbolRepository は指定されたDB接続でsymbolGormリポジトリの新しいインスタンスを生成します。
func NewSymbolRepository(db *gorm.DB) *symbolGorm {
	return &symbolGorm{db: db}
}

// CountRows は価格レコードの総数を返します。
func (r *symbolGorm) CountRows(ctx context.Context) (int64, error) {
	var n int64
	if err := r.db.WithContext(ctx).Table(pricesTable).Count(&n).Error; err != nil {
		return 0, apperror.Storage("count rows", err)
	}
	return n, nil
}

// CountSymbols は銘柄の種類数を返します。
func (r *symbolGorm) CountSymbols(ctx context.Context) (int64, error) {
	var n int64
	if err := r.db.WithContext(ctx).
		Table(pricesTable).
		Distinct("symbol").
		Count(&n).Error; err != nil {
		return 0, apperror.Storage("count symbols", err)
	}
	return n, nil
}

type marketRow struct {
	Market string
	N      int64
}

// CountByMarket は取引所ごとのレコード数を返します。
func (r *symbolGorm) CountByMarket(ctx context.Context) (entity.MarketCounts, error) {
	var rows []marketRow
	if err := r.db.WithContext(ctx).
		Table(pricesTable).
		Select("market, COUNT(*) AS n").
		Group("market").
		Scan(&rows).Error; err != nil {
		return entity.MarketCounts{}, apperror.Storage("count rows by market", err)
	}

	var out entity.MarketCounts
	for _, row := range rows {
		switch strings.ToUpper(row.Market) {
		case "NYSE":
			out.NYSE = row.N
		case "NASDAQ":
			out.NASDAQ = row.N
		}
	}
	return out, nil
}

type symbolRow struct {
	Symbol   string
	Market   string
	RowCount int64
}

// ListSymbols は銘柄コード順に銘柄ごとの取引所とレコード数を返します。
func (r *symbolGorm) ListSymbols(ctx context.Context) ([]entity.Symbol, error) {
	var rows []symbolRow
	if err := r.db.WithContext(ctx).
		Table(pricesTable).
		Select("symbol, MIN(market) AS market, COUNT(*) AS row_count").
		Group("symbol").
		Order("symbol ASC").
		Scan(&rows).Error; err != nil {
		return nil, apperror.Storage("list symbols", err)
	}

	out := make([]entity.Symbol, 0, len(rows))
	for _, row := range rows {
		out = append(out, entity.Symbol{Code: row.Symbol, Market: row.Market, Rows: row.RowCount})
	}
	return out, nil
}
