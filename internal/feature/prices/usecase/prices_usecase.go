// Package usecase は価格データ参照と取り込みのビジネスロジックを実装します。
package usecase

import (
	"context"
	"fmt"
	"strings"

	"stock_api/internal/feature/prices/domain/entity"
)

const (
	// minYear と maxYear は年別件数で受け付ける年の範囲です。
	minYear = 1900
	maxYear = 9999
)

// PriceRepository は価格データの読み取りレイヤーを抽象化します。
// Goの慣例に従い、インターフェースは利用者（usecase）側で定義します。
type PriceRepository interface {
	// FindBySymbol は銘柄の全レコードを日付昇順で返します。
	FindBySymbol(ctx context.Context, symbol string) ([]entity.PriceRecord, error)
	// CountInYear は指定年のレコード数を返します。
	CountInYear(ctx context.Context, year int) (int64, error)
}

// PricePoint は1日分の指定価格です。
type PricePoint struct {
	Record entity.PriceRecord
	Value  float64
}

// pricesUsecase は価格データ参照のユースケースを定義します。
type pricesUsecase struct {
	prices PriceRepository
}

// NewPricesUsecase はpricesUsecaseの新しいインスタンスを生成します。
func NewPricesUsecase(prices PriceRepository) *pricesUsecase {
	return &pricesUsecase{prices: prices}
}

// GetPrices は銘柄の指定価格（open/close/high/low）を日付昇順で返します。
// 価格種別が不正な場合は ErrInvalidPriceType、銘柄が存在しない場合は ErrSymbolNotFound を返します。
func (u *pricesUsecase) GetPrices(ctx context.Context, priceType, symbol string) (entity.PriceType, []PricePoint, error) {
	pt, ok := entity.ParsePriceType(priceType)
	if !ok {
		return "", nil, fmt.Errorf("%w: %q", ErrInvalidPriceType, priceType)
	}

	symbol = strings.ToUpper(strings.TrimSpace(symbol))
	records, err := u.prices.FindBySymbol(ctx, symbol)
	if err != nil {
		return "", nil, err
	}
	if len(records) == 0 {
		return "", nil, fmt.Errorf("%w: %s", ErrSymbolNotFound, symbol)
	}

	out := make([]PricePoint, 0, len(records))
	for _, r := range records {
		out = append(out, PricePoint{Record: r, Value: r.Value(pt)})
	}
	return pt, out, nil
}

// CountYear は指定年のレコード数を返します。0件の場合は ErrYearNotFound です。
func (u *pricesUsecase) CountYear(ctx context.Context, year int) (int64, error) {
	if year < minYear || year > maxYear {
		return 0, fmt.Errorf("%w: %d", ErrInvalidYear, year)
	}
	n, err := u.prices.CountInYear(ctx, year)
	if err != nil {
		return 0, err
	}
	if n == 0 {
		return 0, fmt.Errorf("%w: %d", ErrYearNotFound, year)
	}
	return n, nil
}
