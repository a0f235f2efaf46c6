// Package adapters はpricesフィーチャーのPrice Store実装を提供します。
package adapters

import (
	"context"
	"fmt"
	"time"

	"gorm.io/gorm"
	"gorm.io/gorm/clause"

	"stock_api/internal/feature/prices/domain/entity"
	"stock_api/internal/feature/prices/usecase"
	"stock_api/internal/shared/apperror"
	"stock_api/internal/shared/tradingdate"
)

// priceGorm はPrice StoreのGORM実装です。
// 日付は "2006-01-02" 形式の文字列で保存するため、範囲検索は文字列比較でドライバー非依存になります。
type priceGorm struct {
	db *gorm.DB
}

var (
	_ usecase.PriceRepository = (*priceGorm)(nil)
	_ usecase.PriceWriter     = (*priceGorm)(nil)
)

// NewPriceRepository は指定されたDB接続でpriceGormの新しいインスタンスを生成します。
func NewPriceRepository(db *gorm.DB) *priceGorm {
	return &priceGorm{db: db}
}

// PriceModel は prices テーブルの行です。(symbol, date) に一意インデックスを持ちます。
type PriceModel struct {
	ID     uint   `gorm:"primaryKey"`
	Market string `gorm:"size:16;not null;index"`
	Symbol string `gorm:"size:32;not null;uniqueIndex:price_sym_date,priority:1"`
	Date   string `gorm:"size:10;not null;uniqueIndex:price_sym_date,priority:2;index"`

	Open   float64 `gorm:"not null"`
	High   float64 `gorm:"not null"`
	Low    float64 `gorm:"not null"`
	Close  float64 `gorm:"not null"`
	Volume int64   `gorm:"not null;default:0"`
}

func (PriceModel) TableName() string {
	return "prices"
}

func toModel(e entity.PriceRecord) PriceModel {
	market := e.Market
	if market == "" {
		market = entity.MarketUnknown
	}
	return PriceModel{
		Market: string(market),
		Symbol: e.Symbol,
		Date:   tradingdate.Format(e.Date),
		Open:   e.Open,
		High:   e.High,
		Low:    e.Low,
		Close:  e.Close,
		Volume: e.Volume,
	}
}

func toEntity(m PriceModel) entity.PriceRecord {
	// 保存時に検証済みの形式なのでエラーは起こりえない
	d, _ := time.ParseInLocation(tradingdate.Layout, m.Date, time.UTC)
	return entity.PriceRecord{
		Market: entity.Market(m.Market),
		Symbol: m.Symbol,
		Date:   d,
		Open:   m.Open,
		High:   m.High,
		Low:    m.Low,
		Close:  m.Close,
		Volume: m.Volume,
	}
}

func toEntities(rows []PriceModel) []entity.PriceRecord {
	out := make([]entity.PriceRecord, 0, len(rows))
	for _, m := range rows {
		out = append(out, toEntity(m))
	}
	return out
}

// UpsertBatch は価格レコードを一括で挿入し、(symbol, date) が重複する場合は値を更新します。
func (r *priceGorm) UpsertBatch(ctx context.Context, records []entity.PriceRecord) error {
	if len(records) == 0 {
		return nil
	}
	ms := make([]PriceModel, 0, len(records))
	for _, e := range records {
		ms = append(ms, toModel(e))
	}

	err := r.db.WithContext(ctx).Clauses(clause.OnConflict{
		Columns:   []clause.Column{{Name: "symbol"}, {Name: "date"}},
		DoUpdates: clause.AssignmentColumns([]string{"market", "open", "high", "low", "close", "volume"}),
	}).CreateInBatches(&ms, 500).Error
	return apperror.Storage("upsert prices", err)
}

// FindBySymbol は銘柄の全レコードを日付昇順で返します。
func (r *priceGorm) FindBySymbol(ctx context.Context, symbol string) ([]entity.PriceRecord, error) {
	var rows []PriceModel
	if err := r.db.WithContext(ctx).
		Where("symbol = ?", symbol).
		Order("date ASC").
		Find(&rows).Error; err != nil {
		return nil, apperror.Storage("find prices by symbol", err)
	}
	return toEntities(rows), nil
}

// FindRange は [from, to] の全銘柄のレコードを銘柄・日付昇順で返します。
func (r *priceGorm) FindRange(ctx context.Context, from, to time.Time) ([]entity.PriceRecord, error) {
	var rows []PriceModel
	if err := r.db.WithContext(ctx).
		Where("date BETWEEN ? AND ?", tradingdate.Format(from), tradingdate.Format(to)).
		Order("symbol ASC").
		Order("date ASC").
		Find(&rows).Error; err != nil {
		return nil, apperror.Storage("find prices in range", err)
	}
	return toEntities(rows), nil
}

// FindOne は (symbol, date) のレコードを返します。存在しない場合は (nil, nil) です。
func (r *priceGorm) FindOne(ctx context.Context, symbol string, date time.Time) (*entity.PriceRecord, error) {
	var rows []PriceModel
	if err := r.db.WithContext(ctx).
		Where("symbol = ? AND date = ?", symbol, tradingdate.Format(date)).
		Limit(1).
		Find(&rows).Error; err != nil {
		return nil, apperror.Storage("find price", err)
	}
	if len(rows) == 0 {
		return nil, nil
	}
	e := toEntity(rows[0])
	return &e, nil
}

// DateExists はいずれかの銘柄に date のレコードがあるかを返します。
func (r *priceGorm) DateExists(ctx context.Context, date time.Time) (bool, error) {
	var n int64
	if err := r.db.WithContext(ctx).
		Model(&PriceModel{}).
		Where("date = ?", tradingdate.Format(date)).
		Limit(1).
		Count(&n).Error; err != nil {
		return false, apperror.Storage("check trading date", err)
	}
	return n > 0, nil
}

// CountInYear は指定年のレコード数を返します。
func (r *priceGorm) CountInYear(ctx context.Context, year int) (int64, error) {
	from := fmt.Sprintf("%04d-01-01", year)
	to := fmt.Sprintf("%04d-12-31", year)

	var n int64
	if err := r.db.WithContext(ctx).
		Model(&PriceModel{}).
		Where("date BETWEEN ? AND ?", from, to).
		Count(&n).Error; err != nil {
		return 0, apperror.Storage("count prices in year", err)
	}
	return n, nil
}
