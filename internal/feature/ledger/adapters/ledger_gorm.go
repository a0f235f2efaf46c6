// Package adapters はledgerフィーチャーのLedger Store実装を提供します。
package adapters

import (
	"context"
	"errors"
	"time"

	"gorm.io/gorm"

	"stock_api/internal/feature/ledger/domain/entity"
	"stock_api/internal/feature/ledger/usecase"
	"stock_api/internal/shared/apperror"
	"stock_api/internal/shared/tradingdate"
)

// AccountModel は accounts テーブルの行です。
type AccountModel struct {
	ID   uint   `gorm:"primaryKey;autoIncrement"`
	Name string `gorm:"size:255;not null;uniqueIndex"`
}

func (AccountModel) TableName() string { return "accounts" }

// HoldingModel は holdings テーブルの行です。
// ID は保存用の内部キーで、ドメインでは全フィールドの組で保有を識別します。
type HoldingModel struct {
	ID             uint   `gorm:"primaryKey;autoIncrement"`
	AccountID      uint   `gorm:"not null;index"`
	Symbol         string `gorm:"size:32;not null;index"`
	PurchaseDate   string `gorm:"size:10;not null"`
	SaleDate       string `gorm:"size:10;not null"`
	NumberOfShares int64  `gorm:"not null"`
}

func (HoldingModel) TableName() string { return "holdings" }

func toHoldingModel(h entity.Holding) HoldingModel {
	return HoldingModel{
		AccountID:      h.AccountID,
		Symbol:         h.Symbol,
		PurchaseDate:   tradingdate.Format(h.PurchaseDate),
		SaleDate:       tradingdate.Format(h.SaleDate),
		NumberOfShares: h.NumberOfShares,
	}
}

func (m HoldingModel) toEntity() entity.Holding {
	// 保存時に検証済みの形式
	pd, _ := time.ParseInLocation(tradingdate.Layout, m.PurchaseDate, time.UTC)
	sd, _ := time.ParseInLocation(tradingdate.Layout, m.SaleDate, time.UTC)
	return entity.Holding{
		AccountID:      m.AccountID,
		Symbol:         m.Symbol,
		PurchaseDate:   pd,
		SaleDate:       sd,
		NumberOfShares: m.NumberOfShares,
	}
}

// ledgerGorm はAccountRepositoryとHoldingRepositoryのGORM実装です。
type ledgerGorm struct {
	db *gorm.DB
}

var (
	_ usecase.AccountRepository = (*ledgerGorm)(nil)
	_ usecase.HoldingRepository = (*ledgerGorm)(nil)
)

// NewLedgerRepository は指定されたDB接続でledgerGormの新しいインスタンスを生成します。
func NewLedgerRepository(db *gorm.DB) *ledgerGorm {
	return &ledgerGorm{db: db}
}

// ListAccounts はID順に全アカウントを返します。
func (r *ledgerGorm) ListAccounts(ctx context.Context) ([]entity.Account, error) {
	var rows []AccountModel
	if err := r.db.WithContext(ctx).Order("id ASC").Find(&rows).Error; err != nil {
		return nil, apperror.Storage("list accounts", err)
	}
	out := make([]entity.Account, 0, len(rows))
	for _, m := range rows {
		out = append(out, entity.Account{ID: m.ID, Name: m.Name})
	}
	return out, nil
}

// FindAccount はIDでアカウントを取得します。存在しない場合は usecase.ErrAccountNotFound を返します。
func (r *ledgerGorm) FindAccount(ctx context.Context, id uint) (*entity.Account, error) {
	// 未検出はエラーではなく空の結果として扱う
	var rows []AccountModel
	if err := r.db.WithContext(ctx).Where("id = ?", id).Limit(1).Find(&rows).Error; err != nil {
		return nil, apperror.Storage("find account", err)
	}
	if len(rows) == 0 {
		return nil, usecase.ErrAccountNotFound
	}
	return &entity.Account{ID: rows[0].ID, Name: rows[0].Name}, nil
}

// CreateAccount はアカウントを追加します。
// 同じ名前のアカウントが既に存在する場合、usecase.ErrAccountNameTaken を返します。
func (r *ledgerGorm) CreateAccount(ctx context.Context, name string) (*entity.Account, error) {
	var n int64
	if err := r.db.WithContext(ctx).Model(&AccountModel{}).Where("name = ?", name).Count(&n).Error; err != nil {
		return nil, apperror.Storage("check account name", err)
	}
	if n > 0 {
		return nil, usecase.ErrAccountNameTaken
	}

	m := AccountModel{Name: name}
	if err := r.db.WithContext(ctx).Create(&m).Error; err != nil {
		// TranslateError によりドライバー固有の一意制約違反は ErrDuplicatedKey になる
		if errors.Is(err, gorm.ErrDuplicatedKey) {
			return nil, usecase.ErrAccountNameTaken
		}
		return nil, apperror.Storage("create account", err)
	}
	return &entity.Account{ID: m.ID, Name: m.Name}, nil
}

// DeleteAccount はアカウントと保有をトランザクション内で削除します。
func (r *ledgerGorm) DeleteAccount(ctx context.Context, id uint) error {
	err := r.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		if err := tx.Where("account_id = ?", id).Delete(&HoldingModel{}).Error; err != nil {
			return err
		}
		res := tx.Where("id = ?", id).Delete(&AccountModel{})
		if res.Error != nil {
			return res.Error
		}
		if res.RowsAffected == 0 {
			return usecase.ErrAccountNotFound
		}
		return nil
	})
	if err == nil || errors.Is(err, usecase.ErrAccountNotFound) {
		return err
	}
	return apperror.Storage("delete account", err)
}

// CreateHolding は保有を追加します。
func (r *ledgerGorm) CreateHolding(ctx context.Context, h entity.Holding) error {
	m := toHoldingModel(h)
	return apperror.Storage("create holding", r.db.WithContext(ctx).Create(&m).Error)
}

// DeleteHoldings は全フィールドが一致する保有をすべて削除し、削除件数を返します。
func (r *ledgerGorm) DeleteHoldings(ctx context.Context, h entity.Holding) (int64, error) {
	m := toHoldingModel(h)
	res := r.db.WithContext(ctx).
		Where("account_id = ? AND symbol = ? AND purchase_date = ? AND sale_date = ? AND number_of_shares = ?",
			m.AccountID, m.Symbol, m.PurchaseDate, m.SaleDate, m.NumberOfShares).
		Delete(&HoldingModel{})
	if res.Error != nil {
		return 0, apperror.Storage("delete holdings", res.Error)
	}
	return res.RowsAffected, nil
}

// HoldingsByAccount はアカウントの保有を登録順に返します。
func (r *ledgerGorm) HoldingsByAccount(ctx context.Context, accountID uint) ([]entity.Holding, error) {
	return r.findHoldings(ctx, "holdings by account", "account_id = ?", accountID)
}

// HoldingsBySymbol は銘柄の保有を登録順に返します。
func (r *ledgerGorm) HoldingsBySymbol(ctx context.Context, symbol string) ([]entity.Holding, error) {
	return r.findHoldings(ctx, "holdings by symbol", "symbol = ?", symbol)
}

func (r *ledgerGorm) findHoldings(ctx context.Context, op, query string, arg any) ([]entity.Holding, error) {
	var rows []HoldingModel
	if err := r.db.WithContext(ctx).Where(query, arg).Order("id ASC").Find(&rows).Error; err != nil {
		return nil, apperror.Storage(op, err)
	}
	out := make([]entity.Holding, 0, len(rows))
	for _, m := range rows {
		out = append(out, m.toEntity())
	}
	return out, nil
}
