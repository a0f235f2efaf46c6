package adapters

import (
	"context"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"gorm.io/driver/sqlite"
	"gorm.io/gorm"

	priceadapters "stock_api/internal/feature/prices/adapters"
	"stock_api/internal/feature/symbols/domain/entity"
)

// setupTestDB はテスト用のインメモリSQLiteデータベースを準備します。
func setupTestDB(t *testing.T) *gorm.DB {
	t.Helper()

	db, err := gorm.Open(sqlite.Open(":memory:"), &gorm.Config{TranslateError: true})
	require.NoError(t, err, "failed to initialize test database")
	sqlDB, err := db.DB()
	require.NoError(t, err)
	sqlDB.SetMaxOpenConns(1)

	// pricesテーブルを作成
	require.NoError(t, db.AutoMigrate(&priceadapters.PriceModel{}), "failed to migrate table")
	return db
}

// seedPrice はテスト用の価格データを作成します。
func seedPrice(t *testing.T, db *gorm.DB, market, symbol, date string) {
	t.Helper()
	err := db.Create(&priceadapters.PriceModel{Market: market, Symbol: symbol, Date: date, Open: 1, High: 1, Low: 1, Close: 1}).Error
	require.NoError(t, err, "failed to seed price")
}

func seedAll(t *testing.T, db *gorm.DB) {
	t.Helper()
	seedPrice(t, db, "NASDAQ", "AAPL", "2020-01-02")
	seedPrice(t, db, "NASDAQ", "AAPL", "2020-01-03")
	seedPrice(t, db, "NASDAQ", "MSFT", "2020-01-02")
	seedPrice(t, db, "NYSE", "IBM", "2020-01-02")
	seedPrice(t, db, "UNKNOWN", "XYZ", "2020-01-02")
}

// TestNewSymbolRepository はNewSymbolRepositoryコンストラクタが正しくインスタンスを生成することを検証します。
func TestNewSymbolRepository(t *testing.T) {
	t.Parallel()

	repo := NewSymbolRepository(setupTestDB(t))

	assert.NotNil(t, repo, "repository should not be nil")
	assert.NotNil(t, repo.db, "database connection should not be nil")
}

func TestSymbolGorm_Counts(t *testing.T) {
	t.Parallel()
	ctx := context.Background()
	db := setupTestDB(t)
	seedAll(t, db)
	repo := NewSymbolRepository(db)

	rows, err := repo.CountRows(ctx)
	require.NoError(t, err)
	assert.Equal(t, int64(5), rows)

	symbols, err := repo.CountSymbols(ctx)
	require.NoError(t, err)
	assert.Equal(t, int64(4), symbols)

	markets, err := repo.CountByMarket(ctx)
	require.NoError(t, err)
	assert.Equal(t, entity.MarketCounts{NYSE: 1, NASDAQ: 3}, markets)
}

func TestSymbolGorm_Counts_Empty(t *testing.T) {
	t.Parallel()
	ctx := context.Background()
	repo := NewSymbolRepository(setupTestDB(t))

	rows, err := repo.CountRows(ctx)
	require.NoError(t, err)
	assert.Zero(t, rows)

	markets, err := repo.CountByMarket(ctx)
	require.NoError(t, err)
	assert.Equal(t, entity.MarketCounts{}, markets)

	list, err := repo.ListSymbols(ctx)
	require.NoError(t, err)
	assert.Empty(t, list)
}

func TestSymbolGorm_ListSymbols(t *testing.T) {
	t.Parallel()
	db := setupTestDB(t)
	seedAll(t, db)

	got, err := NewSymbolRepository(db).ListSymbols(context.Background())

	require.NoError(t, err)
	assert.Equal(t, []entity.Symbol{
		{Code: "AAPL", Market: "NASDAQ", Rows: 2},
		{Code: "IBM", Market: "NYSE", Rows: 1},
		{Code: "MSFT", Market: "NASDAQ", Rows: 1},
		{Code: "XYZ", Market: "UNKNOWN", Rows: 1},
	}, got)
}

func TestSymbolGorm_StorageError(t *testing.T) {
	t.Parallel()
	db, err := gorm.Open(sqlite.Open(":memory:"), &gorm.Config{})
	require.NoError(t, err)

	// テーブル未作成
	_, err = NewSymbolRepository(db).CountRows(context.Background())

	assert.ErrorContains(t, err, "storage error in count rows")
}
