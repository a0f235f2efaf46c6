// Package db opens the gorm connection backing the Price Store and the Ledger Store.
package db

import (
	"fmt"
	"log/slog"
	"os"
	"path/filepath"
	"strings"
	"time"

	"gorm.io/driver/postgres"
	"gorm.io/driver/sqlite"
	"gorm.io/gorm"
	"gorm.io/gorm/logger"

	ledgeradapters "stock_api/internal/feature/ledger/adapters"
	priceadapters "stock_api/internal/feature/prices/adapters"
)

const (
	DriverSQLite   = "sqlite"
	DriverPostgres = "postgres"

	retryInterval  = 3 * time.Second
	connectTimeout = 60 * time.Second
)

// Config はデータベース接続設定です。
type Config struct {
	Driver   string
	Path     string // sqlite のファイルパス
	Host     string
	Port     string
	User     string
	Password string
	Name     string
	SSLMode  string
}

// Opener は DSN から gorm.DB を開く関数です。テストで差し替えられます。
type Opener func(dsn string) (*gorm.DB, error)

// LoadConfigFromEnv は環境変数からデータベース設定を読み込みます。
func LoadConfigFromEnv() Config {
	cfg := Config{
		Driver:   os.Getenv("DB_DRIVER"),
		Path:     os.Getenv("DB_PATH"),
		Host:     os.Getenv("DB_HOST"),
		Port:     os.Getenv("DB_PORT"),
		User:     os.Getenv("DB_USER"),
		Password: os.Getenv("DB_PASSWORD"),
		Name:     os.Getenv("DB_NAME"),
		SSLMode:  os.Getenv("DB_SSLMODE"),
	}
	if cfg.Driver == "" {
		cfg.Driver = DriverSQLite
	}
	return cfg
}

// BuildDSN はドライバーに応じたDSN文字列を生成します。
func BuildDSN(cfg Config) string {
	if cfg.Driver == DriverPostgres {
		sslmode := cfg.SSLMode
		if sslmode == "" {
			sslmode = "disable"
		}
		port := cfg.Port
		if port == "" {
			port = "5432"
		}
		return fmt.Sprintf("host=%s user=%s password=%s dbname=%s port=%s sslmode=%s TimeZone=UTC",
			cfg.Host, cfg.User, cfg.Password, cfg.Name, port, sslmode)
	}
	return cfg.Path
}

// ConnectWithRetry は timeout を超えるまで retryInterval 間隔で接続を再試行します。
func ConnectWithRetry(dsn string, timeout time.Duration, open Opener) (*gorm.DB, error) {
	deadline := time.Now().Add(timeout)
	for {
		db, err := open(dsn)
		if err == nil {
			return db, nil
		}
		if time.Now().Add(retryInterval).After(deadline) {
			return nil, fmt.Errorf("db connect failed after %v: %w", timeout, err)
		}
		slog.Warn("db connect failed, retrying", "error", err, "interval", retryInterval)
		time.Sleep(retryInterval)
	}
}

// gormConfig は全ドライバー共通の gorm 設定です。
// TranslateError により一意制約違反が gorm.ErrDuplicatedKey に変換されます。
func gormConfig() *gorm.Config {
	return &gorm.Config{
		TranslateError: true,
		Logger:         logger.Default.LogMode(logger.Warn),
	}
}

// openerFor はドライバー名に対応する Opener を返します。
func openerFor(driver string) (Opener, error) {
	switch driver {
	case DriverSQLite, "":
		return func(dsn string) (*gorm.DB, error) {
			return gorm.Open(sqlite.Open(dsn), gormConfig())
		}, nil
	case DriverPostgres:
		return func(dsn string) (*gorm.DB, error) {
			return gorm.Open(postgres.Open(dsn), gormConfig())
		}, nil
	default:
		return nil, fmt.Errorf("unsupported db driver %q", driver)
	}
}

// Open は設定に従ってデータベースを開きます。
// sqlite のファイルDBでは親ディレクトリを作成し、同時読み取りのため WAL モードを有効にします。
func Open(cfg Config) (*gorm.DB, error) {
	open, err := openerFor(cfg.Driver)
	if err != nil {
		return nil, err
	}

	if cfg.Driver == DriverSQLite || cfg.Driver == "" {
		if cfg.Path == "" {
			return nil, fmt.Errorf("sqlite path is empty")
		}
		if !isMemory(cfg.Path) {
			if err := os.MkdirAll(filepath.Dir(cfg.Path), 0o755); err != nil {
				return nil, fmt.Errorf("create db dir: %w", err)
			}
		}
	}

	db, err := ConnectWithRetry(BuildDSN(cfg), connectTimeout, open)
	if err != nil {
		return nil, err
	}

	if (cfg.Driver == DriverSQLite || cfg.Driver == "") && !isMemory(cfg.Path) {
		if err := db.Exec("PRAGMA journal_mode=WAL").Error; err != nil {
			return nil, fmt.Errorf("set WAL mode: %w", err)
		}
	}

	slog.Info("database opened", "driver", cfg.Driver, "dsn", redact(cfg))
	return db, nil
}

// Migrate は Price / Account / Holding テーブルを作成・更新します。
func Migrate(db *gorm.DB) error {
	if err := db.AutoMigrate(
		&priceadapters.PriceModel{},
		&ledgeradapters.AccountModel{},
		&ledgeradapters.HoldingModel{},
	); err != nil {
		return fmt.Errorf("failed to migrate: %w", err)
	}
	return nil
}

// Clean は全テーブルの行を削除します。テーブル自体は残ります。
func Clean(db *gorm.DB) error {
	return db.Transaction(func(tx *gorm.DB) error {
		for _, m := range []any{
			&ledgeradapters.HoldingModel{},
			&ledgeradapters.AccountModel{},
			&priceadapters.PriceModel{},
		} {
			if err := tx.Session(&gorm.Session{AllowGlobalUpdate: true}).Delete(m).Error; err != nil {
				return fmt.Errorf("failed to clean: %w", err)
			}
		}
		return nil
	})
}

// Remove は sqlite のデータベースファイル（WAL/SHM を含む）を削除します。
// 存在しないファイルはエラーにしません。
func Remove(cfg Config) error {
	if cfg.Driver != DriverSQLite && cfg.Driver != "" {
		return fmt.Errorf("remove is only supported for sqlite, got %q", cfg.Driver)
	}
	if isMemory(cfg.Path) {
		return nil
	}
	for _, p := range []string{cfg.Path, cfg.Path + "-wal", cfg.Path + "-shm"} {
		if err := os.Remove(p); err != nil && !os.IsNotExist(err) {
			return fmt.Errorf("remove %s: %w", p, err)
		}
	}
	return nil
}

func isMemory(path string) bool {
	return path == ":memory:" || strings.Contains(path, "mode=memory")
}

// redact はログ出力用にパスワードを除いた接続先を返します。
func redact(cfg Config) string {
	if cfg.Driver == DriverPostgres {
		return fmt.Sprintf("%s@%s:%s/%s", cfg.User, cfg.Host, cfg.Port, cfg.Name)
	}
	return cfg.Path
}
