// Package config loads application configuration from an optional YAML file
// and environment variables.
package config

import (
	"errors"
	"fmt"
	"os"
	"strconv"

	"gopkg.in/yaml.v3"
)

// Config holds all application configuration.
type Config struct {
	Server struct {
		Addr string `yaml:"addr"`
	} `yaml:"server"`
	Log struct {
		Level  string `yaml:"level"`
		Format string `yaml:"format"`
	} `yaml:"log"`
	Auth struct {
		Header string `yaml:"header"`
		APIKey string `yaml:"api_key"`
	} `yaml:"auth"`
	Database struct {
		Driver        string `yaml:"driver"`
		Path          string `yaml:"path"`
		Host          string `yaml:"host"`
		Port          string `yaml:"port"`
		User          string `yaml:"user"`
		Password      string `yaml:"password"`
		Name          string `yaml:"name"`
		SSLMode       string `yaml:"sslmode"`
		RunMigrations bool   `yaml:"run_migrations"`
	} `yaml:"database"`
	Ingest struct {
		DataDir   string `yaml:"data_dir"`
		BatchSize int    `yaml:"batch_size"`
	} `yaml:"ingest"`
	// Cache は価格系列のRedisキャッシュ設定です。RedisAddr が空ならキャッシュなしで動きます。
	Cache struct {
		RedisAddr     string `yaml:"redis_addr"`
		RedisPassword string `yaml:"redis_password"`
		RedisDB       int    `yaml:"redis_db"`
		TTLSeconds    int    `yaml:"ttl_seconds"`
	} `yaml:"cache"`
}

// Load reads config from a YAML file, then applies environment variable overrides
// and defaults. A missing file is not an error.
func Load(path string) (*Config, error) {
	cfg := &Config{}

	if path != "" {
		data, err := os.ReadFile(path)
		if err != nil && !errors.Is(err, os.ErrNotExist) {
			return nil, fmt.Errorf("read config: %w", err)
		}
		if len(data) > 0 {
			if err := yaml.Unmarshal(data, cfg); err != nil {
				return nil, fmt.Errorf("parse config: %w", err)
			}
		}
	}

	applyEnv(cfg)
	applyDefaults(cfg)
	return cfg, nil
}

func applyEnv(cfg *Config) {
	setString(&cfg.Server.Addr, "SERVER_ADDR")
	setString(&cfg.Log.Level, "LOG_LEVEL")
	setString(&cfg.Log.Format, "LOG_FORMAT")
	setString(&cfg.Auth.Header, "API_KEY_HEADER")
	setString(&cfg.Auth.APIKey, "API_KEY")
	if cfg.Auth.APIKey == "" {
		// 旧環境変数名
		setString(&cfg.Auth.APIKey, "DATA_241_API_KEY")
	}
	setString(&cfg.Database.Driver, "DB_DRIVER")
	setString(&cfg.Database.Path, "DB_PATH")
	setString(&cfg.Database.Host, "DB_HOST")
	setString(&cfg.Database.Port, "DB_PORT")
	setString(&cfg.Database.User, "DB_USER")
	setString(&cfg.Database.Password, "DB_PASSWORD")
	setString(&cfg.Database.Name, "DB_NAME")
	setString(&cfg.Database.SSLMode, "DB_SSLMODE")
	if v := os.Getenv("RUN_MIGRATIONS"); v != "" {
		cfg.Database.RunMigrations = v == "true"
	}
	setString(&cfg.Ingest.DataDir, "INGEST_DATA_DIR")
	setInt(&cfg.Ingest.BatchSize, "INGEST_BATCH_SIZE")
	setString(&cfg.Cache.RedisAddr, "REDIS_ADDR")
	if host := os.Getenv("REDIS_HOST"); cfg.Cache.RedisAddr == "" && host != "" {
		port := os.Getenv("REDIS_PORT")
		if port == "" {
			port = "6379"
		}
		cfg.Cache.RedisAddr = host + ":" + port
	}
	setString(&cfg.Cache.RedisPassword, "REDIS_PASSWORD")
	setInt(&cfg.Cache.RedisDB, "REDIS_DB")
	setInt(&cfg.Cache.TTLSeconds, "CACHE_TTL_SECONDS")
}

func setString(dst *string, key string) {
	if v := os.Getenv(key); v != "" {
		*dst = v
	}
}

// setInt は数値として解釈できない値を無視します。
func setInt(dst *int, key string) {
	if v := os.Getenv(key); v != "" {
		if n, err := strconv.Atoi(v); err == nil {
			*dst = n
		}
	}
}

func applyDefaults(cfg *Config) {
	if cfg.Server.Addr == "" {
		cfg.Server.Addr = ":8080"
	}
	if cfg.Log.Level == "" {
		cfg.Log.Level = "info"
	}
	if cfg.Log.Format == "" {
		cfg.Log.Format = "text"
	}
	if cfg.Auth.Header == "" {
		cfg.Auth.Header = "X-API-Key"
	}
	if cfg.Database.Driver == "" {
		cfg.Database.Driver = "sqlite"
	}
	if cfg.Database.Path == "" {
		cfg.Database.Path = "data/stocks.db"
	}
	if cfg.Database.SSLMode == "" {
		cfg.Database.SSLMode = "disable"
	}
	if cfg.Ingest.DataDir == "" {
		cfg.Ingest.DataDir = "data/raw_data"
	}
	if cfg.Ingest.BatchSize <= 0 {
		cfg.Ingest.BatchSize = 1000
	}
	if cfg.Cache.TTLSeconds <= 0 {
		cfg.Cache.TTLSeconds = 300
	}
}

// Validate checks the settings the HTTP server cannot run without.
func (c *Config) Validate() error {
	if c.Auth.APIKey == "" {
		return fmt.Errorf("auth.api_key is required")
	}
	switch c.Database.Driver {
	case "sqlite", "postgres":
	default:
		return fmt.Errorf("database.driver must be sqlite or postgres, got %q", c.Database.Driver)
	}
	if c.Database.Driver == "postgres" && (c.Database.Host == "" || c.Database.Name == "") {
		return fmt.Errorf("database.host and database.name are required for postgres")
	}
	return nil
}
