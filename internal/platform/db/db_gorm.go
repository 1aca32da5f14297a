// Package db opens and migrates the asset registry database.
package db

import (
	"fmt"
	"os"
	"strings"
	"time"

	"github.com/creasty/defaults"
	"github.com/jackc/pgx/v5"
	"github.com/rs/zerolog/log"
	"gorm.io/driver/postgres"
	"gorm.io/driver/sqlite"
	"gorm.io/gorm"

	assetadapters "mpt_backend/internal/feature/assets/adapters"
)

// Supported values for Config.Driver.
const (
	DriverPostgres = "postgres"
	DriverSQLite   = "sqlite"
)

// retryInterval is the pause between connection attempts.
const retryInterval = 3 * time.Second

// Config holds database connection settings.
type Config struct {
	Driver         string        `default:"postgres"`
	Host           string        `default:"localhost"`
	Port           string        `default:"5432"`
	User           string
	Password       string
	Name           string        `default:"mpt"`
	SSLMode        string        `default:"disable"`
	SQLitePath     string        `default:"./mpt.db"`
	RunMigrations  bool          `default:"true"`
	ConnectTimeout time.Duration `default:"60s"`
}

// LoadConfigFromEnv reads database settings from the environment on top of the defaults.
func LoadConfigFromEnv() Config {
	var cfg Config
	_ = defaults.Set(&cfg)
	setString(&cfg.Driver, "DB_DRIVER")
	setString(&cfg.Host, "DB_HOST")
	setString(&cfg.Port, "DB_PORT")
	setString(&cfg.User, "DB_USER")
	setString(&cfg.Password, "DB_PASSWORD")
	setString(&cfg.Name, "DB_NAME")
	setString(&cfg.SSLMode, "DB_SSLMODE")
	setString(&cfg.SQLitePath, "SQLITE_PATH")
	if v := os.Getenv("RUN_MIGRATIONS"); v != "" {
		cfg.RunMigrations = v == "true"
	}
	return cfg
}

func setString(dst *string, key string) {
	if v := os.Getenv(key); v != "" {
		*dst = v
	}
}

// BuildDSN returns the postgres keyword/value connection string for cfg.
func BuildDSN(cfg Config) string {
	return fmt.Sprintf("host=%s port=%s user=%s password=%s dbname=%s sslmode=%s TimeZone=UTC",
		cfg.Host, cfg.Port, cfg.User, cfg.Password, cfg.Name, cfg.SSLMode)
}

// DescribeDSN renders a postgres DSN without credentials, for logs.
func DescribeDSN(dsn string) (string, error) {
	pc, err := pgx.ParseConfig(dsn)
	if err != nil {
		return "", fmt.Errorf("parse dsn: %w", err)
	}
	return fmt.Sprintf("%s@%s:%d/%s", pc.User, pc.Host, pc.Port, pc.Database), nil
}

// Opener opens a gorm connection for a DSN.
type Opener func(dsn string) (*gorm.DB, error)

// ConnectWithRetry calls open until it succeeds or timeout elapses.
func ConnectWithRetry(dsn string, timeout time.Duration, open Opener) (*gorm.DB, error) {
	deadline := time.Now().Add(timeout)
	for {
		db, err := open(dsn)
		if err == nil {
			return db, nil
		}
		if time.Now().Add(retryInterval).After(deadline) {
			return nil, fmt.Errorf("db connect failed after %s: %w", timeout, err)
		}
		log.Warn().Err(err).Msg("db connect failed, retrying")
		time.Sleep(retryInterval)
	}
}

// OpenDB connects using cfg.Driver and applies migrations when enabled.
func OpenDB(cfg Config) (*gorm.DB, error) {
	gcfg := &gorm.Config{Logger: NewGormLogger(log.Logger)}

	var (
		db  *gorm.DB
		err error
	)
	switch strings.ToLower(cfg.Driver) {
	case DriverSQLite:
		log.Info().Str("path", cfg.SQLitePath).Msg("using sqlite database")
		db, err = gorm.Open(sqlite.Open(cfg.SQLitePath), gcfg)
	case DriverPostgres:
		dsn := BuildDSN(cfg)
		if desc, derr := DescribeDSN(dsn); derr == nil {
			log.Info().Str("database", desc).Msg("connecting to postgres")
		}
		db, err = ConnectWithRetry(dsn, cfg.ConnectTimeout, func(dsn string) (*gorm.DB, error) {
			return gorm.Open(postgres.Open(dsn), gcfg)
		})
	default:
		return nil, fmt.Errorf("unsupported DB_DRIVER %q", cfg.Driver)
	}
	if err != nil {
		return nil, err
	}

	if cfg.RunMigrations {
		if err := Migrate(db); err != nil {
			return nil, err
		}
	}
	return db, nil
}

// Migrate creates or updates the registry schema.
func Migrate(db *gorm.DB) error {
	if err := db.AutoMigrate(&assetadapters.AssetModel{}); err != nil {
		return fmt.Errorf("failed to migrate: %w", err)
	}
	return nil
}
