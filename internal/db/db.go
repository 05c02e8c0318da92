package db

import (
	"context"
	"database/sql"
	"fmt"
	"sync/atomic"

	"github.com/golang-migrate/migrate/v4"
	"go.uber.org/zap"
	"gorm.io/driver/mysql"
	"gorm.io/driver/postgres"
	"gorm.io/driver/sqlite"
	"gorm.io/gorm"

	"emsapi/internal/config"
	"emsapi/internal/logger"
)

// Client owns the connection pool. It is usable for queries only after
// Init has completed; Ready reports that state to the request layer.
type Client struct {
	cfg   config.DatabaseConfig
	log   *zap.Logger
	gorm  *gorm.DB
	ready atomic.Bool
}

// Open builds the GORM handle for the configured dialect without touching
// the network. Call Init to connect, migrate and mark the client ready.
func Open(cfg config.DatabaseConfig, log *zap.Logger) (*Client, error) {
	dialector, err := dialectorFor(cfg)
	if err != nil {
		return nil, err
	}

	gdb, err := gorm.Open(dialector, &gorm.Config{
		TranslateError:       true,
		DisableAutomaticPing: true,
		Logger:               logger.NewGormLogger(log),
	})
	if err != nil {
		return nil, fmt.Errorf("open %s: %w", cfg.Dialect, err)
	}

	return &Client{cfg: cfg, log: log, gorm: gdb}, nil
}

func dialectorFor(cfg config.DatabaseConfig) (gorm.Dialector, error) {
	switch cfg.Dialect {
	case "mysql":
		return mysql.New(mysql.Config{DSN: cfg.DSN, SkipInitializeWithVersion: true}), nil
	case "postgres":
		return postgres.Open(cfg.DSN), nil
	case "sqlite":
		return sqlite.Open(cfg.DSN), nil
	default:
		return nil, fmt.Errorf("unsupported dialect %q", cfg.Dialect)
	}
}

// Init creates the database when allowed, verifies connectivity, applies
// migrations and finally marks the client ready.
func (c *Client) Init(ctx context.Context) error {
	sqlDB, err := c.connect(ctx)
	if err != nil {
		return err
	}

	if err := RunMigrations(ctx, sqlDB, c.cfg.Dialect, c.log); err != nil {
		return err
	}

	c.ready.Store(true)
	c.log.Info("database ready", zap.String("dialect", c.cfg.Dialect))
	return nil
}

// Migrator connects like Init and returns a migrate instance for manual
// schema management. The caller must Close it.
func (c *Client) Migrator(ctx context.Context) (*migrate.Migrate, error) {
	sqlDB, err := c.connect(ctx)
	if err != nil {
		return nil, err
	}
	return NewMigrator(ctx, sqlDB, c.cfg.Dialect)
}

func (c *Client) connect(ctx context.Context) (*sql.DB, error) {
	if c.cfg.Dialect == "mysql" && c.cfg.CreateDatabase {
		if err := ensureMySQLDatabase(ctx, c.cfg.DSN); err != nil {
			return nil, err
		}
	}

	sqlDB, err := c.gorm.DB()
	if err != nil {
		return nil, fmt.Errorf("get sql db: %w", err)
	}
	c.configurePool(sqlDB)

	if err := sqlDB.PingContext(ctx); err != nil {
		return nil, fmt.Errorf("ping %s: %w", c.cfg.Dialect, err)
	}
	return sqlDB, nil
}

func (c *Client) configurePool(sqlDB *sql.DB) {
	if c.cfg.MaxOpenConns > 0 {
		sqlDB.SetMaxOpenConns(c.cfg.MaxOpenConns)
	}
	if c.cfg.MaxIdleConns > 0 {
		sqlDB.SetMaxIdleConns(c.cfg.MaxIdleConns)
	}
	if c.cfg.ConnMaxLifetime > 0 {
		sqlDB.SetConnMaxLifetime(c.cfg.ConnMaxLifetime)
	}
}

// Ready reports whether Init has completed.
func (c *Client) Ready() bool {
	return c.ready.Load()
}

// Gorm returns the underlying handle.
func (c *Client) Gorm() *gorm.DB {
	return c.gorm
}

// Ping checks connectivity.
func (c *Client) Ping(ctx context.Context) error {
	sqlDB, err := c.gorm.DB()
	if err != nil {
		return err
	}
	return sqlDB.PingContext(ctx)
}

// Close releases the pool.
func (c *Client) Close() error {
	sqlDB, err := c.gorm.DB()
	if err != nil {
		return err
	}
	return sqlDB.Close()
}
