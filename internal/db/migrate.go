package db

import (
	"context"
	"database/sql"
	"embed"
	"errors"
	"fmt"

	"github.com/golang-migrate/migrate/v4"
	"github.com/golang-migrate/migrate/v4/database"
	migratemysql "github.com/golang-migrate/migrate/v4/database/mysql"
	migratepostgres "github.com/golang-migrate/migrate/v4/database/postgres"
	migratesqlite "github.com/golang-migrate/migrate/v4/database/sqlite3"
	"github.com/golang-migrate/migrate/v4/source/iofs"
	"go.uber.org/zap"
)

//go:embed migrations
var migrationsFS embed.FS

// NewMigrator returns a migrate instance bound to db. MySQL and Postgres
// migrate over a dedicated connection taken from the pool with ctx; Close
// returns it. Closing never closes db itself.
func NewMigrator(ctx context.Context, db *sql.DB, dialect string) (*migrate.Migrate, error) {
	source, err := iofs.New(migrationsFS, "migrations/"+dialect)
	if err != nil {
		return nil, fmt.Errorf("load migrations: %w", err)
	}

	driver, err := migrationDriver(ctx, db, dialect)
	if err != nil {
		return nil, err
	}

	m, err := migrate.NewWithInstance("iofs", source, dialect, driver)
	if err != nil {
		_ = driver.Close()
		return nil, fmt.Errorf("init migrate: %w", err)
	}
	return m, nil
}

func migrationDriver(ctx context.Context, db *sql.DB, dialect string) (database.Driver, error) {
	if dialect == "sqlite" {
		driver, err := migratesqlite.WithInstance(db, &migratesqlite.Config{})
		if err != nil {
			return nil, fmt.Errorf("create migration driver: %w", err)
		}
		return sharedDriver{driver}, nil
	}

	conn, err := db.Conn(ctx)
	if err != nil {
		return nil, fmt.Errorf("acquire migration connection: %w", err)
	}

	var driver database.Driver
	switch dialect {
	case "mysql":
		driver, err = migratemysql.WithConnection(ctx, conn, &migratemysql.Config{})
	case "postgres":
		driver, err = migratepostgres.WithConnection(ctx, conn, &migratepostgres.Config{})
	default:
		err = fmt.Errorf("unsupported dialect %q", dialect)
	}
	if err != nil {
		_ = conn.Close()
		return nil, fmt.Errorf("create migration driver: %w", err)
	}
	return driver, nil
}

// sharedDriver keeps the sqlite driver from closing the pool it was built on.
type sharedDriver struct {
	database.Driver
}

func (sharedDriver) Close() error { return nil }

// RunMigrations applies every pending up migration.
func RunMigrations(ctx context.Context, db *sql.DB, dialect string, log *zap.Logger) error {
	m, err := NewMigrator(ctx, db, dialect)
	if err != nil {
		return err
	}
	defer m.Close()

	if err := m.Up(); err != nil && !errors.Is(err, migrate.ErrNoChange) {
		return fmt.Errorf("run migrations: %w", err)
	}

	version, dirty, _ := m.Version()
	if dirty {
		log.Warn("migrations left database dirty", zap.Uint("version", version))
	} else {
		log.Info("migrations applied", zap.Uint("version", version))
	}
	return nil
}
