package db_test

import (
	"context"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap"

	"emsapi/internal/config"
	"emsapi/internal/db"
	"emsapi/internal/db/dbtest"
)

func TestOpen_UnknownDialect(t *testing.T) {
	_, err := db.Open(config.DatabaseConfig{Dialect: "oracle", DSN: "x"}, zap.NewNop())
	assert.Error(t, err)
}

func TestClient_ReadyOnlyAfterInit(t *testing.T) {
	client, err := db.Open(config.DatabaseConfig{
		Dialect:      "sqlite",
		DSN:          "file:ready_gate?mode=memory&cache=shared&_foreign_keys=on",
		MaxOpenConns: 1,
	}, zap.NewNop())
	require.NoError(t, err)
	defer client.Close()

	assert.False(t, client.Ready())
	require.NoError(t, client.Init(context.Background()))
	assert.True(t, client.Ready())

	// Migrations are idempotent.
	require.NoError(t, client.Init(context.Background()))
}

func TestMigrations_CreateSchema(t *testing.T) {
	client := dbtest.New(t)
	migrator := client.Gorm().Migrator()

	for _, table := range []string{"users", "employees", "salaries", "departments"} {
		assert.True(t, migrator.HasTable(table), table)
	}
	assert.True(t, migrator.HasColumn("salaries", "end_date"))
	assert.True(t, migrator.HasColumn("departments", "gross_salary"))
	assert.NoError(t, client.Ping(context.Background()))
}

func TestClient_MigratorVersion(t *testing.T) {
	client := dbtest.New(t)

	m, err := client.Migrator(context.Background())
	require.NoError(t, err)
	defer m.Close()

	version, dirty, err := m.Version()
	require.NoError(t, err)
	assert.False(t, dirty)
	assert.Equal(t, uint(4), version)
}

func TestClient_MigratorReleasesPool(t *testing.T) {
	client := dbtest.New(t)
	ctx := context.Background()

	// The pool holds a single connection, so a migrator that kept one
	// would block every later query.
	for i := 0; i < 3; i++ {
		m, err := client.Migrator(ctx)
		require.NoError(t, err)
		srcErr, dbErr := m.Close()
		require.NoError(t, srcErr)
		require.NoError(t, dbErr)
	}
	require.NoError(t, client.Init(ctx))

	pingCtx, cancel := context.WithTimeout(ctx, 2*time.Second)
	defer cancel()
	require.NoError(t, client.Ping(pingCtx))

	var count int64
	require.NoError(t, client.Gorm().WithContext(pingCtx).Table("users").Count(&count).Error)
	assert.Zero(t, count)
}

func TestNewMigrator_UnknownDialect(t *testing.T) {
	client := dbtest.New(t)
	sqlDB, err := client.Gorm().DB()
	require.NoError(t, err)

	_, err = db.NewMigrator(context.Background(), sqlDB, "oracle")
	assert.Error(t, err)
	assert.NoError(t, client.Ping(context.Background()))
}
