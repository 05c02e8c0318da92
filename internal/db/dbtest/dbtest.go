// Package dbtest provides a migrated in-memory SQLite client for tests.
package dbtest

import (
	"context"
	"testing"

	"github.com/google/uuid"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap"

	"emsapi/internal/config"
	"emsapi/internal/db"
)

// New returns a ready client backed by a private in-memory database with
// foreign keys enforced. The pool is pinned to one connection so the
// database lives as long as the client.
func New(t testing.TB) *db.Client {
	t.Helper()

	cfg := config.DatabaseConfig{
		Dialect:      "sqlite",
		DSN:          "file:" + uuid.NewString() + "?mode=memory&cache=shared&_foreign_keys=on",
		MaxOpenConns: 1,
		MaxIdleConns: 1,
	}
	client, err := db.Open(cfg, zap.NewNop())
	require.NoError(t, err)
	require.NoError(t, client.Init(context.Background()))

	t.Cleanup(func() { _ = client.Close() })
	return client
}
