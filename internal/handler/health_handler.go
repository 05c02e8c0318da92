package handler

import (
	"context"
	"net/http"

	"github.com/labstack/echo/v4"
	"go.uber.org/zap"

	apperrors "emsapi/internal/errors"
)

// Database is the readiness view of the database client.
type Database interface {
	Ready() bool
	Ping(ctx context.Context) error
}

// Pinger is any dependency that can be probed.
type Pinger interface {
	Ping(ctx context.Context) error
}

// HealthHandler serves liveness and readiness probes.
type HealthHandler struct {
	db    Database
	redis Pinger
	log   *zap.Logger
}

// NewHealthHandler creates a health handler. redis may be nil.
func NewHealthHandler(db Database, redis Pinger, log *zap.Logger) *HealthHandler {
	return &HealthHandler{db: db, redis: redis, log: log}
}

// Healthz reports that the process is up.
func (h *HealthHandler) Healthz(c echo.Context) error {
	return c.String(http.StatusOK, "ok")
}

// Readyz reports whether the database is initialized and reachable and
// Redis answers.
func (h *HealthHandler) Readyz(c echo.Context) error {
	ctx := c.Request().Context()
	if !h.db.Ready() {
		return apperrors.ErrDatabaseInitializing
	}
	if err := h.db.Ping(ctx); err != nil {
		h.log.Warn("readiness: database ping failed", zap.Error(err))
		return apperrors.Wrap(apperrors.ErrDatabaseInitializing, err)
	}
	if h.redis != nil {
		if err := h.redis.Ping(ctx); err != nil {
			h.log.Warn("readiness: redis ping failed", zap.Error(err))
			return echo.NewHTTPError(http.StatusServiceUnavailable, "Redis unavailable")
		}
	}
	return c.JSON(http.StatusOK, map[string]string{"status": "ready"})
}

// RequireReady rejects requests with 503 until the database is initialized.
func RequireReady(db Database) echo.MiddlewareFunc {
	return func(next echo.HandlerFunc) echo.HandlerFunc {
		return func(c echo.Context) error {
			if !db.Ready() {
				return apperrors.ErrDatabaseInitializing
			}
			return next(c)
		}
	}
}
