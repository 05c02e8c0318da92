package cli

import (
	"context"
	"errors"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/redis/go-redis/v9"
	"github.com/spf13/cobra"
	"go.uber.org/zap"

	"emsapi/docs"
	"emsapi/internal/app"
	"emsapi/internal/cache"
	"emsapi/internal/db"
)

const initRetryInterval = 5 * time.Second

// NewServeCommand creates the serve command.
func NewServeCommand(rootOpts *RootOptions) *cobra.Command {
	return &cobra.Command{
		Use:   "serve",
		Short: "Run the HTTP API",
		Long: `Run the HTTP API. The listener starts immediately; API routes answer
503 until the database is reachable and migrated.`,
		Args: cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			return runServe(cmd.Context(), rootOpts)
		},
	}
}

func runServe(ctx context.Context, opts *RootOptions) error {
	rt, err := opts.bootstrap()
	if err != nil {
		return err
	}
	defer rt.close()

	ctx, stop := signal.NotifyContext(ctx, os.Interrupt, syscall.SIGTERM)
	defer stop()

	var rdb *redis.Client
	if rt.cfg.Session.Store == "redis" {
		rdb = cache.NewRedisClient(rt.cfg.Redis)
		defer rdb.Close()
	}

	if rt.cfg.Server.SwaggerHost != "" {
		docs.SwaggerInfo.Host = rt.cfg.Server.SwaggerHost
	}

	e := app.NewServer(app.Deps{Config: rt.cfg, Log: rt.log, DB: rt.db, Redis: rdb})

	go initDatabase(ctx, rt.db, rt.log)

	errCh := make(chan error, 1)
	go func() {
		rt.log.Info("http server listening", zap.String("addr", rt.cfg.Server.Addr()))
		if err := e.Start(rt.cfg.Server.Addr()); err != nil && !errors.Is(err, http.ErrServerClosed) {
			errCh <- err
		}
		close(errCh)
	}()

	select {
	case err := <-errCh:
		return err
	case <-ctx.Done():
	}

	rt.log.Info("shutting down")
	shutdownCtx, cancel := context.WithTimeout(context.Background(), rt.cfg.Server.ShutdownTimeout)
	defer cancel()
	if err := e.Shutdown(shutdownCtx); err != nil {
		return err
	}
	return <-errCh
}

// initDatabase retries Init until it succeeds or ctx is done.
func initDatabase(ctx context.Context, client *db.Client, log *zap.Logger) {
	for {
		err := client.Init(ctx)
		if err == nil {
			return
		}
		log.Error("database init failed, retrying", zap.Error(err), zap.Duration("in", initRetryInterval))

		select {
		case <-ctx.Done():
			return
		case <-time.After(initRetryInterval):
		}
	}
}
