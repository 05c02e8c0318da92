// Package cli implements the ems command.
package cli

import (
	"fmt"

	"github.com/spf13/cobra"
	"go.uber.org/zap"

	"emsapi/internal/config"
	"emsapi/internal/db"
	"emsapi/internal/logger"
)

// RootOptions holds global flags for all commands.
type RootOptions struct {
	ConfigFile string
}

// NewRootCommand creates the root command for the ems CLI.
func NewRootCommand() *cobra.Command {
	opts := &RootOptions{}

	cmd := &cobra.Command{
		Use:           "ems",
		Short:         "Employee management API",
		Long:          "Employee management API: HTTP server, schema migrations and demo data seeding.",
		SilenceUsage:  true,
		SilenceErrors: true,
	}

	// Global flags
	cmd.PersistentFlags().StringVarP(&opts.ConfigFile, "config", "c", "", "config file (default ./config.yaml or ./config/config.yaml)")

	// Add subcommands
	cmd.AddCommand(NewServeCommand(opts))
	cmd.AddCommand(NewMigrateCommand(opts))
	cmd.AddCommand(NewSeedCommand(opts))

	return cmd
}

// runtime is what every subcommand needs: configuration, a logger and a
// database client that has not connected yet.
type runtime struct {
	cfg *config.Config
	log *zap.Logger
	db  *db.Client
}

func (opts *RootOptions) bootstrap() (*runtime, error) {
	cfg, err := config.Load(opts.ConfigFile)
	if err != nil {
		return nil, err
	}
	log, err := logger.NewLogger(cfg.Log)
	if err != nil {
		return nil, fmt.Errorf("init logger: %w", err)
	}
	client, err := db.Open(cfg.Database, log)
	if err != nil {
		return nil, err
	}
	return &runtime{cfg: cfg, log: log, db: client}, nil
}

func (r *runtime) close() {
	_ = r.db.Close()
	_ = r.log.Sync()
}
