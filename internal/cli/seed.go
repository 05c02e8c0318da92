package cli

import (
	"fmt"

	"github.com/spf13/cobra"
	"go.uber.org/zap"

	"emsapi/internal/app"
	"emsapi/internal/seed"
)

// SeedOptions holds flags for the seed command.
type SeedOptions struct {
	File string
}

// NewSeedCommand creates the seed command.
func NewSeedCommand(rootOpts *RootOptions) *cobra.Command {
	opts := &SeedOptions{}

	cmd := &cobra.Command{
		Use:   "seed",
		Short: "Load demo data",
		Long: `Load users, departments, employees and salaries from a YAML fixture.
Without --file the built-in demo fixture is used. Existing rows are skipped.`,
		Args: cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			return runSeed(cmd, rootOpts, opts)
		},
	}

	cmd.Flags().StringVarP(&opts.File, "file", "f", "", "fixture file")

	return cmd
}

func runSeed(cmd *cobra.Command, rootOpts *RootOptions, opts *SeedOptions) error {
	fixture, err := seed.LoadFile(opts.File)
	if err != nil {
		return err
	}

	rt, err := rootOpts.bootstrap()
	if err != nil {
		return err
	}
	defer rt.close()

	if err := rt.db.Init(cmd.Context()); err != nil {
		return err
	}

	// Sessions are never issued while seeding, so no Redis is needed.
	svc := app.NewServices(app.Deps{Config: rt.cfg, Log: rt.log, DB: rt.db})
	seeder := seed.NewSeeder(svc.Auth, svc.Department, svc.Employee, svc.Salary, rt.log)

	res, err := seeder.Run(cmd.Context(), fixture)
	if err != nil {
		return err
	}

	rt.log.Info("seed complete",
		zap.Int("users", res.Users),
		zap.Int("departments", res.Departments),
		zap.Int("employees", res.Employees),
		zap.Int("salaries", res.Salaries),
		zap.Int("skipped", res.Skipped),
	)
	fmt.Fprintf(cmd.OutOrStdout(), "seeded %d users, %d departments, %d employees, %d salaries (%d skipped)\n",
		res.Users, res.Departments, res.Employees, res.Salaries, res.Skipped)
	return nil
}
