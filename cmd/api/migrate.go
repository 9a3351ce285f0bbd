package main

import (
	"fmt"

	"github.com/spf13/cobra"

	"github.com/taskmgmt/task-management-api/config"
	"github.com/taskmgmt/task-management-api/internal/logger"
	"github.com/taskmgmt/task-management-api/internal/storage/postgres"
)

func newMigrateCmd() *cobra.Command {
	var steps int

	cmd := &cobra.Command{
		Use:       "migrate [up|down]",
		Short:     "Apply or roll back database migrations",
		Args:      cobra.ExactArgs(1),
		ValidArgs: []string{string(postgres.Up), string(postgres.Down)},
		RunE: func(_ *cobra.Command, args []string) error {
			dir := postgres.Direction(args[0])
			if dir != postgres.Up && dir != postgres.Down {
				return fmt.Errorf("unknown direction %q, want up or down", args[0])
			}

			cfg, err := config.Load()
			if err != nil {
				return err
			}
			logger.Init(logger.Config{Level: cfg.App.LogLevel, Format: cfg.App.LogFormat})

			db, err := postgres.NewConnection(&cfg.Database)
			if err != nil {
				return err
			}
			defer db.Close()

			return postgres.Migrate(db, dir, steps)
		},
	}
	cmd.Flags().IntVar(&steps, "steps", 0, "number of migrations to apply (0 = all)")
	return cmd
}
