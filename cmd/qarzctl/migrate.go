package main

import (
	"fmt"

	"github.com/spf13/cobra"
	"go.uber.org/zap"

	pkgpostgres "github.com/Farhan-176/Mcrofinance-Loan-App/pkg/postgres"
)

func migrateCmd(a *app) *cobra.Command {
	var dir string

	cmd := &cobra.Command{
		Use:   "migrate",
		Short: "Manage the database schema",
	}
	cmd.PersistentFlags().StringVar(&dir, "dir", "", "migrations directory (default: app.migrations_dir)")

	source := func() string {
		if dir == "" {
			dir = a.cfg.App.MigrationsDir
		}
		return dir
	}

	cmd.AddCommand(&cobra.Command{
		Use:   "up",
		Short: "Apply all pending migrations",
		Args:  cobra.NoArgs,
		RunE: func(_ *cobra.Command, _ []string) error {
			if err := pkgpostgres.RunMigrations(a.cfg.Database.DSN(), source()); err != nil {
				return err
			}
			a.logger.Info("migrations applied", zap.String("source", source()))
			return nil
		},
	})

	cmd.AddCommand(&cobra.Command{
		Use:   "down",
		Short: "Roll back every migration",
		Args:  cobra.NoArgs,
		RunE: func(_ *cobra.Command, _ []string) error {
			if err := pkgpostgres.RunMigrationsDown(a.cfg.Database.DSN(), source()); err != nil {
				return err
			}
			a.logger.Info("migrations rolled back", zap.String("source", source()))
			return nil
		},
	})

	cmd.AddCommand(&cobra.Command{
		Use:   "version",
		Short: "Print the applied schema version",
		Args:  cobra.NoArgs,
		RunE: func(c *cobra.Command, _ []string) error {
			version, dirty, err := pkgpostgres.MigrationVersion(a.cfg.Database.DSN(), source())
			if err != nil {
				return err
			}
			if dirty {
				fmt.Fprintf(c.OutOrStdout(), "%d (dirty)\n", version)
				return nil
			}
			fmt.Fprintln(c.OutOrStdout(), version)
			return nil
		},
	})
	return cmd
}
