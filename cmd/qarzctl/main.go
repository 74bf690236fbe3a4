package main

import (
	"context"
	"fmt"
	"os"
	"os/signal"
	"syscall"

	"github.com/spf13/cobra"
	"go.uber.org/zap"

	"github.com/Farhan-176/Mcrofinance-Loan-App/internal/infrastructure/config"
	"github.com/Farhan-176/Mcrofinance-Loan-App/pkg/observability"
)

// app carries what every subcommand needs once the root has loaded config.
type app struct {
	cfg    config.Config
	logger *zap.Logger
}

func main() {
	ctx, cancel := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer cancel()

	if err := newRootCmd().ExecuteContext(ctx); err != nil {
		fmt.Fprintln(os.Stderr, err)
		os.Exit(1)
	}
}

func newRootCmd() *cobra.Command {
	a := &app{}
	var logLevel string

	root := &cobra.Command{
		Use:           "qarzctl",
		Short:         "Operator tooling for the Qarze Hasana loan portal",
		SilenceUsage:  true,
		SilenceErrors: true,
		PersistentPreRunE: func(_ *cobra.Command, _ []string) error {
			cfg, err := config.Load()
			if err != nil {
				return err
			}
			if logLevel != "" {
				cfg.Logging.Level = logLevel
			}
			logger, err := observability.InitLogger(observability.LogConfig{Level: cfg.Logging.Level, Format: "console"})
			if err != nil {
				return err
			}
			a.cfg, a.logger = cfg, logger
			return nil
		},
		PersistentPostRun: func(_ *cobra.Command, _ []string) {
			if a.logger != nil {
				_ = a.logger.Sync()
			}
		},
	}
	root.PersistentFlags().StringVar(&logLevel, "log-level", "", "override logging.level (debug, info, warn, error)")

	root.AddCommand(migrateCmd(a))
	root.AddCommand(seedAdminCmd(a))
	root.AddCommand(tokenCmd(a))
	root.AddCommand(certsCmd(a))
	return root
}
