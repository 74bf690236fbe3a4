package main

import (
	"time"

	"github.com/spf13/cobra"
	"go.uber.org/zap"

	"github.com/Farhan-176/Mcrofinance-Loan-App/pkg/tlsutil"
)

func certsCmd(a *app) *cobra.Command {
	cmd := &cobra.Command{
		Use:   "certs",
		Short: "Manage TLS material for the desk gRPC listener",
	}

	var (
		dir      string
		hosts    []string
		validity time.Duration
	)
	generate := &cobra.Command{
		Use:   "generate",
		Short: "Write a self-signed certificate and key for development",
		Args:  cobra.NoArgs,
		RunE: func(_ *cobra.Command, _ []string) error {
			if err := tlsutil.GenerateSelfSignedCert(hosts, dir, validity); err != nil {
				return err
			}
			a.logger.Info("certificate written", zap.String("dir", dir), zap.Strings("hosts", hosts))
			return nil
		},
	}
	generate.Flags().StringVar(&dir, "dir", "certs", "output directory")
	generate.Flags().StringSliceVar(&hosts, "host", []string{"localhost", "127.0.0.1"}, "DNS names or IPs to cover")
	generate.Flags().DurationVar(&validity, "validity", 365*24*time.Hour, "certificate lifetime")

	cmd.AddCommand(generate)
	return cmd
}
