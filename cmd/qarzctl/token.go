package main

import (
	"fmt"

	"github.com/google/uuid"
	"github.com/spf13/cobra"

	"github.com/Farhan-176/Mcrofinance-Loan-App/pkg/auth"
)

func tokenCmd(a *app) *cobra.Command {
	cmd := &cobra.Command{
		Use:   "token",
		Short: "Work with API bearer tokens",
	}

	var (
		userID string
		email  string
		admin  bool
	)
	issue := &cobra.Command{
		Use:   "issue",
		Short: "Sign a bearer token for testing the API",
		Args:  cobra.NoArgs,
		RunE: func(c *cobra.Command, _ []string) error {
			id, err := uuid.Parse(userID)
			if err != nil {
				return fmt.Errorf("--user: %w", err)
			}
			jwtCfg, err := a.cfg.Auth.JWT()
			if err != nil {
				return err
			}
			svc, err := auth.NewJWTService(jwtCfg)
			if err != nil {
				return err
			}

			token, err := svc.GenerateToken(id, email, auth.RolesFor(admin))
			if err != nil {
				return err
			}
			fmt.Fprintln(c.OutOrStdout(), token)
			return nil
		},
	}
	issue.Flags().StringVar(&userID, "user", "", "user id (required)")
	issue.Flags().StringVar(&email, "email", "", "email claim")
	issue.Flags().BoolVar(&admin, "admin", false, "grant the admin role")
	_ = issue.MarkFlagRequired("user")

	cmd.AddCommand(issue)
	return cmd
}
