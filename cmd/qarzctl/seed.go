package main

import (
	"context"
	"errors"
	"fmt"
	"os"

	"github.com/google/uuid"
	"github.com/spf13/cobra"
	"go.uber.org/zap"
	"golang.org/x/crypto/bcrypt"

	"github.com/Farhan-176/Mcrofinance-Loan-App/internal/domain/model"
	pgRepo "github.com/Farhan-176/Mcrofinance-Loan-App/internal/infrastructure/persistence/postgres"
	pkgpostgres "github.com/Farhan-176/Mcrofinance-Loan-App/pkg/postgres"
)

const adminPasswordEnv = "QARZ_ADMIN_PASSWORD"

// userCreator is satisfied by *pgRepo.ApplicantRepo.
type userCreator interface {
	Create(ctx context.Context, a model.Applicant, passwordHash string) error
}

func seedAdminCmd(a *app) *cobra.Command {
	var name, email, cnic string

	cmd := &cobra.Command{
		Use:   "seed-admin",
		Short: "Create the administrator account",
		Long: "Creates an administrator in the users table. The password is read from " +
			adminPasswordEnv + ". An existing account with the same email is left untouched.",
		Args: cobra.NoArgs,
		RunE: func(c *cobra.Command, _ []string) error {
			password := os.Getenv(adminPasswordEnv)
			if password == "" {
				return fmt.Errorf("%s is not set", adminPasswordEnv)
			}

			pool, err := pkgpostgres.NewPool(c.Context(), a.cfg.Database.Postgres())
			if err != nil {
				return err
			}
			defer pool.Close()

			id, created, err := seedAdmin(c.Context(), pgRepo.NewApplicantRepo(pool), model.Applicant{Name: name, Email: email, CNIC: cnic}, password)
			if err != nil {
				return err
			}
			if !created {
				a.logger.Info("admin already exists", zap.String("email", email))
				return nil
			}
			a.logger.Info("admin created", zap.String("email", email), zap.String("id", id.String()))
			return nil
		},
	}
	cmd.Flags().StringVar(&name, "name", "Administrator", "display name")
	cmd.Flags().StringVar(&email, "email", "admin@saylani.com", "login email")
	cmd.Flags().StringVar(&cnic, "cnic", "", "CNIC recorded on the account")
	return cmd
}

func seedAdmin(ctx context.Context, users userCreator, admin model.Applicant, password string) (uuid.UUID, bool, error) {
	hash, err := bcrypt.GenerateFromPassword([]byte(password), bcrypt.DefaultCost)
	if err != nil {
		return uuid.Nil, false, fmt.Errorf("hash password: %w", err)
	}
	admin.ID = uuid.New()
	admin.IsAdmin = true
	err = users.Create(ctx, admin, string(hash))
	if errors.Is(err, pgRepo.ErrEmailTaken) {
		return uuid.Nil, false, nil
	}
	if err != nil {
		return uuid.Nil, false, err
	}
	return admin.ID, true, nil
}
