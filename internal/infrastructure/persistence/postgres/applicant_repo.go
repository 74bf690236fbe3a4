package postgres

import (
	"context"
	"errors"
	"fmt"
	"strings"

	"github.com/google/uuid"
	"github.com/jackc/pgx/v5"

	"github.com/Farhan-176/Mcrofinance-Loan-App/internal/domain/model"
	"github.com/Farhan-176/Mcrofinance-Loan-App/internal/domain/port"
	pgutil "github.com/Farhan-176/Mcrofinance-Loan-App/pkg/postgres"
)

const emailIndex = "users_email_key"

// ErrEmailTaken is returned by Create when the email is already registered.
var ErrEmailTaken = errors.New("email already registered")

const applicantColumns = `id, name, email, cnic, phone, street, city, country, zip_code, is_admin`

// ApplicantRepo reads the users table. Accounts are created by the account
// service; Create exists for operator seeding only.
type ApplicantRepo struct {
	db pgutil.Querier
}

func NewApplicantRepo(db pgutil.Querier) *ApplicantRepo {
	return &ApplicantRepo{db: db}
}

var _ port.ApplicantDirectory = (*ApplicantRepo)(nil)

func (r *ApplicantRepo) FindByID(ctx context.Context, id uuid.UUID) (model.Applicant, error) {
	row := r.db.QueryRow(ctx, `SELECT `+applicantColumns+` FROM users WHERE id = $1`, id)
	a, err := scanApplicant(row)
	if errors.Is(err, pgx.ErrNoRows) {
		return model.Applicant{}, model.ErrNotFound
	}
	if err != nil {
		return model.Applicant{}, fmt.Errorf("find applicant: %w", err)
	}
	return a, nil
}

func (r *ApplicantRepo) FindByIDs(ctx context.Context, ids []uuid.UUID) (map[uuid.UUID]model.Applicant, error) {
	result := make(map[uuid.UUID]model.Applicant, len(ids))
	if len(ids) == 0 {
		return result, nil
	}
	rows, err := r.db.Query(ctx, `SELECT `+applicantColumns+` FROM users WHERE id = ANY($1)`, ids)
	if err != nil {
		return nil, fmt.Errorf("query applicants: %w", err)
	}
	defer rows.Close()

	for rows.Next() {
		a, err := scanApplicant(rows)
		if err != nil {
			return nil, fmt.Errorf("scan applicant: %w", err)
		}
		result[a.ID] = a
	}
	return result, rows.Err()
}

// Create inserts a user with an already hashed password.
func (r *ApplicantRepo) Create(ctx context.Context, a model.Applicant, passwordHash string) error {
	_, err := r.db.Exec(ctx, `
		INSERT INTO users (`+applicantColumns+`, password_hash)
		VALUES ($1,$2,$3,$4,$5,$6,$7,$8,$9,$10,$11)`,
		a.ID, a.Name, strings.ToLower(a.Email), a.CNIC, a.Phone,
		a.Address.Street, a.Address.City, a.Address.Country, a.Address.ZipCode,
		a.IsAdmin, passwordHash,
	)
	if pgutil.IsUniqueViolation(err, emailIndex) {
		return fmt.Errorf("insert user %s: %w", a.Email, ErrEmailTaken)
	}
	if err != nil {
		return fmt.Errorf("insert user: %w", err)
	}
	return nil
}

func scanApplicant(row pgx.Row) (model.Applicant, error) {
	var a model.Applicant
	err := row.Scan(
		&a.ID, &a.Name, &a.Email, &a.CNIC, &a.Phone,
		&a.Address.Street, &a.Address.City, &a.Address.Country, &a.Address.ZipCode,
		&a.IsAdmin,
	)
	return a, err
}
