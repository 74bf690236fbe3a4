package postgres

import (
	"context"
	"errors"
	"fmt"
	"strings"

	"github.com/google/uuid"
	"github.com/jackc/pgx/v5"
	"github.com/shopspring/decimal"

	"github.com/Farhan-176/Mcrofinance-Loan-App/internal/domain/model"
	"github.com/Farhan-176/Mcrofinance-Loan-App/internal/domain/port"
	"github.com/Farhan-176/Mcrofinance-Loan-App/internal/domain/valueobject"
	pgutil "github.com/Farhan-176/Mcrofinance-Loan-App/pkg/postgres"
)

const tokenIndex = "loan_requests_token_number_key"

const loanRequestColumns = `
	id, applicant_id, category, subcategory,
	loan_amount, initial_deposit, term_months, monthly_installment,
	status, token_number, appointment_date, appointment_time, office_location,
	profile_photo, cnic_front, cnic_back, salary_sheet, statement,
	guarantor_ids, additional_info, version, created_at, updated_at`

// DB is satisfied by *pgxpool.Pool.
type DB interface {
	pgutil.Querier
	pgutil.TxBeginner
}

// LoanRequestRepo implements port.LoanRequestRepository.
type LoanRequestRepo struct {
	db DB
}

// NewLoanRequestRepo creates a new repository backed by PostgreSQL.
func NewLoanRequestRepo(db DB) *LoanRequestRepo {
	return &LoanRequestRepo{db: db}
}

var _ port.LoanRequestRepository = (*LoanRequestRepo)(nil)

func (r *LoanRequestRepo) Create(ctx context.Context, lr model.LoanRequest) error {
	query := `INSERT INTO loan_requests (` + loanRequestColumns + `)
		VALUES ($1,$2,$3,$4,$5,$6,$7,$8,$9,$10,$11,$12,$13,$14,$15,$16,$17,$18,$19,$20,$21,$22,$23)`

	appt := lr.Appointment()
	docs := lr.Documents()
	_, err := r.db.Exec(ctx, query,
		lr.ID(), lr.ApplicantID(), lr.Category(), lr.Subcategory(),
		lr.LoanAmount(), lr.InitialDeposit(), lr.TermMonths(), lr.MonthlyInstallment(),
		lr.Status().String(), nullableToken(lr.TokenNumber()), appt.Date, appt.Time, appt.OfficeLocation,
		docs.ProfilePhoto, docs.CNICFront, docs.CNICBack, docs.SalarySheet, docs.Statement,
		guarantorIDs(lr), lr.AdditionalInfo(), lr.Version(), lr.CreatedAt(), lr.UpdatedAt(),
	)
	if err != nil {
		return mapWriteError("insert loan request", err)
	}
	return nil
}

// Update writes every mutable column, guarded by the version the aggregate
// was loaded with.
func (r *LoanRequestRepo) Update(ctx context.Context, lr model.LoanRequest) error {
	return update(ctx, r.db, lr)
}

// AttachGuarantors inserts the guarantor rows and updates the request in one
// transaction.
func (r *LoanRequestRepo) AttachGuarantors(ctx context.Context, lr model.LoanRequest, guarantors []model.Guarantor) error {
	return pgutil.WithTransaction(ctx, r.db, func(tx pgx.Tx) error {
		batch := &pgx.Batch{}
		for _, g := range guarantors {
			batch.Queue(`
				INSERT INTO guarantors (id, loan_request_id, name, email, cnic, location, phone, created_at)
				VALUES ($1,$2,$3,$4,$5,$6,$7,$8)`,
				g.ID(), g.LoanRequestID(), g.Name(), g.Email(), g.CNIC(), g.Location(), g.Phone(), g.CreatedAt(),
			)
		}
		if err := tx.SendBatch(ctx, batch).Close(); err != nil {
			return fmt.Errorf("insert guarantors: %w", err)
		}
		return update(ctx, tx, lr)
	})
}

func update(ctx context.Context, q pgutil.Querier, lr model.LoanRequest) error {
	query := `
		UPDATE loan_requests SET
			status           = $2,
			token_number     = $3,
			appointment_date = $4,
			appointment_time = $5,
			office_location  = $6,
			profile_photo    = $7,
			cnic_front       = $8,
			cnic_back        = $9,
			salary_sheet     = $10,
			statement        = $11,
			guarantor_ids    = $12,
			updated_at       = $13,
			version          = version + 1
		WHERE id = $1 AND version = $14`

	appt := lr.Appointment()
	docs := lr.Documents()
	tag, err := q.Exec(ctx, query,
		lr.ID(), lr.Status().String(), nullableToken(lr.TokenNumber()),
		appt.Date, appt.Time, appt.OfficeLocation,
		docs.ProfilePhoto, docs.CNICFront, docs.CNICBack, docs.SalarySheet, docs.Statement,
		guarantorIDs(lr), lr.UpdatedAt(), lr.Version(),
	)
	if err != nil {
		return mapWriteError("update loan request", err)
	}
	if tag.RowsAffected() == 0 {
		return port.ErrStaleVersion
	}
	return nil
}

func (r *LoanRequestRepo) FindByID(ctx context.Context, id uuid.UUID) (model.LoanRequest, error) {
	query := `SELECT ` + loanRequestColumns + ` FROM loan_requests WHERE id = $1`
	return scanOne(r.db.QueryRow(ctx, query, id))
}

func (r *LoanRequestRepo) FindByToken(ctx context.Context, token valueobject.TokenNumber) (model.LoanRequest, error) {
	query := `SELECT ` + loanRequestColumns + ` FROM loan_requests WHERE token_number = $1`
	return scanOne(r.db.QueryRow(ctx, query, token.String()))
}

func (r *LoanRequestRepo) FindByApplicant(ctx context.Context, applicantID uuid.UUID) ([]model.LoanRequest, error) {
	query := `SELECT ` + loanRequestColumns + `
		FROM loan_requests
		WHERE applicant_id = $1
		ORDER BY created_at DESC`
	return r.scanMany(ctx, query, applicantID)
}

func (r *LoanRequestRepo) List(ctx context.Context, filter port.LoanRequestFilter) ([]model.LoanRequest, error) {
	var (
		where []string
		args  []any
	)
	if !filter.Status.IsZero() {
		args = append(args, filter.Status.String())
		where = append(where, fmt.Sprintf("status = $%d", len(args)))
	}

	query := `SELECT ` + loanRequestColumns + ` FROM loan_requests`
	if len(where) > 0 {
		query += ` WHERE ` + strings.Join(where, " AND ")
	}
	query += ` ORDER BY created_at DESC`
	return r.scanMany(ctx, query, args...)
}

func (r *LoanRequestRepo) StatusTotals(ctx context.Context) ([]model.StatusTotal, error) {
	rows, err := r.db.Query(ctx, `
		SELECT status, COUNT(*), COALESCE(SUM(loan_amount), 0)
		FROM loan_requests
		GROUP BY status`)
	if err != nil {
		return nil, fmt.Errorf("query status totals: %w", err)
	}
	defer rows.Close()

	var totals []model.StatusTotal
	for rows.Next() {
		var (
			statusStr string
			count     int
			amount    decimal.Decimal
		)
		if err := rows.Scan(&statusStr, &count, &amount); err != nil {
			return nil, fmt.Errorf("scan status total: %w", err)
		}
		status, err := valueobject.NewLoanStatus(statusStr)
		if err != nil {
			return nil, fmt.Errorf("parse status: %w", err)
		}
		totals = append(totals, model.StatusTotal{Status: status, Count: count, Amount: amount})
	}
	return totals, rows.Err()
}

// ---------------------------------------------------------------------------
// scan helpers
// ---------------------------------------------------------------------------

func (r *LoanRequestRepo) scanMany(ctx context.Context, query string, args ...any) ([]model.LoanRequest, error) {
	rows, err := r.db.Query(ctx, query, args...)
	if err != nil {
		return nil, fmt.Errorf("query loan requests: %w", err)
	}
	defer rows.Close()

	var result []model.LoanRequest
	for rows.Next() {
		lr, err := scanLoanRequest(rows)
		if err != nil {
			return nil, err
		}
		result = append(result, lr)
	}
	return result, rows.Err()
}

func scanOne(row pgx.Row) (model.LoanRequest, error) {
	lr, err := scanLoanRequest(row)
	if errors.Is(err, pgx.ErrNoRows) {
		return model.LoanRequest{}, model.ErrNotFound
	}
	return lr, err
}

func scanLoanRequest(row pgx.Row) (model.LoanRequest, error) {
	var (
		s         model.LoanRequestSnapshot
		statusStr string
		token     *string
		appt      valueobject.Appointment
		docs      valueobject.Documents
	)
	err := row.Scan(
		&s.ID, &s.ApplicantID, &s.Category, &s.Subcategory,
		&s.LoanAmount, &s.InitialDeposit, &s.TermMonths, &s.MonthlyInstallment,
		&statusStr, &token, &appt.Date, &appt.Time, &appt.OfficeLocation,
		&docs.ProfilePhoto, &docs.CNICFront, &docs.CNICBack, &docs.SalarySheet, &docs.Statement,
		&s.GuarantorIDs, &s.AdditionalInfo, &s.Version, &s.CreatedAt, &s.UpdatedAt,
	)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return model.LoanRequest{}, err
		}
		return model.LoanRequest{}, fmt.Errorf("scan loan request: %w", err)
	}

	s.Status, err = valueobject.NewLoanStatus(statusStr)
	if err != nil {
		return model.LoanRequest{}, fmt.Errorf("parse status: %w", err)
	}
	if token != nil {
		s.TokenNumber, err = valueobject.ParseTokenNumber(*token)
		if err != nil {
			return model.LoanRequest{}, fmt.Errorf("parse token number: %w", err)
		}
	}
	if appt.Date != nil {
		d := appt.Date.UTC()
		appt.Date = &d
	}
	s.Appointment = appt
	s.Documents = docs
	s.CreatedAt = s.CreatedAt.UTC()
	s.UpdatedAt = s.UpdatedAt.UTC()
	return model.ReconstructLoanRequest(s), nil
}

func nullableToken(t valueobject.TokenNumber) *string {
	if t.IsZero() {
		return nil
	}
	v := t.String()
	return &v
}

func guarantorIDs(lr model.LoanRequest) []uuid.UUID {
	ids := lr.GuarantorIDs()
	if ids == nil {
		return []uuid.UUID{}
	}
	return ids
}

func mapWriteError(op string, err error) error {
	if pgutil.IsUniqueViolation(err, tokenIndex) {
		return fmt.Errorf("%s: %w", op, model.ErrDuplicateToken)
	}
	return fmt.Errorf("%s: %w", op, err)
}
