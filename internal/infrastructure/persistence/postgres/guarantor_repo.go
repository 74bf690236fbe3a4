package postgres

import (
	"context"
	"fmt"
	"time"

	"github.com/google/uuid"

	"github.com/Farhan-176/Mcrofinance-Loan-App/internal/domain/model"
	"github.com/Farhan-176/Mcrofinance-Loan-App/internal/domain/port"
	pgutil "github.com/Farhan-176/Mcrofinance-Loan-App/pkg/postgres"
)

// GuarantorRepo implements port.GuarantorRepository.
type GuarantorRepo struct {
	db pgutil.Querier
}

func NewGuarantorRepo(db pgutil.Querier) *GuarantorRepo {
	return &GuarantorRepo{db: db}
}

var _ port.GuarantorRepository = (*GuarantorRepo)(nil)

// FindByIDs returns guarantors in the order of ids. Unknown ids are skipped.
func (r *GuarantorRepo) FindByIDs(ctx context.Context, ids []uuid.UUID) ([]model.Guarantor, error) {
	if len(ids) == 0 {
		return nil, nil
	}
	rows, err := r.db.Query(ctx, `
		SELECT id, loan_request_id, name, email, cnic, location, phone, created_at
		FROM guarantors
		WHERE id = ANY($1)`, ids)
	if err != nil {
		return nil, fmt.Errorf("query guarantors: %w", err)
	}
	defer rows.Close()

	byID := make(map[uuid.UUID]model.Guarantor, len(ids))
	for rows.Next() {
		var (
			id, loanRequestID uuid.UUID
			d                 model.GuarantorDetails
			createdAt         time.Time
		)
		if err := rows.Scan(&id, &loanRequestID, &d.Name, &d.Email, &d.CNIC, &d.Location, &d.Phone, &createdAt); err != nil {
			return nil, fmt.Errorf("scan guarantor: %w", err)
		}
		byID[id] = model.ReconstructGuarantor(id, loanRequestID, d, createdAt.UTC())
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("iterate guarantors: %w", err)
	}

	result := make([]model.Guarantor, 0, len(byID))
	for _, id := range ids {
		if g, ok := byID[id]; ok {
			result = append(result, g)
		}
	}
	return result, nil
}
