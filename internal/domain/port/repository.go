package port

import (
	"context"
	"errors"
	"io"

	"github.com/google/uuid"

	"github.com/Farhan-176/Mcrofinance-Loan-App/internal/domain/event"
	"github.com/Farhan-176/Mcrofinance-Loan-App/internal/domain/model"
	"github.com/Farhan-176/Mcrofinance-Loan-App/internal/domain/valueobject"
)

// ErrStaleVersion is returned by Update when the stored version moved on.
var ErrStaleVersion = errors.New("loan request was modified concurrently")

// ---------------------------------------------------------------------------
// Repository ports (driven/secondary adapters)
// ---------------------------------------------------------------------------

// LoanRequestFilter narrows an administrative listing. A zero Status lists all.
type LoanRequestFilter struct {
	Status valueobject.LoanStatus
}

// LoanRequestRepository persists and retrieves loan requests. Lookups return
// model.ErrNotFound for unknown rows; a token clash returns model.ErrDuplicateToken.
type LoanRequestRepository interface {
	Create(ctx context.Context, lr model.LoanRequest) error
	Update(ctx context.Context, lr model.LoanRequest) error
	// AttachGuarantors inserts the guarantors and updates lr in one transaction.
	AttachGuarantors(ctx context.Context, lr model.LoanRequest, guarantors []model.Guarantor) error
	FindByID(ctx context.Context, id uuid.UUID) (model.LoanRequest, error)
	FindByToken(ctx context.Context, token valueobject.TokenNumber) (model.LoanRequest, error)
	// FindByApplicant returns the applicant's requests, newest first.
	FindByApplicant(ctx context.Context, applicantID uuid.UUID) ([]model.LoanRequest, error)
	// List returns matching requests, newest first.
	List(ctx context.Context, filter LoanRequestFilter) ([]model.LoanRequest, error)
	StatusTotals(ctx context.Context) ([]model.StatusTotal, error)
}

// GuarantorRepository reads guarantor records.
type GuarantorRepository interface {
	// FindByIDs returns the guarantors in the order of ids, skipping unknown ones.
	FindByIDs(ctx context.Context, ids []uuid.UUID) ([]model.Guarantor, error)
}

// ApplicantDirectory reads registered users.
type ApplicantDirectory interface {
	FindByID(ctx context.Context, id uuid.UUID) (model.Applicant, error)
	FindByIDs(ctx context.Context, ids []uuid.UUID) (map[uuid.UUID]model.Applicant, error)
}

// ---------------------------------------------------------------------------
// Event publisher port
// ---------------------------------------------------------------------------

// EventPublisher publishes domain events to external consumers.
type EventPublisher interface {
	Publish(ctx context.Context, events ...event.DomainEvent) error
}

// ---------------------------------------------------------------------------
// Adapter ports
// ---------------------------------------------------------------------------

// DocumentStore keeps uploaded files and returns the public reference.
// Remove takes a reference returned by Save.
type DocumentStore interface {
	Save(ctx context.Context, fileName string, content io.Reader) (string, error)
	Remove(ctx context.Context, ref string) error
}

// QRCodeEncoder renders a payload as a PNG data URL.
type QRCodeEncoder interface {
	EncodeDataURL(payload []byte) (string, error)
}

// SlipCache stores rendered slips by loan request id.
type SlipCache interface {
	Get(ctx context.Context, loanRequestID uuid.UUID) (model.Slip, bool, error)
	Set(ctx context.Context, loanRequestID uuid.UUID, slip model.Slip) error
	Invalidate(ctx context.Context, loanRequestID uuid.UUID) error
}

// TokenIssuer produces candidate token numbers.
type TokenIssuer interface {
	Issue() (valueobject.TokenNumber, error)
}
