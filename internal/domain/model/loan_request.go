package model

import (
	"slices"
	"time"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"

	"github.com/Farhan-176/Mcrofinance-Loan-App/internal/domain/event"
	"github.com/Farhan-176/Mcrofinance-Loan-App/internal/domain/valueobject"
)

// RequiredGuarantors is the number of guarantors every request carries.
const RequiredGuarantors = 2

// ---------------------------------------------------------------------------
// LoanRequest aggregate root
// ---------------------------------------------------------------------------

// LoanRequest is an immutable aggregate. Every mutation returns a new copy.
type LoanRequest struct {
	id                 uuid.UUID
	applicantID        uuid.UUID
	category           string
	subcategory        string
	loanAmount         decimal.Decimal
	initialDeposit     decimal.Decimal
	termMonths         int
	monthlyInstallment decimal.Decimal
	status             valueobject.LoanStatus
	tokenNumber        valueobject.TokenNumber
	appointment        valueobject.Appointment
	documents          valueobject.Documents
	guarantorIDs       []uuid.UUID
	additionalInfo     string
	version            int
	createdAt          time.Time
	updatedAt          time.Time
	domainEvents       []event.DomainEvent
}

// LoanRequestSnapshot is the flat form used to rebuild a request from storage.
type LoanRequestSnapshot struct {
	ID                 uuid.UUID
	ApplicantID        uuid.UUID
	Category           string
	Subcategory        string
	LoanAmount         decimal.Decimal
	InitialDeposit     decimal.Decimal
	TermMonths         int
	MonthlyInstallment decimal.Decimal
	Status             valueobject.LoanStatus
	TokenNumber        valueobject.TokenNumber
	Appointment        valueobject.Appointment
	Documents          valueobject.Documents
	GuarantorIDs       []uuid.UUID
	AdditionalInfo     string
	Version            int
	CreatedAt          time.Time
	UpdatedAt          time.Time
}

// ---------------------------------------------------------------------------
// Constructors
// ---------------------------------------------------------------------------

// NewLoanRequest files a request in pending status. The calculation must come
// from CalculateLoan for the same category so amount and term are in range.
func NewLoanRequest(
	applicantID uuid.UUID,
	category LoanCategory,
	subcategory string,
	calc LoanCalculation,
	additionalInfo string,
	now time.Time,
) (LoanRequest, error) {
	if applicantID == uuid.Nil {
		return LoanRequest{}, NewValidationError("applicant is required")
	}
	if !category.HasSubcategory(subcategory) {
		return LoanRequest{}, NewValidationError("Invalid subcategory %q for %s", subcategory, category.Name())
	}
	if err := category.ValidateAmount(calc.TotalLoan); err != nil {
		return LoanRequest{}, err
	}
	if err := category.ValidateTerm(calc.PeriodMonths); err != nil {
		return LoanRequest{}, err
	}

	id := uuid.New()
	lr := LoanRequest{
		id:                 id,
		applicantID:        applicantID,
		category:           category.Name(),
		subcategory:        subcategory,
		loanAmount:         calc.TotalLoan,
		initialDeposit:     calc.InitialDeposit,
		termMonths:         calc.PeriodMonths,
		monthlyInstallment: calc.MonthlyInstallment,
		status:             valueobject.LoanStatusPending,
		additionalInfo:     additionalInfo,
		version:            1,
		createdAt:          now,
		updatedAt:          now,
	}

	lr.domainEvents = append(lr.domainEvents, event.NewLoanRequestSubmitted(
		id, applicantID, lr.category, subcategory,
		calc.TotalLoan, calc.InitialDeposit, calc.PeriodMonths, calc.MonthlyInstallment, now,
	))
	return lr, nil
}

// ReconstructLoanRequest rebuilds an aggregate from persistence without side-effects.
func ReconstructLoanRequest(s LoanRequestSnapshot) LoanRequest {
	return LoanRequest{
		id:                 s.ID,
		applicantID:        s.ApplicantID,
		category:           s.Category,
		subcategory:        s.Subcategory,
		loanAmount:         s.LoanAmount,
		initialDeposit:     s.InitialDeposit,
		termMonths:         s.TermMonths,
		monthlyInstallment: s.MonthlyInstallment,
		status:             s.Status,
		tokenNumber:        s.TokenNumber,
		appointment:        s.Appointment,
		documents:          s.Documents,
		guarantorIDs:       slices.Clone(s.GuarantorIDs),
		additionalInfo:     s.AdditionalInfo,
		version:            s.Version,
		createdAt:          s.CreatedAt,
		updatedAt:          s.UpdatedAt,
	}
}

// ---------------------------------------------------------------------------
// State transitions (each returns a new copy)
// ---------------------------------------------------------------------------

// ChangeStatus overwrites the status with any valid value. Review order is
// not enforced; administrators may move a request to any status.
func (r LoanRequest) ChangeStatus(status valueobject.LoanStatus, now time.Time) (LoanRequest, error) {
	if status.IsZero() {
		return r, NewValidationError("Invalid status")
	}
	next := r.touch(now)
	next.status = status
	next.domainEvents = append(next.domainEvents, event.NewLoanStatusChanged(
		r.id, r.applicantID, r.status.String(), status.String(), now,
	))
	return next, nil
}

// AssignToken issues token if the request has none yet and applies the
// appointment update. An existing token is never replaced. Without an
// explicit status a pending request moves to under-review.
func (r LoanRequest) AssignToken(
	token valueobject.TokenNumber,
	appointment valueobject.AppointmentUpdate,
	status *valueobject.LoanStatus,
	now time.Time,
) (LoanRequest, error) {
	if r.tokenNumber.IsZero() && token.IsZero() {
		return r, NewValidationError("token number is required")
	}

	next := r.touch(now)
	if r.tokenNumber.IsZero() {
		next.tokenNumber = token
		next.domainEvents = append(next.domainEvents, event.NewTokenAssigned(
			r.id, r.applicantID, token.String(), now,
		))
	}

	if appointment != (valueobject.AppointmentUpdate{}) {
		next.appointment = r.appointment.Apply(appointment)
		next.domainEvents = append(next.domainEvents, event.NewAppointmentScheduled(
			r.id, r.applicantID,
			next.appointment.Date, next.appointment.Time, next.appointment.OfficeLocation, now,
		))
	}

	target := r.status
	switch {
	case status != nil && !status.IsZero():
		target = *status
	case r.status.Equal(valueobject.LoanStatusPending):
		target = valueobject.LoanStatusUnderReview
	}
	if !target.Equal(r.status) {
		next.status = target
		next.domainEvents = append(next.domainEvents, event.NewLoanStatusChanged(
			r.id, r.applicantID, r.status.String(), target.String(), now,
		))
	}
	return next, nil
}

// ReplaceGuarantors links exactly two guarantor records, in submitted order.
func (r LoanRequest) ReplaceGuarantors(ids []uuid.UUID, now time.Time) (LoanRequest, error) {
	if len(ids) != RequiredGuarantors {
		return r, NewValidationError("Exactly two guarantors are required")
	}
	next := r.touch(now)
	next.guarantorIDs = slices.Clone(ids)
	next.domainEvents = append(next.domainEvents, event.NewGuarantorsAttached(r.id, next.guarantorIDs, now))
	return next, nil
}

// AttachDocuments stores the provided references and leaves other slots alone.
func (r LoanRequest) AttachDocuments(update valueobject.DocumentUpdate, kinds []string, now time.Time) (LoanRequest, error) {
	if update.IsEmpty() {
		return r, NewValidationError("No files uploaded")
	}
	next := r.touch(now)
	next.documents = r.documents.Apply(update)
	next.domainEvents = append(next.domainEvents, event.NewDocumentsAttached(r.id, kinds, now))
	return next, nil
}

func (r LoanRequest) touch(now time.Time) LoanRequest {
	next := r
	next.updatedAt = now
	next.domainEvents = copyEvents(r.domainEvents)
	return next
}

// ---------------------------------------------------------------------------
// Access
// ---------------------------------------------------------------------------

// IsOwnedBy reports whether userID filed this request.
func (r LoanRequest) IsOwnedBy(userID uuid.UUID) bool { return r.applicantID == userID }

// VisibleTo reports whether the caller may read the request.
func (r LoanRequest) VisibleTo(userID uuid.UUID, isAdmin bool) bool {
	return isAdmin || r.IsOwnedBy(userID)
}

// HasToken reports whether a token has been issued.
func (r LoanRequest) HasToken() bool { return !r.tokenNumber.IsZero() }

// ---------------------------------------------------------------------------
// Accessors
// ---------------------------------------------------------------------------

func (r LoanRequest) ID() uuid.UUID { return r.id }
func (r LoanRequest) ApplicantID() uuid.UUID { return r.applicantID }
func (r LoanRequest) Category() string { return r.category }
func (r LoanRequest) Subcategory() string { return r.subcategory }
func (r LoanRequest) LoanAmount() decimal.Decimal { return r.loanAmount }
func (r LoanRequest) InitialDeposit() decimal.Decimal { return r.initialDeposit }
func (r LoanRequest) TermMonths() int { return r.termMonths }
func (r LoanRequest) MonthlyInstallment() decimal.Decimal { return r.monthlyInstallment }
func (r LoanRequest) Status() valueobject.LoanStatus { return r.status }
func (r LoanRequest) TokenNumber() valueobject.TokenNumber { return r.tokenNumber }
func (r LoanRequest) Appointment() valueobject.Appointment { return r.appointment }
func (r LoanRequest) Documents() valueobject.Documents { return r.documents }
func (r LoanRequest) GuarantorIDs() []uuid.UUID { return slices.Clone(r.guarantorIDs) }
func (r LoanRequest) AdditionalInfo() string { return r.additionalInfo }
func (r LoanRequest) Version() int { return r.version }
func (r LoanRequest) CreatedAt() time.Time { return r.createdAt }
func (r LoanRequest) UpdatedAt() time.Time { return r.updatedAt }
func (r LoanRequest) DomainEvents() []event.DomainEvent { return r.domainEvents }

// ClearEvents returns a copy with an empty event list (call after publishing).
func (r LoanRequest) ClearEvents() LoanRequest {
	next := r
	next.domainEvents = nil
	return next
}

func copyEvents(src []event.DomainEvent) []event.DomainEvent {
	if len(src) == 0 {
		return nil
	}
	dst := make([]event.DomainEvent, len(src))
	copy(dst, src)
	return dst
}
