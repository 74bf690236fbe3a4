package event

import (
	"time"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"

	"github.com/Farhan-176/Mcrofinance-Loan-App/pkg/events"
)

// DomainEvent is an alias for the shared pkg/events.DomainEvent interface.
type DomainEvent = events.DomainEvent

const aggregateLoanRequest = "LoanRequest"

// Event type names as published on the wire.
const (
	TypeLoanRequestSubmitted = "qarz.loan_request.submitted"
	TypeGuarantorsAttached   = "qarz.loan_request.guarantors_attached"
	TypeDocumentsAttached    = "qarz.loan_request.documents_attached"
	TypeStatusChanged        = "qarz.loan_request.status_changed"
	TypeTokenAssigned        = "qarz.loan_request.token_assigned"
	TypeAppointmentScheduled = "qarz.loan_request.appointment_scheduled"
)

// LoanRequestSubmitted is raised when an applicant files a new request.
type LoanRequestSubmitted struct {
	events.BaseEvent
	ApplicantID        uuid.UUID       `json:"applicant_id"`
	Category           string          `json:"category"`
	Subcategory        string          `json:"subcategory"`
	LoanAmount         decimal.Decimal `json:"loan_amount"`
	InitialDeposit     decimal.Decimal `json:"initial_deposit"`
	TermMonths         int             `json:"term_months"`
	MonthlyInstallment decimal.Decimal `json:"monthly_installment"`
}

func NewLoanRequestSubmitted(
	loanRequestID, applicantID uuid.UUID,
	category, subcategory string,
	amount, deposit decimal.Decimal,
	termMonths int, installment decimal.Decimal,
	now time.Time,
) LoanRequestSubmitted {
	return LoanRequestSubmitted{
		BaseEvent:          events.NewBaseEvent(TypeLoanRequestSubmitted, loanRequestID, aggregateLoanRequest, now),
		ApplicantID:        applicantID,
		Category:           category,
		Subcategory:        subcategory,
		LoanAmount:         amount,
		InitialDeposit:     deposit,
		TermMonths:         termMonths,
		MonthlyInstallment: installment,
	}
}

// GuarantorsAttached is raised when the guarantor pair is (re)submitted.
type GuarantorsAttached struct {
	events.BaseEvent
	GuarantorIDs []uuid.UUID `json:"guarantor_ids"`
}

func NewGuarantorsAttached(loanRequestID uuid.UUID, guarantorIDs []uuid.UUID, now time.Time) GuarantorsAttached {
	return GuarantorsAttached{
		BaseEvent:    events.NewBaseEvent(TypeGuarantorsAttached, loanRequestID, aggregateLoanRequest, now),
		GuarantorIDs: guarantorIDs,
	}
}

// DocumentsAttached lists the document slots filled by an upload.
type DocumentsAttached struct {
	events.BaseEvent
	Kinds []string `json:"kinds"`
}

func NewDocumentsAttached(loanRequestID uuid.UUID, kinds []string, now time.Time) DocumentsAttached {
	return DocumentsAttached{
		BaseEvent: events.NewBaseEvent(TypeDocumentsAttached, loanRequestID, aggregateLoanRequest, now),
		Kinds:     kinds,
	}
}

// LoanStatusChanged is raised on every status overwrite, including the
// automatic promotion on token assignment.
type LoanStatusChanged struct {
	events.BaseEvent
	ApplicantID uuid.UUID `json:"applicant_id"`
	From        string    `json:"from"`
	To          string    `json:"to"`
}

func NewLoanStatusChanged(loanRequestID, applicantID uuid.UUID, from, to string, now time.Time) LoanStatusChanged {
	return LoanStatusChanged{
		BaseEvent:   events.NewBaseEvent(TypeStatusChanged, loanRequestID, aggregateLoanRequest, now),
		ApplicantID: applicantID,
		From:        from,
		To:          to,
	}
}

// TokenAssigned is raised once per request, when its token is issued.
type TokenAssigned struct {
	events.BaseEvent
	ApplicantID uuid.UUID `json:"applicant_id"`
	TokenNumber string    `json:"token_number"`
}

func NewTokenAssigned(loanRequestID, applicantID uuid.UUID, token string, now time.Time) TokenAssigned {
	return TokenAssigned{
		BaseEvent:   events.NewBaseEvent(TypeTokenAssigned, loanRequestID, aggregateLoanRequest, now),
		ApplicantID: applicantID,
		TokenNumber: token,
	}
}

// AppointmentScheduled carries the appointment after an update.
type AppointmentScheduled struct {
	events.BaseEvent
	ApplicantID    uuid.UUID  `json:"applicant_id"`
	Date           *time.Time `json:"date,omitempty"`
	Time           string     `json:"time,omitempty"`
	OfficeLocation string     `json:"office_location,omitempty"`
}

func NewAppointmentScheduled(
	loanRequestID, applicantID uuid.UUID,
	date *time.Time, slot, office string,
	now time.Time,
) AppointmentScheduled {
	return AppointmentScheduled{
		BaseEvent:      events.NewBaseEvent(TypeAppointmentScheduled, loanRequestID, aggregateLoanRequest, now),
		ApplicantID:    applicantID,
		Date:           date,
		Time:           slot,
		OfficeLocation: office,
	}
}
