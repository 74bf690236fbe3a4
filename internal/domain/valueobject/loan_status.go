package valueobject

import (
	"fmt"
)

// ---------------------------------------------------------------------------
// LoanStatus – immutable value object
// ---------------------------------------------------------------------------

// LoanStatus represents the review stage of a loan request.
type LoanStatus struct {
	value string
}

const (
	loanStatusPending     = "pending"
	loanStatusUnderReview = "under-review"
	loanStatusApproved    = "approved"
	loanStatusRejected    = "rejected"
	loanStatusCompleted   = "completed"
)

var (
	LoanStatusPending     = LoanStatus{value: loanStatusPending}
	LoanStatusUnderReview = LoanStatus{value: loanStatusUnderReview}
	LoanStatusApproved    = LoanStatus{value: loanStatusApproved}
	LoanStatusRejected    = LoanStatus{value: loanStatusRejected}
	LoanStatusCompleted   = LoanStatus{value: loanStatusCompleted}
)

var validLoanStatuses = map[string]LoanStatus{
	loanStatusPending:     LoanStatusPending,
	loanStatusUnderReview: LoanStatusUnderReview,
	loanStatusApproved:    LoanStatusApproved,
	loanStatusRejected:    LoanStatusRejected,
	loanStatusCompleted:   LoanStatusCompleted,
}

// AllLoanStatuses lists every status in lifecycle order.
func AllLoanStatuses() []LoanStatus {
	return []LoanStatus{
		LoanStatusPending,
		LoanStatusUnderReview,
		LoanStatusApproved,
		LoanStatusRejected,
		LoanStatusCompleted,
	}
}

// NewLoanStatus creates a LoanStatus from a raw string.
func NewLoanStatus(s string) (LoanStatus, error) {
	v, ok := validLoanStatuses[s]
	if !ok {
		return LoanStatus{}, fmt.Errorf("invalid loan status: %q", s)
	}
	return v, nil
}

// String returns the string representation of the status.
func (s LoanStatus) String() string { return s.value }

// IsZero returns true if the status has not been initialised.
func (s LoanStatus) IsZero() bool { return s.value == "" }

// Equal returns true when both statuses carry the same value.
func (s LoanStatus) Equal(other LoanStatus) bool { return s.value == other.value }

// IsTerminal reports whether no further review is expected.
func (s LoanStatus) IsTerminal() bool {
	return s.value == loanStatusRejected || s.value == loanStatusCompleted
}
