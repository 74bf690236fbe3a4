package model

import (
	"github.com/shopspring/decimal"

	"github.com/Farhan-176/Mcrofinance-Loan-App/internal/domain/valueobject"
)

// StatusTotal is one row of the per-status aggregation.
type StatusTotal struct {
	Status valueobject.LoanStatus
	Count  int
	Amount decimal.Decimal
}

// ApplicationStats summarises every loan request on file.
type ApplicationStats struct {
	TotalApplications int
	Pending           int
	UnderReview       int
	Approved          int
	Rejected          int
	Completed         int
	TotalLoanAmount   decimal.Decimal
}

// NewApplicationStats folds per-status totals into the dashboard summary.
func NewApplicationStats(totals []StatusTotal) ApplicationStats {
	s := ApplicationStats{TotalLoanAmount: decimal.Zero}
	for _, t := range totals {
		s.TotalApplications += t.Count
		s.TotalLoanAmount = s.TotalLoanAmount.Add(t.Amount)
		switch t.Status {
		case valueobject.LoanStatusPending:
			s.Pending += t.Count
		case valueobject.LoanStatusUnderReview:
			s.UnderReview += t.Count
		case valueobject.LoanStatusApproved:
			s.Approved += t.Count
		case valueobject.LoanStatusRejected:
			s.Rejected += t.Count
		case valueobject.LoanStatusCompleted:
			s.Completed += t.Count
		}
	}
	return s
}
