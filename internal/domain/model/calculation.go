package model

import (
	"github.com/shopspring/decimal"
)

// MaxAmount is the largest loan amount that can be stored: twelve whole
// digits and two decimal places.
var MaxAmount = decimal.RequireFromString("999999999999.99")

// LoanCalculation is the repayment breakdown of an interest-free loan.
type LoanCalculation struct {
	TotalLoan          decimal.Decimal
	InitialDeposit     decimal.Decimal
	RemainingAmount    decimal.Decimal
	PeriodMonths       int
	MonthlyInstallment decimal.Decimal
	TotalPayable       decimal.Decimal
}

// CalculateLoan splits the amount left after the deposit into equal monthly
// installments rounded up to a whole rupee. TotalPayable can exceed the loan
// amount by at most termMonths-1.
func CalculateLoan(loanAmount, initialDeposit decimal.Decimal, termMonths int) (LoanCalculation, error) {
	if loanAmount.IsNegative() {
		return LoanCalculation{}, NewValidationError("Loan amount cannot be negative")
	}
	if initialDeposit.IsNegative() {
		return LoanCalculation{}, NewValidationError("Initial deposit cannot be negative")
	}
	if !hasCents(loanAmount) {
		return LoanCalculation{}, NewValidationError("Loan amount cannot have more than 2 decimal places")
	}
	if !hasCents(initialDeposit) {
		return LoanCalculation{}, NewValidationError("Initial deposit cannot have more than 2 decimal places")
	}
	if loanAmount.GreaterThan(MaxAmount) {
		return LoanCalculation{}, NewValidationError("Loan amount is too large")
	}
	if initialDeposit.GreaterThan(loanAmount) {
		return LoanCalculation{}, NewValidationError("Initial deposit cannot exceed the loan amount")
	}
	if termMonths < 1 {
		return LoanCalculation{}, NewValidationError("Loan period must be at least 1 month")
	}

	term := decimal.NewFromInt(int64(termMonths))
	remaining := loanAmount.Sub(initialDeposit)
	installment := ceilDiv(remaining, term)
	if installment.GreaterThan(MaxAmount) {
		return LoanCalculation{}, NewValidationError("Loan amount is too large")
	}

	return LoanCalculation{
		TotalLoan:          loanAmount,
		InitialDeposit:     initialDeposit,
		RemainingAmount:    remaining,
		PeriodMonths:       termMonths,
		MonthlyInstallment: installment,
		TotalPayable:       initialDeposit.Add(installment.Mul(term)),
	}, nil
}

func hasCents(d decimal.Decimal) bool {
	return d.Equal(d.Round(2))
}

// ceilDiv divides exactly and rounds the quotient up to an integer.
func ceilDiv(n, d decimal.Decimal) decimal.Decimal {
	q, r := n.QuoRem(d, 0)
	if r.IsPositive() {
		q = q.Add(decimal.NewFromInt(1))
	}
	return q
}
