package service

import (
	"github.com/shopspring/decimal"

	"github.com/Farhan-176/Mcrofinance-Loan-App/internal/domain/model"
)

// ---------------------------------------------------------------------------
// LoanCalculator – catalog-aware calculation
// ---------------------------------------------------------------------------

// LoanCalculator validates input against the category catalog before
// computing the repayment breakdown.
type LoanCalculator struct {
	catalog model.Catalog
}

// NewLoanCalculator returns a calculator over catalog.
func NewLoanCalculator(catalog model.Catalog) *LoanCalculator {
	return &LoanCalculator{catalog: catalog}
}

// Catalog returns the catalog the calculator validates against.
func (c *LoanCalculator) Catalog() model.Catalog { return c.catalog }

// Calculate looks up the category, enforces its amount and term limits and
// returns the category together with the calculation.
func (c *LoanCalculator) Calculate(
	category string,
	amount, deposit decimal.Decimal,
	termMonths int,
) (model.LoanCategory, model.LoanCalculation, error) {
	cat, err := c.catalog.Lookup(category)
	if err != nil {
		return model.LoanCategory{}, model.LoanCalculation{}, err
	}
	if err := cat.ValidateAmount(amount); err != nil {
		return model.LoanCategory{}, model.LoanCalculation{}, err
	}
	if err := cat.ValidateTerm(termMonths); err != nil {
		return model.LoanCategory{}, model.LoanCalculation{}, err
	}
	calc, err := model.CalculateLoan(amount, deposit, termMonths)
	if err != nil {
		return model.LoanCategory{}, model.LoanCalculation{}, err
	}
	return cat, calc, nil
}
