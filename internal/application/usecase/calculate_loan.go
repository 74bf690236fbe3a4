package usecase

import (
	"context"

	"github.com/Farhan-176/Mcrofinance-Loan-App/internal/application/dto"
	"github.com/Farhan-176/Mcrofinance-Loan-App/internal/domain/service"
)

// ListCategoriesUseCase returns the loan product catalog.
type ListCategoriesUseCase struct {
	calculator *service.LoanCalculator
}

func NewListCategoriesUseCase(calculator *service.LoanCalculator) *ListCategoriesUseCase {
	return &ListCategoriesUseCase{calculator: calculator}
}

// Execute lists the categories in catalog order.
func (uc *ListCategoriesUseCase) Execute(_ context.Context) []dto.LoanCategoryResponse {
	categories := uc.calculator.Catalog().Categories()
	out := make([]dto.LoanCategoryResponse, 0, len(categories))
	for _, c := range categories {
		item := dto.LoanCategoryResponse{
			Name:          c.Name(),
			Subcategories: c.Subcategories(),
			PeriodYears:   c.PeriodYears(),
			MaxTermMonths: c.MaxTermMonths(),
		}
		if limit, ok := c.MaxAmount(); ok {
			item.MaxAmount = &limit
		}
		out = append(out, item)
	}
	return out
}

// CalculateLoanUseCase produces a repayment estimate without persisting anything.
type CalculateLoanUseCase struct {
	calculator *service.LoanCalculator
}

func NewCalculateLoanUseCase(calculator *service.LoanCalculator) *CalculateLoanUseCase {
	return &CalculateLoanUseCase{calculator: calculator}
}

// Execute validates the input against the catalog and computes the breakdown.
func (uc *CalculateLoanUseCase) Execute(_ context.Context, req dto.CalculateLoanRequest) (dto.LoanCalculationResponse, error) {
	_, calc, err := uc.calculator.Calculate(req.Category, req.LoanAmount, req.InitialDeposit, req.PeriodMonths)
	if err != nil {
		return dto.LoanCalculationResponse{}, err
	}
	return toCalculationResponse(calc), nil
}
