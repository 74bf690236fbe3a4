package usecase_test

import (
	"context"
	"testing"

	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/Farhan-176/Mcrofinance-Loan-App/internal/application/dto"
	"github.com/Farhan-176/Mcrofinance-Loan-App/internal/application/usecase"
	"github.com/Farhan-176/Mcrofinance-Loan-App/internal/domain/model"
	"github.com/Farhan-176/Mcrofinance-Loan-App/internal/domain/service"
)

func TestListCategories_Execute(t *testing.T) {
	uc := usecase.NewListCategoriesUseCase(service.NewLoanCalculator(model.DefaultCatalog()))

	categories := uc.Execute(context.Background())
	require.Len(t, categories, 4)
	assert.Equal(t, "Wedding Loans", categories[0].Name)
	require.NotNil(t, categories[0].MaxAmount)
	assert.True(t, categories[0].MaxAmount.Equal(decimal.NewFromInt(500_000)))
	assert.Equal(t, 3, categories[0].PeriodYears)
	assert.Nil(t, categories[3].MaxAmount)
}

func TestCalculateLoan_Execute(t *testing.T) {
	uc := usecase.NewCalculateLoanUseCase(service.NewLoanCalculator(model.DefaultCatalog()))

	t.Run("returns the breakdown", func(t *testing.T) {
		resp, err := uc.Execute(context.Background(), dto.CalculateLoanRequest{
			Category:       "Business Startup Loans",
			LoanAmount:     decimal.NewFromInt(100_000),
			InitialDeposit: decimal.NewFromInt(10_000),
			PeriodMonths:   12,
		})
		require.NoError(t, err)
		assert.True(t, resp.MonthlyInstallment.Equal(decimal.NewFromInt(7_500)))
		assert.True(t, resp.TotalPayable.Equal(decimal.NewFromInt(100_000)))
		assert.True(t, resp.RemainingAmount.Equal(decimal.NewFromInt(90_000)))
	})

	t.Run("rejects a wedding loan above its limit", func(t *testing.T) {
		_, err := uc.Execute(context.Background(), dto.CalculateLoanRequest{
			Category:     "Wedding Loans",
			LoanAmount:   decimal.NewFromInt(600_000),
			PeriodMonths: 12,
		})
		require.Error(t, err)
		assert.ErrorIs(t, err, model.ErrValidation)
		assert.Equal(t, "Loan amount exceeds maximum limit of PKR 500000", err.Error())
	})
}
