package service_test

import (
	"testing"

	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/Farhan-176/Mcrofinance-Loan-App/internal/domain/model"
	"github.com/Farhan-176/Mcrofinance-Loan-App/internal/domain/service"
)

func TestLoanCalculator_Calculate(t *testing.T) {
	calc := service.NewLoanCalculator(model.DefaultCatalog())

	cat, res, err := calc.Calculate("Home Construction Loans", decimal.NewFromInt(100_000), decimal.NewFromInt(10_000), 12)
	require.NoError(t, err)
	assert.Equal(t, "Home Construction Loans", cat.Name())
	assert.True(t, res.MonthlyInstallment.Equal(decimal.NewFromInt(7_500)))
	assert.True(t, res.TotalPayable.Equal(decimal.NewFromInt(100_000)))
}

func TestLoanCalculator_Rejections(t *testing.T) {
	calc := service.NewLoanCalculator(model.DefaultCatalog())

	tests := []struct {
		name     string
		category string
		amount   int64
		deposit  int64
		term     int
		msg      string
	}{
		{"unknown category", "Car Loans", 1000, 0, 12, "Invalid loan category"},
		{"wedding above limit", "Wedding Loans", 600_000, 0, 12, "Loan amount exceeds maximum limit of PKR 500000"},
		{"term above limit", "Wedding Loans", 100_000, 0, 37, "Loan period exceeds maximum of 36 months"},
		{"deposit above amount", "Education Loans", 100, 200, 12, "Initial deposit cannot exceed the loan amount"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			_, _, err := calc.Calculate(tt.category, decimal.NewFromInt(tt.amount), decimal.NewFromInt(tt.deposit), tt.term)
			require.Error(t, err)
			assert.ErrorIs(t, err, model.ErrValidation)
			assert.Equal(t, tt.msg, err.Error())
		})
	}
}
