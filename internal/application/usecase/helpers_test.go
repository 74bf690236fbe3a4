package usecase_test

import (
	"testing"
	"time"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/require"

	"github.com/Farhan-176/Mcrofinance-Loan-App/internal/domain/model"
	"github.com/Farhan-176/Mcrofinance-Loan-App/internal/domain/valueobject"
)

func existingRequest(t *testing.T, owner uuid.UUID) model.LoanRequest {
	t.Helper()
	category, err := model.DefaultCatalog().Lookup("Wedding Loans")
	require.NoError(t, err)
	calc, err := model.CalculateLoan(decimal.NewFromInt(120_000), decimal.NewFromInt(20_000), 10)
	require.NoError(t, err)
	lr, err := model.NewLoanRequest(owner, category, "Jahez", calc, "", time.Now().UTC().Add(-time.Hour))
	require.NoError(t, err)
	return lr.ClearEvents()
}

func tokenedRequest(t *testing.T, owner uuid.UUID) model.LoanRequest {
	t.Helper()
	lr := existingRequest(t, owner)
	lr, err := lr.AssignToken(mustToken(t, 9), valueobject.AppointmentUpdate{}, nil, time.Now().UTC())
	require.NoError(t, err)
	return lr.ClearEvents()
}

func mustToken(t *testing.T, n int) valueobject.TokenNumber {
	t.Helper()
	tok, err := valueobject.NewTokenNumber(time.UnixMilli(1_700_000_000_000+int64(n)), n)
	require.NoError(t, err)
	return tok
}

func strPtr(s string) *string { return &s }
