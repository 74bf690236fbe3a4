package usecase_test

import (
	"context"
	"encoding/json"
	"testing"
	"time"

	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap/zaptest"

	"github.com/Farhan-176/Mcrofinance-Loan-App/internal/application/dto"
	"github.com/Farhan-176/Mcrofinance-Loan-App/internal/application/usecase"
	"github.com/Farhan-176/Mcrofinance-Loan-App/internal/domain/model"
	"github.com/Farhan-176/Mcrofinance-Loan-App/internal/domain/valueobject"
)

func TestGenerateSlip_Execute(t *testing.T) {
	owner := uuid.New()
	applicants := &mockApplicantDirectory{applicants: map[uuid.UUID]model.Applicant{
		owner: {ID: owner, Name: "Hina", CNIC: "42101-2222222-2"},
	}}

	t.Run("without a token no QR code is produced", func(t *testing.T) {
		lr := existingRequest(t, owner)
		repo := &mockLoanRequestRepository{
			findByIDFunc: func(context.Context, uuid.UUID) (model.LoanRequest, error) { return lr, nil },
		}
		encoder := &mockQRCodeEncoder{}
		uc := usecase.NewGenerateSlipUseCase(repo, applicants, encoder, &mockSlipCache{}, zaptest.NewLogger(t))

		_, err := uc.Execute(context.Background(), dto.Caller{UserID: owner}, lr.ID())
		require.ErrorIs(t, err, model.ErrTokenNotAssigned)
		assert.Equal(t, "Token number not assigned yet. Please wait for admin approval.", err.Error())
		assert.Zero(t, encoder.calls)
	})

	t.Run("renders and caches the slip", func(t *testing.T) {
		lr := tokenedRequest(t, owner)
		repo := &mockLoanRequestRepository{
			findByIDFunc: func(context.Context, uuid.UUID) (model.LoanRequest, error) { return lr, nil },
		}
		encoder := &mockQRCodeEncoder{}
		cache := &mockSlipCache{}
		uc := usecase.NewGenerateSlipUseCase(repo, applicants, encoder, cache, zaptest.NewLogger(t))

		slip, err := uc.Execute(context.Background(), dto.Caller{UserID: owner}, lr.ID())
		require.NoError(t, err)
		assert.Equal(t, lr.TokenNumber().String(), slip.TokenNumber)
		assert.Equal(t, "Hina", slip.ApplicantName)
		assert.Equal(t, "data:image/png;base64,QR", slip.QRCode)

		require.Len(t, encoder.payloads, 1)
		var payload map[string]any
		require.NoError(t, json.Unmarshal(encoder.payloads[0], &payload))
		assert.Equal(t, slip.TokenNumber, payload["tokenNumber"])
		assert.Equal(t, "42101-2222222-2", payload["cnic"])

		again, err := uc.Execute(context.Background(), dto.Caller{UserID: uuid.New(), IsAdmin: true}, lr.ID())
		require.NoError(t, err)
		assert.Equal(t, slip, again)
		assert.Equal(t, 1, encoder.calls)
	})

	t.Run("slip cached before a later change is rendered again", func(t *testing.T) {
		lr := tokenedRequest(t, owner)
		repo := &mockLoanRequestRepository{
			findByIDFunc: func(context.Context, uuid.UUID) (model.LoanRequest, error) { return lr, nil },
		}
		encoder := &mockQRCodeEncoder{}
		cache := &mockSlipCache{}
		uc := usecase.NewGenerateSlipUseCase(repo, applicants, encoder, cache, zaptest.NewLogger(t))

		_, err := uc.Execute(context.Background(), dto.Caller{UserID: owner}, lr.ID())
		require.NoError(t, err)

		// The cached slip predates the new appointment.
		lr, err = lr.AssignToken(valueobject.TokenNumber{}, valueobject.AppointmentUpdate{OfficeLocation: strPtr("Gulshan")},
			nil, lr.UpdatedAt().Add(time.Minute))
		require.NoError(t, err)

		slip, err := uc.Execute(context.Background(), dto.Caller{UserID: owner}, lr.ID())
		require.NoError(t, err)
		assert.Equal(t, "Gulshan", slip.OfficeLocation)
		assert.Equal(t, lr.TokenNumber().String(), slip.TokenNumber)
		assert.Equal(t, 2, encoder.calls)
	})

	t.Run("stranger is forbidden", func(t *testing.T) {
		lr := tokenedRequest(t, owner)
		repo := &mockLoanRequestRepository{
			findByIDFunc: func(context.Context, uuid.UUID) (model.LoanRequest, error) { return lr, nil },
		}
		uc := usecase.NewGenerateSlipUseCase(repo, applicants, &mockQRCodeEncoder{}, &mockSlipCache{}, zaptest.NewLogger(t))

		_, err := uc.Execute(context.Background(), dto.Caller{UserID: uuid.New()}, lr.ID())
		assert.ErrorIs(t, err, model.ErrForbidden)
	})
}
