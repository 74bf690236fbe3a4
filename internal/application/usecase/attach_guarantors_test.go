package usecase_test

import (
	"context"
	"testing"

	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap/zaptest"

	"github.com/Farhan-176/Mcrofinance-Loan-App/internal/application/dto"
	"github.com/Farhan-176/Mcrofinance-Loan-App/internal/application/usecase"
	"github.com/Farhan-176/Mcrofinance-Loan-App/internal/domain/model"
)

func guarantorInput(name string) dto.GuarantorInput {
	return dto.GuarantorInput{
		Name:        name,
		Email:       " " + name + "@Example.com",
		CNIC:        "42101-0000000-1",
		Location:    "Karachi",
		PhoneNumber: "03000000000",
	}
}

func TestAttachGuarantors_Execute(t *testing.T) {
	owner := uuid.New()

	t.Run("wrong count fails before any lookup", func(t *testing.T) {
		for _, n := range []int{0, 1, 3} {
			repo := &mockLoanRequestRepository{}
			uc := usecase.NewAttachGuarantorsUseCase(repo, &mockEventPublisher{}, zaptest.NewLogger(t))

			req := dto.AttachGuarantorsRequest{}
			for i := 0; i < n; i++ {
				req.Guarantors = append(req.Guarantors, guarantorInput("g"))
			}

			_, err := uc.Execute(context.Background(), dto.Caller{UserID: owner}, uuid.New(), req)
			require.Error(t, err)
			assert.Equal(t, "Exactly two guarantors are required", err.Error())
			assert.Zero(t, repo.findByIDCalled)
			assert.Empty(t, repo.attached)
		}
	})

	t.Run("unknown request", func(t *testing.T) {
		repo := &mockLoanRequestRepository{}
		uc := usecase.NewAttachGuarantorsUseCase(repo, &mockEventPublisher{}, zaptest.NewLogger(t))

		_, err := uc.Execute(context.Background(), dto.Caller{UserID: owner}, uuid.New(), dto.AttachGuarantorsRequest{
			Guarantors: []dto.GuarantorInput{guarantorInput("a"), guarantorInput("b")},
		})
		require.ErrorIs(t, err, model.ErrNotFound)
		assert.Equal(t, "Loan request not found", err.Error())
	})

	t.Run("non-owner is forbidden", func(t *testing.T) {
		lr := existingRequest(t, owner)
		repo := &mockLoanRequestRepository{
			findByIDFunc: func(context.Context, uuid.UUID) (model.LoanRequest, error) { return lr, nil },
		}
		uc := usecase.NewAttachGuarantorsUseCase(repo, &mockEventPublisher{}, zaptest.NewLogger(t))

		_, err := uc.Execute(context.Background(), dto.Caller{UserID: uuid.New(), IsAdmin: true}, lr.ID(), dto.AttachGuarantorsRequest{
			Guarantors: []dto.GuarantorInput{guarantorInput("a"), guarantorInput("b")},
		})
		require.ErrorIs(t, err, model.ErrForbidden)
		assert.Empty(t, repo.attached)
	})

	t.Run("attaching twice replaces the list and keeps creating records", func(t *testing.T) {
		lr := existingRequest(t, owner)
		repo := &mockLoanRequestRepository{}
		repo.findByIDFunc = func(context.Context, uuid.UUID) (model.LoanRequest, error) {
			if n := len(repo.attached); n > 0 {
				return repo.attached[n-1].ClearEvents(), nil
			}
			return lr, nil
		}
		publisher := &mockEventPublisher{}
		uc := usecase.NewAttachGuarantorsUseCase(repo, publisher, zaptest.NewLogger(t))
		req := dto.AttachGuarantorsRequest{
			Guarantors: []dto.GuarantorInput{guarantorInput("first"), guarantorInput("second")},
		}

		resp1, err := uc.Execute(context.Background(), dto.Caller{UserID: owner}, lr.ID(), req)
		require.NoError(t, err)
		resp2, err := uc.Execute(context.Background(), dto.Caller{UserID: owner}, lr.ID(), req)
		require.NoError(t, err)

		require.Len(t, resp1.GuarantorIDs, 2)
		require.Len(t, resp2.GuarantorIDs, 2)
		assert.NotEqual(t, resp1.GuarantorIDs, resp2.GuarantorIDs)
		require.Len(t, resp2.Guarantors, 2)
		assert.Equal(t, "first", resp2.Guarantors[0].Name)
		assert.Equal(t, "first@example.com", resp2.Guarantors[0].Email)
		assert.Equal(t, resp2.GuarantorIDs[0], resp2.Guarantors[0].ID)

		var records int
		for _, gs := range repo.attachedGuars {
			records += len(gs)
		}
		assert.Equal(t, 4, records)
		require.Len(t, publisher.publishedEvents, 2)
		assert.NotEqual(t, publisher.publishedEvents[0].EventID(), publisher.publishedEvents[1].EventID())
	})
}
