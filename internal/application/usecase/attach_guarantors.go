package usecase

import (
	"context"
	"fmt"
	"time"

	"github.com/google/uuid"
	"go.uber.org/zap"

	"github.com/Farhan-176/Mcrofinance-Loan-App/internal/application/dto"
	"github.com/Farhan-176/Mcrofinance-Loan-App/internal/domain/model"
	"github.com/Farhan-176/Mcrofinance-Loan-App/internal/domain/port"
)

// AttachGuarantorsUseCase links a guarantor pair to the caller's request.
type AttachGuarantorsUseCase struct {
	repo      port.LoanRequestRepository
	publisher port.EventPublisher
	logger    *zap.Logger
}

func NewAttachGuarantorsUseCase(
	repo port.LoanRequestRepository,
	publisher port.EventPublisher,
	logger *zap.Logger,
) *AttachGuarantorsUseCase {
	return &AttachGuarantorsUseCase{repo: repo, publisher: publisher, logger: logger}
}

// Execute stores two new guarantor records and replaces the request's
// guarantor list with them, in one transaction. Earlier records are kept.
func (uc *AttachGuarantorsUseCase) Execute(
	ctx context.Context,
	caller dto.Caller,
	loanRequestID uuid.UUID,
	req dto.AttachGuarantorsRequest,
) (dto.LoanRequestResponse, error) {
	if len(req.Guarantors) != model.RequiredGuarantors {
		return dto.LoanRequestResponse{}, model.NewValidationError("Exactly two guarantors are required")
	}

	lr, err := loadRequest(ctx, uc.repo, loanRequestID, "Loan request not found")
	if err != nil {
		return dto.LoanRequestResponse{}, err
	}
	if !lr.IsOwnedBy(caller.UserID) {
		return dto.LoanRequestResponse{}, model.ErrForbidden
	}

	now := time.Now().UTC()
	details := make([]model.GuarantorDetails, len(req.Guarantors))
	for i, g := range req.Guarantors {
		details[i] = model.GuarantorDetails{
			Name:     g.Name,
			Email:    g.Email,
			CNIC:     g.CNIC,
			Location: g.Location,
			Phone:    g.PhoneNumber,
		}
	}
	pair, err := model.NewGuarantorPair(lr.ID(), details, now)
	if err != nil {
		return dto.LoanRequestResponse{}, err
	}

	lr, err = saveWithRetry(ctx, uc.repo, lr,
		func(lr model.LoanRequest) (model.LoanRequest, error) {
			return lr.ReplaceGuarantors(model.GuarantorIDs(pair), now)
		},
		func(ctx context.Context, lr model.LoanRequest) error {
			if err := uc.repo.AttachGuarantors(ctx, lr, pair); err != nil {
				return fmt.Errorf("attach guarantors: %w", err)
			}
			return nil
		},
	)
	if err != nil {
		return dto.LoanRequestResponse{}, err
	}

	publishAfterCommit(ctx, uc.publisher, uc.logger, lr)
	return toLoanRequestResponse(lr.ClearEvents(), nil, pair), nil
}
