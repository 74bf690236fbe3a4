package usecase

import (
	"context"
	"fmt"
	"time"

	"go.uber.org/zap"

	"github.com/Farhan-176/Mcrofinance-Loan-App/internal/application/dto"
	"github.com/Farhan-176/Mcrofinance-Loan-App/internal/domain/model"
	"github.com/Farhan-176/Mcrofinance-Loan-App/internal/domain/port"
	"github.com/Farhan-176/Mcrofinance-Loan-App/internal/domain/service"
)

// CreateLoanRequestUseCase files a new loan request for the caller.
type CreateLoanRequestUseCase struct {
	repo       port.LoanRequestRepository
	calculator *service.LoanCalculator
	publisher  port.EventPublisher
	logger     *zap.Logger
}

func NewCreateLoanRequestUseCase(
	repo port.LoanRequestRepository,
	calculator *service.LoanCalculator,
	publisher port.EventPublisher,
	logger *zap.Logger,
) *CreateLoanRequestUseCase {
	return &CreateLoanRequestUseCase{
		repo:       repo,
		calculator: calculator,
		publisher:  publisher,
		logger:     logger,
	}
}

// Execute validates the request against the catalog, computes the
// installment and stores the request in pending status.
func (uc *CreateLoanRequestUseCase) Execute(
	ctx context.Context,
	caller dto.Caller,
	req dto.CreateLoanRequestRequest,
) (dto.LoanRequestResponse, error) {
	now := time.Now().UTC()

	category, calc, err := uc.calculator.Calculate(req.Category, req.LoanAmount, req.InitialDeposit, req.LoanPeriod)
	if err != nil {
		return dto.LoanRequestResponse{}, err
	}

	lr, err := model.NewLoanRequest(caller.UserID, category, req.Subcategory, calc, req.AdditionalInfo, now)
	if err != nil {
		return dto.LoanRequestResponse{}, err
	}

	if err := uc.repo.Create(ctx, lr); err != nil {
		return dto.LoanRequestResponse{}, fmt.Errorf("create loan request: %w", err)
	}

	publishAfterCommit(ctx, uc.publisher, uc.logger, lr)
	uc.logger.Info("loan request created",
		zap.String("loan_request_id", lr.ID().String()),
		zap.String("category", lr.Category()),
	)
	return toLoanRequestResponse(lr.ClearEvents(), nil, nil), nil
}
