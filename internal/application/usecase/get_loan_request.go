package usecase

import (
	"context"
	"fmt"

	"github.com/google/uuid"

	"github.com/Farhan-176/Mcrofinance-Loan-App/internal/application/dto"
	"github.com/Farhan-176/Mcrofinance-Loan-App/internal/domain/model"
	"github.com/Farhan-176/Mcrofinance-Loan-App/internal/domain/port"
	"github.com/Farhan-176/Mcrofinance-Loan-App/internal/domain/valueobject"
)

// GetLoanRequestUseCase returns one request to its owner or an administrator.
type GetLoanRequestUseCase struct {
	repo   port.LoanRequestRepository
	loader detailLoader
}

func NewGetLoanRequestUseCase(
	repo port.LoanRequestRepository,
	applicants port.ApplicantDirectory,
	guarantors port.GuarantorRepository,
) *GetLoanRequestUseCase {
	return &GetLoanRequestUseCase{
		repo:   repo,
		loader: detailLoader{applicants: applicants, guarantors: guarantors},
	}
}

// Execute loads the request with its applicant and guarantors.
func (uc *GetLoanRequestUseCase) Execute(ctx context.Context, caller dto.Caller, id uuid.UUID) (dto.LoanRequestResponse, error) {
	lr, err := loadRequest(ctx, uc.repo, id, "Loan request not found")
	if err != nil {
		return dto.LoanRequestResponse{}, err
	}
	if !lr.VisibleTo(caller.UserID, caller.IsAdmin) {
		return dto.LoanRequestResponse{}, model.ErrForbidden
	}
	return uc.loader.one(ctx, lr)
}

// ListMyRequestsUseCase returns the caller's own requests, newest first.
type ListMyRequestsUseCase struct {
	repo   port.LoanRequestRepository
	loader detailLoader
}

func NewListMyRequestsUseCase(
	repo port.LoanRequestRepository,
	applicants port.ApplicantDirectory,
	guarantors port.GuarantorRepository,
) *ListMyRequestsUseCase {
	return &ListMyRequestsUseCase{
		repo:   repo,
		loader: detailLoader{applicants: applicants, guarantors: guarantors},
	}
}

// Execute lists the caller's requests with guarantors. Each id appears once.
func (uc *ListMyRequestsUseCase) Execute(ctx context.Context, caller dto.Caller) ([]dto.LoanRequestResponse, error) {
	lrs, err := uc.repo.FindByApplicant(ctx, caller.UserID)
	if err != nil {
		return nil, fmt.Errorf("find loan requests: %w", err)
	}

	seen := make(map[uuid.UUID]struct{}, len(lrs))
	unique := lrs[:0:0]
	for _, lr := range lrs {
		if _, dup := seen[lr.ID()]; dup {
			continue
		}
		seen[lr.ID()] = struct{}{}
		unique = append(unique, lr)
	}

	out, _, err := uc.loader.many(ctx, unique, false)
	return out, err
}

// LookupByTokenUseCase finds a request by its token for the office desk.
type LookupByTokenUseCase struct {
	repo   port.LoanRequestRepository
	loader detailLoader
}

func NewLookupByTokenUseCase(
	repo port.LoanRequestRepository,
	applicants port.ApplicantDirectory,
	guarantors port.GuarantorRepository,
) *LookupByTokenUseCase {
	return &LookupByTokenUseCase{
		repo:   repo,
		loader: detailLoader{applicants: applicants, guarantors: guarantors},
	}
}

// Execute returns the request carrying token. Malformed tokens are reported
// as not found since no request can carry them.
func (uc *LookupByTokenUseCase) Execute(ctx context.Context, token string) (dto.LoanRequestResponse, error) {
	notFound := model.NewNotFoundError("Application not found")

	tok, err := valueobject.ParseTokenNumber(token)
	if err != nil {
		return dto.LoanRequestResponse{}, notFound
	}
	lr, err := uc.repo.FindByToken(ctx, tok)
	if err != nil {
		if isNotFound(err) {
			return dto.LoanRequestResponse{}, notFound
		}
		return dto.LoanRequestResponse{}, fmt.Errorf("find by token: %w", err)
	}
	return uc.loader.one(ctx, lr)
}
