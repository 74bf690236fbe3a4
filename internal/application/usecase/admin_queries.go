package usecase

import (
	"context"
	"fmt"

	"github.com/Farhan-176/Mcrofinance-Loan-App/internal/application/dto"
	"github.com/Farhan-176/Mcrofinance-Loan-App/internal/domain/model"
	"github.com/Farhan-176/Mcrofinance-Loan-App/internal/domain/port"
	"github.com/Farhan-176/Mcrofinance-Loan-App/internal/domain/valueobject"
)

// ListApplicationsUseCase lists every request for administrators.
type ListApplicationsUseCase struct {
	repo   port.LoanRequestRepository
	loader detailLoader
}

func NewListApplicationsUseCase(
	repo port.LoanRequestRepository,
	applicants port.ApplicantDirectory,
	guarantors port.GuarantorRepository,
) *ListApplicationsUseCase {
	return &ListApplicationsUseCase{
		repo:   repo,
		loader: detailLoader{applicants: applicants, guarantors: guarantors},
	}
}

// Execute filters by status in storage and by applicant city and country
// afterwards, ignoring case.
func (uc *ListApplicationsUseCase) Execute(ctx context.Context, req dto.ListApplicationsRequest) ([]dto.LoanRequestResponse, error) {
	var filter port.LoanRequestFilter
	if req.Status != "" {
		status, err := valueobject.NewLoanStatus(req.Status)
		if err != nil {
			return nil, model.NewValidationError("Invalid status")
		}
		filter.Status = status
	}

	lrs, err := uc.repo.List(ctx, filter)
	if err != nil {
		return nil, fmt.Errorf("list loan requests: %w", err)
	}

	out, applicants, err := uc.loader.many(ctx, lrs, true)
	if err != nil {
		return nil, err
	}
	if req.City == "" && req.Country == "" {
		return out, nil
	}

	filtered := out[:0]
	for _, item := range out {
		a, ok := applicants[item.ApplicantID]
		if ok && a.LocatedIn(req.City, req.Country) {
			filtered = append(filtered, item)
		}
	}
	return filtered, nil
}

// ApplicationStatsUseCase summarises all requests.
type ApplicationStatsUseCase struct {
	repo port.LoanRequestRepository
}

func NewApplicationStatsUseCase(repo port.LoanRequestRepository) *ApplicationStatsUseCase {
	return &ApplicationStatsUseCase{repo: repo}
}

// Execute aggregates counts and amounts per status.
func (uc *ApplicationStatsUseCase) Execute(ctx context.Context) (dto.ApplicationStatsResponse, error) {
	totals, err := uc.repo.StatusTotals(ctx)
	if err != nil {
		return dto.ApplicationStatsResponse{}, fmt.Errorf("aggregate loan requests: %w", err)
	}
	s := model.NewApplicationStats(totals)
	return dto.ApplicationStatsResponse{
		TotalApplications:       s.TotalApplications,
		PendingApplications:     s.Pending,
		UnderReviewApplications: s.UnderReview,
		ApprovedApplications:    s.Approved,
		RejectedApplications:    s.Rejected,
		CompletedApplications:   s.Completed,
		TotalLoanAmount:         s.TotalLoanAmount,
	}, nil
}
