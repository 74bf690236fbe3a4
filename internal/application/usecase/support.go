package usecase

import (
	"context"
	"errors"
	"fmt"

	"github.com/google/uuid"
	"go.uber.org/zap"

	"github.com/Farhan-176/Mcrofinance-Loan-App/internal/application/dto"
	"github.com/Farhan-176/Mcrofinance-Loan-App/internal/domain/model"
	"github.com/Farhan-176/Mcrofinance-Loan-App/internal/domain/port"
)

// publishAfterCommit sends the aggregate's events once the state change is
// durable. Failures are logged and swallowed; the caller's request succeeded.
func publishAfterCommit(ctx context.Context, publisher port.EventPublisher, logger *zap.Logger, lr model.LoanRequest) {
	evts := lr.DomainEvents()
	if len(evts) == 0 {
		return
	}
	if err := publisher.Publish(ctx, evts...); err != nil {
		logger.Warn("publish domain events",
			zap.String("loan_request_id", lr.ID().String()),
			zap.Int("events", len(evts)),
			zap.Error(err),
		)
	}
}

// MaxStaleRetries bounds how often a write that lost a version race is
// reapplied to a freshly loaded copy.
const MaxStaleRetries = 3

// saveWithRetry applies change to lr and stores the result with save. When a
// concurrent write moved the stored version on, the request is reloaded and
// change runs again; after MaxStaleRetries losses model.ErrConflict is
// returned.
func saveWithRetry(
	ctx context.Context,
	repo port.LoanRequestRepository,
	lr model.LoanRequest,
	change func(model.LoanRequest) (model.LoanRequest, error),
	save func(context.Context, model.LoanRequest) error,
) (model.LoanRequest, error) {
	for attempt := 1; ; attempt++ {
		next, err := change(lr)
		if err != nil {
			return model.LoanRequest{}, err
		}
		err = save(ctx, next)
		if err == nil {
			return next, nil
		}
		if !errors.Is(err, port.ErrStaleVersion) {
			return model.LoanRequest{}, err
		}
		if attempt >= MaxStaleRetries {
			return model.LoanRequest{}, fmt.Errorf("%w: %w", model.ErrConflict, err)
		}
		if lr, err = loadRequest(ctx, repo, lr.ID(), "Loan request not found"); err != nil {
			return model.LoanRequest{}, err
		}
	}
}

// loadRequest fetches a loan request and rewrites a missing row into the
// caller-facing message.
func loadRequest(ctx context.Context, repo port.LoanRequestRepository, id uuid.UUID, notFound string) (model.LoanRequest, error) {
	lr, err := repo.FindByID(ctx, id)
	if err != nil {
		if isNotFound(err) {
			return model.LoanRequest{}, model.NewNotFoundError(notFound)
		}
		return model.LoanRequest{}, fmt.Errorf("find loan request: %w", err)
	}
	return lr, nil
}

// detailLoader assembles request responses with applicant and guarantors.
type detailLoader struct {
	applicants port.ApplicantDirectory
	guarantors port.GuarantorRepository
}

func (d detailLoader) one(ctx context.Context, lr model.LoanRequest) (dto.LoanRequestResponse, error) {
	applicant, err := d.applicants.FindByID(ctx, lr.ApplicantID())
	if err != nil && !errors.Is(err, model.ErrNotFound) {
		return dto.LoanRequestResponse{}, fmt.Errorf("find applicant: %w", err)
	}
	guarantors, err := d.guarantors.FindByIDs(ctx, lr.GuarantorIDs())
	if err != nil {
		return dto.LoanRequestResponse{}, fmt.Errorf("find guarantors: %w", err)
	}
	var ap *model.Applicant
	if applicant.ID != uuid.Nil {
		ap = &applicant
	}
	return toLoanRequestResponse(lr, ap, guarantors), nil
}

// many loads details for a batch with two lookups instead of one per row.
func (d detailLoader) many(ctx context.Context, lrs []model.LoanRequest, withApplicant bool) ([]dto.LoanRequestResponse, map[uuid.UUID]model.Applicant, error) {
	var applicantIDs, guarantorIDs []uuid.UUID
	for _, lr := range lrs {
		applicantIDs = append(applicantIDs, lr.ApplicantID())
		guarantorIDs = append(guarantorIDs, lr.GuarantorIDs()...)
	}

	var applicants map[uuid.UUID]model.Applicant
	if withApplicant && len(applicantIDs) > 0 {
		var err error
		applicants, err = d.applicants.FindByIDs(ctx, applicantIDs)
		if err != nil {
			return nil, nil, fmt.Errorf("find applicants: %w", err)
		}
	}

	byID := make(map[uuid.UUID]model.Guarantor)
	if len(guarantorIDs) > 0 {
		gs, err := d.guarantors.FindByIDs(ctx, guarantorIDs)
		if err != nil {
			return nil, nil, fmt.Errorf("find guarantors: %w", err)
		}
		for _, g := range gs {
			byID[g.ID()] = g
		}
	}

	out := make([]dto.LoanRequestResponse, 0, len(lrs))
	for _, lr := range lrs {
		var gs []model.Guarantor
		for _, id := range lr.GuarantorIDs() {
			if g, ok := byID[id]; ok {
				gs = append(gs, g)
			}
		}
		var ap *model.Applicant
		if a, ok := applicants[lr.ApplicantID()]; ok {
			ap = &a
		}
		out = append(out, toLoanRequestResponse(lr, ap, gs))
	}
	return out, applicants, nil
}

func isNotFound(err error) bool { return errors.Is(err, model.ErrNotFound) }
