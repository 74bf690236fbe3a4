package usecase

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/google/uuid"
	"go.uber.org/zap"

	"github.com/Farhan-176/Mcrofinance-Loan-App/internal/application/dto"
	"github.com/Farhan-176/Mcrofinance-Loan-App/internal/domain/model"
	"github.com/Farhan-176/Mcrofinance-Loan-App/internal/domain/port"
	"github.com/Farhan-176/Mcrofinance-Loan-App/internal/domain/valueobject"
)

// MaxTokenAttempts bounds how often a colliding token is regenerated.
const MaxTokenAttempts = 3

// UpdateStatusUseCase overwrites the status of a request.
type UpdateStatusUseCase struct {
	repo      port.LoanRequestRepository
	publisher port.EventPublisher
	logger    *zap.Logger
}

func NewUpdateStatusUseCase(
	repo port.LoanRequestRepository,
	publisher port.EventPublisher,
	logger *zap.Logger,
) *UpdateStatusUseCase {
	return &UpdateStatusUseCase{repo: repo, publisher: publisher, logger: logger}
}

// Execute applies any valid status regardless of the current one.
func (uc *UpdateStatusUseCase) Execute(ctx context.Context, id uuid.UUID, req dto.UpdateStatusRequest) (dto.LoanRequestResponse, error) {
	status, err := valueobject.NewLoanStatus(req.Status)
	if err != nil {
		return dto.LoanRequestResponse{}, model.NewValidationError("Invalid status")
	}

	lr, err := loadRequest(ctx, uc.repo, id, "Loan request not found")
	if err != nil {
		return dto.LoanRequestResponse{}, err
	}

	lr, err = saveWithRetry(ctx, uc.repo, lr,
		func(lr model.LoanRequest) (model.LoanRequest, error) {
			return lr.ChangeStatus(status, time.Now().UTC())
		},
		uc.save,
	)
	if err != nil {
		return dto.LoanRequestResponse{}, err
	}

	publishAfterCommit(ctx, uc.publisher, uc.logger, lr)
	uc.logger.Info("loan request status changed",
		zap.String("loan_request_id", lr.ID().String()),
		zap.String("status", status.String()),
	)
	return toLoanRequestResponse(lr.ClearEvents(), nil, nil), nil
}

func (uc *UpdateStatusUseCase) save(ctx context.Context, lr model.LoanRequest) error {
	if err := uc.repo.Update(ctx, lr); err != nil {
		return fmt.Errorf("update loan request: %w", err)
	}
	return nil
}

// AssignTokenUseCase issues a token and books the office appointment.
type AssignTokenUseCase struct {
	repo      port.LoanRequestRepository
	issuer    port.TokenIssuer
	cache     port.SlipCache
	publisher port.EventPublisher
	logger    *zap.Logger
}

func NewAssignTokenUseCase(
	repo port.LoanRequestRepository,
	issuer port.TokenIssuer,
	cache port.SlipCache,
	publisher port.EventPublisher,
	logger *zap.Logger,
) *AssignTokenUseCase {
	return &AssignTokenUseCase{
		repo:      repo,
		issuer:    issuer,
		cache:     cache,
		publisher: publisher,
		logger:    logger,
	}
}

// Execute keeps an existing token, applies the provided appointment fields
// and the optional status. A fresh token that collides with another request
// is regenerated up to MaxTokenAttempts times; a lost version race reloads
// the request up to MaxStaleRetries times.
func (uc *AssignTokenUseCase) Execute(ctx context.Context, id uuid.UUID, req dto.AssignTokenRequest) (dto.LoanRequestResponse, error) {
	appointment, err := appointmentUpdate(req)
	if err != nil {
		return dto.LoanRequestResponse{}, err
	}
	var status *valueobject.LoanStatus
	if req.Status != nil && *req.Status != "" {
		s, err := valueobject.NewLoanStatus(*req.Status)
		if err != nil {
			return dto.LoanRequestResponse{}, model.NewValidationError("Invalid status")
		}
		status = &s
	}

	current, err := loadRequest(ctx, uc.repo, id, "Loan request not found")
	if err != nil {
		return dto.LoanRequestResponse{}, err
	}

	var (
		updated       model.LoanRequest
		tokenAttempts int
		staleAttempts int
	)
	for {
		var token valueobject.TokenNumber
		if !current.HasToken() {
			if token, err = uc.issuer.Issue(); err != nil {
				return dto.LoanRequestResponse{}, fmt.Errorf("issue token: %w", err)
			}
			tokenAttempts++
		}

		updated, err = current.AssignToken(token, appointment, status, time.Now().UTC())
		if err != nil {
			return dto.LoanRequestResponse{}, err
		}

		err = uc.repo.Update(ctx, updated)
		switch {
		case err == nil:
		case errors.Is(err, port.ErrStaleVersion):
			staleAttempts++
			if staleAttempts >= MaxStaleRetries {
				return dto.LoanRequestResponse{}, fmt.Errorf("%w: %w", model.ErrConflict, err)
			}
			if current, err = loadRequest(ctx, uc.repo, id, "Loan request not found"); err != nil {
				return dto.LoanRequestResponse{}, err
			}
			continue
		case errors.Is(err, model.ErrDuplicateToken) && !current.HasToken():
			uc.logger.Warn("token collision",
				zap.String("loan_request_id", id.String()),
				zap.String("token", token.String()),
				zap.Int("attempt", tokenAttempts),
			)
			if tokenAttempts >= MaxTokenAttempts {
				return dto.LoanRequestResponse{}, fmt.Errorf("assign token after %d attempts: %w", tokenAttempts, model.ErrDuplicateToken)
			}
			continue
		default:
			return dto.LoanRequestResponse{}, fmt.Errorf("update loan request: %w", err)
		}
		break
	}

	if err := uc.cache.Invalidate(ctx, updated.ID()); err != nil {
		uc.logger.Warn("invalidate slip cache", zap.String("loan_request_id", id.String()), zap.Error(err))
	}
	publishAfterCommit(ctx, uc.publisher, uc.logger, updated)
	uc.logger.Info("token assigned",
		zap.String("loan_request_id", id.String()),
		zap.String("token", updated.TokenNumber().String()),
	)
	return toLoanRequestResponse(updated.ClearEvents(), nil, nil), nil
}

func appointmentUpdate(req dto.AssignTokenRequest) (valueobject.AppointmentUpdate, error) {
	var u valueobject.AppointmentUpdate
	if req.AppointmentDate != nil && *req.AppointmentDate != "" {
		d, err := parseAppointmentDate(*req.AppointmentDate)
		if err != nil {
			return u, model.NewValidationError("Invalid appointment date")
		}
		u.Date = &d
	}
	if req.AppointmentTime != nil && *req.AppointmentTime != "" {
		u.Time = req.AppointmentTime
	}
	if req.OfficeLocation != nil && *req.OfficeLocation != "" {
		u.OfficeLocation = req.OfficeLocation
	}
	return u, nil
}

func parseAppointmentDate(s string) (time.Time, error) {
	if d, err := time.Parse(time.DateOnly, s); err == nil {
		return d, nil
	}
	d, err := time.Parse(time.RFC3339, s)
	if err != nil {
		return time.Time{}, err
	}
	return d.UTC(), nil
}
