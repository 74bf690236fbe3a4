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

// GenerateSlipUseCase renders the appointment slip of a tokened request.
type GenerateSlipUseCase struct {
	repo       port.LoanRequestRepository
	applicants port.ApplicantDirectory
	encoder    port.QRCodeEncoder
	cache      port.SlipCache
	logger     *zap.Logger
}

func NewGenerateSlipUseCase(
	repo port.LoanRequestRepository,
	applicants port.ApplicantDirectory,
	encoder port.QRCodeEncoder,
	cache port.SlipCache,
	logger *zap.Logger,
) *GenerateSlipUseCase {
	return &GenerateSlipUseCase{
		repo:       repo,
		applicants: applicants,
		encoder:    encoder,
		cache:      cache,
		logger:     logger,
	}
}

// Execute returns the slip for the owner or an administrator. Cache errors
// degrade to a fresh render.
func (uc *GenerateSlipUseCase) Execute(ctx context.Context, caller dto.Caller, id uuid.UUID) (dto.SlipResponse, error) {
	lr, err := loadRequest(ctx, uc.repo, id, "Loan request not found")
	if err != nil {
		return dto.SlipResponse{}, err
	}
	if !lr.VisibleTo(caller.UserID, caller.IsAdmin) {
		return dto.SlipResponse{}, model.ErrForbidden
	}
	if !lr.HasToken() {
		return dto.SlipResponse{}, model.ErrTokenNotAssigned
	}

	if slip, ok, err := uc.cache.Get(ctx, lr.ID()); err != nil {
		uc.logger.Warn("read slip cache", zap.String("loan_request_id", lr.ID().String()), zap.Error(err))
	} else if ok && slip.RenderedFrom(lr) {
		return toSlipResponse(slip), nil
	}

	applicant, err := uc.applicants.FindByID(ctx, lr.ApplicantID())
	if err != nil && !errors.Is(err, model.ErrNotFound) {
		return dto.SlipResponse{}, fmt.Errorf("find applicant: %w", err)
	}

	slip, payload, err := model.NewSlip(lr, applicant)
	if err != nil {
		return dto.SlipResponse{}, err
	}
	raw, err := payload.Bytes()
	if err != nil {
		return dto.SlipResponse{}, err
	}
	slip.QRCode, err = uc.encoder.EncodeDataURL(raw)
	if err != nil {
		return dto.SlipResponse{}, fmt.Errorf("encode qr code: %w", err)
	}

	if err := uc.cache.Set(ctx, lr.ID(), slip); err != nil {
		uc.logger.Warn("write slip cache", zap.String("loan_request_id", lr.ID().String()), zap.Error(err))
	}
	return toSlipResponse(slip), nil
}
