package grpc

import (
	"context"
	"errors"

	"github.com/google/uuid"
	"go.uber.org/zap"
	"google.golang.org/grpc/codes"
	"google.golang.org/grpc/status"

	"github.com/Farhan-176/Mcrofinance-Loan-App/internal/application/dto"
	"github.com/Farhan-176/Mcrofinance-Loan-App/internal/application/usecase"
	"github.com/Farhan-176/Mcrofinance-Loan-App/internal/domain/model"
	"github.com/Farhan-176/Mcrofinance-Loan-App/pkg/auth"
)

// DeskHandler serves the office terminals that scan appointment slips.
type DeskHandler struct {
	UnimplementedDeskServiceServer

	lookup    *usecase.LookupByTokenUseCase
	slip      *usecase.GenerateSlipUseCase
	calculate *usecase.CalculateLoanUseCase
	logger    *zap.Logger
}

func NewDeskHandler(
	lookup *usecase.LookupByTokenUseCase,
	slip *usecase.GenerateSlipUseCase,
	calculate *usecase.CalculateLoanUseCase,
	logger *zap.Logger,
) *DeskHandler {
	return &DeskHandler{lookup: lookup, slip: slip, calculate: calculate, logger: logger}
}

func (h *DeskHandler) LookupByToken(ctx context.Context, req *LookupByTokenRequest) (*LoanRequestReply, error) {
	resp, err := h.lookup.Execute(ctx, req.TokenNumber)
	if err != nil {
		return nil, h.toStatus(LookupByTokenMethod, err)
	}
	return &LoanRequestReply{LoanRequest: resp}, nil
}

func (h *DeskHandler) GetSlip(ctx context.Context, req *GetSlipRequest) (*SlipReply, error) {
	id, err := uuid.Parse(req.LoanRequestID)
	if err != nil {
		return nil, status.Error(codes.NotFound, "Loan request not found")
	}
	resp, err := h.slip.Execute(ctx, callerFrom(ctx), id)
	if err != nil {
		return nil, h.toStatus(GetSlipMethod, err)
	}
	return &SlipReply{Slip: resp}, nil
}

func (h *DeskHandler) Calculate(ctx context.Context, req *CalculateRequest) (*CalculationReply, error) {
	resp, err := h.calculate.Execute(ctx, dto.CalculateLoanRequest{
		Category:       req.Category,
		LoanAmount:     req.LoanAmount,
		InitialDeposit: req.InitialDeposit,
		PeriodMonths:   req.PeriodMonths,
	})
	if err != nil {
		return nil, h.toStatus(CalculateMethod, err)
	}
	return &CalculationReply{Calculation: resp}, nil
}

func callerFrom(ctx context.Context) dto.Caller {
	claims, ok := auth.ClaimsFromContext(ctx)
	if !ok {
		return dto.Caller{}
	}
	return dto.Caller{UserID: claims.UserID, IsAdmin: claims.IsAdmin()}
}

// toStatus maps domain errors to gRPC codes and hides everything else.
func (h *DeskHandler) toStatus(method string, err error) error {
	var de *model.DomainError
	if errors.As(err, &de) {
		switch de.Code {
		case model.ErrCodeValidation:
			return status.Error(codes.InvalidArgument, de.Message)
		case model.ErrCodeTokenNotAssigned:
			return status.Error(codes.FailedPrecondition, de.Message)
		case model.ErrCodeForbidden:
			return status.Error(codes.PermissionDenied, de.Message)
		case model.ErrCodeNotFound:
			return status.Error(codes.NotFound, de.Message)
		case model.ErrCodeConflict:
			return status.Error(codes.Aborted, de.Message)
		}
	}
	h.logger.Error("desk call failed", zap.String("method", method), zap.Error(err))
	return status.Error(codes.Internal, "Server error")
}
