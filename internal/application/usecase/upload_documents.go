package usecase

import (
	"context"
	"fmt"
	"regexp"
	"slices"
	"time"

	"github.com/google/uuid"
	"go.uber.org/zap"

	"github.com/Farhan-176/Mcrofinance-Loan-App/internal/application/dto"
	"github.com/Farhan-176/Mcrofinance-Loan-App/internal/domain/model"
	"github.com/Farhan-176/Mcrofinance-Loan-App/internal/domain/port"
	"github.com/Farhan-176/Mcrofinance-Loan-App/internal/domain/valueobject"
)

var whitespace = regexp.MustCompile(`\s+`)

// StoredFileName is the on-disk name of an upload: the Unix millisecond
// clock, the document kind and the original name with whitespace runs
// replaced by '-'. The kind keeps same-named files of one upload apart.
func StoredFileName(now time.Time, kind valueobject.DocumentKind, original string) string {
	return fmt.Sprintf("%d-%s-%s", now.UnixMilli(), kind, whitespace.ReplaceAllString(original, "-"))
}

// UploadDocumentsUseCase stores uploaded files and records their references.
type UploadDocumentsUseCase struct {
	repo      port.LoanRequestRepository
	store     port.DocumentStore
	publisher port.EventPublisher
	logger    *zap.Logger
}

func NewUploadDocumentsUseCase(
	repo port.LoanRequestRepository,
	store port.DocumentStore,
	publisher port.EventPublisher,
	logger *zap.Logger,
) *UploadDocumentsUseCase {
	return &UploadDocumentsUseCase{repo: repo, store: store, publisher: publisher, logger: logger}
}

// Execute accepts the profilePhoto, cnicFront and cnicBack fields. Files
// under any other field are ignored; slots without a file keep their value.
func (uc *UploadDocumentsUseCase) Execute(
	ctx context.Context,
	caller dto.Caller,
	loanRequestID uuid.UUID,
	files []dto.UploadedFile,
) (dto.LoanRequestResponse, error) {
	lr, err := loadRequest(ctx, uc.repo, loanRequestID, "Loan request not found")
	if err != nil {
		return dto.LoanRequestResponse{}, err
	}
	if !lr.IsOwnedBy(caller.UserID) {
		return dto.LoanRequestResponse{}, model.ErrForbidden
	}

	accepted := make(map[valueobject.DocumentKind]dto.UploadedFile, len(valueobject.UploadableDocuments))
	for _, f := range files {
		kind := valueobject.DocumentKind(f.Field)
		if !slices.Contains(valueobject.UploadableDocuments, kind) {
			continue
		}
		if _, seen := accepted[kind]; !seen {
			accepted[kind] = f
		}
	}
	if len(accepted) == 0 {
		return dto.LoanRequestResponse{}, model.NewValidationError("No files uploaded")
	}

	now := time.Now().UTC()
	var (
		update valueobject.DocumentUpdate
		kinds  []string
		refs   []string
	)
	for _, kind := range valueobject.UploadableDocuments {
		f, ok := accepted[kind]
		if !ok {
			continue
		}
		ref, err := uc.store.Save(ctx, StoredFileName(now, kind, f.OriginalName), f.Content)
		if err != nil {
			uc.discard(ctx, refs)
			return dto.LoanRequestResponse{}, fmt.Errorf("store %s: %w", kind, err)
		}
		refs = append(refs, ref)
		update.Set(kind, ref)
		kinds = append(kinds, string(kind))
	}

	lr, err = saveWithRetry(ctx, uc.repo, lr,
		func(lr model.LoanRequest) (model.LoanRequest, error) {
			return lr.AttachDocuments(update, kinds, now)
		},
		func(ctx context.Context, lr model.LoanRequest) error {
			if err := uc.repo.Update(ctx, lr); err != nil {
				return fmt.Errorf("update loan request: %w", err)
			}
			return nil
		},
	)
	if err != nil {
		uc.discard(ctx, refs)
		return dto.LoanRequestResponse{}, err
	}

	publishAfterCommit(ctx, uc.publisher, uc.logger, lr)
	return toLoanRequestResponse(lr.ClearEvents(), nil, nil), nil
}

// discard removes files stored for an upload that was not recorded.
func (uc *UploadDocumentsUseCase) discard(ctx context.Context, refs []string) {
	for _, ref := range refs {
		if err := uc.store.Remove(context.WithoutCancel(ctx), ref); err != nil {
			uc.logger.Warn("remove unreferenced upload", zap.String("ref", ref), zap.Error(err))
		}
	}
}
