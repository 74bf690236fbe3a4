package rest

import (
	"errors"
	"mime/multipart"
	"net/http"

	"github.com/google/uuid"
	"github.com/gorilla/mux"
	"go.uber.org/zap"

	"github.com/Farhan-176/Mcrofinance-Loan-App/internal/application/dto"
	"github.com/Farhan-176/Mcrofinance-Loan-App/internal/application/usecase"
	"github.com/Farhan-176/Mcrofinance-Loan-App/internal/domain/model"
	"github.com/Farhan-176/Mcrofinance-Loan-App/internal/domain/valueobject"
)

// DefaultMaxUploadBytes bounds a document upload request.
const DefaultMaxUploadBytes = 10 << 20

// loanRequestEnvelope is returned by the mutating endpoints.
type loanRequestEnvelope struct {
	Message     string                  `json:"message"`
	LoanRequest dto.LoanRequestResponse `json:"loanRequest"`
}

// LoanUseCases groups the applicant-facing use cases.
type LoanUseCases struct {
	ListCategories   *usecase.ListCategoriesUseCase
	Calculate        *usecase.CalculateLoanUseCase
	Create           *usecase.CreateLoanRequestUseCase
	AttachGuarantors *usecase.AttachGuarantorsUseCase
	UploadDocuments  *usecase.UploadDocumentsUseCase
	ListMine         *usecase.ListMyRequestsUseCase
	Get              *usecase.GetLoanRequestUseCase
	GenerateSlip     *usecase.GenerateSlipUseCase
}

// LoanHandler serves the /api/loan routes.
type LoanHandler struct {
	uc             LoanUseCases
	maxUploadBytes int64
	logger         *zap.Logger
}

func NewLoanHandler(uc LoanUseCases, maxUploadBytes int64, logger *zap.Logger) *LoanHandler {
	if maxUploadBytes <= 0 {
		maxUploadBytes = DefaultMaxUploadBytes
	}
	return &LoanHandler{uc: uc, maxUploadBytes: maxUploadBytes, logger: logger}
}

// RegisterPublic attaches the unauthenticated routes.
func (h *LoanHandler) RegisterPublic(r *mux.Router) {
	r.HandleFunc("/categories", h.categories).Methods(http.MethodGet)
	r.HandleFunc("/calculate", h.calculate).Methods(http.MethodPost)
}

// RegisterProtected attaches the routes that need an authenticated caller.
func (h *LoanHandler) RegisterProtected(r *mux.Router) {
	r.HandleFunc("/request", h.create).Methods(http.MethodPost)
	r.HandleFunc("/request/{id}/guarantors", h.attachGuarantors).Methods(http.MethodPost)
	r.HandleFunc("/request/{id}/documents", h.uploadDocuments).Methods(http.MethodPost)
	r.HandleFunc("/requests", h.listMine).Methods(http.MethodGet)
	r.HandleFunc("/request/{id}", h.get).Methods(http.MethodGet)
	r.HandleFunc("/slip/{id}", h.slip).Methods(http.MethodGet)
}

func (h *LoanHandler) categories(w http.ResponseWriter, r *http.Request) {
	writeJSON(w, http.StatusOK, h.uc.ListCategories.Execute(r.Context()))
}

func (h *LoanHandler) calculate(w http.ResponseWriter, r *http.Request) {
	var req dto.CalculateLoanRequest
	if err := decodeJSON(r, &req); err != nil {
		respondError(w, r, h.logger, err)
		return
	}
	resp, err := h.uc.Calculate.Execute(r.Context(), req)
	if err != nil {
		respondError(w, r, h.logger, err)
		return
	}
	writeJSON(w, http.StatusOK, resp)
}

func (h *LoanHandler) create(w http.ResponseWriter, r *http.Request) {
	var req dto.CreateLoanRequestRequest
	if err := decodeJSON(r, &req); err != nil {
		respondError(w, r, h.logger, err)
		return
	}
	resp, err := h.uc.Create.Execute(r.Context(), callerFrom(r), req)
	if err != nil {
		respondError(w, r, h.logger, err)
		return
	}
	writeJSON(w, http.StatusCreated, loanRequestEnvelope{Message: "Loan request created successfully", LoanRequest: resp})
}

func (h *LoanHandler) attachGuarantors(w http.ResponseWriter, r *http.Request) {
	id, ok := pathID(w, r)
	if !ok {
		return
	}
	var req dto.AttachGuarantorsRequest
	if err := decodeJSON(r, &req); err != nil {
		respondError(w, r, h.logger, err)
		return
	}
	resp, err := h.uc.AttachGuarantors.Execute(r.Context(), callerFrom(r), id, req)
	if err != nil {
		respondError(w, r, h.logger, err)
		return
	}
	writeJSON(w, http.StatusOK, loanRequestEnvelope{Message: "Guarantors added successfully", LoanRequest: resp})
}

func (h *LoanHandler) uploadDocuments(w http.ResponseWriter, r *http.Request) {
	id, ok := pathID(w, r)
	if !ok {
		return
	}

	r.Body = http.MaxBytesReader(w, r.Body, h.maxUploadBytes)
	var files []dto.UploadedFile
	err := r.ParseMultipartForm(1 << 20)
	var tooLarge *http.MaxBytesError
	switch {
	case errors.As(err, &tooLarge):
		writeError(w, http.StatusBadRequest, string(model.ErrCodeValidation), "File too large")
		return
	case err == nil:
		defer func() { _ = r.MultipartForm.RemoveAll() }()
		opened, closeAll, err := openUploads(r.MultipartForm)
		defer closeAll()
		if err != nil {
			respondError(w, r, h.logger, err)
			return
		}
		files = opened
	}
	// A body that is not multipart carries no files; the use case reports that
	// after the ownership checks.

	resp, err := h.uc.UploadDocuments.Execute(r.Context(), callerFrom(r), id, files)
	if err != nil {
		respondError(w, r, h.logger, err)
		return
	}
	writeJSON(w, http.StatusOK, loanRequestEnvelope{Message: "Documents uploaded successfully", LoanRequest: resp})
}

// openUploads opens the first file of every document field, in form order.
func openUploads(form *multipart.Form) ([]dto.UploadedFile, func(), error) {
	var (
		files   []dto.UploadedFile
		closers []multipart.File
	)
	closeAll := func() {
		for _, c := range closers {
			_ = c.Close()
		}
	}
	for _, kind := range valueobject.UploadableDocuments {
		headers := form.File[string(kind)]
		if len(headers) == 0 {
			continue
		}
		f, err := headers[0].Open()
		if err != nil {
			return nil, closeAll, err
		}
		closers = append(closers, f)
		files = append(files, dto.UploadedFile{
			Field:        string(kind),
			OriginalName: headers[0].Filename,
			Content:      f,
		})
	}
	return files, closeAll, nil
}

func (h *LoanHandler) listMine(w http.ResponseWriter, r *http.Request) {
	resp, err := h.uc.ListMine.Execute(r.Context(), callerFrom(r))
	if err != nil {
		respondError(w, r, h.logger, err)
		return
	}
	writeJSON(w, http.StatusOK, resp)
}

func (h *LoanHandler) get(w http.ResponseWriter, r *http.Request) {
	id, ok := pathID(w, r)
	if !ok {
		return
	}
	resp, err := h.uc.Get.Execute(r.Context(), callerFrom(r), id)
	if err != nil {
		respondError(w, r, h.logger, err)
		return
	}
	writeJSON(w, http.StatusOK, resp)
}

func (h *LoanHandler) slip(w http.ResponseWriter, r *http.Request) {
	id, ok := pathID(w, r)
	if !ok {
		return
	}
	resp, err := h.uc.GenerateSlip.Execute(r.Context(), callerFrom(r), id)
	if err != nil {
		respondError(w, r, h.logger, err)
		return
	}
	writeJSON(w, http.StatusOK, resp)
}

// pathID parses the {id} route variable. Malformed ids cannot name a stored
// request, so they are reported as not found.
func pathID(w http.ResponseWriter, r *http.Request) (uuid.UUID, bool) {
	id, err := uuid.Parse(mux.Vars(r)["id"])
	if err != nil {
		writeError(w, http.StatusNotFound, string(model.ErrCodeNotFound), "Loan request not found")
		return uuid.Nil, false
	}
	return id, true
}
