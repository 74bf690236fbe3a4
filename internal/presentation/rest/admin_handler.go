package rest

import (
	"net/http"

	"github.com/gorilla/mux"
	"go.uber.org/zap"

	"github.com/Farhan-176/Mcrofinance-Loan-App/internal/application/dto"
	"github.com/Farhan-176/Mcrofinance-Loan-App/internal/application/usecase"
)

// AdminUseCases groups the review-desk use cases.
type AdminUseCases struct {
	List         *usecase.ListApplicationsUseCase
	Stats        *usecase.ApplicationStatsUseCase
	UpdateStatus *usecase.UpdateStatusUseCase
	AssignToken  *usecase.AssignTokenUseCase
	LookupToken  *usecase.LookupByTokenUseCase
}

// AdminHandler serves the /api/admin routes. Callers are already known to be
// administrators.
type AdminHandler struct {
	uc     AdminUseCases
	logger *zap.Logger
}

func NewAdminHandler(uc AdminUseCases, logger *zap.Logger) *AdminHandler {
	return &AdminHandler{uc: uc, logger: logger}
}

func (h *AdminHandler) Register(r *mux.Router) {
	r.HandleFunc("/applications", h.list).Methods(http.MethodGet)
	r.HandleFunc("/stats", h.stats).Methods(http.MethodGet)
	r.HandleFunc("/application/{id}/status", h.updateStatus).Methods(http.MethodPut)
	r.HandleFunc("/application/{id}/assign", h.assign).Methods(http.MethodPost)
	r.HandleFunc("/application/token/{token}", h.byToken).Methods(http.MethodGet)
}

func (h *AdminHandler) list(w http.ResponseWriter, r *http.Request) {
	q := r.URL.Query()
	resp, err := h.uc.List.Execute(r.Context(), dto.ListApplicationsRequest{
		Status:  q.Get("status"),
		City:    q.Get("city"),
		Country: q.Get("country"),
	})
	if err != nil {
		respondError(w, r, h.logger, err)
		return
	}
	writeJSON(w, http.StatusOK, resp)
}

func (h *AdminHandler) stats(w http.ResponseWriter, r *http.Request) {
	resp, err := h.uc.Stats.Execute(r.Context())
	if err != nil {
		respondError(w, r, h.logger, err)
		return
	}
	writeJSON(w, http.StatusOK, resp)
}

func (h *AdminHandler) updateStatus(w http.ResponseWriter, r *http.Request) {
	id, ok := pathID(w, r)
	if !ok {
		return
	}
	var req dto.UpdateStatusRequest
	if err := decodeJSON(r, &req); err != nil {
		respondError(w, r, h.logger, err)
		return
	}
	resp, err := h.uc.UpdateStatus.Execute(r.Context(), id, req)
	if err != nil {
		respondError(w, r, h.logger, err)
		return
	}
	writeJSON(w, http.StatusOK, loanRequestEnvelope{Message: "Application status updated successfully", LoanRequest: resp})
}

func (h *AdminHandler) assign(w http.ResponseWriter, r *http.Request) {
	id, ok := pathID(w, r)
	if !ok {
		return
	}
	var req dto.AssignTokenRequest
	if r.ContentLength != 0 {
		if err := decodeJSON(r, &req); err != nil {
			respondError(w, r, h.logger, err)
			return
		}
	}
	resp, err := h.uc.AssignToken.Execute(r.Context(), id, req)
	if err != nil {
		respondError(w, r, h.logger, err)
		return
	}
	writeJSON(w, http.StatusOK, loanRequestEnvelope{Message: "Token and appointment assigned successfully", LoanRequest: resp})
}

func (h *AdminHandler) byToken(w http.ResponseWriter, r *http.Request) {
	resp, err := h.uc.LookupToken.Execute(r.Context(), mux.Vars(r)["token"])
	if err != nil {
		respondError(w, r, h.logger, err)
		return
	}
	writeJSON(w, http.StatusOK, resp)
}
