package rest_test

import (
	"bytes"
	"context"
	"encoding/json"
	"io"
	"net/http"
	"net/http/httptest"
	"slices"
	"sync"
	"testing"
	"time"

	"github.com/google/uuid"
	"github.com/gorilla/mux"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap"
	"go.uber.org/zap/zaptest"

	"github.com/Farhan-176/Mcrofinance-Loan-App/internal/application/usecase"
	"github.com/Farhan-176/Mcrofinance-Loan-App/internal/domain/model"
	"github.com/Farhan-176/Mcrofinance-Loan-App/internal/domain/port"
	"github.com/Farhan-176/Mcrofinance-Loan-App/internal/domain/service"
	"github.com/Farhan-176/Mcrofinance-Loan-App/internal/domain/valueobject"
	"github.com/Farhan-176/Mcrofinance-Loan-App/internal/infrastructure/cache"
	"github.com/Farhan-176/Mcrofinance-Loan-App/internal/infrastructure/messaging"
	"github.com/Farhan-176/Mcrofinance-Loan-App/internal/infrastructure/qrcode"
	"github.com/Farhan-176/Mcrofinance-Loan-App/internal/infrastructure/storage"
	"github.com/Farhan-176/Mcrofinance-Loan-App/internal/presentation/rest"
	"github.com/Farhan-176/Mcrofinance-Loan-App/pkg/auth"
)

// ---------------------------------------------------------------------------
// In-memory ports
// ---------------------------------------------------------------------------

type memStore struct {
	mu         sync.Mutex
	requests   map[uuid.UUID]model.LoanRequest
	guarantors map[uuid.UUID]model.Guarantor
	applicants map[uuid.UUID]model.Applicant

	// stale makes every write lose the version check.
	stale bool
}

func newMemStore() *memStore {
	return &memStore{
		requests:   make(map[uuid.UUID]model.LoanRequest),
		guarantors: make(map[uuid.UUID]model.Guarantor),
		applicants: make(map[uuid.UUID]model.Applicant),
	}
}

type memRequests struct{ s *memStore }

func (m memRequests) Create(_ context.Context, lr model.LoanRequest) error {
	m.s.mu.Lock()
	defer m.s.mu.Unlock()
	m.s.requests[lr.ID()] = lr.ClearEvents()
	return nil
}

func (m memRequests) Update(_ context.Context, lr model.LoanRequest) error {
	m.s.mu.Lock()
	defer m.s.mu.Unlock()
	if m.s.stale {
		return port.ErrStaleVersion
	}
	if !lr.TokenNumber().IsZero() {
		for id, other := range m.s.requests {
			if id != lr.ID() && other.TokenNumber() == lr.TokenNumber() {
				return model.ErrDuplicateToken
			}
		}
	}
	m.s.requests[lr.ID()] = lr.ClearEvents()
	return nil
}

func (m memRequests) AttachGuarantors(ctx context.Context, lr model.LoanRequest, gs []model.Guarantor) error {
	m.s.mu.Lock()
	for _, g := range gs {
		m.s.guarantors[g.ID()] = g
	}
	m.s.mu.Unlock()
	return m.Update(ctx, lr)
}

func (m memRequests) FindByID(_ context.Context, id uuid.UUID) (model.LoanRequest, error) {
	m.s.mu.Lock()
	defer m.s.mu.Unlock()
	lr, ok := m.s.requests[id]
	if !ok {
		return model.LoanRequest{}, model.ErrNotFound
	}
	return lr, nil
}

func (m memRequests) FindByToken(_ context.Context, token valueobject.TokenNumber) (model.LoanRequest, error) {
	m.s.mu.Lock()
	defer m.s.mu.Unlock()
	for _, lr := range m.s.requests {
		if lr.TokenNumber() == token {
			return lr, nil
		}
	}
	return model.LoanRequest{}, model.ErrNotFound
}

func (m memRequests) FindByApplicant(_ context.Context, applicantID uuid.UUID) ([]model.LoanRequest, error) {
	return m.filter(func(lr model.LoanRequest) bool { return lr.ApplicantID() == applicantID }), nil
}

func (m memRequests) List(_ context.Context, f port.LoanRequestFilter) ([]model.LoanRequest, error) {
	return m.filter(func(lr model.LoanRequest) bool { return f.Status.IsZero() || lr.Status() == f.Status }), nil
}

func (m memRequests) StatusTotals(_ context.Context) ([]model.StatusTotal, error) {
	m.s.mu.Lock()
	defer m.s.mu.Unlock()
	byStatus := map[valueobject.LoanStatus]*model.StatusTotal{}
	var totals []model.StatusTotal
	for _, lr := range m.s.requests {
		t, ok := byStatus[lr.Status()]
		if !ok {
			t = &model.StatusTotal{Status: lr.Status()}
			byStatus[lr.Status()] = t
		}
		t.Count++
		t.Amount = t.Amount.Add(lr.LoanAmount())
	}
	for _, t := range byStatus {
		totals = append(totals, *t)
	}
	return totals, nil
}

func (m memRequests) filter(keep func(model.LoanRequest) bool) []model.LoanRequest {
	m.s.mu.Lock()
	defer m.s.mu.Unlock()
	var out []model.LoanRequest
	for _, lr := range m.s.requests {
		if keep(lr) {
			out = append(out, lr)
		}
	}
	slices.SortFunc(out, func(a, b model.LoanRequest) int { return b.CreatedAt().Compare(a.CreatedAt()) })
	return out
}

type memGuarantors struct{ s *memStore }

func (m memGuarantors) FindByIDs(_ context.Context, ids []uuid.UUID) ([]model.Guarantor, error) {
	m.s.mu.Lock()
	defer m.s.mu.Unlock()
	var out []model.Guarantor
	for _, id := range ids {
		if g, ok := m.s.guarantors[id]; ok {
			out = append(out, g)
		}
	}
	return out, nil
}

type memApplicants struct{ s *memStore }

func (m memApplicants) FindByID(_ context.Context, id uuid.UUID) (model.Applicant, error) {
	m.s.mu.Lock()
	defer m.s.mu.Unlock()
	a, ok := m.s.applicants[id]
	if !ok {
		return model.Applicant{}, model.ErrNotFound
	}
	return a, nil
}

func (m memApplicants) FindByIDs(_ context.Context, ids []uuid.UUID) (map[uuid.UUID]model.Applicant, error) {
	m.s.mu.Lock()
	defer m.s.mu.Unlock()
	out := make(map[uuid.UUID]model.Applicant, len(ids))
	for _, id := range ids {
		if a, ok := m.s.applicants[id]; ok {
			out[id] = a
		}
	}
	return out, nil
}

// ---------------------------------------------------------------------------
// Test server
// ---------------------------------------------------------------------------

type testServer struct {
	t       *testing.T
	handler http.Handler
	jwt     *auth.JWTService
	store   *memStore

	applicant uuid.UUID
	other     uuid.UUID
	admin     uuid.UUID
}

func newTestServer(t *testing.T) *testServer {
	t.Helper()
	logger := zaptest.NewLogger(t)

	jwt, err := auth.NewJWTService(auth.JWTConfig{
		Secret:     "rest-test-secret",
		Issuer:     "qarz-test",
		Expiration: time.Hour,
	})
	require.NoError(t, err)

	docs, err := storage.NewDiskStore(t.TempDir())
	require.NoError(t, err)

	s := newMemStore()
	ts := &testServer{t: t, jwt: jwt, store: s, applicant: uuid.New(), other: uuid.New(), admin: uuid.New()}
	s.applicants[ts.applicant] = model.Applicant{
		ID: ts.applicant, Name: "Ayesha Khan", Email: "ayesha@example.com", CNIC: "42101-1234567-1",
		Address: valueobject.Address{City: "Karachi", Country: "Pakistan"},
	}
	s.applicants[ts.other] = model.Applicant{ID: ts.other, Name: "Bilal", Email: "bilal@example.com",
		Address: valueobject.Address{City: "Lahore", Country: "Pakistan"}}
	s.applicants[ts.admin] = model.Applicant{ID: ts.admin, Name: "Admin", Email: "admin@saylani.com", IsAdmin: true}

	var (
		requests   = memRequests{s}
		guarantors = memGuarantors{s}
		applicants = memApplicants{s}
		publisher  = messaging.NewLogPublisher(zap.NewNop())
		calculator = service.NewLoanCalculator(model.DefaultCatalog())
		slips      = cache.NopSlipCache{}
	)

	loans := rest.NewLoanHandler(rest.LoanUseCases{
		ListCategories:   usecase.NewListCategoriesUseCase(calculator),
		Calculate:        usecase.NewCalculateLoanUseCase(calculator),
		Create:           usecase.NewCreateLoanRequestUseCase(requests, calculator, publisher, logger),
		AttachGuarantors: usecase.NewAttachGuarantorsUseCase(requests, publisher, logger),
		UploadDocuments:  usecase.NewUploadDocumentsUseCase(requests, docs, publisher, logger),
		ListMine:         usecase.NewListMyRequestsUseCase(requests, applicants, guarantors),
		Get:              usecase.NewGetLoanRequestUseCase(requests, applicants, guarantors),
		GenerateSlip:     usecase.NewGenerateSlipUseCase(requests, applicants, qrcode.NewEncoder(128), slips, logger),
	}, 1<<20, logger)

	admin := rest.NewAdminHandler(rest.AdminUseCases{
		List:         usecase.NewListApplicationsUseCase(requests, applicants, guarantors),
		Stats:        usecase.NewApplicationStatsUseCase(requests),
		UpdateStatus: usecase.NewUpdateStatusUseCase(requests, publisher, logger),
		AssignToken:  usecase.NewAssignTokenUseCase(requests, service.NewTokenIssuer(), slips, publisher, logger),
		LookupToken:  usecase.NewLookupByTokenUseCase(requests, applicants, guarantors),
	}, logger)

	health := rest.NewHealthHandler("qarz-test", nil, logger)

	ts.handler = rest.NewRouter(rest.RouterConfig{
		Tokens:     jwt,
		Middleware: []mux.MiddlewareFunc{rest.Logging(logger)},
		UploadsDir: docs.Dir(),
	}, loans, admin, health)
	return ts
}

func (ts *testServer) token(userID uuid.UUID, roles ...string) string {
	ts.t.Helper()
	tok, err := ts.jwt.GenerateToken(userID, "", roles)
	require.NoError(ts.t, err)
	return tok
}

func (ts *testServer) applicantToken() string { return ts.token(ts.applicant, auth.RoleApplicant) }
func (ts *testServer) otherToken() string     { return ts.token(ts.other, auth.RoleApplicant) }
func (ts *testServer) adminToken() string     { return ts.token(ts.admin, auth.RoleAdmin) }

func (ts *testServer) do(method, path, token string, body any) *httptest.ResponseRecorder {
	ts.t.Helper()
	var rdr io.Reader
	if body != nil {
		raw, err := json.Marshal(body)
		require.NoError(ts.t, err)
		rdr = bytes.NewReader(raw)
	}
	req := httptest.NewRequest(method, path, rdr)
	if body != nil {
		req.Header.Set("Content-Type", "application/json")
	}
	return ts.send(req, token)
}

func (ts *testServer) send(req *http.Request, token string) *httptest.ResponseRecorder {
	if token != "" {
		req.Header.Set("Authorization", "Bearer "+token)
	}
	rec := httptest.NewRecorder()
	ts.handler.ServeHTTP(rec, req)
	return rec
}

// createRequest files a valid request for the default applicant and returns its id.
func (ts *testServer) createRequest() string {
	ts.t.Helper()
	rec := ts.do(http.MethodPost, "/api/loan/request", ts.applicantToken(), map[string]any{
		"category":       "Business Startup Loans",
		"subcategory":    "Buy Stall",
		"loanAmount":     100000,
		"initialDeposit": 10000,
		"loanPeriod":     12,
		"additionalInfo": "fruit stall",
	})
	require.Equal(ts.t, http.StatusCreated, rec.Code, rec.Body.String())
	var env struct {
		LoanRequest struct {
			ID string `json:"id"`
		} `json:"loanRequest"`
	}
	decode(ts.t, rec, &env)
	return env.LoanRequest.ID
}

func decode(t *testing.T, rec *httptest.ResponseRecorder, v any) {
	t.Helper()
	require.NoError(t, json.Unmarshal(rec.Body.Bytes(), v), rec.Body.String())
}

type errorBody struct {
	Error string `json:"error"`
	Code  string `json:"code"`
}

func decodeError(t *testing.T, rec *httptest.ResponseRecorder) errorBody {
	t.Helper()
	var body errorBody
	decode(t, rec, &body)
	return body
}
