package usecase_test

import (
	"context"
	"io"
	"strings"
	"sync"

	"github.com/google/uuid"

	"github.com/Farhan-176/Mcrofinance-Loan-App/internal/domain/event"
	"github.com/Farhan-176/Mcrofinance-Loan-App/internal/domain/model"
	"github.com/Farhan-176/Mcrofinance-Loan-App/internal/domain/port"
	"github.com/Farhan-176/Mcrofinance-Loan-App/internal/domain/valueobject"
)

// --- Mock implementations ---

type mockLoanRequestRepository struct {
	createFunc          func(ctx context.Context, lr model.LoanRequest) error
	updateFunc          func(ctx context.Context, lr model.LoanRequest) error
	findByIDFunc        func(ctx context.Context, id uuid.UUID) (model.LoanRequest, error)
	findByTokenFunc     func(ctx context.Context, token valueobject.TokenNumber) (model.LoanRequest, error)
	findByApplicantFunc func(ctx context.Context, applicantID uuid.UUID) ([]model.LoanRequest, error)
	listFunc            func(ctx context.Context, filter port.LoanRequestFilter) ([]model.LoanRequest, error)
	statusTotalsFunc    func(ctx context.Context) ([]model.StatusTotal, error)

	created        []model.LoanRequest
	updated        []model.LoanRequest
	attached       []model.LoanRequest
	attachedGuars  [][]model.Guarantor
	findByIDCalled int
	lastFilter     port.LoanRequestFilter
}

func (m *mockLoanRequestRepository) Create(ctx context.Context, lr model.LoanRequest) error {
	if m.createFunc != nil {
		return m.createFunc(ctx, lr)
	}
	m.created = append(m.created, lr)
	return nil
}

func (m *mockLoanRequestRepository) Update(ctx context.Context, lr model.LoanRequest) error {
	if m.updateFunc != nil {
		if err := m.updateFunc(ctx, lr); err != nil {
			return err
		}
	}
	m.updated = append(m.updated, lr)
	return nil
}

func (m *mockLoanRequestRepository) AttachGuarantors(_ context.Context, lr model.LoanRequest, gs []model.Guarantor) error {
	m.attached = append(m.attached, lr)
	m.attachedGuars = append(m.attachedGuars, gs)
	return nil
}

func (m *mockLoanRequestRepository) FindByID(ctx context.Context, id uuid.UUID) (model.LoanRequest, error) {
	m.findByIDCalled++
	if m.findByIDFunc != nil {
		return m.findByIDFunc(ctx, id)
	}
	return model.LoanRequest{}, model.ErrNotFound
}

func (m *mockLoanRequestRepository) FindByToken(ctx context.Context, token valueobject.TokenNumber) (model.LoanRequest, error) {
	if m.findByTokenFunc != nil {
		return m.findByTokenFunc(ctx, token)
	}
	return model.LoanRequest{}, model.ErrNotFound
}

func (m *mockLoanRequestRepository) FindByApplicant(ctx context.Context, applicantID uuid.UUID) ([]model.LoanRequest, error) {
	if m.findByApplicantFunc != nil {
		return m.findByApplicantFunc(ctx, applicantID)
	}
	return nil, nil
}

func (m *mockLoanRequestRepository) List(ctx context.Context, filter port.LoanRequestFilter) ([]model.LoanRequest, error) {
	m.lastFilter = filter
	if m.listFunc != nil {
		return m.listFunc(ctx, filter)
	}
	return nil, nil
}

func (m *mockLoanRequestRepository) StatusTotals(ctx context.Context) ([]model.StatusTotal, error) {
	if m.statusTotalsFunc != nil {
		return m.statusTotalsFunc(ctx)
	}
	return nil, nil
}

type mockGuarantorRepository struct {
	guarantors map[uuid.UUID]model.Guarantor
}

func (m *mockGuarantorRepository) FindByIDs(_ context.Context, ids []uuid.UUID) ([]model.Guarantor, error) {
	var out []model.Guarantor
	for _, id := range ids {
		if g, ok := m.guarantors[id]; ok {
			out = append(out, g)
		}
	}
	return out, nil
}

type mockApplicantDirectory struct {
	applicants map[uuid.UUID]model.Applicant
}

func (m *mockApplicantDirectory) FindByID(_ context.Context, id uuid.UUID) (model.Applicant, error) {
	a, ok := m.applicants[id]
	if !ok {
		return model.Applicant{}, model.ErrNotFound
	}
	return a, nil
}

func (m *mockApplicantDirectory) FindByIDs(_ context.Context, ids []uuid.UUID) (map[uuid.UUID]model.Applicant, error) {
	out := make(map[uuid.UUID]model.Applicant)
	for _, id := range ids {
		if a, ok := m.applicants[id]; ok {
			out[id] = a
		}
	}
	return out, nil
}

type mockEventPublisher struct {
	publishFunc     func(ctx context.Context, events ...event.DomainEvent) error
	publishedEvents []event.DomainEvent
}

func (m *mockEventPublisher) Publish(ctx context.Context, evts ...event.DomainEvent) error {
	if m.publishFunc != nil {
		return m.publishFunc(ctx, evts...)
	}
	m.publishedEvents = append(m.publishedEvents, evts...)
	return nil
}

type mockDocumentStore struct {
	saveErr map[string]error // keyed by a substring of the file name
	saved   map[string]string
	removed []string
}

func (m *mockDocumentStore) Save(_ context.Context, fileName string, content io.Reader) (string, error) {
	for part, err := range m.saveErr {
		if strings.Contains(fileName, part) {
			return "", err
		}
	}
	b, err := io.ReadAll(content)
	if err != nil {
		return "", err
	}
	if m.saved == nil {
		m.saved = make(map[string]string)
	}
	m.saved[fileName] = string(b)
	return "/uploads/" + fileName, nil
}

func (m *mockDocumentStore) Remove(_ context.Context, ref string) error {
	m.removed = append(m.removed, ref)
	return nil
}

type mockQRCodeEncoder struct {
	calls    int
	payloads [][]byte
}

func (m *mockQRCodeEncoder) EncodeDataURL(payload []byte) (string, error) {
	m.calls++
	m.payloads = append(m.payloads, payload)
	return "data:image/png;base64,QR", nil
}

type mockSlipCache struct {
	mu          sync.Mutex
	slips       map[uuid.UUID]model.Slip
	invalidated []uuid.UUID
}

func (m *mockSlipCache) Get(_ context.Context, id uuid.UUID) (model.Slip, bool, error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	s, ok := m.slips[id]
	return s, ok, nil
}

func (m *mockSlipCache) Set(_ context.Context, id uuid.UUID, slip model.Slip) error {
	m.mu.Lock()
	defer m.mu.Unlock()
	if m.slips == nil {
		m.slips = make(map[uuid.UUID]model.Slip)
	}
	m.slips[id] = slip
	return nil
}

func (m *mockSlipCache) Invalidate(_ context.Context, id uuid.UUID) error {
	m.mu.Lock()
	defer m.mu.Unlock()
	delete(m.slips, id)
	m.invalidated = append(m.invalidated, id)
	return nil
}

type sequenceIssuer struct {
	tokens []valueobject.TokenNumber
	calls  int
}

func (s *sequenceIssuer) Issue() (valueobject.TokenNumber, error) {
	tok := s.tokens[s.calls%len(s.tokens)]
	s.calls++
	return tok, nil
}
