package model

import (
	"strings"
	"time"

	"github.com/google/uuid"
)

// GuarantorDetails is the caller-supplied part of a guarantor record.
type GuarantorDetails struct {
	Name     string
	Email    string
	CNIC     string
	Location string
	Phone    string
}

// Guarantor vouches for a loan request. Records are created in pairs and
// never edited.
type Guarantor struct {
	id            uuid.UUID
	loanRequestID uuid.UUID
	name          string
	email         string
	cnic          string
	location      string
	phone         string
	createdAt     time.Time
}

// NewGuarantor trims every field, lower-cases the email and requires all of them.
func NewGuarantor(loanRequestID uuid.UUID, d GuarantorDetails, now time.Time) (Guarantor, error) {
	g := Guarantor{
		id:            uuid.New(),
		loanRequestID: loanRequestID,
		name:          strings.TrimSpace(d.Name),
		email:         strings.ToLower(strings.TrimSpace(d.Email)),
		cnic:          strings.TrimSpace(d.CNIC),
		location:      strings.TrimSpace(d.Location),
		phone:         strings.TrimSpace(d.Phone),
		createdAt:     now,
	}
	switch {
	case loanRequestID == uuid.Nil:
		return Guarantor{}, NewValidationError("loan request is required")
	case g.name == "":
		return Guarantor{}, NewValidationError("Guarantor name is required")
	case g.email == "":
		return Guarantor{}, NewValidationError("Guarantor email is required")
	case g.cnic == "":
		return Guarantor{}, NewValidationError("Guarantor CNIC is required")
	case g.location == "":
		return Guarantor{}, NewValidationError("Guarantor location is required")
	case g.phone == "":
		return Guarantor{}, NewValidationError("Guarantor phone is required")
	}
	return g, nil
}

// NewGuarantorPair validates both guarantors before any is accepted.
func NewGuarantorPair(loanRequestID uuid.UUID, details []GuarantorDetails, now time.Time) ([]Guarantor, error) {
	if len(details) != RequiredGuarantors {
		return nil, NewValidationError("Exactly two guarantors are required")
	}
	pair := make([]Guarantor, 0, RequiredGuarantors)
	for _, d := range details {
		g, err := NewGuarantor(loanRequestID, d, now)
		if err != nil {
			return nil, err
		}
		pair = append(pair, g)
	}
	return pair, nil
}

// ReconstructGuarantor rebuilds a guarantor from persistence.
func ReconstructGuarantor(id, loanRequestID uuid.UUID, d GuarantorDetails, createdAt time.Time) Guarantor {
	return Guarantor{
		id:            id,
		loanRequestID: loanRequestID,
		name:          d.Name,
		email:         d.Email,
		cnic:          d.CNIC,
		location:      d.Location,
		phone:         d.Phone,
		createdAt:     createdAt,
	}
}

func (g Guarantor) ID() uuid.UUID            { return g.id }
func (g Guarantor) LoanRequestID() uuid.UUID { return g.loanRequestID }
func (g Guarantor) Name() string             { return g.name }
func (g Guarantor) Email() string            { return g.email }
func (g Guarantor) CNIC() string             { return g.cnic }
func (g Guarantor) Location() string         { return g.location }
func (g Guarantor) Phone() string            { return g.phone }
func (g Guarantor) CreatedAt() time.Time     { return g.createdAt }

// GuarantorIDs returns the ids of gs in order.
func GuarantorIDs(gs []Guarantor) []uuid.UUID {
	ids := make([]uuid.UUID, len(gs))
	for i, g := range gs {
		ids[i] = g.id
	}
	return ids
}
