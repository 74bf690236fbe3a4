package model

import (
	"strings"

	"github.com/google/uuid"

	"github.com/Farhan-176/Mcrofinance-Loan-App/internal/domain/valueobject"
)

// Applicant is a registered user as seen by the loan workflow. Accounts are
// managed elsewhere; the core only reads them.
type Applicant struct {
	ID      uuid.UUID
	Name    string
	Email   string
	CNIC    string
	Phone   string
	Address valueobject.Address
	IsAdmin bool
}

// LocatedIn matches the applicant's address against optional city and
// country filters, ignoring case. Empty filters match anything.
func (a Applicant) LocatedIn(city, country string) bool {
	if city != "" && !strings.EqualFold(a.Address.City, city) {
		return false
	}
	if country != "" && !strings.EqualFold(a.Address.Country, country) {
		return false
	}
	return true
}
