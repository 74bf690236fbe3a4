package auth

import (
	"slices"

	"github.com/golang-jwt/jwt/v5"
	"github.com/google/uuid"
)

const (
	RoleAdmin     = "admin"
	RoleApplicant = "applicant"
)

// Claims is the payload of a portal bearer token. Applicant accounts carry
// RoleApplicant; reviewers additionally carry RoleAdmin.
type Claims struct {
	jwt.RegisteredClaims
	UserID uuid.UUID `json:"user_id"`
	Email  string    `json:"email,omitempty"`
	Roles  []string  `json:"roles"`
}

// RolesFor returns the role set of an account.
func RolesFor(isAdmin bool) []string {
	if isAdmin {
		return []string{RoleApplicant, RoleAdmin}
	}
	return []string{RoleApplicant}
}

func (c Claims) HasRole(role string) bool { return slices.Contains(c.Roles, role) }

// IsAdmin reports whether the bearer may use the review endpoints.
func (c Claims) IsAdmin() bool { return c.HasRole(RoleAdmin) }
