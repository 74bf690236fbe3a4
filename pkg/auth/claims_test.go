package auth

import "testing"

func TestRolesFor(t *testing.T) {
	applicant := Claims{Roles: RolesFor(false)}
	if applicant.IsAdmin() || !applicant.HasRole(RoleApplicant) {
		t.Errorf("applicant roles = %v", applicant.Roles)
	}

	admin := Claims{Roles: RolesFor(true)}
	if !admin.IsAdmin() || !admin.HasRole(RoleApplicant) {
		t.Errorf("admin roles = %v", admin.Roles)
	}
}
