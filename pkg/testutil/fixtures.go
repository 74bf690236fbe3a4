package testutil

import (
	"time"

	"github.com/google/uuid"
)

// Stable identities shared by tests that need to compare ids across layers.
var (
	ApplicantID      = uuid.MustParse("6f1c2a52-8d0e-4b7a-9c1e-000000000001")
	OtherApplicantID = uuid.MustParse("6f1c2a52-8d0e-4b7a-9c1e-000000000002")
	AdminID          = uuid.MustParse("6f1c2a52-8d0e-4b7a-9c1e-0000000000ad")
	LoanRequestID    = uuid.MustParse("b3e0f7d4-1a2c-4e5f-8a9b-000000000020")
)

// FixedNow is a Karachi business-hours instant in UTC.
var FixedNow = time.Date(2026, time.March, 2, 5, 30, 0, 0, time.UTC)
