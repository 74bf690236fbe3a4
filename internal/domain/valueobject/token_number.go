package valueobject

import (
	"fmt"
	"regexp"
	"time"
)

// TokenPrefix opens every token number.
const TokenPrefix = "SWF"

var tokenPattern = regexp.MustCompile(`^SWF\d{11}$`)

// TokenNumber is the human-readable identifier handed to an applicant once
// the request moves to in-person review.
type TokenNumber struct {
	value string
}

// NewTokenNumber builds a token from the issue time and a tie-breaker in
// [0, 999]: the prefix, the last eight digits of the Unix millisecond clock
// and the zero-padded tie-breaker.
func NewTokenNumber(issuedAt time.Time, tieBreaker int) (TokenNumber, error) {
	if tieBreaker < 0 || tieBreaker > 999 {
		return TokenNumber{}, fmt.Errorf("token tie-breaker out of range: %d", tieBreaker)
	}
	millis := issuedAt.UnixMilli() % 100_000_000
	return TokenNumber{value: fmt.Sprintf("%s%08d%03d", TokenPrefix, millis, tieBreaker)}, nil
}

// ParseTokenNumber validates a token received from a caller or storage.
func ParseTokenNumber(s string) (TokenNumber, error) {
	if !tokenPattern.MatchString(s) {
		return TokenNumber{}, fmt.Errorf("invalid token number: %q", s)
	}
	return TokenNumber{value: s}, nil
}

// String returns the token as issued.
func (t TokenNumber) String() string { return t.value }

// IsZero reports whether no token has been assigned.
func (t TokenNumber) IsZero() bool { return t.value == "" }
