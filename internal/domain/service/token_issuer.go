package service

import (
	"math/rand/v2"
	"time"

	"github.com/Farhan-176/Mcrofinance-Loan-App/internal/domain/valueobject"
)

// TokenIssuer produces candidate token numbers. Uniqueness is settled by
// storage; callers retry on collision.
type TokenIssuer struct {
	now  func() time.Time
	rand func(n int) int
}

// TokenIssuerOption customises a TokenIssuer.
type TokenIssuerOption func(*TokenIssuer)

// WithClock replaces the wall clock.
func WithClock(now func() time.Time) TokenIssuerOption {
	return func(t *TokenIssuer) { t.now = now }
}

// WithTieBreaker replaces the random source; fn returns a value in [0, n).
func WithTieBreaker(fn func(n int) int) TokenIssuerOption {
	return func(t *TokenIssuer) { t.rand = fn }
}

func NewTokenIssuer(opts ...TokenIssuerOption) *TokenIssuer {
	t := &TokenIssuer{now: time.Now, rand: rand.IntN}
	for _, opt := range opts {
		opt(t)
	}
	return t
}

// Issue returns a fresh candidate token.
func (t *TokenIssuer) Issue() (valueobject.TokenNumber, error) {
	return valueobject.NewTokenNumber(t.now(), t.rand(1000))
}
