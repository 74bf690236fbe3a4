package testutil

import (
	"testing"

	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
)

// AssertDecimalEqual compares amounts by value, so 100 and 100.00 match.
func AssertDecimalEqual(t *testing.T, want, got decimal.Decimal, msgAndArgs ...any) bool {
	t.Helper()
	if want.Equal(got) {
		return true
	}
	return assert.Fail(t, "amounts differ: want "+want.String()+", got "+got.String(), msgAndArgs...)
}

// AssertErrorContains checks that err is non-nil and mentions every fragment.
func AssertErrorContains(t *testing.T, err error, fragments ...string) bool {
	t.Helper()
	if !assert.Error(t, err) {
		return false
	}
	ok := true
	for _, f := range fragments {
		ok = assert.ErrorContains(t, err, f) && ok
	}
	return ok
}
