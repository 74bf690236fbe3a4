package cache_test

import (
	"context"
	"testing"
	"time"

	"github.com/alicebob/miniredis/v2"
	"github.com/google/uuid"
	"github.com/redis/go-redis/v9"
	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/Farhan-176/Mcrofinance-Loan-App/internal/domain/model"
	"github.com/Farhan-176/Mcrofinance-Loan-App/internal/infrastructure/cache"
)

func newTestCache(t *testing.T, ttl time.Duration) (*cache.RedisSlipCache, *miniredis.Miniredis) {
	t.Helper()
	mr := miniredis.RunT(t)
	rdb := redis.NewClient(&redis.Options{Addr: mr.Addr()})
	t.Cleanup(func() { _ = rdb.Close() })
	return cache.NewRedisSlipCache(rdb, ttl), mr
}

func TestRedisSlipCache_RoundTrip(t *testing.T) {
	c, _ := newTestCache(t, time.Minute)
	ctx := context.Background()
	id := uuid.New()
	date := time.Date(2025, 5, 1, 0, 0, 0, 0, time.UTC)

	_, ok, err := c.Get(ctx, id)
	require.NoError(t, err)
	assert.False(t, ok)

	slip := model.Slip{
		TokenNumber:     "SWF12345678042",
		ApplicantName:   "Ayesha",
		LoanAmount:      decimal.NewFromInt(75_000),
		Category:        "Education Loans",
		AppointmentDate: &date,
		QRCode:          "data:image/png;base64,AAAA",

		RequestUpdatedAt: date.Add(time.Hour),
	}
	require.NoError(t, c.Set(ctx, id, slip))

	got, ok, err := c.Get(ctx, id)
	require.NoError(t, err)
	require.True(t, ok)
	assert.Equal(t, slip.TokenNumber, got.TokenNumber)
	assert.True(t, got.LoanAmount.Equal(slip.LoanAmount))
	require.NotNil(t, got.AppointmentDate)
	assert.True(t, got.AppointmentDate.Equal(date))
	assert.Equal(t, slip.QRCode, got.QRCode)
	assert.True(t, got.RequestUpdatedAt.Equal(slip.RequestUpdatedAt))

	require.NoError(t, c.Invalidate(ctx, id))
	_, ok, err = c.Get(ctx, id)
	require.NoError(t, err)
	assert.False(t, ok)
}

func TestRedisSlipCache_Expires(t *testing.T) {
	c, mr := newTestCache(t, 10*time.Second)
	ctx := context.Background()
	id := uuid.New()

	require.NoError(t, c.Set(ctx, id, model.Slip{TokenNumber: "SWF00000001001"}))
	mr.FastForward(11 * time.Second)

	_, ok, err := c.Get(ctx, id)
	require.NoError(t, err)
	assert.False(t, ok)
}

func TestRedisSlipCache_ServerDown(t *testing.T) {
	c, mr := newTestCache(t, time.Minute)
	mr.Close()

	_, _, err := c.Get(context.Background(), uuid.New())
	assert.Error(t, err)
}

func TestNopSlipCache(t *testing.T) {
	var c cache.NopSlipCache
	ctx := context.Background()
	id := uuid.New()

	require.NoError(t, c.Set(ctx, id, model.Slip{TokenNumber: "x"}))
	_, ok, err := c.Get(ctx, id)
	require.NoError(t, err)
	assert.False(t, ok)
	assert.NoError(t, c.Invalidate(ctx, id))
}
