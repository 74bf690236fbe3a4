package cache

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"time"

	"github.com/google/uuid"
	"github.com/redis/go-redis/v9"

	"github.com/Farhan-176/Mcrofinance-Loan-App/internal/domain/model"
)

const slipKeyPrefix = "qarz:slip:"

// Options configures the Redis connection.
type Options struct {
	Addr     string
	Password string
	DB       int
}

// NewRedisClient opens a client and verifies it with a ping.
func NewRedisClient(ctx context.Context, opts Options) (*redis.Client, error) {
	rdb := redis.NewClient(&redis.Options{
		Addr:         opts.Addr,
		Password:     opts.Password,
		DB:           opts.DB,
		DialTimeout:  5 * time.Second,
		ReadTimeout:  3 * time.Second,
		WriteTimeout: 3 * time.Second,
	})
	if err := rdb.Ping(ctx).Err(); err != nil {
		_ = rdb.Close()
		return nil, fmt.Errorf("redis ping: %w", err)
	}
	return rdb, nil
}

// RedisSlipCache implements port.SlipCache on Redis with a fixed TTL.
type RedisSlipCache struct {
	client redis.Cmdable
	ttl    time.Duration
}

func NewRedisSlipCache(client redis.Cmdable, ttl time.Duration) *RedisSlipCache {
	return &RedisSlipCache{client: client, ttl: ttl}
}

func slipKey(id uuid.UUID) string { return slipKeyPrefix + id.String() }

// Get returns the cached slip, or false on a miss.
func (c *RedisSlipCache) Get(ctx context.Context, loanRequestID uuid.UUID) (model.Slip, bool, error) {
	raw, err := c.client.Get(ctx, slipKey(loanRequestID)).Bytes()
	if errors.Is(err, redis.Nil) {
		return model.Slip{}, false, nil
	}
	if err != nil {
		return model.Slip{}, false, fmt.Errorf("get slip: %w", err)
	}
	var slip model.Slip
	if err := json.Unmarshal(raw, &slip); err != nil {
		return model.Slip{}, false, fmt.Errorf("decode slip: %w", err)
	}
	return slip, true, nil
}

func (c *RedisSlipCache) Set(ctx context.Context, loanRequestID uuid.UUID, slip model.Slip) error {
	raw, err := json.Marshal(slip)
	if err != nil {
		return fmt.Errorf("encode slip: %w", err)
	}
	if err := c.client.Set(ctx, slipKey(loanRequestID), raw, c.ttl).Err(); err != nil {
		return fmt.Errorf("set slip: %w", err)
	}
	return nil
}

func (c *RedisSlipCache) Invalidate(ctx context.Context, loanRequestID uuid.UUID) error {
	if err := c.client.Del(ctx, slipKey(loanRequestID)).Err(); err != nil {
		return fmt.Errorf("delete slip: %w", err)
	}
	return nil
}

// NopSlipCache never stores anything. It stands in when Redis is disabled.
type NopSlipCache struct{}

func (NopSlipCache) Get(context.Context, uuid.UUID) (model.Slip, bool, error) {
	return model.Slip{}, false, nil
}
func (NopSlipCache) Set(context.Context, uuid.UUID, model.Slip) error { return nil }
func (NopSlipCache) Invalidate(context.Context, uuid.UUID) error      { return nil }
