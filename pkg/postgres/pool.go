package postgres

import (
	"context"
	"fmt"
	"net/url"
	"strconv"
	"time"

	"github.com/jackc/pgx/v5/pgxpool"
)

const (
	defaultSSLMode   = "require"
	maxConnLifetime  = time.Hour
	maxConnIdleTime  = 30 * time.Minute
	healthCheckEvery = time.Minute
)

// Config holds PostgreSQL connection parameters. SSLMode defaults to require.
type Config struct {
	Host     string
	Port     int
	User     string
	Password string
	Database string
	SSLMode  string

	// Pool sizing; zero keeps the pgxpool defaults.
	MaxConns int32
	MinConns int32

	// ConnectTimeout bounds the initial ping. Zero leaves it to the caller's context.
	ConnectTimeout time.Duration

	// ApplicationName shows up in pg_stat_activity.
	ApplicationName string
}

// DSN renders the config as a postgres:// URL accepted by pgx and golang-migrate.
func (c Config) DSN() string {
	sslMode := c.SSLMode
	if sslMode == "" {
		sslMode = defaultSSLMode
	}
	q := url.Values{"sslmode": {sslMode}}
	u := url.URL{
		Scheme:   "postgres",
		User:     url.UserPassword(c.User, c.Password),
		Host:     c.Host + ":" + strconv.Itoa(c.Port),
		Path:     c.Database,
		RawQuery: q.Encode(),
	}
	return u.String()
}

// PoolConfig builds the pgxpool settings without connecting.
func (c Config) PoolConfig() (*pgxpool.Config, error) {
	poolCfg, err := pgxpool.ParseConfig(c.DSN())
	if err != nil {
		return nil, fmt.Errorf("parse pool config: %w", err)
	}
	if c.MaxConns > 0 {
		poolCfg.MaxConns = c.MaxConns
	}
	if c.MinConns > 0 {
		poolCfg.MinConns = c.MinConns
	}
	poolCfg.MaxConnLifetime = maxConnLifetime
	poolCfg.MaxConnIdleTime = maxConnIdleTime
	poolCfg.HealthCheckPeriod = healthCheckEvery
	if c.ApplicationName != "" {
		poolCfg.ConnConfig.RuntimeParams["application_name"] = c.ApplicationName
	}
	return poolCfg, nil
}

// NewPool opens a pool and pings it once so misconfiguration fails at startup.
func NewPool(ctx context.Context, cfg Config) (*pgxpool.Pool, error) {
	poolCfg, err := cfg.PoolConfig()
	if err != nil {
		return nil, err
	}
	pool, err := pgxpool.NewWithConfig(ctx, poolCfg)
	if err != nil {
		return nil, fmt.Errorf("create pool: %w", err)
	}

	pingCtx := ctx
	if cfg.ConnectTimeout > 0 {
		var cancel context.CancelFunc
		pingCtx, cancel = context.WithTimeout(ctx, cfg.ConnectTimeout)
		defer cancel()
	}
	if err := HealthCheck(pingCtx, pool); err != nil {
		pool.Close()
		return nil, err
	}
	return pool, nil
}

// Pinger is satisfied by *pgxpool.Pool.
type Pinger interface {
	Ping(ctx context.Context) error
}

// HealthCheck backs the readiness check.
func HealthCheck(ctx context.Context, pool Pinger) error {
	if err := pool.Ping(ctx); err != nil {
		return fmt.Errorf("ping postgres: %w", err)
	}
	return nil
}
