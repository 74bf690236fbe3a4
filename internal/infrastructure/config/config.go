package config

import (
	"errors"
	"fmt"
	"time"

	"github.com/Farhan-176/Mcrofinance-Loan-App/pkg/postgres"
)

// Config is the full runtime configuration of qarzd and qarzctl.
type Config struct {
	App       AppConfig       `mapstructure:"app"`
	Database  DatabaseConfig  `mapstructure:"database"`
	Redis     RedisConfig     `mapstructure:"redis"`
	Kafka     KafkaConfig     `mapstructure:"kafka"`
	Auth      AuthConfig      `mapstructure:"auth"`
	Logging   LoggingConfig   `mapstructure:"logging"`
	Tracing   TracingConfig   `mapstructure:"tracing"`
	RateLimit RateLimitConfig `mapstructure:"ratelimit"`
	GRPC      GRPCConfig      `mapstructure:"grpc"`
}

type AppConfig struct {
	Name           string `mapstructure:"name"`
	Environment    string `mapstructure:"environment"`
	HTTPPort       int    `mapstructure:"http_port"`
	GRPCPort       int    `mapstructure:"grpc_port"`
	UploadsDir     string `mapstructure:"uploads_dir"`
	MaxUploadBytes int64  `mapstructure:"max_upload_bytes"`
	MigrationsDir  string `mapstructure:"migrations_dir"`
	AutoMigrate    bool   `mapstructure:"auto_migrate"`
}

type DatabaseConfig struct {
	Host           string        `mapstructure:"host"`
	Port           int           `mapstructure:"port"`
	User           string        `mapstructure:"user"`
	Password       string        `mapstructure:"password"`
	Name           string        `mapstructure:"name"`
	SSLMode        string        `mapstructure:"sslmode"`
	MaxConns       int32         `mapstructure:"max_conns"`
	MinConns       int32         `mapstructure:"min_conns"`
	ConnectTimeout time.Duration `mapstructure:"connect_timeout"`
}

// Postgres converts the settings for the shared pool constructor.
func (d DatabaseConfig) Postgres() postgres.Config {
	return postgres.Config{
		Host:           d.Host,
		Port:           d.Port,
		User:           d.User,
		Password:       d.Password,
		Database:       d.Name,
		SSLMode:        d.SSLMode,
		MaxConns:       d.MaxConns,
		MinConns:       d.MinConns,
		ConnectTimeout: d.ConnectTimeout,
	}
}

// DSN returns a postgres:// URL suitable for pgx and golang-migrate.
func (d DatabaseConfig) DSN() string { return d.Postgres().DSN() }

type RedisConfig struct {
	Enabled  bool          `mapstructure:"enabled"`
	Addr     string        `mapstructure:"addr"`
	Password string        `mapstructure:"password"`
	DB       int           `mapstructure:"db"`
	SlipTTL  time.Duration `mapstructure:"slip_ttl"`
}

type KafkaConfig struct {
	Enabled       bool     `mapstructure:"enabled"`
	Brokers       []string `mapstructure:"brokers"`
	Topic         string   `mapstructure:"topic"`
	TLS           bool     `mapstructure:"tls"`
	SASLMechanism string   `mapstructure:"sasl_mechanism"`
	SASLUsername  string   `mapstructure:"sasl_username"`
	SASLPassword  string   `mapstructure:"sasl_password"`
}

type AuthConfig struct {
	JWTSecret      string        `mapstructure:"jwt_secret"`
	PublicKeyFile  string        `mapstructure:"public_key_file"`
	PrivateKeyFile string        `mapstructure:"private_key_file"`
	Issuer         string        `mapstructure:"issuer"`
	TokenTTL       time.Duration `mapstructure:"token_ttl"`
}

type LoggingConfig struct {
	Level  string `mapstructure:"level"`
	Format string `mapstructure:"format"`
}

type TracingConfig struct {
	Enabled  bool   `mapstructure:"enabled"`
	Endpoint string `mapstructure:"endpoint"`
	Insecure bool   `mapstructure:"insecure"`
}

type RateLimitConfig struct {
	Enabled           bool    `mapstructure:"enabled"`
	RequestsPerSecond float64 `mapstructure:"requests_per_second"`
	Burst             int     `mapstructure:"burst"`
}

type GRPCConfig struct {
	Enabled    bool   `mapstructure:"enabled"`
	TLSCert    string `mapstructure:"tls_cert"`
	TLSKey     string `mapstructure:"tls_key"`
	Reflection bool   `mapstructure:"reflection"`
}

// Validate reports every missing or inconsistent setting at once.
func (c Config) Validate() error {
	var errs []error
	if c.Database.Password == "" {
		errs = append(errs, errors.New("database.password is required"))
	}
	if c.Auth.JWTSecret == "" && c.Auth.PublicKeyFile == "" {
		errs = append(errs, errors.New("auth.jwt_secret or auth.public_key_file is required"))
	}
	if c.App.HTTPPort <= 0 {
		errs = append(errs, fmt.Errorf("app.http_port must be positive, got %d", c.App.HTTPPort))
	}
	if c.GRPC.Enabled && c.App.GRPCPort <= 0 {
		errs = append(errs, fmt.Errorf("app.grpc_port must be positive, got %d", c.App.GRPCPort))
	}
	if (c.GRPC.TLSCert == "") != (c.GRPC.TLSKey == "") {
		errs = append(errs, errors.New("grpc.tls_cert and grpc.tls_key must be set together"))
	}
	if c.Kafka.Enabled && len(c.Kafka.Brokers) == 0 {
		errs = append(errs, errors.New("kafka.brokers is required when kafka is enabled"))
	}
	if c.RateLimit.Enabled && (c.RateLimit.RequestsPerSecond <= 0 || c.RateLimit.Burst <= 0) {
		errs = append(errs, errors.New("ratelimit.requests_per_second and ratelimit.burst must be positive"))
	}
	return errors.Join(errs...)
}

func (c Config) HTTPAddr() string { return fmt.Sprintf(":%d", c.App.HTTPPort) }

func (c Config) GRPCAddr() string { return fmt.Sprintf(":%d", c.App.GRPCPort) }
