package config

import (
	"fmt"

	"github.com/Farhan-176/Mcrofinance-Loan-App/pkg/auth"
	pkgkafka "github.com/Farhan-176/Mcrofinance-Loan-App/pkg/kafka"
)

// JWT resolves the signing material. RSA key files win over the shared
// secret; a public key alone gives a validate-only service.
func (a AuthConfig) JWT() (auth.JWTConfig, error) {
	cfg := auth.JWTConfig{Issuer: a.Issuer, Expiration: a.TokenTTL}
	if a.PublicKeyFile == "" {
		cfg.Secret = a.JWTSecret
		return cfg, nil
	}

	pub, err := auth.LoadKeyFromFile(a.PublicKeyFile)
	if err != nil {
		return auth.JWTConfig{}, fmt.Errorf("load jwt public key: %w", err)
	}
	cfg.PublicKeyPEM = string(pub)

	if a.PrivateKeyFile != "" {
		priv, err := auth.LoadKeyFromFile(a.PrivateKeyFile)
		if err != nil {
			return auth.JWTConfig{}, fmt.Errorf("load jwt private key: %w", err)
		}
		cfg.PrivateKeyPEM = string(priv)
	}
	return cfg, nil
}

// Producer converts the settings for the shared producer.
func (k KafkaConfig) Producer() pkgkafka.Config {
	return pkgkafka.Config{
		Brokers:       k.Brokers,
		TLS:           k.TLS,
		SASLEnabled:   k.SASLMechanism != "",
		SASLMechanism: k.SASLMechanism,
		SASLUsername:  k.SASLUsername,
		SASLPassword:  k.SASLPassword,
	}
}
