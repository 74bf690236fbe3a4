// Package tlsutil loads and generates TLS material for the desk gRPC listener.
package tlsutil

import (
	"crypto"
	"crypto/ecdsa"
	"crypto/elliptic"
	"crypto/rand"
	"crypto/tls"
	"crypto/x509"
	"crypto/x509/pkix"
	"encoding/pem"
	"errors"
	"fmt"
	"math/big"
	"net"
	"os"
	"path/filepath"
	"time"

	"google.golang.org/grpc/credentials"
)

// File names written by GenerateSelfSignedCert.
const (
	CAFile         = "ca.pem"
	CAKeyFile      = "ca-key.pem"
	ServerCertFile = "server.pem"
	ServerKeyFile  = "server-key.pem"
)

const caValidity = 10 * 365 * 24 * time.Hour

// ServerTLSConfig loads a PEM key pair as gRPC server credentials (TLS 1.2+).
func ServerTLSConfig(certFile, keyFile string) (credentials.TransportCredentials, error) {
	cert, err := tls.LoadX509KeyPair(certFile, keyFile)
	if err != nil {
		return nil, fmt.Errorf("load key pair %s: %w", certFile, err)
	}
	return credentials.NewTLS(&tls.Config{
		Certificates: []tls.Certificate{cert},
		MinVersion:   tls.VersionTLS12,
	}), nil
}

// ClientTLSConfig trusts the CA in caFile, as written by GenerateSelfSignedCert.
// Desk terminals use it to reach a listener running on a development cert.
func ClientTLSConfig(caFile, serverName string) (credentials.TransportCredentials, error) {
	pemBytes, err := os.ReadFile(caFile)
	if err != nil {
		return nil, fmt.Errorf("read ca %s: %w", caFile, err)
	}
	pool := x509.NewCertPool()
	if !pool.AppendCertsFromPEM(pemBytes) {
		return nil, fmt.Errorf("no certificates in %s", caFile)
	}
	return credentials.NewTLS(&tls.Config{
		RootCAs:    pool,
		ServerName: serverName,
		MinVersion: tls.VersionTLS12,
	}), nil
}

// GenerateSelfSignedCert writes a development CA and a server certificate for
// hosts (DNS names or IPs) into outDir. Keys are P-256 and readable by the
// owner only.
func GenerateSelfSignedCert(hosts []string, outDir string, validity time.Duration) error {
	if len(hosts) == 0 {
		return errors.New("at least one host is required")
	}
	if err := os.MkdirAll(outDir, 0o750); err != nil {
		return fmt.Errorf("create %s: %w", outDir, err)
	}
	now := time.Now()

	caTemplate := &x509.Certificate{
		Subject:               pkix.Name{Organization: []string{"Qarz Portal Dev CA"}},
		NotBefore:             now,
		NotAfter:              now.Add(caValidity),
		KeyUsage:              x509.KeyUsageCertSign | x509.KeyUsageCRLSign,
		BasicConstraintsValid: true,
		IsCA:                  true,
	}
	caCert, caKey, err := issue(caTemplate, nil, nil)
	if err != nil {
		return fmt.Errorf("issue ca: %w", err)
	}

	serverTemplate := &x509.Certificate{
		Subject:     pkix.Name{Organization: []string{"Qarz Portal"}, CommonName: hosts[0]},
		NotBefore:   now,
		NotAfter:    now.Add(validity),
		KeyUsage:    x509.KeyUsageDigitalSignature,
		ExtKeyUsage: []x509.ExtKeyUsage{x509.ExtKeyUsageServerAuth},
	}
	for _, h := range hosts {
		if ip := net.ParseIP(h); ip != nil {
			serverTemplate.IPAddresses = append(serverTemplate.IPAddresses, ip)
		} else {
			serverTemplate.DNSNames = append(serverTemplate.DNSNames, h)
		}
	}
	serverCert, serverKey, err := issue(serverTemplate, caCert, caKey)
	if err != nil {
		return fmt.Errorf("issue server certificate: %w", err)
	}

	return errors.Join(
		writeCert(filepath.Join(outDir, CAFile), caCert),
		writeKey(filepath.Join(outDir, CAKeyFile), caKey),
		writeCert(filepath.Join(outDir, ServerCertFile), serverCert),
		writeKey(filepath.Join(outDir, ServerKeyFile), serverKey),
	)
}

// issue signs template with parent; a nil parent self-signs.
func issue(template, parent *x509.Certificate, parentKey crypto.Signer) (*x509.Certificate, *ecdsa.PrivateKey, error) {
	key, err := ecdsa.GenerateKey(elliptic.P256(), rand.Reader)
	if err != nil {
		return nil, nil, err
	}
	serial, err := rand.Int(rand.Reader, new(big.Int).Lsh(big.NewInt(1), 128))
	if err != nil {
		return nil, nil, err
	}
	template.SerialNumber = serial
	if parent == nil {
		parent, parentKey = template, key
	}
	der, err := x509.CreateCertificate(rand.Reader, template, parent, &key.PublicKey, parentKey)
	if err != nil {
		return nil, nil, err
	}
	cert, err := x509.ParseCertificate(der)
	if err != nil {
		return nil, nil, err
	}
	return cert, key, nil
}

func writeCert(path string, cert *x509.Certificate) error {
	return writePEM(path, &pem.Block{Type: "CERTIFICATE", Bytes: cert.Raw}, 0o644)
}

func writeKey(path string, key *ecdsa.PrivateKey) error {
	der, err := x509.MarshalECPrivateKey(key)
	if err != nil {
		return fmt.Errorf("marshal key for %s: %w", path, err)
	}
	return writePEM(path, &pem.Block{Type: "EC PRIVATE KEY", Bytes: der}, 0o600)
}

func writePEM(path string, block *pem.Block, perm os.FileMode) error {
	if err := os.WriteFile(path, pem.EncodeToMemory(block), perm); err != nil {
		return fmt.Errorf("write %s: %w", path, err)
	}
	return nil
}
