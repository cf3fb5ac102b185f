package adapter

import (
	"crypto/tls"
	"crypto/x509"
	"errors"
	"fmt"
	"os"
)

// MakeClientTLSConfig returns a [*tls.Config] that trusts the system roots
// plus the PEM certificates in caFile.
func MakeClientTLSConfig(caFile string) (*tls.Config, error) {
	const op = "adapter.MakeClientTLSConfig"

	caCert, err := os.ReadFile(caFile)
	if err != nil {
		return nil, fmt.Errorf("%s: failed to read CA certificate file: %w", op, err)
	}

	pool, err := x509.SystemCertPool()
	if err != nil {
		pool = x509.NewCertPool()
	}

	if !pool.AppendCertsFromPEM(caCert) {
		return nil, fmt.Errorf("%s: %w", op, errors.New("failed to parse CA certificate"))
	}

	return &tls.Config{
		RootCAs:    pool,
		MinVersion: tls.VersionTLS12,
	}, nil
}
