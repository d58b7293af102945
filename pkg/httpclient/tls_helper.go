package httpclient

import (
	"crypto/tls"
	"crypto/x509"
	"fmt"
	"os"
)

// SecureTLSConfig creates a TLS configuration with certificate validation,
// TLS 1.2 minimum, and an optional extra root CA.
func SecureTLSConfig(cfg *TLSConfig) (*tls.Config, error) {
	tlsConfig := &tls.Config{
		MinVersion: tls.VersionTLS12,
	}
	if cfg == nil {
		return tlsConfig, nil
	}

	if cfg.MinVersion > tlsConfig.MinVersion {
		tlsConfig.MinVersion = cfg.MinVersion
	}
	// #nosec G402 -- only reachable through TestConfig or an explicit config file setting
	tlsConfig.InsecureSkipVerify = cfg.InsecureSkipVerify

	if cfg.RootCAFile != "" {
		caCert, err := os.ReadFile(cfg.RootCAFile)
		if err != nil {
			return nil, fmt.Errorf("failed to read CA certificate from %s: %w", cfg.RootCAFile, err)
		}

		pool, err := x509.SystemCertPool()
		if err != nil || pool == nil {
			pool = x509.NewCertPool()
		}
		if !pool.AppendCertsFromPEM(caCert) {
			return nil, fmt.Errorf("failed to parse CA certificate from %s", cfg.RootCAFile)
		}

		tlsConfig.RootCAs = pool
	}

	return tlsConfig, nil
}
