// Package tlsroots builds certificate pools for servers fronted by a
// private CA.
package tlsroots

import (
	"crypto/x509"
	"errors"
	"fmt"
	"os"
)

// ErrNoCertsFound indicates the PEM file held no usable certificates.
var ErrNoCertsFound = errors.New("tlsroots: no certificates found in PEM file")

// Pool returns the system roots extended with the certificates from the
// given PEM bundles. On platforms without a readable system pool it
// starts from an empty one.
func Pool(paths ...string) (*x509.CertPool, error) {
	pool, err := x509.SystemCertPool()
	if err != nil || pool == nil {
		pool = x509.NewCertPool()
	}
	for _, path := range paths {
		if err := appendPEM(pool, path); err != nil {
			return nil, err
		}
	}
	return pool, nil
}

func appendPEM(pool *x509.CertPool, path string) error {
	pem, err := os.ReadFile(path)
	if err != nil {
		return fmt.Errorf("tlsroots: read cert file %s: %w", path, err)
	}
	if !pool.AppendCertsFromPEM(pem) {
		return fmt.Errorf("%w: %s", ErrNoCertsFound, path)
	}
	return nil
}
