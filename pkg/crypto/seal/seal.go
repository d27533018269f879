// Package seal provides authenticated encryption for small secrets held
// at rest, such as the persisted auth token.
//
// It selects the cipher by hardware: AES-GCM where AES instructions are
// available, ChaCha20-Poly1305 otherwise. The nonce is generated per call
// and prepended to the ciphertext, so a sealed blob is self-contained.
package seal

import (
	"crypto/aes"
	"crypto/cipher"
	"crypto/rand"
	"errors"
	"io"
	"runtime"

	"golang.org/x/crypto/chacha20poly1305"
)

// KeySize is the required key length in bytes.
const KeySize = 32

var (
	// ErrInvalidKey indicates the key is not KeySize bytes.
	ErrInvalidKey = errors.New("seal: key must be 32 bytes")

	// ErrCorrupt indicates the blob is truncated or failed authentication.
	ErrCorrupt = errors.New("seal: blob corrupt or wrong key")
)

// Sealer seals and opens secrets with one symmetric key.
type Sealer struct {
	aead cipher.AEAD
}

// New creates a Sealer, picking the cipher for the current hardware.
func New(key []byte) (*Sealer, error) {
	if len(key) != KeySize {
		return nil, ErrInvalidKey
	}

	var aead cipher.AEAD
	var err error
	if hasAESAcceleration() {
		var block cipher.Block
		block, err = aes.NewCipher(key)
		if err == nil {
			aead, err = cipher.NewGCM(block)
		}
	} else {
		aead, err = chacha20poly1305.New(key)
	}
	if err != nil {
		return nil, err
	}
	return &Sealer{aead: aead}, nil
}

// Seal encrypts plaintext, binding the additional data to the ciphertext.
func (s *Sealer) Seal(plaintext, additionalData []byte) ([]byte, error) {
	nonce := make([]byte, s.aead.NonceSize())
	if _, err := io.ReadFull(rand.Reader, nonce); err != nil {
		return nil, err
	}
	return s.aead.Seal(nonce, nonce, plaintext, additionalData), nil
}

// Open decrypts a blob produced by Seal with the same key and data.
func (s *Sealer) Open(blob, additionalData []byte) ([]byte, error) {
	if len(blob) < s.aead.NonceSize() {
		return nil, ErrCorrupt
	}
	nonce, ciphertext := blob[:s.aead.NonceSize()], blob[s.aead.NonceSize():]
	plaintext, err := s.aead.Open(nil, nonce, ciphertext, additionalData)
	if err != nil {
		return nil, ErrCorrupt
	}
	return plaintext, nil
}

// hasAESAcceleration reports whether the platform is one where Go's
// crypto/aes uses hardware instructions.
func hasAESAcceleration() bool {
	switch runtime.GOARCH {
	case "amd64", "arm64":
		return true
	default:
		return false
	}
}

// GenerateKey produces a fresh random key.
func GenerateKey() ([]byte, error) {
	key := make([]byte, KeySize)
	if _, err := io.ReadFull(rand.Reader, key); err != nil {
		return nil, err
	}
	return key, nil
}
