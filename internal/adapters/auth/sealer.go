package auth

import (
	"crypto/rand"
	"errors"
	"fmt"

	"golang.org/x/crypto/nacl/secretbox"
	"plannr/internal/domain"
)

const nonceSize = 24

// ErrUnsealable is returned when a sealed token was tampered with, truncated, or sealed
// under a different key.
var ErrUnsealable = errors.New("sealed token cannot be opened")

type secretboxSealer struct {
	key [32]byte
}

// NewSecretboxSealer returns a TokenSealer using NaCl secretbox with a 32-byte key.
// Sealed values are nonce || box.
func NewSecretboxSealer(key []byte) (domain.TokenSealer, error) {
	if len(key) != 32 {
		return nil, fmt.Errorf("secretbox key must be 32 bytes, got %d", len(key))
	}
	s := &secretboxSealer{}
	copy(s.key[:], key)
	return s, nil
}

func (s *secretboxSealer) Seal(plaintext []byte) ([]byte, error) {
	var nonce [nonceSize]byte
	if _, err := rand.Read(nonce[:]); err != nil {
		return nil, fmt.Errorf("failed to generate nonce: %w", err)
	}
	return secretbox.Seal(nonce[:], plaintext, &nonce, &s.key), nil
}

func (s *secretboxSealer) Open(sealed []byte) ([]byte, error) {
	if len(sealed) < nonceSize+secretbox.Overhead {
		return nil, ErrUnsealable
	}
	var nonce [nonceSize]byte
	copy(nonce[:], sealed[:nonceSize])
	out, ok := secretbox.Open(nil, sealed[nonceSize:], &nonce, &s.key)
	if !ok {
		return nil, ErrUnsealable
	}
	return out, nil
}
