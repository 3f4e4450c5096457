// Copyright (c) 2024-2025 Jesse Morgan / Morgan Forge
// SPDX-License-Identifier: AGPL-3.0-or-later

package storage

import (
	"crypto/rand"
	"encoding/base64"
	"errors"
	"fmt"
	"io"
	"os"
	"path/filepath"
	"strings"

	"golang.org/x/crypto/chacha20poly1305"

	"github.com/DarthRevanXX/assignment-front/internal/util"
)

// =============================================================================
// TOKEN SEALING
// =============================================================================

// SECURITY: The bearer token is sealed at rest so a copied state database is
// useless without the per-install key file next to it. This is obfuscation
// against casual disclosure, not protection against an attacker with full
// access to the home directory.

// sealedPrefix marks a sealed value (format: sealed:base64(nonce|ciphertext)).
const sealedPrefix = "sealed:"

var (
	// ErrSealCorrupt indicates a sealed value that cannot be decoded.
	ErrSealCorrupt = errors.New("sealed value is corrupt")
)

// Sealer seals and opens short secrets with a key kept in a 0600 file.
type Sealer struct {
	key []byte
}

// NewSealer loads the key at keyPath, generating a fresh one on first use.
func NewSealer(keyPath string) (*Sealer, error) {
	key, err := os.ReadFile(keyPath)
	if err == nil && len(key) == chacha20poly1305.KeySize {
		return &Sealer{key: key}, nil
	}
	if err != nil && !os.IsNotExist(err) {
		return nil, fmt.Errorf("failed to read seal key: %w", err)
	}

	// First run (or truncated key file): generate and persist a new key.
	key = make([]byte, chacha20poly1305.KeySize)
	if _, err := io.ReadFull(rand.Reader, key); err != nil {
		return nil, fmt.Errorf("failed to generate seal key: %w", err)
	}
	if err := os.MkdirAll(filepath.Dir(keyPath), 0700); err != nil {
		return nil, fmt.Errorf("failed to create key directory: %w", err)
	}
	if err := util.AtomicWriteFile(keyPath, key, 0600); err != nil {
		return nil, fmt.Errorf("failed to persist seal key: %w", err)
	}
	return &Sealer{key: key}, nil
}

// DefaultKeyPath returns the default location of the seal key file.
func DefaultKeyPath() (string, error) {
	home, err := os.UserHomeDir()
	if err != nil {
		return "", fmt.Errorf("could not determine home directory: %w", err)
	}
	return filepath.Join(home, ".taskdeck", "state.key"), nil
}

// Seal encrypts plaintext and returns a self-describing string value.
func (s *Sealer) Seal(plaintext string) (string, error) {
	aead, err := chacha20poly1305.New(s.key)
	if err != nil {
		return "", fmt.Errorf("failed to initialize cipher: %w", err)
	}

	nonce := make([]byte, aead.NonceSize())
	if _, err := io.ReadFull(rand.Reader, nonce); err != nil {
		return "", fmt.Errorf("failed to generate nonce: %w", err)
	}

	sealed := aead.Seal(nonce, nonce, []byte(plaintext), nil)
	return sealedPrefix + base64.StdEncoding.EncodeToString(sealed), nil
}

// Open decrypts a value produced by Seal. Values without the sealed prefix
// are returned unchanged, so plaintext state written by older builds still
// hydrates.
func (s *Sealer) Open(value string) (string, error) {
	if !strings.HasPrefix(value, sealedPrefix) {
		return value, nil
	}

	raw, err := base64.StdEncoding.DecodeString(strings.TrimPrefix(value, sealedPrefix))
	if err != nil {
		return "", fmt.Errorf("%w: %v", ErrSealCorrupt, err)
	}

	aead, err := chacha20poly1305.New(s.key)
	if err != nil {
		return "", fmt.Errorf("failed to initialize cipher: %w", err)
	}
	if len(raw) < aead.NonceSize() {
		return "", ErrSealCorrupt
	}

	nonce, ciphertext := raw[:aead.NonceSize()], raw[aead.NonceSize():]
	plaintext, err := aead.Open(nil, nonce, ciphertext, nil)
	if err != nil {
		return "", fmt.Errorf("%w: %v", ErrSealCorrupt, err)
	}
	return string(plaintext), nil
}
