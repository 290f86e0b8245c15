// SPDX-License-Identifier: Apache-2.0
// Copyright 2026 Rasul Khiriev

package crypto

import (
	"crypto/rand"
	"fmt"
	"io"
	"math/big"
	"strings"

	"github.com/MKhiriev/go-key-keeper/models"
)

// randomBytes reads n bytes from r. r must be a CSPRNG in production.
func randomBytes(r io.Reader, n int) ([]byte, error) {
	b := make([]byte, n)
	if _, err := io.ReadFull(r, b); err != nil {
		return nil, err
	}
	return b, nil
}

// GenerateSecretKey returns a fresh [models.SecretKey] of
// [models.SecretKeyLength] characters drawn uniformly from
// [models.SecretKeyAlphabet] using the OS CSPRNG.
func GenerateSecretKey() (models.SecretKey, error) {
	return GenerateSecretKeyFrom(rand.Reader)
}

// GenerateSecretKeyFrom is [GenerateSecretKey] with an explicit random source.
func GenerateSecretKeyFrom(r io.Reader) (models.SecretKey, error) {
	alphabetSize := big.NewInt(int64(len(models.SecretKeyAlphabet)))

	var b strings.Builder
	b.Grow(models.SecretKeyLength)
	for range models.SecretKeyLength {
		idx, err := rand.Int(r, alphabetSize)
		if err != nil {
			return "", fmt.Errorf("generate secret key: %w", err)
		}
		b.WriteByte(models.SecretKeyAlphabet[idx.Int64()])
	}

	return models.SecretKey(b.String()), nil
}

// IsWellFormedSecretKey reports whether s has the length and alphabet of a
// generated secret key.
func IsWellFormedSecretKey(s models.SecretKey) bool {
	if len(s) != models.SecretKeyLength {
		return false
	}
	for _, c := range string(s) {
		if !strings.ContainsRune(models.SecretKeyAlphabet, c) {
			return false
		}
	}
	return true
}
