// SPDX-License-Identifier: Apache-2.0
// Copyright 2026 Rasul Khiriev

package crypto

import (
	"crypto/aes"
	"crypto/cipher"
	"fmt"
)

// Sizes of the random values generated for every envelope.
const (
	NonceSize = 12 // 96-bit GCM nonce
	SaltSize  = 32 // 256-bit Argon2id salt
)

// aesGCMCipher is the private implementation of [Cipher].
type aesGCMCipher struct{}

// NewAESGCMCipher constructs a [Cipher] backed by AES-256-GCM with a
// 128-bit tag appended to the ciphertext.
func NewAESGCMCipher() Cipher {
	return &aesGCMCipher{}
}

// Seal implements [Cipher]. key must be 32 bytes and nonce 12 bytes;
// anything else is [ErrEncryptionFailed].
func (c *aesGCMCipher) Seal(plaintext, key, nonce []byte) ([]byte, error) {
	gcm, err := newGCM(key)
	if err != nil {
		return nil, fmt.Errorf("%w: %v", ErrEncryptionFailed, err)
	}
	if len(nonce) != NonceSize {
		return nil, fmt.Errorf("%w: nonce must be %d bytes, got %d", ErrEncryptionFailed, NonceSize, len(nonce))
	}

	return gcm.Seal(nil, nonce, plaintext, nil), nil
}

// Open implements [Cipher]. Every failure, including a malformed key or
// nonce, is reported as [ErrAuthenticationFailed] without detail.
func (c *aesGCMCipher) Open(ciphertext, key, nonce []byte) ([]byte, error) {
	gcm, err := newGCM(key)
	if err != nil {
		return nil, ErrAuthenticationFailed
	}
	if len(nonce) != NonceSize {
		return nil, ErrAuthenticationFailed
	}

	plaintext, err := gcm.Open(nil, nonce, ciphertext, nil)
	if err != nil {
		return nil, ErrAuthenticationFailed
	}
	return plaintext, nil
}

func newGCM(key []byte) (cipher.AEAD, error) {
	if len(key) != int(KeyLength) {
		return nil, fmt.Errorf("invalid key length: %d", len(key))
	}

	block, err := aes.NewCipher(key)
	if err != nil {
		return nil, fmt.Errorf("create cipher: %w", err)
	}

	gcm, err := cipher.NewGCM(block)
	if err != nil {
		return nil, fmt.Errorf("create gcm: %w", err)
	}
	return gcm, nil
}
