// SPDX-License-Identifier: Apache-2.0
// Copyright 2026 Rasul Khiriev

// Package crypto is the client-side cryptographic core. It knows nothing
// about the network, storage, or users; it turns a secret key and a
// plaintext into a self-describing envelope and back.
//
// Scheme:
//
//	salt, iv = random(32), random(12)                 (per call)
//	key      = Argon2id(secret, salt, t, m, p) -> 32B  (KDF)
//	blob     = AES-256-GCM(key, iv, plaintext)         (Cipher)
//	envelope = {blob, {AES-GCM, iv, salt, Argon2id, t, m, p}}
package crypto

import "github.com/MKhiriev/go-key-keeper/models"

//go:generate mockgen -source=interfaces.go -destination=../mock/crypto_mock.go -package=mock

// KDF derives a fixed-length symmetric key from a high-entropy secret.
type KDF interface {
	// Derive is deterministic for identical inputs. Any invalid parameter
	// combination fails with [ErrKeyDerivation].
	Derive(secret, salt []byte, params models.KDFParams) ([]byte, error)
}

// Cipher provides authenticated encryption under a derived key and a
// single-use nonce.
type Cipher interface {
	// Seal encrypts plaintext and appends the authentication tag.
	Seal(plaintext, key, nonce []byte) ([]byte, error)

	// Open verifies and decrypts ciphertext. On failure it returns
	// [ErrAuthenticationFailed] and no plaintext.
	Open(ciphertext, key, nonce []byte) ([]byte, error)
}

// Engine is the public contract consumed by the rest of the client.
type Engine interface {
	// Encrypt seals plaintext under secret with a fresh salt and nonce.
	// Cost parameters default to the engine's configuration and can be
	// overridden per call. Two calls with identical input never produce
	// the same envelope.
	Encrypt(plaintext string, secret models.SecretKey, opts ...EncryptOption) (models.Envelope, error)

	// Decrypt opens env with secret, re-deriving the key from the cost
	// parameters stored on env itself. A wrong secret or a tampered
	// envelope yields [ErrDecryptionFailed].
	Decrypt(env models.Envelope, secret models.SecretKey) (string, error)

	// ValidateSecretStrength reports whether a human-chosen password meets
	// the minimum length and character-class rules. Advisory only.
	ValidateSecretStrength(candidate string) models.StrengthReport

	// DefaultParams returns the cost parameters used when Encrypt is
	// called without overrides.
	DefaultParams() models.KDFParams
}
