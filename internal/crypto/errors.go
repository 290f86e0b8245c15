// SPDX-License-Identifier: Apache-2.0
// Copyright 2026 Rasul Khiriev

package crypto

import "errors"

// Cryptographic errors. Callers should match them with [errors.Is].
var (
	// ErrUnsupportedAlgorithm is returned when an envelope declares a cipher
	// or KDF this client does not implement.
	ErrUnsupportedAlgorithm = errors.New("unsupported algorithm")

	// ErrKeyDerivation is returned when the KDF rejects its parameters or
	// fails internally.
	ErrKeyDerivation = errors.New("key derivation failed")

	// ErrEncryptionFailed is returned when a primitive fails while sealing,
	// for example when the random source cannot be read.
	ErrEncryptionFailed = errors.New("encryption failed")

	// ErrDecryptionFailed is returned for a wrong key, a corrupted
	// ciphertext, or tampering. The three cases are deliberately
	// indistinguishable.
	ErrDecryptionFailed = errors.New("decryption failed")

	// ErrAuthenticationFailed is the AEAD-level name of [ErrDecryptionFailed].
	// Both names refer to the same value.
	ErrAuthenticationFailed = ErrDecryptionFailed
)
