// SPDX-License-Identifier: Apache-2.0
// Copyright 2026 Rasul Khiriev

package models

const (
	// AlgorithmAESGCM is the only cipher tag this client seals or opens.
	AlgorithmAESGCM = "AES-GCM"

	// KDFArgon2id is the only key derivation tag this client understands.
	KDFArgon2id = "Argon2id"
)

// EncryptionMetadata carries everything besides the secret key that is
// required to open an [Envelope]. It travels next to the ciphertext on the
// wire under the "encryption" field.
type EncryptionMetadata struct {
	// Algorithm is the AEAD tag, always [AlgorithmAESGCM] when produced here.
	Algorithm string `json:"algorithm"`

	// IV is the base64-encoded 96-bit GCM nonce. Fresh for every envelope.
	IV string `json:"iv"`

	// Salt is the base64-encoded 256-bit Argon2id salt. Fresh for every envelope.
	Salt string `json:"salt"`

	// KDF is the key derivation tag, always [KDFArgon2id] when produced here.
	KDF string `json:"kdf"`

	// Iterations is the Argon2id time cost used at encryption time.
	Iterations uint32 `json:"iterations"`

	// MemorySize is the Argon2id memory cost in KiB. Envelopes written by
	// older clients omit it; the engine default applies in that case.
	MemorySize uint32 `json:"memorySize,omitempty"`

	// Parallelism is the Argon2id lane count. Omitted by older clients.
	Parallelism uint8 `json:"parallelism,omitempty"`
}

// Envelope is an encrypted payload bundled with the metadata needed to
// decrypt it. Field names follow the item-storage API body.
type Envelope struct {
	// Ciphertext is the base64-encoded AES-GCM output (ciphertext ‖ tag).
	Ciphertext string `json:"encryptedBlob"`

	// Metadata describes how Ciphertext was produced.
	Metadata EncryptionMetadata `json:"encryption"`
}

// KDFParams are the tunable Argon2id cost parameters.
type KDFParams struct {
	Iterations  uint32 `json:"iterations"`
	MemoryKB    uint32 `json:"memory_kb"`
	Parallelism uint8  `json:"parallelism"`
	KeyLength   uint32 `json:"key_length"`
}

// StrengthReport is the advisory result of a password strength check.
type StrengthReport struct {
	Valid      bool     `json:"valid"`
	Violations []string `json:"violations"`
}
