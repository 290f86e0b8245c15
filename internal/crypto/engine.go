// SPDX-License-Identifier: Apache-2.0
// Copyright 2026 Rasul Khiriev

package crypto

import (
	"crypto/rand"
	"fmt"
	"io"

	"github.com/MKhiriev/go-key-keeper/internal/codec"
	"github.com/MKhiriev/go-key-keeper/models"
	"github.com/awnumar/memguard"
)

// engine is the private implementation of [Engine].
type engine struct {
	kdf    KDF
	cipher Cipher

	// params are the defaults recorded into every envelope sealed without
	// per-call overrides. Stored in the struct so they can be tuned per
	// deployment target (e.g. mobile vs. desktop).
	params models.KDFParams
	random io.Reader
}

// EngineOption configures an [Engine] at construction time.
type EngineOption func(*engine)

// WithDefaultParams replaces the default cost parameters. Zero fields keep
// the package defaults.
func WithDefaultParams(params models.KDFParams) EngineOption {
	return func(e *engine) {
		e.params = fillKDFParams(params, e.params)
	}
}

// WithRandom replaces the source of salts and nonces. Intended for tests.
func WithRandom(r io.Reader) EngineOption {
	return func(e *engine) {
		e.random = r
	}
}

// NewEngine constructs an [Engine] from a KDF and an AEAD cipher.
func NewEngine(kdf KDF, cipher Cipher, opts ...EngineOption) Engine {
	e := &engine{
		kdf:    kdf,
		cipher: cipher,
		params: DefaultKDFParams(),
		random: rand.Reader,
	}
	for _, opt := range opts {
		opt(e)
	}
	return e
}

// NewDefaultEngine constructs an Argon2id + AES-256-GCM [Engine].
func NewDefaultEngine(opts ...EngineOption) Engine {
	return NewEngine(NewArgon2idKDF(), NewAESGCMCipher(), opts...)
}

// EncryptOption overrides a cost parameter for a single Encrypt call.
type EncryptOption func(*models.KDFParams)

// WithIterations overrides the Argon2id time cost.
func WithIterations(iterations uint32) EncryptOption {
	return func(p *models.KDFParams) { p.Iterations = iterations }
}

// WithMemoryKB overrides the Argon2id memory cost in KiB.
func WithMemoryKB(memoryKB uint32) EncryptOption {
	return func(p *models.KDFParams) { p.MemoryKB = memoryKB }
}

// WithParallelism overrides the Argon2id lane count.
func WithParallelism(parallelism uint8) EncryptOption {
	return func(p *models.KDFParams) { p.Parallelism = parallelism }
}

// DefaultParams implements [Engine].
func (e *engine) DefaultParams() models.KDFParams {
	return e.params
}

// Encrypt implements [Engine].
func (e *engine) Encrypt(plaintext string, secret models.SecretKey, opts ...EncryptOption) (models.Envelope, error) {
	params := e.params
	for _, opt := range opts {
		opt(&params)
	}

	// 1. Fresh salt and nonce for every envelope
	salt, err := randomBytes(e.random, SaltSize)
	if err != nil {
		return models.Envelope{}, fmt.Errorf("%w: generate salt: %v", ErrEncryptionFailed, err)
	}
	nonce, err := randomBytes(e.random, NonceSize)
	if err != nil {
		return models.Envelope{}, fmt.Errorf("%w: generate nonce: %v", ErrEncryptionFailed, err)
	}

	// 2. Derive the key
	key, err := e.deriveKey(secret, salt, params)
	if err != nil {
		return models.Envelope{}, fmt.Errorf("%w: %w", ErrEncryptionFailed, err)
	}
	defer memguard.WipeBytes(key)

	// 3. Seal
	ciphertext, err := e.cipher.Seal([]byte(plaintext), key, nonce)
	if err != nil {
		return models.Envelope{}, fmt.Errorf("%w: seal: %w", ErrEncryptionFailed, err)
	}

	// 4. Wrap with the metadata needed to open it again
	return models.Envelope{
		Ciphertext: codec.EncodeBytes(ciphertext),
		Metadata: models.EncryptionMetadata{
			Algorithm:   models.AlgorithmAESGCM,
			IV:          codec.EncodeBytes(nonce),
			Salt:        codec.EncodeBytes(salt),
			KDF:         models.KDFArgon2id,
			Iterations:  params.Iterations,
			MemorySize:  params.MemoryKB,
			Parallelism: params.Parallelism,
		},
	}, nil
}

// Decrypt implements [Engine]. The key is always re-derived with the
// parameters recorded on env, never with the engine's current defaults,
// except for memory and parallelism on envelopes that predate them.
func (e *engine) Decrypt(env models.Envelope, secret models.SecretKey) (string, error) {
	meta := env.Metadata

	// 1. Refuse algorithms this client cannot open
	if meta.Algorithm != "" && meta.Algorithm != models.AlgorithmAESGCM {
		return "", fmt.Errorf("%w: cipher %q", ErrUnsupportedAlgorithm, meta.Algorithm)
	}
	if meta.KDF != "" && meta.KDF != models.KDFArgon2id {
		return "", fmt.Errorf("%w: kdf %q", ErrUnsupportedAlgorithm, meta.KDF)
	}

	// 2. Decode binary fields
	if err := codec.ValidateEnvelope(env); err != nil {
		return "", err
	}
	ciphertext, err := codec.DecodeBytes(env.Ciphertext)
	if err != nil {
		return "", err
	}
	nonce, err := codec.DecodeBytes(meta.IV)
	if err != nil {
		return "", err
	}
	salt, err := codec.DecodeBytes(meta.Salt)
	if err != nil {
		return "", err
	}
	if len(nonce) != NonceSize {
		return "", fmt.Errorf("%w: iv must be %d bytes, got %d", codec.ErrInvalidFormat, NonceSize, len(nonce))
	}

	// 3. Re-derive the key from the envelope's own parameters
	key, err := e.deriveKey(secret, salt, e.paramsFor(meta))
	if err != nil {
		return "", err
	}
	defer memguard.WipeBytes(key)

	// 4. Open and verify the tag. The cause is dropped on purpose.
	plaintext, err := e.cipher.Open(ciphertext, key, nonce)
	if err != nil {
		return "", ErrDecryptionFailed
	}
	return string(plaintext), nil
}

// ValidateSecretStrength implements [Engine].
func (e *engine) ValidateSecretStrength(candidate string) models.StrengthReport {
	return ValidateSecretStrength(candidate)
}

func (e *engine) deriveKey(secret models.SecretKey, salt []byte, params models.KDFParams) ([]byte, error) {
	secretBytes := []byte(secret)
	defer memguard.WipeBytes(secretBytes)

	return e.kdf.Derive(secretBytes, salt, params)
}

// paramsFor builds the KDF parameters recorded on an envelope.
func (e *engine) paramsFor(meta models.EncryptionMetadata) models.KDFParams {
	params := models.KDFParams{
		Iterations:  meta.Iterations,
		MemoryKB:    meta.MemorySize,
		Parallelism: meta.Parallelism,
		KeyLength:   KeyLength,
	}
	return fillKDFParams(params, e.params)
}

// fillKDFParams returns params with zero fields taken from fallback.
func fillKDFParams(params, fallback models.KDFParams) models.KDFParams {
	if params.Iterations == 0 {
		params.Iterations = fallback.Iterations
	}
	if params.MemoryKB == 0 {
		params.MemoryKB = fallback.MemoryKB
	}
	if params.Parallelism == 0 {
		params.Parallelism = fallback.Parallelism
	}
	if params.KeyLength == 0 {
		params.KeyLength = fallback.KeyLength
	}
	return params
}
