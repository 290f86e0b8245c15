// SPDX-License-Identifier: Apache-2.0
// Copyright 2026 Rasul Khiriev

package crypto

import (
	"errors"
	"io"
	"testing"

	"github.com/MKhiriev/go-key-keeper/internal/codec"
	"github.com/MKhiriev/go-key-keeper/models"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

// cheapParams keeps Argon2id fast in tests.
var cheapParams = models.KDFParams{Iterations: 1, MemoryKB: 64, Parallelism: 1, KeyLength: KeyLength}

const testSecret = models.SecretKey("k7Fq-2mZp9Xc4Lr8Tn1Vb6Hs3Jd5Wg0Ye7Ua2Oi4Pk9Ql1Mz8Nx6Cv3Bt5Rw0Sa2E")

func newTestEngine(opts ...EngineOption) Engine {
	return NewDefaultEngine(append([]EngineOption{WithDefaultParams(cheapParams)}, opts...)...)
}

type spyKDF struct {
	inner KDF
	calls []models.KDFParams
}

func (s *spyKDF) Derive(secret, salt []byte, params models.KDFParams) ([]byte, error) {
	s.calls = append(s.calls, params)
	return s.inner.Derive(secret, salt, params)
}

type failingReader struct{}

func (failingReader) Read([]byte) (int, error) { return 0, errors.New("entropy exhausted") }

func flipBit(t *testing.T, b64 string, idx int) string {
	t.Helper()
	raw, err := codec.DecodeBytes(b64)
	require.NoError(t, err)
	if idx < 0 {
		idx += len(raw)
	}
	raw[idx] ^= 0x01
	return codec.EncodeBytes(raw)
}

func TestEngine_EncryptDecrypt_RoundTrip(t *testing.T) {
	e := newTestEngine()

	tests := []struct {
		name      string
		plaintext string
	}{
		{name: "ascii", plaintext: "hello"},
		{name: "empty", plaintext: ""},
		{name: "json", plaintext: `{"loginId":"bob","password":"hunter2"}`},
		{name: "unicode", plaintext: "пароль 🔑 密码"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			env, err := e.Encrypt(tt.plaintext, testSecret)
			require.NoError(t, err)

			got, err := e.Decrypt(env, testSecret)
			require.NoError(t, err)
			assert.Equal(t, tt.plaintext, got)
		})
	}
}

func TestEngine_Encrypt_Metadata(t *testing.T) {
	e := newTestEngine()

	env, err := e.Encrypt("hello", testSecret)
	require.NoError(t, err)

	assert.Equal(t, models.AlgorithmAESGCM, env.Metadata.Algorithm)
	assert.Equal(t, models.KDFArgon2id, env.Metadata.KDF)
	assert.Equal(t, cheapParams.Iterations, env.Metadata.Iterations)
	assert.Equal(t, cheapParams.MemoryKB, env.Metadata.MemorySize)
	assert.Equal(t, cheapParams.Parallelism, env.Metadata.Parallelism)

	iv, err := codec.DecodeBytes(env.Metadata.IV)
	require.NoError(t, err)
	assert.Len(t, iv, NonceSize)

	salt, err := codec.DecodeBytes(env.Metadata.Salt)
	require.NoError(t, err)
	assert.Len(t, salt, SaltSize)

	// 5 байт открытого текста + 16 байт тега
	blob, err := codec.DecodeBytes(env.Ciphertext)
	require.NoError(t, err)
	assert.Len(t, blob, 5+16)
}

func TestEngine_Encrypt_NonDeterministic(t *testing.T) {
	e := newTestEngine()

	a, err := e.Encrypt("same input", testSecret)
	require.NoError(t, err)
	b, err := e.Encrypt("same input", testSecret)
	require.NoError(t, err)

	assert.NotEqual(t, a.Ciphertext, b.Ciphertext)
	assert.NotEqual(t, a.Metadata.IV, b.Metadata.IV)
	assert.NotEqual(t, a.Metadata.Salt, b.Metadata.Salt)
}

func TestEngine_Decrypt_WrongSecret(t *testing.T) {
	e := newTestEngine()

	env, err := e.Encrypt("hello", testSecret)
	require.NoError(t, err)

	got, err := e.Decrypt(env, models.SecretKey("another-secret"))
	assert.ErrorIs(t, err, ErrDecryptionFailed)
	assert.ErrorIs(t, err, ErrAuthenticationFailed)
	assert.Empty(t, got)
}

func TestEngine_Decrypt_Tampered(t *testing.T) {
	e := newTestEngine()

	env, err := e.Encrypt("attack at dawn", testSecret)
	require.NoError(t, err)

	tests := []struct {
		name   string
		mutate func(env *models.Envelope)
	}{
		{name: "first ciphertext byte", mutate: func(env *models.Envelope) { env.Ciphertext = flipBit(t, env.Ciphertext, 0) }},
		{name: "last ciphertext byte (tag)", mutate: func(env *models.Envelope) { env.Ciphertext = flipBit(t, env.Ciphertext, -1) }},
		{name: "iv", mutate: func(env *models.Envelope) { env.Metadata.IV = flipBit(t, env.Metadata.IV, 3) }},
		{name: "salt", mutate: func(env *models.Envelope) { env.Metadata.Salt = flipBit(t, env.Metadata.Salt, 7) }},
		{name: "iterations", mutate: func(env *models.Envelope) { env.Metadata.Iterations++ }},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			tampered := env
			tt.mutate(&tampered)

			got, err := e.Decrypt(tampered, testSecret)
			assert.ErrorIs(t, err, ErrDecryptionFailed)
			assert.Empty(t, got)
		})
	}
}

func TestEngine_Decrypt_UsesEnvelopeParams(t *testing.T) {
	sealer := newTestEngine()
	env, err := sealer.Encrypt("hello", testSecret, WithIterations(2), WithMemoryKB(128))
	require.NoError(t, err)
	assert.Equal(t, uint32(2), env.Metadata.Iterations)
	assert.Equal(t, uint32(128), env.Metadata.MemorySize)

	// Другие параметры по умолчанию у открывающего движка
	spy := &spyKDF{inner: NewArgon2idKDF()}
	opener := NewEngine(spy, NewAESGCMCipher(), WithDefaultParams(models.KDFParams{
		Iterations: 4, MemoryKB: 256, Parallelism: 2, KeyLength: KeyLength,
	}))

	got, err := opener.Decrypt(env, testSecret)
	require.NoError(t, err)
	assert.Equal(t, "hello", got)

	require.Len(t, spy.calls, 1)
	assert.Equal(t, models.KDFParams{Iterations: 2, MemoryKB: 128, Parallelism: 1, KeyLength: KeyLength}, spy.calls[0])
}

func TestEngine_Decrypt_FallsBackForMissingCostFields(t *testing.T) {
	e := newTestEngine()
	env, err := e.Encrypt("legacy", testSecret)
	require.NoError(t, err)

	env.Metadata.MemorySize = 0
	env.Metadata.Parallelism = 0

	got, err := e.Decrypt(env, testSecret)
	require.NoError(t, err)
	assert.Equal(t, "legacy", got)
}

func TestEngine_Encrypt_RandomFailure(t *testing.T) {
	e := newTestEngine(WithRandom(failingReader{}))

	_, err := e.Encrypt("hello", testSecret)
	assert.ErrorIs(t, err, ErrEncryptionFailed)
}

func TestEngine_Encrypt_ShortRandom(t *testing.T) {
	e := newTestEngine(WithRandom(io.LimitReader(failingReader{}, 0)))

	_, err := e.Encrypt("hello", testSecret)
	assert.ErrorIs(t, err, ErrEncryptionFailed)
}

func TestEngine_Encrypt_InvalidParams(t *testing.T) {
	e := newTestEngine()

	_, err := e.Encrypt("hello", testSecret, WithIterations(0))
	assert.ErrorIs(t, err, ErrEncryptionFailed)
	assert.ErrorIs(t, err, ErrKeyDerivation)
}

func TestEngine_Decrypt_Errors(t *testing.T) {
	e := newTestEngine()
	valid, err := e.Encrypt("hello", testSecret)
	require.NoError(t, err)

	tests := []struct {
		name    string
		mutate  func(env *models.Envelope)
		wantErr error
	}{
		{
			name:    "unsupported cipher",
			mutate:  func(env *models.Envelope) { env.Metadata.Algorithm = "ChaCha20-Poly1305" },
			wantErr: ErrUnsupportedAlgorithm,
		},
		{
			name:    "unsupported kdf",
			mutate:  func(env *models.Envelope) { env.Metadata.KDF = "PBKDF2" },
			wantErr: ErrUnsupportedAlgorithm,
		},
		{
			name:    "missing blob",
			mutate:  func(env *models.Envelope) { env.Ciphertext = "" },
			wantErr: codec.ErrInvalidFormat,
		},
		{
			name:    "iv not base64",
			mutate:  func(env *models.Envelope) { env.Metadata.IV = "***" },
			wantErr: codec.ErrInvalidFormat,
		},
		{
			name:    "iv wrong length",
			mutate:  func(env *models.Envelope) { env.Metadata.IV = codec.EncodeBytes(make([]byte, 16)) },
			wantErr: codec.ErrInvalidFormat,
		},
		{
			name:    "zero iterations",
			mutate:  func(env *models.Envelope) { env.Metadata.Iterations = 0 },
			wantErr: codec.ErrInvalidFormat,
		},
		{
			name:    "iterations above limit",
			mutate:  func(env *models.Envelope) { env.Metadata.Iterations = 1 << 31 },
			wantErr: ErrKeyDerivation,
		},
		{
			name:    "memory above limit",
			mutate:  func(env *models.Envelope) { env.Metadata.MemorySize = 4_000_000_000 },
			wantErr: ErrKeyDerivation,
		},
		{
			name: "parallelism above limit",
			mutate: func(env *models.Envelope) {
				env.Metadata.Parallelism = 255
				env.Metadata.MemorySize = 8 * 255
			},
			wantErr: ErrKeyDerivation,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			env := valid
			tt.mutate(&env)

			_, err := e.Decrypt(env, testSecret)
			assert.ErrorIs(t, err, tt.wantErr)
		})
	}
}

func TestEngine_Decrypt_KDFFailure(t *testing.T) {
	e := newTestEngine()
	env, err := e.Encrypt("hello", testSecret)
	require.NoError(t, err)

	// Память меньше 8 KiB на поток отклоняется KDF
	env.Metadata.MemorySize = 4
	env.Metadata.Parallelism = 1

	_, err = e.Decrypt(env, testSecret)
	assert.ErrorIs(t, err, ErrKeyDerivation)
	assert.NotErrorIs(t, err, ErrDecryptionFailed)
}

func TestEngine_DefaultParams(t *testing.T) {
	assert.Equal(t, DefaultKDFParams(), NewDefaultEngine().DefaultParams())
	assert.Equal(t, cheapParams, newTestEngine().DefaultParams())

	partial := NewDefaultEngine(WithDefaultParams(models.KDFParams{Iterations: 5}))
	assert.Equal(t, models.KDFParams{
		Iterations:  5,
		MemoryKB:    DefaultMemoryKB,
		Parallelism: DefaultParallelism,
		KeyLength:   KeyLength,
	}, partial.DefaultParams())
}

func TestEngine_ValidateSecretStrength(t *testing.T) {
	report := newTestEngine().ValidateSecretStrength("Passw0rd!")
	assert.True(t, report.Valid)
}
