// SPDX-License-Identifier: Apache-2.0
// Copyright 2026 Rasul Khiriev

package crypto

import (
	"fmt"

	"github.com/MKhiriev/go-key-keeper/models"
	"golang.org/x/crypto/argon2"
)

// Default Argon2id cost parameters.
const (
	DefaultIterations  uint32 = 3
	DefaultMemoryKB    uint32 = 64 * 1024 // 64 MiB
	DefaultParallelism uint8  = 1
	KeyLength          uint32 = 32 // AES-256
)

// Upper bounds on cost parameters read from envelopes. Anything above them
// is refused before Argon2id runs.
const (
	MaxIterations  uint32 = 64
	MaxMemoryKB    uint32 = 1024 * 1024 // 1 GiB
	MaxParallelism uint8  = 16
)

// DefaultKDFParams returns the default Argon2id parameters:
//   - time cost:   3 iterations
//   - memory cost: 64 MiB
//   - parallelism: 1 lane
//   - key length:  32 bytes (256 bits)
func DefaultKDFParams() models.KDFParams {
	return models.KDFParams{
		Iterations:  DefaultIterations,
		MemoryKB:    DefaultMemoryKB,
		Parallelism: DefaultParallelism,
		KeyLength:   KeyLength,
	}
}

// DefaultKDFLimits returns the default upper bounds. KeyLength is unused.
func DefaultKDFLimits() models.KDFParams {
	return models.KDFParams{
		Iterations:  MaxIterations,
		MemoryKB:    MaxMemoryKB,
		Parallelism: MaxParallelism,
	}
}

// argon2idKDF is the private implementation of [KDF].
type argon2idKDF struct {
	limits models.KDFParams
}

// KDFOption configures the Argon2id [KDF].
type KDFOption func(*argon2idKDF)

// WithLimits replaces the upper bounds on cost parameters. Zero fields keep
// the package maximums.
func WithLimits(limits models.KDFParams) KDFOption {
	return func(a *argon2idKDF) {
		a.limits = fillKDFParams(limits, a.limits)
	}
}

// NewArgon2idKDF constructs a [KDF] backed by Argon2id.
func NewArgon2idKDF(opts ...KDFOption) KDF {
	a := &argon2idKDF{limits: DefaultKDFLimits()}
	for _, opt := range opts {
		opt(a)
	}
	return a
}

// Derive implements [KDF]. The parameters are checked up front because
// argon2.IDKey panics on some invalid combinations and silently adjusts
// others; a panic that still escapes is converted to [ErrKeyDerivation].
func (a *argon2idKDF) Derive(secret, salt []byte, params models.KDFParams) (key []byte, err error) {
	if err = validateKDFParams(params, a.limits); err != nil {
		return nil, err
	}
	if len(salt) == 0 {
		return nil, fmt.Errorf("%w: empty salt", ErrKeyDerivation)
	}

	defer func() {
		if r := recover(); r != nil {
			key = nil
			err = fmt.Errorf("%w: %v", ErrKeyDerivation, r)
		}
	}()

	return argon2.IDKey(secret, salt, params.Iterations, params.MemoryKB, params.Parallelism, params.KeyLength), nil
}

func validateKDFParams(params, limits models.KDFParams) error {
	switch {
	case params.Iterations > limits.Iterations:
		return fmt.Errorf("%w: iterations %d above limit %d", ErrKeyDerivation, params.Iterations, limits.Iterations)
	case params.MemoryKB > limits.MemoryKB:
		return fmt.Errorf("%w: memory %d KiB above limit %d KiB", ErrKeyDerivation, params.MemoryKB, limits.MemoryKB)
	case params.Parallelism > limits.Parallelism:
		return fmt.Errorf("%w: parallelism %d above limit %d", ErrKeyDerivation, params.Parallelism, limits.Parallelism)
	case params.Iterations < 1:
		return fmt.Errorf("%w: iterations must be at least 1", ErrKeyDerivation)
	case params.Parallelism < 1:
		return fmt.Errorf("%w: parallelism must be at least 1", ErrKeyDerivation)
	case params.MemoryKB < 8*uint32(params.Parallelism):
		return fmt.Errorf("%w: memory must be at least 8 KiB per lane", ErrKeyDerivation)
	case params.KeyLength != KeyLength:
		return fmt.Errorf("%w: key length must be %d bytes", ErrKeyDerivation, KeyLength)
	}
	return nil
}
