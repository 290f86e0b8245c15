// SPDX-License-Identifier: Apache-2.0
// Copyright 2026 Rasul Khiriev

package config

import (
	"time"

	"github.com/MKhiriev/go-key-keeper/internal/crypto"
	"github.com/MKhiriev/go-key-keeper/models"
)

// StructuredConfig is the top-level configuration container for the
// go-key-keeper client. It aggregates all sub-configurations and is
// populated by merging defaults, environment variables, command-line flags,
// and an optional JSON file.
//
// Struct tags:
//   - envPrefix: prefix applied to all nested env tag lookups (caarlos0/env).
//   - env: direct environment variable name for scalar fields.
type StructuredConfig struct {
	// Crypto holds the default Argon2id cost parameters used for new
	// envelopes.
	Crypto CryptoConfig `envPrefix:"CRYPTO_"`

	// Storage holds the location of the local secret key store.
	Storage StorageConfig `envPrefix:"STORAGE_"`

	// Adapter holds the item-storage API address and timeout.
	Adapter AdapterConfig `envPrefix:"ADAPTER_"`

	// Session holds the identity and access token of the logged-in user.
	Session SessionConfig `envPrefix:"SESSION_"`

	// Log holds the log sink and level.
	Log LogConfig `envPrefix:"LOG_"`

	// Workers holds the bulk decryption pool settings.
	Workers WorkersConfig `envPrefix:"WORKERS_"`

	// JSONFilePath is the optional path to a JSON configuration file.
	// Populated via the CONFIG environment variable or the -c / -config flag.
	JSONFilePath string `env:"CONFIG"`

	// AssumeYes skips interactive confirmations (-yes).
	AssumeYes bool

	// Output is the file commands write artifacts to (-o). Empty means
	// stdout.
	Output string

	// Args are the positional arguments left after flag parsing; the first
	// one names the command.
	Args []string
}

// CryptoConfig holds the default key derivation cost parameters.
type CryptoConfig struct {
	// Iterations is the Argon2id time cost.
	// Env: CRYPTO_KDF_ITERATIONS
	Iterations uint32 `env:"KDF_ITERATIONS"`

	// MemoryKB is the Argon2id memory cost in KiB.
	// Env: CRYPTO_KDF_MEMORY_KB
	MemoryKB uint32 `env:"KDF_MEMORY_KB"`

	// Parallelism is the Argon2id lane count.
	// Env: CRYPTO_KDF_PARALLELISM
	Parallelism uint8 `env:"KDF_PARALLELISM"`

	// MaxIterations caps the time cost accepted from an envelope.
	// Env: CRYPTO_KDF_MAX_ITERATIONS
	MaxIterations uint32 `env:"KDF_MAX_ITERATIONS"`

	// MaxMemoryKB caps the memory cost in KiB accepted from an envelope.
	// Env: CRYPTO_KDF_MAX_MEMORY_KB
	MaxMemoryKB uint32 `env:"KDF_MAX_MEMORY_KB"`

	// MaxParallelism caps the lane count accepted from an envelope.
	// Env: CRYPTO_KDF_MAX_PARALLELISM
	MaxParallelism uint8 `env:"KDF_MAX_PARALLELISM"`
}

// KDFParams converts the configuration into engine parameters.
func (c CryptoConfig) KDFParams() models.KDFParams {
	return models.KDFParams{
		Iterations:  c.Iterations,
		MemoryKB:    c.MemoryKB,
		Parallelism: c.Parallelism,
		KeyLength:   crypto.KeyLength,
	}
}

// KDFLimits converts the configured maximums into KDF limits.
func (c CryptoConfig) KDFLimits() models.KDFParams {
	return models.KDFParams{
		Iterations:  c.MaxIterations,
		MemoryKB:    c.MaxMemoryKB,
		Parallelism: c.MaxParallelism,
	}
}

// StorageConfig holds the local secret key store location.
type StorageConfig struct {
	// DSN selects the backend: "memory", "bolt://<path>" or a SQLite file
	// path.
	// Env: STORAGE_DSN
	DSN string `env:"DSN"`
}

// AdapterConfig holds network settings used by the item-storage client.
type AdapterConfig struct {
	// HTTPAddress is the item-storage API address, either host:port or a
	// full base URL.
	// Env: ADAPTER_ADDRESS
	HTTPAddress string `env:"ADDRESS"`

	// RequestTimeout is the default timeout for outbound requests.
	// Env: ADAPTER_REQUEST_TIMEOUT
	RequestTimeout time.Duration `env:"REQUEST_TIMEOUT"`
}

// SessionConfig identifies the logged-in user.
type SessionConfig struct {
	// Identity is the opaque user id keys are scoped to. When empty it is
	// read from the sub claim of Token.
	// Env: SESSION_IDENTITY
	Identity string `env:"IDENTITY"`

	// Token is the item-storage API access token.
	// Env: SESSION_TOKEN
	Token string `env:"TOKEN"`
}

// LogConfig controls client logging.
type LogConfig struct {
	// File is the path log lines are appended to.
	// Env: LOG_FILE
	File string `env:"FILE"`

	// Level is a zerolog level name.
	// Env: LOG_LEVEL
	Level string `env:"LEVEL"`
}

// WorkersConfig controls background work.
type WorkersConfig struct {
	// DecryptConcurrency bounds how many vault items are decrypted at once.
	// Env: WORKERS_DECRYPT_CONCURRENCY
	DecryptConcurrency int `env:"DECRYPT_CONCURRENCY"`
}

// Command returns the first positional argument, or "" if none was given.
func (cfg *StructuredConfig) Command() string {
	if len(cfg.Args) == 0 {
		return ""
	}
	return cfg.Args[0]
}

// CommandArgs returns the positional arguments after the command name.
func (cfg *StructuredConfig) CommandArgs() []string {
	if len(cfg.Args) < 2 {
		return nil
	}
	return cfg.Args[1:]
}

// GetStructuredConfig loads, merges, and validates the client configuration
// from all available sources in the following priority order (last source
// wins for non-zero fields):
//  0. Built-in defaults
//  1. Environment variables
//  2. Command-line flags parsed from args
//  3. JSON file (path resolved from sources 1 and 2)
//
// Returns a fully populated *StructuredConfig or an error if any source
// fails to load or the final config fails validation.
func GetStructuredConfig(args []string) (*StructuredConfig, error) {
	return newConfigBuilder().
		withDefaults().
		withEnv().
		withFlags(args).
		withJSON().
		build()
}
