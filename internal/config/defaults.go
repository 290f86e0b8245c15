// SPDX-License-Identifier: Apache-2.0
// Copyright 2026 Rasul Khiriev

package config

import (
	"time"

	"github.com/MKhiriev/go-key-keeper/internal/crypto"
)

// Built-in defaults.
const (
	DefaultDSN                = "go-key-keeper.db"
	DefaultHTTPAddress        = "localhost:8080"
	DefaultRequestTimeout     = 10 * time.Second
	DefaultLogLevel           = "info"
	DefaultDecryptConcurrency = 4
)

// Default returns the configuration used when no other source sets a field.
func Default() *StructuredConfig {
	return &StructuredConfig{
		Crypto: CryptoConfig{
			Iterations:  crypto.DefaultIterations,
			MemoryKB:    crypto.DefaultMemoryKB,
			Parallelism: crypto.DefaultParallelism,

			MaxIterations:  crypto.MaxIterations,
			MaxMemoryKB:    crypto.MaxMemoryKB,
			MaxParallelism: crypto.MaxParallelism,
		},
		Storage: StorageConfig{
			DSN: DefaultDSN,
		},
		Adapter: AdapterConfig{
			HTTPAddress:    DefaultHTTPAddress,
			RequestTimeout: DefaultRequestTimeout,
		},
		Log: LogConfig{
			Level: DefaultLogLevel,
		},
		Workers: WorkersConfig{
			DecryptConcurrency: DefaultDecryptConcurrency,
		},
	}
}
