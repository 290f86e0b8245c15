// SPDX-License-Identifier: Apache-2.0
// Copyright 2026 Rasul Khiriev

package config

import (
	"fmt"
	"strings"

	"github.com/rs/zerolog"
)

// validate checks that the final merged [StructuredConfig] satisfies all
// client invariants before it is used at startup.
func (cfg *StructuredConfig) validate() error {
	if strings.TrimSpace(cfg.Storage.DSN) == "" {
		return ErrInvalidStorageConfigs
	}

	c := cfg.Crypto
	if c.Iterations < 1 || c.Parallelism < 1 || c.MemoryKB < 8*uint32(c.Parallelism) {
		return fmt.Errorf("%w: iterations=%d memory=%dKiB parallelism=%d",
			ErrInvalidCryptoConfigs, c.Iterations, c.MemoryKB, c.Parallelism)
	}
	if c.Iterations > c.MaxIterations || c.MemoryKB > c.MaxMemoryKB || c.Parallelism > c.MaxParallelism {
		return fmt.Errorf("%w: defaults above limits iterations=%d/%d memory=%d/%dKiB parallelism=%d/%d",
			ErrInvalidCryptoConfigs, c.Iterations, c.MaxIterations, c.MemoryKB, c.MaxMemoryKB, c.Parallelism, c.MaxParallelism)
	}

	if cfg.Adapter.HTTPAddress == "" || cfg.Adapter.RequestTimeout <= 0 {
		return ErrInvalidAdapterConfigs
	}

	if cfg.Workers.DecryptConcurrency < 1 {
		return ErrInvalidWorkerConfigs
	}

	if cfg.Log.Level != "" {
		if _, err := zerolog.ParseLevel(cfg.Log.Level); err != nil {
			return fmt.Errorf("%w: %w", ErrInvalidLogConfigs, err)
		}
	}

	return nil
}
