// SPDX-License-Identifier: Apache-2.0
// Copyright 2026 Rasul Khiriev

package store

import (
	"context"
	"fmt"
	"strings"

	"github.com/MKhiriev/go-key-keeper/internal/config"
	"github.com/MKhiriev/go-key-keeper/internal/logger"
)

const boltScheme = "bolt://"

// NewSecretKeyRepository initialises the secret key store selected by
// cfg.DSN:
//  1. "memory" or ":memory:" keeps keys in process memory;
//  2. "bolt://<path>" opens a bbolt file;
//  3. any other value is a SQLite file path, opened and migrated with goose.
func NewSecretKeyRepository(ctx context.Context, cfg config.StorageConfig, log *logger.Logger) (SecretKeyRepository, error) {
	dsn := strings.TrimSpace(cfg.DSN)

	switch {
	case dsn == "":
		return nil, fmt.Errorf("%w: empty dsn", ErrUnsupportedDSN)

	case dsn == "memory" || dsn == ":memory:":
		log.Info().Str("backend", "memory").Msg("creating secret key store...")
		return NewMemorySecretKeyRepository(), nil

	case strings.HasPrefix(dsn, boltScheme):
		path := strings.TrimPrefix(dsn, boltScheme)
		if path == "" {
			return nil, fmt.Errorf("%w: bolt dsn without path", ErrUnsupportedDSN)
		}
		log.Info().Str("backend", "bolt").Str("path", path).Msg("creating secret key store...")
		return NewBoltSecretKeyRepository(path, log)

	case strings.Contains(dsn, "://"):
		return nil, fmt.Errorf("%w: %q", ErrUnsupportedDSN, dsn)

	default:
		log.Info().Str("backend", "sqlite").Str("path", dsn).Msg("creating secret key store...")

		db, err := NewConnectSQLite(ctx, dsn, log)
		if err != nil {
			return nil, fmt.Errorf("sqlite connection error: %w", err)
		}

		if err := db.Migrate(); err != nil {
			db.Close()
			return nil, fmt.Errorf("migration failed: %w", err)
		}

		return NewSQLiteSecretKeyRepository(db, log), nil
	}
}
