// SPDX-License-Identifier: Apache-2.0
// Copyright 2026 Rasul Khiriev

package store

import (
	"context"

	"github.com/MKhiriev/go-key-keeper/models"
)

//go:generate mockgen -source=interfaces.go -destination=../mock/store_mock.go -package=mock

// SecretKeyRepository is the low-level per-identity secret key storage.
// Implementations are safe for concurrent use.
type SecretKeyRepository interface {
	// Get returns the key stored for identity or [ErrSecretKeyNotFound].
	Get(ctx context.Context, identity string) (models.SecretKeyRecord, error)

	// Put creates or replaces the key stored for identity.
	Put(ctx context.Context, identity string, secret models.SecretKey) error

	// Delete removes the key stored for identity. Deleting a missing key is
	// not an error.
	Delete(ctx context.Context, identity string) error

	// ListIdentities returns every identity that has a stored key, sorted.
	ListIdentities(ctx context.Context) ([]string, error)

	// PurgeExcept removes the legacy unscoped key and every key not owned
	// by identity in one atomic step, and returns how many were removed.
	PurgeExcept(ctx context.Context, identity string) (int, error)

	// Close releases the underlying resources.
	Close() error
}
