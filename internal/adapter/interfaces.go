// SPDX-License-Identifier: Apache-2.0
// Copyright 2026 Rasul Khiriev

// Package adapter provides the transport boundary to the item-storage API.
//
// The server stores only opaque ciphertext envelopes; it never sees a secret
// key or a plaintext item. [VaultAdapter] decouples the service layer from the
// protocol. The package ships an HTTP/REST implementation
// ([NewHTTPVaultAdapter]) built on resty.
//
// Error values defined in errors.go are mapped from HTTP status codes by
// mapHTTPError so that callers can use [errors.Is] for transport-agnostic error
// handling (e.g. [ErrNotFound] for 404, [ErrUnauthorized] for 401).
package adapter

import (
	"context"

	"github.com/MKhiriev/go-key-keeper/models"
)

//go:generate mockgen -source=interfaces.go -destination=../mock/adapter_mock.go -package=mock

// VaultAdapter defines communication with the item-storage API.
// Implementations are responsible for serialisation, authentication header
// management, and mapping transport-level errors to the sentinel values
// defined in this package.
type VaultAdapter interface {
	// SetToken stores the bearer token that will be attached to all subsequent
	// requests.
	SetToken(token string)

	// Token returns the bearer token currently stored in the adapter, or an
	// empty string if no token has been set yet.
	Token() string

	// ListItems returns every item of the vault, still sealed.
	ListItems(ctx context.Context, vaultID string) ([]models.VaultItem, error)

	// AddItem stores a new sealed item in the vault and returns the server's
	// view of it (with ID and timestamps filled in).
	AddItem(ctx context.Context, vaultID string, item models.VaultItem) (models.VaultItem, error)

	// UpdateItem replaces the sealed contents of an existing item.
	UpdateItem(ctx context.Context, item models.VaultItem) (models.VaultItem, error)

	// DeleteItem removes an item by ID.
	DeleteItem(ctx context.Context, itemID string) error
}
