// SPDX-License-Identifier: Apache-2.0
// Copyright 2026 Rasul Khiriev

// Package service implements the client-side key lifecycle, backup, and
// vault item flows on top of the crypto core, the key store, and the
// item-storage adapter.
package service

import (
	"context"

	"github.com/MKhiriev/go-key-keeper/models"
)

// SecretKeyService manages the lifecycle of the per-identity secret key on
// this device: creation, persistence, masking, rotation and login cleanup.
// Every method that takes an identity returns [ErrEmptyIdentity] for "".
type SecretKeyService interface {
	// GenerateAndStore creates a fresh key for identity, persists it, and
	// returns it. An existing key is overwritten.
	GenerateAndStore(ctx context.Context, identity string) (models.SecretKey, error)

	// Load returns the stored key. ok is false (with a nil error) when the
	// identity has no key on this device.
	Load(ctx context.Context, identity string) (secret models.SecretKey, ok bool, err error)

	// Has reports whether identity has a key on this device.
	Has(ctx context.Context, identity string) (bool, error)

	// Identities lists every identity with a key on this device, sorted.
	Identities(ctx context.Context) ([]string, error)

	// Store persists secret for identity, replacing any previous key.
	Store(ctx context.Context, identity string, secret models.SecretKey) error

	// Remove deletes identity's key. Removing a missing key is not an error.
	Remove(ctx context.Context, identity string) error

	// Mask returns a display form of secret with everything but the first
	// and last four characters replaced by '*'.
	Mask(secret models.SecretKey) string

	// Rotate replaces identity's key with a fresh one and returns it.
	// Every item sealed under the previous key becomes unreadable.
	Rotate(ctx context.Context, identity string) (models.SecretKey, error)

	// CleanupOnLogin deletes every key on this device that does not belong
	// to identity, including the legacy unscoped key, and returns how many
	// were removed.
	CleanupOnLogin(ctx context.Context, identity string) (int, error)
}

// BackupService builds and parses the portable backup payload used to move a
// secret key between devices. It never touches the key store.
type BackupService interface {
	// BuildPayload wraps identity and secret with the schema tag, version and
	// the current time.
	BuildPayload(identity string, secret models.SecretKey) models.BackupPayload

	// EncodeForTransport serialises payload into the single string carried by
	// QR codes and printable documents.
	EncodeForTransport(payload models.BackupPayload) (string, error)

	// ParseImport decodes text and returns the secret it carries, provided it
	// belongs to expectedIdentity.
	ParseImport(text, expectedIdentity string) (models.SecretKey, error)

	// Document renders the printable backup document body for payload.
	// contact is an optional e-mail shown on the document.
	Document(payload models.BackupPayload, contact string) (string, error)
}

// VaultItemService seals vault items with the identity's secret key before
// they leave the device and opens them after they come back.
type VaultItemService interface {
	// Seal validates input and encrypts its data under secret.
	Seal(input models.VaultItemInput, secret models.SecretKey) (models.VaultItem, error)

	// Open decrypts one item.
	Open(item models.VaultItem, secret models.SecretKey) (models.DecryptedVaultItem, error)

	// OpenAll decrypts items in parallel. Items that cannot be opened are kept
	// in the result with Err set; the order of items is preserved.
	OpenAll(ctx context.Context, items []models.VaultItem, secret models.SecretKey) ([]models.DecryptResult, error)

	// Create seals input with identity's key and stores it in the vault.
	Create(ctx context.Context, identity, vaultID string, input models.VaultItemInput) (models.VaultItem, error)

	// List fetches every item of the vault and opens them.
	List(ctx context.Context, identity, vaultID string) ([]models.DecryptResult, error)

	// Update re-seals item with new contents and stores it.
	Update(ctx context.Context, identity string, item models.VaultItem, input models.VaultItemInput) (models.VaultItem, error)

	// Delete removes an item from the vault.
	Delete(ctx context.Context, itemID string) error
}

// SessionHooks ties the key store to the login session.
type SessionHooks interface {
	// OnLogin handles one successful login of identity: it runs login
	// cleanup and returns how many foreign keys were removed. Callers invoke
	// it exactly once per login.
	OnLogin(ctx context.Context, identity string) (int, error)

	// OnLogout removes identity's key from this device and ends the session.
	OnLogout(ctx context.Context, identity string) error
}
