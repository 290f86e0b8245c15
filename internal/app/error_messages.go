// SPDX-License-Identifier: Apache-2.0
// Copyright 2026 Rasul Khiriev

// Package app contains the user-facing wording of the client.
//
// All Msg* constants are human-readable message strings shown in the terminal
// or the settings screen. [MessageFor] picks one for any error returned by
// the services.
package app

import (
	"errors"

	"github.com/MKhiriev/go-key-keeper/internal/adapter"
	"github.com/MKhiriev/go-key-keeper/internal/codec"
	"github.com/MKhiriev/go-key-keeper/internal/config"
	"github.com/MKhiriev/go-key-keeper/internal/crypto"
	"github.com/MKhiriev/go-key-keeper/internal/service"
	"github.com/MKhiriev/go-key-keeper/internal/store"
	"github.com/MKhiriev/go-key-keeper/internal/validators"
)

const (
	// MsgDecryptionFailed covers a wrong key, corrupted data and tampering.
	MsgDecryptionFailed = "could not decrypt: the secret key does not match or the data was modified"

	// MsgEncryptionFailed is shown when sealing an item fails.
	MsgEncryptionFailed = "could not encrypt the item, please try again"

	// MsgUnsupportedAlgorithm is shown for items sealed by an unknown client.
	MsgUnsupportedAlgorithm = "this item was encrypted with an unsupported algorithm"

	// MsgInvalidFormat is shown for malformed envelopes and backup codes.
	MsgInvalidFormat = "the data is not in a recognised format"

	// MsgIdentityMismatch is shown when a backup of another account is imported.
	MsgIdentityMismatch = "this backup belongs to a different account"

	// MsgSecretKeyMissing is shown when no key is set up on this device.
	MsgSecretKeyMissing = "no secret key on this device: run setup or import a backup"

	// MsgEmptyIdentity is shown when the command needs a logged-in account.
	MsgEmptyIdentity = "not logged in: pass -identity or -token"

	// MsgEmptySecretKey is shown when an empty key is offered for import.
	MsgEmptySecretKey = "the secret key is empty"

	// MsgRotationNotAllowed is shown for an out-of-order rotation step.
	MsgRotationNotAllowed = "key rotation cannot be performed now"

	// MsgInvalidItem is shown when item input fails validation.
	MsgInvalidItem = "the item is incomplete or invalid"

	// MsgKeyStoreUnavailable is shown for key store failures.
	MsgKeyStoreUnavailable = "the local key store is unavailable"

	// MsgUnauthorized is shown when the item-storage API rejects the token.
	MsgUnauthorized = "session expired or invalid, please log in again"

	// MsgAccessDenied is shown for 403 responses.
	MsgAccessDenied = "access denied"

	// MsgItemNotFound is shown for 404 responses.
	MsgItemNotFound = "item not found"

	// MsgConflict is shown for 409 responses.
	MsgConflict = "the item was changed elsewhere"

	// MsgServerUnavailable is shown for transport and 5xx failures.
	MsgServerUnavailable = "the server is unavailable, please try again later"

	// MsgInvalidConfig is shown when configuration fails validation.
	MsgInvalidConfig = "invalid configuration"

	// MsgUnexpected is the fallback.
	MsgUnexpected = "unexpected error"
)

// MessageFor returns the user-facing message for err, or "" for nil.
func MessageFor(err error) string {
	switch {
	case err == nil:
		return ""

	// crypto core
	case errors.Is(err, crypto.ErrDecryptionFailed):
		return MsgDecryptionFailed
	case errors.Is(err, crypto.ErrUnsupportedAlgorithm):
		return MsgUnsupportedAlgorithm
	case errors.Is(err, crypto.ErrEncryptionFailed), errors.Is(err, crypto.ErrKeyDerivation):
		return MsgEncryptionFailed

	// key lifecycle and backup
	case errors.Is(err, service.ErrIdentityMismatch):
		return MsgIdentityMismatch
	case errors.Is(err, service.ErrSecretKeyMissing), errors.Is(err, store.ErrSecretKeyNotFound):
		return MsgSecretKeyMissing
	case errors.Is(err, service.ErrEmptyIdentity):
		return MsgEmptyIdentity
	case errors.Is(err, service.ErrEmptySecretKey):
		return MsgEmptySecretKey
	case errors.Is(err, service.ErrInvalidRotationTransition):
		return MsgRotationNotAllowed
	case errors.Is(err, service.ErrInvalidItem),
		errors.Is(err, validators.ErrUnsupportedType),
		errors.Is(err, adapter.ErrEmptyVaultID),
		errors.Is(err, adapter.ErrEmptyItemID):
		return MsgInvalidItem
	case errors.Is(err, codec.ErrInvalidFormat):
		return MsgInvalidFormat

	// item-storage API
	case errors.Is(err, adapter.ErrUnauthorized):
		return MsgUnauthorized
	case errors.Is(err, adapter.ErrForbidden):
		return MsgAccessDenied
	case errors.Is(err, adapter.ErrNotFound):
		return MsgItemNotFound
	case errors.Is(err, adapter.ErrConflict):
		return MsgConflict
	case errors.Is(err, adapter.ErrBadRequest):
		return MsgInvalidItem
	case errors.Is(err, adapter.ErrServer):
		return MsgServerUnavailable

	// local infrastructure
	case errors.Is(err, store.ErrUnsupportedDSN),
		errors.Is(err, config.ErrInvalidStorageConfigs),
		errors.Is(err, config.ErrInvalidCryptoConfigs),
		errors.Is(err, config.ErrInvalidAdapterConfigs),
		errors.Is(err, config.ErrInvalidWorkerConfigs),
		errors.Is(err, config.ErrInvalidLogConfigs):
		return MsgInvalidConfig
	case isStoreError(err):
		return MsgKeyStoreUnavailable

	default:
		return MsgUnexpected
	}
}

func isStoreError(err error) bool {
	for _, target := range []error{
		store.ErrBuildingSQLQuery,
		store.ErrExecutingQuery,
		store.ErrBeginningTransaction,
		store.ErrCommitingTransaction,
		store.ErrExecutingStatement,
		store.ErrScanningRow,
		store.ErrCorruptedRecord,
	} {
		if errors.Is(err, target) {
			return true
		}
	}
	return false
}
