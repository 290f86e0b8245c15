// SPDX-License-Identifier: Apache-2.0
// Copyright 2026 Rasul Khiriev

package service

import "errors"

var (
	// ErrEmptyIdentity is returned when an operation scoped to an identity
	// receives an empty one.
	ErrEmptyIdentity = errors.New("identity is required")

	// ErrEmptySecretKey is returned when an empty key is offered for storage.
	ErrEmptySecretKey = errors.New("secret key is empty")

	// ErrSecretKeyMissing is returned when an item operation needs the
	// identity's key and none is stored on this device.
	ErrSecretKeyMissing = errors.New("no secret key stored for this identity")

	// ErrInvalidItem is returned when a vault item fails validation before
	// it is sealed or sent.
	ErrInvalidItem = errors.New("invalid vault item")

	// ErrIdentityMismatch is returned when an imported backup belongs to a
	// different identity than the one logged in.
	ErrIdentityMismatch = errors.New("backup belongs to a different identity")

	// ErrInvalidRotationTransition is returned when a rotation step is
	// requested from a state that does not allow it.
	ErrInvalidRotationTransition = errors.New("invalid rotation transition")
)
