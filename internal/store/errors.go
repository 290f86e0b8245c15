// SPDX-License-Identifier: Apache-2.0
// Copyright 2026 Rasul Khiriev

package store

import "errors"

// Sentinel errors returned by repository methods to signal well-known failure
// conditions. Callers should use [errors.Is] to match against these values.
var (
	// ErrSecretKeyNotFound is returned when no key is stored for the
	// requested identity.
	ErrSecretKeyNotFound = errors.New("secret key was not found")

	// ErrUnsupportedDSN is returned when the storage DSN is empty or names a
	// scheme no backend handles.
	ErrUnsupportedDSN = errors.New("unsupported storage dsn")
)

// Low-level database operation errors. These are returned (or wrapped) by
// repository methods when a storage-level operation fails before any domain
// logic can be applied.
var (
	// ErrBuildingSQLQuery is returned when constructing a parameterised SQL
	// query fails.
	ErrBuildingSQLQuery = errors.New("error building sql query")

	// ErrExecutingQuery is returned when executing a SELECT against the
	// database fails.
	ErrExecutingQuery = errors.New("error executing sql query")

	// ErrBeginningTransaction is returned when the database cannot start a
	// new transaction.
	ErrBeginningTransaction = errors.New("failed to begin transaction")

	// ErrCommitingTransaction is returned when committing an open transaction
	// fails. The transaction is considered rolled back at this point.
	ErrCommitingTransaction = errors.New("failed to commit transaction")

	// ErrExecutingStatement is returned when executing an INSERT or DELETE
	// fails.
	ErrExecutingStatement = errors.New("failed to executing statement")

	// ErrScanningRow is returned when scanning a secret key row fails.
	ErrScanningRow = errors.New("failed to scan secret key row")

	// ErrCorruptedRecord is returned when a stored record cannot be decoded.
	ErrCorruptedRecord = errors.New("stored secret key record is corrupted")
)
