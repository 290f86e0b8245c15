// SPDX-License-Identifier: Apache-2.0
// Copyright 2026 Rasul Khiriev

package validators

import "errors"

var (
	ErrUnsupportedType = errors.New("unsupported type for validation")
	ErrUnknownField    = errors.New("unknown field for validation")

	ErrInvalidItemType = errors.New("invalid vault item type")
	ErrEmptyTitle      = errors.New("title is required")
	ErrEmptyData       = errors.New("data is required")
	ErrMalformedData   = errors.New("data does not match item type")
	ErrEmptyItemID     = errors.New("item id is required")
	ErrInvalidEnvelope = errors.New("invalid encrypted envelope")

	ErrEmptyLoginID       = errors.New("login id is required")
	ErrEmptyPassword      = errors.New("password is required")
	ErrEmptyWebsite       = errors.New("website is required")
	ErrInvalidWebsite     = errors.New("website is not a valid address")
	ErrEmptyNoteContent   = errors.New("note content is required")
	ErrEmptyCardNumber    = errors.New("card number is required")
	ErrEmptyCardholder    = errors.New("cardholder name is required")
	ErrEmptyIdentityNames = errors.New("first or last name is required")
)
