// SPDX-License-Identifier: Apache-2.0
// Copyright 2026 Rasul Khiriev

package client

import (
	"errors"

	"github.com/MKhiriev/go-key-keeper/internal/app"
)

// Command usage errors.
var (
	ErrUnknownCommand  = errors.New("unknown command")
	ErrMissingArgument = errors.New("missing argument")
	ErrKeyExists       = errors.New("a secret key already exists on this device, pass -yes to replace it")
	ErrAborted         = errors.New("aborted")
)

// Describe returns the text shown to the user for err.
func Describe(err error) string {
	switch {
	case errors.Is(err, ErrUnknownCommand),
		errors.Is(err, ErrMissingArgument),
		errors.Is(err, ErrKeyExists),
		errors.Is(err, ErrAborted):
		return err.Error()
	default:
		return app.MessageFor(err)
	}
}
