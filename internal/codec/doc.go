// SPDX-License-Identifier: Apache-2.0
// Copyright 2026 Rasul Khiriev

// Package codec converts envelopes and backup payloads to and from their
// transport-safe text form.
//
// Binary fields are always carried as standard base64 inside JSON. Every
// decoding failure, whatever its cause, is reported as [ErrInvalidFormat] so
// that callers can show a single message for unreadable input.
package codec
