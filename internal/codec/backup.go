// SPDX-License-Identifier: Apache-2.0
// Copyright 2026 Rasul Khiriev

package codec

import (
	"encoding/json"
	"fmt"
	"strings"

	"github.com/MKhiriev/go-key-keeper/models"
)

// EncodeBackup returns the compact JSON text of payload. The output is kept
// minimal so it fits comfortably inside a QR code.
func EncodeBackup(payload models.BackupPayload) (string, error) {
	b, err := json.Marshal(payload)
	if err != nil {
		return "", fmt.Errorf("%w: marshal backup payload: %v", ErrInvalidFormat, err)
	}
	return string(b), nil
}

// DecodeBackup parses and validates backup text. The schema tag must match
// [models.BackupSchemaTag] and both identity and secret must be present.
// Surrounding whitespace, as left by copy and paste, is ignored.
func DecodeBackup(text string) (models.BackupPayload, error) {
	var payload models.BackupPayload
	if err := json.Unmarshal([]byte(strings.TrimSpace(text)), &payload); err != nil {
		return models.BackupPayload{}, fmt.Errorf("%w: unmarshal backup payload: %v", ErrInvalidFormat, err)
	}

	switch {
	case payload.SchemaTag != models.BackupSchemaTag:
		return models.BackupPayload{}, fmt.Errorf("%w: unexpected schema tag %q", ErrInvalidFormat, payload.SchemaTag)
	case payload.Identity == "":
		return models.BackupPayload{}, fmt.Errorf("%w: missing userId", ErrInvalidFormat)
	case payload.Secret == "":
		return models.BackupPayload{}, fmt.Errorf("%w: missing secretKey", ErrInvalidFormat)
	}

	return payload, nil
}
