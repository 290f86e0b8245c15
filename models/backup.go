// SPDX-License-Identifier: Apache-2.0
// Copyright 2026 Rasul Khiriev

package models

const (
	// BackupSchemaTag identifies a backup payload produced by this application.
	BackupSchemaTag = "mini-password-manager"

	// BackupVersion is the payload layout version written by this client.
	BackupVersion = "1.0"
)

// BackupPayload is the portable form of a secret key. Its JSON encoding is
// what the QR code and the printable backup document carry.
type BackupPayload struct {
	// SchemaTag must equal [BackupSchemaTag].
	SchemaTag string `json:"app"`

	// Version is the payload layout version.
	Version string `json:"version"`

	// Identity is the user the key belongs to.
	Identity string `json:"userId"`

	// Secret is the backed-up key.
	Secret SecretKey `json:"secretKey"`

	// Timestamp is the creation time in unix milliseconds.
	Timestamp int64 `json:"timestamp"`
}
