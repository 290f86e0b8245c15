// SPDX-License-Identifier: Apache-2.0
// Copyright 2026 Rasul Khiriev

package models

import "time"

// SecretKeyLength is the number of characters in a generated [SecretKey].
const SecretKeyLength = 64

// SecretKeyAlphabet is the character set a generated [SecretKey] is drawn from.
const SecretKeyAlphabet = "ABCDEFGHIJKLMNOPQRSTUVWXYZabcdefghijklmnopqrstuvwxyz0123456789-"

// SecretKey is the root symmetric secret of one identity on one device.
// It is never sent to the server.
type SecretKey string

// String implements fmt.Stringer without disclosing the key.
func (s SecretKey) String() string {
	return "[secret key]"
}

// SecretKeyRecord is a persisted secret key scoped to one identity.
type SecretKeyRecord struct {
	// Identity is the opaque user identifier the key belongs to.
	Identity string `json:"identity"`

	// Secret is the raw key material.
	Secret SecretKey `json:"secret"`

	CreatedAt time.Time `json:"created_at"`
	UpdatedAt time.Time `json:"updated_at"`
}
