// SPDX-License-Identifier: Apache-2.0
// Copyright 2026 Rasul Khiriev

package models

import (
	"encoding/json"
	"time"
)

// VaultItemType defines the semantic type of the data sealed inside a
// [VaultItem]. It determines how the decrypted JSON must be interpreted.
type VaultItemType string

const (
	// Account represents login credentials for a website.
	Account VaultItemType = "ACCOUNT"

	// SecureNote represents free-form secret text.
	SecureNote VaultItemType = "SECURE_NOTE"

	// Card represents payment card information.
	Card VaultItemType = "CARD"

	// Identity represents personal identity details.
	Identity VaultItemType = "IDENTITY"
)

// AccountData is the plaintext of an [Account] item.
type AccountData struct {
	LoginID  string  `json:"loginId"`
	Password string  `json:"password"`
	Website  string  `json:"website"`
	TOTP     *string `json:"totp,omitempty"`
}

// SecureNoteData is the plaintext of a [SecureNote] item.
type SecureNoteData struct {
	Content string `json:"content"`
}

// CardData is the plaintext of a [Card] item.
type CardData struct {
	CardholderName  string `json:"cardholderName"`
	CardNumber      string `json:"cardNumber"`
	Brand           string `json:"brand"`
	ExpirationMonth string `json:"expirationMonth"`
	ExpirationYear  string `json:"expirationYear"`
	SecurityCode    string `json:"securityCode"`
}

// IdentityData is the plaintext of an [Identity] item.
type IdentityData struct {
	Title      string `json:"title,omitempty"`
	FirstName  string `json:"firstName"`
	MiddleName string `json:"middleName,omitempty"`
	LastName   string `json:"lastName"`
	Address1   string `json:"address1,omitempty"`
	Address2   string `json:"address2,omitempty"`
	City       string `json:"city,omitempty"`
	State      string `json:"state,omitempty"`
	PostalCode string `json:"postalCode,omitempty"`
	Country    string `json:"country,omitempty"`
	Company    string `json:"company,omitempty"`
	Email      string `json:"email,omitempty"`
	Phone      string `json:"phone,omitempty"`
}

// VaultItem is the item shape exchanged with the item-storage API.
// The server only ever sees the envelope fields.
type VaultItem struct {
	ID      string        `json:"id,omitempty"`
	VaultID string        `json:"vaultId,omitempty"`
	Type    VaultItemType `json:"type"`
	Title   string        `json:"title"`

	// Envelope is flattened into "encryptedBlob" and "encryption".
	Envelope

	CreatedAt *time.Time `json:"createdAt,omitempty"`
	UpdatedAt *time.Time `json:"updatedAt,omitempty"`
}

// VaultItemInput is the plaintext a user submits for a new or edited item.
// Data is any of the *Data types above, or raw JSON.
type VaultItemInput struct {
	Type  VaultItemType `json:"type"`
	Title string        `json:"title"`
	Data  any           `json:"data"`
}

// DecryptedVaultItem is a [VaultItem] together with its decrypted data.
type DecryptedVaultItem struct {
	Item VaultItem       `json:"item"`
	Data json.RawMessage `json:"data"`
}

// DecryptResult is one entry of a bulk decryption. Err is set when the item
// could not be opened; the item is still returned so callers can show it as
// undecryptable.
type DecryptResult struct {
	DecryptedVaultItem
	Err error `json:"-"`
}
