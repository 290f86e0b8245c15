// SPDX-License-Identifier: Apache-2.0
// Copyright 2026 Rasul Khiriev

package validators

import (
	"context"
	"encoding/json"
	"fmt"
	"net/url"
	"strings"

	"github.com/MKhiriev/go-key-keeper/internal/codec"
	"github.com/MKhiriev/go-key-keeper/models"
)

// Field name constants used to restrict validation to a subset of fields.
const (
	// FieldID targets the server-assigned identifier of a stored item.
	FieldID = "id"

	// FieldType targets the semantic item type.
	FieldType = "type"

	// FieldTitle targets the display title.
	FieldTitle = "title"

	// FieldData targets the plaintext item data and its per-type rules.
	FieldData = "data"

	// FieldEnvelope targets the sealed envelope of a stored item.
	FieldEnvelope = "envelope"
)

// allowedItemTypes is the exhaustive set of item types accepted by the validator.
var allowedItemTypes = []models.VaultItemType{
	models.Account,
	models.SecureNote,
	models.Card,
	models.Identity,
}

type VaultItemValidator struct {
}

func NewVaultItemValidator() Validator {
	return &VaultItemValidator{}
}

// Validate accepts [models.VaultItemInput] (plaintext before sealing) and
// [models.VaultItem] (sealed item before it is sent), by value or pointer.
func (v *VaultItemValidator) Validate(ctx context.Context, obj any, fields ...string) error {
	switch value := obj.(type) {
	case models.VaultItemInput:
		return v.validateInput(ctx, value, fields...)
	case *models.VaultItemInput:
		return v.validateInput(ctx, *value, fields...)

	case models.VaultItem:
		return v.validateItem(ctx, value, fields...)
	case *models.VaultItem:
		return v.validateItem(ctx, *value, fields...)

	default:
		return ErrUnsupportedType
	}
}

func isValidItemType(t models.VaultItemType) bool {
	for _, allowed := range allowedItemTypes {
		if t == allowed {
			return true
		}
	}
	return false
}

func (v *VaultItemValidator) validateInput(_ context.Context, input models.VaultItemInput, fields ...string) error {
	if len(fields) == 0 {
		fields = []string{FieldType, FieldTitle, FieldData}
	}

	for _, f := range fields {
		switch f {
		case FieldType:
			if !isValidItemType(input.Type) {
				return ErrInvalidItemType
			}
		case FieldTitle:
			if strings.TrimSpace(input.Title) == "" {
				return ErrEmptyTitle
			}
		case FieldData:
			if err := validateData(input.Type, input.Data); err != nil {
				return err
			}
		default:
			return ErrUnknownField
		}
	}

	return nil
}

func (v *VaultItemValidator) validateItem(_ context.Context, item models.VaultItem, fields ...string) error {
	if len(fields) == 0 {
		fields = []string{FieldType, FieldEnvelope}
	}

	for _, f := range fields {
		switch f {
		case FieldID:
			if strings.TrimSpace(item.ID) == "" {
				return ErrEmptyItemID
			}
		case FieldType:
			if !isValidItemType(item.Type) {
				return ErrInvalidItemType
			}
		case FieldTitle:
			if strings.TrimSpace(item.Title) == "" {
				return ErrEmptyTitle
			}
		case FieldEnvelope:
			if err := codec.ValidateEnvelope(item.Envelope); err != nil {
				return fmt.Errorf("%w: %w", ErrInvalidEnvelope, err)
			}
		default:
			return ErrUnknownField
		}
	}

	return nil
}

// validateData re-reads data as the plaintext shape of itemType and applies
// the per-type required fields.
func validateData(itemType models.VaultItemType, data any) error {
	if data == nil {
		return ErrEmptyData
	}
	raw, err := json.Marshal(data)
	if err != nil {
		return fmt.Errorf("%w: %v", ErrMalformedData, err)
	}

	switch itemType {
	case models.Account:
		var account models.AccountData
		if err = decodeStrict(raw, &account); err != nil {
			return err
		}
		return validateAccount(account)
	case models.SecureNote:
		var note models.SecureNoteData
		if err = decodeStrict(raw, &note); err != nil {
			return err
		}
		if strings.TrimSpace(note.Content) == "" {
			return ErrEmptyNoteContent
		}
	case models.Card:
		var card models.CardData
		if err = decodeStrict(raw, &card); err != nil {
			return err
		}
		if strings.TrimSpace(card.CardholderName) == "" {
			return ErrEmptyCardholder
		}
		if strings.TrimSpace(card.CardNumber) == "" {
			return ErrEmptyCardNumber
		}
	case models.Identity:
		var identity models.IdentityData
		if err = decodeStrict(raw, &identity); err != nil {
			return err
		}
		if strings.TrimSpace(identity.FirstName) == "" && strings.TrimSpace(identity.LastName) == "" {
			return ErrEmptyIdentityNames
		}
	default:
		return ErrInvalidItemType
	}

	return nil
}

func decodeStrict(raw []byte, dst any) error {
	if err := json.Unmarshal(raw, dst); err != nil {
		return fmt.Errorf("%w: %v", ErrMalformedData, err)
	}
	return nil
}

func validateAccount(account models.AccountData) error {
	if strings.TrimSpace(account.LoginID) == "" {
		return ErrEmptyLoginID
	}
	if strings.TrimSpace(account.Password) == "" {
		return ErrEmptyPassword
	}
	if strings.TrimSpace(account.Website) == "" {
		return ErrEmptyWebsite
	}
	if !isValidWebsite(account.Website) {
		return ErrInvalidWebsite
	}
	return nil
}

// isValidWebsite accepts bare hosts ("example.com") as well as full URLs.
func isValidWebsite(raw string) bool {
	raw = strings.TrimSpace(raw)
	if !strings.HasPrefix(raw, "http") {
		raw = "https://" + raw
	}
	u, err := url.Parse(raw)
	if err != nil {
		return false
	}
	return u.Host != "" && !strings.ContainsAny(u.Host, " ")
}
