// SPDX-License-Identifier: Apache-2.0
// Copyright 2026 Rasul Khiriev

package validators

import (
	"context"
	"encoding/json"
	"testing"

	"github.com/MKhiriev/go-key-keeper/models"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

// ---------------------------------------------------------------------------
// Helpers
// ---------------------------------------------------------------------------

func validAccountInput() models.VaultItemInput {
	return models.VaultItemInput{
		Type:  models.Account,
		Title: "example",
		Data: models.AccountData{
			LoginID:  "bob",
			Password: "hunter2",
			Website:  "example.com",
		},
	}
}

func validSealedItem() models.VaultItem {
	return models.VaultItem{
		ID:    "item-1",
		Type:  models.Account,
		Title: "example",
		Envelope: models.Envelope{
			Ciphertext: "Y2lwaGVydGV4dA==",
			Metadata: models.EncryptionMetadata{
				Algorithm:  models.AlgorithmAESGCM,
				IV:         "AAAAAAAAAAAAAAAA",
				Salt:       "c2FsdA==",
				KDF:        models.KDFArgon2id,
				Iterations: 3,
			},
		},
	}
}

// ---------------------------------------------------------------------------
// Dispatch
// ---------------------------------------------------------------------------

func TestNewVaultItemValidator(t *testing.T) {
	require.NotNil(t, NewVaultItemValidator())
}

func TestValidate_Dispatch(t *testing.T) {
	v := NewVaultItemValidator()
	ctx := context.Background()

	input := validAccountInput()
	item := validSealedItem()

	assert.NoError(t, v.Validate(ctx, input))
	assert.NoError(t, v.Validate(ctx, &input))
	assert.NoError(t, v.Validate(ctx, item))
	assert.NoError(t, v.Validate(ctx, &item))
	assert.ErrorIs(t, v.Validate(ctx, "string"), ErrUnsupportedType)
	assert.ErrorIs(t, v.Validate(ctx, 42), ErrUnsupportedType)
}

func TestValidate_UnknownField(t *testing.T) {
	v := NewVaultItemValidator()
	ctx := context.Background()

	assert.ErrorIs(t, v.Validate(ctx, validAccountInput(), "nope"), ErrUnknownField)
	assert.ErrorIs(t, v.Validate(ctx, validSealedItem(), "nope"), ErrUnknownField)
}

// ---------------------------------------------------------------------------
// VaultItemInput
// ---------------------------------------------------------------------------

func TestValidateInput(t *testing.T) {
	tests := []struct {
		name    string
		mutate  func(*models.VaultItemInput)
		wantErr error
	}{
		{name: "valid account", mutate: func(*models.VaultItemInput) {}},
		{name: "unknown type", mutate: func(in *models.VaultItemInput) { in.Type = "PASSKEY" }, wantErr: ErrInvalidItemType},
		{name: "blank title", mutate: func(in *models.VaultItemInput) { in.Title = "  " }, wantErr: ErrEmptyTitle},
		{name: "nil data", mutate: func(in *models.VaultItemInput) { in.Data = nil }, wantErr: ErrEmptyData},
		{
			name:    "missing login id",
			mutate:  func(in *models.VaultItemInput) { in.Data = models.AccountData{Password: "p", Website: "example.com"} },
			wantErr: ErrEmptyLoginID,
		},
		{
			name:    "missing password",
			mutate:  func(in *models.VaultItemInput) { in.Data = models.AccountData{LoginID: "bob", Website: "example.com"} },
			wantErr: ErrEmptyPassword,
		},
		{
			name:    "missing website",
			mutate:  func(in *models.VaultItemInput) { in.Data = models.AccountData{LoginID: "bob", Password: "p"} },
			wantErr: ErrEmptyWebsite,
		},
		{
			name: "invalid website",
			mutate: func(in *models.VaultItemInput) {
				in.Data = models.AccountData{LoginID: "bob", Password: "p", Website: "exa mple.com"}
			},
			wantErr: ErrInvalidWebsite,
		},
		{
			name: "full url website",
			mutate: func(in *models.VaultItemInput) {
				in.Data = models.AccountData{LoginID: "bob", Password: "p", Website: "https://example.com/login"}
			},
		},
		{
			name:   "account as raw json",
			mutate: func(in *models.VaultItemInput) { in.Data = json.RawMessage(`{"loginId":"bob","password":"hunter2","website":"example.com"}`) },
		},
		{
			name:    "data of the wrong shape",
			mutate:  func(in *models.VaultItemInput) { in.Data = "just a string" },
			wantErr: ErrMalformedData,
		},
		{
			name: "secure note",
			mutate: func(in *models.VaultItemInput) {
				in.Type = models.SecureNote
				in.Data = models.SecureNoteData{Content: "wifi: hunter2"}
			},
		},
		{
			name: "empty secure note",
			mutate: func(in *models.VaultItemInput) {
				in.Type = models.SecureNote
				in.Data = models.SecureNoteData{}
			},
			wantErr: ErrEmptyNoteContent,
		},
		{
			name: "card",
			mutate: func(in *models.VaultItemInput) {
				in.Type = models.Card
				in.Data = models.CardData{CardholderName: "Bob", CardNumber: "4111111111111111"}
			},
		},
		{
			name: "card without number",
			mutate: func(in *models.VaultItemInput) {
				in.Type = models.Card
				in.Data = models.CardData{CardholderName: "Bob"}
			},
			wantErr: ErrEmptyCardNumber,
		},
		{
			name: "card without holder",
			mutate: func(in *models.VaultItemInput) {
				in.Type = models.Card
				in.Data = &models.CardData{CardNumber: "4111111111111111"}
			},
			wantErr: ErrEmptyCardholder,
		},
		{
			name: "identity with last name only",
			mutate: func(in *models.VaultItemInput) {
				in.Type = models.Identity
				in.Data = models.IdentityData{LastName: "Smith"}
			},
		},
		{
			name: "identity without names",
			mutate: func(in *models.VaultItemInput) {
				in.Type = models.Identity
				in.Data = models.IdentityData{City: "Seoul"}
			},
			wantErr: ErrEmptyIdentityNames,
		},
	}

	v := NewVaultItemValidator()
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			input := validAccountInput()
			tt.mutate(&input)

			err := v.Validate(context.Background(), input)
			if tt.wantErr == nil {
				assert.NoError(t, err)
				return
			}
			assert.ErrorIs(t, err, tt.wantErr)
		})
	}
}

func TestValidateInput_FieldScoping(t *testing.T) {
	v := NewVaultItemValidator()
	input := models.VaultItemInput{Type: models.Account, Title: ""}

	// Проверяем только тип: пустой заголовок и данные игнорируются
	assert.NoError(t, v.Validate(context.Background(), input, FieldType))
	assert.ErrorIs(t, v.Validate(context.Background(), input, FieldType, FieldTitle), ErrEmptyTitle)
}

// ---------------------------------------------------------------------------
// VaultItem
// ---------------------------------------------------------------------------

func TestValidateItem(t *testing.T) {
	tests := []struct {
		name    string
		mutate  func(*models.VaultItem)
		fields  []string
		wantErr error
	}{
		{name: "valid", mutate: func(*models.VaultItem) {}},
		{name: "new item without id", mutate: func(it *models.VaultItem) { it.ID = "" }},
		{name: "update requires id", mutate: func(it *models.VaultItem) { it.ID = "" }, fields: []string{FieldID}, wantErr: ErrEmptyItemID},
		{name: "bad type", mutate: func(it *models.VaultItem) { it.Type = "" }, wantErr: ErrInvalidItemType},
		{name: "blank title", mutate: func(it *models.VaultItem) { it.Title = "" }, fields: []string{FieldTitle}, wantErr: ErrEmptyTitle},
		{name: "missing blob", mutate: func(it *models.VaultItem) { it.Ciphertext = "" }, wantErr: ErrInvalidEnvelope},
		{name: "zero iterations", mutate: func(it *models.VaultItem) { it.Metadata.Iterations = 0 }, wantErr: ErrInvalidEnvelope},
	}

	v := NewVaultItemValidator()
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			item := validSealedItem()
			tt.mutate(&item)

			err := v.Validate(context.Background(), item, tt.fields...)
			if tt.wantErr == nil {
				assert.NoError(t, err)
				return
			}
			assert.ErrorIs(t, err, tt.wantErr)
		})
	}
}
