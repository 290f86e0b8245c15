// SPDX-License-Identifier: Apache-2.0
// Copyright 2026 Rasul Khiriev

package service

import (
	"context"
	"encoding/json"
	"fmt"

	"github.com/MKhiriev/go-key-keeper/internal/adapter"
	"github.com/MKhiriev/go-key-keeper/internal/crypto"
	"github.com/MKhiriev/go-key-keeper/internal/logger"
	"github.com/MKhiriev/go-key-keeper/internal/validators"
	"github.com/MKhiriev/go-key-keeper/internal/workers"
	"github.com/MKhiriev/go-key-keeper/models"
)

type vaultItemService struct {
	engine    crypto.Engine
	keys      SecretKeyService
	adapter   adapter.VaultAdapter
	validator validators.Validator
	pool      workers.Runner

	logger *logger.Logger
}

func NewVaultItemService(
	engine crypto.Engine,
	keys SecretKeyService,
	vaultAdapter adapter.VaultAdapter,
	validator validators.Validator,
	pool workers.Runner,
	logger *logger.Logger,
) VaultItemService {
	return &vaultItemService{
		engine:    engine,
		keys:      keys,
		adapter:   vaultAdapter,
		validator: validator,
		pool:      pool,
		logger:    logger,
	}
}

func (v *vaultItemService) Seal(input models.VaultItemInput, secret models.SecretKey) (models.VaultItem, error) {
	if err := v.validator.Validate(context.Background(), input); err != nil {
		return models.VaultItem{}, fmt.Errorf("%w: %w", ErrInvalidItem, err)
	}

	plaintext, err := json.Marshal(input.Data)
	if err != nil {
		return models.VaultItem{}, fmt.Errorf("%w: %w", ErrInvalidItem, err)
	}

	env, err := v.engine.Encrypt(string(plaintext), secret)
	if err != nil {
		v.logger.Err(err).Str("func", "vaultItemService.Seal").Str("type", string(input.Type)).Msg("error sealing item")
		return models.VaultItem{}, err
	}

	return models.VaultItem{
		Type:     input.Type,
		Title:    input.Title,
		Envelope: env,
	}, nil
}

func (v *vaultItemService) Open(item models.VaultItem, secret models.SecretKey) (models.DecryptedVaultItem, error) {
	plaintext, err := v.engine.Decrypt(item.Envelope, secret)
	if err != nil {
		return models.DecryptedVaultItem{Item: item}, err
	}

	// Non-JSON plaintext is reported as a decryption failure.
	if !json.Valid([]byte(plaintext)) {
		v.logger.Debug().Str("func", "vaultItemService.Open").Str("item", item.ID).Msg("decrypted item is not json")
		return models.DecryptedVaultItem{Item: item}, crypto.ErrDecryptionFailed
	}

	return models.DecryptedVaultItem{Item: item, Data: json.RawMessage(plaintext)}, nil
}

func (v *vaultItemService) OpenAll(ctx context.Context, items []models.VaultItem, secret models.SecretKey) ([]models.DecryptResult, error) {
	results := make([]models.DecryptResult, len(items))

	err := v.pool.Run(ctx, len(items), func(_ context.Context, i int) error {
		opened, err := v.Open(items[i], secret)
		results[i] = models.DecryptResult{DecryptedVaultItem: opened, Err: err}
		return nil
	})
	if err != nil {
		return nil, err
	}

	failed := 0
	for _, r := range results {
		if r.Err != nil {
			failed++
		}
	}
	if failed > 0 {
		v.logger.Warn().Str("func", "vaultItemService.OpenAll").
			Int("total", len(items)).Int("failed", failed).Msg("some items could not be decrypted")
	}

	return results, nil
}

func (v *vaultItemService) Create(ctx context.Context, identity, vaultID string, input models.VaultItemInput) (models.VaultItem, error) {
	secret, err := v.requireKey(ctx, identity)
	if err != nil {
		return models.VaultItem{}, err
	}

	item, err := v.Seal(input, secret)
	if err != nil {
		return models.VaultItem{}, err
	}
	item.VaultID = vaultID

	created, err := v.adapter.AddItem(ctx, vaultID, item)
	if err != nil {
		v.logger.Err(err).Str("func", "vaultItemService.Create").Str("vault", vaultID).Msg("error storing item")
		return models.VaultItem{}, fmt.Errorf("create item: %w", err)
	}
	return created, nil
}

func (v *vaultItemService) List(ctx context.Context, identity, vaultID string) ([]models.DecryptResult, error) {
	secret, err := v.requireKey(ctx, identity)
	if err != nil {
		return nil, err
	}

	items, err := v.adapter.ListItems(ctx, vaultID)
	if err != nil {
		v.logger.Err(err).Str("func", "vaultItemService.List").Str("vault", vaultID).Msg("error listing items")
		return nil, fmt.Errorf("list items: %w", err)
	}

	return v.OpenAll(ctx, items, secret)
}

func (v *vaultItemService) Update(ctx context.Context, identity string, item models.VaultItem, input models.VaultItemInput) (models.VaultItem, error) {
	if err := v.validator.Validate(ctx, item, validators.FieldID); err != nil {
		return models.VaultItem{}, fmt.Errorf("%w: %w", ErrInvalidItem, err)
	}

	secret, err := v.requireKey(ctx, identity)
	if err != nil {
		return models.VaultItem{}, err
	}

	sealed, err := v.Seal(input, secret)
	if err != nil {
		return models.VaultItem{}, err
	}
	sealed.ID = item.ID
	sealed.VaultID = item.VaultID
	sealed.CreatedAt = item.CreatedAt

	updated, err := v.adapter.UpdateItem(ctx, sealed)
	if err != nil {
		v.logger.Err(err).Str("func", "vaultItemService.Update").Str("item", item.ID).Msg("error updating item")
		return models.VaultItem{}, fmt.Errorf("update item: %w", err)
	}
	return updated, nil
}

func (v *vaultItemService) Delete(ctx context.Context, itemID string) error {
	if err := v.adapter.DeleteItem(ctx, itemID); err != nil {
		v.logger.Err(err).Str("func", "vaultItemService.Delete").Str("item", itemID).Msg("error deleting item")
		return fmt.Errorf("delete item: %w", err)
	}
	return nil
}

func (v *vaultItemService) requireKey(ctx context.Context, identity string) (models.SecretKey, error) {
	secret, ok, err := v.keys.Load(ctx, identity)
	if err != nil {
		return "", err
	}
	if !ok {
		return "", ErrSecretKeyMissing
	}
	return secret, nil
}
