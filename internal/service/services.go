// SPDX-License-Identifier: Apache-2.0
// Copyright 2026 Rasul Khiriev

package service

import (
	"github.com/MKhiriev/go-key-keeper/internal/adapter"
	"github.com/MKhiriev/go-key-keeper/internal/crypto"
	"github.com/MKhiriev/go-key-keeper/internal/logger"
	"github.com/MKhiriev/go-key-keeper/internal/store"
	"github.com/MKhiriev/go-key-keeper/internal/validators"
	"github.com/MKhiriev/go-key-keeper/internal/workers"
)

type ClientServices struct {
	SecretKeyService SecretKeyService
	BackupService    BackupService
	VaultItemService VaultItemService
	SessionHooks     SessionHooks
	Engine           crypto.Engine
}

func NewClientServices(
	repo store.SecretKeyRepository,
	vaultAdapter adapter.VaultAdapter,
	engine crypto.Engine,
	pool workers.Runner,
	log *logger.Logger,
) *ClientServices {
	keySvc := NewSecretKeyService(repo, log)

	return &ClientServices{
		SecretKeyService: keySvc,
		BackupService:    NewBackupService(keySvc, log),
		VaultItemService: NewVaultItemService(engine, keySvc, vaultAdapter, validators.NewVaultItemValidator(), pool, log),
		SessionHooks:     NewSessionHooks(keySvc, log),
		Engine:           engine,
	}
}
