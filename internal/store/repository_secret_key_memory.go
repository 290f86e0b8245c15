// SPDX-License-Identifier: Apache-2.0
// Copyright 2026 Rasul Khiriev

package store

import (
	"context"
	"slices"
	"sync"
	"time"

	"github.com/MKhiriev/go-key-keeper/models"
)

type memorySecretKeyRepository struct {
	mu      sync.RWMutex
	records map[string]models.SecretKeyRecord
	legacy  *models.SecretKey
	now     func() time.Time
}

// MemoryOption configures the in-memory repository.
type MemoryOption func(*memorySecretKeyRepository)

// WithLegacySecret seeds the unscoped legacy slot.
func WithLegacySecret(secret models.SecretKey) MemoryOption {
	return func(r *memorySecretKeyRepository) {
		r.legacy = &secret
	}
}

// WithClock replaces time.Now for record timestamps.
func WithClock(now func() time.Time) MemoryOption {
	return func(r *memorySecretKeyRepository) {
		r.now = now
	}
}

// NewMemorySecretKeyRepository returns a [SecretKeyRepository] that keeps
// keys in process memory only.
func NewMemorySecretKeyRepository(opts ...MemoryOption) SecretKeyRepository {
	r := &memorySecretKeyRepository{
		records: make(map[string]models.SecretKeyRecord),
		now:     time.Now,
	}
	for _, opt := range opts {
		opt(r)
	}
	return r
}

func (r *memorySecretKeyRepository) Get(_ context.Context, identity string) (models.SecretKeyRecord, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()

	record, ok := r.records[identity]
	if !ok {
		return models.SecretKeyRecord{}, ErrSecretKeyNotFound
	}
	return record, nil
}

func (r *memorySecretKeyRepository) Put(_ context.Context, identity string, secret models.SecretKey) error {
	r.mu.Lock()
	defer r.mu.Unlock()

	now := r.now().UTC()
	record, ok := r.records[identity]
	if !ok {
		record = models.SecretKeyRecord{Identity: identity, CreatedAt: now}
	}
	record.Secret = secret
	record.UpdatedAt = now
	r.records[identity] = record

	return nil
}

func (r *memorySecretKeyRepository) Delete(_ context.Context, identity string) error {
	r.mu.Lock()
	defer r.mu.Unlock()

	delete(r.records, identity)
	return nil
}

func (r *memorySecretKeyRepository) ListIdentities(_ context.Context) ([]string, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()

	identities := make([]string, 0, len(r.records))
	for identity := range r.records {
		identities = append(identities, identity)
	}
	slices.Sort(identities)

	return identities, nil
}

func (r *memorySecretKeyRepository) PurgeExcept(_ context.Context, identity string) (int, error) {
	r.mu.Lock()
	defer r.mu.Unlock()

	removed := 0
	if r.legacy != nil {
		r.legacy = nil
		removed++
	}
	for other := range r.records {
		if other != identity {
			delete(r.records, other)
			removed++
		}
	}

	return removed, nil
}

func (r *memorySecretKeyRepository) Close() error {
	return nil
}

// PutLegacy writes the unscoped legacy key.
func (r *memorySecretKeyRepository) PutLegacy(_ context.Context, secret models.SecretKey) error {
	r.mu.Lock()
	defer r.mu.Unlock()

	r.legacy = &secret
	return nil
}
