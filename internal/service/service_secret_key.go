// SPDX-License-Identifier: Apache-2.0
// Copyright 2026 Rasul Khiriev

package service

import (
	"context"
	"errors"
	"fmt"
	"strings"
	"sync"

	"github.com/MKhiriev/go-key-keeper/internal/crypto"
	"github.com/MKhiriev/go-key-keeper/internal/logger"
	"github.com/MKhiriev/go-key-keeper/internal/store"
	"github.com/MKhiriev/go-key-keeper/models"
)

// maskKeep is the number of characters left visible at each end of a masked key.
const maskKeep = 4

type secretKeyService struct {
	repo     store.SecretKeyRepository
	generate func() (models.SecretKey, error)

	// mu serialises read-modify-write sequences on the repository.
	mu sync.Mutex

	logger *logger.Logger
}

// SecretKeyOption configures a [SecretKeyService].
type SecretKeyOption func(*secretKeyService)

// WithKeyGenerator replaces the CSPRNG key generator. Intended for tests.
func WithKeyGenerator(generate func() (models.SecretKey, error)) SecretKeyOption {
	return func(s *secretKeyService) {
		s.generate = generate
	}
}

func NewSecretKeyService(repo store.SecretKeyRepository, logger *logger.Logger, opts ...SecretKeyOption) SecretKeyService {
	s := &secretKeyService{
		repo:     repo,
		generate: crypto.GenerateSecretKey,
		logger:   logger,
	}
	for _, opt := range opts {
		opt(s)
	}
	return s
}

func (s *secretKeyService) GenerateAndStore(ctx context.Context, identity string) (models.SecretKey, error) {
	if identity == "" {
		return "", ErrEmptyIdentity
	}

	s.mu.Lock()
	defer s.mu.Unlock()

	return s.replace(ctx, identity, "secretKeyService.GenerateAndStore")
}

func (s *secretKeyService) Load(ctx context.Context, identity string) (models.SecretKey, bool, error) {
	if identity == "" {
		return "", false, ErrEmptyIdentity
	}

	record, err := s.repo.Get(ctx, identity)
	if errors.Is(err, store.ErrSecretKeyNotFound) {
		return "", false, nil
	}
	if err != nil {
		s.logger.Err(err).Str("func", "secretKeyService.Load").Str("identity", identity).Msg("error loading secret key")
		return "", false, fmt.Errorf("load secret key: %w", err)
	}

	return record.Secret, true, nil
}

func (s *secretKeyService) Has(ctx context.Context, identity string) (bool, error) {
	_, ok, err := s.Load(ctx, identity)
	return ok, err
}

func (s *secretKeyService) Identities(ctx context.Context) ([]string, error) {
	identities, err := s.repo.ListIdentities(ctx)
	if err != nil {
		s.logger.Err(err).Str("func", "secretKeyService.Identities").Msg("error listing identities")
		return nil, err
	}
	return identities, nil
}

func (s *secretKeyService) Store(ctx context.Context, identity string, secret models.SecretKey) error {
	if identity == "" {
		return ErrEmptyIdentity
	}
	if strings.TrimSpace(string(secret)) == "" {
		return ErrEmptySecretKey
	}
	if !crypto.IsWellFormedSecretKey(secret) {
		s.logger.Warn().Str("func", "secretKeyService.Store").Str("identity", identity).
			Int("length", len(secret)).Msg("storing a key that was not generated by this client")
	}

	s.mu.Lock()
	defer s.mu.Unlock()

	if err := s.repo.Put(ctx, identity, secret); err != nil {
		s.logger.Err(err).Str("func", "secretKeyService.Store").Str("identity", identity).Msg("error storing secret key")
		return fmt.Errorf("store secret key: %w", err)
	}
	return nil
}

func (s *secretKeyService) Remove(ctx context.Context, identity string) error {
	if identity == "" {
		return ErrEmptyIdentity
	}

	s.mu.Lock()
	defer s.mu.Unlock()

	if err := s.repo.Delete(ctx, identity); err != nil && !errors.Is(err, store.ErrSecretKeyNotFound) {
		s.logger.Err(err).Str("func", "secretKeyService.Remove").Str("identity", identity).Msg("error removing secret key")
		return fmt.Errorf("remove secret key: %w", err)
	}
	return nil
}

func (s *secretKeyService) Mask(secret models.SecretKey) string {
	runes := []rune(string(secret))
	if len(runes) <= 2*maskKeep {
		return string(secret)
	}

	return string(runes[:maskKeep]) +
		strings.Repeat("*", len(runes)-2*maskKeep) +
		string(runes[len(runes)-maskKeep:])
}

func (s *secretKeyService) Rotate(ctx context.Context, identity string) (models.SecretKey, error) {
	if identity == "" {
		return "", ErrEmptyIdentity
	}

	s.mu.Lock()
	defer s.mu.Unlock()

	if _, err := s.repo.Get(ctx, identity); err != nil {
		if errors.Is(err, store.ErrSecretKeyNotFound) {
			return "", ErrSecretKeyMissing
		}
		return "", fmt.Errorf("rotate secret key: %w", err)
	}

	secret, err := s.replace(ctx, identity, "secretKeyService.Rotate")
	if err != nil {
		return "", err
	}

	s.logger.Info().Str("func", "secretKeyService.Rotate").Str("identity", identity).
		Str("key", s.Mask(secret)).Msg("secret key rotated")
	return secret, nil
}

func (s *secretKeyService) CleanupOnLogin(ctx context.Context, identity string) (int, error) {
	if identity == "" {
		return 0, ErrEmptyIdentity
	}

	s.mu.Lock()
	defer s.mu.Unlock()

	removed, err := s.repo.PurgeExcept(ctx, identity)
	if err != nil {
		s.logger.Err(err).Str("func", "secretKeyService.CleanupOnLogin").Str("identity", identity).Msg("error purging foreign keys")
		return 0, fmt.Errorf("cleanup on login: %w", err)
	}
	if removed > 0 {
		s.logger.Info().Str("func", "secretKeyService.CleanupOnLogin").Str("identity", identity).
			Int("removed", removed).Msg("removed keys of other identities")
	}

	return removed, nil
}

// replace generates a key and writes it. Callers hold s.mu.
func (s *secretKeyService) replace(ctx context.Context, identity, caller string) (models.SecretKey, error) {
	secret, err := s.generate()
	if err != nil {
		s.logger.Err(err).Str("func", caller).Msg("error generating secret key")
		return "", fmt.Errorf("generate secret key: %w", err)
	}

	if err = s.repo.Put(ctx, identity, secret); err != nil {
		s.logger.Err(err).Str("func", caller).Str("identity", identity).Msg("error storing secret key")
		return "", fmt.Errorf("store secret key: %w", err)
	}

	return secret, nil
}
