// SPDX-License-Identifier: Apache-2.0
// Copyright 2026 Rasul Khiriev

package service

import (
	"context"
	"sync"

	"github.com/MKhiriev/go-key-keeper/internal/logger"
)

type sessionHooks struct {
	keys SecretKeyService

	// mu serialises login and logout so cleanup never races a removal.
	mu sync.Mutex

	logger *logger.Logger
}

func NewSessionHooks(keys SecretKeyService, logger *logger.Logger) SessionHooks {
	return &sessionHooks{keys: keys, logger: logger}
}

// OnLogin implements [SessionHooks]. Every call is treated as a new login
// event and runs the cleanup.
func (h *sessionHooks) OnLogin(ctx context.Context, identity string) (int, error) {
	if identity == "" {
		return 0, ErrEmptyIdentity
	}

	h.mu.Lock()
	defer h.mu.Unlock()

	removed, err := h.keys.CleanupOnLogin(ctx, identity)
	if err != nil {
		return 0, err
	}

	h.logger.Debug().Str("func", "sessionHooks.OnLogin").Str("identity", identity).Int("removed", removed).Msg("login cleanup done")
	return removed, nil
}

// OnLogout implements [SessionHooks].
func (h *sessionHooks) OnLogout(ctx context.Context, identity string) error {
	if identity == "" {
		return ErrEmptyIdentity
	}

	h.mu.Lock()
	defer h.mu.Unlock()

	if err := h.keys.Remove(ctx, identity); err != nil {
		return err
	}

	h.logger.Debug().Str("func", "sessionHooks.OnLogout").Str("identity", identity).Msg("secret key removed on logout")
	return nil
}
