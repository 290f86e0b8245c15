// SPDX-License-Identifier: Apache-2.0
// Copyright 2026 Rasul Khiriev

package adapter

import (
	"context"
	"fmt"
	"net/url"
	"strings"

	"github.com/MKhiriev/go-key-keeper/internal/config"
	"github.com/MKhiriev/go-key-keeper/internal/logger"
	"github.com/MKhiriev/go-key-keeper/internal/utils"
	"github.com/MKhiriev/go-key-keeper/models"
	"github.com/go-resty/resty/v2"
)

const (
	traceIDHeader = "X-Trace-ID"

	vaultItemsPath = "/api/v1/vaults/{vaultId}/items"
	itemPath       = "/api/v1/vaults/items/{id}"
)

type httpVaultAdapter struct {
	client  *utils.HTTPClient
	traceID *utils.UUIDGenerator

	token string

	logger *logger.Logger
}

// NewHTTPVaultAdapter constructs an HTTP/REST implementation of
// [VaultAdapter]. It normalises and validates the base URL from
// cfg.HTTPAddress and configures the underlying HTTP client with the resolved
// base URL and request timeout.
//
// Returns an error if cfg.HTTPAddress is empty or cannot be parsed as a valid
// URL.
func NewHTTPVaultAdapter(cfg config.AdapterConfig, logger *logger.Logger) (VaultAdapter, error) {
	client := utils.NewHTTPClient()
	baseURL, err := normalizeBaseURL(cfg.HTTPAddress)
	if err != nil {
		return nil, fmt.Errorf("invalid adapter http address: %w", err)
	}

	client.
		SetBaseURL(baseURL).
		SetTimeout(cfg.RequestTimeout)

	return &httpVaultAdapter{
		client:  client,
		traceID: utils.NewUUIDGenerator(),
		logger:  logger,
	}, nil
}

func normalizeBaseURL(raw string) (string, error) {
	raw = strings.TrimSpace(raw)
	if raw == "" {
		return "", fmt.Errorf("empty address")
	}

	if !strings.Contains(raw, "://") {
		raw = "http://" + raw
	}

	u, err := url.Parse(raw)
	if err != nil {
		return "", err
	}
	if u.Scheme == "" || u.Host == "" {
		return "", fmt.Errorf("address must include host and scheme")
	}

	return strings.TrimRight(u.String(), "/"), nil
}

// SetToken implements [VaultAdapter]. It stores token (whitespace-trimmed) for
// use in the Authorization header of all subsequent requests.
func (h *httpVaultAdapter) SetToken(token string) {
	h.token = strings.TrimSpace(token)
}

// Token implements [VaultAdapter].
func (h *httpVaultAdapter) Token() string {
	return h.token
}

// ListItems implements [VaultAdapter]. GET /api/v1/vaults/{vaultId}/items.
func (h *httpVaultAdapter) ListItems(ctx context.Context, vaultID string) ([]models.VaultItem, error) {
	if strings.TrimSpace(vaultID) == "" {
		return nil, ErrEmptyVaultID
	}

	var items []models.VaultItem
	resp, err := h.authedRequest(ctx).
		SetPathParam("vaultId", vaultID).
		SetResult(&items).
		Get(vaultItemsPath)
	if err != nil {
		return nil, fmt.Errorf("list items request: %w", err)
	}
	if err = mapHTTPError(resp); err != nil {
		h.logger.Debug().Str("func", "httpVaultAdapter.ListItems").Int("status", resp.StatusCode()).Msg("list items rejected")
		return nil, err
	}

	return items, nil
}

// AddItem implements [VaultAdapter]. POST /api/v1/vaults/{vaultId}/items with
// the item body; only the envelope fields carry item contents.
func (h *httpVaultAdapter) AddItem(ctx context.Context, vaultID string, item models.VaultItem) (models.VaultItem, error) {
	if strings.TrimSpace(vaultID) == "" {
		return models.VaultItem{}, ErrEmptyVaultID
	}

	var created models.VaultItem
	resp, err := h.authedRequest(ctx).
		SetHeader("Content-Type", "application/json").
		SetPathParam("vaultId", vaultID).
		SetBody(item).
		SetResult(&created).
		Post(vaultItemsPath)
	if err != nil {
		return models.VaultItem{}, fmt.Errorf("add item request: %w", err)
	}
	if err = mapHTTPError(resp); err != nil {
		h.logger.Debug().Str("func", "httpVaultAdapter.AddItem").Int("status", resp.StatusCode()).Msg("add item rejected")
		return models.VaultItem{}, err
	}

	return created, nil
}

// UpdateItem implements [VaultAdapter]. PUT /api/v1/vaults/items/{id}.
func (h *httpVaultAdapter) UpdateItem(ctx context.Context, item models.VaultItem) (models.VaultItem, error) {
	if strings.TrimSpace(item.ID) == "" {
		return models.VaultItem{}, ErrEmptyItemID
	}

	var updated models.VaultItem
	resp, err := h.authedRequest(ctx).
		SetHeader("Content-Type", "application/json").
		SetPathParam("id", item.ID).
		SetBody(item).
		SetResult(&updated).
		Put(itemPath)
	if err != nil {
		return models.VaultItem{}, fmt.Errorf("update item request: %w", err)
	}
	if err = mapHTTPError(resp); err != nil {
		h.logger.Debug().Str("func", "httpVaultAdapter.UpdateItem").Int("status", resp.StatusCode()).Msg("update item rejected")
		return models.VaultItem{}, err
	}

	return updated, nil
}

// DeleteItem implements [VaultAdapter]. DELETE /api/v1/vaults/items/{id}.
func (h *httpVaultAdapter) DeleteItem(ctx context.Context, itemID string) error {
	if strings.TrimSpace(itemID) == "" {
		return ErrEmptyItemID
	}

	resp, err := h.authedRequest(ctx).
		SetPathParam("id", itemID).
		Delete(itemPath)
	if err != nil {
		return fmt.Errorf("delete item request: %w", err)
	}

	return mapHTTPError(resp)
}

// authedRequest creates a resty request bound to ctx, with the Authorization
// header attached when a token has been set and a fresh trace ID.
func (h *httpVaultAdapter) authedRequest(ctx context.Context) *resty.Request {
	req := h.client.R().
		SetContext(ctx).
		SetHeader(traceIDHeader, h.traceID.Generate())
	if token := h.Token(); token != "" {
		req.SetHeader("Authorization", "Bearer "+token)
	}
	return req
}
