// SPDX-License-Identifier: Apache-2.0
// Copyright 2026 Rasul Khiriev

package service

import (
	"bytes"
	"fmt"
	"strings"
	"text/template"
	"time"

	"github.com/MKhiriev/go-key-keeper/internal/codec"
	"github.com/MKhiriev/go-key-keeper/internal/logger"
	"github.com/MKhiriev/go-key-keeper/models"
)

const backupDocumentTemplate = `GO-KEY-KEEPER SECRET KEY BACKUP
===============================

Account:  {{ .Identity }}
{{- if .Contact }}
Contact:  {{ .Contact }}
{{- end }}
Created:  {{ .Created }}
Key:      {{ .Masked }}

Backup code (scan the QR code or type it in exactly):

{{ .Transport }}

WARNING
-------
* Anyone holding this document can read every item in your vault.
* Keep it offline and out of sight. Do not photograph or e-mail it.
* If the key is rotated, this document no longer opens your items.

RESTORE
-------
1. Log in as {{ .Identity }} on the new device.
2. Choose "import" in the key setup screen.
3. Scan the QR code or paste the backup code above.
`

var backupDocument = template.Must(template.New("backup").Parse(backupDocumentTemplate))

type backupService struct {
	keys  SecretKeyService
	clock func() time.Time

	logger *logger.Logger
}

// BackupOption configures a [BackupService].
type BackupOption func(*backupService)

// WithClock replaces the time source stamped on payloads. Intended for tests.
func WithClock(clock func() time.Time) BackupOption {
	return func(s *backupService) {
		s.clock = clock
	}
}

// NewBackupService constructs a [BackupService]. keys is only used for
// masking the key on the printable document.
func NewBackupService(keys SecretKeyService, logger *logger.Logger, opts ...BackupOption) BackupService {
	s := &backupService{
		keys:   keys,
		clock:  time.Now,
		logger: logger,
	}
	for _, opt := range opts {
		opt(s)
	}
	return s
}

func (s *backupService) BuildPayload(identity string, secret models.SecretKey) models.BackupPayload {
	return models.BackupPayload{
		SchemaTag: models.BackupSchemaTag,
		Version:   models.BackupVersion,
		Identity:  identity,
		Secret:    secret,
		Timestamp: s.clock().UnixMilli(),
	}
}

func (s *backupService) EncodeForTransport(payload models.BackupPayload) (string, error) {
	return codec.EncodeBackup(payload)
}

func (s *backupService) ParseImport(text, expectedIdentity string) (models.SecretKey, error) {
	if expectedIdentity == "" {
		return "", ErrEmptyIdentity
	}

	payload, err := codec.DecodeBackup(strings.TrimSpace(text))
	if err != nil {
		s.logger.Debug().Str("func", "backupService.ParseImport").Msg("backup payload rejected")
		return "", err
	}
	if payload.Identity != expectedIdentity {
		s.logger.Warn().Str("func", "backupService.ParseImport").
			Str("expected", expectedIdentity).Str("got", payload.Identity).Msg("backup of another identity")
		return "", ErrIdentityMismatch
	}

	return payload.Secret, nil
}

func (s *backupService) Document(payload models.BackupPayload, contact string) (string, error) {
	transport, err := s.EncodeForTransport(payload)
	if err != nil {
		return "", err
	}

	data := struct {
		Identity  string
		Contact   string
		Created   string
		Masked    string
		Transport string
	}{
		Identity:  payload.Identity,
		Contact:   strings.TrimSpace(contact),
		Created:   time.UnixMilli(payload.Timestamp).UTC().Format(time.RFC1123),
		Masked:    s.keys.Mask(payload.Secret),
		Transport: transport,
	}

	var buf bytes.Buffer
	if err = backupDocument.Execute(&buf, data); err != nil {
		return "", fmt.Errorf("render backup document: %w", err)
	}
	return buf.String(), nil
}
