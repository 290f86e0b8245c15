// SPDX-License-Identifier: Apache-2.0
// Copyright 2026 Rasul Khiriev

// Package tui implements the interactive secret key settings screen: reveal
// or copy the key, rotate it behind a confirmation, and show the printable
// backup document.
package tui

import (
	"context"

	"github.com/MKhiriev/go-key-keeper/internal/logger"
	"github.com/MKhiriev/go-key-keeper/internal/service"
	tea "github.com/charmbracelet/bubbletea"
)

type TUI struct {
	services *service.ClientServices
	logger   *logger.Logger
}

func New(services *service.ClientServices, logger *logger.Logger) *TUI {
	return &TUI{services: services, logger: logger}
}

// Settings runs the settings screen for identity until the user quits.
// rotated reports whether the key was replaced during the session.
func (t *TUI) Settings(ctx context.Context, identity, contact string) (rotated bool, err error) {
	model := newSettingsModel(ctx, t.services, identity, contact)
	finalModel, runErr := tea.NewProgram(model, tea.WithAltScreen(), tea.WithContext(ctx)).Run()
	if runErr != nil {
		t.logger.Err(runErr).Str("func", "TUI.Settings").Msg("settings screen failed")
		return false, runErr
	}

	result, ok := finalModel.(settingsModel)
	if !ok {
		return false, tea.ErrProgramKilled
	}
	return result.rotated, nil
}
