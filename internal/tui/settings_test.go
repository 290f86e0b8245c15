// SPDX-License-Identifier: Apache-2.0
// Copyright 2026 Rasul Khiriev

package tui

import (
	"context"
	"errors"
	"testing"

	"github.com/MKhiriev/go-key-keeper/internal/app"
	"github.com/MKhiriev/go-key-keeper/internal/logger"
	"github.com/MKhiriev/go-key-keeper/internal/service"
	"github.com/MKhiriev/go-key-keeper/internal/store"
	"github.com/MKhiriev/go-key-keeper/models"
	tea "github.com/charmbracelet/bubbletea"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

const testSecret = models.SecretKey("ABCD1234EFGH5678")

// собираем модель с ключом в памяти
func newTestModel(t *testing.T, secret models.SecretKey) (settingsModel, service.SecretKeyService) {
	t.Helper()

	log := logger.Nop()
	keys := service.NewSecretKeyService(store.NewMemorySecretKeyRepository(), log)
	if secret != "" {
		require.NoError(t, keys.Store(context.Background(), "u1", secret))
	}
	services := &service.ClientServices{
		SecretKeyService: keys,
		BackupService:    service.NewBackupService(keys, log),
	}

	m := newSettingsModel(context.Background(), services, "u1", "u1@example.com")
	m = update(t, m, m.cmdLoadKey()())
	return m, keys
}

func update(t *testing.T, m settingsModel, msg tea.Msg) settingsModel {
	t.Helper()
	next, _ := m.Update(msg)
	out, ok := next.(settingsModel)
	require.True(t, ok)
	return out
}

func press(s string) tea.KeyMsg {
	switch s {
	case "enter":
		return tea.KeyMsg{Type: tea.KeyEnter}
	case "esc":
		return tea.KeyMsg{Type: tea.KeyEsc}
	case "ctrl+c":
		return tea.KeyMsg{Type: tea.KeyCtrlC}
	}
	return tea.KeyMsg{Type: tea.KeyRunes, Runes: []rune(s)}
}

func TestSettings_MaskedByDefaultAndReveal(t *testing.T) {
	m, _ := newTestModel(t, testSecret)

	assert.False(t, m.loading)
	assert.True(t, m.hasKey)
	assert.Contains(t, m.View(), "ABCD********5678")
	assert.NotContains(t, m.View(), string(testSecret))

	m = update(t, m, press("r"))
	assert.Contains(t, m.View(), string(testSecret))

	m = update(t, m, press("r"))
	assert.NotContains(t, m.View(), string(testSecret))
}

func TestSettings_NoKey(t *testing.T) {
	m, _ := newTestModel(t, "")

	assert.False(t, m.hasKey)
	assert.Contains(t, m.View(), app.MsgSecretKeyMissing)

	m = update(t, m, press("n"))
	assert.False(t, m.showConfirm)
	assert.Equal(t, service.RotationStable, m.rotation.State())
}

func TestSettings_Copy(t *testing.T) {
	m, _ := newTestModel(t, testSecret)

	var copied string
	m.copy = func(s string) error {
		copied = s
		return nil
	}

	_, cmd := m.Update(press("c"))
	require.NotNil(t, cmd)
	msg := cmd()

	m = update(t, m, msg)
	assert.Equal(t, string(testSecret), copied)
	assert.Equal(t, "secret key copied to clipboard", m.status)

	m = update(t, m, clearStatusMsg{})
	assert.Empty(t, m.status)
}

func TestSettings_CopyFailureShowsOverlay(t *testing.T) {
	m, _ := newTestModel(t, testSecret)
	m.copy = func(string) error { return errors.New("no clipboard") }

	_, cmd := m.Update(press("c"))
	m = update(t, m, cmd())

	require.NotNil(t, m.errOverlay)
	assert.Equal(t, app.MessageFor(errors.New("no clipboard")), m.errOverlay.message)

	// любые клавиши кроме enter/esc игнорируются
	m = update(t, m, press("r"))
	assert.NotNil(t, m.errOverlay)
	assert.False(t, m.revealed)

	m = update(t, m, press("enter"))
	assert.Nil(t, m.errOverlay)
}

func TestSettings_RotateAbort(t *testing.T) {
	m, keys := newTestModel(t, testSecret)

	m = update(t, m, press("n"))
	assert.True(t, m.showConfirm)
	assert.Equal(t, service.RotationConfirming, m.rotation.State())
	assert.Contains(t, m.View(), "unreadable")

	m = update(t, m, press("esc"))
	assert.False(t, m.showConfirm)
	assert.Equal(t, service.RotationStable, m.rotation.State())

	secret, ok, err := keys.Load(context.Background(), "u1")
	require.NoError(t, err)
	require.True(t, ok)
	assert.Equal(t, testSecret, secret)
}

func TestSettings_RotateConfirm(t *testing.T) {
	m, keys := newTestModel(t, testSecret)

	m = update(t, m, press("n"))
	next, cmd := m.Update(press("y"))
	m = next.(settingsModel)
	require.NotNil(t, cmd)
	assert.True(t, m.loading)

	m = update(t, m, cmd())

	assert.False(t, m.loading)
	assert.True(t, m.rotated)
	assert.False(t, m.showConfirm)
	assert.NotEqual(t, testSecret, m.secret)
	assert.Equal(t, service.RotationStable, m.rotation.State())

	stored, ok, err := keys.Load(context.Background(), "u1")
	require.NoError(t, err)
	require.True(t, ok)
	assert.Equal(t, m.secret, stored)
}

func TestSettings_Backup(t *testing.T) {
	m, _ := newTestModel(t, testSecret)

	_, cmd := m.Update(press("b"))
	require.NotNil(t, cmd)
	m = update(t, m, cmd())

	require.NotEmpty(t, m.document)
	assert.Contains(t, m.View(), "u1")
	assert.Contains(t, m.document, "u1@example.com")

	m = update(t, m, press("esc"))
	assert.Empty(t, m.document)
}

func TestSettings_Quit(t *testing.T) {
	m, _ := newTestModel(t, testSecret)

	for _, k := range []string{"q", "ctrl+c"} {
		_, cmd := m.Update(press(k))
		require.NotNil(t, cmd, k)
		assert.IsType(t, tea.QuitMsg{}, cmd(), k)
	}
}
