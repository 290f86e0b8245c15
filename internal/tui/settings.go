// SPDX-License-Identifier: Apache-2.0
// Copyright 2026 Rasul Khiriev

package tui

import (
	"context"
	"errors"
	"strings"
	"time"

	"github.com/MKhiriev/go-key-keeper/internal/app"
	"github.com/MKhiriev/go-key-keeper/internal/service"
	"github.com/MKhiriev/go-key-keeper/models"
	"github.com/atotto/clipboard"
	"github.com/charmbracelet/bubbles/key"
	"github.com/charmbracelet/bubbles/spinner"
	tea "github.com/charmbracelet/bubbletea"
)

const statusTTL = 2 * time.Second

type settingsModel struct {
	ctx      context.Context
	keys     service.SecretKeyService
	backups  service.BackupService
	identity string
	contact  string

	secret   models.SecretKey
	hasKey   bool
	revealed bool
	loading  bool
	rotated  bool

	rotation    *service.Rotation
	showConfirm bool
	document    string
	status      string
	errOverlay  *errorOverlayModel
	spinner     spinner.Model

	copy func(string) error
}

func newSettingsModel(ctx context.Context, services *service.ClientServices, identity, contact string) settingsModel {
	sp := spinner.New()
	sp.Spinner = spinner.Dot

	return settingsModel{
		ctx:      ctx,
		keys:     services.SecretKeyService,
		backups:  services.BackupService,
		identity: identity,
		contact:  contact,
		loading:  true,
		rotation: &service.Rotation{},
		spinner:  sp,
		copy:     clipboard.WriteAll,
	}
}

func (m settingsModel) Init() tea.Cmd {
	return tea.Batch(m.spinner.Tick, m.cmdLoadKey())
}

func (m settingsModel) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	switch msg := msg.(type) {
	case spinner.TickMsg:
		var cmd tea.Cmd
		m.spinner, cmd = m.spinner.Update(msg)
		return m, cmd

	case keyLoadedMsg:
		m.loading = false
		if msg.err != nil {
			return m.withError(msg.err), nil
		}
		m.secret, m.hasKey = msg.secret, msg.ok
		return m, nil

	case rotatedMsg:
		m.loading = false
		if msg.err != nil {
			return m.withError(msg.err), nil
		}
		m.secret, m.hasKey = msg.secret, true
		m.rotated = true
		m.showConfirm = false
		m.document = ""
		m.rotation = &service.Rotation{}
		m.status = "new secret key generated"
		return m, cmdClearStatus()

	case backupReadyMsg:
		if msg.err != nil {
			return m.withError(msg.err), nil
		}
		m.document = msg.document
		return m, nil

	case copiedMsg:
		if msg.err != nil {
			return m.withError(msg.err), nil
		}
		m.status = "secret key copied to clipboard"
		return m, cmdClearStatus()

	case clearStatusMsg:
		m.status = ""
		return m, nil

	case tea.KeyMsg:
		return m.handleKey(msg)
	}

	return m, nil
}

func (m settingsModel) handleKey(msg tea.KeyMsg) (tea.Model, tea.Cmd) {
	if key.Matches(msg, keys.quit) && msg.String() == "ctrl+c" {
		return m, tea.Quit
	}

	if m.errOverlay != nil {
		if key.Matches(msg, keys.enter) || key.Matches(msg, keys.esc) {
			m.errOverlay = nil
		}
		return m, nil
	}

	if m.showConfirm {
		switch {
		case key.Matches(msg, keys.yes):
			m.loading = true
			return m, m.cmdRotate()
		case key.Matches(msg, keys.no):
			_ = m.rotation.Abort()
			m.showConfirm = false
		}
		return m, nil
	}

	if m.loading {
		return m, nil
	}

	switch {
	case key.Matches(msg, keys.quit):
		return m, tea.Quit
	case key.Matches(msg, keys.esc) && m.document != "":
		m.document = ""
	case !m.hasKey:
		// nothing to act on until a key exists
	case key.Matches(msg, keys.reveal):
		m.revealed = !m.revealed
	case key.Matches(msg, keys.copy):
		return m, m.cmdCopy()
	case key.Matches(msg, keys.rotate):
		if err := m.rotation.Begin(); err != nil {
			return m.withError(err), nil
		}
		m.showConfirm = true
	case key.Matches(msg, keys.backup):
		return m, m.cmdBackup()
	}
	return m, nil
}

func (m settingsModel) View() string {
	var b strings.Builder

	b.WriteString(titleStyle.Render("Secret key") + "\n\n")
	b.WriteString("Account: " + m.identity + "\n\n")

	switch {
	case m.loading:
		b.WriteString(m.spinner.View() + " working...\n")
	case !m.hasKey:
		b.WriteString(warnStyle.Render(app.MsgSecretKeyMissing) + "\n")
	case m.revealed:
		b.WriteString(keyStyle.Render(string(m.secret)) + "\n")
	default:
		b.WriteString(keyStyle.Render(m.keys.Mask(m.secret)) + "\n")
	}

	if m.document != "" {
		b.WriteString("\n" + overlayBoxStyle.Render(m.document) + "\n")
	}
	if m.showConfirm {
		b.WriteString("\n" + confirmModel{}.View() + "\n")
	}
	if m.errOverlay != nil {
		b.WriteString("\n" + m.errOverlay.View() + "\n")
	}
	if m.status != "" {
		b.WriteString("\n" + statusStyle.Render(m.status) + "\n")
	}

	b.WriteString("\n" + helpStyle.Render(helpLine()))
	return appStyle.Render(b.String())
}

func (m settingsModel) withError(err error) settingsModel {
	m.errOverlay = &errorOverlayModel{message: app.MessageFor(err)}
	return m
}

func (m settingsModel) cmdLoadKey() tea.Cmd {
	ctx, svc, identity := m.ctx, m.keys, m.identity
	return func() tea.Msg {
		secret, ok, err := svc.Load(ctx, identity)
		return keyLoadedMsg{secret: secret, ok: ok, err: err}
	}
}

func (m settingsModel) cmdRotate() tea.Cmd {
	ctx, svc, identity, rotation := m.ctx, m.keys, m.identity, m.rotation
	return func() tea.Msg {
		var fresh models.SecretKey
		err := rotation.Confirm(func() error {
			s, err := svc.Rotate(ctx, identity)
			fresh = s
			return err
		})
		return rotatedMsg{secret: fresh, err: err}
	}
}

func (m settingsModel) cmdBackup() tea.Cmd {
	backups, identity, secret, contact := m.backups, m.identity, m.secret, m.contact
	return func() tea.Msg {
		doc, err := backups.Document(backups.BuildPayload(identity, secret), contact)
		return backupReadyMsg{document: doc, err: err}
	}
}

func (m settingsModel) cmdCopy() tea.Cmd {
	copyFn, secret := m.copy, string(m.secret)
	return func() tea.Msg {
		if copyFn == nil {
			return copiedMsg{err: errors.New("clipboard unavailable")}
		}
		return copiedMsg{err: copyFn(secret)}
	}
}

func cmdClearStatus() tea.Cmd {
	return tea.Tick(statusTTL, func(time.Time) tea.Msg { return clearStatusMsg{} })
}

func helpLine() string {
	parts := make([]string, 0, len(keys.shortHelp()))
	for _, b := range keys.shortHelp() {
		h := b.Help()
		parts = append(parts, h.Key+" "+h.Desc)
	}
	return strings.Join(parts, " • ")
}
