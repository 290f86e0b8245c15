// SPDX-License-Identifier: Apache-2.0
// Copyright 2026 Rasul Khiriev

package tui

import "github.com/charmbracelet/bubbles/key"

type keyMap struct {
	reveal key.Binding
	copy   key.Binding
	rotate key.Binding
	backup key.Binding
	enter  key.Binding
	esc    key.Binding
	quit   key.Binding
	yes    key.Binding
	no     key.Binding
}

var keys = keyMap{
	reveal: key.NewBinding(key.WithKeys("r"), key.WithHelp("r", "show/hide")),
	copy:   key.NewBinding(key.WithKeys("c"), key.WithHelp("c", "copy")),
	rotate: key.NewBinding(key.WithKeys("n"), key.WithHelp("n", "new key")),
	backup: key.NewBinding(key.WithKeys("b"), key.WithHelp("b", "backup")),
	enter:  key.NewBinding(key.WithKeys("enter")),
	esc:    key.NewBinding(key.WithKeys("esc")),
	quit:   key.NewBinding(key.WithKeys("q", "ctrl+c"), key.WithHelp("q", "quit")),
	yes:    key.NewBinding(key.WithKeys("y")),
	no:     key.NewBinding(key.WithKeys("n", "esc")),
}

func (k keyMap) shortHelp() []key.Binding {
	return []key.Binding{k.reveal, k.copy, k.rotate, k.backup, k.quit}
}
