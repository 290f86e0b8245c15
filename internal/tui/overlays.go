// SPDX-License-Identifier: Apache-2.0
// Copyright 2026 Rasul Khiriev

package tui

type confirmModel struct{}

func (m confirmModel) View() string {
	content := warnStyle.Render("Generate a new secret key?") + "\n\n"
	content += "Every item encrypted with the current key becomes unreadable.\n"
	content += "Make sure you no longer need them, or export them first.\n\n"
	content += "y rotate    n cancel"
	return overlayBoxStyle.Render(content)
}

type errorOverlayModel struct {
	message string
}

func (m errorOverlayModel) View() string {
	content := "Error\n\n" + m.message + "\n\nenter / esc close"
	return overlayBoxStyle.Render(content)
}
