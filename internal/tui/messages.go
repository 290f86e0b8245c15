// SPDX-License-Identifier: Apache-2.0
// Copyright 2026 Rasul Khiriev

package tui

import "github.com/MKhiriev/go-key-keeper/models"

type keyLoadedMsg struct {
	secret models.SecretKey
	ok     bool
	err    error
}

type rotatedMsg struct {
	secret models.SecretKey
	err    error
}

type backupReadyMsg struct {
	document string
	err      error
}

type copiedMsg struct {
	err error
}

type clearStatusMsg struct{}
