// SPDX-License-Identifier: Apache-2.0
// Copyright 2026 Rasul Khiriev

package client

import "context"

// Client defines the minimal lifecycle contract for runnable client
// applications.
type Client interface {
	// Run executes the configured command and returns when it is done.
	Run(ctx context.Context) error
}

// SettingsScreen is the interactive key settings UI.
type SettingsScreen interface {
	// Settings blocks until the user leaves the screen and reports whether
	// the key was rotated.
	Settings(ctx context.Context, identity, contact string) (rotated bool, err error)
}
