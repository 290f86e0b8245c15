// SPDX-License-Identifier: Apache-2.0
// Copyright 2026 Rasul Khiriev

// Package client implements the command-line client runtime.
//
// It resolves the logged-in identity, runs the login hooks once, and
// dispatches one command (setup, show, settings, rotate, export, import,
// logout, encrypt, decrypt, list, add, delete) against the client services.
package client
