// SPDX-License-Identifier: Apache-2.0
// Copyright 2026 Rasul Khiriev

// Package store persists secret keys on the local device.
//
// Every key is scoped to the identity it belongs to. A separate legacy slot
// holds at most one key written before keys were scoped; it is only ever
// read by [SecretKeyRepository.PurgeExcept], which removes it together with
// every other identity's key when a user logs in.
//
// Three backends implement [SecretKeyRepository] and are chosen by the DSN
// passed to [NewSecretKeyRepository]:
//
//	memory, :memory:   in-process map, lost on exit
//	bolt://<path>      bbolt file
//	<path>             SQLite file, schema managed by goose migrations
package store
