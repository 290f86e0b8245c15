// SPDX-License-Identifier: Apache-2.0
// Copyright 2026 Rasul Khiriev

package service

import (
	"github.com/MKhiriev/go-key-keeper/internal/crypto"
	"github.com/MKhiriev/go-key-keeper/models"
)

// cheapParams keeps Argon2id fast in tests.
var cheapParams = models.KDFParams{Iterations: 1, MemoryKB: 64, Parallelism: 1, KeyLength: crypto.KeyLength}

func newTestEngine() crypto.Engine {
	return crypto.NewDefaultEngine(crypto.WithDefaultParams(cheapParams))
}
