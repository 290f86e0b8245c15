// SPDX-License-Identifier: Apache-2.0
// Copyright 2026 Rasul Khiriev

package crypto

import (
	"strings"
	"testing"

	"github.com/MKhiriev/go-key-keeper/models"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestGenerateSecretKey(t *testing.T) {
	seen := make(map[models.SecretKey]struct{})

	for range 32 {
		key, err := GenerateSecretKey()
		require.NoError(t, err)

		assert.Len(t, string(key), models.SecretKeyLength)
		assert.True(t, IsWellFormedSecretKey(key))

		_, dup := seen[key]
		assert.False(t, dup, "duplicate secret key generated")
		seen[key] = struct{}{}
	}
}

func TestGenerateSecretKeyFrom_FailingReader(t *testing.T) {
	key, err := GenerateSecretKeyFrom(failingReader{})
	assert.Error(t, err)
	assert.Empty(t, key)
}

func TestIsWellFormedSecretKey(t *testing.T) {
	valid := models.SecretKey(strings.Repeat("aB3-", models.SecretKeyLength/4))

	tests := []struct {
		name string
		key  models.SecretKey
		want bool
	}{
		{name: "valid", key: valid, want: true},
		{name: "too short", key: valid[:63], want: false},
		{name: "too long", key: valid + "a", want: false},
		{name: "bad character", key: models.SecretKey("_" + string(valid[1:])), want: false},
		{name: "empty", key: "", want: false},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.want, IsWellFormedSecretKey(tt.key))
		})
	}
}

func TestSecretKey_StringIsRedacted(t *testing.T) {
	key, err := GenerateSecretKey()
	require.NoError(t, err)

	assert.NotContains(t, key.String(), string(key))
}
