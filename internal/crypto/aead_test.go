// SPDX-License-Identifier: Apache-2.0
// Copyright 2026 Rasul Khiriev

package crypto

import (
	"bytes"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestAESGCMCipher_SealOpen(t *testing.T) {
	c := NewAESGCMCipher()
	key := bytes.Repeat([]byte{0x11}, int(KeyLength))
	nonce := bytes.Repeat([]byte{0x22}, NonceSize)

	sealed, err := c.Seal([]byte("payload"), key, nonce)
	require.NoError(t, err)
	assert.Len(t, sealed, len("payload")+16)
	assert.NotContains(t, string(sealed), "payload")

	opened, err := c.Open(sealed, key, nonce)
	require.NoError(t, err)
	assert.Equal(t, []byte("payload"), opened)
}

func TestAESGCMCipher_Seal_InvalidInput(t *testing.T) {
	c := NewAESGCMCipher()

	_, err := c.Seal([]byte("x"), make([]byte, 16), make([]byte, NonceSize))
	assert.ErrorIs(t, err, ErrEncryptionFailed)

	_, err = c.Seal([]byte("x"), make([]byte, KeyLength), make([]byte, 8))
	assert.ErrorIs(t, err, ErrEncryptionFailed)
}

func TestAESGCMCipher_Open_Failures(t *testing.T) {
	c := NewAESGCMCipher()
	key := bytes.Repeat([]byte{0x11}, int(KeyLength))
	nonce := bytes.Repeat([]byte{0x22}, NonceSize)

	sealed, err := c.Seal([]byte("payload"), key, nonce)
	require.NoError(t, err)

	wrongKey := bytes.Repeat([]byte{0x12}, int(KeyLength))
	wrongNonce := bytes.Repeat([]byte{0x23}, NonceSize)
	corrupted := bytes.Clone(sealed)
	corrupted[0] ^= 0x80

	tests := []struct {
		name       string
		ciphertext []byte
		key        []byte
		nonce      []byte
	}{
		{name: "wrong key", ciphertext: sealed, key: wrongKey, nonce: nonce},
		{name: "wrong nonce", ciphertext: sealed, key: key, nonce: wrongNonce},
		{name: "corrupted", ciphertext: corrupted, key: key, nonce: nonce},
		{name: "truncated", ciphertext: sealed[:4], key: key, nonce: nonce},
		{name: "short key", ciphertext: sealed, key: key[:16], nonce: nonce},
		{name: "short nonce", ciphertext: sealed, key: key, nonce: nonce[:8]},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			plaintext, err := c.Open(tt.ciphertext, tt.key, tt.nonce)
			assert.Equal(t, ErrAuthenticationFailed, err)
			assert.Nil(t, plaintext)
		})
	}
}
