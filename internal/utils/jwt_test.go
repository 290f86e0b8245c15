// SPDX-License-Identifier: Apache-2.0
// Copyright 2026 Rasul Khiriev

package utils

import (
	"testing"
	"time"

	"github.com/golang-jwt/jwt/v5"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

// signToken подписывает токен с заданными claims тестовым ключом
func signToken(t *testing.T, claims jwt.Claims) string {
	t.Helper()
	s, err := jwt.NewWithClaims(jwt.SigningMethodHS256, claims).SignedString([]byte("server-side-key"))
	require.NoError(t, err)
	return s
}

func TestIdentityFromToken_Success(t *testing.T) {
	token := signToken(t, jwt.RegisteredClaims{
		Subject:   "u1",
		ExpiresAt: jwt.NewNumericDate(time.Now().Add(time.Hour)),
	})

	id, err := IdentityFromToken(token)

	require.NoError(t, err)
	assert.Equal(t, "u1", id)
}

func TestIdentityFromToken_BearerPrefix(t *testing.T) {
	token := signToken(t, jwt.RegisteredClaims{Subject: "user-42"})

	id, err := IdentityFromToken("Bearer " + token)

	require.NoError(t, err)
	assert.Equal(t, "user-42", id)
}

func TestIdentityFromToken_ExpiredStillReadable(t *testing.T) {
	// Срок действия проверяет сервер, клиенту нужен только sub
	token := signToken(t, jwt.RegisteredClaims{
		Subject:   "u1",
		ExpiresAt: jwt.NewNumericDate(time.Now().Add(-time.Hour)),
	})

	id, err := IdentityFromToken(token)

	require.NoError(t, err)
	assert.Equal(t, "u1", id)
}

func TestIdentityFromToken_Errors(t *testing.T) {
	tests := []struct {
		name    string
		token   string
		wantErr error
	}{
		{name: "empty", token: "   "},
		{name: "garbage", token: "not-a-jwt"},
		{name: "no subject", token: signToken(t, jwt.RegisteredClaims{Issuer: "server"}), wantErr: ErrNoIdentity},
		{name: "blank subject", token: signToken(t, jwt.MapClaims{"sub": "  "}), wantErr: ErrNoIdentity},
		{name: "numeric subject", token: signToken(t, jwt.MapClaims{"sub": 42})},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			_, err := IdentityFromToken(tt.token)
			require.Error(t, err)
			if tt.wantErr != nil {
				assert.ErrorIs(t, err, tt.wantErr)
			}
		})
	}
}
