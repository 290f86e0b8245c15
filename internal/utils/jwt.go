// SPDX-License-Identifier: Apache-2.0
// Copyright 2026 Rasul Khiriev

package utils

import (
	"errors"
	"fmt"
	"strings"

	"github.com/golang-jwt/jwt/v5"
)

// ErrNoIdentity is returned when an access token carries no subject.
var ErrNoIdentity = errors.New("token has no subject")

// IdentityFromToken returns the subject (sub) claim of an access token.
//
// The signature is NOT verified: the token was issued to this client by the
// item-storage server, which verifies it on every request. The client only
// needs the identity to scope its local secret key.
//
// A "Bearer " prefix is accepted and stripped.
func IdentityFromToken(tokenString string) (string, error) {
	tokenString = strings.TrimSpace(tokenString)
	tokenString = strings.TrimSpace(strings.TrimPrefix(tokenString, "Bearer "))
	if tokenString == "" {
		return "", errors.New("empty token")
	}

	token, _, err := jwt.NewParser().ParseUnverified(tokenString, jwt.MapClaims{})
	if err != nil {
		return "", fmt.Errorf("error occurred parsing token: %w", err)
	}

	claims, ok := token.Claims.(jwt.MapClaims)
	if !ok {
		return "", errors.New("invalid token claims")
	}

	sub, err := claims.GetSubject()
	if err != nil {
		return "", fmt.Errorf("error occurred during getting subject from token: %w", err)
	}
	if strings.TrimSpace(sub) == "" {
		return "", ErrNoIdentity
	}

	return sub, nil
}
