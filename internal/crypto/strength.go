// SPDX-License-Identifier: Apache-2.0
// Copyright 2026 Rasul Khiriev

package crypto

import (
	"strings"

	"github.com/MKhiriev/go-key-keeper/models"
)

// Violation codes reported by [ValidateSecretStrength].
const (
	ViolationTooShort         = "too_short"
	ViolationMissingUppercase = "missing_uppercase"
	ViolationMissingLowercase = "missing_lowercase"
	ViolationMissingDigit     = "missing_digit"
	ViolationMissingSpecial   = "missing_special"
)

// MinSecretLength is the shortest password accepted as strong.
const MinSecretLength = 8

const specialCharacters = `!@#$%^&*(),.?":{}|<>`

// ValidateSecretStrength checks candidate against the length and
// character-class rules and lists every rule it breaks, in a stable order.
func ValidateSecretStrength(candidate string) models.StrengthReport {
	violations := make([]string, 0, 5)

	if len([]rune(candidate)) < MinSecretLength {
		violations = append(violations, ViolationTooShort)
	}
	if !strings.ContainsFunc(candidate, isASCIIUpper) {
		violations = append(violations, ViolationMissingUppercase)
	}
	if !strings.ContainsFunc(candidate, isASCIILower) {
		violations = append(violations, ViolationMissingLowercase)
	}
	if !strings.ContainsFunc(candidate, isASCIIDigit) {
		violations = append(violations, ViolationMissingDigit)
	}
	if !strings.ContainsAny(candidate, specialCharacters) {
		violations = append(violations, ViolationMissingSpecial)
	}

	return models.StrengthReport{
		Valid:      len(violations) == 0,
		Violations: violations,
	}
}

func isASCIIUpper(r rune) bool { return r >= 'A' && r <= 'Z' }

func isASCIILower(r rune) bool { return r >= 'a' && r <= 'z' }

func isASCIIDigit(r rune) bool { return r >= '0' && r <= '9' }
