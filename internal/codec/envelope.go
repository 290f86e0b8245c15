// SPDX-License-Identifier: Apache-2.0
// Copyright 2026 Rasul Khiriev

package codec

import (
	"encoding/base64"
	"encoding/json"
	"fmt"

	"github.com/MKhiriev/go-key-keeper/models"
)

// EncodeBytes returns the standard base64 encoding of b.
func EncodeBytes(b []byte) string {
	return base64.StdEncoding.EncodeToString(b)
}

// DecodeBytes decodes standard base64 text. A decoding failure is reported
// as [ErrInvalidFormat].
func DecodeBytes(s string) ([]byte, error) {
	b, err := base64.StdEncoding.DecodeString(s)
	if err != nil {
		return nil, fmt.Errorf("%w: decode base64: %v", ErrInvalidFormat, err)
	}
	return b, nil
}

// Serialize encodes env as JSON text suitable for transport or storage.
// The envelope is validated first so that an unreadable envelope is never
// written out.
func Serialize(env models.Envelope) (string, error) {
	if err := ValidateEnvelope(env); err != nil {
		return "", err
	}

	b, err := json.Marshal(env)
	if err != nil {
		return "", fmt.Errorf("%w: marshal envelope: %v", ErrInvalidFormat, err)
	}
	return string(b), nil
}

// Deserialize parses JSON text produced by [Serialize] back into an envelope.
func Deserialize(text string) (models.Envelope, error) {
	var env models.Envelope
	if err := json.Unmarshal([]byte(text), &env); err != nil {
		return models.Envelope{}, fmt.Errorf("%w: unmarshal envelope: %v", ErrInvalidFormat, err)
	}

	if err := ValidateEnvelope(env); err != nil {
		return models.Envelope{}, err
	}
	return env, nil
}

// ValidateEnvelope checks that env carries every field needed to attempt
// decryption and that its binary fields are valid base64. It does not check
// whether the algorithm tags are supported; that is the engine's decision.
func ValidateEnvelope(env models.Envelope) error {
	switch {
	case env.Ciphertext == "":
		return fmt.Errorf("%w: missing encryptedBlob", ErrInvalidFormat)
	case env.Metadata.Algorithm == "":
		return fmt.Errorf("%w: missing algorithm", ErrInvalidFormat)
	case env.Metadata.KDF == "":
		return fmt.Errorf("%w: missing kdf", ErrInvalidFormat)
	case env.Metadata.IV == "":
		return fmt.Errorf("%w: missing iv", ErrInvalidFormat)
	case env.Metadata.Salt == "":
		return fmt.Errorf("%w: missing salt", ErrInvalidFormat)
	case env.Metadata.Iterations == 0:
		return fmt.Errorf("%w: iterations must be positive", ErrInvalidFormat)
	}

	for _, field := range []string{env.Ciphertext, env.Metadata.IV, env.Metadata.Salt} {
		if _, err := DecodeBytes(field); err != nil {
			return err
		}
	}
	return nil
}
