// SPDX-License-Identifier: Apache-2.0
// Copyright 2026 Rasul Khiriev

package codec

import "errors"

// ErrInvalidFormat is returned for malformed envelope or backup text:
// broken JSON, missing required fields, a wrong schema tag, or binary
// fields that are not valid base64.
var ErrInvalidFormat = errors.New("invalid format")
