// SPDX-License-Identifier: Apache-2.0
// Copyright 2026 Rasul Khiriev

// Package workers runs independent, CPU-bound jobs (such as Argon2id key
// derivation for many vault items) with a bounded number of goroutines.
package workers

import "context"

// Task processes the i-th element of a batch. A non-nil error stops the
// batch; tasks that want per-item failures to be tolerated record them
// themselves and return nil.
type Task func(ctx context.Context, i int) error

// Runner executes a batch of n tasks.
type Runner interface {
	Run(ctx context.Context, n int, task Task) error
}
