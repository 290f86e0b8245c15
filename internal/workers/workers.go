// SPDX-License-Identifier: Apache-2.0
// Copyright 2026 Rasul Khiriev

package workers

import (
	"context"

	"golang.org/x/sync/errgroup"
)

// Pool is a [Runner] backed by an errgroup with a concurrency limit.
type Pool struct {
	limit int
}

// NewPool returns a Pool running at most limit tasks at once. A limit below
// one is treated as one.
func NewPool(limit int) *Pool {
	if limit < 1 {
		limit = 1
	}
	return &Pool{limit: limit}
}

// Run starts task for every index in [0, n) and waits for them. ctx is
// checked before each task is scheduled; once it is done, or once a task
// returns an error, no further tasks are started and the first error is
// returned.
func (p *Pool) Run(ctx context.Context, n int, task Task) error {
	g, gctx := errgroup.WithContext(ctx)
	g.SetLimit(p.limit)

	for i := 0; i < n; i++ {
		if gctx.Err() != nil {
			break
		}
		g.Go(func() error {
			if err := gctx.Err(); err != nil {
				return err
			}
			return task(gctx, i)
		})
	}

	if err := g.Wait(); err != nil {
		return err
	}
	return ctx.Err()
}
