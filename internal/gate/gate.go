// SPDX-License-Identifier: Apache-2.0
// Copyright 2026 Rasul Khiriev

// Package gate serializes work per account.
//
// A [Gate] admits at most one holder per owner id at a time. Different owners
// never contend. Entries exist only while an owner is held or awaited, so the
// gate does not grow with the user population.
package gate

import (
	"context"
	"errors"
	"sync"
	"time"

	"golang.org/x/sync/semaphore"
)

// ErrBusy is returned when the owner's gate could not be acquired within the
// configured wait. The caller should retry with backoff.
var ErrBusy = errors.New("another sync is in progress for this account")

// Release frees a held gate. Calling it more than once is safe.
type Release func()

type entry struct {
	sem  *semaphore.Weighted
	refs int
}

// Gate is a keyed mutual-exclusion primitive. The zero value is not usable;
// construct with [New].
type Gate struct {
	mu      sync.Mutex
	entries map[int64]*entry
	wait    time.Duration
}

// New returns a Gate whose Acquire blocks for at most wait. A wait <= 0 makes
// Acquire non-blocking: it fails with [ErrBusy] if the owner is held.
func New(wait time.Duration) *Gate {
	return &Gate{
		entries: make(map[int64]*entry),
		wait:    wait,
	}
}

// Acquire takes the gate for owner.
//
// It returns [ErrBusy] when the bounded wait elapses and the context error
// when ctx is done first. On success the returned [Release] must be called
// exactly once on every exit path; extra calls are no-ops.
func (g *Gate) Acquire(ctx context.Context, owner int64) (Release, error) {
	e := g.ref(owner)

	if err := g.take(ctx, e.sem); err != nil {
		g.unref(owner, e)
		return nil, err
	}

	var once sync.Once
	return func() {
		once.Do(func() {
			e.sem.Release(1)
			g.unref(owner, e)
		})
	}, nil
}

func (g *Gate) take(ctx context.Context, sem *semaphore.Weighted) error {
	if g.wait <= 0 {
		if !sem.TryAcquire(1) {
			return ErrBusy
		}
		return nil
	}

	waitCtx, cancel := context.WithTimeout(ctx, g.wait)
	defer cancel()

	if err := sem.Acquire(waitCtx, 1); err != nil {
		if ctxErr := ctx.Err(); ctxErr != nil {
			return ctxErr
		}
		return ErrBusy
	}

	return nil
}

func (g *Gate) ref(owner int64) *entry {
	g.mu.Lock()
	defer g.mu.Unlock()

	e, ok := g.entries[owner]
	if !ok {
		e = &entry{sem: semaphore.NewWeighted(1)}
		g.entries[owner] = e
	}
	e.refs++

	return e
}

func (g *Gate) unref(owner int64, e *entry) {
	g.mu.Lock()
	defer g.mu.Unlock()

	e.refs--
	if e.refs == 0 {
		delete(g.entries, owner)
	}
}

// Len reports how many owners are currently held or awaited.
func (g *Gate) Len() int {
	g.mu.Lock()
	defer g.mu.Unlock()
	return len(g.entries)
}
