// Package lookup runs debounced, cancellable lookups where a newer request
// for the same key supersedes the one in flight.
package lookup

import (
	"context"
	"errors"
	"sync"
	"time"
)

var ErrSuperseded = errors.New("lookup superseded by a newer request")

type (
	Coordinator struct {
		delay time.Duration

		mu       sync.Mutex
		inflight map[string]*call
		seq      uint64
	}

	call struct {
		id         uint64
		cancel     context.CancelFunc
		superseded bool
	}
)

// NewCoordinator returns a coordinator that waits delay before running a
// lookup, so bursts of requests only run the last one.
func NewCoordinator(delay time.Duration) *Coordinator {
	return &Coordinator{
		delay:    delay,
		inflight: make(map[string]*call),
	}
}

// Do runs fn for key once the debounce delay has elapsed. If another Do for
// the same key starts before this one returns, fn's context is cancelled and
// Do returns ErrSuperseded, discarding whatever fn produced.
func Do[T any](ctx context.Context, c *Coordinator, key string, fn func(ctx context.Context) (T, error)) (T, error) {
	var zero T

	ctx, cancel := context.WithCancel(ctx)
	own := c.start(key, cancel)
	defer c.finish(key, own)

	if c.delay > 0 {
		timer := time.NewTimer(c.delay)
		select {
		case <-ctx.Done():
			timer.Stop()
			if c.superseded(own) {
				return zero, ErrSuperseded
			}
			return zero, ctx.Err()
		case <-timer.C:
		}
	}

	res, err := fn(ctx)
	if c.superseded(own) {
		return zero, ErrSuperseded
	}
	if err != nil {
		return zero, err
	}
	return res, nil
}

// Pending reports how many keys currently have a lookup in flight.
func (c *Coordinator) Pending() int {
	c.mu.Lock()
	defer c.mu.Unlock()
	return len(c.inflight)
}

func (c *Coordinator) start(key string, cancel context.CancelFunc) *call {
	c.mu.Lock()
	defer c.mu.Unlock()

	if prev, ok := c.inflight[key]; ok {
		prev.superseded = true
		prev.cancel()
	}
	c.seq++
	own := &call{id: c.seq, cancel: cancel}
	c.inflight[key] = own
	return own
}

func (c *Coordinator) superseded(own *call) bool {
	c.mu.Lock()
	defer c.mu.Unlock()
	return own.superseded
}

func (c *Coordinator) finish(key string, own *call) {
	c.mu.Lock()
	defer c.mu.Unlock()
	if cur, ok := c.inflight[key]; ok && cur.id == own.id {
		delete(c.inflight, key)
	}
	own.cancel()
}
