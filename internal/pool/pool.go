// Package pool provides a bounded pool of reusable workers.
package pool

import (
	"context"
	"errors"
	"fmt"
	"sync"
)

// ErrPoolClosed is returned by Acquire after Close.
var ErrPoolClosed = errors.New("pool: closed")

// Pool hands out at most Size items at a time.
type Pool[T any] struct {
	items  chan T
	size   int
	mu     sync.Mutex
	closed bool
}

// New creates a pool of size items built by newItem. A size <= 0 means 1.
func New[T any](size int, newItem func(i int) (T, error)) (*Pool[T], error) {
	if size <= 0 {
		size = 1
	}

	p := &Pool[T]{
		items: make(chan T, size),
		size:  size,
	}

	for i := 0; i < size; i++ {
		item, err := newItem(i)
		if err != nil {
			p.Close()
			return nil, fmt.Errorf("creating item %d: %w", i, err)
		}
		p.items <- item
	}

	return p, nil
}

// Acquire takes an item from the pool, blocking until one is free.
// Respects context cancellation. Returns ErrPoolClosed if the pool is closed.
func (p *Pool[T]) Acquire(ctx context.Context) (T, error) {
	var zero T
	if err := ctx.Err(); err != nil {
		return zero, err
	}
	select {
	case item, ok := <-p.items:
		if !ok {
			return zero, ErrPoolClosed
		}
		return item, nil
	case <-ctx.Done():
		return zero, ctx.Err()
	}
}

// Release returns an item to the pool. Items released after Close are
// dropped.
func (p *Pool[T]) Release(item T) {
	p.mu.Lock()
	defer p.mu.Unlock()
	if p.closed {
		return
	}

	select {
	case p.items <- item:
	default:
		// Pool full; drop the extra item
	}
}

// Close shuts the pool. Items still checked out are dropped on Release.
// Close is idempotent.
func (p *Pool[T]) Close() {
	p.mu.Lock()
	defer p.mu.Unlock()
	if p.closed {
		return
	}
	p.closed = true
	close(p.items)
	for range p.items {
	}
}

// Size returns the pool size.
func (p *Pool[T]) Size() int {
	return p.size
}
