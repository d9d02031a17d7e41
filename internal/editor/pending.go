package editor

import (
	"context"
	"sync"

	"golang.org/x/sync/semaphore"
)

// Pending tracks at most one in-flight request per kind. Requests of
// different kinds never block each other.
type Pending[K comparable] struct {
	mu   sync.Mutex
	sems map[K]*semaphore.Weighted
}

// NewPending creates an empty Pending set
func NewPending[K comparable]() *Pending[K] {
	return &Pending[K]{sems: make(map[K]*semaphore.Weighted)}
}

func (p *Pending[K]) sem(kind K) *semaphore.Weighted {
	p.mu.Lock()
	defer p.mu.Unlock()
	s, ok := p.sems[kind]
	if !ok {
		s = semaphore.NewWeighted(1)
		p.sems[kind] = s
	}
	return s
}

// TryStart marks kind as in flight. It returns false if kind is already running.
func (p *Pending[K]) TryStart(kind K) bool {
	return p.sem(kind).TryAcquire(1)
}

// Wait blocks until kind is free and marks it in flight
func (p *Pending[K]) Wait(ctx context.Context, kind K) error {
	return p.sem(kind).Acquire(ctx, 1)
}

// Done clears the in-flight mark for kind. It must follow a successful
// TryStart or Wait.
func (p *Pending[K]) Done(kind K) {
	p.sem(kind).Release(1)
}

// Busy reports whether kind is currently in flight
func (p *Pending[K]) Busy(kind K) bool {
	s := p.sem(kind)
	if !s.TryAcquire(1) {
		return true
	}
	s.Release(1)
	return false
}

// Idle reports whether no kind is in flight
func (p *Pending[K]) Idle() bool {
	p.mu.Lock()
	defer p.mu.Unlock()
	for _, s := range p.sems {
		if !s.TryAcquire(1) {
			return false
		}
		s.Release(1)
	}
	return true
}
