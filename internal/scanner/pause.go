package scanner

import (
	"context"
	"sync"
	"time"
)

// Pauser is a pause/resume gate that workers pass between probes.
type Pauser struct {
	mu          sync.Mutex
	resume      chan struct{} // non-nil while paused, closed on resume
	pausedSince time.Time
	totalPaused time.Duration
}

// NewPauser creates a Pauser in the running state.
func NewPauser() *Pauser {
	return &Pauser{}
}

// Wait blocks while paused. It returns ctx.Err() if ctx ends first, so a
// cancelled run is never held by a pause.
func (p *Pauser) Wait(ctx context.Context) error {
	p.mu.Lock()
	ch := p.resume
	p.mu.Unlock()
	if ch == nil {
		return nil
	}
	select {
	case <-ch:
		return nil
	case <-ctx.Done():
		return ctx.Err()
	}
}

// Toggle flips between paused and running and returns true if now paused.
func (p *Pauser) Toggle() bool {
	p.mu.Lock()
	defer p.mu.Unlock()
	if p.resume != nil {
		p.totalPaused += time.Since(p.pausedSince)
		close(p.resume)
		p.resume = nil
		return false
	}
	p.resume = make(chan struct{})
	p.pausedSince = time.Now()
	return true
}

// IsPaused reports whether the gate is closed.
func (p *Pauser) IsPaused() bool {
	p.mu.Lock()
	defer p.mu.Unlock()
	return p.resume != nil
}

// PausedDuration returns the total time spent paused, including an ongoing
// pause. It is safe to call on a nil Pauser.
func (p *Pauser) PausedDuration() time.Duration {
	if p == nil {
		return 0
	}
	p.mu.Lock()
	defer p.mu.Unlock()
	d := p.totalPaused
	if p.resume != nil {
		d += time.Since(p.pausedSince)
	}
	return d
}
