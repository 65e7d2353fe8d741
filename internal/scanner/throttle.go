package scanner

import (
	"fmt"
	"io"
	"net/http"
	"sync"
	"time"
)

const (
	minBackoff = 500 * time.Millisecond
	maxBackoff = 30 * time.Second
)

// Throttler holds the per-worker pacing delay. With adaptive mode enabled it
// doubles the delay on 429/503 responses or on a run of transport errors and
// halves it back toward the base delay once responses are healthy again.
type Throttler struct {
	mu           sync.Mutex
	baseDelay    time.Duration
	currentDelay time.Duration
	consecutive  int // consecutive throttle signals
	enabled      bool
	log          io.Writer // nil = silent
}

// NewThrottler creates a throttler. Back-off notices go to log when it is
// non-nil.
func NewThrottler(baseDelay time.Duration, adaptive bool, log io.Writer) *Throttler {
	return &Throttler{
		baseDelay:    baseDelay,
		currentDelay: baseDelay,
		enabled:      adaptive,
		log:          log,
	}
}

// Delay returns the pause a worker takes before its next request.
func (t *Throttler) Delay() time.Duration {
	if !t.enabled {
		return t.baseDelay
	}
	t.mu.Lock()
	defer t.mu.Unlock()
	return t.currentDelay
}

// Record feeds one probe outcome into the throttler.
func (t *Throttler) Record(r *ProbeResult) {
	if !t.enabled {
		return
	}
	t.mu.Lock()
	defer t.mu.Unlock()

	switch {
	case r.Failed():
		t.consecutive++
		if t.consecutive >= 3 {
			t.backoff("multiple errors")
		}
	case r.StatusCode == http.StatusTooManyRequests || r.StatusCode == http.StatusServiceUnavailable:
		t.consecutive++
		t.backoff(fmt.Sprintf("rate limited (HTTP %d)", r.StatusCode))
	case t.consecutive > 0:
		t.consecutive = 0
		next := max(t.currentDelay/2, t.baseDelay)
		if next != t.currentDelay {
			t.currentDelay = next
			if next > t.baseDelay {
				t.logf("[+] Recovering, delay now %s/req\n", next)
			}
		}
	}
}

// backoff must be called with t.mu held.
func (t *Throttler) backoff(reason string) {
	next := min(max(t.currentDelay*2, minBackoff), maxBackoff)
	if next != t.currentDelay {
		t.currentDelay = next
		t.logf("\n[!] %s, backing off to %s/req\n", reason, next)
	}
}

func (t *Throttler) logf(format string, args ...any) {
	if t.log != nil {
		fmt.Fprintf(t.log, format, args...)
	}
}
