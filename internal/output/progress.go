package output

import (
	"fmt"
	"io"
	"os"
	"sync/atomic"
	"time"

	"golang.org/x/term"
)

// Kind is how a completed probe is counted.
type Kind int

const (
	Miss     Kind = iota // response, not interesting
	Found                // recorded as a finding
	Filtered             // interesting status, suppressed by a filter
	Errored              // transport failure
)

// Progress holds the run counters and renders a status line every N
// completions. Rendering happens on the goroutine calling Record, so it
// never blocks the workers.
type Progress struct {
	total    int64
	issued   atomic.Int64
	found    atomic.Int64
	filtered atomic.Int64
	errors   atomic.Int64
	start    time.Time
	every    int64
	w        io.Writer
	tty      bool
	quiet    bool
	paused   func() time.Duration
	drawn    bool
}

// NewProgress creates a tracker for total candidates that renders to w
// every `every` completions. The clock starts now.
func NewProgress(total, every int, w io.Writer, quiet bool) *Progress {
	return &Progress{
		total: int64(total),
		every: int64(max(every, 1)),
		start: time.Now(),
		w:     w,
		tty:   isTerminal(w),
		quiet: quiet,
	}
}

// ExcludePaused makes elapsed time ignore the duration reported by f.
func (p *Progress) ExcludePaused(f func() time.Duration) {
	p.paused = f
}

// Record counts one completed probe.
func (p *Progress) Record(k Kind) {
	n := p.issued.Add(1)
	switch k {
	case Found:
		p.found.Add(1)
	case Filtered:
		p.filtered.Add(1)
	case Errored:
		p.errors.Add(1)
	}
	if n%p.every == 0 {
		p.print()
	}
}

// Snapshot of the counters.
type Snapshot struct {
	Total    int
	Issued   int
	Found    int
	Filtered int
	Errored  int
	Elapsed  time.Duration
}

// Snapshot returns the current counters.
func (p *Progress) Snapshot() Snapshot {
	return Snapshot{
		Total:    int(p.total),
		Issued:   int(p.issued.Load()),
		Found:    int(p.found.Load()),
		Filtered: int(p.filtered.Load()),
		Errored:  int(p.errors.Load()),
		Elapsed:  p.Elapsed(),
	}
}

// Elapsed returns the wall time since the start, minus paused time.
func (p *Progress) Elapsed() time.Duration {
	d := time.Since(p.start)
	if p.paused != nil {
		d -= p.paused()
	}
	return max(d, 0)
}

// ClearLine erases an in-place status line so other output can be printed.
func (p *Progress) ClearLine() {
	if p.quiet || !p.tty || !p.drawn {
		return
	}
	fmt.Fprint(p.w, "\r\033[K")
}

// Redraw prints the status line again after ClearLine. Without a terminal
// nothing was cleared and lines only follow the cadence.
func (p *Progress) Redraw() {
	if p.tty && p.drawn {
		p.print()
	}
}

// Stop renders the final status line.
func (p *Progress) Stop() {
	if p.quiet {
		return
	}
	p.print()
	if p.tty {
		fmt.Fprint(p.w, "\n")
	}
}

// Estimate returns the request rate and the time left for total requests.
// ok is false when there is no rate to project from yet.
func Estimate(total, issued int64, elapsed time.Duration) (rate float64, eta time.Duration, ok bool) {
	if elapsed <= 0 || issued <= 0 {
		return 0, 0, false
	}
	rate = float64(issued) / elapsed.Seconds()
	if rate <= 0 {
		return 0, 0, false
	}
	remaining := max(total-issued, 0)
	eta = time.Duration(float64(remaining) / rate * float64(time.Second))
	return rate, eta, true
}

func (p *Progress) line() string {
	issued := p.issued.Load()
	rate, eta, ok := Estimate(p.total, issued, p.Elapsed())

	pct := float64(0)
	if p.total > 0 {
		pct = float64(issued) / float64(p.total) * 100
	}
	etaStr := "unknown"
	if ok {
		etaStr = eta.Round(time.Second).String()
	}

	return fmt.Sprintf("[%3.0f%%] %d/%d | %.0f req/s | Found: %d | Filtered: %d | Errors: %d | ETA: %s",
		pct, issued, p.total, rate,
		p.found.Load(), p.filtered.Load(), p.errors.Load(), etaStr)
}

func (p *Progress) print() {
	if p.quiet {
		return
	}
	p.drawn = true
	if p.tty {
		fmt.Fprintf(p.w, "\r\033[K%s", p.line())
		return
	}
	fmt.Fprintln(p.w, p.line())
}

func isTerminal(w io.Writer) bool {
	f, ok := w.(*os.File)
	return ok && term.IsTerminal(int(f.Fd()))
}
