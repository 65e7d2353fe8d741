package scanner

import (
	"context"
	"sync"
	"time"

	"golang.org/x/time/rate"
)

// WorkerConfig holds options for the worker pool.
type WorkerConfig struct {
	Threads   int
	Throttler *Throttler    // per-worker pacing; nil = none
	Limiter   *rate.Limiter // global request rate; nil = unlimited
	Pauser    *Pauser       // nil = no pause support
}

// Outcome pairs a candidate with the result of probing it.
type Outcome struct {
	Candidate Candidate
	Result    ProbeResult
}

// Dispatch probes every candidate of src exactly once using cfg.Threads
// workers and returns a channel of outcomes in completion order. The channel
// is closed once every worker has exited; the caller must drain it.
//
// The first candidate is the baseline: it is probed alone, and its outcome
// is delivered before any other candidate is handed to a worker.
//
// When ctx is cancelled no new probe starts. Probes already on the wire run
// on a detached context and end on their own or at the client timeout, and
// their outcomes are still delivered.
func Dispatch(ctx context.Context, p Prober, baseURL string, src Source, cfg WorkerConfig) <-chan Outcome {
	threads := max(cfg.Threads, 1)
	itemsCh := make(chan Candidate, threads)
	resultsCh := make(chan Outcome, threads*2)
	baselineDone := make(chan struct{})

	// Producer: stream candidates on demand.
	go func() {
		defer close(itemsCh)
		for i, path := range src.All() {
			select {
			case itemsCh <- Candidate{Index: i, Path: path}:
			case <-ctx.Done():
				return
			}
			if i == 0 {
				select {
				case <-baselineDone:
				case <-ctx.Done():
					return
				}
			}
		}
	}()

	var wg sync.WaitGroup
	for w := 0; w < threads; w++ {
		wg.Add(1)
		go func() {
			defer wg.Done()
			for {
				var c Candidate
				var ok bool
				select {
				case c, ok = <-itemsCh:
					if !ok {
						return
					}
				case <-ctx.Done():
					return
				}

				if !waitTurn(ctx, cfg) {
					return
				}

				res := p.Probe(context.WithoutCancel(ctx), JoinURL(baseURL, c.Path))
				if cfg.Throttler != nil {
					cfg.Throttler.Record(&res)
				}
				resultsCh <- Outcome{Candidate: c, Result: res}
				if c.Index == 0 {
					close(baselineDone)
				}
			}
		}()
	}

	go func() {
		wg.Wait()
		close(resultsCh)
	}()

	return resultsCh
}

// waitTurn applies pause, pacing and the global rate limit before a probe.
// It returns false if ctx ended meanwhile.
func waitTurn(ctx context.Context, cfg WorkerConfig) bool {
	if cfg.Pauser != nil {
		if err := cfg.Pauser.Wait(ctx); err != nil {
			return false
		}
	}

	if cfg.Throttler != nil {
		if delay := cfg.Throttler.Delay(); delay > 0 {
			timer := time.NewTimer(delay)
			select {
			case <-timer.C:
			case <-ctx.Done():
				timer.Stop()
				return false
			}
		}
	}

	if cfg.Limiter != nil {
		if err := cfg.Limiter.Wait(ctx); err != nil {
			return false
		}
	}

	return ctx.Err() == nil
}
