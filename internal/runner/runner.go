// Package runner wires the word list, prober, dispatcher, classifier and
// reporting into one scan.
package runner

import (
	"context"
	"errors"
	"fmt"
	"io"
	"os"
	"strconv"
	"strings"

	"github.com/maxvaer/dirhunt/internal/classify"
	"github.com/maxvaer/dirhunt/internal/config"
	"github.com/maxvaer/dirhunt/internal/hook"
	"github.com/maxvaer/dirhunt/internal/output"
	"github.com/maxvaer/dirhunt/internal/scanner"
	"github.com/maxvaer/dirhunt/internal/wordlist"
	"github.com/maxvaer/dirhunt/pkg/version"
	"golang.org/x/time/rate"
)

// Run validates opts and executes one scan against opts.URL. Findings and
// the final report go to stdout, banner, notices and progress to stderr.
//
// A configuration error is returned before any request is sent. Cancelling
// ctx stops the scan early; the partial report is still written and Run
// returns nil.
func Run(ctx context.Context, opts *config.Options) error {
	pauser, cleanup := startStdinToggle(opts.Quiet)
	defer cleanup()

	s := &scan{
		opts:   opts,
		stdout: os.Stdout,
		stderr: os.Stderr,
		pauser: pauser,
	}
	_, err := s.execute(ctx)
	return err
}

// scan holds the collaborators of one run. prober is created from opts
// when nil.
type scan struct {
	opts   *config.Options
	prober scanner.Prober
	stdout io.Writer
	stderr io.Writer
	pauser *scanner.Pauser
}

func (s *scan) logf(format string, args ...any) {
	if !s.opts.Quiet {
		fmt.Fprintf(s.stderr, format, args...)
	}
}

func (s *scan) execute(ctx context.Context) (*output.Summary, error) {
	opts := s.opts
	if err := opts.Validate(); err != nil {
		return nil, err
	}

	// 1. Load wordlist.
	list, err := wordlist.Load(opts.WordlistPath)
	if err != nil {
		if errors.Is(err, wordlist.ErrNoWords) {
			return nil, &config.Error{Field: "wordlist", Err: err}
		}
		return nil, fmt.Errorf("loading wordlist: %w", err)
	}
	if list.Fallback {
		fmt.Fprintf(s.stderr, "[!] Could not read wordlist %s (%v), using built-in list\n", opts.WordlistPath, list.FallbackErr)
	}
	gen := wordlist.NewGenerator(list.Words, opts.Extensions)

	// 2. Create prober.
	if s.prober == nil {
		p, err := scanner.NewHTTPProber(opts)
		if err != nil {
			return nil, err
		}
		s.prober = p
	}

	// 3. Create output writer.
	out := createWriter(opts, s.stdout)
	defer out.Close()

	if !opts.Quiet {
		printBanner(s.stderr, opts, list, gen.Len())
	}
	if opts.Recursive {
		fmt.Fprintf(s.stderr, "[!] --recursive is not supported, scanning the top level only\n")
	}

	// 4. Build suppression chain.
	chain := classify.NewChain()
	if len(opts.ExcludeSize) > 0 {
		chain.Add(classify.NewSizeFilter(opts.ExcludeSize))
	}
	if opts.SmartFilter {
		s.logf("[*] Calibrating smart filter against %s ...\n", opts.URL)
		sf, err := classify.NewSmartFilter(ctx, s.prober, opts.URL, opts.SmartFilterThreshold)
		if err != nil {
			fmt.Fprintf(s.stderr, "[!] Smart filter disabled: %v\n", err)
		} else {
			chain.Add(sf)
			s.logf("[+] Smart filter ready\n")
		}
	}
	if opts.DuplicateThreshold > 0 {
		chain.Add(classify.NewDuplicateFilter(opts.DuplicateThreshold))
	}

	if err := out.WriteHeader(); err != nil {
		return nil, err
	}

	// 5. Pacing and hooks.
	var throttleLog io.Writer
	if !opts.Quiet {
		throttleLog = s.stderr
	}
	workerCfg := scanner.WorkerConfig{
		Threads:   opts.Threads,
		Throttler: scanner.NewThrottler(opts.Delay, opts.AdaptiveThrottle, throttleLog),
		Pauser:    s.pauser,
	}
	if opts.Rate > 0 {
		workerCfg.Limiter = rate.NewLimiter(rate.Limit(opts.Rate), max(1, int(opts.Rate)))
	}

	var hookRunner *hook.Runner
	if opts.OnResultCmd != "" {
		hookRunner = hook.NewRunner(opts.OnResultCmd, opts.Quiet, s.stderr)
	}

	// 6. Dispatch and aggregate. This loop is the only writer of the store
	// and the counters.
	classifier := classify.New(opts.StatusCodes)
	store := output.NewStore()
	progress := output.NewProgress(gen.Len(), opts.ProgressEvery, s.stderr, opts.Quiet)
	progress.ExcludePaused(s.pauser.PausedDuration)

	runCtx, stop := context.WithCancel(ctx)
	defer stop()

	var baseline *scanner.ProbeResult
	var writeErr error
	for o := range scanner.Dispatch(runCtx, s.prober, opts.URL, gen, workerCfg) {
		res := o.Result
		if o.Candidate.Index == 0 {
			baseline = &res
		}

		if res.Failed() {
			store.AddError(o.Candidate, &res)
			progress.Record(output.Errored)
			continue
		}

		f := classifier.Classify(o.Candidate, &res)
		if f == nil {
			progress.Record(output.Miss)
			continue
		}
		if _, suppressed := chain.Apply(&res); suppressed {
			progress.Record(output.Filtered)
			continue
		}

		store.AddFinding(f)
		progress.Record(output.Found)
		if writeErr != nil {
			continue
		}

		progress.ClearLine()
		if err := out.WriteFinding(f); err != nil {
			// Keep draining so the workers can exit.
			writeErr = fmt.Errorf("writing finding: %w", err)
			stop()
			continue
		}
		progress.Redraw()

		if hookRunner != nil {
			hookRunner.Run(ctx, f)
		}
	}
	progress.Stop()

	// 7. Report.
	snap := progress.Snapshot()
	sum := &output.Summary{
		Target:      opts.URL,
		Total:       snap.Total,
		Issued:      snap.Issued,
		Found:       snap.Found,
		Errored:     snap.Errored,
		Filtered:    snap.Filtered,
		Suppressed:  chain.Hits(),
		Duration:    snap.Elapsed,
		Baseline:    baseline,
		Findings:    store.Findings(),
		Errors:      store.Errors(),
		Interrupted: ctx.Err() != nil,
	}
	if r, _, ok := output.Estimate(int64(snap.Total), int64(snap.Issued), snap.Elapsed); ok {
		sum.RequestsPerSec = r
	}
	output.SortFindings(sum.Findings, opts.SortBy)

	if writeErr != nil {
		return sum, writeErr
	}
	if sum.Interrupted {
		s.logf("\n[*] Interrupted, %d/%d candidates probed\n", sum.Issued, sum.Total)
	}
	if err := out.WriteSummary(sum); err != nil {
		return sum, fmt.Errorf("writing summary: %w", err)
	}
	return sum, nil
}

func createWriter(opts *config.Options, w io.Writer) output.Writer {
	switch opts.OutputFormat {
	case "json":
		return output.NewJSONWriter(w)
	case "csv":
		return output.NewCSVWriter(w)
	default:
		return output.NewTextWriter(w, opts.NoColor)
	}
}

func printBanner(w io.Writer, opts *config.Options, list *wordlist.List, candidates int) {
	const (
		cyan   = "\033[36m"
		white  = "\033[97m"
		dim    = "\033[2m"
		yellow = "\033[33m"
		reset  = "\033[0m"
	)

	c, wh, d, y, rs := cyan, white, dim, yellow, reset
	if opts.NoColor {
		c, wh, d, y, rs = "", "", "", "", ""
	}

	fmt.Fprintf(w, `
%s       ___      __               __ %s
%s  ____/ (_)____/ /_  __  ______ / /_%s
%s / __  / / ___/ __ \/ / / / __ \/ __/%s
%s/ /_/ / / /  / / / / /_/ / / / / /_ %s
%s\__,_/_/_/  /_/ /_/\__,_/_/ /_/\__/ %s %sv%s%s
%s    Web Content Discovery            %s
`,
		c, rs,
		c, rs,
		c, rs,
		c, rs,
		c, rs, d, version.Version, rs,
		wh, rs,
	)

	source := list.Source
	if list.Fallback {
		source = wordlist.DefaultSource + " (fallback)"
	}
	exts := "none"
	if len(opts.Extensions) > 0 {
		exts = strings.Join(opts.Extensions, ", ")
	}
	codes := make([]string, len(opts.StatusCodes))
	for i, code := range opts.StatusCodes {
		codes[i] = strconv.Itoa(code)
	}
	smart := "OFF"
	if opts.SmartFilter {
		smart = "ON"
	}

	fmt.Fprintf(w, "%s  ──────────────────────────────────────%s\n", d, rs)
	fmt.Fprintf(w, "  %sTarget:%s       %s%s%s\n", d, rs, wh, opts.URL, rs)
	fmt.Fprintf(w, "  %sWordlist:%s     %s%s (%d words, %d candidates)%s\n", d, rs, wh, source, len(list.Words), candidates, rs)
	fmt.Fprintf(w, "  %sExtensions:%s   %s%s%s\n", d, rs, wh, exts, rs)
	fmt.Fprintf(w, "  %sThreads:%s      %s%d%s\n", d, rs, y, opts.Threads, rs)
	fmt.Fprintf(w, "  %sTimeout:%s      %s%s%s\n", d, rs, y, opts.Timeout, rs)
	fmt.Fprintf(w, "  %sStatus codes:%s %s%s%s\n", d, rs, wh, strings.Join(codes, ","), rs)
	fmt.Fprintf(w, "  %sSmart filter:%s %s\n", d, rs, smart)
	fmt.Fprintf(w, "%s  ──────────────────────────────────────%s\n\n", d, rs)
}
