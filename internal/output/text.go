package output

import (
	"fmt"
	"io"
	"maps"
	"slices"
	"strings"
	"time"

	"github.com/maxvaer/dirhunt/internal/classify"
)

// ANSI color codes.
const (
	colorReset  = "\033[0m"
	colorDim    = "\033[2m"
	colorGreen  = "\033[32m"
	colorCyan   = "\033[36m"
	colorYellow = "\033[33m"
	colorRed    = "\033[31m"
)

// TextWriter streams one line per finding and ends with a summary block.
type TextWriter struct {
	w       io.Writer
	noColor bool
}

// NewTextWriter creates a text output writer on w. noColor disables ANSI
// escape codes.
func NewTextWriter(w io.Writer, noColor bool) *TextWriter {
	return &TextWriter{w: w, noColor: noColor}
}

func (t *TextWriter) WriteHeader() error { return nil }

func (t *TextWriter) WriteFinding(f *classify.Finding) error {
	_, err := fmt.Fprintln(t.w, t.findingLine(f))
	return err
}

// findingLine formats "[<status>] <url> [<size>] <disposition>".
func (t *TextWriter) findingLine(f *classify.Finding) string {
	color, reset := t.colorForStatus(f.StatusCode), colorReset
	if t.noColor {
		color, reset = "", ""
	}
	return fmt.Sprintf("%s[%d]%s %s [%d] %s", color, f.StatusCode, reset, f.URL, f.Size, f.Disposition)
}

func (t *TextWriter) WriteSummary(s *Summary) error {
	dim, reset := colorDim, colorReset
	if t.noColor {
		dim, reset = "", ""
	}

	var b strings.Builder
	fmt.Fprintf(&b, "\n%s──────────────── Summary ────────────────%s\n", dim, reset)
	fmt.Fprintf(&b, "  Target:     %s\n", s.Target)
	fmt.Fprintf(&b, "  Requests:   %d/%d\n", s.Issued, s.Total)
	fmt.Fprintf(&b, "  Found:      %d\n", s.Found)
	fmt.Fprintf(&b, "  Errors:     %d\n", s.Errored)
	if s.Filtered > 0 {
		fmt.Fprintf(&b, "  Filtered:   %d%s\n", s.Filtered, suppressedBreakdown(s.Suppressed))
	}
	fmt.Fprintf(&b, "  Duration:   %s (%.1f req/s)\n", s.Duration.Round(time.Millisecond), s.RequestsPerSec)
	if bl := s.Baseline; bl != nil {
		if bl.Failed() {
			fmt.Fprintf(&b, "  Baseline:   %s (%s)\n", bl.URL, bl.Err.Kind)
		} else {
			fmt.Fprintf(&b, "  Baseline:   [%d] %s [%d]\n", bl.StatusCode, bl.URL, bl.Size)
		}
	}

	if len(s.Findings) > 0 {
		fmt.Fprintf(&b, "\n  Findings:\n")
		for _, f := range s.Findings {
			fmt.Fprintf(&b, "    %s\n", t.findingLine(f))
		}
	}

	if len(s.Errors) > 0 {
		shown, rest := s.ErrorsShown()
		fmt.Fprintf(&b, "\n  Errors (first %d of %d):\n", len(shown), len(s.Errors))
		for _, e := range shown {
			fmt.Fprintf(&b, "    %s  %s", e.URL, e.Kind)
			if e.Err != "" {
				fmt.Fprintf(&b, ": %s", e.Err)
			}
			b.WriteByte('\n')
		}
		if rest > 0 {
			fmt.Fprintf(&b, "    ... and %d more\n", rest)
		}
	}

	if s.Interrupted {
		fmt.Fprintf(&b, "\n  Scan interrupted, report covers completed requests only.\n")
	}

	_, err := io.WriteString(t.w, b.String())
	return err
}

func (t *TextWriter) Close() error { return nil }

// suppressedBreakdown formats " (size 2, smart-404 5)" in name order.
func suppressedBreakdown(hits map[string]int) string {
	if len(hits) == 0 {
		return ""
	}
	parts := make([]string, 0, len(hits))
	for _, name := range slices.Sorted(maps.Keys(hits)) {
		parts = append(parts, fmt.Sprintf("%s %d", name, hits[name]))
	}
	return " (" + strings.Join(parts, ", ") + ")"
}

func (t *TextWriter) colorForStatus(code int) string {
	switch {
	case code >= 200 && code < 300:
		return colorGreen
	case code >= 300 && code < 400:
		return colorCyan
	case code >= 400 && code < 500:
		return colorYellow
	case code >= 500:
		return colorRed
	default:
		return ""
	}
}
