package output

import (
	"time"

	"github.com/maxvaer/dirhunt/internal/classify"
	"github.com/maxvaer/dirhunt/internal/scanner"
)

// ErrorPreview is the number of errors itemized in a report.
const ErrorPreview = 5

// ErrorRecord is a candidate whose probe failed.
type ErrorRecord struct {
	Path string
	URL  string
	Kind scanner.ErrorKind
	Err  string
}

// Summary is the final report of a run.
type Summary struct {
	Target         string
	Total          int // candidates generated
	Issued         int
	Found          int
	Errored        int
	Filtered       int
	Suppressed     map[string]int // filtered count per suppressor
	Duration       time.Duration
	RequestsPerSec float64
	Baseline       *scanner.ProbeResult // root probe, nil if it never ran
	Findings       []*classify.Finding
	Errors         []ErrorRecord
	Interrupted    bool
}

// ErrorsShown returns the itemized errors and the number left out.
func (s *Summary) ErrorsShown() ([]ErrorRecord, int) {
	if len(s.Errors) <= ErrorPreview {
		return s.Errors, 0
	}
	return s.Errors[:ErrorPreview], len(s.Errors) - ErrorPreview
}

// Writer is implemented by each output format.
type Writer interface {
	WriteHeader() error
	WriteFinding(f *classify.Finding) error
	WriteSummary(s *Summary) error
	Close() error
}
