package output

import (
	"slices"
	"sync"

	"github.com/maxvaer/dirhunt/internal/classify"
	"github.com/maxvaer/dirhunt/internal/scanner"
)

// Store accumulates the findings and errors of one run in the order they are
// reported.
type Store struct {
	mu       sync.Mutex
	findings []*classify.Finding
	errors   []ErrorRecord
}

// NewStore returns an empty store.
func NewStore() *Store {
	return &Store{}
}

// AddFinding records f.
func (s *Store) AddFinding(f *classify.Finding) {
	s.mu.Lock()
	s.findings = append(s.findings, f)
	s.mu.Unlock()
}

// AddError records the failed probe of c. r must have Err set.
func (s *Store) AddError(c scanner.Candidate, r *scanner.ProbeResult) {
	rec := ErrorRecord{Path: c.Path, URL: r.URL, Kind: r.Err.Kind}
	if r.Err.Err != nil {
		rec.Err = r.Err.Err.Error()
	}
	s.mu.Lock()
	s.errors = append(s.errors, rec)
	s.mu.Unlock()
}

// Findings returns a copy of the recorded findings.
func (s *Store) Findings() []*classify.Finding {
	s.mu.Lock()
	defer s.mu.Unlock()
	return slices.Clone(s.findings)
}

// Errors returns a copy of the recorded errors.
func (s *Store) Errors() []ErrorRecord {
	s.mu.Lock()
	defer s.mu.Unlock()
	return slices.Clone(s.errors)
}
