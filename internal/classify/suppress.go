package classify

import (
	"maps"

	"github.com/maxvaer/dirhunt/internal/scanner"
)

// Suppressor hides findings that match a known false-positive shape.
type Suppressor interface {
	Name() string
	Suppress(r *scanner.ProbeResult) bool
}

// Chain runs suppressors in order and stops at the first match. It is not
// safe for concurrent use.
type Chain struct {
	list []Suppressor
	hits map[string]int
}

// NewChain returns a chain of the given suppressors.
func NewChain(s ...Suppressor) *Chain {
	return &Chain{list: s, hits: make(map[string]int)}
}

// Add appends s to the chain.
func (c *Chain) Add(s Suppressor) {
	c.list = append(c.list, s)
}

// Apply reports whether r is suppressed and by which suppressor.
func (c *Chain) Apply(r *scanner.ProbeResult) (string, bool) {
	for _, s := range c.list {
		if s.Suppress(r) {
			c.hits[s.Name()]++
			return s.Name(), true
		}
	}
	return "", false
}

// Hits returns how many results each suppressor has hidden so far.
func (c *Chain) Hits() map[string]int {
	return maps.Clone(c.hits)
}

// SizeFilter hides results whose body size is in the set.
type SizeFilter map[int64]struct{}

// NewSizeFilter returns a SizeFilter for sizes.
func NewSizeFilter(sizes []int) SizeFilter {
	f := make(SizeFilter, len(sizes))
	for _, s := range sizes {
		f[int64(s)] = struct{}{}
	}
	return f
}

func (f SizeFilter) Name() string { return "size" }

func (f SizeFilter) Suppress(r *scanner.ProbeResult) bool {
	_, ok := f[r.Size]
	return ok
}
