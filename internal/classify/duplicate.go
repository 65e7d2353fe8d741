package classify

import (
	"sync"

	"github.com/maxvaer/dirhunt/internal/scanner"
)

type exactKey struct {
	statusCode int
	bodyHash   [16]byte
}

// shapeKey groups responses by status and structure, so catch-all pages
// that echo the requested path (unique hash, stable layout) still collide.
type shapeKey struct {
	statusCode int
	lineCount  int
	wordBucket int // wordCount / 5
}

// DuplicateFilter suppresses responses that keep repeating during a run,
// such as a catch-all route under one prefix that calibration against the
// root did not see.
//
// The first threshold responses with the same (status, body hash) pass, as
// do the first max(3*threshold, 5) with the same structural shape.
type DuplicateFilter struct {
	mu             sync.Mutex
	exact          map[exactKey]int
	shape          map[shapeKey]int
	threshold      int
	shapeThreshold int
}

// NewDuplicateFilter returns a DuplicateFilter allowing threshold repeats.
func NewDuplicateFilter(threshold int) *DuplicateFilter {
	return &DuplicateFilter{
		exact:          make(map[exactKey]int),
		shape:          make(map[shapeKey]int),
		threshold:      threshold,
		shapeThreshold: max(threshold*3, 5),
	}
}

func (d *DuplicateFilter) Name() string { return "duplicate" }

func (d *DuplicateFilter) Suppress(result *scanner.ProbeResult) bool {
	ek := exactKey{statusCode: result.StatusCode, bodyHash: result.BodyHash}
	sk := shapeKey{
		statusCode: result.StatusCode,
		lineCount:  result.LineCount,
		wordBucket: result.WordCount / 5,
	}

	d.mu.Lock()
	d.exact[ek]++
	d.shape[sk]++
	exactCount, shapeCount := d.exact[ek], d.shape[sk]
	d.mu.Unlock()

	return exactCount > d.threshold || shapeCount > d.shapeThreshold
}
