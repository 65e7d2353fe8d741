package scanner

import "iter"

// Candidate is a single path to probe.
type Candidate struct {
	Index int    // position in generation order
	Path  string // relative to the base URL, "" is the root
}

// Source supplies candidates lazily. Len must equal the number of pairs All
// yields.
type Source interface {
	Len() int
	All() iter.Seq2[int, string]
}

// JoinURL returns baseURL + "/" + path. baseURL must not end with a slash.
func JoinURL(baseURL, path string) string {
	return baseURL + "/" + path
}
