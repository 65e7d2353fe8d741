package wordlist

import "iter"

// Generator expands words into candidate paths without materializing them.
//
// Order: the root (empty path) first, then every bare word, then for each
// word in turn its extension variants in extension order. For W words and E
// extensions there are 1 + W + W*E candidates.
type Generator struct {
	words []string
	exts  []string
}

// NewGenerator returns a generator over words and exts. Neither slice is
// copied and both must not be modified afterwards.
func NewGenerator(words, exts []string) *Generator {
	return &Generator{words: words, exts: exts}
}

// Len returns the number of candidates.
func (g *Generator) Len() int {
	w := len(g.words)
	return 1 + w + w*len(g.exts)
}

// At returns candidate i. It panics if i is out of range.
func (g *Generator) At(i int) string {
	if i < 0 || i >= g.Len() {
		panic("wordlist: candidate index out of range")
	}
	if i == 0 {
		return ""
	}
	i--
	if i < len(g.words) {
		return g.words[i]
	}
	i -= len(g.words)
	e := len(g.exts)
	return g.words[i/e] + g.exts[i%e]
}

// All yields every candidate with its index, in generation order.
func (g *Generator) All() iter.Seq2[int, string] {
	return func(yield func(int, string) bool) {
		n := g.Len()
		for i := 0; i < n; i++ {
			if !yield(i, g.At(i)) {
				return
			}
		}
	}
}
