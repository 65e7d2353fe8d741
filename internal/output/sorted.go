package output

import (
	"cmp"
	"slices"

	"github.com/maxvaer/dirhunt/internal/classify"
)

// SortFindings sorts findings in place by "status", "path" or "size". Ties
// keep completion order. Any other key leaves the slice untouched.
func SortFindings(findings []*classify.Finding, by string) {
	var less func(a, b *classify.Finding) int
	switch by {
	case "status":
		less = func(a, b *classify.Finding) int { return cmp.Compare(a.StatusCode, b.StatusCode) }
	case "size":
		less = func(a, b *classify.Finding) int { return cmp.Compare(a.Size, b.Size) }
	case "path":
		less = func(a, b *classify.Finding) int { return cmp.Compare(a.Path, b.Path) }
	default:
		return
	}
	slices.SortStableFunc(findings, less)
}
