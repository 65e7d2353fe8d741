// Package classify decides which probe results are findings and how they
// are labelled.
package classify

import (
	"strconv"

	"github.com/maxvaer/dirhunt/internal/scanner"
)

// Finding is a candidate whose probe result was classified as interesting.
// It is not modified after creation.
type Finding struct {
	Path        string
	URL         string
	StatusCode  int
	Size        int64
	Disposition string
	RedirectURL string // Location header of a 3xx, if present
}

// Classifier matches results against the interesting status set.
type Classifier struct {
	interesting map[int]struct{}
}

// New returns a classifier for the given status codes.
func New(codes []int) *Classifier {
	c := &Classifier{interesting: make(map[int]struct{}, len(codes))}
	for _, code := range codes {
		c.interesting[code] = struct{}{}
	}
	return c
}

// Interesting reports whether status is in the interesting set.
func (c *Classifier) Interesting(status int) bool {
	_, ok := c.interesting[status]
	return ok
}

// Classify returns the finding for r, or nil when r is a transport error or
// its status is not interesting.
func (c *Classifier) Classify(cand scanner.Candidate, r *scanner.ProbeResult) *Finding {
	if r.Failed() || !c.Interesting(r.StatusCode) {
		return nil
	}

	f := &Finding{
		Path:        cand.Path,
		URL:         r.URL,
		StatusCode:  r.StatusCode,
		Size:        r.Size,
		Disposition: Disposition(r.StatusCode, r.Location()),
	}
	if r.StatusCode >= 300 && r.StatusCode < 400 {
		f.RedirectURL = r.Location()
	}
	return f
}

// Disposition returns the label for a status code. location is only used
// for 301 and 302.
func Disposition(status int, location string) string {
	switch status {
	case 200:
		return "OK"
	case 301, 302:
		if location != "" {
			return "REDIRECT -> " + location
		}
		return "REDIRECT"
	case 401:
		return "UNAUTHORIZED"
	case 403:
		return "FORBIDDEN"
	default:
		return strconv.Itoa(status)
	}
}
