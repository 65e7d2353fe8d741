package config

import (
	"errors"
	"fmt"
	"net/url"
	"strings"
	"time"
)

// DefaultStatusCodes are the response codes reported as findings when
// --status-codes is not given.
var DefaultStatusCodes = []int{200, 204, 301, 302, 307, 401, 403}

// Options holds all configuration for a dirhunt run.
type Options struct {
	// Target
	URL          string
	WordlistPath string // empty = use embedded
	Extensions   []string

	// Performance
	Threads          int
	Timeout          time.Duration
	Delay            time.Duration // per worker, before each request
	Rate             float64       // global requests per second, 0 = unlimited
	AdaptiveThrottle bool

	// Classification
	StatusCodes        []int
	ExcludeSize        []int
	DuplicateThreshold int // identical responses allowed before suppression, 0 = off

	// Smart filter
	SmartFilter          bool
	SmartFilterThreshold int // bytes tolerance

	// Recursion. Declared for CLI compatibility, not consumed by the engine.
	Recursive bool
	MaxDepth  int

	// HTTP
	Headers         map[string]string
	UserAgent       string
	Proxy           string
	FollowRedirects bool
	MaxRedirects    int

	// Output
	OutputFormat  string // "text", "json", "csv"
	SortBy        string // "", "status", "path", "size"
	ProgressEvery int
	Quiet         bool
	NoColor       bool
	OnResultCmd   string
}

// Error reports an unusable configuration. It is fatal and always returned
// before any request is sent.
type Error struct {
	Field string
	Err   error
}

func (e *Error) Error() string {
	return fmt.Sprintf("invalid %s: %v", e.Field, e.Err)
}

func (e *Error) Unwrap() error { return e.Err }

func invalid(field, format string, args ...any) *Error {
	return &Error{Field: field, Err: fmt.Errorf(format, args...)}
}

// Validate checks the options and normalizes them in place: the trailing
// slash is stripped from URL, extensions get a leading dot and defaults are
// applied to zero values. It must be called once before a run.
func (o *Options) Validate() error {
	if o.URL == "" {
		return invalid("url", "target URL is required")
	}
	u, err := url.Parse(o.URL)
	if err != nil {
		return &Error{Field: "url", Err: err}
	}
	if u.Scheme != "http" && u.Scheme != "https" {
		return invalid("url", "%q must begin with http:// or https://", o.URL)
	}
	if u.Host == "" {
		return invalid("url", "%q has no host", o.URL)
	}
	// Candidates are appended to the URL, so a query or fragment would swallow them.
	if u.Opaque != "" || u.RawQuery != "" || u.ForceQuery || u.Fragment != "" {
		return invalid("url", "%q must not have a query or fragment", o.URL)
	}
	o.URL = strings.TrimRight(o.URL, "/")

	if o.Threads < 1 {
		return invalid("threads", "must be at least 1, got %d", o.Threads)
	}
	if o.Timeout <= 0 {
		return invalid("timeout", "must be positive, got %s", o.Timeout)
	}
	if o.Delay < 0 {
		return invalid("delay", "must not be negative, got %s", o.Delay)
	}
	if o.Rate < 0 {
		return invalid("rate", "must not be negative, got %g", o.Rate)
	}
	if o.MaxRedirects < 0 {
		return invalid("max-redirects", "must not be negative, got %d", o.MaxRedirects)
	}
	if o.DuplicateThreshold < 0 {
		return invalid("dedupe", "must not be negative, got %d", o.DuplicateThreshold)
	}

	for _, code := range o.StatusCodes {
		if code < 100 || code > 599 {
			return invalid("status-codes", "%d is not an HTTP status code", code)
		}
	}
	if len(o.StatusCodes) == 0 {
		o.StatusCodes = append([]int(nil), DefaultStatusCodes...)
	}

	switch o.OutputFormat {
	case "":
		o.OutputFormat = "text"
	case "text", "json", "csv":
	default:
		return invalid("format", "must be one of: text, json, csv")
	}
	switch o.SortBy {
	case "", "status", "path", "size":
	default:
		return invalid("sort", "must be one of: status, path, size")
	}

	if o.ProgressEvery <= 0 {
		o.ProgressEvery = 10
	}
	if o.UserAgent == "" {
		o.UserAgent = DefaultUserAgent
	}

	o.Extensions = NormalizeExtensions(o.Extensions)
	return nil
}

// DefaultUserAgent is sent when --user-agent is not set.
const DefaultUserAgent = "dirhunt/1.0"

// NormalizeExtensions drops empty entries and prefixes a dot to entries that
// start with a letter or digit, so "php" and ".php" both yield "word.php".
// Entries starting with any other character ("~", "-old") are kept verbatim.
func NormalizeExtensions(exts []string) []string {
	out := make([]string, 0, len(exts))
	for _, e := range exts {
		e = strings.TrimSpace(e)
		if e == "" {
			continue
		}
		if c := e[0]; c >= 'a' && c <= 'z' || c >= 'A' && c <= 'Z' || c >= '0' && c <= '9' {
			e = "." + e
		}
		out = append(out, e)
	}
	return out
}

// IsConfigError reports whether err is, or wraps, a configuration error.
func IsConfigError(err error) bool {
	var ce *Error
	return errors.As(err, &ce)
}
