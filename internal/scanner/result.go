package scanner

import (
	"context"
	"errors"
	"fmt"
	"net"
	"net/url"
	"os"
	"syscall"
	"time"
)

// ErrorKind classifies a probe that did not produce an HTTP response.
type ErrorKind string

const (
	ErrTimeout     ErrorKind = "timeout"
	ErrConnRefused ErrorKind = "connection-refused"
	ErrDNSFailure  ErrorKind = "dns-failure"
	ErrOther       ErrorKind = "other"
)

// ProbeError is the transport failure of one probe. It is never fatal to a
// run.
type ProbeError struct {
	Kind ErrorKind
	Err  error
}

func (e *ProbeError) Error() string {
	return fmt.Sprintf("%s: %v", e.Kind, e.Err)
}

func (e *ProbeError) Unwrap() error { return e.Err }

// ProbeResult is the outcome of a single HTTP attempt. Exactly one of
// StatusCode and Err is set.
type ProbeResult struct {
	URL        string
	StatusCode int
	Size       int64
	Headers    map[string]string // selected response headers, canonical names
	BodyHash   [16]byte          // MD5
	WordCount  int
	LineCount  int
	Duration   time.Duration
	Err        *ProbeError
}

// Failed reports whether the probe ended without a response.
func (r *ProbeResult) Failed() bool { return r.Err != nil }

// Location returns the Location header, if any.
func (r *ProbeResult) Location() string { return r.Headers["Location"] }

// classifyError maps a client error to an ErrorKind.
func classifyError(err error) ErrorKind {
	var dnsErr *net.DNSError
	if errors.As(err, &dnsErr) {
		if dnsErr.IsTimeout {
			return ErrTimeout
		}
		return ErrDNSFailure
	}
	if errors.Is(err, context.DeadlineExceeded) || errors.Is(err, os.ErrDeadlineExceeded) {
		return ErrTimeout
	}
	var netErr net.Error
	if errors.As(err, &netErr) && netErr.Timeout() {
		return ErrTimeout
	}
	if errors.Is(err, syscall.ECONNREFUSED) {
		return ErrConnRefused
	}
	return ErrOther
}

func newProbeError(err error) *ProbeError {
	// Strip the *url.Error wrapper; it repeats the method and URL already
	// carried by the result.
	var uerr *url.Error
	inner := err
	if errors.As(err, &uerr) {
		inner = uerr.Err
	}
	return &ProbeError{Kind: classifyError(err), Err: inner}
}
