package netutil

import (
	"context"
	"net"
	"sync"
	"time"
)

type cacheEntry struct {
	addrs   []string
	expires time.Time
}

// Resolver caches host lookups for the lifetime of a run so every probe
// against the same target does not pay for a DNS round trip. Failed lookups
// are not cached.
type Resolver struct {
	mu      sync.RWMutex
	entries map[string]cacheEntry
	ttl     time.Duration
	lookup  func(ctx context.Context, host string) ([]string, error)
	dialer  *net.Dialer
}

// NewResolver returns a caching resolver. Dials use timeout as the connect
// timeout.
func NewResolver(ttl, timeout time.Duration) *Resolver {
	return &Resolver{
		entries: make(map[string]cacheEntry),
		ttl:     ttl,
		lookup:  net.DefaultResolver.LookupHost,
		dialer:  &net.Dialer{Timeout: timeout},
	}
}

// LookupHost returns the cached addresses of host, resolving on a miss.
// IP literals are returned as is.
func (r *Resolver) LookupHost(ctx context.Context, host string) ([]string, error) {
	if net.ParseIP(host) != nil {
		return []string{host}, nil
	}

	r.mu.RLock()
	e, ok := r.entries[host]
	r.mu.RUnlock()
	if ok && time.Now().Before(e.expires) {
		return e.addrs, nil
	}

	addrs, err := r.lookup(ctx, host)
	if err != nil {
		return nil, err
	}

	r.mu.Lock()
	r.entries[host] = cacheEntry{addrs: addrs, expires: time.Now().Add(r.ttl)}
	r.mu.Unlock()
	return addrs, nil
}

// DialContext resolves addr through the cache and dials the first address
// that accepts the connection. It fits http.Transport.DialContext.
func (r *Resolver) DialContext(ctx context.Context, network, addr string) (net.Conn, error) {
	host, port, err := net.SplitHostPort(addr)
	if err != nil {
		return nil, err
	}
	addrs, err := r.LookupHost(ctx, host)
	if err != nil {
		return nil, err
	}

	var lastErr error
	for _, ip := range addrs {
		conn, err := r.dialer.DialContext(ctx, network, net.JoinHostPort(ip, port))
		if err == nil {
			return conn, nil
		}
		lastErr = err
		if ctx.Err() != nil {
			break
		}
	}
	return nil, lastErr
}
