package scanner

import (
	"context"
	"crypto/md5"
	"crypto/tls"
	"fmt"
	"io"
	"net/http"
	"net/url"
	"strings"
	"time"

	"github.com/maxvaer/dirhunt/internal/config"
	"github.com/maxvaer/dirhunt/internal/netutil"
)

// maxBodySize caps how much of a response body is read and measured.
const maxBodySize = 10 << 20

// keptHeaders are copied from each response into ProbeResult.Headers.
var keptHeaders = []string{"Location", "Content-Type", "Content-Length", "Server"}

// Prober performs one HTTP probe against a full URL. Implementations never
// return transport failures any other way than ProbeResult.Err.
type Prober interface {
	Probe(ctx context.Context, url string) ProbeResult
}

// HTTPProber is the network Prober.
type HTTPProber struct {
	client    *http.Client
	headers   map[string]string
	userAgent string
}

// NewHTTPProber creates an HTTPProber from validated options.
func NewHTTPProber(opts *config.Options) (*HTTPProber, error) {
	resolver := netutil.NewResolver(5*time.Minute, opts.Timeout)

	// Every probe uses a fresh connection.
	transport := &http.Transport{
		TLSClientConfig:   &tls.Config{InsecureSkipVerify: true},
		DialContext:       resolver.DialContext,
		DisableKeepAlives: true,
	}

	if opts.Proxy != "" {
		proxyURL, err := url.Parse(opts.Proxy)
		if err != nil {
			return nil, &config.Error{Field: "proxy", Err: err}
		}
		transport.Proxy = http.ProxyURL(proxyURL)
	}

	client := &http.Client{
		Transport: transport,
		Timeout:   opts.Timeout,
	}

	maxRedirects := opts.MaxRedirects
	if !opts.FollowRedirects {
		client.CheckRedirect = func(req *http.Request, via []*http.Request) error {
			return http.ErrUseLastResponse
		}
	} else {
		// Past the bound the last redirect response is reported as is.
		client.CheckRedirect = func(req *http.Request, via []*http.Request) error {
			if len(via) > maxRedirects {
				return http.ErrUseLastResponse
			}
			return nil
		}
	}

	ua := opts.UserAgent
	if ua == "" {
		ua = config.DefaultUserAgent
	}

	return &HTTPProber{
		client:    client,
		headers:   opts.Headers,
		userAgent: ua,
	}, nil
}

// Probe sends a GET to targetURL. The request is bound to ctx; callers that
// want in-flight probes to survive cancellation pass a detached context.
func (p *HTTPProber) Probe(ctx context.Context, targetURL string) ProbeResult {
	req, err := http.NewRequestWithContext(ctx, http.MethodGet, targetURL, nil)
	if err != nil {
		return ProbeResult{URL: targetURL, Err: &ProbeError{Kind: ErrOther, Err: err}}
	}

	for k, v := range p.headers {
		req.Header.Set(k, v)
	}
	req.Header.Set("User-Agent", p.userAgent)
	req.Close = true

	start := time.Now()
	resp, err := p.client.Do(req)
	if err != nil {
		return ProbeResult{URL: targetURL, Duration: time.Since(start), Err: newProbeError(err)}
	}
	defer resp.Body.Close()

	body, err := io.ReadAll(io.LimitReader(resp.Body, maxBodySize))
	if err != nil {
		return ProbeResult{
			URL:      targetURL,
			Duration: time.Since(start),
			Err:      newProbeError(fmt.Errorf("reading response body: %w", err)),
		}
	}

	bodyStr := string(body)
	lineCount := strings.Count(bodyStr, "\n") + 1
	if len(body) == 0 {
		lineCount = 0
	}

	headers := make(map[string]string, len(keptHeaders))
	for _, h := range keptHeaders {
		if v := resp.Header.Get(h); v != "" {
			headers[h] = v
		}
	}

	return ProbeResult{
		URL:        targetURL,
		StatusCode: resp.StatusCode,
		Size:       int64(len(body)),
		Headers:    headers,
		BodyHash:   md5.Sum(body),
		WordCount:  len(strings.Fields(bodyStr)),
		LineCount:  lineCount,
		Duration:   time.Since(start),
	}
}
