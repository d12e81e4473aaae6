// Package probe executes candidate HTTP probes for the leftover scanner.
package probe

import (
	"context"
	"crypto/md5"
	"crypto/tls"
	"encoding/hex"
	"fmt"
	"io"
	"net"
	"net/http"
	"net/url"
	"sync"
	"sync/atomic"
	"time"

	"github.com/PentesterFlow/leftover/internal/errors"
)

// Body handling limits. Bodies are read up to MaxBodyBytes and a
// SampleBytes prefix feeds classification. Responses larger than
// hashSplitThreshold are hashed from their head and tail so two large
// files differing only in the middle still collide rarely.
const (
	MaxBodyBytes       = 10 * 1024 * 1024
	SampleBytes        = 4096
	hashSplitThreshold = 100 * 1024
	rangeWindow        = 8192
)

// defaultUserAgents rotates across probes unless a fixed agent is set.
var defaultUserAgents = []string{
	"Mozilla/5.0 (Windows NT 10.0; Win64; x64) AppleWebKit/537.36 (KHTML, like Gecko) Chrome/120.0.0.0 Safari/537.36",
	"Mozilla/5.0 (Macintosh; Intel Mac OS X 10_15_7) AppleWebKit/537.36 (KHTML, like Gecko) Chrome/120.0.0.0 Safari/537.36",
	"Mozilla/5.0 (X11; Linux x86_64) AppleWebKit/537.36 (KHTML, like Gecko) Chrome/119.0.0.0 Safari/537.36",
	"Mozilla/5.0 (Windows NT 10.0; Win64; x64; rv:121.0) Gecko/20100101 Firefox/121.0",
	"Mozilla/5.0 (Macintosh; Intel Mac OS X 10.15; rv:121.0) Gecko/20100101 Firefox/121.0",
	"Mozilla/5.0 (Macintosh; Intel Mac OS X 10_15_7) AppleWebKit/605.1.15 (KHTML, like Gecko) Version/17.1 Safari/605.1.15",
}

// Client is the HTTP executor shared by all scan workers.
type Client struct {
	client  *http.Client
	config  ClientConfig
	headers map[string]string
	uaIndex atomic.Int64
	mu      sync.RWMutex
}

// ClientConfig holds configuration for the probe client.
type ClientConfig struct {
	Timeout             time.Duration
	MaxIdleConns        int
	MaxIdleConnsPerHost int
	MaxConnsPerHost     int
	UserAgent           string // empty enables rotation
	Headers             map[string]string
	SkipTLSVerify       bool
	Proxy               string
}

// DefaultClientConfig returns defaults tuned for many small requests
// against a single host.
func DefaultClientConfig() ClientConfig {
	return ClientConfig{
		Timeout:             10 * time.Second,
		MaxIdleConns:        500,
		MaxIdleConnsPerHost: 100,
		MaxConnsPerHost:     100,
		SkipTLSVerify:       true,
	}
}

// NewClient creates a probe client.
func NewClient(config ClientConfig) (*Client, error) {
	transport := &http.Transport{
		Proxy: http.ProxyFromEnvironment,
		DialContext: (&net.Dialer{
			Timeout:   5 * time.Second,
			KeepAlive: 30 * time.Second,
		}).DialContext,
		MaxIdleConns:          config.MaxIdleConns,
		MaxIdleConnsPerHost:   config.MaxIdleConnsPerHost,
		MaxConnsPerHost:       config.MaxConnsPerHost,
		IdleConnTimeout:       90 * time.Second,
		TLSHandshakeTimeout:   5 * time.Second,
		ExpectContinueTimeout: 1 * time.Second,
		ForceAttemptHTTP2:     true,
		TLSClientConfig: &tls.Config{
			InsecureSkipVerify: config.SkipTLSVerify,
		},
	}

	if config.Proxy != "" {
		proxyURL, err := parseProxy(config.Proxy)
		if err != nil {
			return nil, errors.NewConfigError(fmt.Sprintf("invalid proxy %q", config.Proxy), err)
		}
		transport.Proxy = http.ProxyURL(proxyURL)
	}

	return &Client{
		client: &http.Client{
			Transport: transport,
			Timeout:   config.Timeout,
			// Redirects are findings in their own right; report
			// the raw status instead of chasing them.
			CheckRedirect: func(req *http.Request, via []*http.Request) error {
				return http.ErrUseLastResponse
			},
		},
		config:  config,
		headers: config.Headers,
	}, nil
}

// SetHeaders replaces the custom headers sent with every probe.
func (c *Client) SetHeaders(headers map[string]string) {
	c.mu.Lock()
	c.headers = headers
	c.mu.Unlock()
}

// Response is the outcome of a single probe.
type Response struct {
	URL           string
	StatusCode    int
	ContentType   string
	ContentLength int64  // from the header, -1 when absent
	BodySize      int64  // bytes actually read
	Sample        []byte // leading SampleBytes of the body
	Hash          string
	Location      string // redirect target, when any
	Duration      time.Duration
	Truncated     bool // body hit MaxBodyBytes
	Ranged        bool // fetched with a Range header
}

// Options adjust a single probe.
type Options struct {
	// UseRange fetches only the leading window of the body. Used for
	// high-value candidates where the header alone confirms the find
	// and pulling a multi-gigabyte archive would be wasteful.
	UseRange bool
	// HeadOnly skips the body entirely.
	HeadOnly bool
}

// Do sends one GET probe and reads the body within limits.
func (c *Client) Do(ctx context.Context, targetURL string, opts Options) (*Response, error) {
	start := time.Now()

	method := http.MethodGet
	if opts.HeadOnly {
		method = http.MethodHead
	}

	req, err := http.NewRequestWithContext(ctx, method, targetURL, nil)
	if err != nil {
		return nil, errors.New(errors.Config, targetURL, "request", "failed to build request", err)
	}

	c.setHeaders(req)
	if opts.UseRange && !opts.HeadOnly {
		req.Header.Set("Range", fmt.Sprintf("bytes=0-%d", rangeWindow-1))
	}

	resp, err := c.client.Do(req)
	if err != nil {
		return nil, errors.Categorize(err, targetURL)
	}
	defer resp.Body.Close()

	result := &Response{
		URL:           targetURL,
		StatusCode:    resp.StatusCode,
		ContentType:   resp.Header.Get("Content-Type"),
		ContentLength: resp.ContentLength,
		Location:      resp.Header.Get("Location"),
		Ranged:        resp.StatusCode == http.StatusPartialContent,
	}

	if !opts.HeadOnly {
		body, truncated, err := readLimited(resp.Body)
		if err != nil {
			return nil, errors.NewTransportError(targetURL, "body_read", err)
		}
		result.BodySize = int64(len(body))
		result.Truncated = truncated
		result.Sample = sampleOf(body)
		result.Hash = ContentHash(body)
	}

	result.Duration = time.Since(start)
	return result, nil
}

// setHeaders applies the user agent and custom headers.
func (c *Client) setHeaders(req *http.Request) {
	req.Header.Set("User-Agent", c.nextUserAgent())
	req.Header.Set("Accept", "*/*")
	req.Header.Set("Accept-Language", "en-US,en;q=0.5")
	req.Header.Set("Connection", "keep-alive")

	c.mu.RLock()
	for k, v := range c.headers {
		req.Header.Set(k, v)
	}
	c.mu.RUnlock()
}

// nextUserAgent returns the fixed agent or the next one in rotation.
func (c *Client) nextUserAgent() string {
	if c.config.UserAgent != "" {
		return c.config.UserAgent
	}
	i := c.uaIndex.Add(1)
	return defaultUserAgents[int(i)%len(defaultUserAgents)]
}

// readLimited reads up to MaxBodyBytes and reports truncation.
func readLimited(r io.Reader) ([]byte, bool, error) {
	body, err := io.ReadAll(io.LimitReader(r, MaxBodyBytes+1))
	if err != nil {
		return nil, false, err
	}
	if int64(len(body)) > MaxBodyBytes {
		return body[:MaxBodyBytes], true, nil
	}
	return body, false, nil
}

// sampleOf copies the leading SampleBytes of a body.
func sampleOf(body []byte) []byte {
	n := len(body)
	if n > SampleBytes {
		n = SampleBytes
	}
	sample := make([]byte, n)
	copy(sample, body[:n])
	return sample
}

// ContentHash fingerprints a body. Small bodies hash whole; bodies
// past hashSplitThreshold hash their first and last SampleBytes so the
// digest stays cheap on large downloads.
func ContentHash(body []byte) string {
	h := md5.New()
	if len(body) > hashSplitThreshold {
		h.Write(body[:SampleBytes])
		h.Write(body[len(body)-SampleBytes:])
	} else {
		h.Write(body)
	}
	return hex.EncodeToString(h.Sum(nil))
}

// parseProxy validates a proxy URL.
func parseProxy(raw string) (*url.URL, error) {
	u, err := url.Parse(raw)
	if err != nil {
		return nil, err
	}
	if u.Scheme == "" || u.Host == "" {
		return nil, fmt.Errorf("proxy needs a scheme and host")
	}
	return u, nil
}

// Close releases idle connections.
func (c *Client) Close() {
	c.client.CloseIdleConnections()
}
