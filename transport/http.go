package transport

import (
	"bytes"
	"context"
	"fmt"
	"io"
	"net/http"
	"net/http/cookiejar"
	"time"

	"github.com/cenkalti/backoff/v4"
	"golang.org/x/net/publicsuffix"

	"github.com/antflydb/scipaper/logging"
)

const defaultUserAgent = "scipaper/1.0 (+https://github.com/antflydb/scipaper)"

// browserUserAgent is attached to GetBinary requests: some download portals
// reject anything that doesn't look like a desktop browser.
const browserUserAgent = "Mozilla/5.0 (X11; Linux x86_64) AppleWebKit/537.36 (KHTML, like Gecko) Chrome/124.0 Safari/537.36"

// HTTPTransport is the default Transport, wrapping net/http.Client with a
// timeout, bounded exponential-backoff retries, a shared cookie jar,
// redirect following, and a configurable user-agent. This is the one
// concrete implementation of the collaborator the core deliberately keeps
// out of its own hands.
type HTTPTransport struct {
	client     *http.Client
	userAgent  string
	maxRetries uint64
	log        logging.Sink
}

// Option configures an HTTPTransport.
type Option func(*HTTPTransport)

// WithTimeout sets the per-request wall-clock timeout.
func WithTimeout(d time.Duration) Option {
	return func(t *HTTPTransport) { t.client.Timeout = d }
}

// WithUserAgent overrides the default user-agent for Get/Post requests.
func WithUserAgent(ua string) Option {
	return func(t *HTTPTransport) { t.userAgent = ua }
}

// WithMaxRetries bounds the number of retry attempts on transport failure.
func WithMaxRetries(n uint64) Option {
	return func(t *HTTPTransport) { t.maxRetries = n }
}

// WithLogger attaches a Sink used to warn on each retry.
func WithLogger(l logging.Sink) Option {
	return func(t *HTTPTransport) { t.log = l }
}

// NewHTTPTransport builds an HTTPTransport with sane defaults: a 20 second
// timeout (the "Timeout: 20" config default, §6.1), one retry (two attempts
// in all), a fresh cookie jar, and the library's default user-agent.
func NewHTTPTransport(opts ...Option) (*HTTPTransport, error) {
	jar, err := cookiejar.New(&cookiejar.Options{PublicSuffixList: publicsuffix.List})
	if err != nil {
		return nil, fmt.Errorf("transport: creating cookie jar: %w", err)
	}
	t := &HTTPTransport{
		client: &http.Client{
			Timeout: 20 * time.Second,
			Jar:     jar,
		},
		userAgent:  defaultUserAgent,
		maxRetries: 1,
		log:        logging.Noop,
	}
	for _, opt := range opts {
		opt(t)
	}
	return t, nil
}

func (t *HTTPTransport) backoffPolicy(ctx context.Context) backoff.BackOffContext {
	b := backoff.NewExponentialBackOff()
	b.InitialInterval = 200 * time.Millisecond
	b.MaxInterval = 5 * time.Second
	b.RandomizationFactor = 0.3
	return backoff.WithContext(backoff.WithMaxRetries(b, t.maxRetries), ctx)
}

func (t *HTTPTransport) do(ctx context.Context, req func() (*http.Request, error)) ([]byte, error) {
	var body []byte
	op := func() error {
		r, err := req()
		if err != nil {
			return backoff.Permanent(err)
		}
		resp, err := t.client.Do(r)
		if err != nil {
			return err
		}
		defer resp.Body.Close()
		if resp.StatusCode >= 500 {
			return fmt.Errorf("transport: server error %d from %s", resp.StatusCode, r.URL)
		}
		if resp.StatusCode >= 400 {
			return backoff.Permanent(fmt.Errorf("transport: client error %d from %s", resp.StatusCode, r.URL))
		}
		b, err := io.ReadAll(resp.Body)
		if err != nil {
			return err
		}
		body = b
		return nil
	}
	notify := func(err error, wait time.Duration) {
		t.log.Warnf("transport: retrying in %v: %v", wait, err)
	}
	if err := backoff.RetryNotify(op, t.backoffPolicy(ctx), notify); err != nil {
		return nil, err
	}
	return body, nil
}

// Get issues a GET request with the configured user-agent.
func (t *HTTPTransport) Get(ctx context.Context, url string, headers http.Header) ([]byte, error) {
	return t.do(ctx, func() (*http.Request, error) {
		req, err := http.NewRequestWithContext(ctx, http.MethodGet, url, nil)
		if err != nil {
			return nil, err
		}
		t.applyHeaders(req, headers, t.userAgent)
		return req, nil
	})
}

// Post issues a POST request with the configured user-agent.
func (t *HTTPTransport) Post(ctx context.Context, url string, body []byte, headers http.Header) ([]byte, error) {
	return t.do(ctx, func() (*http.Request, error) {
		req, err := http.NewRequestWithContext(ctx, http.MethodPost, url, bytes.NewReader(body))
		if err != nil {
			return nil, err
		}
		t.applyHeaders(req, headers, t.userAgent)
		return req, nil
	})
}

// GetBinary issues a GET request using a browser-style user-agent, for
// portals that gate downloads on looking like a real browser (§4.6.3).
func (t *HTTPTransport) GetBinary(ctx context.Context, url string) ([]byte, error) {
	return t.do(ctx, func() (*http.Request, error) {
		req, err := http.NewRequestWithContext(ctx, http.MethodGet, url, nil)
		if err != nil {
			return nil, err
		}
		t.applyHeaders(req, nil, browserUserAgent)
		return req, nil
	})
}

func (t *HTTPTransport) applyHeaders(req *http.Request, headers http.Header, ua string) {
	for k, vs := range headers {
		for _, v := range vs {
			req.Header.Add(k, v)
		}
	}
	if req.Header.Get("User-Agent") == "" {
		req.Header.Set("User-Agent", ua)
	}
}

var _ Transport = (*HTTPTransport)(nil)
