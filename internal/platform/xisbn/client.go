package xisbn

import (
	"context"
	"io"
	"log"
	"net/http"
	"time"

	"github.com/go-playground/validator/v10"
)

const (
	DefaultBaseURL   = "http://xisbn.worldcat.org/webservices/xid/isbn/"
	DefaultTimeout   = 15 * time.Second
	DefaultUserAgent = "xisbn-go/1.0"
)

// Client validates lookup parameters and fetches the xISBN response body.
// It keeps no per-call state and is safe for concurrent use.
type Client struct {
	httpClient *http.Client
	userAgent  string
	baseURL    string
	validate   *validator.Validate
	logger     *log.Logger
}

type Option func(*Client)

func WithBaseURL(baseURL string) Option {
	return func(c *Client) { c.baseURL = baseURL }
}

// WithHTTPClient replaces the underlying http.Client. nil restores the default.
func WithHTTPClient(hc *http.Client) Option {
	return func(c *Client) {
		if hc == nil {
			hc = &http.Client{Timeout: DefaultTimeout}
		}
		c.httpClient = hc
	}
}

// WithTimeout sets the timeout of the client's own http.Client. Apply it after
// WithHTTPClient if both are used.
func WithTimeout(d time.Duration) Option {
	return func(c *Client) {
		var hc http.Client
		if c.httpClient != nil {
			hc = *c.httpClient
		}
		hc.Timeout = d
		c.httpClient = &hc
	}
}

func WithUserAgent(ua string) Option {
	return func(c *Client) { c.userAgent = ua }
}

// WithPrefixMatching accepts option values that merely start with a known
// token, e.g. "jsonp" as a format. Older callers relied on this.
func WithPrefixMatching() Option {
	return func(c *Client) { c.validate = prefixValidate }
}

func WithLogger(l *log.Logger) Option {
	return func(c *Client) { c.logger = l }
}

func NewClient(opts ...Option) *Client {
	c := &Client{
		httpClient: &http.Client{
			Timeout: DefaultTimeout,
		},
		userAgent: DefaultUserAgent,
		baseURL:   DefaultBaseURL,
		validate:  exactValidate,
	}
	for _, opt := range opts {
		opt(c)
	}
	return c
}

func (c *Client) BaseURL() string {
	return c.baseURL
}

// NewRequest validates identifier and opts using the client's matching mode.
func (c *Client) NewRequest(identifier string, opts Options) (Request, error) {
	return newRequest(c.validate, identifier, opts)
}

func (c *Client) NewRequestFromValues(identifier any, values map[string]any) (Request, error) {
	return newRequestFromValues(c.validate, identifier, values)
}

// BuildURL returns the URL Lookup would fetch, without touching the network.
func (c *Client) BuildURL(identifier string, opts Options) (string, error) {
	req, err := c.NewRequest(identifier, opts)
	if err != nil {
		return "", err
	}
	return req.URL(c.baseURL), nil
}

// Lookup validates the parameters, issues one GET and returns the body as is.
func (c *Client) Lookup(ctx context.Context, identifier string, opts Options) (string, error) {
	req, err := c.NewRequest(identifier, opts)
	if err != nil {
		return "", err
	}
	return c.Do(ctx, req)
}

func (c *Client) LookupValues(ctx context.Context, identifier any, values map[string]any) (string, error) {
	req, err := c.NewRequestFromValues(identifier, values)
	if err != nil {
		return "", err
	}
	return c.Do(ctx, req)
}

// Do fetches an already validated request. The status code is not inspected
// and transport errors are returned unchanged.
func (c *Client) Do(ctx context.Context, req Request) (string, error) {
	u := req.URL(c.baseURL)
	start := time.Now()

	httpReq, err := http.NewRequestWithContext(ctx, http.MethodGet, u, nil)
	if err != nil {
		return "", err
	}
	if c.userAgent != "" {
		httpReq.Header.Set("User-Agent", c.userAgent)
	}

	resp, err := c.httpClient.Do(httpReq)
	if err != nil {
		return "", err
	}
	defer resp.Body.Close()

	body, err := io.ReadAll(resp.Body)
	if err != nil {
		return "", err
	}

	if c.logger != nil {
		c.logger.Printf("xisbn lookup isbn=%s status=%d bytes=%d duration_ms=%d",
			req.Identifier(), resp.StatusCode, len(body), time.Since(start).Milliseconds())
	}
	return string(body), nil
}
