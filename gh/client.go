package gh

import (
	"context"
	"io"
	"net/http"

	"folder-pack/log"
)

const (
	DefaultAPIBaseURL = "https://api.github.com"
	DefaultUserAgent  = "folder-pack"

	// mediaType is the versioned JSON media type of the REST API.
	mediaType = "application/vnd.github.v3+json"
)

// Client talks to the GitHub contents API and downloads raw files.
type Client struct {
	httpClient    *http.Client
	apiBaseURL    string
	userAgent     string
	progress      io.Writer
	progressStyle string
	log           *log.Logger
}

// Option configures a Client.
type Option func(*Client)

// WithHTTPClient replaces http.DefaultClient.
func WithHTTPClient(c *http.Client) Option {
	return func(cl *Client) {
		cl.httpClient = c
	}
}

// WithAPIBaseURL points the client at another API host, e.g. a test server.
func WithAPIBaseURL(u string) Option {
	return func(cl *Client) {
		cl.apiBaseURL = u
	}
}

func WithUserAgent(ua string) Option {
	return func(cl *Client) {
		cl.userAgent = ua
	}
}

// WithProgress draws a byte progress bar on w for every file download.
func WithProgress(w io.Writer, style string) Option {
	return func(cl *Client) {
		cl.progress = w
		cl.progressStyle = style
	}
}

func WithLogger(l *log.Logger) Option {
	return func(cl *Client) {
		cl.log = l
	}
}

// NewClient returns a Client for the public github.com API.
func NewClient(opts ...Option) *Client {
	c := &Client{
		httpClient: http.DefaultClient,
		apiBaseURL: DefaultAPIBaseURL,
		userAgent:  DefaultUserAgent,
		log:        log.Null,
	}
	for _, opt := range opts {
		opt(c)
	}
	return c
}

func (c *Client) newRequest(ctx context.Context, url string) (*http.Request, error) {
	req, err := http.NewRequestWithContext(ctx, http.MethodGet, url, nil)
	if err != nil {
		return nil, err
	}
	if c.userAgent != "" {
		req.Header.Set("User-Agent", c.userAgent)
	}
	return req, nil
}
