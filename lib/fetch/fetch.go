// Package fetch wraps the outbound http client used by every catalogue
// backend. Catalogue sites are plain server-rendered html, so a response is
// only considered usable when it comes back 200 with an html content type.
package fetch

import (
	"context"
	"errors"
	"strings"
	"time"

	"plscrape/lib/telemetry"

	"github.com/go-resty/resty/v2"
)

// ErrNotHTML marks a response that came back without usable page content,
// either a non-200 status or a non-html content type. Callers generally
// treat it as "no content" rather than a hard failure.
var ErrNotHTML = errors.New("response is not an html page")

const DefaultTimeout = time.Second * 30

type Options struct {
	// zero means DefaultTimeout
	Timeout   time.Duration
	UserAgent string
}

type Client struct {
	http *resty.Client
}

func NewClient(opts Options) *Client {
	timeout := opts.Timeout
	if timeout == 0 {
		timeout = DefaultTimeout
	}

	client := resty.New()
	client.SetTimeout(timeout)
	if opts.UserAgent != "" {
		client.SetHeader("user-agent", opts.UserAgent)
	}
	telemetry.InstrumentResty(client, "plscrape/fetch")

	return &Client{http: client}
}

// GetHTML fetches url and returns the raw page bytes. Responses that are
// not 200 or not html yield ErrNotHTML.
func (c *Client) GetHTML(ctx context.Context, url string) ([]byte, error) {
	res, err := c.http.R().
		SetContext(ctx).
		Get(url)
	if err != nil {
		return nil, err
	}

	contentType := strings.ToLower(res.Header().Get("Content-Type"))
	if res.StatusCode() != 200 || !strings.Contains(contentType, "html") {
		return nil, ErrNotHTML
	}
	return res.Body(), nil
}

type ProbeResult struct {
	StatusCode int
	// the url the request ended up at after following redirects
	FinalURL string
}

// Probe issues a GET against url, following redirects, and reports where
// the request ended up. Backend discovery uses this to tell a catalogue
// that serves the requested library service apart from one that bounces
// the request somewhere else.
func (c *Client) Probe(ctx context.Context, url string) (ProbeResult, error) {
	res, err := c.http.R().
		SetContext(ctx).
		Get(url)
	if err != nil {
		return ProbeResult{}, err
	}

	finalURL := url
	if res.RawResponse != nil && res.RawResponse.Request != nil {
		finalURL = res.RawResponse.Request.URL.String()
	}
	return ProbeResult{
		StatusCode: res.StatusCode(),
		FinalURL:   finalURL,
	}, nil
}
