// Copyright Mesh Intelligence Inc., 2026. All rights reserved.

// Package pubmed talks to the NCBI E-utilities endpoints for PubMed and
// turns their XML responses into paper records.
package pubmed

import (
	"context"
	"errors"
	"fmt"
	"io"
	"net/url"
	"strings"

	"github.com/pdiddy/pubmed-papers/pkg/types"
)

// eutilsBase is the E-utilities root. Declared as a var so tests can
// substitute an httptest server.
var eutilsBase = "https://eutils.ncbi.nlm.nih.gov/entrez/eutils"

// Getter fetches a URL and returns the body of a 200 response.
type Getter interface {
	Get(ctx context.Context, url string) ([]byte, error)
}

// Cache stores raw detail responses keyed by request URL without the
// caller identity parameters.
type Cache interface {
	Get(ctx context.Context, key string) ([]byte, bool, error)
	Put(ctx context.Context, key string, body []byte) error
}

// Client issues search and detail requests against PubMed.
type Client struct {
	HTTP Getter
	Mode types.DetailMode

	// BaseURL overrides the E-utilities root when set.
	BaseURL string

	// Cache is optional; when set, detail responses are read from and
	// written to it.
	Cache Cache

	APIKey string
	Email  string
	Tool   string

	// Debug enables request progress lines on Progress.
	Debug    bool
	Progress io.Writer
}

// NewClient builds a Client from cfg. Progress lines go to w.
func NewClient(cfg types.PubMedConfig, getter Getter, debug bool, w io.Writer) *Client {
	if w == nil {
		w = io.Discard
	}
	return &Client{
		HTTP:     getter,
		Mode:     cfg.Detail,
		BaseURL:  cfg.BaseURL,
		APIKey:   cfg.APIKey,
		Email:    cfg.Email,
		Tool:     cfg.Tool,
		Debug:    debug,
		Progress: w,
	}
}

func (c *Client) base() string {
	if c.BaseURL != "" {
		return strings.TrimRight(c.BaseURL, "/")
	}
	return eutilsBase
}

// SearchURL returns the esearch URL for term.
func (c *Client) SearchURL(term string) string {
	return fmt.Sprintf("%s/esearch.fcgi?db=pubmed&term=%s&retmode=xml%s",
		c.base(), url.QueryEscape(term), c.identity())
}

// DetailURL returns the detail URL for one PubMed identifier, using
// esummary or efetch depending on the configured mode.
func (c *Client) DetailURL(id string) string {
	return c.detailKey(id) + c.identity()
}

// detailKey is the detail URL without identity parameters. It names the
// response in the cache, so a changed API key or e-mail keeps old entries.
func (c *Client) detailKey(id string) string {
	endpoint := "esummary.fcgi"
	if c.Mode == types.DetailFetch {
		endpoint = "efetch.fcgi"
	}
	return fmt.Sprintf("%s/%s?db=pubmed&id=%s&retmode=xml",
		c.base(), endpoint, url.QueryEscape(id))
}

// identity renders the optional api_key, email and tool parameters.
func (c *Client) identity() string {
	params := url.Values{}
	if c.APIKey != "" {
		params.Set("api_key", c.APIKey)
	}
	if c.Email != "" {
		params.Set("email", c.Email)
	}
	if c.Tool != "" {
		params.Set("tool", c.Tool)
	}
	if len(params) == 0 {
		return ""
	}
	return "&" + params.Encode()
}

// redact masks the api_key value in u for display.
func redact(u string) string {
	i := strings.Index(u, "api_key=")
	if i < 0 {
		return u
	}
	start := i + len("api_key=")
	end := strings.IndexByte(u[start:], '&')
	if end < 0 {
		return u[:start] + "REDACTED"
	}
	return u[:start] + "REDACTED" + u[start+end:]
}

// redactErr masks the api_key in a transport error's URL.
func redactErr(err error) error {
	var ue *url.Error
	if errors.As(err, &ue) {
		ue.URL = redact(ue.URL)
	}
	return err
}

// Search runs one esearch query and returns the raw response body.
func (c *Client) Search(ctx context.Context, term string) ([]byte, error) {
	u := c.SearchURL(term)
	if c.Debug {
		fmt.Fprintf(c.Progress, "Fetching search results from: %s\n", redact(u))
	}

	body, err := c.HTTP.Get(ctx, u)
	if err != nil {
		return nil, fmt.Errorf("search request: %w", redactErr(err))
	}
	return body, nil
}

// Detail fetches the detail document for one identifier and returns the
// raw response body. Only bodies that parse into a complete record are
// written to the cache.
func (c *Client) Detail(ctx context.Context, id string) ([]byte, error) {
	if c.Debug {
		fmt.Fprintf(c.Progress, "Fetching details for ID: %s\n", id)
	}
	key := c.detailKey(id)

	if c.Cache != nil {
		body, ok, err := c.Cache.Get(ctx, key)
		if err != nil {
			fmt.Fprintf(c.Progress, "warning: cache read for %s failed: %v\n", id, err)
		} else if ok {
			if c.Debug {
				fmt.Fprintf(c.Progress, "Using cached details for ID: %s\n", id)
			}
			return body, nil
		}
	}

	body, err := c.HTTP.Get(ctx, c.DetailURL(id))
	if err != nil {
		return nil, fmt.Errorf("detail request for %s: %w", id, redactErr(err))
	}

	if c.Cache != nil {
		if _, err := ExtractPaper(body); err != nil {
			if c.Debug {
				fmt.Fprintf(c.Progress, "Not caching details for ID %s: %v\n", id, err)
			}
			return body, nil
		}
		if err := c.Cache.Put(ctx, key, body); err != nil {
			fmt.Fprintf(c.Progress, "warning: cache write for %s failed: %v\n", id, err)
		}
	}
	return body, nil
}
