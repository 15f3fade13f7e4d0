// Package openaire is the adapter for the OpenAIRE APIs: publication
// search (XML), and the graph API for organizations and projects
// (JSON). It is the highest-priority bibliographic source in the
// reconciliation order.
package openaire

import (
	"bytes"
	"context"
	"encoding/xml"
	"fmt"
	"io"
	"net/http"
	"net/url"
	"strings"
	"time"

	"golang.org/x/time/rate"
)

const (
	// BaseURL is the OpenAIRE API base URL. The publication search and
	// the graph API live under the same host.
	BaseURL = "https://api.openaire.eu"

	// DefaultTimeout bounds every request. A timed-out call is a miss,
	// never retried.
	DefaultTimeout = 10 * time.Second

	// RateLimit is the client-side request rate cap, requests/second.
	RateLimit = 10.0

	// DefaultOrgPageSize is the page size for organization searches.
	DefaultOrgPageSize = 10

	// orgSortOrder is the sort order requested for organization
	// searches; the first result is taken as the best match.
	orgSortOrder = "relevance DESC"
)

// Client is a rate-limited HTTP client for the OpenAIRE APIs.
type Client struct {
	httpClient *http.Client
	limiter    *rate.Limiter
	baseURL    string
}

// Option configures a Client.
type Option func(*Client)

// WithHTTPClient sets a custom HTTP client.
func WithHTTPClient(hc *http.Client) Option {
	return func(c *Client) {
		c.httpClient = hc
	}
}

// WithBaseURL sets a custom base URL (for testing).
func WithBaseURL(u string) Option {
	return func(c *Client) {
		c.baseURL = u
	}
}

// WithTimeout sets the HTTP request timeout.
func WithTimeout(d time.Duration) Option {
	return func(c *Client) {
		c.httpClient.Timeout = d
	}
}

// NewClient creates a new OpenAIRE client.
func NewClient(opts ...Option) *Client {
	c := &Client{
		httpClient: &http.Client{Timeout: DefaultTimeout},
		limiter:    rate.NewLimiter(rate.Limit(RateLimit), 1),
		baseURL:    BaseURL,
	}
	for _, opt := range opts {
		opt(c)
	}
	return c
}

// Name identifies the source in priority listings.
func (c *Client) Name() string {
	return "openaire"
}

// get performs a rate-limited GET and returns the response body.
func (c *Client) get(ctx context.Context, path string, params url.Values) ([]byte, error) {
	if err := c.limiter.Wait(ctx); err != nil {
		return nil, fmt.Errorf("rate limiter: %w", err)
	}

	u := c.baseURL + path
	if len(params) > 0 {
		u += "?" + params.Encode()
	}

	req, err := http.NewRequestWithContext(ctx, http.MethodGet, u, nil)
	if err != nil {
		return nil, fmt.Errorf("creating request: %w", err)
	}

	resp, err := c.httpClient.Do(req)
	if err != nil {
		return nil, fmt.Errorf("%w: %v", ErrNetwork, err)
	}
	defer resp.Body.Close()

	if resp.StatusCode == http.StatusTooManyRequests {
		return nil, fmt.Errorf("%w: status %d", ErrRateLimited, resp.StatusCode)
	}
	if resp.StatusCode >= 400 {
		return nil, &APIError{StatusCode: resp.StatusCode, Message: http.StatusText(resp.StatusCode)}
	}

	body, err := io.ReadAll(resp.Body)
	if err != nil {
		return nil, fmt.Errorf("%w: %v", ErrNetwork, err)
	}
	return body, nil
}

// searchPublications runs a publication search with the given query
// parameter and returns the parsed payload.
func (c *Client) searchPublications(ctx context.Context, key, value string) (*publication, error) {
	params := url.Values{}
	params.Set(key, value)
	params.Set("format", "xml")

	body, err := c.get(ctx, "/search/publications", params)
	if err != nil {
		return nil, err
	}
	return parsePublication(body)
}

// parsePublication walks the XML token stream collecting the fields the
// record model needs. OpenAIRE nests results deeply and the envelope
// varies across endpoints, so elements are matched by local name, first
// occurrence wins.
func parsePublication(data []byte) (*publication, error) {
	dec := xml.NewDecoder(bytes.NewReader(data))
	var pub publication

	for {
		tok, err := dec.Token()
		if err == io.EOF {
			break
		}
		if err != nil {
			return nil, fmt.Errorf("%w: %v", ErrMalformedResponse, err)
		}

		se, ok := tok.(xml.StartElement)
		if !ok {
			continue
		}

		switch se.Name.Local {
		case "title":
			if pub.Title == "" {
				pub.Title = elementText(dec)
			}
		case "pid":
			if attrValue(se, "classid") == "doi" && pub.DOI == "" {
				pub.DOI = elementText(dec)
			}
		case "dateofacceptance":
			if pub.Date == "" {
				pub.Date = elementText(dec)
			}
		case "language":
			if pub.Language == "" {
				pub.Language = elementText(dec)
			}
		case "citationcount":
			if pub.CitationCount == "" {
				pub.CitationCount = elementText(dec)
			}
		case "resourcetype":
			if pub.Pages == "" {
				pub.Pages = attrValue(se, "pages")
			}
			if pub.ResourceType == "" {
				pub.ResourceType = elementText(dec)
			}
		case "creator":
			var cr creator
			if err := dec.DecodeElement(&cr, &se); err == nil {
				pub.Creators = append(pub.Creators, cr)
			}
		case "to":
			if attrValue(se, "type") == "project" {
				if id := elementText(dec); id != "" {
					pub.ProjectIDs = append(pub.ProjectIDs, id)
				}
			}
		case "publisher":
			if text := elementText(dec); text != "" {
				pub.Publishers = append(pub.Publishers, text)
			}
		case "total":
			if pub.Total == "" {
				pub.Total = elementText(dec)
			}
		}
	}

	return &pub, nil
}

// elementText consumes the current element's subtree and returns its
// trimmed character data.
func elementText(dec *xml.Decoder) string {
	var sb strings.Builder
	depth := 1
	for depth > 0 {
		tok, err := dec.Token()
		if err != nil {
			break
		}
		switch t := tok.(type) {
		case xml.StartElement:
			depth++
		case xml.EndElement:
			depth--
		case xml.CharData:
			sb.Write(t)
		}
	}
	return strings.TrimSpace(sb.String())
}

// attrValue returns the value of the named attribute, or "".
func attrValue(se xml.StartElement, name string) string {
	for _, a := range se.Attr {
		if a.Name.Local == name {
			return a.Value
		}
	}
	return ""
}
