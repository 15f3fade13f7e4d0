// Package grobid is the adapter for the PDF extraction service. It
// posts a PDF to the service's fulltext endpoint and normalizes the TEI
// response into a record.Document: title, author names, affiliation
// organization names, funder names, page count, acknowledgment and
// abstract text.
package grobid

import (
	"bytes"
	"context"
	"errors"
	"fmt"
	"io"
	"mime/multipart"
	"net/http"
	"time"

	"github.com/matsen/citegraph/internal/record"
)

const (
	// DefaultBaseURL is the default extraction service endpoint.
	DefaultBaseURL = "http://localhost:8070"

	// DefaultTimeout bounds each extraction call. Fulltext processing
	// is slow on long documents.
	DefaultTimeout = 60 * time.Second

	// fulltextPath is the TEI fulltext extraction endpoint.
	fulltextPath = "/api/processFulltextDocument"

	// maxHeaderAuthors caps the authors taken from a document header.
	// Beyond that the TEI author lists are dominated by bibliography
	// entries rather than the paper's own byline.
	maxHeaderAuthors = 5
)

// Common errors returned by the extraction client.
var (
	// ErrNetwork indicates a transport failure reaching the service.
	ErrNetwork = errors.New("network error communicating with extraction service")

	// ErrMalformedResponse indicates TEI that did not parse.
	ErrMalformedResponse = errors.New("malformed TEI from extraction service")
)

// APIError represents a non-success status from the extraction service.
type APIError struct {
	StatusCode int
	Filename   string
}

func (e *APIError) Error() string {
	return fmt.Sprintf("extraction service error (status %d) for %s", e.StatusCode, e.Filename)
}

// Client is an HTTP client for the extraction service.
type Client struct {
	httpClient *http.Client
	baseURL    string
}

// Option configures a Client.
type Option func(*Client)

// WithBaseURL sets a custom base URL (for testing).
func WithBaseURL(u string) Option {
	return func(c *Client) {
		c.baseURL = u
	}
}

// WithHTTPClient sets a custom HTTP client.
func WithHTTPClient(hc *http.Client) Option {
	return func(c *Client) {
		c.httpClient = hc
	}
}

// WithTimeout sets the HTTP request timeout.
func WithTimeout(d time.Duration) Option {
	return func(c *Client) {
		c.httpClient.Timeout = d
	}
}

// NewClient creates a new extraction service client.
func NewClient(opts ...Option) *Client {
	c := &Client{
		httpClient: &http.Client{Timeout: DefaultTimeout},
		baseURL:    DefaultBaseURL,
	}
	for _, opt := range opts {
		opt(c)
	}
	return c
}

// Extract posts the PDF content to the fulltext endpoint and returns
// the normalized document. The filename is recorded on the document and
// used in error messages.
func (c *Client) Extract(ctx context.Context, filename string, pdf io.Reader) (*record.Document, error) {
	var buf bytes.Buffer
	mw := multipart.NewWriter(&buf)

	fw, err := mw.CreateFormFile("input", filename)
	if err != nil {
		return nil, fmt.Errorf("building request: %w", err)
	}
	if _, err := io.Copy(fw, pdf); err != nil {
		return nil, fmt.Errorf("reading pdf: %w", err)
	}
	if err := mw.WriteField("consolidate", "1"); err != nil {
		return nil, fmt.Errorf("building request: %w", err)
	}
	if err := mw.Close(); err != nil {
		return nil, fmt.Errorf("building request: %w", err)
	}

	req, err := http.NewRequestWithContext(ctx, http.MethodPost, c.baseURL+fulltextPath, &buf)
	if err != nil {
		return nil, fmt.Errorf("creating request: %w", err)
	}
	req.Header.Set("Content-Type", mw.FormDataContentType())

	resp, err := c.httpClient.Do(req)
	if err != nil {
		return nil, fmt.Errorf("%w: %v", ErrNetwork, err)
	}
	defer resp.Body.Close()

	if resp.StatusCode != http.StatusOK {
		return nil, &APIError{StatusCode: resp.StatusCode, Filename: filename}
	}

	body, err := io.ReadAll(resp.Body)
	if err != nil {
		return nil, fmt.Errorf("%w: %v", ErrNetwork, err)
	}

	doc, err := parseTEI(body)
	if err != nil {
		return nil, err
	}
	doc.Filename = filename
	return doc, nil
}
