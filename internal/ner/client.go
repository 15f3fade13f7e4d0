// Package ner is the adapter for the named-entity-recognition service
// used to find organization names in acknowledgment text. The service
// returns entity spans with confidence scores; only ORG spans at or
// above the confidence threshold are kept.
package ner

import (
	"bytes"
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"net/http"
	"time"

	"github.com/matsen/citegraph/internal/record"
)

const (
	// DefaultBaseURL is the default NER service endpoint.
	DefaultBaseURL = "http://localhost:8090"

	// DefaultTimeout bounds each call.
	DefaultTimeout = 10 * time.Second

	// MinConfidence is the score threshold below which ORG spans are
	// discarded.
	MinConfidence = 0.85

	// entitiesPath is the entity extraction endpoint.
	entitiesPath = "/entities"

	// labelOrganization is the entity label kept by ExtractOrgs.
	labelOrganization = "ORG"
)

// Common errors returned by the NER client.
var (
	// ErrNetwork indicates a transport failure reaching the service.
	ErrNetwork = errors.New("network error communicating with NER service")

	// ErrMalformedResponse indicates a payload that did not parse.
	ErrMalformedResponse = errors.New("malformed response from NER service")
)

// entity is one span in the service response.
type entity struct {
	Text  string  `json:"text"`
	Label string  `json:"label"`
	Score float64 `json:"score"`
}

// Client is an HTTP client for the NER service.
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

// NewClient creates a new NER service client.
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

// ExtractOrgs returns the organization names found in the text, deduped
// by normalized name, keeping only ORG spans with score >= MinConfidence.
func (c *Client) ExtractOrgs(ctx context.Context, text string) ([]string, error) {
	if text == "" {
		return nil, nil
	}

	reqBody, err := json.Marshal(map[string]string{"text": text})
	if err != nil {
		return nil, fmt.Errorf("marshaling request: %w", err)
	}

	req, err := http.NewRequestWithContext(ctx, http.MethodPost, c.baseURL+entitiesPath, bytes.NewReader(reqBody))
	if err != nil {
		return nil, fmt.Errorf("creating request: %w", err)
	}
	req.Header.Set("Content-Type", "application/json")

	resp, err := c.httpClient.Do(req)
	if err != nil {
		return nil, fmt.Errorf("%w: %v", ErrNetwork, err)
	}
	defer resp.Body.Close()

	if resp.StatusCode != http.StatusOK {
		return nil, fmt.Errorf("NER service returned status %d", resp.StatusCode)
	}

	body, err := io.ReadAll(resp.Body)
	if err != nil {
		return nil, fmt.Errorf("%w: %v", ErrNetwork, err)
	}

	var entities []entity
	if err := json.Unmarshal(body, &entities); err != nil {
		return nil, fmt.Errorf("%w: %v", ErrMalformedResponse, err)
	}

	seen := make(map[string]bool)
	var orgs []string
	for _, e := range entities {
		if e.Label != labelOrganization || e.Score < MinConfidence {
			continue
		}
		name := record.NormalizeSpace(e.Text)
		if name == "" || seen[record.NormalizeKey(name)] {
			continue
		}
		seen[record.NormalizeKey(name)] = true
		orgs = append(orgs, name)
	}
	return orgs, nil
}
