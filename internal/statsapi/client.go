// Package statsapi is the HTTP client for the report API. It implements
// the transport the fetch coordinator needs (path + query in, data
// envelope out) plus the descriptor list endpoint.
package statsapi

import (
	"context"
	"encoding/json"
	"fmt"
	"net/http"
	"net/url"
	"strings"
	"time"

	"github.com/tinytelemetry/statview/internal/model"
)

// Client talks to a statviewd instance over HTTP.
type Client struct {
	baseURL    string
	httpClient *http.Client
}

// NewClient returns a client for the API rooted at baseURL, for example
// "http://127.0.0.1:3000".
func NewClient(baseURL string) *Client {
	return &Client{
		baseURL:    strings.TrimRight(baseURL, "/"),
		httpClient: &http.Client{Timeout: 30 * time.Second},
	}
}

// Get fetches a report payload envelope from the given API path with the
// given query parameters. It does not retry; deciding whether a late
// response is still wanted is the caller's concern.
func (c *Client) Get(ctx context.Context, path string, query url.Values) (*model.DataEnvelope, error) {
	u := c.baseURL + "/" + strings.TrimLeft(path, "/")
	if len(query) > 0 {
		u += "?" + query.Encode()
	}

	req, err := http.NewRequestWithContext(ctx, http.MethodGet, u, nil)
	if err != nil {
		return nil, fmt.Errorf("statsapi: build request: %w", err)
	}

	resp, err := c.httpClient.Do(req)
	if err != nil {
		return nil, fmt.Errorf("statsapi: get %s: %w", path, err)
	}
	defer resp.Body.Close()

	if resp.StatusCode != http.StatusOK {
		return nil, fmt.Errorf("statsapi: get %s: unexpected status %d", path, resp.StatusCode)
	}

	var env model.DataEnvelope
	if err := json.NewDecoder(resp.Body).Decode(&env); err != nil {
		return nil, fmt.Errorf("statsapi: decode envelope: %w", err)
	}
	return &env, nil
}

// listEnvelope is the wire shape of the descriptor list endpoint.
type listEnvelope struct {
	Data struct {
		Reports []model.ReportDescriptor `json:"reports"`
	} `json:"data"`
}

// ListReports fetches the descriptors of every report the server offers.
func (c *Client) ListReports(ctx context.Context) ([]model.ReportDescriptor, error) {
	req, err := http.NewRequestWithContext(ctx, http.MethodGet, c.baseURL+"/stats/reports", nil)
	if err != nil {
		return nil, fmt.Errorf("statsapi: build request: %w", err)
	}

	resp, err := c.httpClient.Do(req)
	if err != nil {
		return nil, fmt.Errorf("statsapi: list reports: %w", err)
	}
	defer resp.Body.Close()

	if resp.StatusCode != http.StatusOK {
		return nil, fmt.Errorf("statsapi: list reports: unexpected status %d", resp.StatusCode)
	}

	var env listEnvelope
	if err := json.NewDecoder(resp.Body).Decode(&env); err != nil {
		return nil, fmt.Errorf("statsapi: decode report list: %w", err)
	}
	return env.Data.Reports, nil
}
