// Package notion is a minimal client for the Notion HTTP API, covering the
// subset this tool needs: paginated database queries, page creation, page
// retrieval and page property patches.
package notion

import (
	"bytes"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"time"
)

const (
	apiBase    = "https://api.notion.com/v1"
	apiVersion = "2022-06-28"
)

// Client talks to the Notion API on behalf of a single integration token.
type Client struct {
	token string
	base  string
	http  *http.Client
}

// NewClient returns a client authenticated with the given integration token.
func NewClient(token string) *Client {
	return &Client{
		token: token,
		base:  apiBase,
		http:  &http.Client{Timeout: 25 * time.Second},
	}
}

// NewClientAt is NewClient pointed at a different base URL, for tests.
func NewClientAt(token, base string) *Client {
	c := NewClient(token)
	c.base = base
	return c
}

// request performs one round-trip and decodes the JSON response into out.
// Non-2xx statuses are returned as errors carrying the response body.
func (c *Client) request(method, path string, payload, out any) error {
	var body io.Reader
	if payload != nil {
		data, err := json.Marshal(payload)
		if err != nil {
			return fmt.Errorf("cannot encode %s %s payload: %w", method, path, err)
		}
		body = bytes.NewReader(data)
	}
	req, err := http.NewRequest(method, c.base+path, body)
	if err != nil {
		return fmt.Errorf("cannot create request %s %s: %w", method, path, err)
	}
	req.Header.Set("Authorization", "Bearer "+c.token)
	req.Header.Set("Notion-Version", apiVersion)
	req.Header.Set("Content-Type", "application/json")

	resp, err := c.http.Do(req)
	if err != nil {
		return fmt.Errorf("notion %s %s failed: %w", method, path, err)
	}
	defer resp.Body.Close()

	data, err := io.ReadAll(resp.Body)
	if err != nil {
		return fmt.Errorf("notion %s %s: cannot read response: %w", method, path, err)
	}
	if resp.StatusCode < 200 || resp.StatusCode >= 300 {
		return fmt.Errorf("notion %s %s failed: %s %s", method, path, resp.Status, data)
	}
	if out == nil {
		return nil
	}
	if err := json.Unmarshal(data, out); err != nil {
		return fmt.Errorf("notion %s %s: cannot decode response: %w", method, path, err)
	}
	return nil
}

// QueryResult is one page of results from a database query.
type QueryResult struct {
	Results    []Page `json:"results"`
	NextCursor string `json:"next_cursor"`
	HasMore    bool   `json:"has_more"`
}

// Query runs a database query with an optional filter and continuation
// cursor and returns a single page of results of at most pageSize records.
func (c *Client) Query(databaseID string, filter Filter, cursor string, pageSize int) (QueryResult, error) {
	payload := map[string]any{"page_size": pageSize}
	if filter != nil {
		payload["filter"] = filter
	}
	if cursor != "" {
		payload["start_cursor"] = cursor
	}
	var res QueryResult
	err := c.request(http.MethodPost, "/databases/"+databaseID+"/query", payload, &res)
	return res, err
}

// CreatePage creates a page in the given database and returns its id.
func (c *Client) CreatePage(databaseID string, props map[string]Value) (string, error) {
	payload := map[string]any{
		"parent":     map[string]any{"database_id": databaseID},
		"properties": props,
	}
	var res struct {
		ID string `json:"id"`
	}
	if err := c.request(http.MethodPost, "/pages", payload, &res); err != nil {
		return "", err
	}
	return res.ID, nil
}

// GetPage retrieves a page with all its properties.
func (c *Client) GetPage(pageID string) (Page, error) {
	var p Page
	err := c.request(http.MethodGet, "/pages/"+pageID, nil, &p)
	return p, err
}

// UpdatePage patches the given properties of a page, leaving others untouched.
func (c *Client) UpdatePage(pageID string, props map[string]Value) error {
	payload := map[string]any{"properties": props}
	return c.request(http.MethodPatch, "/pages/"+pageID, payload, nil)
}
