// Package docindex talks to the document-index HTTP API that tracks which
// release documents are known, which are still pending, and the extraction
// results stored for each.
package docindex

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"net/url"
	"time"

	"github.com/dgallion1/aaerminer/internal/document"
)

// Client communicates with the document index HTTP API.
type Client struct {
	baseURL    string
	apiKey     string
	httpClient *http.Client
}

func NewClient(baseURL, apiKey string) *Client {
	return &Client{
		baseURL: baseURL,
		apiKey:  apiKey,
		httpClient: &http.Client{
			Timeout: 30 * time.Second,
		},
	}
}

// Doc is one tracked release document.
type Doc struct {
	DocID       string `json:"doc_id"`
	URL         string `json:"url"`
	Respondents string `json:"respondents,omitempty"`
	Scraped     bool   `json:"scraped"`
}

// Register records newly discovered documents. Already-known URLs are
// ignored by the index.
func (c *Client) Register(ctx context.Context, docs []Doc) error {
	body, err := json.Marshal(map[string]any{"documents": docs})
	if err != nil {
		return fmt.Errorf("marshal documents: %w", err)
	}
	httpReq, err := http.NewRequestWithContext(ctx, http.MethodPost, c.baseURL+"/documents", bytes.NewReader(body))
	if err != nil {
		return fmt.Errorf("create request: %w", err)
	}
	httpReq.Header.Set("Content-Type", "application/json")
	httpReq.Header.Set("Authorization", "Bearer "+c.apiKey)

	resp, err := c.httpClient.Do(httpReq)
	if err != nil {
		return fmt.Errorf("register documents: %w", err)
	}
	defer resp.Body.Close()
	if resp.StatusCode != http.StatusOK && resp.StatusCode != http.StatusCreated {
		respBody, _ := io.ReadAll(io.LimitReader(resp.Body, 1024))
		return fmt.Errorf("register documents: status %d: %s", resp.StatusCode, string(respBody))
	}
	return nil
}

// ListPending returns documents not yet scraped, oldest first.
func (c *Client) ListPending(ctx context.Context, limit int) ([]Doc, error) {
	u := c.baseURL + "/documents?scraped=false"
	if limit > 0 {
		u += "&limit=" + url.QueryEscape(fmt.Sprintf("%d", limit))
	}
	httpReq, err := http.NewRequestWithContext(ctx, http.MethodGet, u, nil)
	if err != nil {
		return nil, fmt.Errorf("create request: %w", err)
	}
	httpReq.Header.Set("Authorization", "Bearer "+c.apiKey)

	resp, err := c.httpClient.Do(httpReq)
	if err != nil {
		return nil, fmt.Errorf("list pending: %w", err)
	}
	defer resp.Body.Close()
	if resp.StatusCode != http.StatusOK {
		respBody, _ := io.ReadAll(io.LimitReader(resp.Body, 1024))
		return nil, fmt.Errorf("list pending: status %d: %s", resp.StatusCode, string(respBody))
	}

	var result struct {
		Documents []Doc `json:"documents"`
	}
	if err := json.NewDecoder(resp.Body).Decode(&result); err != nil {
		return nil, fmt.Errorf("decode documents: %w", err)
	}
	return result.Documents, nil
}

// MarkScraped flips the scraped flag for a document URL so it is not
// handed out again.
func (c *Client) MarkScraped(ctx context.Context, docID string) error {
	u := c.baseURL + "/documents/" + url.PathEscape(docID) + "/scraped"
	httpReq, err := http.NewRequestWithContext(ctx, http.MethodPut, u, nil)
	if err != nil {
		return fmt.Errorf("create request: %w", err)
	}
	httpReq.Header.Set("Authorization", "Bearer "+c.apiKey)

	resp, err := c.httpClient.Do(httpReq)
	if err != nil {
		return fmt.Errorf("mark scraped: %w", err)
	}
	defer resp.Body.Close()
	if resp.StatusCode != http.StatusOK && resp.StatusCode != http.StatusNoContent {
		respBody, _ := io.ReadAll(io.LimitReader(resp.Body, 1024))
		return fmt.Errorf("mark scraped %s: status %d: %s", docID, resp.StatusCode, string(respBody))
	}
	return nil
}

// PutResult stores the extraction for a document.
func (c *Client) PutResult(ctx context.Context, result document.Extraction) error {
	body, err := json.Marshal(result)
	if err != nil {
		return fmt.Errorf("marshal extraction: %w", err)
	}
	u := c.baseURL + "/results/" + url.PathEscape(result.DocID)
	httpReq, err := http.NewRequestWithContext(ctx, http.MethodPut, u, bytes.NewReader(body))
	if err != nil {
		return fmt.Errorf("create request: %w", err)
	}
	httpReq.Header.Set("Content-Type", "application/json")
	httpReq.Header.Set("Authorization", "Bearer "+c.apiKey)

	resp, err := c.httpClient.Do(httpReq)
	if err != nil {
		return fmt.Errorf("put result: %w", err)
	}
	defer resp.Body.Close()
	if resp.StatusCode != http.StatusOK && resp.StatusCode != http.StatusCreated {
		respBody, _ := io.ReadAll(io.LimitReader(resp.Body, 1024))
		return fmt.Errorf("put result %s: status %d: %s", result.DocID, resp.StatusCode, string(respBody))
	}
	return nil
}

// GetResult fetches a stored extraction. A missing result returns nil.
func (c *Client) GetResult(ctx context.Context, docID string) (*document.Extraction, error) {
	u := c.baseURL + "/results/" + url.PathEscape(docID)
	httpReq, err := http.NewRequestWithContext(ctx, http.MethodGet, u, nil)
	if err != nil {
		return nil, fmt.Errorf("create request: %w", err)
	}
	httpReq.Header.Set("Authorization", "Bearer "+c.apiKey)

	resp, err := c.httpClient.Do(httpReq)
	if err != nil {
		return nil, fmt.Errorf("get result: %w", err)
	}
	defer resp.Body.Close()
	if resp.StatusCode == http.StatusNotFound {
		return nil, nil
	}
	if resp.StatusCode != http.StatusOK {
		respBody, _ := io.ReadAll(io.LimitReader(resp.Body, 1024))
		return nil, fmt.Errorf("get result %s: status %d: %s", docID, resp.StatusCode, string(respBody))
	}

	var extraction document.Extraction
	if err := json.NewDecoder(resp.Body).Decode(&extraction); err != nil {
		return nil, fmt.Errorf("decode extraction: %w", err)
	}
	return &extraction, nil
}

// Close releases any resources (currently a no-op).
func (c *Client) Close() {
	c.httpClient.CloseIdleConnections()
}
