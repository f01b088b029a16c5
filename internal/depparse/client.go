// Package depparse talks to the dependency-parser sidecar service and
// rebuilds its token graphs for the temporal engine.
package depparse

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"time"

	"github.com/dgallion1/aaerminer/internal/temporal"
)

// Client calls the parser sidecar's /parse endpoint.
type Client struct {
	baseURL    string
	apiKey     string
	httpClient *http.Client

	// Stats tracks recent parse latencies; exposed through the API.
	Stats *CallStats
}

func NewClient(baseURL, apiKey string) *Client {
	return &Client{
		baseURL: baseURL,
		apiKey:  apiKey,
		httpClient: &http.Client{
			Timeout: 60 * time.Second,
		},
		Stats: NewCallStats(time.Hour),
	}
}

// Result is one parsed text: the token sequence plus the named entities the
// sidecar recognized.
type Result struct {
	Tokens   []temporal.Token
	Entities []Entity
}

type parseRequest struct {
	Text string `json:"text"`
}

type parseResponse struct {
	Tokens   []wireToken `json:"tokens"`
	Entities []Entity    `json:"entities"`
	Error    *struct {
		Message string `json:"message"`
	} `json:"error"`
}

// Parse sends one text to the sidecar.
func (c *Client) Parse(ctx context.Context, text string) (*Result, error) {
	body, err := json.Marshal(parseRequest{Text: text})
	if err != nil {
		return nil, fmt.Errorf("marshal request: %w", err)
	}

	httpReq, err := http.NewRequestWithContext(ctx, http.MethodPost, c.baseURL+"/parse", bytes.NewReader(body))
	if err != nil {
		return nil, fmt.Errorf("create request: %w", err)
	}
	httpReq.Header.Set("Content-Type", "application/json")
	if c.apiKey != "" {
		httpReq.Header.Set("Authorization", "Bearer "+c.apiKey)
	}

	start := time.Now()
	resp, err := c.httpClient.Do(httpReq)
	if err != nil {
		return nil, fmt.Errorf("parser api: %w", err)
	}
	defer resp.Body.Close()
	c.Stats.Record(time.Since(start).Milliseconds())

	respBody, err := io.ReadAll(io.LimitReader(resp.Body, 8<<20))
	if err != nil {
		return nil, fmt.Errorf("read response: %w", err)
	}

	if resp.StatusCode == http.StatusTooManyRequests || resp.StatusCode >= 500 {
		return nil, &RetryableError{
			StatusCode: resp.StatusCode,
			Message:    string(respBody),
		}
	}
	if resp.StatusCode != http.StatusOK {
		return nil, fmt.Errorf("parser api status %d: %s", resp.StatusCode, truncate(string(respBody), 200))
	}

	var apiResp parseResponse
	if err := json.Unmarshal(respBody, &apiResp); err != nil {
		return nil, fmt.Errorf("decode response: %w", err)
	}
	if apiResp.Error != nil {
		return nil, fmt.Errorf("parser error: %s", apiResp.Error.Message)
	}

	tokens, err := linkTokens(apiResp.Tokens)
	if err != nil {
		return nil, fmt.Errorf("link tokens: %w", err)
	}
	return &Result{Tokens: tokens, Entities: apiResp.Entities}, nil
}

// ParseAll splits texts longer than maxChars into parse-sized pieces and
// concatenates the results. Token heads never cross piece boundaries, so
// the temporal walk is unaffected.
func (c *Client) ParseAll(ctx context.Context, text string, maxChars int) (*Result, error) {
	pieces := SplitText(text, maxChars)
	if len(pieces) == 1 {
		return c.Parse(ctx, text)
	}

	combined := &Result{}
	for i, piece := range pieces {
		res, err := c.Parse(ctx, piece)
		if err != nil {
			return nil, fmt.Errorf("parse piece %d/%d: %w", i+1, len(pieces), err)
		}
		combined.Tokens = append(combined.Tokens, res.Tokens...)
		combined.Entities = append(combined.Entities, res.Entities...)
	}
	return combined, nil
}

// Close releases resources.
func (c *Client) Close() {
	c.httpClient.CloseIdleConnections()
}

// RetryableError indicates a transient sidecar failure worth retrying.
type RetryableError struct {
	StatusCode int
	Message    string
}

func (e *RetryableError) Error() string {
	return fmt.Sprintf("retryable error (status %d): %s", e.StatusCode, truncate(e.Message, 200))
}

func truncate(s string, n int) string {
	if len(s) <= n {
		return s
	}
	return s[:n] + "..."
}
