// Package filings resolves a company name to its most recent 10-K filing
// via a full-text filings search service, caching lookups in memory.
package filings

import (
	"bytes"
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"net/http"
	"time"

	gocache "github.com/patrickmn/go-cache"
)

// ErrNoFilings reports that the query matched no filings at all.
var ErrNoFilings = errors.New("filings: no filings matched query")

// Filing is the slice of a filing record the extraction pipeline needs.
type Filing struct {
	CIK         string `json:"cik"`
	CompanyName string `json:"companyName"`
	Ticker      string `json:"ticker"`
}

// Client queries the filings search API. Results are cached per company
// name so retried jobs for the same respondent do not burn quota.
type Client struct {
	baseURL    string
	apiKey     string
	httpClient *http.Client
	cache      *gocache.Cache
}

func NewClient(baseURL, apiKey string, cacheTTL time.Duration) *Client {
	return &Client{
		baseURL:    baseURL,
		apiKey:     apiKey,
		httpClient: &http.Client{Timeout: 30 * time.Second},
		cache:      gocache.New(cacheTTL, 2*cacheTTL),
	}
}

type query struct {
	Query string `json:"query"`
	From  string `json:"from"`
	Size  string `json:"size"`
	Sort  []map[string]map[string]string `json:"sort"`
}

type searchResponse struct {
	Filings []Filing `json:"filings"`
}

// LatestTenK returns the newest 10-K filed by the named company within the
// search window. A cached entry is returned without touching the network.
func (c *Client) LatestTenK(ctx context.Context, companyName string) (Filing, error) {
	if cached, ok := c.cache.Get(companyName); ok {
		return cached.(Filing), nil
	}

	q := query{
		Query: fmt.Sprintf(
			`companyName:(%q) AND formType:"10-K" AND filedAt:{1990-12-31 TO 2021-12-31}`,
			companyName,
		),
		From: "0",
		Size: "1",
		Sort: []map[string]map[string]string{
			{"filedAt": {"order": "desc"}},
		},
	}
	body, err := json.Marshal(q)
	if err != nil {
		return Filing{}, fmt.Errorf("marshal query: %w", err)
	}

	req, err := http.NewRequestWithContext(ctx, http.MethodPost, c.baseURL, bytes.NewReader(body))
	if err != nil {
		return Filing{}, fmt.Errorf("create request: %w", err)
	}
	req.Header.Set("Content-Type", "application/json")
	if c.apiKey != "" {
		req.Header.Set("Authorization", c.apiKey)
	}

	resp, err := c.httpClient.Do(req)
	if err != nil {
		return Filing{}, fmt.Errorf("query filings: %w", err)
	}
	defer resp.Body.Close()

	if resp.StatusCode != http.StatusOK {
		msg, _ := io.ReadAll(io.LimitReader(resp.Body, 512))
		return Filing{}, fmt.Errorf("filings search returned %d: %s", resp.StatusCode, string(msg))
	}

	var result searchResponse
	if err := json.NewDecoder(resp.Body).Decode(&result); err != nil {
		return Filing{}, fmt.Errorf("decode filings response: %w", err)
	}
	if len(result.Filings) == 0 {
		return Filing{}, ErrNoFilings
	}

	filing := result.Filings[0]
	c.cache.SetDefault(companyName, filing)
	return filing, nil
}
