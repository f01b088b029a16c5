package pipeline

import (
	"context"
	"fmt"
	"io"
	"net/http"
	"time"

	"golang.org/x/time/rate"
)

// Fetcher downloads release documents. A single shared limiter paces all
// requests so scraping stays inside the source site's fair-access policy.
type Fetcher struct {
	httpClient *http.Client
	limiter    *rate.Limiter
	maxBytes   int64
	userAgent  string
}

func NewFetcher(perSecond float64, burst int, maxBytes int64) *Fetcher {
	return &Fetcher{
		httpClient: &http.Client{Timeout: 60 * time.Second},
		limiter:    rate.NewLimiter(rate.Limit(perSecond), burst),
		maxBytes:   maxBytes,
		userAgent:  "aaerminer/1.0",
	}
}

// Fetch downloads a URL, blocking until the rate limiter admits the
// request. Downloads larger than the configured cap are rejected.
func (f *Fetcher) Fetch(ctx context.Context, url string) ([]byte, error) {
	if err := f.limiter.Wait(ctx); err != nil {
		return nil, fmt.Errorf("rate limit wait: %w", err)
	}

	req, err := http.NewRequestWithContext(ctx, http.MethodGet, url, nil)
	if err != nil {
		return nil, fmt.Errorf("create request: %w", err)
	}
	req.Header.Set("User-Agent", f.userAgent)

	resp, err := f.httpClient.Do(req)
	if err != nil {
		return nil, fmt.Errorf("fetch %s: %w", url, err)
	}
	defer resp.Body.Close()

	if resp.StatusCode != http.StatusOK {
		return nil, fmt.Errorf("fetch %s: status %d", url, resp.StatusCode)
	}

	data, err := io.ReadAll(io.LimitReader(resp.Body, f.maxBytes+1))
	if err != nil {
		return nil, fmt.Errorf("read body: %w", err)
	}
	if int64(len(data)) > f.maxBytes {
		return nil, fmt.Errorf("fetch %s: document exceeds %d bytes", url, f.maxBytes)
	}
	return data, nil
}
