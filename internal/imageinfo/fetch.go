package imageinfo

import (
	"context"
	"fmt"
	"io"
	"log/slog"
	"net/http"
	"time"

	"golang.org/x/sync/semaphore"
)

const defaultFetchTimeout = 30 * time.Second

// maxImageBytes bounds how much of a single image is read
const maxImageBytes = 64 << 20

// Fetcher downloads and decodes tile images with bounded concurrency
type Fetcher struct {
	httpClient *http.Client
	sem        *semaphore.Weighted
	logger     *slog.Logger
}

// NewFetcher creates a fetcher allowing at most concurrency downloads at once
func NewFetcher(httpClient *http.Client, concurrency int, logger *slog.Logger) *Fetcher {
	if httpClient == nil {
		httpClient = &http.Client{Timeout: defaultFetchTimeout}
	}
	if concurrency < 1 {
		concurrency = 1
	}
	if logger == nil {
		logger = slog.Default()
	}
	return &Fetcher{
		httpClient: httpClient,
		sem:        semaphore.NewWeighted(int64(concurrency)),
		logger:     logger,
	}
}

// Fetch downloads the image at url and decodes it for display
func (f *Fetcher) Fetch(ctx context.Context, url string) (*Decoded, error) {
	if err := f.sem.Acquire(ctx, 1); err != nil {
		return nil, err
	}
	defer f.sem.Release(1)

	req, err := http.NewRequestWithContext(ctx, http.MethodGet, url, nil)
	if err != nil {
		return nil, fmt.Errorf("failed to create request: %w", err)
	}

	f.logger.Debug("image request", "url", url)

	resp, err := f.httpClient.Do(req)
	if err != nil {
		return nil, fmt.Errorf("request failed: %w", err)
	}
	defer resp.Body.Close()

	if resp.StatusCode < 200 || resp.StatusCode > 299 {
		return nil, fmt.Errorf("unexpected status: %d", resp.StatusCode)
	}

	decoded, err := Decode(io.LimitReader(resp.Body, maxImageBytes))
	if err != nil {
		f.logger.Debug("image decode failed", "url", url, "error", err)
		return nil, err
	}
	return decoded, nil
}
