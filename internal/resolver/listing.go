package resolver

import (
	"context"
	"encoding/json"
	"fmt"
	"io"
	"log/slog"
	"net/http"

	"github.com/mmcdole/folio/internal/domain"
)

// maxListingBytes bounds the listing response body
const maxListingBytes = 4 << 20

// HTTPLister reads the image list from a JSON listing endpoint
type HTTPLister struct {
	url        string
	httpClient *http.Client
	logger     *slog.Logger
}

// NewHTTPLister creates a lister for the endpoint at url
func NewHTTPLister(url string, httpClient *http.Client, logger *slog.Logger) *HTTPLister {
	if httpClient == nil {
		httpClient = http.DefaultClient
	}
	if logger == nil {
		logger = slog.Default()
	}
	return &HTTPLister{url: url, httpClient: httpClient, logger: logger}
}

// ListImages performs the single listing request.
// Any transport, status or decoding problem is reported as ErrListingUnavailable.
func (l *HTTPLister) ListImages(ctx context.Context) ([]string, error) {
	req, err := http.NewRequestWithContext(ctx, http.MethodGet, l.url, nil)
	if err != nil {
		return nil, fmt.Errorf("%w: failed to create request: %v", domain.ErrListingUnavailable, err)
	}
	req.Header.Set("Accept", "application/json")

	l.logger.Debug("listing request", "url", l.url)

	resp, err := l.httpClient.Do(req)
	if err != nil {
		return nil, fmt.Errorf("%w: request failed: %v", domain.ErrListingUnavailable, err)
	}
	defer resp.Body.Close()

	if resp.StatusCode < 200 || resp.StatusCode > 299 {
		return nil, fmt.Errorf("%w: unexpected status: %d", domain.ErrListingUnavailable, resp.StatusCode)
	}

	body, err := io.ReadAll(io.LimitReader(resp.Body, maxListingBytes))
	if err != nil {
		return nil, fmt.Errorf("%w: failed to read response: %v", domain.ErrListingUnavailable, err)
	}

	var names []string
	if err := json.Unmarshal(body, &names); err != nil {
		return nil, fmt.Errorf("%w: failed to parse response: %v", domain.ErrListingUnavailable, err)
	}
	return names, nil
}
