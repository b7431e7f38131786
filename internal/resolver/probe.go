package resolver

import (
	"context"
	"fmt"
	"io"
	"log/slog"
	"net/http"
	"time"

	"github.com/mmcdole/folio/internal/domain"
	"github.com/mmcdole/folio/internal/imageinfo"
)

// DefaultProbeTimeout bounds a single candidate load
const DefaultProbeTimeout = time.Second

// maxProbeBytes bounds how much of a candidate is read to decode its header
const maxProbeBytes = 1 << 20

// HTTPProber tests candidates by loading them and decoding the image header
type HTTPProber struct {
	paths      Paths
	timeout    time.Duration
	httpClient *http.Client
	logger     *slog.Logger
}

// NewHTTPProber creates a prober for images under paths
func NewHTTPProber(paths Paths, timeout time.Duration, httpClient *http.Client, logger *slog.Logger) *HTTPProber {
	if timeout <= 0 {
		timeout = DefaultProbeTimeout
	}
	if httpClient == nil {
		httpClient = http.DefaultClient
	}
	if logger == nil {
		logger = slog.Default()
	}
	return &HTTPProber{paths: paths, timeout: timeout, httpClient: httpClient, logger: logger}
}

// Probe races the load of one candidate against the probe timeout.
// The losing load is cancelled through its context.
func (p *HTTPProber) Probe(ctx context.Context, name string) domain.ProbeResult {
	ctx, cancel := context.WithCancel(ctx)
	defer cancel()

	done := make(chan domain.ProbeResult, 1)
	go func() {
		done <- p.load(ctx, name)
	}()

	timer := time.NewTimer(p.timeout)
	defer timer.Stop()

	select {
	case res := <-done:
		return res
	case <-timer.C:
		return domain.ProbeResult{Name: name, Status: domain.ProbeTimedOut, Err: domain.ErrProbeTimeout}
	case <-ctx.Done():
		return domain.ProbeResult{Name: name, Status: domain.ProbeErrored, Err: ctx.Err()}
	}
}

// load fetches the candidate and reports whether it decodes as an image
func (p *HTTPProber) load(ctx context.Context, name string) domain.ProbeResult {
	failed := func(err error) domain.ProbeResult {
		return domain.ProbeResult{Name: name, Status: domain.ProbeErrored, Err: err}
	}

	req, err := http.NewRequestWithContext(ctx, http.MethodGet, p.paths.Image(name), nil)
	if err != nil {
		return failed(fmt.Errorf("failed to create request: %w", err))
	}

	resp, err := p.httpClient.Do(req)
	if err != nil {
		return failed(fmt.Errorf("request failed: %w", err))
	}
	defer resp.Body.Close()

	if resp.StatusCode < 200 || resp.StatusCode > 299 {
		return failed(fmt.Errorf("unexpected status: %d", resp.StatusCode))
	}

	cfg, err := imageinfo.DecodeConfig(io.LimitReader(resp.Body, maxProbeBytes))
	if err != nil {
		return failed(err)
	}
	return domain.ProbeResult{Name: name, Status: domain.ProbeLoaded, Width: cfg.Width, Height: cfg.Height}
}
