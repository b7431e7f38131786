// Package resolver decides which images the gallery shows.
//
// A listing endpoint is asked first and trusted when it answers with a
// non-empty list. Otherwise the resolver guesses filenames and probes them
// one at a time, keeping those that load before the probe timeout.
package resolver

import (
	"context"
	"fmt"
	"log/slog"

	"github.com/mmcdole/folio/internal/domain"
)

// Defaults for fallback probing
const (
	DefaultTargetCount   = 20
	DefaultMaxCandidates = 500
)

// Source says where a resolved list came from
type Source int

const (
	SourceNone Source = iota
	SourceListing
	SourceProbe
)

func (s Source) String() string {
	switch s {
	case SourceListing:
		return "listing"
	case SourceProbe:
		return "probe"
	default:
		return "none"
	}
}

// Result is the outcome of a resolution
type Result struct {
	IDs     []string
	Source  Source
	Checked int // candidates probed
}

// Options configures a Resolver
type Options struct {
	// Lister is optional; without one the resolver goes straight to probing.
	Lister        domain.Lister
	Prober        domain.Prober
	Candidates    []string
	TargetCount   int
	MaxCandidates int
	Logger        *slog.Logger
}

// Resolver produces the ordered list of image identifiers to display
type Resolver struct {
	lister        domain.Lister
	prober        domain.Prober
	candidates    []string
	targetCount   int
	maxCandidates int
	logger        *slog.Logger
}

// New creates a resolver
func New(opts Options) *Resolver {
	if opts.Candidates == nil {
		opts.Candidates = Candidates()
	}
	if opts.TargetCount <= 0 {
		opts.TargetCount = DefaultTargetCount
	}
	if opts.MaxCandidates <= 0 {
		opts.MaxCandidates = DefaultMaxCandidates
	}
	if opts.Logger == nil {
		opts.Logger = slog.Default()
	}
	return &Resolver{
		lister:        opts.Lister,
		prober:        opts.Prober,
		candidates:    opts.Candidates,
		targetCount:   opts.TargetCount,
		maxCandidates: opts.MaxCandidates,
		logger:        opts.Logger,
	}
}

// Resolve returns the images to display. It returns domain.ErrNoImages when
// nothing was found; callers show the placeholder state for it.
func (r *Resolver) Resolve(ctx context.Context) (Result, error) {
	if r.lister != nil {
		ids, err := r.lister.ListImages(ctx)
		switch {
		case err != nil:
			r.logger.Info("listing unavailable, probing candidates", "error", err)
		case len(ids) == 0:
			r.logger.Info("listing empty, probing candidates")
		default:
			r.logger.Info("images listed", "count", len(ids))
			return Result{IDs: ids, Source: SourceListing}, nil
		}
	}

	if err := ctx.Err(); err != nil {
		return Result{}, err
	}
	return r.probe(ctx)
}

// interrupted ends probing early. Images found before ctx ended are kept.
func (r *Resolver) interrupted(res Result, err error) (Result, error) {
	if len(res.IDs) == 0 {
		return res, err
	}
	r.logger.Info("probing interrupted, keeping found images", "found", len(res.IDs), "checked", res.Checked, "error", err)
	return res, nil
}

// probe checks candidates sequentially until the target count or the budget is reached
func (r *Resolver) probe(ctx context.Context) (Result, error) {
	if r.prober == nil {
		return Result{Source: SourceProbe}, fmt.Errorf("no prober configured: %w", domain.ErrNoImages)
	}

	res := Result{Source: SourceProbe}
	for _, name := range r.candidates {
		if len(res.IDs) >= r.targetCount || res.Checked >= r.maxCandidates {
			break
		}
		if err := ctx.Err(); err != nil {
			return r.interrupted(res, err)
		}

		probe := r.prober.Probe(ctx, name)
		res.Checked++

		if probe.OK() {
			res.IDs = append(res.IDs, name)
			r.logger.Debug("probe found image", "name", name, "width", probe.Width, "height", probe.Height)
			continue
		}
		if err := ctx.Err(); err != nil {
			return r.interrupted(res, err)
		}
		r.logger.Debug("probe missed", "name", name, "status", probe.Status.String(), "error", probe.Err)
	}

	r.logger.Info("probing finished", "found", len(res.IDs), "checked", res.Checked)
	if len(res.IDs) == 0 {
		return res, domain.ErrNoImages
	}
	return res, nil
}
