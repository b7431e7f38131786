package domain

import "context"

// Lister fetches the authoritative image list from a listing endpoint.
// An empty slice with a nil error means the endpoint answered but had nothing.
type Lister interface {
	ListImages(ctx context.Context) ([]string, error)
}

// Prober tests whether a candidate image exists by loading it
type Prober interface {
	Probe(ctx context.Context, name string) ProbeResult
}
