package ports

import "context"

// LinkProber checks whether an external URL is reachable.
type LinkProber interface {
	// Probe returns the final HTTP status code for the URL.
	Probe(ctx context.Context, url string) (int, error)
}
