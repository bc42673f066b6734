package ports

import "context"

// ListingCache caches the rendered admin poll listing. Poll mutations
// invalidate it so the view layer re-reads on the next request.
// Implementations must treat a cache miss as ("", nil).
type ListingCache interface {
	GetListing(ctx context.Context) (string, error)
	SetListing(ctx context.Context, payload string) error
	InvalidateListing(ctx context.Context) error
}
