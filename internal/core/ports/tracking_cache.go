package ports

import (
	"context"
	"time"
)

// TrackingCache stores serialized public tracking views keyed by tracking
// number. Cache failures must never fail a lookup; callers log and fall
// through to the store.
type TrackingCache interface {
	// Get returns ok=false on a miss.
	Get(ctx context.Context, trackingNumber string) (payload []byte, ok bool, err error)
	Set(ctx context.Context, trackingNumber string, payload []byte, ttl time.Duration) error
	Invalidate(ctx context.Context, trackingNumbers ...string) error
	InvalidateAll(ctx context.Context) error
}
