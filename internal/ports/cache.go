package ports

import (
	"context"
	"time"
)

// TrackingCache holds rendered public tracking snapshots keyed by tracking
// number. A miss is (nil, false, nil).
type TrackingCache interface {
	Get(ctx context.Context, trackingNumber string) ([]byte, bool, error)
	Set(ctx context.Context, trackingNumber string, payload []byte, ttl time.Duration) error
	Invalidate(ctx context.Context, trackingNumber string) error
}
