package ports

import (
	"context"
	"time"
)

// RevokedSessionRepository remembers logged-out session tokens until they
// would have expired anyway.
type RevokedSessionRepository interface {
	// Revoke records tokenID; revoking twice is not an error.
	Revoke(ctx context.Context, tokenID string, expiresAt time.Time) error
	IsRevoked(ctx context.Context, tokenID string) (bool, error)

	// PurgeExpired deletes revocations whose token expired before now and
	// returns how many were removed.
	PurgeExpired(ctx context.Context, now time.Time) (int64, error)
}
