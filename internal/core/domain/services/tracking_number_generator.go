package services

import (
	"context"
	"crypto/rand"
	"fmt"
	"io"

	"shiptrack/internal/core/domain/model/shipment"
)

// TrackingNumberTaken reports whether a candidate is already used by a
// stored shipment.
type TrackingNumberTaken func(ctx context.Context, candidate shipment.TrackingNumber) (bool, error)

// TrackingNumberGenerator draws tracking numbers until one is free.
//
// There is no retry limit: with 36^8 candidates a long run of collisions
// means the store is broken, and the caller's context bounds the loop.
type TrackingNumberGenerator struct {
	random io.Reader
}

// NewTrackingNumberGenerator uses crypto/rand when random is nil.
func NewTrackingNumberGenerator(random io.Reader) TrackingNumberGenerator {
	if random == nil {
		random = rand.Reader
	}
	return TrackingNumberGenerator{random: random}
}

func (g TrackingNumberGenerator) Generate(ctx context.Context, taken TrackingNumberTaken) (shipment.TrackingNumber, error) {
	random := g.random
	if random == nil {
		random = rand.Reader
	}

	for {
		if err := ctx.Err(); err != nil {
			return shipment.TrackingNumber{}, err
		}

		candidate, err := shipment.GenerateTrackingNumber(random)
		if err != nil {
			return shipment.TrackingNumber{}, err
		}

		exists, err := taken(ctx, candidate)
		if err != nil {
			return shipment.TrackingNumber{}, fmt.Errorf("check tracking number %s: %w", candidate, err)
		}
		if !exists {
			return candidate, nil
		}
	}
}
