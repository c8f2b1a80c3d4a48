package queries

import (
	"context"

	"shiptrack/internal/core/domain/model/courier"
	"shiptrack/internal/core/domain/model/customer"
	"shiptrack/internal/core/domain/model/shipment"
	"shiptrack/internal/core/ports"

	"go.uber.org/zap"
)

// TrackingCacheInvalidator drops cached tracking views after commits that
// change what a view shows. Customer and courier changes alter names on an
// unknown set of views, so they flush the whole cache.
type TrackingCacheInvalidator struct {
	cache  ports.TrackingCache
	logger *zap.Logger
}

var _ ports.CommitObserver = (*TrackingCacheInvalidator)(nil)

func NewTrackingCacheInvalidator(cache ports.TrackingCache, logger *zap.Logger) *TrackingCacheInvalidator {
	return &TrackingCacheInvalidator{
		cache:  cache,
		logger: logger.With(zap.String("component", "tracking_cache")),
	}
}

func (i *TrackingCacheInvalidator) AfterCommit(ctx context.Context, aggregates []any) {
	var numbers []string
	flush := false

	for _, a := range aggregates {
		switch v := a.(type) {
		case *shipment.Shipment:
			numbers = append(numbers, v.TrackingNumber().String())
		case ports.RemovedShipment:
			numbers = append(numbers, v.TrackingNumber)
		case ports.BulkShipmentChange, *customer.Customer, *courier.Courier:
			flush = true
		}
	}

	if flush {
		if err := i.cache.InvalidateAll(ctx); err != nil {
			i.logger.Error("flush tracking cache", zap.Error(err))
		}
		return
	}
	if len(numbers) == 0 {
		return
	}
	if err := i.cache.Invalidate(ctx, numbers...); err != nil {
		i.logger.Error("invalidate tracking views", zap.Strings("tracking_numbers", numbers), zap.Error(err))
	}
}
