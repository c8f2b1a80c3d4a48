package queries

import (
	"context"
	"encoding/json"
	"errors"
	"time"

	"shiptrack/internal/core/domain/model/shipment"
	"shiptrack/internal/core/ports"
	"shiptrack/internal/pkg/guard"

	"go.uber.org/zap"
)

var ErrTrackShipmentQueryIsNotConstructed = errors.New(
	"TrackShipmentQuery must be created via NewTrackShipmentQuery constructor",
)

// TrackShipmentQuery is the anonymous lookup by tracking number. Matching
// is exact and case-sensitive.
type TrackShipmentQuery struct {
	number shipment.TrackingNumber

	guard guard.ConstructorGuard
}

func NewTrackShipmentQuery(trackingNumber string) (TrackShipmentQuery, error) {
	number, err := shipment.NewTrackingNumber(trackingNumber)
	if err != nil {
		return TrackShipmentQuery{}, err
	}
	return TrackShipmentQuery{number: number, guard: guard.NewConstructorGuard()}, nil
}

func (q TrackShipmentQuery) Validate() error {
	return q.guard.Validate(ErrTrackShipmentQueryIsNotConstructed)
}

// TrackShipmentQueryHandler serves lookups from the tracking cache when it
// can. Cache failures are logged and the store is used instead.
type TrackShipmentQueryHandler struct {
	uowFactory ports.UnitOfWorkFactory
	cache      ports.TrackingCache
	ttl        time.Duration
	logger     *zap.Logger
}

func NewTrackShipmentQueryHandler(
	uowFactory ports.UnitOfWorkFactory,
	cache ports.TrackingCache,
	ttl time.Duration,
	logger *zap.Logger,
) TrackShipmentQueryHandler {
	return TrackShipmentQueryHandler{
		uowFactory: uowFactory,
		cache:      cache,
		ttl:        ttl,
		logger:     logger.With(zap.String("component", "tracking")),
	}
}

func (h TrackShipmentQueryHandler) Handle(ctx context.Context, query TrackShipmentQuery) (ShipmentView, error) {
	if err := query.Validate(); err != nil {
		return ShipmentView{}, err
	}
	key := query.number.String()

	if view, ok := h.cached(ctx, key); ok {
		return view, nil
	}

	uow := h.uowFactory.Create()
	s, err := uow.ShipmentRepository().GetByTrackingNumber(ctx, query.number)
	if err != nil {
		return ShipmentView{}, err
	}
	names, err := parties(ctx, uow, s)
	if err != nil {
		return ShipmentView{}, err
	}
	view := newShipmentView(s, names)

	payload, err := json.Marshal(view)
	if err != nil {
		h.logger.Warn("encode tracking view", zap.String("tracking_number", key), zap.Error(err))
		return view, nil
	}
	if err := h.cache.Set(ctx, key, payload, h.ttl); err != nil {
		h.logger.Warn("cache tracking view", zap.String("tracking_number", key), zap.Error(err))
	}
	return view, nil
}

func (h TrackShipmentQueryHandler) cached(ctx context.Context, key string) (ShipmentView, bool) {
	payload, ok, err := h.cache.Get(ctx, key)
	if err != nil {
		h.logger.Warn("read tracking cache", zap.String("tracking_number", key), zap.Error(err))
		return ShipmentView{}, false
	}
	if !ok {
		return ShipmentView{}, false
	}

	var view ShipmentView
	if err := json.Unmarshal(payload, &view); err != nil {
		h.logger.Warn("decode cached tracking view", zap.String("tracking_number", key), zap.Error(err))
		return ShipmentView{}, false
	}
	return view, true
}
