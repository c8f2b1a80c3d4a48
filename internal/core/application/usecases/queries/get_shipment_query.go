package queries

import (
	"context"
	"errors"

	"shiptrack/internal/core/domain/model/access"
	"shiptrack/internal/core/domain/model/kernel"
	"shiptrack/internal/core/ports"
	"shiptrack/internal/pkg/guard"
)

var ErrGetShipmentQueryIsNotConstructed = errors.New(
	"GetShipmentQuery must be created via NewGetShipmentQuery constructor",
)

// GetShipmentQuery fetches one shipment on behalf of principal. Couriers are
// limited to their own assignments.
type GetShipmentQuery struct {
	principal  access.Principal
	shipmentID kernel.UUID

	guard guard.ConstructorGuard
}

func NewGetShipmentQuery(principal access.Principal, shipmentID kernel.UUID) (GetShipmentQuery, error) {
	if err := shipmentID.Validate(); err != nil {
		return GetShipmentQuery{}, err
	}
	return GetShipmentQuery{
		principal:  principal,
		shipmentID: shipmentID,
		guard:      guard.NewConstructorGuard(),
	}, nil
}

func (q GetShipmentQuery) Validate() error {
	return q.guard.Validate(ErrGetShipmentQueryIsNotConstructed)
}

// GetShipmentQueryHandler reads through repositories outside any
// transaction.
type GetShipmentQueryHandler struct {
	uowFactory ports.UnitOfWorkFactory
}

func NewGetShipmentQueryHandler(uowFactory ports.UnitOfWorkFactory) GetShipmentQueryHandler {
	return GetShipmentQueryHandler{uowFactory: uowFactory}
}

func (h GetShipmentQueryHandler) Handle(ctx context.Context, query GetShipmentQuery) (ShipmentView, error) {
	if err := query.Validate(); err != nil {
		return ShipmentView{}, err
	}

	uow := h.uowFactory.Create()
	s, err := scopedShipment(ctx, uow.ShipmentRepository(), query.principal, query.shipmentID)
	if err != nil {
		return ShipmentView{}, err
	}
	names, err := parties(ctx, uow, s)
	if err != nil {
		return ShipmentView{}, err
	}
	return newShipmentView(s, names), nil
}
