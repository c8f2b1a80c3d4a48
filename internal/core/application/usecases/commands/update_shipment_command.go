package commands

import (
	"context"
	"errors"
	"time"

	"shiptrack/internal/core/domain/model/kernel"
	"shiptrack/internal/pkg/guard"
)

var ErrUpdateShipmentCommandIsNotConstructed = errors.New(
	"UpdateShipmentCommand must be created via NewUpdateShipmentCommand constructor",
)

// UpdateShipmentCommand edits a shipment. Setting a different courier
// appends an Assigned event; clearing or keeping the courier does not.
type UpdateShipmentCommand struct { //nolint:recvcheck //using for validation
	shipmentID kernel.UUID
	input      ShipmentInput

	guard guard.ConstructorGuard
}

func NewUpdateShipmentCommand(shipmentID kernel.UUID, input ShipmentInput) (UpdateShipmentCommand, error) {
	if err := shipmentID.Validate(); err != nil {
		return UpdateShipmentCommand{}, err
	}
	return UpdateShipmentCommand{
		shipmentID: shipmentID,
		input:      input,
		guard:      guard.NewConstructorGuard(),
	}, nil
}

func (c UpdateShipmentCommand) Validate() error {
	return c.guard.Validate(ErrUpdateShipmentCommandIsNotConstructed)
}

func (c UpdateShipmentCommand) ShipmentID() kernel.UUID {
	return c.shipmentID
}

func (c UpdateShipmentCommand) Input() ShipmentInput {
	return c.input
}

type UpdateShipmentCommandHandler struct {
	uowFactory ShipmentUoWFactory
}

func NewUpdateShipmentCommandHandler(uowFactory ShipmentUoWFactory) UpdateShipmentCommandHandler {
	return UpdateShipmentCommandHandler{uowFactory: uowFactory}
}

func (h *UpdateShipmentCommandHandler) Handle(ctx context.Context, cmd UpdateShipmentCommand) error {
	if err := cmd.Validate(); err != nil {
		return err
	}
	input := cmd.Input()

	uow := h.uowFactory.Create()
	if err := uow.Begin(ctx); err != nil {
		return err
	}

	defer func() {
		_ = uow.Rollback(ctx)
	}()

	shipmentRepo := uow.ShipmentRepository()
	aggregate, err := shipmentRepo.Get(ctx, cmd.ShipmentID())
	if err != nil {
		return err
	}

	if _, err := uow.CustomerRepository().Get(ctx, input.CustomerID); err != nil {
		return invalidReference("customer_id", err)
	}
	if input.CourierID != nil {
		if _, err := uow.CourierRepository().Get(ctx, *input.CourierID); err != nil {
			return invalidReference("courier_id", err)
		}
	}

	details := input.details(aggregate.Details().RequestedDate)
	if err := aggregate.Update(details, input.CourierID, time.Now()); err != nil {
		return err
	}

	if err := shipmentRepo.Update(ctx, aggregate); err != nil {
		return err
	}

	return uow.Commit(ctx)
}
