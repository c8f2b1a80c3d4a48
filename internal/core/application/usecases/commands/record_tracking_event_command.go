package commands

import (
	"context"
	"errors"
	"time"

	"shiptrack/internal/core/domain/model/kernel"
	"shiptrack/internal/pkg/guard"
)

var ErrRecordTrackingEventCommandIsNotConstructed = errors.New(
	"RecordTrackingEventCommand must be created via NewRecordTrackingEventCommand constructor",
)

// TrackingEventInput is what a courier reports from the field.
type TrackingEventInput struct {
	Status   string
	Location string
	Notes    string
	ProofURL string
}

// RecordTrackingEventCommand appends a courier-reported event to a shipment
// assigned to that courier.
type RecordTrackingEventCommand struct { //nolint:recvcheck //using for validation
	shipmentID kernel.UUID
	courierID  kernel.UUID
	input      TrackingEventInput

	guard guard.ConstructorGuard
}

func NewRecordTrackingEventCommand(
	shipmentID kernel.UUID,
	courierID kernel.UUID,
	input TrackingEventInput,
) (RecordTrackingEventCommand, error) {
	if err := errors.Join(shipmentID.Validate(), courierID.Validate()); err != nil {
		return RecordTrackingEventCommand{}, err
	}
	return RecordTrackingEventCommand{
		shipmentID: shipmentID,
		courierID:  courierID,
		input:      input,
		guard:      guard.NewConstructorGuard(),
	}, nil
}

func (c RecordTrackingEventCommand) Validate() error {
	return c.guard.Validate(ErrRecordTrackingEventCommandIsNotConstructed)
}

func (c RecordTrackingEventCommand) ShipmentID() kernel.UUID {
	return c.shipmentID
}

func (c RecordTrackingEventCommand) CourierID() kernel.UUID {
	return c.courierID
}

func (c RecordTrackingEventCommand) Input() TrackingEventInput {
	return c.input
}

// RecordTrackingEventCommandHandler loads the shipment through the courier
// scope, so a courier can never learn about, or write to, a shipment that
// is not assigned to them.
type RecordTrackingEventCommandHandler struct {
	uowFactory ShipmentUoWFactory
}

func NewRecordTrackingEventCommandHandler(uowFactory ShipmentUoWFactory) RecordTrackingEventCommandHandler {
	return RecordTrackingEventCommandHandler{uowFactory: uowFactory}
}

func (h *RecordTrackingEventCommandHandler) Handle(ctx context.Context, cmd RecordTrackingEventCommand) error {
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
	aggregate, err := shipmentRepo.GetAssigned(ctx, cmd.ShipmentID(), cmd.CourierID())
	if err != nil {
		return err
	}

	if _, err := aggregate.RecordEvent(
		cmd.CourierID(),
		input.Status,
		input.Location,
		input.Notes,
		input.ProofURL,
		time.Now(),
	); err != nil {
		return err
	}

	if err := shipmentRepo.Update(ctx, aggregate); err != nil {
		return err
	}

	return uow.Commit(ctx)
}
