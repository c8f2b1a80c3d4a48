package commands

import (
	"errors"

	"shiptrack/internal/core/domain/model/kernel"
	"shiptrack/internal/pkg/guard"
)

var ErrCreateShipmentCommandIsNotConstructed = errors.New(
	"CreateShipmentCommand must be created via NewCreateShipmentCommand constructor",
)

// CreateShipmentCommand opens a shipment for a customer, optionally already
// assigned to a courier.
type CreateShipmentCommand struct { //nolint:recvcheck //using for validation
	shipmentID kernel.UUID
	input      ShipmentInput

	guard guard.ConstructorGuard
}

func NewCreateShipmentCommand(input ShipmentInput) (CreateShipmentCommand, error) {
	return CreateShipmentCommand{
		shipmentID: kernel.NewUUID(),
		input:      input,
		guard:      guard.NewConstructorGuard(),
	}, nil
}

func (c CreateShipmentCommand) Validate() error {
	return c.guard.Validate(ErrCreateShipmentCommandIsNotConstructed)
}

func (c CreateShipmentCommand) ShipmentID() kernel.UUID {
	return c.shipmentID
}

func (c CreateShipmentCommand) Input() ShipmentInput {
	return c.input
}

// CreateShipmentResult identifies the stored shipment.
type CreateShipmentResult struct {
	ShipmentID     kernel.UUID
	TrackingNumber string
}
