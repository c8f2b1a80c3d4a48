package commands

import (
	"context"
	"errors"
	"time"

	"shiptrack/internal/core/domain/model/shipment"
	"shiptrack/internal/core/domain/services"
	"shiptrack/internal/pkg/errs"
)

// TrackingNumberSource draws unused tracking numbers.
type TrackingNumberSource interface {
	Generate(ctx context.Context, taken services.TrackingNumberTaken) (shipment.TrackingNumber, error)
}

// CreateShipmentCommandHandler stores a shipment together with its opening
// timeline (Created, plus Assigned when a courier is given).
//
// The tracking number is checked for availability before insert, but two
// concurrent creations can still draw the same one. The unique index then
// rejects the loser, and the whole transaction is replayed with a fresh
// number until it commits or ctx ends.
type CreateShipmentCommandHandler struct {
	uowFactory ShipmentUoWFactory
	numbers    TrackingNumberSource
}

func NewCreateShipmentCommandHandler(uowFactory ShipmentUoWFactory, numbers TrackingNumberSource) CreateShipmentCommandHandler {
	return CreateShipmentCommandHandler{
		uowFactory: uowFactory,
		numbers:    numbers,
	}
}

func (h *CreateShipmentCommandHandler) Handle(ctx context.Context, cmd CreateShipmentCommand) (CreateShipmentResult, error) {
	if err := cmd.Validate(); err != nil {
		return CreateShipmentResult{}, err
	}

	for {
		result, err := h.create(ctx, cmd)
		if !isTrackingNumberCollision(err) {
			return result, err
		}
		if ctxErr := ctx.Err(); ctxErr != nil {
			return CreateShipmentResult{}, ctxErr
		}
	}
}

func (h *CreateShipmentCommandHandler) create(ctx context.Context, cmd CreateShipmentCommand) (CreateShipmentResult, error) {
	input := cmd.Input()

	uow := h.uowFactory.Create()
	if err := uow.Begin(ctx); err != nil {
		return CreateShipmentResult{}, err
	}

	defer func() {
		_ = uow.Rollback(ctx)
	}()

	if _, err := uow.CustomerRepository().Get(ctx, input.CustomerID); err != nil {
		return CreateShipmentResult{}, invalidReference("customer_id", err)
	}
	if input.CourierID != nil {
		if _, err := uow.CourierRepository().Get(ctx, *input.CourierID); err != nil {
			return CreateShipmentResult{}, invalidReference("courier_id", err)
		}
	}

	shipmentRepo := uow.ShipmentRepository()
	number, err := h.numbers.Generate(ctx, shipmentRepo.TrackingNumberExists)
	if err != nil {
		return CreateShipmentResult{}, err
	}

	now := time.Now()
	aggregate, err := shipment.NewShipment(cmd.ShipmentID(), number, input.details(now), input.CourierID, now)
	if err != nil {
		return CreateShipmentResult{}, err
	}

	if err := shipmentRepo.Add(ctx, aggregate); err != nil {
		return CreateShipmentResult{}, err
	}

	if err := uow.Commit(ctx); err != nil {
		return CreateShipmentResult{}, err
	}

	return CreateShipmentResult{
		ShipmentID:     aggregate.ID(),
		TrackingNumber: aggregate.TrackingNumber().String(),
	}, nil
}

func isTrackingNumberCollision(err error) bool {
	var exists *errs.ObjectAlreadyExistsError
	return errors.As(err, &exists) && exists.ParamName == "tracking_number"
}
