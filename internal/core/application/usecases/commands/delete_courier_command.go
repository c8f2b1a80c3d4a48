package commands

import (
	"context"
	"errors"

	"shiptrack/internal/core/domain/model/kernel"
	"shiptrack/internal/pkg/guard"
)

var ErrDeleteCourierCommandIsNotConstructed = errors.New(
	"DeleteCourierCommand must be created via NewDeleteCourierCommand constructor",
)

type DeleteCourierCommand struct { //nolint:recvcheck //using for validation
	courierID kernel.UUID

	guard guard.ConstructorGuard
}

func NewDeleteCourierCommand(courierID kernel.UUID) (DeleteCourierCommand, error) {
	if err := courierID.Validate(); err != nil {
		return DeleteCourierCommand{}, err
	}
	return DeleteCourierCommand{courierID: courierID, guard: guard.NewConstructorGuard()}, nil
}

func (c DeleteCourierCommand) Validate() error {
	return c.guard.Validate(ErrDeleteCourierCommandIsNotConstructed)
}

func (c DeleteCourierCommand) CourierID() kernel.UUID {
	return c.courierID
}

// DeleteCourierCommandHandler removes a courier. Shipments and tracking
// events keep existing with their courier reference cleared; timelines do
// not grow.
type DeleteCourierCommandHandler struct {
	uowFactory CourierUoWFactory
}

func NewDeleteCourierCommandHandler(uowFactory CourierUoWFactory) DeleteCourierCommandHandler {
	return DeleteCourierCommandHandler{uowFactory: uowFactory}
}

func (h *DeleteCourierCommandHandler) Handle(ctx context.Context, cmd DeleteCourierCommand) error {
	if err := cmd.Validate(); err != nil {
		return err
	}

	uow := h.uowFactory.Create()
	if err := uow.Begin(ctx); err != nil {
		return err
	}

	defer func() {
		_ = uow.Rollback(ctx)
	}()

	courierRepo := uow.CourierRepository()
	if _, err := courierRepo.Get(ctx, cmd.CourierID()); err != nil {
		return err
	}

	if err := uow.ShipmentRepository().UnassignCourier(ctx, cmd.CourierID()); err != nil {
		return err
	}

	if err := courierRepo.Delete(ctx, cmd.CourierID()); err != nil {
		return err
	}

	return uow.Commit(ctx)
}
