package commands

import (
	"context"
	"errors"
	"time"

	"shiptrack/internal/core/domain/model/courier"
	"shiptrack/internal/core/domain/model/kernel"
	"shiptrack/internal/pkg/guard"
)

var ErrUpdateCourierCommandIsNotConstructed = errors.New(
	"UpdateCourierCommand must be created via NewUpdateCourierCommand constructor",
)

// UpdateCourierCommand edits a courier profile. A zero HireDate keeps the
// stored one. Credentials are not touched.
type UpdateCourierCommand struct { //nolint:recvcheck //using for validation
	courierID kernel.UUID
	profile   courier.Profile

	guard guard.ConstructorGuard
}

func NewUpdateCourierCommand(courierID kernel.UUID, profile courier.Profile) (UpdateCourierCommand, error) {
	if err := courierID.Validate(); err != nil {
		return UpdateCourierCommand{}, err
	}
	return UpdateCourierCommand{
		courierID: courierID,
		profile:   profile,
		guard:     guard.NewConstructorGuard(),
	}, nil
}

func (c UpdateCourierCommand) Validate() error {
	return c.guard.Validate(ErrUpdateCourierCommandIsNotConstructed)
}

func (c UpdateCourierCommand) CourierID() kernel.UUID {
	return c.courierID
}

func (c UpdateCourierCommand) Profile() courier.Profile {
	return c.profile
}

type UpdateCourierCommandHandler struct {
	uowFactory CourierUoWFactory
}

func NewUpdateCourierCommandHandler(uowFactory CourierUoWFactory) UpdateCourierCommandHandler {
	return UpdateCourierCommandHandler{uowFactory: uowFactory}
}

func (h *UpdateCourierCommandHandler) Handle(ctx context.Context, cmd UpdateCourierCommand) error {
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
	aggregate, err := courierRepo.Get(ctx, cmd.CourierID())
	if err != nil {
		return err
	}

	if err := aggregate.Update(cmd.Profile(), time.Now()); err != nil {
		return err
	}

	id := aggregate.ID()
	if err := ensureEmailFree(ctx, courierRepo.GetByEmail, aggregate.Email(), &id); err != nil {
		return err
	}

	if err := courierRepo.Update(ctx, aggregate); err != nil {
		return err
	}

	return uow.Commit(ctx)
}
