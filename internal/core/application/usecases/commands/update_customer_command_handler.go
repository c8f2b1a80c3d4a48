package commands

import (
	"context"
	"time"
)

type UpdateCustomerCommandHandler struct {
	uowFactory CustomerUoWFactory
}

func NewUpdateCustomerCommandHandler(uowFactory CustomerUoWFactory) UpdateCustomerCommandHandler {
	return UpdateCustomerCommandHandler{
		uowFactory: uowFactory,
	}
}

// Handle replaces the customer's profile. Changing the email to one held by
// another customer is a conflict.
func (h *UpdateCustomerCommandHandler) Handle(ctx context.Context, cmd UpdateCustomerCommand) error {
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

	customerRepo := uow.CustomerRepository()
	aggregate, err := customerRepo.Get(ctx, cmd.CustomerID())
	if err != nil {
		return err
	}

	if err := aggregate.Update(cmd.Profile(), time.Now()); err != nil {
		return err
	}

	id := aggregate.ID()
	if err := ensureEmailFree(ctx, customerRepo.GetByEmail, aggregate.Email(), &id); err != nil {
		return err
	}

	if err := customerRepo.Update(ctx, aggregate); err != nil {
		return err
	}

	return uow.Commit(ctx)
}
