package commands

import (
	"context"
	"time"

	"shiptrack/internal/core/domain/model/customer"
)

// CreateCustomerCommandHandler persists a new customer after checking that
// the email is not used by another customer.
type CreateCustomerCommandHandler struct {
	uowFactory CustomerUoWFactory
}

func NewCreateCustomerCommandHandler(uowFactory CustomerUoWFactory) CreateCustomerCommandHandler {
	return CreateCustomerCommandHandler{
		uowFactory: uowFactory,
	}
}

func (h *CreateCustomerCommandHandler) Handle(ctx context.Context, cmd CreateCustomerCommand) error {
	if err := cmd.Validate(); err != nil {
		return err
	}

	aggregate, err := customer.NewCustomer(cmd.CustomerID(), cmd.Profile(), time.Now())
	if err != nil {
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
	if err := ensureEmailFree(ctx, customerRepo.GetByEmail, aggregate.Email(), nil); err != nil {
		return err
	}

	if err := customerRepo.Add(ctx, aggregate); err != nil {
		return err
	}

	return uow.Commit(ctx)
}
