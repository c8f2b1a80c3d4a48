package commands

import (
	"errors"

	"shiptrack/internal/core/domain/model/customer"
	"shiptrack/internal/core/domain/model/kernel"
	"shiptrack/internal/pkg/guard"
)

var ErrUpdateCustomerCommandIsNotConstructed = errors.New(
	"UpdateCustomerCommand must be created via NewUpdateCustomerCommand constructor",
)

type UpdateCustomerCommand struct { //nolint:recvcheck //using for validation
	customerID kernel.UUID
	profile    customer.Profile

	guard guard.ConstructorGuard
}

func NewUpdateCustomerCommand(customerID kernel.UUID, profile customer.Profile) (UpdateCustomerCommand, error) {
	if err := customerID.Validate(); err != nil {
		return UpdateCustomerCommand{}, err
	}

	return UpdateCustomerCommand{
		customerID: customerID,
		profile:    profile,
		guard:      guard.NewConstructorGuard(),
	}, nil
}

func (c UpdateCustomerCommand) Validate() error {
	return c.guard.Validate(ErrUpdateCustomerCommandIsNotConstructed)
}

func (c UpdateCustomerCommand) CustomerID() kernel.UUID {
	return c.customerID
}

func (c UpdateCustomerCommand) Profile() customer.Profile {
	return c.profile
}
