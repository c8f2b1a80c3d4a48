package commands

import (
	"errors"

	"shiptrack/internal/core/domain/model/customer"
	"shiptrack/internal/core/domain/model/kernel"
	"shiptrack/internal/pkg/guard"
)

var ErrCreateCustomerCommandIsNotConstructed = errors.New(
	"CreateCustomerCommand must be created via NewCreateCustomerCommand constructor",
)

// CreateCustomerCommand registers a customer. Field validation happens in
// the customer aggregate; the command only fixes the new identifier.
type CreateCustomerCommand struct { //nolint:recvcheck //using for validation
	customerID kernel.UUID
	profile    customer.Profile

	guard guard.ConstructorGuard
}

func NewCreateCustomerCommand(profile customer.Profile) (CreateCustomerCommand, error) {
	return CreateCustomerCommand{
		customerID: kernel.NewUUID(),
		profile:    profile,
		guard:      guard.NewConstructorGuard(),
	}, nil
}

func (c CreateCustomerCommand) Validate() error {
	return c.guard.Validate(ErrCreateCustomerCommandIsNotConstructed)
}

func (c CreateCustomerCommand) CustomerID() kernel.UUID {
	return c.customerID
}

func (c CreateCustomerCommand) Profile() customer.Profile {
	return c.profile
}
