package commands

import (
	"errors"

	"shiptrack/internal/core/domain/model/courier"
	"shiptrack/internal/core/domain/model/kernel"
	"shiptrack/internal/pkg/guard"
)

var ErrCreateCourierCommandIsNotConstructed = errors.New(
	"CreateCourierCommand must be created via NewCreateCourierCommand constructor",
)

// CreateCourierCommand registers a courier account.
//
// When password is empty the handler generates a temporary password and
// returns it once in CreateCourierResult; admins hand it to the courier.
// Seeding passes an explicit password instead.
//
// Example:
//
//	cmd, _ := NewCreateCourierCommand(courier.Profile{
//	    FirstName: "Ana", LastName: "Lopez", Email: "ana@example.com",
//	    Phone: "555-0100", Region: "North",
//	}, "")
//
//	result, err := handler.Handle(ctx, cmd)
//	if err != nil {
//	    return fmt.Errorf("courier registration failed: %w", err)
//	}
//	fmt.Println("temporary password:", result.TempPassword)
type CreateCourierCommand struct { //nolint:recvcheck //using for validation
	courierID kernel.UUID
	profile   courier.Profile
	password  string

	guard guard.ConstructorGuard
}

func NewCreateCourierCommand(profile courier.Profile, password string) (CreateCourierCommand, error) {
	return CreateCourierCommand{
		courierID: kernel.NewUUID(),
		profile:   profile,
		password:  password,
		guard:     guard.NewConstructorGuard(),
	}, nil
}

// Validate ensures the command was created through the constructor.
func (c CreateCourierCommand) Validate() error {
	return c.guard.Validate(ErrCreateCourierCommandIsNotConstructed)
}

func (c CreateCourierCommand) CourierID() kernel.UUID {
	return c.courierID
}

func (c CreateCourierCommand) Profile() courier.Profile {
	return c.profile
}

// Password is the explicit password, empty when one must be generated.
func (c CreateCourierCommand) Password() string {
	return c.password
}

// CreateCourierResult carries the generated password, if any.
type CreateCourierResult struct {
	CourierID    kernel.UUID
	TempPassword string
}
