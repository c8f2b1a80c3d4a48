package commands

import (
	"context"
	"time"

	"shiptrack/internal/core/domain/model/courier"
	"shiptrack/internal/core/ports"
)

// PasswordGenerator produces a temporary password.
type PasswordGenerator func() (string, error)

// CreateCourierCommandHandler handles courier registration: email uniqueness,
// password issuing and hashing, persistence.
type CreateCourierCommandHandler struct {
	uowFactory CourierUoWFactory
	hasher     ports.PasswordHasher
	generate   PasswordGenerator
}

// NewCreateCourierCommandHandler creates a handler for courier registration.
func NewCreateCourierCommandHandler(
	uowFactory CourierUoWFactory,
	hasher ports.PasswordHasher,
	generate PasswordGenerator,
) CreateCourierCommandHandler {
	return CreateCourierCommandHandler{
		uowFactory: uowFactory,
		hasher:     hasher,
		generate:   generate,
	}
}

// Handle processes the courier creation command. Nothing is persisted when
// the email is taken or the profile is invalid.
func (h *CreateCourierCommandHandler) Handle(ctx context.Context, cmd CreateCourierCommand) (CreateCourierResult, error) {
	if err := cmd.Validate(); err != nil {
		return CreateCourierResult{}, err
	}

	password := cmd.Password()
	var temp string
	if password == "" {
		generated, err := h.generate()
		if err != nil {
			return CreateCourierResult{}, err
		}
		password, temp = generated, generated
	}

	hash, err := h.hasher.Hash(password)
	if err != nil {
		return CreateCourierResult{}, err
	}

	aggregate, err := courier.NewCourier(cmd.CourierID(), cmd.Profile(), hash, time.Now())
	if err != nil {
		return CreateCourierResult{}, err
	}

	uow := h.uowFactory.Create()
	if err := uow.Begin(ctx); err != nil {
		return CreateCourierResult{}, err
	}

	defer func() {
		_ = uow.Rollback(ctx)
	}()

	courierRepo := uow.CourierRepository()
	if err := ensureEmailFree(ctx, courierRepo.GetByEmail, aggregate.Email(), nil); err != nil {
		return CreateCourierResult{}, err
	}

	if err := courierRepo.Add(ctx, aggregate); err != nil {
		return CreateCourierResult{}, err
	}

	if err := uow.Commit(ctx); err != nil {
		return CreateCourierResult{}, err
	}

	return CreateCourierResult{CourierID: aggregate.ID(), TempPassword: temp}, nil
}
