package commands

import (
	"context"
	"errors"
	"time"

	"shiptrack/internal/core/domain/model/admin"
	"shiptrack/internal/core/domain/model/kernel"
	"shiptrack/internal/core/ports"
	"shiptrack/internal/pkg/errs"
	"shiptrack/internal/pkg/guard"
)

var ErrCreateAdminCommandIsNotConstructed = errors.New(
	"CreateAdminCommand must be created via NewCreateAdminCommand constructor",
)

// CreateAdminCommand provisions a back-office account. There is no HTTP
// route for it; the CLI and the seeder use it.
type CreateAdminCommand struct { //nolint:recvcheck //using for validation
	adminID  kernel.UUID
	profile  admin.Profile
	password string

	guard guard.ConstructorGuard
}

func NewCreateAdminCommand(profile admin.Profile, password string) (CreateAdminCommand, error) {
	if password == "" {
		return CreateAdminCommand{}, errs.NewValueIsRequiredError("password")
	}
	return CreateAdminCommand{
		adminID:  kernel.NewUUID(),
		profile:  profile,
		password: password,
		guard:    guard.NewConstructorGuard(),
	}, nil
}

func (c CreateAdminCommand) Validate() error {
	return c.guard.Validate(ErrCreateAdminCommandIsNotConstructed)
}

func (c CreateAdminCommand) AdminID() kernel.UUID {
	return c.adminID
}

func (c CreateAdminCommand) Profile() admin.Profile {
	return c.profile
}

func (c CreateAdminCommand) Password() string {
	return c.password
}

type CreateAdminCommandHandler struct {
	uowFactory AdminUoWFactory
	hasher     ports.PasswordHasher
}

func NewCreateAdminCommandHandler(uowFactory AdminUoWFactory, hasher ports.PasswordHasher) CreateAdminCommandHandler {
	return CreateAdminCommandHandler{uowFactory: uowFactory, hasher: hasher}
}

func (h *CreateAdminCommandHandler) Handle(ctx context.Context, cmd CreateAdminCommand) error {
	if err := cmd.Validate(); err != nil {
		return err
	}

	hash, err := h.hasher.Hash(cmd.Password())
	if err != nil {
		return err
	}

	aggregate, err := admin.NewAdmin(cmd.AdminID(), cmd.Profile(), hash, time.Now())
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

	adminRepo := uow.AdminRepository()
	if err := ensureEmailFree(ctx, adminRepo.GetByEmail, aggregate.Email(), nil); err != nil {
		return err
	}

	if err := adminRepo.Add(ctx, aggregate); err != nil {
		return err
	}

	return uow.Commit(ctx)
}
