package commands

import (
	"context"
	"errors"
	"strings"

	"shiptrack/internal/core/domain/model/access"
	"shiptrack/internal/core/domain/model/kernel"
	"shiptrack/internal/core/ports"
	"shiptrack/internal/pkg/auth"
	"shiptrack/internal/pkg/errs"
	"shiptrack/internal/pkg/guard"
)

var ErrLoginCommandIsNotConstructed = errors.New(
	"LoginCommand must be created via NewLoginCommand constructor",
)

// LoginCommand authenticates an admin or a courier by email and password.
type LoginCommand struct { //nolint:recvcheck //using for validation
	role     access.Role
	email    string
	password string

	guard guard.ConstructorGuard
}

func NewLoginCommand(role access.Role, email, password string) (LoginCommand, error) {
	if role != access.Admin && role != access.Courier {
		return LoginCommand{}, errs.NewValueIsInvalidError("role")
	}

	var problems []error
	if strings.TrimSpace(email) == "" {
		problems = append(problems, errs.NewValueIsRequiredError("email"))
	}
	if password == "" {
		problems = append(problems, errs.NewValueIsRequiredError("password"))
	}
	if err := errors.Join(problems...); err != nil {
		return LoginCommand{}, err
	}

	return LoginCommand{
		role:     role,
		email:    email,
		password: password,
		guard:    guard.NewConstructorGuard(),
	}, nil
}

func (c LoginCommand) Validate() error {
	return c.guard.Validate(ErrLoginCommandIsNotConstructed)
}

func (c LoginCommand) Role() access.Role {
	return c.role
}

func (c LoginCommand) Email() string {
	return c.email
}

func (c LoginCommand) Password() string {
	return c.password
}

// SessionIssuer signs a session for an authenticated principal.
type SessionIssuer interface {
	Issue(subject, role string) (auth.Session, error)
}

type LoginResult struct {
	Principal access.Principal
	Session   auth.Session
}

// LoginCommandHandler checks credentials and issues a session. Unknown
// emails and wrong passwords are indistinguishable to the caller.
type LoginCommandHandler struct {
	uowFactory AccountUoWFactory
	hasher     ports.PasswordHasher
	sessions   SessionIssuer
}

func NewLoginCommandHandler(
	uowFactory AccountUoWFactory,
	hasher ports.PasswordHasher,
	sessions SessionIssuer,
) LoginCommandHandler {
	return LoginCommandHandler{
		uowFactory: uowFactory,
		hasher:     hasher,
		sessions:   sessions,
	}
}

func (h *LoginCommandHandler) Handle(ctx context.Context, cmd LoginCommand) (LoginResult, error) {
	if err := cmd.Validate(); err != nil {
		return LoginResult{}, err
	}

	email, err := kernel.NewEmail(cmd.Email())
	if err != nil {
		return LoginResult{}, errs.ErrInvalidCredentials
	}

	// Read-only: repositories work on the plain connection.
	uow := h.uowFactory.Create()

	var (
		id   kernel.UUID
		hash string
	)
	switch cmd.Role() {
	case access.Admin:
		account, err := uow.AdminRepository().GetByEmail(ctx, email)
		if err != nil {
			return LoginResult{}, credentialsError(err)
		}
		id, hash = account.ID(), account.PasswordHash()
	default:
		account, err := uow.CourierRepository().GetByEmail(ctx, email)
		if err != nil {
			return LoginResult{}, credentialsError(err)
		}
		id, hash = account.ID(), account.PasswordHash()
	}

	if !h.hasher.Matches(hash, cmd.Password()) {
		return LoginResult{}, errs.ErrInvalidCredentials
	}

	principal, err := access.NewPrincipal(id, cmd.Role())
	if err != nil {
		return LoginResult{}, err
	}

	session, err := h.sessions.Issue(id.String(), cmd.Role().String())
	if err != nil {
		return LoginResult{}, err
	}

	return LoginResult{Principal: principal, Session: session}, nil
}

func credentialsError(err error) error {
	if errors.Is(err, errs.ErrObjectNotFound) {
		return errs.ErrInvalidCredentials
	}
	return err
}
