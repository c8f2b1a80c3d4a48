package commands

import (
	"context"
	"errors"
	"time"

	"shiptrack/internal/core/ports"
	"shiptrack/internal/pkg/errs"
	"shiptrack/internal/pkg/guard"
)

var ErrLogoutCommandIsNotConstructed = errors.New(
	"LogoutCommand must be created via NewLogoutCommand constructor",
)

// LogoutCommand revokes one session token until it expires.
type LogoutCommand struct { //nolint:recvcheck //using for validation
	tokenID   string
	expiresAt time.Time

	guard guard.ConstructorGuard
}

func NewLogoutCommand(tokenID string, expiresAt time.Time) (LogoutCommand, error) {
	if tokenID == "" {
		return LogoutCommand{}, errs.NewValueIsRequiredError("token_id")
	}
	return LogoutCommand{tokenID: tokenID, expiresAt: expiresAt, guard: guard.NewConstructorGuard()}, nil
}

func (c LogoutCommand) Validate() error {
	return c.guard.Validate(ErrLogoutCommandIsNotConstructed)
}

func (c LogoutCommand) TokenID() string {
	return c.tokenID
}

func (c LogoutCommand) ExpiresAt() time.Time {
	return c.expiresAt
}

type LogoutCommandHandler struct {
	sessions ports.RevokedSessionRepository
}

func NewLogoutCommandHandler(sessions ports.RevokedSessionRepository) LogoutCommandHandler {
	return LogoutCommandHandler{sessions: sessions}
}

func (h *LogoutCommandHandler) Handle(ctx context.Context, cmd LogoutCommand) error {
	if err := cmd.Validate(); err != nil {
		return err
	}
	return h.sessions.Revoke(ctx, cmd.TokenID(), cmd.ExpiresAt())
}

// PurgeExpiredSessionsCommandHandler forgets revocations of tokens that have
// expired anyway. The session purge job runs it.
type PurgeExpiredSessionsCommandHandler struct {
	sessions ports.RevokedSessionRepository
}

func NewPurgeExpiredSessionsCommandHandler(sessions ports.RevokedSessionRepository) PurgeExpiredSessionsCommandHandler {
	return PurgeExpiredSessionsCommandHandler{sessions: sessions}
}

// Handle returns the number of purged revocations.
func (h *PurgeExpiredSessionsCommandHandler) Handle(ctx context.Context, now time.Time) (int64, error) {
	return h.sessions.PurgeExpired(ctx, now)
}
