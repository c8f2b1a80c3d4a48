package queries

import (
	"context"
	"errors"

	"shiptrack/internal/core/ports"
	"shiptrack/internal/pkg/errs"
	"shiptrack/internal/pkg/guard"
)

var ErrIsSessionRevokedQueryIsNotConstructed = errors.New(
	"IsSessionRevokedQuery must be created via NewIsSessionRevokedQuery constructor",
)

// IsSessionRevokedQuery asks whether a session token was logged out.
type IsSessionRevokedQuery struct {
	tokenID string

	guard guard.ConstructorGuard
}

func NewIsSessionRevokedQuery(tokenID string) (IsSessionRevokedQuery, error) {
	if tokenID == "" {
		return IsSessionRevokedQuery{}, errs.NewValueIsRequiredError("token_id")
	}
	return IsSessionRevokedQuery{tokenID: tokenID, guard: guard.NewConstructorGuard()}, nil
}

func (q IsSessionRevokedQuery) Validate() error {
	return q.guard.Validate(ErrIsSessionRevokedQueryIsNotConstructed)
}

type IsSessionRevokedQueryHandler struct {
	sessions ports.RevokedSessionRepository
}

func NewIsSessionRevokedQueryHandler(sessions ports.RevokedSessionRepository) IsSessionRevokedQueryHandler {
	return IsSessionRevokedQueryHandler{sessions: sessions}
}

func (h IsSessionRevokedQueryHandler) Handle(ctx context.Context, query IsSessionRevokedQuery) (bool, error) {
	if err := query.Validate(); err != nil {
		return false, err
	}
	return h.sessions.IsRevoked(ctx, query.tokenID)
}
