package http

import (
	"net/http"

	"shiptrack/internal/core/application/usecases/commands"
	"shiptrack/internal/core/domain/model/access"
	"shiptrack/internal/pkg/errs"

	"github.com/labstack/echo/v4"
)

// CredentialsRequest is the login body.
type CredentialsRequest struct {
	Email    string `json:"email"`
	Password string `json:"password"`
}

// AdminLogin handles POST /api/v1/auth/admin/login.
func (s *Server) AdminLogin(ctx echo.Context) error {
	return s.login(ctx, access.Admin)
}

// CourierLogin handles POST /api/v1/auth/courier/login.
func (s *Server) CourierLogin(ctx echo.Context) error {
	return s.login(ctx, access.Courier)
}

func (s *Server) login(ctx echo.Context, role access.Role) error {
	var body CredentialsRequest
	if err := ctx.Bind(&body); err != nil {
		return s.fail(ctx, errs.NewValueIsInvalidErrorWithCause("body", err))
	}

	cmd, err := commands.NewLoginCommand(role, body.Email, body.Password)
	if err != nil {
		return s.fail(ctx, err)
	}
	result, err := s.commands.Login.Handle(ctx.Request().Context(), cmd)
	if err != nil {
		return s.fail(ctx, err)
	}

	ctx.SetCookie(sessionCookie(ctx, result.Session.Token, result.Session.ExpiresAt))
	return ctx.JSON(http.StatusOK, RedirectResponse{Redirect: DestinationPath(access.Home(result.Principal))})
}

// Logout handles POST /api/v1/auth/logout. The session id stays revoked
// until the token would have expired anyway.
func (s *Server) Logout(ctx echo.Context) error {
	principal := principalOf(ctx)
	claims := claimsOf(ctx)
	if claims == nil || claims.ExpiresAt == nil {
		return deny(ctx, http.StatusUnauthorized, "authentication required", access.LoginFor(principal.Role))
	}

	cmd, err := commands.NewLogoutCommand(claims.ID, claims.ExpiresAt.Time)
	if err != nil {
		return s.fail(ctx, err)
	}
	if err := s.commands.Logout.Handle(ctx.Request().Context(), cmd); err != nil {
		return s.fail(ctx, err)
	}

	ctx.SetCookie(clearedSessionCookie(ctx))
	return ctx.JSON(http.StatusOK, RedirectResponse{Redirect: DestinationPath(access.LoginFor(principal.Role))})
}
