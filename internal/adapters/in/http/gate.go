package http

import (
	"net/http"
	"time"

	"shiptrack/internal/core/application/usecases/queries"
	"shiptrack/internal/core/domain/model/access"
	"shiptrack/internal/core/domain/model/kernel"
	"shiptrack/internal/pkg/auth"

	"github.com/labstack/echo/v4"
	"go.uber.org/zap"
)

const (
	principalKey = "principal"
	claimsKey    = "session_claims"
)

var destinationPaths = map[access.Destination]string{
	access.AdminLogin:       "/api/v1/auth/admin/login",
	access.CourierLogin:     "/api/v1/auth/courier/login",
	access.AdminDashboard:   "/api/v1/admin/dashboard",
	access.CourierDashboard: "/api/v1/courier/dashboard",
}

// DestinationPath is the route a denied or freshly signed-in caller is sent to.
func DestinationPath(d access.Destination) string {
	return destinationPaths[d]
}

// authenticate resolves the session cookie into a principal. Missing,
// invalid, expired and revoked sessions all leave the caller anonymous.
func (s *Server) authenticate(next echo.HandlerFunc) echo.HandlerFunc {
	return func(ctx echo.Context) error {
		ctx.Set(principalKey, access.Anonymous())

		cookie, err := ctx.Cookie(auth.SessionCookie)
		if err != nil || cookie.Value == "" {
			return next(ctx)
		}
		claims, err := s.sessions.Parse(cookie.Value)
		if err != nil {
			return next(ctx)
		}

		query, err := queries.NewIsSessionRevokedQuery(claims.ID)
		if err != nil {
			return next(ctx)
		}
		revoked, err := s.queries.SessionRevoked.Handle(ctx.Request().Context(), query)
		if err != nil {
			return s.fail(ctx, err)
		}
		if revoked {
			return next(ctx)
		}

		principal, err := principalFromClaims(claims)
		if err != nil {
			s.logger.Warn("session with unusable claims", zap.Error(err))
			return next(ctx)
		}
		ctx.Set(principalKey, principal)
		ctx.Set(claimsKey, claims)
		return next(ctx)
	}
}

func principalFromClaims(claims *auth.Claims) (access.Principal, error) {
	id, err := kernel.UUIDFromString(claims.Subject)
	if err != nil {
		return access.Principal{}, err
	}
	role, err := access.ParseRole(claims.Role)
	if err != nil {
		return access.Principal{}, err
	}
	return access.NewPrincipal(id, role)
}

// require guards a route group with req.
func (s *Server) require(req access.Requirement) echo.MiddlewareFunc {
	return func(next echo.HandlerFunc) echo.HandlerFunc {
		return func(ctx echo.Context) error {
			decision := access.Authorize(principalOf(ctx), req)
			switch decision.Outcome {
			case access.Allow:
				return next(ctx)
			case access.Unauthenticated:
				return deny(ctx, http.StatusUnauthorized, "authentication required", decision.Redirect)
			default:
				return deny(ctx, http.StatusForbidden, "forbidden", decision.Redirect)
			}
		}
	}
}

func deny(ctx echo.Context, status int, message string, to access.Destination) error {
	path := DestinationPath(to)
	ctx.Response().Header().Set(echo.HeaderLocation, path)
	return ctx.JSON(status, ErrorResponse{Error: message, Redirect: path})
}

func principalOf(ctx echo.Context) access.Principal {
	if p, ok := ctx.Get(principalKey).(access.Principal); ok {
		return p
	}
	return access.Anonymous()
}

func claimsOf(ctx echo.Context) *auth.Claims {
	claims, _ := ctx.Get(claimsKey).(*auth.Claims)
	return claims
}

func sessionCookie(ctx echo.Context, token string, expiresAt time.Time) *http.Cookie {
	return &http.Cookie{
		Name:     auth.SessionCookie,
		Value:    token,
		Path:     "/",
		Expires:  expiresAt,
		HttpOnly: true,
		Secure:   ctx.IsTLS(),
		SameSite: http.SameSiteLaxMode,
	}
}

func clearedSessionCookie(ctx echo.Context) *http.Cookie {
	cookie := sessionCookie(ctx, "", time.Unix(0, 0))
	cookie.MaxAge = -1
	return cookie
}
