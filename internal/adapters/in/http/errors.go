package http

import (
	"errors"
	"net/http"
	"strings"

	"shiptrack/internal/pkg/errs"

	"github.com/labstack/echo/v4"
	"go.uber.org/zap"
)

const internalErrorMessage = "Internal server error"

// ErrorResponse is the body of every failed request.
type ErrorResponse struct {
	Error    string `json:"error"`
	Redirect string `json:"redirect,omitempty"`
}

// RedirectResponse tells the client where to go next.
type RedirectResponse struct {
	Redirect string `json:"redirect"`
}

func statusOf(err error) int {
	switch {
	case errors.Is(err, errs.ErrValueIsRequired), errors.Is(err, errs.ErrValueIsInvalid):
		return http.StatusBadRequest
	case errors.Is(err, errs.ErrObjectNotFound):
		return http.StatusNotFound
	case errors.Is(err, errs.ErrObjectAlreadyExists):
		return http.StatusConflict
	case errors.Is(err, errs.ErrInvalidCredentials):
		return http.StatusUnauthorized
	default:
		return http.StatusInternalServerError
	}
}

// fail writes the response for an application error. Unclassified errors
// are logged and reported without details.
func (s *Server) fail(ctx echo.Context, err error) error {
	status := statusOf(err)
	if status == http.StatusInternalServerError {
		s.logger.Error("request failed",
			zap.String("method", ctx.Request().Method),
			zap.String("path", ctx.Path()),
			zap.Error(err),
		)
		return ctx.JSON(status, ErrorResponse{Error: internalErrorMessage})
	}
	return ctx.JSON(status, ErrorResponse{Error: strings.ReplaceAll(err.Error(), "\n", "; ")})
}

// HandleError renders errors that escape handlers and middleware, including
// echo's own routing errors, in the ErrorResponse shape.
func (s *Server) HandleError(err error, ctx echo.Context) {
	if ctx.Response().Committed {
		return
	}

	var httpErr *echo.HTTPError
	if errors.As(err, &httpErr) {
		message := http.StatusText(httpErr.Code)
		if m, ok := httpErr.Message.(string); ok && httpErr.Code < http.StatusInternalServerError {
			message = m
		}
		if httpErr.Code >= http.StatusInternalServerError {
			s.logger.Error("request failed", zap.Error(err))
			message = internalErrorMessage
		}
		err = ctx.JSON(httpErr.Code, ErrorResponse{Error: message})
	} else {
		err = s.fail(ctx, err)
	}

	if err != nil {
		s.logger.Warn("write error response", zap.Error(err))
	}
}
