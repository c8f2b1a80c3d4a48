package http

import (
	"net/http"

	"shiptrack/internal/core/application/usecases/commands"
	"shiptrack/internal/core/application/usecases/queries"
	"shiptrack/internal/core/domain/model/kernel"
	"shiptrack/internal/core/domain/model/support"
	"shiptrack/internal/pkg/errs"

	"github.com/labstack/echo/v4"
)

// CreatedResponse identifies a newly created object.
type CreatedResponse struct {
	ID kernel.UUID `json:"id"`
}

// TicketSubmissionRequest is the public support form.
type TicketSubmissionRequest struct {
	Name           string `json:"name"`
	Email          string `json:"email"`
	Role           string `json:"role"`
	TrackingNumber string `json:"tracking_number"`
	Subject        string `json:"subject"`
	Description    string `json:"description"`
}

// Health handles GET /health.
func (s *Server) Health(ctx echo.Context) error {
	return ctx.String(http.StatusOK, "Healthy")
}

// TrackShipment handles GET /api/v1/track.
func (s *Server) TrackShipment(ctx echo.Context) error {
	number, err := queryString(ctx, "tracking_number")
	if err != nil {
		return s.fail(ctx, err)
	}
	query, err := queries.NewTrackShipmentQuery(number)
	if err != nil {
		return s.fail(ctx, err)
	}

	view, err := s.queries.TrackShipment.Handle(ctx.Request().Context(), query)
	if err != nil {
		return s.fail(ctx, err)
	}
	return ctx.JSON(http.StatusOK, view)
}

// SubmitSupportTicket handles POST /api/v1/support/tickets.
func (s *Server) SubmitSupportTicket(ctx echo.Context) error {
	var body TicketSubmissionRequest
	if err := ctx.Bind(&body); err != nil {
		return s.fail(ctx, errs.NewValueIsInvalidErrorWithCause("body", err))
	}

	cmd, err := commands.NewSubmitSupportTicketCommand(support.Submission{
		Name:           body.Name,
		Email:          body.Email,
		Role:           body.Role,
		TrackingNumber: body.TrackingNumber,
		Subject:        body.Subject,
		Description:    body.Description,
	})
	if err != nil {
		return s.fail(ctx, err)
	}
	if err := s.commands.SubmitTicket.Handle(ctx.Request().Context(), cmd); err != nil {
		return s.fail(ctx, err)
	}
	return ctx.JSON(http.StatusCreated, CreatedResponse{ID: cmd.TicketID()})
}
