package http

import (
	"net/http"

	"shiptrack/internal/core/application/usecases/commands"
	"shiptrack/internal/core/application/usecases/queries"
	"shiptrack/internal/pkg/errs"

	"github.com/labstack/echo/v4"
)

const (
	ticketActionComment = "comment"
	ticketActionStatus  = "status"
)

// TicketActionRequest is an admin action on a ticket: either a comment or
// a status change. A null AdminNotes keeps the stored notes.
type TicketActionRequest struct {
	Action     string  `json:"action"`
	Body       string  `json:"body"`
	Status     string  `json:"status"`
	AdminNotes *string `json:"admin_notes"`
}

// ListSupportTickets handles GET /api/v1/admin/support/tickets.
func (s *Server) ListSupportTickets(ctx echo.Context) error {
	status, err := queryString(ctx, "status")
	if err != nil {
		return s.fail(ctx, err)
	}
	query, err := queries.NewListSupportTicketsQuery(status)
	if err != nil {
		return s.fail(ctx, err)
	}

	tickets, err := s.queries.ListTickets.Handle(ctx.Request().Context(), query)
	if err != nil {
		return s.fail(ctx, err)
	}
	return ctx.JSON(http.StatusOK, tickets)
}

// GetSupportTicket handles GET /api/v1/admin/support/tickets/{id}.
func (s *Server) GetSupportTicket(ctx echo.Context) error {
	id, err := pathID(ctx)
	if err != nil {
		return s.fail(ctx, err)
	}
	query, err := queries.NewGetSupportTicketQuery(id)
	if err != nil {
		return s.fail(ctx, err)
	}

	ticket, err := s.queries.GetTicket.Handle(ctx.Request().Context(), query)
	if err != nil {
		return s.fail(ctx, err)
	}
	return ctx.JSON(http.StatusOK, ticket)
}

// ActOnSupportTicket handles POST /api/v1/admin/support/tickets/{id}.
func (s *Server) ActOnSupportTicket(ctx echo.Context) error {
	id, err := pathID(ctx)
	if err != nil {
		return s.fail(ctx, err)
	}
	var body TicketActionRequest
	if err := ctx.Bind(&body); err != nil {
		return s.fail(ctx, errs.NewValueIsInvalidErrorWithCause("body", err))
	}

	switch body.Action {
	case ticketActionComment:
		cmd, err := commands.NewCommentSupportTicketCommand(id, principalOf(ctx).ID, body.Body)
		if err != nil {
			return s.fail(ctx, err)
		}
		if err := s.commands.CommentTicket.Handle(ctx.Request().Context(), cmd); err != nil {
			return s.fail(ctx, err)
		}
	case ticketActionStatus:
		cmd, err := commands.NewChangeSupportTicketStatusCommand(id, body.Status, body.AdminNotes)
		if err != nil {
			return s.fail(ctx, err)
		}
		if err := s.commands.ChangeTicketStatus.Handle(ctx.Request().Context(), cmd); err != nil {
			return s.fail(ctx, err)
		}
	default:
		return s.fail(ctx, errs.NewValueIsInvalidError("action"))
	}
	return ctx.NoContent(http.StatusNoContent)
}
