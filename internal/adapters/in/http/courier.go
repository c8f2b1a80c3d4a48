package http

import (
	"net/http"

	"shiptrack/internal/core/application/usecases/commands"
	"shiptrack/internal/core/application/usecases/queries"
	"shiptrack/internal/pkg/errs"

	"github.com/labstack/echo/v4"
)

// TrackingEventRequest is a courier's field report.
type TrackingEventRequest struct {
	Status   string `json:"status"`
	Location string `json:"location"`
	Notes    string `json:"notes"`
	ProofURL string `json:"proof_url"`
}

// CourierDashboard handles GET /api/v1/courier/dashboard.
func (s *Server) CourierDashboard(ctx echo.Context) error {
	search, err := queryString(ctx, "q")
	if err != nil {
		return s.fail(ctx, err)
	}
	query, err := queries.NewCourierDashboardQuery(principalOf(ctx), search)
	if err != nil {
		return s.fail(ctx, err)
	}

	items, err := s.queries.CourierDashboard.Handle(ctx.Request().Context(), query)
	if err != nil {
		return s.fail(ctx, err)
	}
	return ctx.JSON(http.StatusOK, items)
}

// RecordTrackingEvent handles POST /api/v1/courier/shipments/{id}/events.
func (s *Server) RecordTrackingEvent(ctx echo.Context) error {
	id, err := pathID(ctx)
	if err != nil {
		return s.fail(ctx, err)
	}
	var body TrackingEventRequest
	if err := ctx.Bind(&body); err != nil {
		return s.fail(ctx, errs.NewValueIsInvalidErrorWithCause("body", err))
	}

	cmd, err := commands.NewRecordTrackingEventCommand(id, principalOf(ctx).ID, commands.TrackingEventInput{
		Status:   body.Status,
		Location: body.Location,
		Notes:    body.Notes,
		ProofURL: body.ProofURL,
	})
	if err != nil {
		return s.fail(ctx, err)
	}
	if err := s.commands.RecordEvent.Handle(ctx.Request().Context(), cmd); err != nil {
		return s.fail(ctx, err)
	}
	return ctx.NoContent(http.StatusCreated)
}
