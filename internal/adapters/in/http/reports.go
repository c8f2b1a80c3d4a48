package http

import (
	"net/http"

	"shiptrack/internal/core/application/usecases/queries"

	"github.com/labstack/echo/v4"
)

// AdminDashboard handles GET /api/v1/admin/dashboard.
func (s *Server) AdminDashboard(ctx echo.Context) error {
	metrics, err := s.queries.Dashboard.Handle(ctx.Request().Context(), queries.NewDashboardQuery())
	if err != nil {
		return s.fail(ctx, err)
	}
	return ctx.JSON(http.StatusOK, metrics)
}

// Report handles GET /api/v1/admin/reports.
func (s *Server) Report(ctx echo.Context) error {
	startDate, err := queryString(ctx, "start_date")
	if err != nil {
		return s.fail(ctx, err)
	}
	endDate, err := queryString(ctx, "end_date")
	if err != nil {
		return s.fail(ctx, err)
	}
	courierID, err := queryUUID(ctx, "courier_id")
	if err != nil {
		return s.fail(ctx, err)
	}
	status, err := queryString(ctx, "status")
	if err != nil {
		return s.fail(ctx, err)
	}

	query, err := queries.NewReportQuery(startDate, endDate, courierID, status)
	if err != nil {
		return s.fail(ctx, err)
	}
	report, err := s.queries.Report.Handle(ctx.Request().Context(), query)
	if err != nil {
		return s.fail(ctx, err)
	}
	return ctx.JSON(http.StatusOK, report)
}
