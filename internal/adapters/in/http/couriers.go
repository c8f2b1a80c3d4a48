package http

import (
	"net/http"
	"time"

	"shiptrack/internal/core/application/usecases/commands"
	"shiptrack/internal/core/application/usecases/queries"
	"shiptrack/internal/core/domain/model/courier"
	"shiptrack/internal/core/domain/model/kernel"
	"shiptrack/internal/pkg/errs"

	"github.com/labstack/echo/v4"
)

// CourierRequest is the create and update body of a courier. An empty
// HireDate means today on creation and unchanged on update.
type CourierRequest struct {
	FirstName string `json:"first_name"`
	LastName  string `json:"last_name"`
	Email     string `json:"email"`
	Phone     string `json:"phone"`
	Region    string `json:"region"`
	HireDate  string `json:"hire_date"`
}

func (r CourierRequest) profile() (courier.Profile, error) {
	profile := courier.Profile{
		FirstName: r.FirstName,
		LastName:  r.LastName,
		Email:     r.Email,
		Phone:     r.Phone,
		Region:    r.Region,
	}
	if r.HireDate != "" {
		hired, err := time.Parse(courier.HireDateLayout, r.HireDate)
		if err != nil {
			return courier.Profile{}, errs.NewValueIsInvalidErrorWithCause("hire_date", err)
		}
		profile.HireDate = hired
	}
	return profile, nil
}

// CourierCreatedResponse carries the temporary password. It is never shown
// again.
type CourierCreatedResponse struct {
	ID           kernel.UUID `json:"id"`
	TempPassword string      `json:"temp_password"`
}

// ListCouriers handles GET /api/v1/admin/couriers.
func (s *Server) ListCouriers(ctx echo.Context) error {
	couriers, err := s.queries.ListCouriers.Handle(ctx.Request().Context(), queries.NewListCouriersQuery())
	if err != nil {
		return s.fail(ctx, err)
	}
	return ctx.JSON(http.StatusOK, couriers)
}

// GetCourier handles GET /api/v1/admin/couriers/{id}.
func (s *Server) GetCourier(ctx echo.Context) error {
	id, err := pathID(ctx)
	if err != nil {
		return s.fail(ctx, err)
	}
	query, err := queries.NewGetCourierQuery(id)
	if err != nil {
		return s.fail(ctx, err)
	}

	view, err := s.queries.GetCourier.Handle(ctx.Request().Context(), query)
	if err != nil {
		return s.fail(ctx, err)
	}
	return ctx.JSON(http.StatusOK, view)
}

// CreateCourier handles POST /api/v1/admin/couriers.
func (s *Server) CreateCourier(ctx echo.Context) error {
	var body CourierRequest
	if err := ctx.Bind(&body); err != nil {
		return s.fail(ctx, errs.NewValueIsInvalidErrorWithCause("body", err))
	}
	profile, err := body.profile()
	if err != nil {
		return s.fail(ctx, err)
	}

	cmd, err := commands.NewCreateCourierCommand(profile, "")
	if err != nil {
		return s.fail(ctx, err)
	}
	result, err := s.commands.CreateCourier.Handle(ctx.Request().Context(), cmd)
	if err != nil {
		return s.fail(ctx, err)
	}
	return ctx.JSON(http.StatusCreated, CourierCreatedResponse{
		ID:           result.CourierID,
		TempPassword: result.TempPassword,
	})
}

// UpdateCourier handles PUT /api/v1/admin/couriers/{id}.
func (s *Server) UpdateCourier(ctx echo.Context) error {
	id, err := pathID(ctx)
	if err != nil {
		return s.fail(ctx, err)
	}
	var body CourierRequest
	if err := ctx.Bind(&body); err != nil {
		return s.fail(ctx, errs.NewValueIsInvalidErrorWithCause("body", err))
	}
	profile, err := body.profile()
	if err != nil {
		return s.fail(ctx, err)
	}

	cmd, err := commands.NewUpdateCourierCommand(id, profile)
	if err != nil {
		return s.fail(ctx, err)
	}
	if err := s.commands.UpdateCourier.Handle(ctx.Request().Context(), cmd); err != nil {
		return s.fail(ctx, err)
	}
	return ctx.NoContent(http.StatusNoContent)
}

// DeleteCourier handles DELETE /api/v1/admin/couriers/{id}.
func (s *Server) DeleteCourier(ctx echo.Context) error {
	id, err := pathID(ctx)
	if err != nil {
		return s.fail(ctx, err)
	}
	cmd, err := commands.NewDeleteCourierCommand(id)
	if err != nil {
		return s.fail(ctx, err)
	}
	if err := s.commands.DeleteCourier.Handle(ctx.Request().Context(), cmd); err != nil {
		return s.fail(ctx, err)
	}
	return ctx.NoContent(http.StatusNoContent)
}
