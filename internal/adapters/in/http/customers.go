package http

import (
	"net/http"

	"shiptrack/internal/core/application/usecases/commands"
	"shiptrack/internal/core/application/usecases/queries"
	"shiptrack/internal/core/domain/model/customer"
	"shiptrack/internal/pkg/errs"

	"github.com/labstack/echo/v4"
)

// CustomerRequest is the create and update body of a customer.
type CustomerRequest struct {
	FirstName string `json:"first_name"`
	LastName  string `json:"last_name"`
	Email     string `json:"email"`
	Phone     string `json:"phone"`
	Address   string `json:"address"`
	City      string `json:"city"`
}

func (r CustomerRequest) profile() customer.Profile {
	return customer.Profile{
		FirstName: r.FirstName,
		LastName:  r.LastName,
		Email:     r.Email,
		Phone:     r.Phone,
		Address:   r.Address,
		City:      r.City,
	}
}

// ListCustomers handles GET /api/v1/admin/customers.
func (s *Server) ListCustomers(ctx echo.Context) error {
	customers, err := s.queries.ListCustomers.Handle(ctx.Request().Context(), queries.NewListCustomersQuery())
	if err != nil {
		return s.fail(ctx, err)
	}
	return ctx.JSON(http.StatusOK, customers)
}

// GetCustomer handles GET /api/v1/admin/customers/{id}.
func (s *Server) GetCustomer(ctx echo.Context) error {
	id, err := pathID(ctx)
	if err != nil {
		return s.fail(ctx, err)
	}
	query, err := queries.NewGetCustomerQuery(id)
	if err != nil {
		return s.fail(ctx, err)
	}

	view, err := s.queries.GetCustomer.Handle(ctx.Request().Context(), query)
	if err != nil {
		return s.fail(ctx, err)
	}
	return ctx.JSON(http.StatusOK, view)
}

// CreateCustomer handles POST /api/v1/admin/customers.
func (s *Server) CreateCustomer(ctx echo.Context) error {
	var body CustomerRequest
	if err := ctx.Bind(&body); err != nil {
		return s.fail(ctx, errs.NewValueIsInvalidErrorWithCause("body", err))
	}

	cmd, err := commands.NewCreateCustomerCommand(body.profile())
	if err != nil {
		return s.fail(ctx, err)
	}
	if err := s.commands.CreateCustomer.Handle(ctx.Request().Context(), cmd); err != nil {
		return s.fail(ctx, err)
	}
	return ctx.JSON(http.StatusCreated, CreatedResponse{ID: cmd.CustomerID()})
}

// UpdateCustomer handles PUT /api/v1/admin/customers/{id}.
func (s *Server) UpdateCustomer(ctx echo.Context) error {
	id, err := pathID(ctx)
	if err != nil {
		return s.fail(ctx, err)
	}
	var body CustomerRequest
	if err := ctx.Bind(&body); err != nil {
		return s.fail(ctx, errs.NewValueIsInvalidErrorWithCause("body", err))
	}

	cmd, err := commands.NewUpdateCustomerCommand(id, body.profile())
	if err != nil {
		return s.fail(ctx, err)
	}
	if err := s.commands.UpdateCustomer.Handle(ctx.Request().Context(), cmd); err != nil {
		return s.fail(ctx, err)
	}
	return ctx.NoContent(http.StatusNoContent)
}

// DeleteCustomer handles DELETE /api/v1/admin/customers/{id}.
func (s *Server) DeleteCustomer(ctx echo.Context) error {
	id, err := pathID(ctx)
	if err != nil {
		return s.fail(ctx, err)
	}
	cmd, err := commands.NewDeleteCustomerCommand(id)
	if err != nil {
		return s.fail(ctx, err)
	}
	if err := s.commands.DeleteCustomer.Handle(ctx.Request().Context(), cmd); err != nil {
		return s.fail(ctx, err)
	}
	return ctx.NoContent(http.StatusNoContent)
}
