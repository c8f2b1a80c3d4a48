package queries

import (
	"context"
	"errors"
	"time"

	"shiptrack/internal/core/domain/model/customer"
	"shiptrack/internal/core/domain/model/kernel"
	"shiptrack/internal/core/ports"
	"shiptrack/internal/pkg/guard"
)

var (
	ErrListCustomersQueryIsNotConstructed = errors.New(
		"ListCustomersQuery must be created via NewListCustomersQuery constructor",
	)
	ErrGetCustomerQueryIsNotConstructed = errors.New(
		"GetCustomerQuery must be created via NewGetCustomerQuery constructor",
	)
)

type CustomerView struct {
	ID        kernel.UUID `json:"id"`
	FirstName string      `json:"first_name"`
	LastName  string      `json:"last_name"`
	Email     string      `json:"email"`
	Phone     string      `json:"phone"`
	Address   string      `json:"address"`
	City      string      `json:"city"`
	CreatedAt time.Time   `json:"created_at"`
	UpdatedAt time.Time   `json:"updated_at"`
}

func newCustomerView(c *customer.Customer) CustomerView {
	p := c.Profile()
	return CustomerView{
		ID:        c.ID(),
		FirstName: p.FirstName,
		LastName:  p.LastName,
		Email:     p.Email,
		Phone:     p.Phone,
		Address:   p.Address,
		City:      p.City,
		CreatedAt: c.CreatedAt(),
		UpdatedAt: c.UpdatedAt(),
	}
}

type ListCustomersQuery struct {
	guard guard.ConstructorGuard
}

func NewListCustomersQuery() ListCustomersQuery {
	return ListCustomersQuery{guard: guard.NewConstructorGuard()}
}

func (q ListCustomersQuery) Validate() error {
	return q.guard.Validate(ErrListCustomersQueryIsNotConstructed)
}

type ListCustomersQueryHandler struct {
	uowFactory ports.UnitOfWorkFactory
}

func NewListCustomersQueryHandler(uowFactory ports.UnitOfWorkFactory) ListCustomersQueryHandler {
	return ListCustomersQueryHandler{uowFactory: uowFactory}
}

// Handle returns all customers, newest first.
func (h ListCustomersQueryHandler) Handle(ctx context.Context, query ListCustomersQuery) ([]CustomerView, error) {
	if err := query.Validate(); err != nil {
		return nil, err
	}

	customers, err := h.uowFactory.Create().CustomerRepository().List(ctx)
	if err != nil {
		return nil, err
	}

	views := make([]CustomerView, 0, len(customers))
	for _, c := range customers {
		views = append(views, newCustomerView(c))
	}
	return views, nil
}

type GetCustomerQuery struct {
	customerID kernel.UUID

	guard guard.ConstructorGuard
}

func NewGetCustomerQuery(customerID kernel.UUID) (GetCustomerQuery, error) {
	if err := customerID.Validate(); err != nil {
		return GetCustomerQuery{}, err
	}
	return GetCustomerQuery{customerID: customerID, guard: guard.NewConstructorGuard()}, nil
}

func (q GetCustomerQuery) Validate() error {
	return q.guard.Validate(ErrGetCustomerQueryIsNotConstructed)
}

type GetCustomerQueryHandler struct {
	uowFactory ports.UnitOfWorkFactory
}

func NewGetCustomerQueryHandler(uowFactory ports.UnitOfWorkFactory) GetCustomerQueryHandler {
	return GetCustomerQueryHandler{uowFactory: uowFactory}
}

func (h GetCustomerQueryHandler) Handle(ctx context.Context, query GetCustomerQuery) (CustomerView, error) {
	if err := query.Validate(); err != nil {
		return CustomerView{}, err
	}

	c, err := h.uowFactory.Create().CustomerRepository().Get(ctx, query.customerID)
	if err != nil {
		return CustomerView{}, err
	}
	return newCustomerView(c), nil
}
