package queries

import (
	"context"
	"errors"
	"time"

	"shiptrack/internal/core/domain/model/courier"
	"shiptrack/internal/core/domain/model/kernel"
	"shiptrack/internal/core/ports"
	"shiptrack/internal/pkg/guard"
)

var (
	ErrListCouriersQueryIsNotConstructed = errors.New(
		"ListCouriersQuery must be created via NewListCouriersQuery constructor",
	)
	ErrGetCourierQueryIsNotConstructed = errors.New(
		"GetCourierQuery must be created via NewGetCourierQuery constructor",
	)
)

// CourierView never carries the password hash.
type CourierView struct {
	ID        kernel.UUID `json:"id"`
	FirstName string      `json:"first_name"`
	LastName  string      `json:"last_name"`
	Email     string      `json:"email"`
	Phone     string      `json:"phone"`
	Region    string      `json:"region"`
	HireDate  string      `json:"hire_date"`
	CreatedAt time.Time   `json:"created_at"`
	UpdatedAt time.Time   `json:"updated_at"`
}

func newCourierView(c *courier.Courier) CourierView {
	p := c.Profile()
	return CourierView{
		ID:        c.ID(),
		FirstName: p.FirstName,
		LastName:  p.LastName,
		Email:     p.Email,
		Phone:     p.Phone,
		Region:    p.Region,
		HireDate:  c.HireDate().Format(courier.HireDateLayout),
		CreatedAt: c.CreatedAt(),
		UpdatedAt: c.UpdatedAt(),
	}
}

type ListCouriersQuery struct {
	guard guard.ConstructorGuard
}

func NewListCouriersQuery() ListCouriersQuery {
	return ListCouriersQuery{guard: guard.NewConstructorGuard()}
}

func (q ListCouriersQuery) Validate() error {
	return q.guard.Validate(ErrListCouriersQueryIsNotConstructed)
}

type ListCouriersQueryHandler struct {
	uowFactory ports.UnitOfWorkFactory
}

func NewListCouriersQueryHandler(uowFactory ports.UnitOfWorkFactory) ListCouriersQueryHandler {
	return ListCouriersQueryHandler{uowFactory: uowFactory}
}

func (h ListCouriersQueryHandler) Handle(ctx context.Context, query ListCouriersQuery) ([]CourierView, error) {
	if err := query.Validate(); err != nil {
		return nil, err
	}

	couriers, err := h.uowFactory.Create().CourierRepository().List(ctx)
	if err != nil {
		return nil, err
	}

	views := make([]CourierView, 0, len(couriers))
	for _, c := range couriers {
		views = append(views, newCourierView(c))
	}
	return views, nil
}

type GetCourierQuery struct {
	courierID kernel.UUID

	guard guard.ConstructorGuard
}

func NewGetCourierQuery(courierID kernel.UUID) (GetCourierQuery, error) {
	if err := courierID.Validate(); err != nil {
		return GetCourierQuery{}, err
	}
	return GetCourierQuery{courierID: courierID, guard: guard.NewConstructorGuard()}, nil
}

func (q GetCourierQuery) Validate() error {
	return q.guard.Validate(ErrGetCourierQueryIsNotConstructed)
}

type GetCourierQueryHandler struct {
	uowFactory ports.UnitOfWorkFactory
}

func NewGetCourierQueryHandler(uowFactory ports.UnitOfWorkFactory) GetCourierQueryHandler {
	return GetCourierQueryHandler{uowFactory: uowFactory}
}

func (h GetCourierQueryHandler) Handle(ctx context.Context, query GetCourierQuery) (CourierView, error) {
	if err := query.Validate(); err != nil {
		return CourierView{}, err
	}

	c, err := h.uowFactory.Create().CourierRepository().Get(ctx, query.courierID)
	if err != nil {
		return CourierView{}, err
	}
	return newCourierView(c), nil
}
