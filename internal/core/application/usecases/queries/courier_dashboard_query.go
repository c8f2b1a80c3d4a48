package queries

import (
	"context"
	"errors"

	"shiptrack/internal/core/domain/model/access"
	"shiptrack/internal/pkg/errs"
	"shiptrack/internal/pkg/guard"

	"gorm.io/gorm"
)

var ErrCourierDashboardQueryIsNotConstructed = errors.New(
	"CourierDashboardQuery must be created via NewCourierDashboardQuery constructor",
)

// CourierDashboardQuery lists the shipments assigned to the calling courier.
type CourierDashboardQuery struct {
	principal access.Principal
	search    string

	guard guard.ConstructorGuard
}

func NewCourierDashboardQuery(principal access.Principal, search string) (CourierDashboardQuery, error) {
	if !principal.IsCourier() {
		return CourierDashboardQuery{}, errs.NewValueIsInvalidError("principal")
	}
	return CourierDashboardQuery{
		principal: principal,
		search:    search,
		guard:     guard.NewConstructorGuard(),
	}, nil
}

func (q CourierDashboardQuery) Validate() error {
	return q.guard.Validate(ErrCourierDashboardQueryIsNotConstructed)
}

type CourierDashboardQueryHandler struct {
	db *gorm.DB
}

func NewCourierDashboardQueryHandler(db *gorm.DB) CourierDashboardQueryHandler {
	return CourierDashboardQueryHandler{db: db}
}

// Handle returns the courier's shipments, newest first, narrowed by the same
// search rule as the admin list.
func (h CourierDashboardQueryHandler) Handle(ctx context.Context, query CourierDashboardQuery) ([]ShipmentListItem, error) {
	if err := query.Validate(); err != nil {
		return nil, err
	}

	courierID := query.principal.ID
	items, err := loadShipmentRows(ctx, h.db, shipmentFilter{courierID: &courierID})
	if err != nil {
		return nil, err
	}
	return filterBySearch(items, query.search), nil
}
