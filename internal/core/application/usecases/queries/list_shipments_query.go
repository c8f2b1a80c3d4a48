// Package queries contains read operations for retrieving system state.
// Implements the Query pattern for read operations in the CQRS architecture.
// Queries return read models shaped for one screen or export each.
package queries

import (
	"context"
	"errors"

	"shiptrack/internal/pkg/guard"

	"gorm.io/gorm"
)

var ErrListShipmentsQueryIsNotConstructed = errors.New(
	"ListShipmentsQuery must be created via NewListShipmentsQuery constructor",
)

// ListShipmentsQuery lists every shipment for the admin list and its CSV
// export.
//
// Example:
//
//	query := NewListShipmentsQuery("Delivered", "ada")
//	items, err := NewListShipmentsQueryHandler(db).Handle(ctx, query)
type ListShipmentsQuery struct {
	status string
	search string

	guard guard.ConstructorGuard
}

// NewListShipmentsQuery builds the query. status is compared exactly with
// the derived status; search is a case-insensitive substring of the
// tracking number or the customer's first or last name. Both may be empty.
func NewListShipmentsQuery(status, search string) ListShipmentsQuery {
	return ListShipmentsQuery{
		status: status,
		search: search,
		guard:  guard.NewConstructorGuard(),
	}
}

func (q ListShipmentsQuery) Validate() error {
	return q.guard.Validate(ErrListShipmentsQueryIsNotConstructed)
}

func (q ListShipmentsQuery) Status() string {
	return q.status
}

func (q ListShipmentsQuery) Search() string {
	return q.search
}

type ListShipmentsQueryHandler struct {
	db *gorm.DB
}

func NewListShipmentsQueryHandler(db *gorm.DB) ListShipmentsQueryHandler {
	return ListShipmentsQueryHandler{db: db}
}

// Handle returns matching shipments, newest first.
func (h ListShipmentsQueryHandler) Handle(ctx context.Context, query ListShipmentsQuery) ([]ShipmentListItem, error) {
	if err := query.Validate(); err != nil {
		return nil, err
	}

	items, err := loadShipmentRows(ctx, h.db, shipmentFilter{})
	if err != nil {
		return nil, err
	}

	return filterBySearch(filterByStatus(items, query.Status()), query.Search()), nil
}
