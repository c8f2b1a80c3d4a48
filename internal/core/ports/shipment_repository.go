package ports

import (
	"context"

	"shiptrack/internal/core/domain/model/kernel"
	"shiptrack/internal/core/domain/model/shipment"
)

// ShipmentRepository persists shipments together with their timelines.
// Tracking events are insert-only: Add and Update write the aggregate's
// uncommitted events and never modify stored ones.
type ShipmentRepository interface {
	// Add inserts the shipment and its uncommitted events. A tracking number
	// collision is reported as errs.ErrObjectAlreadyExists.
	Add(ctx context.Context, aggregate *shipment.Shipment) error

	// Update saves details and assignment and appends uncommitted events.
	Update(ctx context.Context, aggregate *shipment.Shipment) error

	// Get loads a shipment with its full timeline.
	Get(ctx context.Context, id kernel.UUID) (*shipment.Shipment, error)

	// GetByTrackingNumber performs an exact, case-sensitive lookup.
	GetByTrackingNumber(ctx context.Context, number shipment.TrackingNumber) (*shipment.Shipment, error)

	// GetAssigned loads a shipment only when it is assigned to courierID;
	// anything else is errs.ErrObjectNotFound.
	GetAssigned(ctx context.Context, id kernel.UUID, courierID kernel.UUID) (*shipment.Shipment, error)

	// TrackingNumberExists reports whether number is already used.
	TrackingNumberExists(ctx context.Context, number shipment.TrackingNumber) (bool, error)

	// Delete removes a shipment and its events.
	Delete(ctx context.Context, id kernel.UUID) error

	// DeleteByCustomer removes every shipment (and event) of a customer.
	DeleteByCustomer(ctx context.Context, customerID kernel.UUID) error

	// UnassignCourier clears courierID from shipments and tracking events
	// without appending events.
	UnassignCourier(ctx context.Context, courierID kernel.UUID) error
}
