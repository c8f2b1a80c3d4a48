// Package ports defines the contracts between the application core and its
// adapters: repositories, the unit of work, caches and renderers.
package ports

import (
	"context"

	"shiptrack/internal/core/domain/model/courier"
	"shiptrack/internal/core/domain/model/kernel"
)

// CourierRepository defines the persistence contract for courier aggregates.
type CourierRepository interface {
	// Add persists a new courier. A duplicate email is reported as
	// errs.ErrObjectAlreadyExists.
	Add(ctx context.Context, aggregate *courier.Courier) error

	// Update persists changes to an existing courier.
	Update(ctx context.Context, aggregate *courier.Courier) error

	// Get returns errs.ErrObjectNotFound for unknown ids.
	Get(ctx context.Context, id kernel.UUID) (*courier.Courier, error)

	// GetByEmail looks a courier up by normalized email; used for login and
	// duplicate checks.
	GetByEmail(ctx context.Context, email kernel.Email) (*courier.Courier, error)

	// List returns all couriers, newest first.
	List(ctx context.Context) ([]*courier.Courier, error)

	// Delete removes the courier row. References from shipments and tracking
	// events must be cleared first via ShipmentRepository.UnassignCourier.
	Delete(ctx context.Context, id kernel.UUID) error
}
