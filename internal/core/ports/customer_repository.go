package ports

import (
	"context"

	"shiptrack/internal/core/domain/model/customer"
	"shiptrack/internal/core/domain/model/kernel"
)

// CustomerRepository defines the persistence contract for customers.
type CustomerRepository interface {
	Add(ctx context.Context, aggregate *customer.Customer) error
	Update(ctx context.Context, aggregate *customer.Customer) error
	Get(ctx context.Context, id kernel.UUID) (*customer.Customer, error)
	GetByEmail(ctx context.Context, email kernel.Email) (*customer.Customer, error)

	// List returns all customers, newest first.
	List(ctx context.Context) ([]*customer.Customer, error)

	// Delete removes the customer row only; owned shipments are removed by
	// ShipmentRepository.DeleteByCustomer within the same unit of work.
	Delete(ctx context.Context, id kernel.UUID) error
}
