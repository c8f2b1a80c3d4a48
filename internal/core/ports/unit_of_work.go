package ports

import (
	"context"
)

// UnitOfWorkFactory creates new UnitOfWork instances for each request/command.
// This ensures proper isolation between concurrent operations.
type UnitOfWorkFactory interface {
	Create() UnitOfWork
}

// UnitOfWork represents a business transaction boundary.
// Client code must explicitly manage transaction lifecycle.
type UnitOfWork interface {
	// Begin starts a new database transaction.
	Begin(ctx context.Context) error

	// Commit commits the current transaction and then notifies commit
	// observers about every aggregate written through the repositories.
	Commit(ctx context.Context) error

	// Rollback rolls back the current transaction.
	// Returns error if no active transaction or rollback fails.
	Rollback(ctx context.Context) error

	CustomerRepository() CustomerRepository
	CourierRepository() CourierRepository
	AdminRepository() AdminRepository
	ShipmentRepository() ShipmentRepository
	SupportTicketRepository() SupportTicketRepository
}

// CommitObserver is told about the aggregates of a successfully committed
// unit of work.
type CommitObserver interface {
	AfterCommit(ctx context.Context, aggregates []any)
}

// RemovedShipment is tracked when a shipment row is deleted, so observers can
// forget anything derived from it.
type RemovedShipment struct {
	TrackingNumber string
}

// BulkShipmentChange is tracked when a statement touched an unknown set of
// shipments (cascade delete, courier unassignment).
type BulkShipmentChange struct{}
