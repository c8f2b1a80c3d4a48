// Package commands contains business operations that modify system state.
// Every handler follows the same shape: validate the command, open a unit of
// work, load and change aggregates, commit. A deferred Rollback undoes
// anything left uncommitted.
package commands

import (
	"context"

	"shiptrack/internal/core/ports"
)

// Unit of Work interfaces provide transaction management for command handlers.
// Each handler asks only for the repositories it touches.
type (
	// TxManager handles database transaction lifecycle.
	TxManager interface {
		Begin(ctx context.Context) error
		Commit(ctx context.Context) error
		Rollback(ctx context.Context) error
	}

	CustomerRepoFactory interface {
		CustomerRepository() ports.CustomerRepository
	}

	CourierRepoFactory interface {
		CourierRepository() ports.CourierRepository
	}

	AdminRepoFactory interface {
		AdminRepository() ports.AdminRepository
	}

	ShipmentRepoFactory interface {
		ShipmentRepository() ports.ShipmentRepository
	}

	SupportTicketRepoFactory interface {
		SupportTicketRepository() ports.SupportTicketRepository
	}

	// CustomerUoW covers customer maintenance, including the cascade of a
	// customer's shipments on delete.
	CustomerUoW interface {
		TxManager
		CustomerRepoFactory
		ShipmentRepoFactory
	}

	CustomerUoWFactory interface {
		Create() CustomerUoW
	}

	// CourierUoW covers courier maintenance, including clearing shipment
	// assignments on delete.
	CourierUoW interface {
		TxManager
		CourierRepoFactory
		ShipmentRepoFactory
	}

	CourierUoWFactory interface {
		Create() CourierUoW
	}

	AdminUoW interface {
		TxManager
		AdminRepoFactory
	}

	AdminUoWFactory interface {
		Create() AdminUoW
	}

	// ShipmentUoW covers shipment writes, which validate the referenced
	// customer and courier inside the same transaction.
	//
	// Example:
	//   uow := factory.Create()
	//   err := uow.Begin(ctx)
	//   defer uow.Rollback(ctx)
	//
	//   if _, err := uow.CustomerRepository().Get(ctx, customerID); err != nil { ... }
	//   err = uow.ShipmentRepository().Add(ctx, s)
	//
	//   err = uow.Commit(ctx)
	ShipmentUoW interface {
		TxManager
		ShipmentRepoFactory
		CustomerRepoFactory
		CourierRepoFactory
	}

	ShipmentUoWFactory interface {
		Create() ShipmentUoW
	}

	SupportUoW interface {
		TxManager
		SupportTicketRepoFactory
		AdminRepoFactory
	}

	SupportUoWFactory interface {
		Create() SupportUoW
	}

	// AccountUoW reads credentials of both account kinds.
	AccountUoW interface {
		TxManager
		AdminRepoFactory
		CourierRepoFactory
	}

	AccountUoWFactory interface {
		Create() AccountUoW
	}
)
