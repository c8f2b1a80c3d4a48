// Package postgres provides the GORM-based persistence adapter: connection
// setup for PostgreSQL (lib/pq) and SQLite, schema migration and the Unit of
// Work that binds every repository to one transaction.
//
// Usage:
//
//	factory := NewGormUnitOfWorkFactory(db, cacheInvalidator)
//	uow := factory.Create()
//
//	if err := uow.Begin(ctx); err != nil {
//	    return err
//	}
//	defer uow.Rollback(ctx)
//
//	if err := uow.ShipmentRepository().DeleteByCustomer(ctx, id); err != nil {
//	    return err
//	}
//	if err := uow.CustomerRepository().Delete(ctx, id); err != nil {
//	    return err
//	}
//
//	return uow.Commit(ctx)
//
// Each UnitOfWork instance owns one transaction and must not be shared
// between goroutines.
package postgres

import (
	"context"

	"shiptrack/internal/adapters/out/postgres/adminrepo"
	"shiptrack/internal/adapters/out/postgres/courierrepo"
	"shiptrack/internal/adapters/out/postgres/customerrepo"
	"shiptrack/internal/adapters/out/postgres/shipmentrepo"
	"shiptrack/internal/adapters/out/postgres/supportrepo"
	"shiptrack/internal/core/domain/model/kernel"
	"shiptrack/internal/core/ports"

	"gorm.io/gorm"
)

// trackedAggregate represents an aggregate written during the unit of work.
type trackedAggregate struct {
	ID        kernel.UUID
	Aggregate any
}

// GormUnitOfWorkFactory creates UnitOfWork instances using GORM database connections.
type GormUnitOfWorkFactory struct {
	db        *gorm.DB
	observers []ports.CommitObserver
}

// NewGormUnitOfWorkFactory creates a factory for GORM-based unit of work
// instances. observers are notified after every successful commit.
func NewGormUnitOfWorkFactory(db *gorm.DB, observers ...ports.CommitObserver) *GormUnitOfWorkFactory {
	return &GormUnitOfWorkFactory{db: db, observers: observers}
}

// Create produces a new UnitOfWork with its own transaction state.
func (f *GormUnitOfWorkFactory) Create() ports.UnitOfWork {
	return &GormUnitOfWork{
		db:                f.db,
		observers:         f.observers,
		trackedAggregates: make([]trackedAggregate, 0),
	}
}

// GormUnitOfWork coordinates one database transaction and tracks the
// aggregates written through its repositories.
type GormUnitOfWork struct {
	db                *gorm.DB
	tx                *gorm.DB
	observers         []ports.CommitObserver
	trackedAggregates []trackedAggregate
}

// Begin initiates a new database transaction for the unit of work.
// Multiple calls to Begin on the same instance are safe and will not create nested transactions.
func (uow *GormUnitOfWork) Begin(ctx context.Context) error {
	if uow.tx != nil {
		return nil
	}

	uow.tx = uow.db.WithContext(ctx).Begin()
	if uow.tx.Error != nil {
		err := uow.tx.Error
		uow.tx = nil
		return err
	}

	return nil
}

// Commit finalizes the transaction and then hands the tracked aggregates to
// the observers. Observers never run for a failed commit.
func (uow *GormUnitOfWork) Commit(ctx context.Context) error {
	if uow.tx == nil {
		return gorm.ErrInvalidTransaction
	}

	err := uow.tx.Commit().Error
	uow.tx = nil
	if err != nil {
		uow.trackedAggregates = uow.trackedAggregates[:0]
		return err
	}

	if len(uow.trackedAggregates) > 0 && len(uow.observers) > 0 {
		aggregates := make([]any, 0, len(uow.trackedAggregates))
		for _, t := range uow.trackedAggregates {
			aggregates = append(aggregates, t.Aggregate)
		}
		for _, o := range uow.observers {
			o.AfterCommit(ctx, aggregates)
		}
	}
	uow.trackedAggregates = uow.trackedAggregates[:0]
	return nil
}

// Rollback discards the transaction. Calling it after Commit returns
// gorm.ErrInvalidTransaction, so handlers can always defer it.
func (uow *GormUnitOfWork) Rollback(_ context.Context) error {
	if uow.tx == nil {
		return gorm.ErrInvalidTransaction
	}

	err := uow.tx.Rollback().Error
	uow.tx = nil
	uow.trackedAggregates = uow.trackedAggregates[:0]
	return err
}

func (uow *GormUnitOfWork) conn() *gorm.DB {
	if uow.tx != nil {
		return uow.tx
	}
	return uow.db
}

// CustomerRepository returns a repository bound to the current transaction,
// or to the plain connection when none is active.
func (uow *GormUnitOfWork) CustomerRepository() ports.CustomerRepository {
	return customerrepo.NewGormCustomerRepository(uow.conn(), uow)
}

func (uow *GormUnitOfWork) CourierRepository() ports.CourierRepository {
	return courierrepo.NewGormCourierRepository(uow.conn(), uow)
}

func (uow *GormUnitOfWork) AdminRepository() ports.AdminRepository {
	return adminrepo.NewGormAdminRepository(uow.conn(), uow)
}

func (uow *GormUnitOfWork) ShipmentRepository() ports.ShipmentRepository {
	return shipmentrepo.NewGormShipmentRepository(uow.conn(), uow)
}

func (uow *GormUnitOfWork) SupportTicketRepository() ports.SupportTicketRepository {
	return supportrepo.NewGormSupportTicketRepository(uow.conn(), uow)
}

// TrackAggregate registers an aggregate (or a change marker such as
// ports.RemovedShipment) written within this unit of work. Repositories call
// it after every successful write.
func (uow *GormUnitOfWork) TrackAggregate(id kernel.UUID, aggregate any) {
	uow.trackedAggregates = append(uow.trackedAggregates, trackedAggregate{
		ID:        id,
		Aggregate: aggregate,
	})
}
