package shipmentrepo

import (
	"context"
	"errors"
	"time"

	"shiptrack/internal/adapters/out/postgres/dberr"
	"shiptrack/internal/core/domain/model/kernel"
	"shiptrack/internal/core/domain/model/shipment"
	"shiptrack/internal/core/ports"
	"shiptrack/internal/pkg/errs"

	"gorm.io/gorm"
)

// GormShipmentRepository implements ports.ShipmentRepository using GORM.
type GormShipmentRepository struct {
	db      *gorm.DB
	tracker aggregateTracker
}

type aggregateTracker interface {
	TrackAggregate(id kernel.UUID, aggregate any)
}

func NewGormShipmentRepository(db *gorm.DB, tracker aggregateTracker) *GormShipmentRepository {
	return &GormShipmentRepository{
		db:      db,
		tracker: tracker,
	}
}

// Add inserts the shipment row and its synthesized events.
func (r *GormShipmentRepository) Add(ctx context.Context, aggregate *shipment.Shipment) error {
	if err := aggregate.Validate(); err != nil {
		return err
	}

	dto := fromDomain(aggregate, aggregate.UncommittedEvents())
	if err := r.db.WithContext(ctx).Create(&dto).Error; err != nil {
		if dberr.IsUniqueViolation(err) {
			return errs.NewObjectAlreadyExistsErrorWithCause("tracking_number", dto.TrackingNumber, err)
		}
		return err
	}

	aggregate.MarkCommitted()
	r.tracker.TrackAggregate(aggregate.ID(), aggregate)
	return nil
}

// Update writes details and assignment, then appends new events. Stored
// events are never rewritten.
func (r *GormShipmentRepository) Update(ctx context.Context, aggregate *shipment.Shipment) error {
	if err := aggregate.Validate(); err != nil {
		return err
	}

	d := aggregate.Details()
	result := r.db.WithContext(ctx).
		Model(&ShipmentDTO{}).
		Where("id = ?", aggregate.ID().Bytes()).
		Updates(map[string]any{
			"customer_id":         d.CustomerID.Bytes(),
			"sender_address":      d.SenderAddress,
			"receiver_address":    d.ReceiverAddress,
			"city":                d.City,
			"requested_date":      d.RequestedDate,
			"assigned_courier_id": kernel.UUIDPtrToBytes(aggregate.CourierID()),
			"updated_at":          time.Now().UTC(),
		})
	if result.Error != nil {
		return result.Error
	}
	if result.RowsAffected == 0 {
		return errs.NewObjectNotFoundError("shipment", aggregate.ID().String())
	}

	if events := eventsFromDomain(aggregate.UncommittedEvents()); len(events) > 0 {
		if err := r.db.WithContext(ctx).Create(&events).Error; err != nil {
			return err
		}
	}

	aggregate.MarkCommitted()
	r.tracker.TrackAggregate(aggregate.ID(), aggregate)
	return nil
}

func (r *GormShipmentRepository) Get(ctx context.Context, id kernel.UUID) (*shipment.Shipment, error) {
	if err := id.Validate(); err != nil {
		return nil, err
	}
	return r.first(ctx, errs.NewObjectNotFoundError("shipment", id.String()), "id = ?", id.Bytes())
}

func (r *GormShipmentRepository) GetByTrackingNumber(
	ctx context.Context,
	number shipment.TrackingNumber,
) (*shipment.Shipment, error) {
	return r.first(ctx,
		errs.NewObjectNotFoundError("tracking_number", number.String()),
		"tracking_number = ?", number.String())
}

func (r *GormShipmentRepository) GetAssigned(
	ctx context.Context,
	id kernel.UUID,
	courierID kernel.UUID,
) (*shipment.Shipment, error) {
	return r.first(ctx,
		errs.NewObjectNotFoundError("shipment", id.String()),
		"id = ? AND assigned_courier_id = ?", id.Bytes(), courierID.Bytes())
}

func (r *GormShipmentRepository) TrackingNumberExists(ctx context.Context, number shipment.TrackingNumber) (bool, error) {
	var count int64
	if err := r.db.WithContext(ctx).
		Model(&ShipmentDTO{}).
		Where("tracking_number = ?", number.String()).
		Count(&count).Error; err != nil {
		return false, err
	}
	return count > 0, nil
}

func (r *GormShipmentRepository) Delete(ctx context.Context, id kernel.UUID) error {
	var dto ShipmentDTO
	if err := r.db.WithContext(ctx).Select("id", "tracking_number").First(&dto, "id = ?", id.Bytes()).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return errs.NewObjectNotFoundError("shipment", id.String())
		}
		return err
	}

	if err := r.db.WithContext(ctx).Delete(&TrackingEventDTO{}, "shipment_id = ?", id.Bytes()).Error; err != nil {
		return err
	}
	if err := r.db.WithContext(ctx).Delete(&ShipmentDTO{}, "id = ?", id.Bytes()).Error; err != nil {
		return err
	}

	r.tracker.TrackAggregate(id, ports.RemovedShipment{TrackingNumber: dto.TrackingNumber})
	return nil
}

func (r *GormShipmentRepository) DeleteByCustomer(ctx context.Context, customerID kernel.UUID) error {
	owned := r.db.Model(&ShipmentDTO{}).Select("id").Where("customer_id = ?", customerID.Bytes())

	if err := r.db.WithContext(ctx).Delete(&TrackingEventDTO{}, "shipment_id IN (?)", owned).Error; err != nil {
		return err
	}
	if err := r.db.WithContext(ctx).Delete(&ShipmentDTO{}, "customer_id = ?", customerID.Bytes()).Error; err != nil {
		return err
	}

	r.tracker.TrackAggregate(customerID, ports.BulkShipmentChange{})
	return nil
}

func (r *GormShipmentRepository) UnassignCourier(ctx context.Context, courierID kernel.UUID) error {
	if err := r.db.WithContext(ctx).
		Model(&ShipmentDTO{}).
		Where("assigned_courier_id = ?", courierID.Bytes()).
		Updates(map[string]any{"assigned_courier_id": nil, "updated_at": time.Now().UTC()}).Error; err != nil {
		return err
	}
	if err := r.db.WithContext(ctx).
		Model(&TrackingEventDTO{}).
		Where("courier_id = ?", courierID.Bytes()).
		Update("courier_id", nil).Error; err != nil {
		return err
	}

	r.tracker.TrackAggregate(courierID, ports.BulkShipmentChange{})
	return nil
}

func (r *GormShipmentRepository) first(ctx context.Context, notFound error, query string, args ...any) (*shipment.Shipment, error) {
	var dto ShipmentDTO
	err := r.db.WithContext(ctx).
		Preload("Events", func(db *gorm.DB) *gorm.DB {
			return db.Order("created_at ASC, position ASC")
		}).
		Where(query, args...).
		First(&dto).Error
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, notFound
		}
		return nil, err
	}

	return toDomain(dto)
}
