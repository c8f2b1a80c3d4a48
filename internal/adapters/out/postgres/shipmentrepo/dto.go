// Package shipmentrepo persists shipments and their tracking timelines.
package shipmentrepo

import (
	"time"

	"shiptrack/internal/core/domain/model/kernel"
	"shiptrack/internal/core/domain/model/shipment"

	"github.com/google/uuid"
)

// ShipmentDTO is a row of the shipments table. Status is not a column: it
// is derived from the timeline.
type ShipmentDTO struct {
	ID                uuid.UUID          `gorm:"type:uuid;primaryKey"`
	CustomerID        uuid.UUID          `gorm:"type:uuid;not null;index"`
	SenderAddress     string             `gorm:"type:varchar(255);not null"`
	ReceiverAddress   string             `gorm:"type:varchar(255);not null"`
	City              string             `gorm:"type:varchar(120);not null;default:''"`
	RequestedDate     time.Time          `gorm:"not null;index"`
	TrackingNumber    string             `gorm:"type:varchar(64);not null;uniqueIndex"`
	AssignedCourierID *uuid.UUID         `gorm:"type:uuid;index"`
	CreatedAt         time.Time          `gorm:"not null;index"`
	UpdatedAt         time.Time          `gorm:"not null"`
	Events            []TrackingEventDTO `gorm:"foreignKey:ShipmentID;constraint:OnDelete:CASCADE"`
}

func (ShipmentDTO) TableName() string {
	return "shipments"
}

// TrackingEventDTO is an insert-only timeline row. (shipment_id, position)
// is unique and orders events created in the same instant.
type TrackingEventDTO struct {
	ID                  uuid.UUID  `gorm:"type:uuid;primaryKey"`
	ShipmentID          uuid.UUID  `gorm:"type:uuid;not null;uniqueIndex:idx_tracking_events_shipment_position,priority:1"`
	Position            int        `gorm:"not null;uniqueIndex:idx_tracking_events_shipment_position,priority:2"`
	CourierID           *uuid.UUID `gorm:"type:uuid;index"`
	Status              string     `gorm:"type:varchar(50);not null;index"`
	LocationDescription string     `gorm:"type:varchar(255);not null"`
	Notes               string     `gorm:"type:text;not null;default:''"`
	ProofURL            *string    `gorm:"type:varchar(512)"`
	CreatedAt           time.Time  `gorm:"not null;index"`
}

func (TrackingEventDTO) TableName() string {
	return "tracking_events"
}

func fromDomain(s *shipment.Shipment, events []*shipment.TrackingEvent) ShipmentDTO {
	d := s.Details()
	return ShipmentDTO{
		ID:                s.ID().Bytes(),
		CustomerID:        d.CustomerID.Bytes(),
		SenderAddress:     d.SenderAddress,
		ReceiverAddress:   d.ReceiverAddress,
		City:              d.City,
		RequestedDate:     d.RequestedDate,
		TrackingNumber:    s.TrackingNumber().String(),
		AssignedCourierID: kernel.UUIDPtrToBytes(s.CourierID()),
		CreatedAt:         s.CreatedAt(),
		UpdatedAt:         s.CreatedAt(),
		Events:            eventsFromDomain(events),
	}
}

func eventsFromDomain(events []*shipment.TrackingEvent) []TrackingEventDTO {
	dtos := make([]TrackingEventDTO, 0, len(events))
	for _, e := range events {
		dtos = append(dtos, TrackingEventDTO{
			ID:                  e.ID().Bytes(),
			ShipmentID:          e.ShipmentID().Bytes(),
			Position:            e.Position(),
			CourierID:           kernel.UUIDPtrToBytes(e.CourierID()),
			Status:              e.Status().String(),
			LocationDescription: e.Location(),
			Notes:               e.Notes(),
			ProofURL:            e.ProofURL(),
			CreatedAt:           e.CreatedAt(),
		})
	}
	return dtos
}

func toDomain(dto ShipmentDTO) (*shipment.Shipment, error) {
	id, err := kernel.UUIDFromBytes(dto.ID[:])
	if err != nil {
		return nil, err
	}
	customerID, err := kernel.UUIDFromBytes(dto.CustomerID[:])
	if err != nil {
		return nil, err
	}
	courierID, err := kernel.UUIDPtrFromBytes(dto.AssignedCourierID)
	if err != nil {
		return nil, err
	}
	number, err := shipment.NewTrackingNumber(dto.TrackingNumber)
	if err != nil {
		return nil, err
	}

	events := make([]*shipment.TrackingEvent, 0, len(dto.Events))
	for _, e := range dto.Events {
		event, eventErr := eventToDomain(e)
		if eventErr != nil {
			return nil, eventErr
		}
		events = append(events, event)
	}

	return shipment.RestoreShipment(id, number, shipment.Details{
		CustomerID:      customerID,
		SenderAddress:   dto.SenderAddress,
		ReceiverAddress: dto.ReceiverAddress,
		City:            dto.City,
		RequestedDate:   dto.RequestedDate.UTC(),
	}, courierID, dto.CreatedAt.UTC(), events)
}

func eventToDomain(dto TrackingEventDTO) (*shipment.TrackingEvent, error) {
	id, err := kernel.UUIDFromBytes(dto.ID[:])
	if err != nil {
		return nil, err
	}
	shipmentID, err := kernel.UUIDFromBytes(dto.ShipmentID[:])
	if err != nil {
		return nil, err
	}
	courierID, err := kernel.UUIDPtrFromBytes(dto.CourierID)
	if err != nil {
		return nil, err
	}

	return shipment.RestoreTrackingEvent(
		id,
		shipmentID,
		courierID,
		dto.Status,
		dto.LocationDescription,
		dto.Notes,
		dto.ProofURL,
		dto.CreatedAt.UTC(),
		dto.Position,
	)
}
