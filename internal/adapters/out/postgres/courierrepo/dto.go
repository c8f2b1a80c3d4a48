// Package courierrepo provides data transfer objects and mapping functions for courier persistence.
// It converts between the courier aggregate and its row in the couriers table.
package courierrepo

import (
	"time"

	"shiptrack/internal/core/domain/model/courier"
	"shiptrack/internal/core/domain/model/kernel"

	"github.com/google/uuid"
)

// CourierDTO represents the database structure for persisting courier aggregates.
type CourierDTO struct {
	ID           uuid.UUID `gorm:"type:uuid;primaryKey"`
	FirstName    string    `gorm:"type:varchar(120);not null"`
	LastName     string    `gorm:"type:varchar(120);not null"`
	Email        string    `gorm:"type:varchar(255);not null;uniqueIndex"`
	Phone        string    `gorm:"type:varchar(50);not null"`
	Region       string    `gorm:"type:varchar(120);not null"`
	HireDate     time.Time `gorm:"type:date;not null"`
	PasswordHash string    `gorm:"type:varchar(255);not null"`
	CreatedAt    time.Time `gorm:"not null;index"`
	UpdatedAt    time.Time `gorm:"not null"`
}

// TableName overrides GORM's default "courier_dtos".
func (CourierDTO) TableName() string {
	return "couriers"
}

// fromDomain converts a courier domain aggregate to its database representation.
func fromDomain(c *courier.Courier) CourierDTO {
	p := c.Profile()
	return CourierDTO{
		ID:           c.ID().Bytes(),
		FirstName:    p.FirstName,
		LastName:     p.LastName,
		Email:        p.Email,
		Phone:        p.Phone,
		Region:       p.Region,
		HireDate:     p.HireDate,
		PasswordHash: c.PasswordHash(),
		CreatedAt:    c.CreatedAt(),
		UpdatedAt:    c.UpdatedAt(),
	}
}

// toDomain converts a database DTO to a courier domain aggregate using RestoreCourier.
func toDomain(dto CourierDTO) (*courier.Courier, error) {
	id, err := kernel.UUIDFromBytes(dto.ID[:])
	if err != nil {
		return nil, err
	}

	return courier.RestoreCourier(id, courier.Profile{
		FirstName: dto.FirstName,
		LastName:  dto.LastName,
		Email:     dto.Email,
		Phone:     dto.Phone,
		Region:    dto.Region,
		HireDate:  dto.HireDate,
	}, dto.PasswordHash, dto.CreatedAt, dto.UpdatedAt)
}
