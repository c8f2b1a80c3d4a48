// Package customerrepo persists customers with GORM.
package customerrepo

import (
	"time"

	"shiptrack/internal/core/domain/model/customer"
	"shiptrack/internal/core/domain/model/kernel"

	"github.com/google/uuid"
)

// CustomerDTO is the row of the customers table.
type CustomerDTO struct {
	ID        uuid.UUID `gorm:"type:uuid;primaryKey"`
	FirstName string    `gorm:"type:varchar(120);not null"`
	LastName  string    `gorm:"type:varchar(120);not null"`
	Email     string    `gorm:"type:varchar(255);not null;uniqueIndex"`
	Phone     string    `gorm:"type:varchar(50);not null"`
	Address   string    `gorm:"type:varchar(255);not null"`
	City      string    `gorm:"type:varchar(120);not null"`
	CreatedAt time.Time `gorm:"not null;index"`
	UpdatedAt time.Time `gorm:"not null"`
}

func (CustomerDTO) TableName() string {
	return "customers"
}

func fromDomain(c *customer.Customer) CustomerDTO {
	p := c.Profile()
	return CustomerDTO{
		ID:        c.ID().Bytes(),
		FirstName: p.FirstName,
		LastName:  p.LastName,
		Email:     p.Email,
		Phone:     p.Phone,
		Address:   p.Address,
		City:      p.City,
		CreatedAt: c.CreatedAt(),
		UpdatedAt: c.UpdatedAt(),
	}
}

func toDomain(dto CustomerDTO) (*customer.Customer, error) {
	id, err := kernel.UUIDFromBytes(dto.ID[:])
	if err != nil {
		return nil, err
	}
	return customer.RestoreCustomer(id, customer.Profile{
		FirstName: dto.FirstName,
		LastName:  dto.LastName,
		Email:     dto.Email,
		Phone:     dto.Phone,
		Address:   dto.Address,
		City:      dto.City,
	}, dto.CreatedAt, dto.UpdatedAt)
}
