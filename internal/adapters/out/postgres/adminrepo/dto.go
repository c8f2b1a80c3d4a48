// Package adminrepo persists admin accounts.
package adminrepo

import (
	"time"

	"shiptrack/internal/core/domain/model/admin"
	"shiptrack/internal/core/domain/model/kernel"

	"github.com/google/uuid"
)

type AdminDTO struct {
	ID           uuid.UUID `gorm:"type:uuid;primaryKey"`
	FirstName    string    `gorm:"type:varchar(120);not null"`
	LastName     string    `gorm:"type:varchar(120);not null"`
	Email        string    `gorm:"type:varchar(255);not null;uniqueIndex"`
	Phone        string    `gorm:"type:varchar(50);not null"`
	PasswordHash string    `gorm:"type:varchar(255);not null"`
	CreatedAt    time.Time `gorm:"not null"`
	UpdatedAt    time.Time `gorm:"not null"`
}

func (AdminDTO) TableName() string {
	return "admins"
}

func fromDomain(a *admin.Admin) AdminDTO {
	return AdminDTO{
		ID:           a.ID().Bytes(),
		FirstName:    a.Name().First(),
		LastName:     a.Name().Last(),
		Email:        a.Email().String(),
		Phone:        a.Phone(),
		PasswordHash: a.PasswordHash(),
		CreatedAt:    a.CreatedAt(),
		UpdatedAt:    a.UpdatedAt(),
	}
}

func toDomain(dto AdminDTO) (*admin.Admin, error) {
	id, err := kernel.UUIDFromBytes(dto.ID[:])
	if err != nil {
		return nil, err
	}
	return admin.RestoreAdmin(id, admin.Profile{
		FirstName: dto.FirstName,
		LastName:  dto.LastName,
		Email:     dto.Email,
		Phone:     dto.Phone,
	}, dto.PasswordHash, dto.CreatedAt, dto.UpdatedAt)
}
