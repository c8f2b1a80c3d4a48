// Package supportrepo persists support tickets and their comments.
package supportrepo

import (
	"time"

	"shiptrack/internal/core/domain/model/kernel"
	"shiptrack/internal/core/domain/model/support"

	"github.com/google/uuid"
)

type TicketDTO struct {
	ID             uuid.UUID    `gorm:"type:uuid;primaryKey"`
	Name           string       `gorm:"type:varchar(120);not null"`
	Email          string       `gorm:"type:varchar(255);not null"`
	Role           string       `gorm:"type:varchar(20);not null"`
	TrackingNumber string       `gorm:"type:varchar(64);not null;default:''"`
	Subject        string       `gorm:"type:varchar(255);not null"`
	Description    string       `gorm:"type:text;not null"`
	Status         string       `gorm:"type:varchar(50);not null;default:'Open';index"`
	AdminNotes     string       `gorm:"type:text;not null;default:''"`
	CreatedAt      time.Time    `gorm:"not null"`
	UpdatedAt      time.Time    `gorm:"not null;index"`
	Comments       []CommentDTO `gorm:"foreignKey:TicketID;constraint:OnDelete:CASCADE"`
}

func (TicketDTO) TableName() string {
	return "support_tickets"
}

type CommentDTO struct {
	ID        uuid.UUID `gorm:"type:uuid;primaryKey"`
	TicketID  uuid.UUID `gorm:"type:uuid;not null;index"`
	Author    string    `gorm:"type:varchar(120);not null"`
	Body      string    `gorm:"type:text;not null"`
	CreatedAt time.Time `gorm:"not null"`
}

func (CommentDTO) TableName() string {
	return "support_comments"
}

func fromDomain(t *support.Ticket) TicketDTO {
	return TicketDTO{
		ID:             t.ID().Bytes(),
		Name:           t.Name(),
		Email:          t.Email().String(),
		Role:           t.Role().String(),
		TrackingNumber: t.TrackingNumber(),
		Subject:        t.Subject(),
		Description:    t.Description(),
		Status:         t.Status().String(),
		AdminNotes:     t.AdminNotes(),
		CreatedAt:      t.CreatedAt(),
		UpdatedAt:      t.UpdatedAt(),
	}
}

func commentsFromDomain(comments []*support.Comment) []CommentDTO {
	dtos := make([]CommentDTO, 0, len(comments))
	for _, c := range comments {
		dtos = append(dtos, CommentDTO{
			ID:        c.ID().Bytes(),
			TicketID:  c.TicketID().Bytes(),
			Author:    c.Author(),
			Body:      c.Body(),
			CreatedAt: c.CreatedAt(),
		})
	}
	return dtos
}

func toDomain(dto TicketDTO) (*support.Ticket, error) {
	id, err := kernel.UUIDFromBytes(dto.ID[:])
	if err != nil {
		return nil, err
	}

	comments := make([]*support.Comment, 0, len(dto.Comments))
	for _, c := range dto.Comments {
		commentID, idErr := kernel.UUIDFromBytes(c.ID[:])
		if idErr != nil {
			return nil, idErr
		}
		comment, commentErr := support.RestoreComment(commentID, id, c.Author, c.Body, c.CreatedAt.UTC())
		if commentErr != nil {
			return nil, commentErr
		}
		comments = append(comments, comment)
	}

	return support.RestoreTicket(id, support.Submission{
		Name:           dto.Name,
		Email:          dto.Email,
		Role:           dto.Role,
		TrackingNumber: dto.TrackingNumber,
		Subject:        dto.Subject,
		Description:    dto.Description,
	}, dto.Status, dto.AdminNotes, comments, dto.CreatedAt.UTC(), dto.UpdatedAt.UTC())
}
