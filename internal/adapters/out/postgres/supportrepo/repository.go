package supportrepo

import (
	"context"
	"errors"

	"shiptrack/internal/core/domain/model/kernel"
	"shiptrack/internal/core/domain/model/support"
	"shiptrack/internal/pkg/errs"

	"gorm.io/gorm"
)

type GormSupportTicketRepository struct {
	db      *gorm.DB
	tracker aggregateTracker
}

type aggregateTracker interface {
	TrackAggregate(id kernel.UUID, aggregate any)
}

func NewGormSupportTicketRepository(db *gorm.DB, tracker aggregateTracker) *GormSupportTicketRepository {
	return &GormSupportTicketRepository{db: db, tracker: tracker}
}

func (r *GormSupportTicketRepository) Add(ctx context.Context, ticket *support.Ticket) error {
	if err := ticket.Validate(); err != nil {
		return err
	}

	dto := fromDomain(ticket)
	dto.Comments = commentsFromDomain(ticket.UncommittedComments())
	if err := r.db.WithContext(ctx).Create(&dto).Error; err != nil {
		return err
	}

	ticket.MarkCommitted()
	r.tracker.TrackAggregate(ticket.ID(), ticket)
	return nil
}

func (r *GormSupportTicketRepository) Update(ctx context.Context, ticket *support.Ticket) error {
	if err := ticket.Validate(); err != nil {
		return err
	}

	result := r.db.WithContext(ctx).
		Model(&TicketDTO{}).
		Where("id = ?", ticket.ID().Bytes()).
		Updates(map[string]any{
			"status":      ticket.Status().String(),
			"admin_notes": ticket.AdminNotes(),
			"updated_at":  ticket.UpdatedAt(),
		})
	if result.Error != nil {
		return result.Error
	}
	if result.RowsAffected == 0 {
		return errs.NewObjectNotFoundError("ticket", ticket.ID().String())
	}

	if comments := commentsFromDomain(ticket.UncommittedComments()); len(comments) > 0 {
		if err := r.db.WithContext(ctx).Create(&comments).Error; err != nil {
			return err
		}
	}

	ticket.MarkCommitted()
	r.tracker.TrackAggregate(ticket.ID(), ticket)
	return nil
}

func (r *GormSupportTicketRepository) Get(ctx context.Context, id kernel.UUID) (*support.Ticket, error) {
	if err := id.Validate(); err != nil {
		return nil, err
	}

	var dto TicketDTO
	err := r.db.WithContext(ctx).
		Preload("Comments", func(db *gorm.DB) *gorm.DB {
			return db.Order("created_at ASC")
		}).
		First(&dto, "id = ?", id.Bytes()).Error
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, errs.NewObjectNotFoundError("ticket", id.String())
		}
		return nil, err
	}

	return toDomain(dto)
}
