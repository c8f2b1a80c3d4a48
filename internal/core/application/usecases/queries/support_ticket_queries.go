package queries

import (
	"context"
	"errors"
	"time"

	"shiptrack/internal/core/domain/model/kernel"
	"shiptrack/internal/core/domain/model/support"
	"shiptrack/internal/core/ports"
	"shiptrack/internal/pkg/guard"

	"github.com/google/uuid"
	"gorm.io/gorm"
)

var (
	ErrListSupportTicketsQueryIsNotConstructed = errors.New(
		"ListSupportTicketsQuery must be created via NewListSupportTicketsQuery constructor",
	)
	ErrGetSupportTicketQueryIsNotConstructed = errors.New(
		"GetSupportTicketQuery must be created via NewGetSupportTicketQuery constructor",
	)
)

type SupportTicketListItem struct {
	ID             kernel.UUID `json:"id"`
	Name           string      `json:"name"`
	Email          string      `json:"email"`
	Role           string      `json:"role"`
	TrackingNumber string      `json:"tracking_number,omitempty"`
	Subject        string      `json:"subject"`
	Status         string      `json:"status"`
	CreatedAt      time.Time   `json:"created_at"`
	UpdatedAt      time.Time   `json:"updated_at"`
}

type ListSupportTicketsQuery struct {
	status string

	guard guard.ConstructorGuard
}

// NewListSupportTicketsQuery filters by exact ticket status; an empty status
// lists every ticket.
func NewListSupportTicketsQuery(status string) (ListSupportTicketsQuery, error) {
	if status != "" {
		if _, err := support.ParseTicketStatus(status); err != nil {
			return ListSupportTicketsQuery{}, err
		}
	}
	return ListSupportTicketsQuery{status: status, guard: guard.NewConstructorGuard()}, nil
}

func (q ListSupportTicketsQuery) Validate() error {
	return q.guard.Validate(ErrListSupportTicketsQueryIsNotConstructed)
}

type ListSupportTicketsQueryHandler struct {
	db *gorm.DB
}

func NewListSupportTicketsQueryHandler(db *gorm.DB) ListSupportTicketsQueryHandler {
	return ListSupportTicketsQueryHandler{db: db}
}

// Handle returns tickets, most recently updated first.
func (h ListSupportTicketsQueryHandler) Handle(
	ctx context.Context,
	query ListSupportTicketsQuery,
) ([]SupportTicketListItem, error) {
	if err := query.Validate(); err != nil {
		return nil, err
	}

	statement := `
		SELECT
			id,
			name,
			email,
			role,
			tracking_number,
			subject,
			status,
			created_at,
			updated_at
		FROM support_tickets
	`
	var args []any
	if query.status != "" {
		statement += "WHERE status = ?\n"
		args = append(args, query.status)
	}
	statement += "ORDER BY updated_at DESC"

	rows, err := h.db.WithContext(ctx).Raw(statement, args...).Rows()
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	tickets := make([]SupportTicketListItem, 0)
	for rows.Next() {
		var item SupportTicketListItem
		var id uuid.UUID

		if err := rows.Scan(
			&id,
			&item.Name,
			&item.Email,
			&item.Role,
			&item.TrackingNumber,
			&item.Subject,
			&item.Status,
			&item.CreatedAt,
			&item.UpdatedAt,
		); err != nil {
			return nil, err
		}
		if item.ID, err = kernel.UUIDFromBytes(id[:]); err != nil {
			return nil, err
		}
		item.CreatedAt = item.CreatedAt.UTC()
		item.UpdatedAt = item.UpdatedAt.UTC()
		tickets = append(tickets, item)
	}
	if err := rows.Err(); err != nil {
		return nil, err
	}

	return tickets, nil
}

type SupportCommentView struct {
	Author    string    `json:"author"`
	Body      string    `json:"body"`
	CreatedAt time.Time `json:"created_at"`
}

type SupportTicketView struct {
	SupportTicketListItem
	Description string               `json:"description"`
	AdminNotes  string               `json:"admin_notes"`
	Comments    []SupportCommentView `json:"comments"`
}

type GetSupportTicketQuery struct {
	ticketID kernel.UUID

	guard guard.ConstructorGuard
}

func NewGetSupportTicketQuery(ticketID kernel.UUID) (GetSupportTicketQuery, error) {
	if err := ticketID.Validate(); err != nil {
		return GetSupportTicketQuery{}, err
	}
	return GetSupportTicketQuery{ticketID: ticketID, guard: guard.NewConstructorGuard()}, nil
}

func (q GetSupportTicketQuery) Validate() error {
	return q.guard.Validate(ErrGetSupportTicketQueryIsNotConstructed)
}

type GetSupportTicketQueryHandler struct {
	uowFactory ports.UnitOfWorkFactory
}

func NewGetSupportTicketQueryHandler(uowFactory ports.UnitOfWorkFactory) GetSupportTicketQueryHandler {
	return GetSupportTicketQueryHandler{uowFactory: uowFactory}
}

// Handle returns the ticket with its comments, oldest comment first.
func (h GetSupportTicketQueryHandler) Handle(ctx context.Context, query GetSupportTicketQuery) (SupportTicketView, error) {
	if err := query.Validate(); err != nil {
		return SupportTicketView{}, err
	}

	t, err := h.uowFactory.Create().SupportTicketRepository().Get(ctx, query.ticketID)
	if err != nil {
		return SupportTicketView{}, err
	}

	view := SupportTicketView{
		SupportTicketListItem: SupportTicketListItem{
			ID:             t.ID(),
			Name:           t.Name(),
			Email:          t.Email().String(),
			Role:           t.Role().String(),
			TrackingNumber: t.TrackingNumber(),
			Subject:        t.Subject(),
			Status:         t.Status().String(),
			CreatedAt:      t.CreatedAt(),
			UpdatedAt:      t.UpdatedAt(),
		},
		Description: t.Description(),
		AdminNotes:  t.AdminNotes(),
		Comments:    make([]SupportCommentView, 0, len(t.Comments())),
	}
	for _, c := range t.Comments() {
		view.Comments = append(view.Comments, SupportCommentView{
			Author:    c.Author(),
			Body:      c.Body(),
			CreatedAt: c.CreatedAt(),
		})
	}
	return view, nil
}
