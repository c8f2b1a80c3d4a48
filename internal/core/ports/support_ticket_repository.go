package ports

import (
	"context"

	"shiptrack/internal/core/domain/model/kernel"
	"shiptrack/internal/core/domain/model/support"
)

type SupportTicketRepository interface {
	Add(ctx context.Context, ticket *support.Ticket) error

	// Update saves status and notes and inserts uncommitted comments.
	Update(ctx context.Context, ticket *support.Ticket) error

	// Get loads a ticket with its comments.
	Get(ctx context.Context, id kernel.UUID) (*support.Ticket, error)
}
