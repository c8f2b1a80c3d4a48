package commands

import (
	"context"
	"errors"
	"time"

	"shiptrack/internal/core/domain/model/kernel"
	"shiptrack/internal/pkg/guard"
)

var ErrChangeSupportTicketStatusCommandIsNotConstructed = errors.New(
	"ChangeSupportTicketStatusCommand must be created via NewChangeSupportTicketStatusCommand constructor",
)

// ChangeSupportTicketStatusCommand moves a ticket to another status. A nil
// adminNotes keeps the stored notes.
type ChangeSupportTicketStatusCommand struct { //nolint:recvcheck //using for validation
	ticketID   kernel.UUID
	status     string
	adminNotes *string

	guard guard.ConstructorGuard
}

func NewChangeSupportTicketStatusCommand(
	ticketID kernel.UUID,
	status string,
	adminNotes *string,
) (ChangeSupportTicketStatusCommand, error) {
	if err := ticketID.Validate(); err != nil {
		return ChangeSupportTicketStatusCommand{}, err
	}
	return ChangeSupportTicketStatusCommand{
		ticketID:   ticketID,
		status:     status,
		adminNotes: adminNotes,
		guard:      guard.NewConstructorGuard(),
	}, nil
}

func (c ChangeSupportTicketStatusCommand) Validate() error {
	return c.guard.Validate(ErrChangeSupportTicketStatusCommandIsNotConstructed)
}

func (c ChangeSupportTicketStatusCommand) TicketID() kernel.UUID {
	return c.ticketID
}

func (c ChangeSupportTicketStatusCommand) Status() string {
	return c.status
}

func (c ChangeSupportTicketStatusCommand) AdminNotes() *string {
	return c.adminNotes
}

type ChangeSupportTicketStatusCommandHandler struct {
	uowFactory SupportUoWFactory
}

func NewChangeSupportTicketStatusCommandHandler(uowFactory SupportUoWFactory) ChangeSupportTicketStatusCommandHandler {
	return ChangeSupportTicketStatusCommandHandler{uowFactory: uowFactory}
}

func (h *ChangeSupportTicketStatusCommandHandler) Handle(ctx context.Context, cmd ChangeSupportTicketStatusCommand) error {
	if err := cmd.Validate(); err != nil {
		return err
	}

	uow := h.uowFactory.Create()
	if err := uow.Begin(ctx); err != nil {
		return err
	}

	defer func() {
		_ = uow.Rollback(ctx)
	}()

	ticketRepo := uow.SupportTicketRepository()
	ticket, err := ticketRepo.Get(ctx, cmd.TicketID())
	if err != nil {
		return err
	}

	if err := ticket.ChangeStatus(cmd.Status(), cmd.AdminNotes(), time.Now()); err != nil {
		return err
	}

	if err := ticketRepo.Update(ctx, ticket); err != nil {
		return err
	}

	return uow.Commit(ctx)
}
