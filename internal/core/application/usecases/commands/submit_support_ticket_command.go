package commands

import (
	"context"
	"errors"
	"time"

	"shiptrack/internal/core/domain/model/kernel"
	"shiptrack/internal/core/domain/model/support"
	"shiptrack/internal/pkg/guard"
)

var ErrSubmitSupportTicketCommandIsNotConstructed = errors.New(
	"SubmitSupportTicketCommand must be created via NewSubmitSupportTicketCommand constructor",
)

// SubmitSupportTicketCommand is the public ticket intake.
type SubmitSupportTicketCommand struct { //nolint:recvcheck //using for validation
	ticketID   kernel.UUID
	submission support.Submission

	guard guard.ConstructorGuard
}

func NewSubmitSupportTicketCommand(submission support.Submission) (SubmitSupportTicketCommand, error) {
	return SubmitSupportTicketCommand{
		ticketID:   kernel.NewUUID(),
		submission: submission,
		guard:      guard.NewConstructorGuard(),
	}, nil
}

func (c SubmitSupportTicketCommand) Validate() error {
	return c.guard.Validate(ErrSubmitSupportTicketCommandIsNotConstructed)
}

func (c SubmitSupportTicketCommand) TicketID() kernel.UUID {
	return c.ticketID
}

func (c SubmitSupportTicketCommand) Submission() support.Submission {
	return c.submission
}

type SubmitSupportTicketCommandHandler struct {
	uowFactory SupportUoWFactory
}

func NewSubmitSupportTicketCommandHandler(uowFactory SupportUoWFactory) SubmitSupportTicketCommandHandler {
	return SubmitSupportTicketCommandHandler{uowFactory: uowFactory}
}

// Handle stores the ticket in the Open state.
func (h *SubmitSupportTicketCommandHandler) Handle(ctx context.Context, cmd SubmitSupportTicketCommand) error {
	if err := cmd.Validate(); err != nil {
		return err
	}

	ticket, err := support.NewTicket(cmd.TicketID(), cmd.Submission(), time.Now())
	if err != nil {
		return err
	}

	uow := h.uowFactory.Create()
	if err := uow.Begin(ctx); err != nil {
		return err
	}

	defer func() {
		_ = uow.Rollback(ctx)
	}()

	if err := uow.SupportTicketRepository().Add(ctx, ticket); err != nil {
		return err
	}

	return uow.Commit(ctx)
}
