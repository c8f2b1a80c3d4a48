package commands

import (
	"context"
	"errors"
	"time"

	"shiptrack/internal/core/domain/model/kernel"
	"shiptrack/internal/core/domain/model/support"
	"shiptrack/internal/pkg/errs"
	"shiptrack/internal/pkg/guard"
)

var ErrCommentSupportTicketCommandIsNotConstructed = errors.New(
	"CommentSupportTicketCommand must be created via NewCommentSupportTicketCommand constructor",
)

// CommentSupportTicketCommand adds an admin comment to a ticket.
type CommentSupportTicketCommand struct { //nolint:recvcheck //using for validation
	ticketID kernel.UUID
	adminID  kernel.UUID
	body     string

	guard guard.ConstructorGuard
}

func NewCommentSupportTicketCommand(ticketID, adminID kernel.UUID, body string) (CommentSupportTicketCommand, error) {
	body, bodyErr := kernel.RequireText("comment", body)
	if err := errors.Join(ticketID.Validate(), adminID.Validate(), bodyErr); err != nil {
		return CommentSupportTicketCommand{}, err
	}
	return CommentSupportTicketCommand{
		ticketID: ticketID,
		adminID:  adminID,
		body:     body,
		guard:    guard.NewConstructorGuard(),
	}, nil
}

func (c CommentSupportTicketCommand) Validate() error {
	return c.guard.Validate(ErrCommentSupportTicketCommandIsNotConstructed)
}

func (c CommentSupportTicketCommand) TicketID() kernel.UUID {
	return c.ticketID
}

func (c CommentSupportTicketCommand) AdminID() kernel.UUID {
	return c.adminID
}

func (c CommentSupportTicketCommand) Body() string {
	return c.body
}

// CommentSupportTicketCommandHandler signs comments with the admin's full
// name, or with support.DefaultCommentAuthor when the account is gone.
type CommentSupportTicketCommandHandler struct {
	uowFactory SupportUoWFactory
}

func NewCommentSupportTicketCommandHandler(uowFactory SupportUoWFactory) CommentSupportTicketCommandHandler {
	return CommentSupportTicketCommandHandler{uowFactory: uowFactory}
}

func (h *CommentSupportTicketCommandHandler) Handle(ctx context.Context, cmd CommentSupportTicketCommand) error {
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

	author := support.DefaultCommentAuthor
	account, err := uow.AdminRepository().Get(ctx, cmd.AdminID())
	switch {
	case err == nil:
		author = account.Name().Full()
	case !errors.Is(err, errs.ErrObjectNotFound):
		return err
	}

	if _, err := ticket.AddComment(author, cmd.Body(), time.Now()); err != nil {
		return err
	}

	if err := ticketRepo.Update(ctx, ticket); err != nil {
		return err
	}

	return uow.Commit(ctx)
}
