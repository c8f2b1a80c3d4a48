package support

import (
	"errors"
	"slices"
	"strings"
	"time"

	"shiptrack/internal/core/domain/model/kernel"
	"shiptrack/internal/pkg/errs"
	"shiptrack/internal/pkg/guard"
)

// DefaultCommentAuthor labels comments whose author has no usable name.
const DefaultCommentAuthor = "Admin"

var (
	ErrTicketIsNotConstructed  = errors.New("Ticket must be created via NewTicket or RestoreTicket")
	ErrCommentIsNotConstructed = errors.New("Comment must be created via Ticket.AddComment or RestoreComment")
)

// Submission is what a visitor sends when opening a ticket.
type Submission struct {
	Name           string
	Email          string
	Role           string
	TrackingNumber string
	Subject        string
	Description    string
}

// Ticket is a support request. The tracking number is informational and is
// not linked to a shipment.
type Ticket struct {
	id             kernel.UUID
	name           string
	email          kernel.Email
	role           Role
	trackingNumber string
	subject        string
	description    string
	status         TicketStatus
	adminNotes     string
	comments       []*Comment
	uncommitted    []*Comment
	createdAt      time.Time
	updatedAt      time.Time

	guard guard.ConstructorGuard
}

// NewTicket opens a ticket in the Open state.
func NewTicket(id kernel.UUID, s Submission, now time.Time) (*Ticket, error) {
	name, nameErr := kernel.RequireText("name", s.Name)
	email, emailErr := kernel.NewEmail(s.Email)
	role, roleErr := ParseRole(strings.TrimSpace(s.Role))
	subject, subjectErr := kernel.RequireText("subject", s.Subject)
	description, descriptionErr := kernel.RequireText("description", s.Description)

	if err := errors.Join(id.Validate(), nameErr, emailErr, roleErr, subjectErr, descriptionErr); err != nil {
		return nil, err
	}

	now = now.UTC()
	return &Ticket{
		id:             id,
		name:           name,
		email:          email,
		role:           role,
		trackingNumber: strings.TrimSpace(s.TrackingNumber),
		subject:        subject,
		description:    description,
		status:         Open,
		createdAt:      now,
		updatedAt:      now,
		guard:          guard.NewConstructorGuard(),
	}, nil
}

// RestoreTicket rebuilds a persisted ticket. The stored status is kept as is.
func RestoreTicket(
	id kernel.UUID,
	s Submission,
	status string,
	adminNotes string,
	comments []*Comment,
	createdAt time.Time,
	updatedAt time.Time,
) (*Ticket, error) {
	email, emailErr := kernel.NewEmail(s.Email)
	if err := errors.Join(id.Validate(), emailErr); err != nil {
		return nil, err
	}
	if status == "" {
		status = string(Open)
	}

	ordered := slices.Clone(comments)
	slices.SortStableFunc(ordered, func(a, b *Comment) int {
		return a.createdAt.Compare(b.createdAt)
	})

	return &Ticket{
		id:             id,
		name:           s.Name,
		email:          email,
		role:           Role(s.Role),
		trackingNumber: s.TrackingNumber,
		subject:        s.Subject,
		description:    s.Description,
		status:         TicketStatus(status),
		adminNotes:     adminNotes,
		comments:       ordered,
		createdAt:      createdAt,
		updatedAt:      updatedAt,
		guard:          guard.NewConstructorGuard(),
	}, nil
}

func (t *Ticket) Validate() error {
	if t == nil {
		return ErrTicketIsNotConstructed
	}
	return t.guard.Validate(ErrTicketIsNotConstructed)
}

// AddComment appends a comment. A blank author becomes DefaultCommentAuthor.
func (t *Ticket) AddComment(author, body string, now time.Time) (*Comment, error) {
	text, err := kernel.RequireText("comment", body)
	if err != nil {
		return nil, err
	}
	author = strings.TrimSpace(author)
	if author == "" {
		author = DefaultCommentAuthor
	}

	now = now.UTC()
	c := &Comment{
		id:        kernel.NewUUID(),
		ticketID:  t.id,
		author:    author,
		body:      text,
		createdAt: now,
		guard:     guard.NewConstructorGuard(),
	}
	t.comments = append(t.comments, c)
	t.uncommitted = append(t.uncommitted, c)
	t.updatedAt = now
	return c, nil
}

// ChangeStatus moves the ticket to status. adminNotes, when non-nil,
// replaces the internal notes.
func (t *Ticket) ChangeStatus(status string, adminNotes *string, now time.Time) error {
	parsed, err := ParseTicketStatus(strings.TrimSpace(status))
	if err != nil {
		return err
	}
	t.status = parsed
	if adminNotes != nil {
		t.adminNotes = strings.TrimSpace(*adminNotes)
	}
	t.updatedAt = now.UTC()
	return nil
}

func (t *Ticket) UncommittedComments() []*Comment {
	return slices.Clone(t.uncommitted)
}

func (t *Ticket) MarkCommitted() {
	t.uncommitted = nil
}

func (t *Ticket) ID() kernel.UUID {
	return t.id
}

func (t *Ticket) Name() string {
	return t.name
}

func (t *Ticket) Email() kernel.Email {
	return t.email
}

func (t *Ticket) Role() Role {
	return t.role
}

// TrackingNumber is "" when the requester did not give one.
func (t *Ticket) TrackingNumber() string {
	return t.trackingNumber
}

func (t *Ticket) Subject() string {
	return t.subject
}

func (t *Ticket) Description() string {
	return t.description
}

func (t *Ticket) Status() TicketStatus {
	return t.status
}

func (t *Ticket) AdminNotes() string {
	return t.adminNotes
}

// Comments are ordered oldest first.
func (t *Ticket) Comments() []*Comment {
	return slices.Clone(t.comments)
}

func (t *Ticket) CreatedAt() time.Time {
	return t.createdAt
}

func (t *Ticket) UpdatedAt() time.Time {
	return t.updatedAt
}

// Comment is an immutable admin remark on a ticket.
type Comment struct {
	id        kernel.UUID
	ticketID  kernel.UUID
	author    string
	body      string
	createdAt time.Time

	guard guard.ConstructorGuard
}

func RestoreComment(id, ticketID kernel.UUID, author, body string, createdAt time.Time) (*Comment, error) {
	var bodyErr error
	if body == "" {
		bodyErr = errs.NewValueIsRequiredError("comment")
	}
	if err := errors.Join(id.Validate(), ticketID.Validate(), bodyErr); err != nil {
		return nil, err
	}
	return &Comment{
		id:        id,
		ticketID:  ticketID,
		author:    author,
		body:      body,
		createdAt: createdAt,
		guard:     guard.NewConstructorGuard(),
	}, nil
}

func (c *Comment) Validate() error {
	if c == nil {
		return ErrCommentIsNotConstructed
	}
	return c.guard.Validate(ErrCommentIsNotConstructed)
}

func (c *Comment) ID() kernel.UUID {
	return c.id
}

func (c *Comment) TicketID() kernel.UUID {
	return c.ticketID
}

func (c *Comment) Author() string {
	return c.author
}

func (c *Comment) Body() string {
	return c.body
}

func (c *Comment) CreatedAt() time.Time {
	return c.createdAt
}
