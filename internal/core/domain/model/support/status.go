package support

import "shiptrack/internal/pkg/errs"

// TicketStatus is the handling state of a support ticket.
type TicketStatus string

const (
	Open       TicketStatus = "Open"
	InProgress TicketStatus = "In Progress"
	Resolved   TicketStatus = "Resolved"
	Closed     TicketStatus = "Closed"
)

// TicketStatuses lists the states an admin may move a ticket to.
func TicketStatuses() []TicketStatus {
	return []TicketStatus{Open, InProgress, Resolved, Closed}
}

// ParseTicketStatus accepts exactly one of TicketStatuses.
func ParseTicketStatus(raw string) (TicketStatus, error) {
	if raw == "" {
		return "", errs.NewValueIsRequiredError("status")
	}
	for _, s := range TicketStatuses() {
		if string(s) == raw {
			return s, nil
		}
	}
	return "", errs.NewValueIsInvalidError("status")
}

func (s TicketStatus) String() string {
	return string(s)
}

// Role is the kind of requester who opened a ticket.
type Role string

const (
	RoleCustomer Role = "customer"
	RoleCourier  Role = "courier"
)

func ParseRole(raw string) (Role, error) {
	switch Role(raw) {
	case RoleCustomer, RoleCourier:
		return Role(raw), nil
	case "":
		return "", errs.NewValueIsRequiredError("role")
	default:
		return "", errs.NewValueIsInvalidError("role")
	}
}

func (r Role) String() string {
	return string(r)
}
