package access

import (
	"shiptrack/internal/core/domain/model/kernel"
	"shiptrack/internal/pkg/errs"
)

// Role is the single enumerated role of a principal.
type Role string

const (
	Public  Role = "public"
	Admin   Role = "admin"
	Courier Role = "courier"
)

func ParseRole(raw string) (Role, error) {
	switch Role(raw) {
	case Admin, Courier:
		return Role(raw), nil
	case Public, "":
		return Public, nil
	default:
		return "", errs.NewValueIsInvalidError("role")
	}
}

func (r Role) String() string {
	return string(r)
}

// Principal is the caller of an operation. The zero value is anonymous.
type Principal struct {
	ID   kernel.UUID
	Role Role
}

func Anonymous() Principal {
	return Principal{Role: Public}
}

func NewPrincipal(id kernel.UUID, role Role) (Principal, error) {
	if err := id.Validate(); err != nil {
		return Principal{}, err
	}
	if role != Admin && role != Courier {
		return Principal{}, errs.NewValueIsInvalidError("role")
	}
	return Principal{ID: id, Role: role}, nil
}

// IsAuthenticated reports whether the principal came from a valid session.
func (p Principal) IsAuthenticated() bool {
	return (p.Role == Admin || p.Role == Courier) && p.ID.Validate() == nil
}

func (p Principal) IsAdmin() bool {
	return p.IsAuthenticated() && p.Role == Admin
}

func (p Principal) IsCourier() bool {
	return p.IsAuthenticated() && p.Role == Courier
}

// Requirement tags an operation with who may call it.
type Requirement struct {
	authenticated bool
	role          Role
}

var (
	RequirePublic        = Requirement{}
	RequireAuthenticated = Requirement{authenticated: true}
	RequireAdmin         = Requirement{authenticated: true, role: Admin}
	RequireCourier       = Requirement{authenticated: true, role: Courier}
)

// Role returns the specific role demanded, or Public when any caller (or any
// authenticated caller) is accepted.
func (r Requirement) Role() Role {
	if r.role == "" {
		return Public
	}
	return r.role
}

// Destination is a named entry point a denied caller is sent to.
type Destination string

const (
	AdminLogin       Destination = "admin_login"
	CourierLogin     Destination = "courier_login"
	AdminDashboard   Destination = "admin_dashboard"
	CourierDashboard Destination = "courier_dashboard"
)

// Outcome classifies a Decision.
type Outcome int

const (
	Allow Outcome = iota
	// Unauthenticated: no session on a protected operation.
	Unauthenticated
	// Forbidden: authenticated with the wrong role.
	Forbidden
)

// Decision is the result of Authorize. Redirect is empty when allowed.
type Decision struct {
	Outcome  Outcome
	Redirect Destination
}

func (d Decision) Allowed() bool {
	return d.Outcome == Allow
}

// Authorize decides whether p may invoke an operation tagged with req.
// Callers without a session are sent to the login entry of the required
// role (courier login for courier operations, admin login otherwise).
// Callers with the wrong role are sent to their own home.
func Authorize(p Principal, req Requirement) Decision {
	if !req.authenticated {
		return Decision{Outcome: Allow}
	}

	if !p.IsAuthenticated() {
		if req.role == Courier {
			return Decision{Outcome: Unauthenticated, Redirect: CourierLogin}
		}
		return Decision{Outcome: Unauthenticated, Redirect: AdminLogin}
	}

	if req.role != "" && p.Role != req.role {
		return Decision{Outcome: Forbidden, Redirect: Home(p)}
	}

	return Decision{Outcome: Allow}
}

// Home is the landing surface of an authenticated principal.
func Home(p Principal) Destination {
	if p.Role == Courier {
		return CourierDashboard
	}
	return AdminDashboard
}

// LoginFor is where a principal of role r signs in again, e.g. after logout.
func LoginFor(r Role) Destination {
	if r == Courier {
		return CourierLogin
	}
	return AdminLogin
}
