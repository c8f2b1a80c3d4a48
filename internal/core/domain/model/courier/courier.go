package courier

import (
	"errors"
	"time"

	"shiptrack/internal/core/domain/model/kernel"
	"shiptrack/internal/pkg/errs"
	"shiptrack/internal/pkg/guard"
)

// HireDateLayout is the wire and storage format of a hire date.
const HireDateLayout = "2006-01-02"

var (
	// ErrPasswordHashIsRequired is returned when a courier is built without credentials.
	ErrPasswordHashIsRequired = errs.NewValueIsRequiredError("password_hash")
	// ErrCourierIsNotConstructed is returned when using an improperly initialized Courier.
	ErrCourierIsNotConstructed = errors.New("Courier must be created via NewCourier or RestoreCourier")
)

// Profile is the editable part of a courier. HireDate is optional: a zero
// value means "today" on creation and "unchanged" on update.
type Profile struct {
	FirstName string
	LastName  string
	Email     string
	Phone     string
	Region    string
	HireDate  time.Time
}

// Courier is an authenticated delivery agent. Shipments and tracking events
// reference couriers; deleting a courier clears those references.
//
// Business rules:
//   - name, email, phone and region are required
//   - email is unique among couriers (enforced by storage) and normalized
//   - a password hash is always present
type Courier struct {
	id           kernel.UUID
	name         kernel.PersonName
	email        kernel.Email
	phone        string
	region       string
	hireDate     time.Time
	passwordHash string
	createdAt    time.Time
	updatedAt    time.Time

	guard guard.ConstructorGuard
}

// NewCourier creates a courier. passwordHash must already be hashed.
//
// Example:
//
//	hash, _ := auth.HashPassword(tempPassword)
//	c, err := courier.NewCourier(kernel.NewUUID(), profile, hash, time.Now())
func NewCourier(id kernel.UUID, profile Profile, passwordHash string, now time.Time) (*Courier, error) {
	now = now.UTC()
	c := &Courier{
		id:        id,
		createdAt: now,
		updatedAt: now,
		guard:     guard.NewConstructorGuard(),
	}

	if profile.HireDate.IsZero() {
		profile.HireDate = now
	}
	if err := errors.Join(
		id.Validate(),
		c.setProfile(profile),
		c.SetPasswordHash(passwordHash),
	); err != nil {
		return nil, err
	}
	return c, nil
}

// RestoreCourier rebuilds a persisted courier.
func RestoreCourier(
	id kernel.UUID,
	profile Profile,
	passwordHash string,
	createdAt time.Time,
	updatedAt time.Time,
) (*Courier, error) {
	c := &Courier{
		id:        id,
		createdAt: createdAt,
		updatedAt: updatedAt,
		guard:     guard.NewConstructorGuard(),
	}
	if err := errors.Join(
		id.Validate(),
		c.setProfile(profile),
		c.SetPasswordHash(passwordHash),
	); err != nil {
		return nil, err
	}
	return c, nil
}

// Update replaces the profile; a zero HireDate keeps the current one.
func (c *Courier) Update(profile Profile, now time.Time) error {
	if profile.HireDate.IsZero() {
		profile.HireDate = c.hireDate
	}
	next := *c
	if err := next.setProfile(profile); err != nil {
		return err
	}
	next.updatedAt = now.UTC()
	*c = next
	return nil
}

func (c *Courier) SetPasswordHash(hash string) error {
	if hash == "" {
		return ErrPasswordHashIsRequired
	}
	c.passwordHash = hash
	return nil
}

func (c *Courier) setProfile(p Profile) error {
	name, nameErr := kernel.NewPersonName(p.FirstName, p.LastName)
	email, emailErr := kernel.NewEmail(p.Email)
	phone, phoneErr := kernel.RequireText("phone", p.Phone)
	region, regionErr := kernel.RequireText("region", p.Region)
	if err := errors.Join(nameErr, emailErr, phoneErr, regionErr); err != nil {
		return err
	}

	c.name = name
	c.email = email
	c.phone = phone
	c.region = region
	y, m, d := p.HireDate.Date()
	c.hireDate = time.Date(y, m, d, 0, 0, 0, 0, time.UTC)
	return nil
}

// Validate ensures the Courier was created through one of its constructors.
func (c *Courier) Validate() error {
	if c == nil {
		return ErrCourierIsNotConstructed
	}
	return c.guard.Validate(ErrCourierIsNotConstructed)
}

func (c *Courier) IsEqual(other *Courier) bool {
	return other != nil && c.id.IsEqual(other.id)
}

func (c *Courier) ID() kernel.UUID {
	return c.id
}

func (c *Courier) Name() kernel.PersonName {
	return c.name
}

func (c *Courier) Email() kernel.Email {
	return c.email
}

func (c *Courier) Phone() string {
	return c.phone
}

func (c *Courier) Region() string {
	return c.region
}

// HireDate is a calendar date at midnight UTC.
func (c *Courier) HireDate() time.Time {
	return c.hireDate
}

func (c *Courier) PasswordHash() string {
	return c.passwordHash
}

func (c *Courier) CreatedAt() time.Time {
	return c.createdAt
}

func (c *Courier) UpdatedAt() time.Time {
	return c.updatedAt
}

func (c *Courier) Profile() Profile {
	return Profile{
		FirstName: c.name.First(),
		LastName:  c.name.Last(),
		Email:     c.email.String(),
		Phone:     c.phone,
		Region:    c.region,
		HireDate:  c.hireDate,
	}
}
