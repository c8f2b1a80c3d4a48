package customer

import (
	"errors"
	"time"

	"shiptrack/internal/core/domain/model/kernel"
	"shiptrack/internal/pkg/guard"
)

var ErrCustomerIsNotConstructed = errors.New("Customer must be created via NewCustomer or RestoreCustomer")

// Profile is the editable part of a customer. All fields are required.
type Profile struct {
	FirstName string
	LastName  string
	Email     string
	Phone     string
	Address   string
	City      string
}

type contact struct {
	name    kernel.PersonName
	email   kernel.Email
	phone   string
	address string
	city    string
}

func (p Profile) parse() (contact, error) {
	var c contact
	var err, nameErr, emailErr, phoneErr, addressErr, cityErr error

	c.name, nameErr = kernel.NewPersonName(p.FirstName, p.LastName)
	c.email, emailErr = kernel.NewEmail(p.Email)
	c.phone, phoneErr = kernel.RequireText("phone", p.Phone)
	c.address, addressErr = kernel.RequireText("address", p.Address)
	c.city, cityErr = kernel.RequireText("city", p.City)

	if err = errors.Join(nameErr, emailErr, phoneErr, addressErr, cityErr); err != nil {
		return contact{}, err
	}
	return c, nil
}

// Customer owns shipments. Deleting a customer deletes its shipments.
type Customer struct {
	id        kernel.UUID
	contact   contact
	createdAt time.Time
	updatedAt time.Time

	guard guard.ConstructorGuard
}

func NewCustomer(id kernel.UUID, profile Profile, now time.Time) (*Customer, error) {
	if err := id.Validate(); err != nil {
		return nil, err
	}
	c, err := profile.parse()
	if err != nil {
		return nil, err
	}

	now = now.UTC()
	return &Customer{
		id:        id,
		contact:   c,
		createdAt: now,
		updatedAt: now,
		guard:     guard.NewConstructorGuard(),
	}, nil
}

// RestoreCustomer rebuilds a persisted customer. Stored values are trusted
// to be normalized already.
func RestoreCustomer(id kernel.UUID, profile Profile, createdAt, updatedAt time.Time) (*Customer, error) {
	if err := id.Validate(); err != nil {
		return nil, err
	}
	c, err := profile.parse()
	if err != nil {
		return nil, err
	}
	return &Customer{
		id:        id,
		contact:   c,
		createdAt: createdAt,
		updatedAt: updatedAt,
		guard:     guard.NewConstructorGuard(),
	}, nil
}

// Update replaces the profile. On error the customer is left unchanged.
func (c *Customer) Update(profile Profile, now time.Time) error {
	parsed, err := profile.parse()
	if err != nil {
		return err
	}
	c.contact = parsed
	c.updatedAt = now.UTC()
	return nil
}

func (c *Customer) Validate() error {
	if c == nil {
		return ErrCustomerIsNotConstructed
	}
	return c.guard.Validate(ErrCustomerIsNotConstructed)
}

func (c *Customer) ID() kernel.UUID {
	return c.id
}

func (c *Customer) Name() kernel.PersonName {
	return c.contact.name
}

func (c *Customer) Email() kernel.Email {
	return c.contact.email
}

func (c *Customer) Phone() string {
	return c.contact.phone
}

func (c *Customer) Address() string {
	return c.contact.address
}

func (c *Customer) City() string {
	return c.contact.city
}

func (c *Customer) CreatedAt() time.Time {
	return c.createdAt
}

func (c *Customer) UpdatedAt() time.Time {
	return c.updatedAt
}

// Profile returns the current values in their editable form.
func (c *Customer) Profile() Profile {
	return Profile{
		FirstName: c.contact.name.First(),
		LastName:  c.contact.name.Last(),
		Email:     c.contact.email.String(),
		Phone:     c.contact.phone,
		Address:   c.contact.address,
		City:      c.contact.city,
	}
}
