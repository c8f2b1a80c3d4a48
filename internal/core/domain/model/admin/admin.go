package admin

import (
	"errors"
	"time"

	"shiptrack/internal/core/domain/model/kernel"
	"shiptrack/internal/pkg/errs"
	"shiptrack/internal/pkg/guard"
)

var ErrAdminIsNotConstructed = errors.New("Admin must be created via NewAdmin or RestoreAdmin")

// Profile holds the editable fields of an admin account.
type Profile struct {
	FirstName string
	LastName  string
	Email     string
	Phone     string
}

// Admin is a back-office operator.
type Admin struct {
	id           kernel.UUID
	name         kernel.PersonName
	email        kernel.Email
	phone        string
	passwordHash string
	createdAt    time.Time
	updatedAt    time.Time

	guard guard.ConstructorGuard
}

func NewAdmin(id kernel.UUID, profile Profile, passwordHash string, now time.Time) (*Admin, error) {
	now = now.UTC()
	return RestoreAdmin(id, profile, passwordHash, now, now)
}

func RestoreAdmin(id kernel.UUID, profile Profile, passwordHash string, createdAt, updatedAt time.Time) (*Admin, error) {
	name, nameErr := kernel.NewPersonName(profile.FirstName, profile.LastName)
	email, emailErr := kernel.NewEmail(profile.Email)
	phone, phoneErr := kernel.RequireText("phone", profile.Phone)

	var hashErr error
	if passwordHash == "" {
		hashErr = errs.NewValueIsRequiredError("password_hash")
	}

	if err := errors.Join(id.Validate(), nameErr, emailErr, phoneErr, hashErr); err != nil {
		return nil, err
	}

	return &Admin{
		id:           id,
		name:         name,
		email:        email,
		phone:        phone,
		passwordHash: passwordHash,
		createdAt:    createdAt,
		updatedAt:    updatedAt,
		guard:        guard.NewConstructorGuard(),
	}, nil
}

func (a *Admin) Validate() error {
	if a == nil {
		return ErrAdminIsNotConstructed
	}
	return a.guard.Validate(ErrAdminIsNotConstructed)
}

func (a *Admin) ID() kernel.UUID {
	return a.id
}

func (a *Admin) Name() kernel.PersonName {
	return a.name
}

func (a *Admin) Email() kernel.Email {
	return a.email
}

func (a *Admin) Phone() string {
	return a.phone
}

func (a *Admin) PasswordHash() string {
	return a.passwordHash
}

func (a *Admin) CreatedAt() time.Time {
	return a.createdAt
}

func (a *Admin) UpdatedAt() time.Time {
	return a.updatedAt
}
