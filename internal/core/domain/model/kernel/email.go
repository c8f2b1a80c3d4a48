package kernel

import (
	"errors"
	"fmt"
	"net/mail"
	"strings"

	"shiptrack/internal/pkg/errs"
)

var ErrEmailIsNotConstructed = errors.New("Email must be created via NewEmail")

// Email is a normalized (trimmed, lower-cased) e-mail address. Uniqueness of
// customer, courier and admin accounts is decided on this normalized form.
type Email struct {
	value string
}

// NewEmail normalizes and validates raw. An empty value is reported as
// required, a malformed one as invalid.
func NewEmail(raw string) (Email, error) {
	normalized := strings.ToLower(strings.TrimSpace(raw))
	if normalized == "" {
		return Email{}, errs.NewValueIsRequiredError("email")
	}
	if _, err := mail.ParseAddress(normalized); err != nil {
		return Email{}, errs.NewValueIsInvalidErrorWithCause("email", fmt.Errorf("%q is not an e-mail address", raw))
	}
	return Email{value: normalized}, nil
}

func (e Email) String() string {
	return e.value
}

func (e Email) IsEqual(other Email) bool {
	return e.value == other.value
}

func (e Email) Validate() error {
	if e.value == "" {
		return ErrEmailIsNotConstructed
	}
	return nil
}
