package kernel

import (
	"errors"
	"strings"

	"shiptrack/internal/pkg/errs"
)

var ErrPersonNameIsNotConstructed = errors.New("PersonName must be created via NewPersonName")

// PersonName holds the first and last name of a customer, courier or admin.
type PersonName struct {
	first string
	last  string
}

func NewPersonName(first, last string) (PersonName, error) {
	first = strings.TrimSpace(first)
	last = strings.TrimSpace(last)

	var problems []error
	if first == "" {
		problems = append(problems, errs.NewValueIsRequiredError("first name"))
	}
	if last == "" {
		problems = append(problems, errs.NewValueIsRequiredError("last name"))
	}
	if err := errors.Join(problems...); err != nil {
		return PersonName{}, err
	}

	return PersonName{first: first, last: last}, nil
}

func (n PersonName) First() string {
	return n.first
}

func (n PersonName) Last() string {
	return n.last
}

// Full returns "First Last", the form used on documents, exports and
// support comments.
func (n PersonName) Full() string {
	return n.first + " " + n.last
}

func (n PersonName) Validate() error {
	if n.first == "" || n.last == "" {
		return ErrPersonNameIsNotConstructed
	}
	return nil
}

// RequireText trims value and reports it as required when nothing is left.
// Entities use it for their mandatory free-text fields.
func RequireText(paramName, value string) (string, error) {
	trimmed := strings.TrimSpace(value)
	if trimmed == "" {
		return "", errs.NewValueIsRequiredError(paramName)
	}
	return trimmed, nil
}
