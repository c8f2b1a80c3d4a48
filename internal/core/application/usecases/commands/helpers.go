package commands

import (
	"context"
	"errors"

	"shiptrack/internal/core/domain/model/kernel"
	"shiptrack/internal/pkg/errs"
)

type identified interface {
	ID() kernel.UUID
}

// ensureEmailFree reports errs.ErrObjectAlreadyExists when email belongs to
// an aggregate other than self. self is nil on creation.
func ensureEmailFree[T identified](
	ctx context.Context,
	lookup func(context.Context, kernel.Email) (T, error),
	email kernel.Email,
	self *kernel.UUID,
) error {
	existing, err := lookup(ctx, email)
	if err != nil {
		if errors.Is(err, errs.ErrObjectNotFound) {
			return nil
		}
		return err
	}
	if self != nil && existing.ID().IsEqual(*self) {
		return nil
	}
	return errs.NewObjectAlreadyExistsError("email", email.String())
}

// invalidReference turns a missing referenced entity into a validation error
// on paramName; the caller picked a value that does not exist.
func invalidReference(paramName string, err error) error {
	if errors.Is(err, errs.ErrObjectNotFound) {
		return errs.NewValueIsInvalidErrorWithCause(paramName, err)
	}
	return err
}
