// Package guard provides ConstructorGuard, a marker that lets value objects,
// commands and queries tell a constructor-built instance from a zero value.
package guard

import "errors"

// ErrDefaultConstructorGuard is returned by Validate when no specific error is
// supplied.
var ErrDefaultConstructorGuard = errors.New("object must be created via its constructor")

// ConstructorGuard is embedded in structs that must only be created through
// their constructor. The zero value fails validation.
//
// Example usage:
//
//	var ErrTrackNotConstructed = errors.New("TrackShipmentQuery must be created via NewTrackShipmentQuery")
//
//	type TrackShipmentQuery struct {
//	    trackingNumber string
//	    guard          guard.ConstructorGuard
//	}
//
//	func (q TrackShipmentQuery) Validate() error {
//	    return q.guard.Validate(ErrTrackNotConstructed)
//	}
type ConstructorGuard struct {
	isConstructed bool
}

// NewConstructorGuard returns a guard that marks its owner as constructed.
func NewConstructorGuard() ConstructorGuard {
	return ConstructorGuard{isConstructed: true}
}

// Validate returns validationError (or ErrDefaultConstructorGuard when it is
// nil) if the owner was not built through its constructor.
func (g ConstructorGuard) Validate(validationError error) error {
	if validationError == nil {
		validationError = ErrDefaultConstructorGuard
	}
	if !g.isConstructed {
		return validationError
	}
	return nil
}
