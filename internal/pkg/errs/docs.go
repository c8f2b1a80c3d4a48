// Package errs provides standardized error types for the shipment tracking
// application. Every typed error wraps one sentinel so callers classify
// failures with errors.Is while the message keeps the offending parameter.
//
// The package includes:
//   - ValueIsRequiredError: a required value is missing
//   - ValueIsInvalidError: a value is present but unacceptable
//   - ObjectNotFoundError: an object does not exist or must not be revealed
//   - ObjectAlreadyExistsError: a uniqueness constraint would be violated
//   - ErrInvalidCredentials: a login attempt failed
//
// Each error type follows the same pattern:
//   - A sentinel error variable (e.g., ErrValueIsRequired)
//   - A struct type with fields for error details
//   - Constructor functions with and without cause
//   - Error() method for formatting the error message
//   - Unwrap() method returning the sentinel
package errs
