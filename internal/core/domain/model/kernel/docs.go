// Package kernel provides the value objects shared by every aggregate of the
// shipment tracking domain.
//
// The package includes:
//   - UUID: identifiers for all entities, with helpers for optional references
//   - Email: normalized e-mail addresses used for account uniqueness
//   - PersonName: first/last name pairs of customers, couriers and admins
//
// Values are immutable and validated on construction; zero values fail
// Validate so repositories can detect half-built objects.
package kernel
