// Package access is the role-based gate in front of every operation.
//
// Each operation carries a Requirement. Authorize compares it with the
// calling Principal and returns a Decision that either allows the call or
// names the Destination the caller should be sent to instead. Principals are
// passed explicitly; nothing here reads request state.
//
// Ownership checks (a courier may only see shipments assigned to them) are
// not decided here; queries and commands scope their lookups by the
// principal's id and report foreign shipments as not found.
package access
