// Package shipment models a parcel and its tracking timeline.
//
// The timeline is append-only. Events are ordered by creation time with the
// append position as tie-breaker, which keeps the Created and Assigned events
// written in one transaction in the order they were appended. A shipment's
// status is derived from the last event and is never stored.
package shipment
