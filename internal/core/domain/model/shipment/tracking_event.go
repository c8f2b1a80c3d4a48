package shipment

import (
	"errors"
	"strings"
	"time"

	"shiptrack/internal/core/domain/model/kernel"
	"shiptrack/internal/pkg/errs"
	"shiptrack/internal/pkg/guard"
)

var ErrTrackingEventIsNotConstructed = errors.New("TrackingEvent must be created via a Shipment or RestoreTrackingEvent")

// UnknownLocation is stored when an event's location is supplied blank.
const UnknownLocation = "Unknown"

// TrackingEvent is one immutable entry of a shipment timeline.
type TrackingEvent struct {
	id         kernel.UUID
	shipmentID kernel.UUID
	courierID  *kernel.UUID
	status     Status
	location   string
	notes      string
	proofURL   *string
	createdAt  time.Time
	position   int

	guard guard.ConstructorGuard
}

// RestoreTrackingEvent rebuilds a persisted event. Only structural fields are
// checked; the label itself is never validated against the vocabulary.
func RestoreTrackingEvent(
	id kernel.UUID,
	shipmentID kernel.UUID,
	courierID *kernel.UUID,
	status string,
	location string,
	notes string,
	proofURL *string,
	createdAt time.Time,
	position int,
) (*TrackingEvent, error) {
	var problems []error
	if err := id.Validate(); err != nil {
		problems = append(problems, err)
	}
	if err := shipmentID.Validate(); err != nil {
		problems = append(problems, err)
	}
	if status == "" {
		problems = append(problems, errs.NewValueIsRequiredError("status"))
	}
	if err := errors.Join(problems...); err != nil {
		return nil, err
	}

	return &TrackingEvent{
		id:         id,
		shipmentID: shipmentID,
		courierID:  courierID,
		status:     Status(status),
		location:   location,
		notes:      notes,
		proofURL:   proofURL,
		createdAt:  createdAt,
		position:   position,
		guard:      guard.NewConstructorGuard(),
	}, nil
}

func (e *TrackingEvent) Validate() error {
	if e == nil {
		return ErrTrackingEventIsNotConstructed
	}
	return e.guard.Validate(ErrTrackingEventIsNotConstructed)
}

func (e *TrackingEvent) ID() kernel.UUID {
	return e.id
}

func (e *TrackingEvent) ShipmentID() kernel.UUID {
	return e.shipmentID
}

// CourierID returns the courier the event is attributed to, if any.
func (e *TrackingEvent) CourierID() *kernel.UUID {
	return e.courierID
}

func (e *TrackingEvent) Status() Status {
	return e.status
}

func (e *TrackingEvent) Location() string {
	return e.location
}

func (e *TrackingEvent) Notes() string {
	return e.notes
}

// ProofURL returns nil when no proof reference was recorded.
func (e *TrackingEvent) ProofURL() *string {
	return e.proofURL
}

func (e *TrackingEvent) CreatedAt() time.Time {
	return e.createdAt
}

// Position is the append index of the event within its shipment.
func (e *TrackingEvent) Position() int {
	return e.position
}

// before orders events by timestamp, then by append position.
func (e *TrackingEvent) before(other *TrackingEvent) bool {
	if !e.createdAt.Equal(other.createdAt) {
		return e.createdAt.Before(other.createdAt)
	}
	return e.position < other.position
}

func optionalText(value string) *string {
	trimmed := strings.TrimSpace(value)
	if trimmed == "" {
		return nil
	}
	return &trimmed
}
