package shipment

import (
	"errors"
	"slices"
	"strings"
	"time"

	"shiptrack/internal/core/domain/model/kernel"
	"shiptrack/internal/pkg/errs"
	"shiptrack/internal/pkg/guard"
)

var ErrShipmentIsNotConstructed = errors.New("Shipment must be created via NewShipment or RestoreShipment")

const (
	createdNotes     = "Shipment created"
	assignedLocation = "Courier assigned"
	assignedNotes    = "Courier assigned to shipment"
)

// Details are the editable, non-timeline attributes of a shipment.
type Details struct {
	CustomerID      kernel.UUID
	SenderAddress   string
	ReceiverAddress string
	City            string
	RequestedDate   time.Time
}

func (d Details) normalize() (Details, error) {
	var problems []error

	if err := d.CustomerID.Validate(); err != nil {
		problems = append(problems, errs.NewValueIsRequiredErrorWithCause("customer_id", err))
	}
	sender, err := kernel.RequireText("sender_address", d.SenderAddress)
	if err != nil {
		problems = append(problems, err)
	}
	receiver, err := kernel.RequireText("receiver_address", d.ReceiverAddress)
	if err != nil {
		problems = append(problems, err)
	}
	if d.RequestedDate.IsZero() {
		problems = append(problems, errs.NewValueIsRequiredError("requested_date"))
	}
	if err := errors.Join(problems...); err != nil {
		return Details{}, err
	}

	return Details{
		CustomerID:      d.CustomerID,
		SenderAddress:   sender,
		ReceiverAddress: receiver,
		City:            strings.TrimSpace(d.City),
		RequestedDate:   d.RequestedDate.UTC(),
	}, nil
}

// Shipment is the aggregate root for one parcel. Its status is never stored;
// it is always derived from the ordered timeline. Events appended since the
// last load are kept as uncommitted until the repository persists them.
type Shipment struct {
	id             kernel.UUID
	trackingNumber TrackingNumber
	details        Details
	courierID      *kernel.UUID
	createdAt      time.Time

	events      []*TrackingEvent
	uncommitted []*TrackingEvent

	guard guard.ConstructorGuard
}

// NewShipment creates a shipment and opens its timeline with a Created event.
// When a courier is supplied an Assigned event follows in the same instant.
func NewShipment(
	id kernel.UUID,
	trackingNumber TrackingNumber,
	details Details,
	courierID *kernel.UUID,
	now time.Time,
) (*Shipment, error) {
	var problems []error
	if err := id.Validate(); err != nil {
		problems = append(problems, err)
	}
	if err := trackingNumber.Validate(); err != nil {
		problems = append(problems, err)
	}
	normalized, err := details.normalize()
	if err != nil {
		problems = append(problems, err)
	}
	if courierID != nil {
		if err := courierID.Validate(); err != nil {
			problems = append(problems, errs.NewValueIsInvalidErrorWithCause("courier_id", err))
		}
	}
	if err := errors.Join(problems...); err != nil {
		return nil, err
	}

	now = now.UTC()
	s := &Shipment{
		id:             id,
		trackingNumber: trackingNumber,
		details:        normalized,
		courierID:      courierID,
		createdAt:      now,
		guard:          guard.NewConstructorGuard(),
	}

	location := normalized.City
	if location == "" {
		location = UnknownLocation
	}
	s.appendEvent(courierID, Created, location, createdNotes, nil, now)
	if courierID != nil {
		s.appendEvent(courierID, Assigned, assignedLocation, assignedNotes, nil, now)
	}

	return s, nil
}

// RestoreShipment rebuilds a persisted shipment and its timeline. events may
// arrive in any order.
func RestoreShipment(
	id kernel.UUID,
	trackingNumber TrackingNumber,
	details Details,
	courierID *kernel.UUID,
	createdAt time.Time,
	events []*TrackingEvent,
) (*Shipment, error) {
	if err := errors.Join(id.Validate(), trackingNumber.Validate()); err != nil {
		return nil, err
	}
	for _, e := range events {
		if err := e.Validate(); err != nil {
			return nil, err
		}
	}

	ordered := slices.Clone(events)
	slices.SortStableFunc(ordered, func(a, b *TrackingEvent) int {
		switch {
		case a.before(b):
			return -1
		case b.before(a):
			return 1
		default:
			return 0
		}
	})

	return &Shipment{
		id:             id,
		trackingNumber: trackingNumber,
		details:        details,
		courierID:      courierID,
		createdAt:      createdAt,
		events:         ordered,
		guard:          guard.NewConstructorGuard(),
	}, nil
}

func (s *Shipment) Validate() error {
	if s == nil {
		return ErrShipmentIsNotConstructed
	}
	return s.guard.Validate(ErrShipmentIsNotConstructed)
}

func (s *Shipment) ID() kernel.UUID {
	return s.id
}

func (s *Shipment) TrackingNumber() TrackingNumber {
	return s.trackingNumber
}

func (s *Shipment) Details() Details {
	return s.details
}

func (s *Shipment) CustomerID() kernel.UUID {
	return s.details.CustomerID
}

// CourierID returns nil for unassigned shipments.
func (s *Shipment) CourierID() *kernel.UUID {
	return s.courierID
}

func (s *Shipment) CreatedAt() time.Time {
	return s.createdAt
}

// IsAssignedTo reports whether courierID is the shipment's current courier.
func (s *Shipment) IsAssignedTo(courierID kernel.UUID) bool {
	return s.courierID != nil && s.courierID.IsEqual(courierID)
}

// Timeline returns the events in (timestamp, position) order.
func (s *Shipment) Timeline() []*TrackingEvent {
	return slices.Clone(s.events)
}

// Status is the derived status: the latest event's label, or Created.
func (s *Shipment) Status() Status {
	return LatestStatus(s.events)
}

// LatestDeliveredEvent returns the most recent event labelled exactly
// Delivered, or nil.
func (s *Shipment) LatestDeliveredEvent() *TrackingEvent {
	for i := len(s.events) - 1; i >= 0; i-- {
		if s.events[i].Status() == Delivered {
			return s.events[i]
		}
	}
	return nil
}

// Update replaces the shipment details and courier. An Assigned event is
// appended only when the new courier is set and differs from the old one;
// unassigning appends nothing.
func (s *Shipment) Update(details Details, courierID *kernel.UUID, now time.Time) error {
	normalized, err := details.normalize()
	if err != nil {
		return err
	}
	if courierID != nil {
		if err := courierID.Validate(); err != nil {
			return errs.NewValueIsInvalidErrorWithCause("courier_id", err)
		}
	}

	previous := s.courierID
	s.details = normalized
	s.courierID = courierID

	if courierID != nil && !kernel.UUIDPtrEqual(previous, courierID) {
		s.appendEvent(courierID, Assigned, assignedLocation, assignedNotes, nil, now.UTC())
	}
	return nil
}

// Unassign clears the courier without touching the timeline.
func (s *Shipment) Unassign() {
	s.courierID = nil
}

// RecordEvent appends a courier-reported event. Shipments not assigned to
// courierID are reported as not found. status and location are required;
// a location made only of whitespace is stored as Unknown. A blank proof
// reference is dropped.
func (s *Shipment) RecordEvent(
	courierID kernel.UUID,
	status string,
	location string,
	notes string,
	proofURL string,
	now time.Time,
) (*TrackingEvent, error) {
	if !s.IsAssignedTo(courierID) {
		return nil, errs.NewObjectNotFoundError("shipment", s.id.String())
	}

	label := strings.TrimSpace(status)
	var problems []error
	if label == "" {
		problems = append(problems, errs.NewValueIsRequiredError("status"))
	}
	if location == "" {
		problems = append(problems, errs.NewValueIsRequiredError("location"))
	}
	if err := errors.Join(problems...); err != nil {
		return nil, err
	}

	place := strings.TrimSpace(location)
	if place == "" {
		place = UnknownLocation
	}

	by := courierID
	return s.appendEvent(&by, Status(label), place, notes, optionalText(proofURL), now.UTC()), nil
}

// UncommittedEvents returns events appended since construction or the last
// MarkCommitted call.
func (s *Shipment) UncommittedEvents() []*TrackingEvent {
	return slices.Clone(s.uncommitted)
}

func (s *Shipment) MarkCommitted() {
	s.uncommitted = nil
}

func (s *Shipment) appendEvent(
	courierID *kernel.UUID,
	status Status,
	location string,
	notes string,
	proofURL *string,
	at time.Time,
) *TrackingEvent {
	e := &TrackingEvent{
		id:         kernel.NewUUID(),
		shipmentID: s.id,
		courierID:  courierID,
		status:     status,
		location:   location,
		notes:      notes,
		proofURL:   proofURL,
		createdAt:  at,
		position:   s.nextPosition(),
		guard:      guard.NewConstructorGuard(),
	}
	s.events = append(s.events, e)
	s.uncommitted = append(s.uncommitted, e)
	return e
}

func (s *Shipment) nextPosition() int {
	next := 0
	for _, e := range s.events {
		if e.position >= next {
			next = e.position + 1
		}
	}
	return next
}
