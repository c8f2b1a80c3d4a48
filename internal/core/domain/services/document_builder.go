package services

import (
	"time"

	"shiptrack/internal/core/domain/model/kernel"
	"shiptrack/internal/core/domain/model/shipment"
	"shiptrack/internal/pkg/errs"
)

const (
	documentTimeLayout = "2006-01-02 15:04"
	notAvailable       = "N/A"
	unknownCustomer    = "Unknown"
	unassignedCourier  = "Unassigned"
	noTrackingEvents   = "No tracking events."
)

// Parties are the people named on a document. A nil entry means the party
// is absent (deleted customer, unassigned courier).
type Parties struct {
	Customer *kernel.PersonName
	Courier  *kernel.PersonName
}

// DocumentBuilder assembles shipment summaries and delivery receipts.
type DocumentBuilder struct {
	now func() time.Time
}

// NewDocumentBuilder stamps documents with clock(); nil means time.Now.
func NewDocumentBuilder(clock func() time.Time) DocumentBuilder {
	if clock == nil {
		clock = time.Now
	}
	return DocumentBuilder{now: clock}
}

// Summary builds the shipment summary: details plus the full timeline.
func (b DocumentBuilder) Summary(s *shipment.Shipment, parties Parties) (Document, error) {
	if err := s.Validate(); err != nil {
		return Document{}, err
	}

	details := s.Details()
	docSection := section("Shipment Details",
		field("Tracking Number", s.TrackingNumber().String()),
		field("Status", s.Status().String()),
		field("Requested", formatTime(details.RequestedDate)),
		field("Sender Address", details.SenderAddress),
		field("Receiver Address", details.ReceiverAddress),
		field("City", orDefault(details.City, notAvailable)),
		field("Customer", personOr(parties.Customer, unknownCustomer)),
		field("Courier", personOr(parties.Courier, unassignedCourier)),
	)

	timeline := Section{Title: "Tracking Timeline"}
	events := s.Timeline()
	if len(events) == 0 {
		timeline.Lines = append(timeline.Lines, line(LinePlain, noTrackingEvents))
	}
	for _, e := range events {
		timeline.Lines = append(timeline.Lines,
			line(LineEntry, formatTime(e.CreatedAt())+" - "+e.Status().String()+" - "+e.Location()))
		if e.Notes() != "" {
			timeline.Lines = append(timeline.Lines, line(LineNote, "Notes: "+e.Notes()))
		}
		if e.ProofURL() != nil {
			timeline.Lines = append(timeline.Lines, line(LineProof, "Proof: "+*e.ProofURL()))
		}
	}

	return b.document("Shipment Summary", docSection, timeline), nil
}

// Receipt builds a delivery receipt from the latest event labelled exactly
// Delivered. Only a shipment whose derived status is Delivered has a
// receipt; any other is not found.
func (b DocumentBuilder) Receipt(s *shipment.Shipment, parties Parties) (Document, error) {
	if err := s.Validate(); err != nil {
		return Document{}, err
	}
	if s.Status() != shipment.Delivered {
		return Document{}, errs.NewObjectNotFoundError("delivered shipment", s.TrackingNumber().String())
	}

	delivered := s.LatestDeliveredEvent()
	if delivered == nil {
		return Document{}, errs.NewObjectNotFoundError("delivered event", s.TrackingNumber().String())
	}

	details := s.Details()
	fields := []Field{
		field("Tracking Number", s.TrackingNumber().String()),
		field("Status", shipment.Delivered.String()),
		field("Delivered At", formatTime(delivered.CreatedAt())),
		field("Receiver Address", details.ReceiverAddress),
		field("City", orDefault(details.City, notAvailable)),
		field("Customer", personOr(parties.Customer, unknownCustomer)),
		field("Courier", personOr(parties.Courier, unassignedCourier)),
	}
	if delivered.Location() != "" {
		fields = append(fields, field("Delivery Location", delivered.Location()))
	}
	if delivered.Notes() != "" {
		fields = append(fields, field("Notes", delivered.Notes()))
	}
	if delivered.ProofURL() != nil {
		fields = append(fields, field("Proof", *delivered.ProofURL()))
	}

	return b.document("Delivery Receipt", section("Receipt Details", fields...)), nil
}

func (b DocumentBuilder) document(title string, sections ...Section) Document {
	clock := b.now
	if clock == nil {
		clock = time.Now
	}
	return Document{
		Title:       Latin1(title),
		GeneratedAt: "Generated: " + clock().UTC().Format(documentTimeLayout) + " UTC",
		Sections:    sections,
	}
}

func section(title string, fields ...Field) Section {
	return Section{Title: Latin1(title), Fields: fields}
}

func field(label, value string) Field {
	return Field{Label: Latin1(label), Value: Latin1(value)}
}

func line(kind LineKind, text string) Line {
	return Line{Kind: kind, Text: Latin1(text)}
}

func formatTime(t time.Time) string {
	if t.IsZero() {
		return notAvailable
	}
	return t.Format(documentTimeLayout)
}

func orDefault(value, fallback string) string {
	if value == "" {
		return fallback
	}
	return value
}

func personOr(name *kernel.PersonName, fallback string) string {
	if name == nil {
		return fallback
	}
	return name.Full()
}
