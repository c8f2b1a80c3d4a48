package services_test

import (
	"testing"
	"time"

	"shiptrack/internal/core/domain/model/kernel"
	"shiptrack/internal/core/domain/model/shipment"
	"shiptrack/internal/core/domain/services"
	"shiptrack/internal/pkg/errs"

	"github.com/google/go-cmp/cmp"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

var (
	created   = time.Date(2025, 5, 1, 8, 0, 0, 0, time.UTC)
	generated = time.Date(2025, 5, 3, 18, 45, 0, 0, time.UTC)
)

func fixedClock() time.Time { return generated }

func newShipment(t *testing.T, city string, courierID *kernel.UUID) *shipment.Shipment {
	t.Helper()
	tn, err := shipment.NewTrackingNumber("TRK-PRINT001")
	require.NoError(t, err)
	s, err := shipment.NewShipment(kernel.NewUUID(), tn, shipment.Details{
		CustomerID:      kernel.NewUUID(),
		SenderAddress:   "1 Origin Rd",
		ReceiverAddress: "9 Destination Blvd",
		City:            city,
		RequestedDate:   created,
	}, courierID, created)
	require.NoError(t, err)
	return s
}

func name(t *testing.T, first, last string) *kernel.PersonName {
	t.Helper()
	n, err := kernel.NewPersonName(first, last)
	require.NoError(t, err)
	return &n
}

func TestDocumentBuilder_Summary(t *testing.T) {
	builder := services.NewDocumentBuilder(fixedClock)

	t.Run("should list details and timeline", func(t *testing.T) {
		courierID := kernel.NewUUID()
		s := newShipment(t, "Zürich", &courierID)
		_, err := s.RecordEvent(courierID, "Delivered", "Porch → back door", "Signed “OK”", "https://proof/42", created.Add(26*time.Hour))
		require.NoError(t, err)

		doc, err := builder.Summary(s, services.Parties{
			Customer: name(t, "Zoë", "Smith"),
			Courier:  name(t, "Carl", "Courier"),
		})

		require.NoError(t, err)
		want := services.Document{
			Title:       "Shipment Summary",
			GeneratedAt: "Generated: 2025-05-03 18:45 UTC",
			Sections: []services.Section{
				{
					Title: "Shipment Details",
					Fields: []services.Field{
						{Label: "Tracking Number", Value: "TRK-PRINT001"},
						{Label: "Status", Value: "Delivered"},
						{Label: "Requested", Value: "2025-05-01 08:00"},
						{Label: "Sender Address", Value: "1 Origin Rd"},
						{Label: "Receiver Address", Value: "9 Destination Blvd"},
						{Label: "City", Value: "Zürich"},
						{Label: "Customer", Value: "Zoë Smith"},
						{Label: "Courier", Value: "Carl Courier"},
					},
				},
				{
					Title: "Tracking Timeline",
					Lines: []services.Line{
						{Kind: services.LineEntry, Text: "2025-05-01 08:00 - Created - Zürich"},
						{Kind: services.LineNote, Text: "Notes: Shipment created"},
						{Kind: services.LineEntry, Text: "2025-05-01 08:00 - Assigned - Courier assigned"},
						{Kind: services.LineNote, Text: "Notes: Courier assigned to shipment"},
						{Kind: services.LineEntry, Text: "2025-05-02 10:00 - Delivered - Porch ? back door"},
						{Kind: services.LineNote, Text: "Notes: Signed ?OK?"},
						{Kind: services.LineProof, Text: "Proof: https://proof/42"},
					},
				},
			},
		}
		if diff := cmp.Diff(want, doc); diff != "" {
			t.Errorf("Summary() mismatch (-want +got):\n%s", diff)
		}
	})

	t.Run("should fall back for missing parties and city", func(t *testing.T) {
		s := newShipment(t, "", nil)

		doc, err := builder.Summary(s, services.Parties{})

		require.NoError(t, err)
		fields := doc.Sections[0].Fields
		assert.Equal(t, services.Field{Label: "City", Value: "N/A"}, fields[5])
		assert.Equal(t, services.Field{Label: "Customer", Value: "Unknown"}, fields[6])
		assert.Equal(t, services.Field{Label: "Courier", Value: "Unassigned"}, fields[7])
	})

	t.Run("should print placeholder for empty timeline", func(t *testing.T) {
		tn, err := shipment.NewTrackingNumber("TRK-EMPTY000")
		require.NoError(t, err)
		s, err := shipment.RestoreShipment(kernel.NewUUID(), tn, shipment.Details{
			CustomerID:      kernel.NewUUID(),
			SenderAddress:   "a",
			ReceiverAddress: "b",
		}, nil, created, nil)
		require.NoError(t, err)

		doc, err := builder.Summary(s, services.Parties{})

		require.NoError(t, err)
		assert.Equal(t, "N/A", doc.Sections[0].Fields[2].Value)
		assert.Equal(t, []services.Line{{Kind: services.LinePlain, Text: "No tracking events."}}, doc.Sections[1].Lines)
	})

	t.Run("should reject unconstructed shipment", func(t *testing.T) {
		_, err := builder.Summary(&shipment.Shipment{}, services.Parties{})

		assert.ErrorIs(t, err, shipment.ErrShipmentIsNotConstructed)
	})
}

func TestDocumentBuilder_Receipt(t *testing.T) {
	builder := services.NewDocumentBuilder(fixedClock)
	courierID := kernel.NewUUID()

	t.Run("should be not found without Delivered event", func(t *testing.T) {
		s := newShipment(t, "Oslo", &courierID)
		_, err := s.RecordEvent(courierID, "Out for delivery", "Van", "", "", created.Add(time.Hour))
		require.NoError(t, err)

		_, err = builder.Receipt(s, services.Parties{})

		assert.ErrorIs(t, err, errs.ErrObjectNotFound)
	})

	t.Run("should be not found once the shipment moved on from Delivered", func(t *testing.T) {
		s := newShipment(t, "Oslo", &courierID)
		_, err := s.RecordEvent(courierID, "Delivered", "Front door", "", "", created.Add(time.Hour))
		require.NoError(t, err)
		_, err = s.RecordEvent(courierID, "Returned to sender", "Depot", "", "", created.Add(2*time.Hour))
		require.NoError(t, err)
		require.Equal(t, shipment.ReturnedToSender, s.Status())

		_, err = builder.Receipt(s, services.Parties{})

		assert.ErrorIs(t, err, errs.ErrObjectNotFound)
	})

	t.Run("should use latest Delivered event", func(t *testing.T) {
		s := newShipment(t, "Oslo", &courierID)
		_, err := s.RecordEvent(courierID, "Delivered", "Front door", "", "", created.Add(time.Hour))
		require.NoError(t, err)
		_, err = s.RecordEvent(courierID, "Attempted/Rescheduled", "Front door", "Wrong flat", "", created.Add(2*time.Hour))
		require.NoError(t, err)
		_, err = s.RecordEvent(courierID, "Delivered", "Reception", "Left with staff", "https://p/2", created.Add(3*time.Hour))
		require.NoError(t, err)

		doc, err := builder.Receipt(s, services.Parties{Courier: name(t, "Carl", "Courier")})

		require.NoError(t, err)
		want := services.Document{
			Title:       "Delivery Receipt",
			GeneratedAt: "Generated: 2025-05-03 18:45 UTC",
			Sections: []services.Section{{
				Title: "Receipt Details",
				Fields: []services.Field{
					{Label: "Tracking Number", Value: "TRK-PRINT001"},
					{Label: "Status", Value: "Delivered"},
					{Label: "Delivered At", Value: "2025-05-01 11:00"},
					{Label: "Receiver Address", Value: "9 Destination Blvd"},
					{Label: "City", Value: "Oslo"},
					{Label: "Customer", Value: "Unknown"},
					{Label: "Courier", Value: "Carl Courier"},
					{Label: "Delivery Location", Value: "Reception"},
					{Label: "Notes", Value: "Left with staff"},
					{Label: "Proof", Value: "https://p/2"},
				},
			}},
		}
		if diff := cmp.Diff(want, doc); diff != "" {
			t.Errorf("Receipt() mismatch (-want +got):\n%s", diff)
		}
	})
}

func TestLatin1(t *testing.T) {
	assert.Equal(t, "café ?", services.Latin1("café ☕"))
	assert.Equal(t, "", services.Latin1(""))
	assert.Equal(t, "a?b", services.Latin1("a\u0085b"))
	assert.Equal(t, "x?y", services.Latin1("x\u009fy"))
	assert.Equal(t, "\u00a0ÿ", services.Latin1("\u00a0ÿ"))
}
