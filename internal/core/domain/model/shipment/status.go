package shipment

// Status is the label carried by a tracking event. The preferred vocabulary
// is fixed, but any non-empty label is accepted; unknown labels are presented
// as neutral instead of being rejected.
//
// Typical lifecycle:
//
//	Created ──> Assigned ──> Picked up ──> Out for delivery ──┬──> Delivered
//	                                          │                ├──> Returned to sender
//	                                          └─> Attempted/Rescheduled
//	                                                           └──> Failed/Returned
type Status string

const (
	Created              Status = "Created"
	Assigned             Status = "Assigned"
	PickedUp             Status = "Picked up"
	OutForDelivery       Status = "Out for delivery"
	AttemptedRescheduled Status = "Attempted/Rescheduled"
	Delivered            Status = "Delivered"
	ReturnedToSender     Status = "Returned to sender"
	FailedReturned       Status = "Failed/Returned"
)

// neutralClass is used for labels outside the preferred vocabulary.
const neutralClass = "secondary"

type statusPresentation struct {
	class string
	hint  string
}

func getStatusPresentations() map[Status]statusPresentation {
	return map[Status]statusPresentation{
		Created:              {"secondary", "Shipment created; awaiting assignment."},
		Assigned:             {"info", "Courier assigned; pickup scheduled."},
		PickedUp:             {"primary", "Parcel picked up; heading to destination hub."},
		OutForDelivery:       {"warning", "Courier is delivering today."},
		AttemptedRescheduled: {"warning", "Delivery attempt made; rescheduled with recipient."},
		Delivered:            {"success", "Delivered to recipient."},
		ReturnedToSender:     {"dark", "Parcel is being returned to sender."},
		FailedReturned:       {"danger", "Delivery failed; contact support."},
	}
}

// Statuses returns the preferred vocabulary in lifecycle order.
func Statuses() []Status {
	return []Status{
		Created,
		Assigned,
		PickedUp,
		OutForDelivery,
		AttemptedRescheduled,
		Delivered,
		ReturnedToSender,
		FailedReturned,
	}
}

func (s Status) String() string {
	return string(s)
}

// IsKnown reports whether s belongs to the preferred vocabulary.
// Comparison is exact: "delivered" is not Delivered.
func (s Status) IsKnown() bool {
	_, ok := getStatusPresentations()[s]
	return ok
}

// PresentationClass returns the severity class used to style s.
func (s Status) PresentationClass() string {
	if p, ok := getStatusPresentations()[s]; ok {
		return p.class
	}
	return neutralClass
}

// Hint returns a short customer-facing explanation of s, or "" for labels
// outside the vocabulary.
func (s Status) Hint() string {
	return getStatusPresentations()[s].hint
}

// LatestStatus derives a shipment's status from its timeline: the status of
// the last event, or Created when the timeline is empty. events must already
// be in timeline order.
func LatestStatus(events []*TrackingEvent) Status {
	if len(events) == 0 {
		return Created
	}
	return events[len(events)-1].Status()
}
