package queries

import (
	"context"
	"errors"
	"time"

	"shiptrack/internal/core/domain/model/access"
	"shiptrack/internal/core/domain/model/kernel"
	"shiptrack/internal/core/domain/model/shipment"
	"shiptrack/internal/core/domain/services"
	"shiptrack/internal/core/ports"
	"shiptrack/internal/pkg/errs"
)

// ShipmentView is the full read model of one shipment: details, derived
// status with its presentation and the ordered timeline.
type ShipmentView struct {
	ID              kernel.UUID     `json:"id"`
	TrackingNumber  string          `json:"tracking_number"`
	CustomerID      kernel.UUID     `json:"customer_id"`
	CustomerName    string          `json:"customer_name,omitempty"`
	CourierID       *kernel.UUID    `json:"courier_id,omitempty"`
	CourierName     string          `json:"courier_name,omitempty"`
	SenderAddress   string          `json:"sender_address"`
	ReceiverAddress string          `json:"receiver_address"`
	City            string          `json:"city"`
	RequestedDate   time.Time       `json:"requested_date"`
	CreatedAt       time.Time       `json:"created_at"`
	Status          shipment.Status `json:"status"`
	StatusClass     string          `json:"status_class"`
	StatusHint      string          `json:"status_hint"`
	Delivered       bool            `json:"delivered"`
	Timeline        []TimelineEntry `json:"timeline"`
}

type TimelineEntry struct {
	Status      shipment.Status `json:"status"`
	StatusClass string          `json:"status_class"`
	Location    string          `json:"location"`
	Notes       string          `json:"notes"`
	ProofURL    *string         `json:"proof_url"`
	CourierID   *kernel.UUID    `json:"courier_id,omitempty"`
	CreatedAt   time.Time       `json:"created_at"`
}

// parties resolves the names printed next to a shipment. A missing customer
// or courier row yields a nil name rather than an error.
func parties(ctx context.Context, uow ports.UnitOfWork, s *shipment.Shipment) (services.Parties, error) {
	var result services.Parties

	c, err := uow.CustomerRepository().Get(ctx, s.CustomerID())
	switch {
	case err == nil:
		name := c.Name()
		result.Customer = &name
	case !errors.Is(err, errs.ErrObjectNotFound):
		return services.Parties{}, err
	}

	if id := s.CourierID(); id != nil {
		k, courierErr := uow.CourierRepository().Get(ctx, *id)
		switch {
		case courierErr == nil:
			name := k.Name()
			result.Courier = &name
		case !errors.Is(courierErr, errs.ErrObjectNotFound):
			return services.Parties{}, courierErr
		}
	}

	return result, nil
}

func newShipmentView(s *shipment.Shipment, names services.Parties) ShipmentView {
	d := s.Details()
	status := s.Status()

	view := ShipmentView{
		ID:              s.ID(),
		TrackingNumber:  s.TrackingNumber().String(),
		CustomerID:      d.CustomerID,
		CourierID:       s.CourierID(),
		SenderAddress:   d.SenderAddress,
		ReceiverAddress: d.ReceiverAddress,
		City:            d.City,
		RequestedDate:   d.RequestedDate,
		CreatedAt:       s.CreatedAt(),
		Status:          status,
		StatusClass:     status.PresentationClass(),
		StatusHint:      status.Hint(),
		Delivered:       s.LatestDeliveredEvent() != nil,
		Timeline:        make([]TimelineEntry, 0, len(s.Timeline())),
	}
	if names.Customer != nil {
		view.CustomerName = names.Customer.Full()
	}
	if names.Courier != nil {
		view.CourierName = names.Courier.Full()
	}

	for _, e := range s.Timeline() {
		view.Timeline = append(view.Timeline, TimelineEntry{
			Status:      e.Status(),
			StatusClass: e.Status().PresentationClass(),
			Location:    e.Location(),
			Notes:       e.Notes(),
			ProofURL:    e.ProofURL(),
			CourierID:   e.CourierID(),
			CreatedAt:   e.CreatedAt(),
		})
	}
	return view
}

// scopedShipment loads a shipment as principal may see it: admins see every
// shipment, couriers only those assigned to them. Everyone else gets
// not-found.
func scopedShipment(
	ctx context.Context,
	repo ports.ShipmentRepository,
	principal access.Principal,
	id kernel.UUID,
) (*shipment.Shipment, error) {
	switch {
	case principal.IsAdmin():
		return repo.Get(ctx, id)
	case principal.IsCourier():
		return repo.GetAssigned(ctx, id, principal.ID)
	default:
		return nil, errs.NewObjectNotFoundError("shipment", id.String())
	}
}
