package commands

import (
	"time"

	"shiptrack/internal/core/domain/model/kernel"
	"shiptrack/internal/core/domain/model/shipment"
)

// ShipmentInput is the admin-editable part of a shipment. A nil
// RequestedDate means "now" on creation and "unchanged" on update.
type ShipmentInput struct {
	CustomerID      kernel.UUID
	SenderAddress   string
	ReceiverAddress string
	City            string
	RequestedDate   *time.Time
	CourierID       *kernel.UUID
}

func (in ShipmentInput) details(fallbackDate time.Time) shipment.Details {
	requested := fallbackDate
	if in.RequestedDate != nil {
		requested = *in.RequestedDate
	}
	return shipment.Details{
		CustomerID:      in.CustomerID,
		SenderAddress:   in.SenderAddress,
		ReceiverAddress: in.ReceiverAddress,
		City:            in.City,
		RequestedDate:   requested,
	}
}
