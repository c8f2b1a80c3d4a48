package queries

import (
	"context"
	"database/sql"
	"strings"
	"time"

	"shiptrack/internal/core/domain/model/kernel"
	"shiptrack/internal/core/domain/model/shipment"

	"github.com/google/uuid"
	"gorm.io/gorm"
)

// ShipmentListItem is one row of a shipment listing. Status is derived from
// the latest tracking event.
type ShipmentListItem struct {
	ID              kernel.UUID     `json:"id"`
	TrackingNumber  string          `json:"tracking_number"`
	CustomerID      kernel.UUID     `json:"customer_id"`
	CustomerName    string          `json:"customer_name"`
	CourierID       *kernel.UUID    `json:"courier_id,omitempty"`
	CourierName     string          `json:"courier_name,omitempty"`
	SenderAddress   string          `json:"sender_address"`
	ReceiverAddress string          `json:"receiver_address"`
	City            string          `json:"city"`
	RequestedDate   time.Time       `json:"requested_date"`
	CreatedAt       time.Time       `json:"created_at"`
	Status          shipment.Status `json:"status"`
	StatusClass     string          `json:"status_class"`
	Delivered       bool            `json:"delivered"`

	customerFirst string
	customerLast  string
}

// shipmentFilter narrows the SQL side of a listing. Search, derived-status
// and date filters run in Go after loading.
type shipmentFilter struct {
	courierID *kernel.UUID
}

// The latest status is picked with the same (created_at, position) order the
// aggregate uses, so listings and detail views never disagree.
const shipmentRowsSQL = `
SELECT
	s.id,
	s.tracking_number,
	s.customer_id,
	c.first_name,
	c.last_name,
	s.assigned_courier_id,
	k.first_name,
	k.last_name,
	s.sender_address,
	s.receiver_address,
	s.city,
	s.requested_date,
	s.created_at,
	(SELECT e.status FROM tracking_events e
		WHERE e.shipment_id = s.id
		ORDER BY e.created_at DESC, e.position DESC
		LIMIT 1) AS latest_status,
	CASE WHEN EXISTS (
		SELECT 1 FROM tracking_events d
		WHERE d.shipment_id = s.id AND d.status = ?
	) THEN 1 ELSE 0 END AS delivered
FROM shipments s
LEFT JOIN customers c ON c.id = s.customer_id
LEFT JOIN couriers k ON k.id = s.assigned_courier_id
`

func loadShipmentRows(ctx context.Context, db *gorm.DB, filter shipmentFilter) ([]ShipmentListItem, error) {
	query := shipmentRowsSQL
	args := []any{shipment.Delivered.String()}

	if filter.courierID != nil {
		query += "WHERE s.assigned_courier_id = ?\n"
		args = append(args, filter.courierID.Bytes())
	}
	query += "ORDER BY s.created_at DESC, s.tracking_number"

	rows, err := db.WithContext(ctx).Raw(query, args...).Rows()
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	items := make([]ShipmentListItem, 0)
	for rows.Next() {
		var item ShipmentListItem
		var id, customerID uuid.UUID
		var courierID uuid.NullUUID
		var customerFirst, customerLast, courierFirst, courierLast, latest sql.NullString
		var delivered int

		if err := rows.Scan(
			&id,
			&item.TrackingNumber,
			&customerID,
			&customerFirst,
			&customerLast,
			&courierID,
			&courierFirst,
			&courierLast,
			&item.SenderAddress,
			&item.ReceiverAddress,
			&item.City,
			&item.RequestedDate,
			&item.CreatedAt,
			&latest,
			&delivered,
		); err != nil {
			return nil, err
		}

		if item.ID, err = kernel.UUIDFromBytes(id[:]); err != nil {
			return nil, err
		}
		if item.CustomerID, err = kernel.UUIDFromBytes(customerID[:]); err != nil {
			return nil, err
		}
		if courierID.Valid {
			if item.CourierID, err = kernel.UUIDPtrFromBytes(&courierID.UUID); err != nil {
				return nil, err
			}
			item.CourierName = fullName(courierFirst, courierLast)
		}
		item.customerFirst = customerFirst.String
		item.customerLast = customerLast.String
		item.CustomerName = fullName(customerFirst, customerLast)
		item.RequestedDate = item.RequestedDate.UTC()
		item.CreatedAt = item.CreatedAt.UTC()

		item.Status = shipment.Created
		if latest.Valid {
			item.Status = shipment.Status(latest.String)
		}
		item.StatusClass = item.Status.PresentationClass()
		item.Delivered = delivered == 1

		items = append(items, item)
	}
	if err := rows.Err(); err != nil {
		return nil, err
	}

	return items, nil
}

func fullName(first, last sql.NullString) string {
	if !first.Valid && !last.Valid {
		return ""
	}
	return strings.TrimSpace(first.String + " " + last.String)
}

// filterByStatus keeps items whose derived status equals status exactly. An
// empty status keeps everything.
func filterByStatus(items []ShipmentListItem, status string) []ShipmentListItem {
	if status == "" {
		return items
	}
	kept := make([]ShipmentListItem, 0, len(items))
	for _, item := range items {
		if item.Status.String() == status {
			kept = append(kept, item)
		}
	}
	return kept
}

// filterBySearch keeps items whose tracking number or customer first or last
// name contains term, ignoring case. A blank term keeps everything.
func filterBySearch(items []ShipmentListItem, term string) []ShipmentListItem {
	term = strings.ToLower(strings.TrimSpace(term))
	if term == "" {
		return items
	}
	kept := make([]ShipmentListItem, 0, len(items))
	for _, item := range items {
		if strings.Contains(strings.ToLower(item.TrackingNumber), term) ||
			strings.Contains(strings.ToLower(item.customerFirst), term) ||
			strings.Contains(strings.ToLower(item.customerLast), term) {
			kept = append(kept, item)
		}
	}
	return kept
}
