package queries

import (
	"context"
	"errors"
	"slices"
	"strings"
	"time"

	"shiptrack/internal/core/domain/model/kernel"
	"shiptrack/internal/core/domain/model/shipment"
	"shiptrack/internal/pkg/errs"
	"shiptrack/internal/pkg/guard"

	"github.com/google/uuid"
	"gorm.io/gorm"
)

// ReportDateLayout is the format of report date bounds and per-day keys.
const ReportDateLayout = "2006-01-02"

var ErrReportQueryIsNotConstructed = errors.New(
	"ReportQuery must be created via NewReportQuery constructor",
)

// ReportQuery filters the report's shipment list. The aggregate figures
// always cover every shipment.
type ReportQuery struct {
	start     *time.Time
	end       *time.Time
	courierID *kernel.UUID
	status    string

	guard guard.ConstructorGuard
}

// NewReportQuery parses the optional YYYY-MM-DD bounds. Both bounds are
// inclusive whole days in UTC.
func NewReportQuery(startDate, endDate string, courierID *kernel.UUID, status string) (ReportQuery, error) {
	start, startErr := parseReportDate("start_date", startDate)
	end, endErr := parseReportDate("end_date", endDate)
	if err := errors.Join(startErr, endErr); err != nil {
		return ReportQuery{}, err
	}
	if courierID != nil {
		if err := courierID.Validate(); err != nil {
			return ReportQuery{}, errs.NewValueIsInvalidErrorWithCause("courier_id", err)
		}
	}

	return ReportQuery{
		start:     start,
		end:       end,
		courierID: courierID,
		status:    strings.TrimSpace(status),
		guard:     guard.NewConstructorGuard(),
	}, nil
}

func parseReportDate(param, raw string) (*time.Time, error) {
	raw = strings.TrimSpace(raw)
	if raw == "" {
		return nil, nil
	}
	t, err := time.ParseInLocation(ReportDateLayout, raw, time.UTC)
	if err != nil {
		return nil, errs.NewValueIsInvalidErrorWithCause(param, err)
	}
	return &t, nil
}

func (q ReportQuery) Validate() error {
	return q.guard.Validate(ErrReportQueryIsNotConstructed)
}

func (q ReportQuery) includes(item ShipmentListItem) bool {
	if q.start != nil && item.RequestedDate.Before(*q.start) {
		return false
	}
	if q.end != nil && !item.RequestedDate.Before(q.end.AddDate(0, 0, 1)) {
		return false
	}
	return q.status == "" || item.Status.String() == q.status
}

type DayCount struct {
	Date  string `json:"date"`
	Count int    `json:"count"`
}

// CourierCount is the number of shipments currently assigned to a courier.
type CourierCount struct {
	CourierID kernel.UUID `json:"courier_id"`
	Name      string      `json:"name"`
	Count     int64       `json:"count"`
}

type Report struct {
	Shipments           []ShipmentListItem `json:"shipments"`
	ShipmentsPerDay     []DayCount         `json:"shipments_per_day"`
	ShipmentsPerCourier []CourierCount     `json:"shipments_per_courier"`
	DeliveredShipments  int64              `json:"delivered_shipments"`
	TotalShipments      int                `json:"total_shipments"`
}

type ReportQueryHandler struct {
	db *gorm.DB
}

func NewReportQueryHandler(db *gorm.DB) ReportQueryHandler {
	return ReportQueryHandler{db: db}
}

func (h ReportQueryHandler) Handle(ctx context.Context, query ReportQuery) (Report, error) {
	if err := query.Validate(); err != nil {
		return Report{}, err
	}

	all, err := loadShipmentRows(ctx, h.db, shipmentFilter{})
	if err != nil {
		return Report{}, err
	}

	report := Report{
		Shipments:       make([]ShipmentListItem, 0),
		ShipmentsPerDay: perDay(all),
		TotalShipments:  len(all),
	}
	for _, item := range all {
		if query.courierID != nil && !kernel.UUIDPtrEqual(item.CourierID, query.courierID) {
			continue
		}
		if query.includes(item) {
			report.Shipments = append(report.Shipments, item)
		}
	}

	if report.ShipmentsPerCourier, err = h.perCourier(ctx); err != nil {
		return Report{}, err
	}

	err = h.db.WithContext(ctx).
		Raw(`SELECT COUNT(DISTINCT shipment_id) FROM tracking_events WHERE status = ?`, shipment.Delivered.String()).
		Scan(&report.DeliveredShipments).Error
	if err != nil {
		return Report{}, err
	}

	return report, nil
}

// perDay groups shipments by requested day, oldest day first.
func perDay(items []ShipmentListItem) []DayCount {
	counts := make(map[string]int)
	for _, item := range items {
		counts[item.RequestedDate.UTC().Format(ReportDateLayout)]++
	}

	days := make([]string, 0, len(counts))
	for day := range counts {
		days = append(days, day)
	}
	slices.Sort(days)

	result := make([]DayCount, 0, len(days))
	for _, day := range days {
		result = append(result, DayCount{Date: day, Count: counts[day]})
	}
	return result
}

// perCourier lists every courier, including those without shipments.
func (h ReportQueryHandler) perCourier(ctx context.Context) ([]CourierCount, error) {
	rows, err := h.db.WithContext(ctx).Raw(`
		SELECT
			k.id,
			k.first_name,
			k.last_name,
			COUNT(s.id)
		FROM couriers k
		LEFT JOIN shipments s ON s.assigned_courier_id = k.id
		GROUP BY k.id, k.first_name, k.last_name
		ORDER BY k.first_name, k.last_name
	`).Rows()
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	result := make([]CourierCount, 0)
	for rows.Next() {
		var id uuid.UUID
		var first, last string
		var count CourierCount

		if err := rows.Scan(&id, &first, &last, &count.Count); err != nil {
			return nil, err
		}
		if count.CourierID, err = kernel.UUIDFromBytes(id[:]); err != nil {
			return nil, err
		}
		count.Name = strings.TrimSpace(first + " " + last)
		result = append(result, count)
	}
	if err := rows.Err(); err != nil {
		return nil, err
	}

	return result, nil
}
