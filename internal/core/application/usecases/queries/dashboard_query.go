package queries

import (
	"context"
	"errors"
	"slices"

	"shiptrack/internal/core/domain/model/shipment"
	"shiptrack/internal/pkg/guard"

	"gorm.io/gorm"
)

var ErrDashboardQueryIsNotConstructed = errors.New(
	"DashboardQuery must be created via NewDashboardQuery constructor",
)

type DashboardQuery struct {
	guard guard.ConstructorGuard
}

func NewDashboardQuery() DashboardQuery {
	return DashboardQuery{guard: guard.NewConstructorGuard()}
}

func (q DashboardQuery) Validate() error {
	return q.guard.Validate(ErrDashboardQueryIsNotConstructed)
}

// StatusCount is the number of shipments whose derived status is Status.
type StatusCount struct {
	Status shipment.Status `json:"status"`
	Class  string          `json:"class"`
	Count  int             `json:"count"`
}

type DashboardMetrics struct {
	TotalShipments int           `json:"total_shipments"`
	Customers      int64         `json:"customers"`
	Couriers       int64         `json:"couriers"`
	StatusCounts   []StatusCount `json:"status_counts"`
}

type DashboardQueryHandler struct {
	db *gorm.DB
}

func NewDashboardQueryHandler(db *gorm.DB) DashboardQueryHandler {
	return DashboardQueryHandler{db: db}
}

func (h DashboardQueryHandler) Handle(ctx context.Context, query DashboardQuery) (DashboardMetrics, error) {
	if err := query.Validate(); err != nil {
		return DashboardMetrics{}, err
	}

	var metrics DashboardMetrics
	if err := h.db.WithContext(ctx).Raw(`SELECT COUNT(*) FROM customers`).Scan(&metrics.Customers).Error; err != nil {
		return DashboardMetrics{}, err
	}
	if err := h.db.WithContext(ctx).Raw(`SELECT COUNT(*) FROM couriers`).Scan(&metrics.Couriers).Error; err != nil {
		return DashboardMetrics{}, err
	}

	items, err := loadShipmentRows(ctx, h.db, shipmentFilter{})
	if err != nil {
		return DashboardMetrics{}, err
	}
	metrics.TotalShipments = len(items)
	metrics.StatusCounts = countStatuses(items)

	return metrics, nil
}

// countStatuses tallies derived statuses. Only statuses that occur are
// listed: the known vocabulary in lifecycle order, then any other labels
// alphabetically.
func countStatuses(items []ShipmentListItem) []StatusCount {
	counts := make(map[shipment.Status]int)
	for _, item := range items {
		counts[item.Status]++
	}

	result := make([]StatusCount, 0, len(counts))
	for _, s := range shipment.Statuses() {
		if n, ok := counts[s]; ok {
			result = append(result, StatusCount{Status: s, Class: s.PresentationClass(), Count: n})
			delete(counts, s)
		}
	}

	others := make([]shipment.Status, 0, len(counts))
	for s := range counts {
		others = append(others, s)
	}
	slices.Sort(others)
	for _, s := range others {
		result = append(result, StatusCount{Status: s, Class: s.PresentationClass(), Count: counts[s]})
	}
	return result
}
