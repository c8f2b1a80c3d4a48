package http

import (
	"bytes"
	"encoding/csv"
	"fmt"
	"net/http"

	"shiptrack/internal/core/application/usecases/commands"
	"shiptrack/internal/core/application/usecases/queries"
	"shiptrack/internal/core/domain/model/kernel"
	"shiptrack/internal/pkg/errs"

	"github.com/labstack/echo/v4"
)

const csvDateLayout = "2006-01-02"

var shipmentCSVHeader = []string{"Tracking", "Customer", "Courier", "Status", "Requested"}

// ShipmentRequest is the create and update body of a shipment.
type ShipmentRequest struct {
	CustomerID      string  `json:"customer_id"`
	SenderAddress   string  `json:"sender_address"`
	ReceiverAddress string  `json:"receiver_address"`
	City            string  `json:"city"`
	RequestedDate   string  `json:"requested_date"`
	CourierID       *string `json:"courier_id"`
}

func (r ShipmentRequest) input() (commands.ShipmentInput, error) {
	customerID, err := parseUUID("customer_id", r.CustomerID)
	if err != nil {
		return commands.ShipmentInput{}, err
	}
	courierID, err := parseOptionalUUID("courier_id", r.CourierID)
	if err != nil {
		return commands.ShipmentInput{}, err
	}
	requested, err := parseRequestedDate(r.RequestedDate)
	if err != nil {
		return commands.ShipmentInput{}, err
	}

	return commands.ShipmentInput{
		CustomerID:      customerID,
		SenderAddress:   r.SenderAddress,
		ReceiverAddress: r.ReceiverAddress,
		City:            r.City,
		RequestedDate:   requested,
		CourierID:       courierID,
	}, nil
}

// ShipmentCreatedResponse identifies a new shipment.
type ShipmentCreatedResponse struct {
	ID             kernel.UUID `json:"id"`
	TrackingNumber string      `json:"tracking_number"`
}

// ListShipments handles GET /api/v1/admin/shipments, as JSON or, with
// export=csv, as a CSV attachment.
func (s *Server) ListShipments(ctx echo.Context) error {
	status, err := queryString(ctx, "status")
	if err != nil {
		return s.fail(ctx, err)
	}
	search, err := queryString(ctx, "q")
	if err != nil {
		return s.fail(ctx, err)
	}
	export, err := queryString(ctx, "export")
	if err != nil {
		return s.fail(ctx, err)
	}

	items, err := s.queries.ListShipments.Handle(ctx.Request().Context(), queries.NewListShipmentsQuery(status, search))
	if err != nil {
		return s.fail(ctx, err)
	}

	switch export {
	case "":
		return ctx.JSON(http.StatusOK, items)
	case "csv":
		return s.exportShipments(ctx, items)
	default:
		return s.fail(ctx, errs.NewValueIsInvalidError("export"))
	}
}

func (s *Server) exportShipments(ctx echo.Context, items []queries.ShipmentListItem) error {
	var buf bytes.Buffer
	w := csv.NewWriter(&buf)
	if err := w.Write(shipmentCSVHeader); err != nil {
		return s.fail(ctx, err)
	}
	for _, item := range items {
		courierName := item.CourierName
		if courierName == "" {
			courierName = "Unassigned"
		}
		record := []string{
			item.TrackingNumber,
			item.CustomerName,
			courierName,
			item.Status.String(),
			item.RequestedDate.Format(csvDateLayout),
		}
		if err := w.Write(record); err != nil {
			return s.fail(ctx, err)
		}
	}
	w.Flush()
	if err := w.Error(); err != nil {
		return s.fail(ctx, err)
	}

	ctx.Response().Header().Set(echo.HeaderContentDisposition, "attachment; filename=shipments.csv")
	return ctx.Blob(http.StatusOK, "text/csv; charset=utf-8", buf.Bytes())
}

// CreateShipment handles POST /api/v1/admin/shipments.
func (s *Server) CreateShipment(ctx echo.Context) error {
	var body ShipmentRequest
	if err := ctx.Bind(&body); err != nil {
		return s.fail(ctx, errs.NewValueIsInvalidErrorWithCause("body", err))
	}
	input, err := body.input()
	if err != nil {
		return s.fail(ctx, err)
	}

	cmd, err := commands.NewCreateShipmentCommand(input)
	if err != nil {
		return s.fail(ctx, err)
	}
	result, err := s.commands.CreateShipment.Handle(ctx.Request().Context(), cmd)
	if err != nil {
		return s.fail(ctx, err)
	}
	return ctx.JSON(http.StatusCreated, ShipmentCreatedResponse{
		ID:             result.ShipmentID,
		TrackingNumber: result.TrackingNumber,
	})
}

// GetShipment handles GET /api/v1/admin/shipments/{id} and
// GET /api/v1/courier/shipments/{id}. Couriers only see their assignments.
func (s *Server) GetShipment(ctx echo.Context) error {
	id, err := pathID(ctx)
	if err != nil {
		return s.fail(ctx, err)
	}
	query, err := queries.NewGetShipmentQuery(principalOf(ctx), id)
	if err != nil {
		return s.fail(ctx, err)
	}

	view, err := s.queries.GetShipment.Handle(ctx.Request().Context(), query)
	if err != nil {
		return s.fail(ctx, err)
	}
	return ctx.JSON(http.StatusOK, view)
}

// UpdateShipment handles PUT /api/v1/admin/shipments/{id}.
func (s *Server) UpdateShipment(ctx echo.Context) error {
	id, err := pathID(ctx)
	if err != nil {
		return s.fail(ctx, err)
	}
	var body ShipmentRequest
	if err := ctx.Bind(&body); err != nil {
		return s.fail(ctx, errs.NewValueIsInvalidErrorWithCause("body", err))
	}
	input, err := body.input()
	if err != nil {
		return s.fail(ctx, err)
	}

	cmd, err := commands.NewUpdateShipmentCommand(id, input)
	if err != nil {
		return s.fail(ctx, err)
	}
	if err := s.commands.UpdateShipment.Handle(ctx.Request().Context(), cmd); err != nil {
		return s.fail(ctx, err)
	}
	return ctx.NoContent(http.StatusNoContent)
}

// DeleteShipment handles DELETE /api/v1/admin/shipments/{id}.
func (s *Server) DeleteShipment(ctx echo.Context) error {
	id, err := pathID(ctx)
	if err != nil {
		return s.fail(ctx, err)
	}
	cmd, err := commands.NewDeleteShipmentCommand(id)
	if err != nil {
		return s.fail(ctx, err)
	}
	if err := s.commands.DeleteShipment.Handle(ctx.Request().Context(), cmd); err != nil {
		return s.fail(ctx, err)
	}
	return ctx.NoContent(http.StatusNoContent)
}

// PrintShipment handles GET .../shipments/{id}/print for admins and couriers.
func (s *Server) PrintShipment(ctx echo.Context) error {
	return s.document(ctx, queries.SummaryDocument)
}

// ShipmentReceipt handles GET .../shipments/{id}/receipt. Shipments without a
// Delivered event have no receipt.
func (s *Server) ShipmentReceipt(ctx echo.Context) error {
	return s.document(ctx, queries.ReceiptDocument)
}

func (s *Server) document(ctx echo.Context, kind queries.DocumentKind) error {
	id, err := pathID(ctx)
	if err != nil {
		return s.fail(ctx, err)
	}
	query, err := queries.NewShipmentDocumentQuery(principalOf(ctx), id, kind)
	if err != nil {
		return s.fail(ctx, err)
	}

	doc, err := s.queries.Documents.Handle(ctx.Request().Context(), query)
	if err != nil {
		return s.fail(ctx, err)
	}
	ctx.Response().Header().Set(echo.HeaderContentDisposition, fmt.Sprintf("attachment; filename=%s", doc.Filename))
	return ctx.Blob(http.StatusOK, doc.ContentType, doc.Content)
}
