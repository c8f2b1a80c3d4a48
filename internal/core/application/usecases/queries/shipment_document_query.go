package queries

import (
	"context"
	"errors"
	"fmt"

	"shiptrack/internal/core/domain/model/access"
	"shiptrack/internal/core/domain/model/kernel"
	"shiptrack/internal/core/domain/services"
	"shiptrack/internal/core/ports"
	"shiptrack/internal/pkg/errs"
	"shiptrack/internal/pkg/guard"
)

var ErrShipmentDocumentQueryIsNotConstructed = errors.New(
	"ShipmentDocumentQuery must be created via NewShipmentDocumentQuery constructor",
)

// DocumentKind selects which printable document to produce.
type DocumentKind string

const (
	SummaryDocument DocumentKind = "summary"
	ReceiptDocument DocumentKind = "receipt"
)

type ShipmentDocumentQuery struct {
	principal  access.Principal
	shipmentID kernel.UUID
	kind       DocumentKind

	guard guard.ConstructorGuard
}

func NewShipmentDocumentQuery(
	principal access.Principal,
	shipmentID kernel.UUID,
	kind DocumentKind,
) (ShipmentDocumentQuery, error) {
	if err := shipmentID.Validate(); err != nil {
		return ShipmentDocumentQuery{}, err
	}
	if kind != SummaryDocument && kind != ReceiptDocument {
		return ShipmentDocumentQuery{}, errs.NewValueIsInvalidError("document")
	}
	return ShipmentDocumentQuery{
		principal:  principal,
		shipmentID: shipmentID,
		kind:       kind,
		guard:      guard.NewConstructorGuard(),
	}, nil
}

func (q ShipmentDocumentQuery) Validate() error {
	return q.guard.Validate(ErrShipmentDocumentQueryIsNotConstructed)
}

// ShipmentDocument is a rendered file ready for download.
type ShipmentDocument struct {
	Filename    string
	ContentType string
	Content     []byte
}

type ShipmentDocumentQueryHandler struct {
	uowFactory ports.UnitOfWorkFactory
	builder    services.DocumentBuilder
	renderer   ports.DocumentRenderer
}

func NewShipmentDocumentQueryHandler(
	uowFactory ports.UnitOfWorkFactory,
	builder services.DocumentBuilder,
	renderer ports.DocumentRenderer,
) ShipmentDocumentQueryHandler {
	return ShipmentDocumentQueryHandler{
		uowFactory: uowFactory,
		builder:    builder,
		renderer:   renderer,
	}
}

// Handle builds and renders the document. A receipt for a shipment whose
// derived status is not Delivered is reported as not found.
func (h ShipmentDocumentQueryHandler) Handle(ctx context.Context, query ShipmentDocumentQuery) (ShipmentDocument, error) {
	if err := query.Validate(); err != nil {
		return ShipmentDocument{}, err
	}

	uow := h.uowFactory.Create()
	s, err := scopedShipment(ctx, uow.ShipmentRepository(), query.principal, query.shipmentID)
	if err != nil {
		return ShipmentDocument{}, err
	}
	names, err := parties(ctx, uow, s)
	if err != nil {
		return ShipmentDocument{}, err
	}

	var doc services.Document
	filename := s.TrackingNumber().String() + ".pdf"
	switch query.kind {
	case ReceiptDocument:
		doc, err = h.builder.Receipt(s, names)
		filename = s.TrackingNumber().String() + "-receipt.pdf"
	default:
		doc, err = h.builder.Summary(s, names)
	}
	if err != nil {
		return ShipmentDocument{}, err
	}

	content, err := h.renderer.Render(doc)
	if err != nil {
		return ShipmentDocument{}, fmt.Errorf("render %s: %w", query.kind, err)
	}

	return ShipmentDocument{
		Filename:    filename,
		ContentType: h.renderer.ContentType(),
		Content:     content,
	}, nil
}
