package commands_test

import (
	"context"
	"testing"

	"shiptrack/internal/core/application/usecases/commands"
	"shiptrack/internal/core/domain/model/kernel"
	"shiptrack/internal/core/domain/model/shipment"
	"shiptrack/internal/core/domain/services"
	"shiptrack/internal/pkg/errs"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/require"
)

// stubNumbers hands out the given tracking numbers in order.
type stubNumbers struct {
	numbers []string
	calls   int
}

func (s *stubNumbers) Generate(_ context.Context, _ services.TrackingNumberTaken) (shipment.TrackingNumber, error) {
	n, err := shipment.NewTrackingNumber(s.numbers[s.calls])
	s.calls++
	return n, err
}

func shipmentInput(customerID kernel.UUID, courierID *kernel.UUID) commands.ShipmentInput {
	return commands.ShipmentInput{
		CustomerID:      customerID,
		SenderAddress:   "1 Sender St",
		ReceiverAddress: "2 Receiver Ave",
		City:            "Springfield",
		CourierID:       courierID,
	}
}

func TestCreateShipmentCommandHandler_Handle_WithCourier(t *testing.T) {
	// Arrange
	ctx := t.Context()
	owner := newCustomer(t)
	assignee := newCourier(t)
	courierID := assignee.ID()

	cmd, err := commands.NewCreateShipmentCommand(shipmentInput(owner.ID(), &courierID))
	require.NoError(t, err)

	mockCustomers := new(MockCustomerRepository)
	mockCouriers := new(MockCourierRepository)
	mockShipments := new(MockShipmentRepository)
	mockUoW := new(MockUoW)
	mockFactory := new(MockUoWFactory)

	var stored *shipment.Shipment
	mock.InOrder(
		mockFactory.On("uow").Return(mockUoW).Once(),
		mockUoW.On("Begin", ctx).Return(nil).Once(),
		mockUoW.On("CustomerRepository").Return(mockCustomers).Once(),
		mockCustomers.On("Get", ctx, owner.ID()).Return(owner, nil).Once(),
		mockUoW.On("CourierRepository").Return(mockCouriers).Once(),
		mockCouriers.On("Get", ctx, courierID).Return(assignee, nil).Once(),
		mockUoW.On("ShipmentRepository").Return(mockShipments).Once(),
		mockShipments.On("Add", ctx, mock.AnythingOfType("*shipment.Shipment")).
			Run(func(args mock.Arguments) { stored = args.Get(1).(*shipment.Shipment) }).
			Return(nil).Once(),
		mockUoW.On("Commit", ctx).Return(nil).Once(),
		mockUoW.On("Rollback", ctx).Return(nil).Once(),
	)

	handler := commands.NewCreateShipmentCommandHandler(shipmentFactory{mockFactory}, &stubNumbers{numbers: []string{"TRK-AAAA0001"}})

	// Act
	result, err := handler.Handle(ctx, cmd)

	// Assert
	require.NoError(t, err)
	assert.Equal(t, "TRK-AAAA0001", result.TrackingNumber)
	assert.Equal(t, cmd.ShipmentID(), result.ShipmentID)

	require.NotNil(t, stored)
	events := stored.UncommittedEvents()
	require.Len(t, events, 2)
	assert.Equal(t, shipment.Created, events[0].Status())
	assert.Equal(t, shipment.Assigned, events[1].Status())
	assert.Equal(t, shipment.Assigned, stored.Status())
	assert.False(t, stored.Details().RequestedDate.IsZero())
	mockUoW.AssertExpectations(t)
}

func TestCreateShipmentCommandHandler_Handle_UnknownCustomer(t *testing.T) {
	// Arrange
	ctx := t.Context()
	missing := kernel.NewUUID()
	cmd, err := commands.NewCreateShipmentCommand(shipmentInput(missing, nil))
	require.NoError(t, err)

	mockCustomers := new(MockCustomerRepository)
	mockUoW := new(MockUoW)
	mockFactory := new(MockUoWFactory)

	mockFactory.On("uow").Return(mockUoW).Once()
	mockUoW.On("Begin", ctx).Return(nil).Once()
	mockUoW.On("CustomerRepository").Return(mockCustomers).Once()
	mockCustomers.On("Get", ctx, missing).Return(nil, errs.NewObjectNotFoundError("customer", missing.String())).Once()
	mockUoW.On("Rollback", ctx).Return(nil).Once()

	handler := commands.NewCreateShipmentCommandHandler(shipmentFactory{mockFactory}, &stubNumbers{})

	// Act
	_, err = handler.Handle(ctx, cmd)

	// Assert
	require.ErrorIs(t, err, errs.ErrValueIsInvalid)
	assert.Contains(t, err.Error(), "customer_id")
	mockUoW.AssertNotCalled(t, "ShipmentRepository")
}

func TestCreateShipmentCommandHandler_Handle_UnknownCourier(t *testing.T) {
	ctx := t.Context()
	owner := newCustomer(t)
	missing := kernel.NewUUID()
	cmd, err := commands.NewCreateShipmentCommand(shipmentInput(owner.ID(), &missing))
	require.NoError(t, err)

	mockCustomers := new(MockCustomerRepository)
	mockCouriers := new(MockCourierRepository)
	mockUoW := new(MockUoW)
	mockFactory := new(MockUoWFactory)

	mockFactory.On("uow").Return(mockUoW).Once()
	mockUoW.On("Begin", ctx).Return(nil).Once()
	mockUoW.On("CustomerRepository").Return(mockCustomers).Once()
	mockCustomers.On("Get", ctx, owner.ID()).Return(owner, nil).Once()
	mockUoW.On("CourierRepository").Return(mockCouriers).Once()
	mockCouriers.On("Get", ctx, missing).Return(nil, errs.NewObjectNotFoundError("courier", missing.String())).Once()
	mockUoW.On("Rollback", ctx).Return(nil).Once()

	handler := commands.NewCreateShipmentCommandHandler(shipmentFactory{mockFactory}, &stubNumbers{})

	_, err = handler.Handle(ctx, cmd)

	require.ErrorIs(t, err, errs.ErrValueIsInvalid)
	assert.Contains(t, err.Error(), "courier_id")
}

func TestCreateShipmentCommandHandler_Handle_RetriesTrackingNumberCollision(t *testing.T) {
	// Arrange
	ctx := t.Context()
	owner := newCustomer(t)
	cmd, err := commands.NewCreateShipmentCommand(shipmentInput(owner.ID(), nil))
	require.NoError(t, err)

	mockCustomers := new(MockCustomerRepository)
	mockShipments := new(MockShipmentRepository)
	mockUoW := new(MockUoW)
	mockFactory := new(MockUoWFactory)

	mockFactory.On("uow").Return(mockUoW).Twice()
	mockUoW.On("Begin", ctx).Return(nil).Twice()
	mockUoW.On("CustomerRepository").Return(mockCustomers)
	mockUoW.On("ShipmentRepository").Return(mockShipments)
	mockCustomers.On("Get", ctx, owner.ID()).Return(owner, nil).Twice()
	mockShipments.On("Add", ctx, mock.MatchedBy(func(s *shipment.Shipment) bool {
		return s.TrackingNumber().String() == "TRK-DUPL0001"
	})).Return(errs.NewObjectAlreadyExistsError("tracking_number", "TRK-DUPL0001")).Once()
	mockShipments.On("Add", ctx, mock.MatchedBy(func(s *shipment.Shipment) bool {
		return s.TrackingNumber().String() == "TRK-FRES0002"
	})).Return(nil).Once()
	mockUoW.On("Commit", ctx).Return(nil).Once()
	mockUoW.On("Rollback", ctx).Return(nil).Twice()

	numbers := &stubNumbers{numbers: []string{"TRK-DUPL0001", "TRK-FRES0002"}}
	handler := commands.NewCreateShipmentCommandHandler(shipmentFactory{mockFactory}, numbers)

	// Act
	result, err := handler.Handle(ctx, cmd)

	// Assert
	require.NoError(t, err)
	assert.Equal(t, "TRK-FRES0002", result.TrackingNumber)
	assert.Equal(t, 2, numbers.calls)
	mockShipments.AssertExpectations(t)
	mockUoW.AssertExpectations(t)
}

func TestCreateShipmentCommandHandler_Handle_EmailConflictIsNotRetried(t *testing.T) {
	ctx := t.Context()
	owner := newCustomer(t)
	cmd, err := commands.NewCreateShipmentCommand(shipmentInput(owner.ID(), nil))
	require.NoError(t, err)

	mockCustomers := new(MockCustomerRepository)
	mockShipments := new(MockShipmentRepository)
	mockUoW := new(MockUoW)
	mockFactory := new(MockUoWFactory)

	mockFactory.On("uow").Return(mockUoW).Once()
	mockUoW.On("Begin", ctx).Return(nil).Once()
	mockUoW.On("CustomerRepository").Return(mockCustomers).Once()
	mockUoW.On("ShipmentRepository").Return(mockShipments).Once()
	mockCustomers.On("Get", ctx, owner.ID()).Return(owner, nil).Once()
	mockShipments.On("Add", ctx, mock.Anything).Return(errs.NewObjectAlreadyExistsError("id", "x")).Once()
	mockUoW.On("Rollback", ctx).Return(nil).Once()

	handler := commands.NewCreateShipmentCommandHandler(shipmentFactory{mockFactory}, &stubNumbers{numbers: []string{"TRK-AAAA0001"}})

	_, err = handler.Handle(ctx, cmd)

	require.ErrorIs(t, err, errs.ErrObjectAlreadyExists)
	mockFactory.AssertNumberOfCalls(t, "uow", 1)
}

func TestUpdateShipmentCommandHandler_Handle_Reassignment(t *testing.T) {
	// Arrange
	ctx := t.Context()
	owner := newCustomer(t)
	first := newCourier(t)
	second := newCourier(t)
	firstID, secondID := first.ID(), second.ID()
	stored := newStoredShipment(t, owner.ID(), &firstID)
	requested := stored.Details().RequestedDate

	cmd, err := commands.NewUpdateShipmentCommand(stored.ID(), shipmentInput(owner.ID(), &secondID))
	require.NoError(t, err)

	mockCustomers := new(MockCustomerRepository)
	mockCouriers := new(MockCourierRepository)
	mockShipments := new(MockShipmentRepository)
	mockUoW := new(MockUoW)
	mockFactory := new(MockUoWFactory)

	mock.InOrder(
		mockFactory.On("uow").Return(mockUoW).Once(),
		mockUoW.On("Begin", ctx).Return(nil).Once(),
		mockUoW.On("ShipmentRepository").Return(mockShipments).Once(),
		mockShipments.On("Get", ctx, stored.ID()).Return(stored, nil).Once(),
		mockUoW.On("CustomerRepository").Return(mockCustomers).Once(),
		mockCustomers.On("Get", ctx, owner.ID()).Return(owner, nil).Once(),
		mockUoW.On("CourierRepository").Return(mockCouriers).Once(),
		mockCouriers.On("Get", ctx, secondID).Return(second, nil).Once(),
		mockShipments.On("Update", ctx, mock.MatchedBy(func(s *shipment.Shipment) bool {
			events := s.UncommittedEvents()
			return len(events) == 1 &&
				events[0].Status() == shipment.Assigned &&
				kernel.UUIDPtrEqual(events[0].CourierID(), &secondID)
		})).Return(nil).Once(),
		mockUoW.On("Commit", ctx).Return(nil).Once(),
		mockUoW.On("Rollback", ctx).Return(nil).Once(),
	)

	handler := commands.NewUpdateShipmentCommandHandler(shipmentFactory{mockFactory})

	// Act
	err = handler.Handle(ctx, cmd)

	// Assert
	require.NoError(t, err)
	assert.Equal(t, requested, stored.Details().RequestedDate)
	assert.True(t, stored.IsAssignedTo(secondID))
	mockShipments.AssertExpectations(t)
	mockUoW.AssertExpectations(t)
}

func TestUpdateShipmentCommandHandler_Handle_Unassign(t *testing.T) {
	ctx := t.Context()
	owner := newCustomer(t)
	assignee := newCourier(t)
	courierID := assignee.ID()
	stored := newStoredShipment(t, owner.ID(), &courierID)

	cmd, err := commands.NewUpdateShipmentCommand(stored.ID(), shipmentInput(owner.ID(), nil))
	require.NoError(t, err)

	mockCustomers := new(MockCustomerRepository)
	mockShipments := new(MockShipmentRepository)
	mockUoW := new(MockUoW)
	mockFactory := new(MockUoWFactory)

	mockFactory.On("uow").Return(mockUoW).Once()
	mockUoW.On("Begin", ctx).Return(nil).Once()
	mockUoW.On("ShipmentRepository").Return(mockShipments).Once()
	mockShipments.On("Get", ctx, stored.ID()).Return(stored, nil).Once()
	mockUoW.On("CustomerRepository").Return(mockCustomers).Once()
	mockCustomers.On("Get", ctx, owner.ID()).Return(owner, nil).Once()
	mockShipments.On("Update", ctx, mock.MatchedBy(func(s *shipment.Shipment) bool {
		return len(s.UncommittedEvents()) == 0 && s.CourierID() == nil
	})).Return(nil).Once()
	mockUoW.On("Commit", ctx).Return(nil).Once()
	mockUoW.On("Rollback", ctx).Return(nil).Once()

	handler := commands.NewUpdateShipmentCommandHandler(shipmentFactory{mockFactory})

	err = handler.Handle(ctx, cmd)

	require.NoError(t, err)
	mockShipments.AssertExpectations(t)
}

func TestDeleteShipmentCommandHandler_Handle(t *testing.T) {
	ctx := t.Context()
	id := kernel.NewUUID()
	cmd, err := commands.NewDeleteShipmentCommand(id)
	require.NoError(t, err)

	mockShipments := new(MockShipmentRepository)
	mockUoW := new(MockUoW)
	mockFactory := new(MockUoWFactory)

	mock.InOrder(
		mockFactory.On("uow").Return(mockUoW).Once(),
		mockUoW.On("Begin", ctx).Return(nil).Once(),
		mockUoW.On("ShipmentRepository").Return(mockShipments).Once(),
		mockShipments.On("Delete", ctx, id).Return(nil).Once(),
		mockUoW.On("Commit", ctx).Return(nil).Once(),
		mockUoW.On("Rollback", ctx).Return(nil).Once(),
	)

	handler := commands.NewDeleteShipmentCommandHandler(shipmentFactory{mockFactory})

	err = handler.Handle(ctx, cmd)

	require.NoError(t, err)
	mockShipments.AssertExpectations(t)
}

func TestRecordTrackingEventCommandHandler_Handle_Success(t *testing.T) {
	// Arrange
	ctx := t.Context()
	owner := newCustomer(t)
	assignee := newCourier(t)
	courierID := assignee.ID()
	stored := newStoredShipment(t, owner.ID(), &courierID)

	cmd, err := commands.NewRecordTrackingEventCommand(stored.ID(), courierID, commands.TrackingEventInput{
		Status:   "Picked up",
		Location: "   ",
		Notes:    "at dock",
	})
	require.NoError(t, err)

	mockShipments := new(MockShipmentRepository)
	mockUoW := new(MockUoW)
	mockFactory := new(MockUoWFactory)

	mock.InOrder(
		mockFactory.On("uow").Return(mockUoW).Once(),
		mockUoW.On("Begin", ctx).Return(nil).Once(),
		mockUoW.On("ShipmentRepository").Return(mockShipments).Once(),
		mockShipments.On("GetAssigned", ctx, stored.ID(), courierID).Return(stored, nil).Once(),
		mockShipments.On("Update", ctx, stored).Return(nil).Once(),
		mockUoW.On("Commit", ctx).Return(nil).Once(),
		mockUoW.On("Rollback", ctx).Return(nil).Once(),
	)

	handler := commands.NewRecordTrackingEventCommandHandler(shipmentFactory{mockFactory})

	// Act
	err = handler.Handle(ctx, cmd)

	// Assert
	require.NoError(t, err)
	events := stored.UncommittedEvents()
	require.Len(t, events, 1)
	assert.Equal(t, shipment.Status("Picked up"), events[0].Status())
	assert.Equal(t, shipment.UnknownLocation, events[0].Location())
	assert.Nil(t, events[0].ProofURL())
	assert.Equal(t, shipment.Status("Picked up"), stored.Status())
	mockUoW.AssertExpectations(t)
}

func TestRecordTrackingEventCommandHandler_Handle_OtherCourier(t *testing.T) {
	ctx := t.Context()
	shipmentID := kernel.NewUUID()
	courierID := kernel.NewUUID()
	cmd, err := commands.NewRecordTrackingEventCommand(shipmentID, courierID, commands.TrackingEventInput{
		Status:   "Delivered",
		Location: "Door",
	})
	require.NoError(t, err)

	mockShipments := new(MockShipmentRepository)
	mockUoW := new(MockUoW)
	mockFactory := new(MockUoWFactory)

	mockFactory.On("uow").Return(mockUoW).Once()
	mockUoW.On("Begin", ctx).Return(nil).Once()
	mockUoW.On("ShipmentRepository").Return(mockShipments).Once()
	mockShipments.On("GetAssigned", ctx, shipmentID, courierID).
		Return(nil, errs.NewObjectNotFoundError("shipment", shipmentID.String())).Once()
	mockUoW.On("Rollback", ctx).Return(nil).Once()

	handler := commands.NewRecordTrackingEventCommandHandler(shipmentFactory{mockFactory})

	err = handler.Handle(ctx, cmd)

	require.ErrorIs(t, err, errs.ErrObjectNotFound)
	mockShipments.AssertNotCalled(t, "Update", mock.Anything, mock.Anything)
}

func TestRecordTrackingEventCommandHandler_Handle_MissingStatus(t *testing.T) {
	ctx := t.Context()
	owner := newCustomer(t)
	assignee := newCourier(t)
	courierID := assignee.ID()
	stored := newStoredShipment(t, owner.ID(), &courierID)

	cmd, err := commands.NewRecordTrackingEventCommand(stored.ID(), courierID, commands.TrackingEventInput{Location: "Hub"})
	require.NoError(t, err)

	mockShipments := new(MockShipmentRepository)
	mockUoW := new(MockUoW)
	mockFactory := new(MockUoWFactory)

	mockFactory.On("uow").Return(mockUoW).Once()
	mockUoW.On("Begin", ctx).Return(nil).Once()
	mockUoW.On("ShipmentRepository").Return(mockShipments).Once()
	mockShipments.On("GetAssigned", ctx, stored.ID(), courierID).Return(stored, nil).Once()
	mockUoW.On("Rollback", ctx).Return(nil).Once()

	handler := commands.NewRecordTrackingEventCommandHandler(shipmentFactory{mockFactory})

	err = handler.Handle(ctx, cmd)

	require.ErrorIs(t, err, errs.ErrValueIsRequired)
	assert.Empty(t, stored.UncommittedEvents())
}
