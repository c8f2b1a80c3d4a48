package shipmentrepo_test

import (
	"context"
	"testing"
	"time"

	"shiptrack/internal/adapters/out/postgres/pgtest"
	"shiptrack/internal/adapters/out/postgres/shipmentrepo"
	"shiptrack/internal/core/domain/model/kernel"
	"shiptrack/internal/core/domain/model/shipment"
	"shiptrack/internal/core/ports"
	"shiptrack/internal/pkg/errs"

	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/suite"
	"gorm.io/gorm"
)

// MockAggregateTracker is a mock implementation of the repository's tracker.
type MockAggregateTracker struct {
	mock.Mock
}

func (m *MockAggregateTracker) TrackAggregate(id kernel.UUID, aggregate any) {
	m.Called(id, aggregate)
}

type ShipmentRepositoryIntegrationTestSuite struct {
	suite.Suite
	open    pgtest.Opener
	release func()
	db      *gorm.DB
	tracker *MockAggregateTracker
	repo    *shipmentrepo.GormShipmentRepository
}

func TestShipmentRepositorySQLite(t *testing.T) {
	suite.Run(t, &ShipmentRepositoryIntegrationTestSuite{open: pgtest.SQLite})
}

func TestShipmentRepositoryPostgres(t *testing.T) {
	if testing.Short() {
		t.Skip("needs docker")
	}
	suite.Run(t, &ShipmentRepositoryIntegrationTestSuite{open: pgtest.Postgres})
}

func (suite *ShipmentRepositoryIntegrationTestSuite) SetupSuite() {
	db, release, err := suite.open(context.Background())
	suite.Require().NoError(err)
	suite.db = db
	suite.release = release
}

func (suite *ShipmentRepositoryIntegrationTestSuite) SetupTest() {
	suite.Require().NoError(pgtest.Reset(suite.db))
	suite.tracker = new(MockAggregateTracker)
	suite.tracker.On("TrackAggregate", mock.Anything, mock.Anything).Maybe()
	suite.repo = shipmentrepo.NewGormShipmentRepository(suite.db, suite.tracker)
}

func (suite *ShipmentRepositoryIntegrationTestSuite) TearDownSuite() {
	if suite.release != nil {
		suite.release()
	}
}

var base = time.Date(2025, 7, 1, 10, 0, 0, 0, time.UTC)

func (suite *ShipmentRepositoryIntegrationTestSuite) newShipment(number string, courierID *kernel.UUID) *shipment.Shipment {
	tn, err := shipment.NewTrackingNumber(number)
	suite.Require().NoError(err)
	s, err := shipment.NewShipment(kernel.NewUUID(), tn, shipment.Details{
		CustomerID:      kernel.NewUUID(),
		SenderAddress:   "Sender",
		ReceiverAddress: "Receiver",
		City:            "Metropolis",
		RequestedDate:   base,
	}, courierID, base)
	suite.Require().NoError(err)
	return s
}

func (suite *ShipmentRepositoryIntegrationTestSuite) TestAdd_PersistsSynthesizedEventsInOrder() {
	ctx := suite.T().Context()
	courierID := kernel.NewUUID()
	s := suite.newShipment("TRK-ADD00001", &courierID)

	suite.Require().NoError(suite.repo.Add(ctx, s))
	suite.Empty(s.UncommittedEvents())
	suite.tracker.AssertCalled(suite.T(), "TrackAggregate", s.ID(), s)

	loaded, err := suite.repo.Get(ctx, s.ID())
	suite.Require().NoError(err)
	timeline := loaded.Timeline()
	suite.Require().Len(timeline, 2)
	suite.Equal(shipment.Created, timeline[0].Status())
	suite.Equal(shipment.Assigned, timeline[1].Status())
	suite.True(timeline[0].CreatedAt().Equal(timeline[1].CreatedAt()))
	suite.Equal(shipment.Assigned, loaded.Status())
	suite.True(loaded.CourierID().IsEqual(courierID))
	suite.Equal("Metropolis", loaded.Details().City)
	suite.True(loaded.Details().RequestedDate.Equal(base))
}

func (suite *ShipmentRepositoryIntegrationTestSuite) TestAdd_DuplicateTrackingNumber_AlreadyExists() {
	ctx := suite.T().Context()
	suite.Require().NoError(suite.repo.Add(ctx, suite.newShipment("TRK-DUPLICAT", nil)))

	err := suite.repo.Add(ctx, suite.newShipment("TRK-DUPLICAT", nil))

	suite.ErrorIs(err, errs.ErrObjectAlreadyExists)
}

func (suite *ShipmentRepositoryIntegrationTestSuite) TestUpdate_AppendsOnlyNewEvents() {
	ctx := suite.T().Context()
	courierID := kernel.NewUUID()
	s := suite.newShipment("TRK-UPDATE01", nil)
	suite.Require().NoError(suite.repo.Add(ctx, s))

	suite.Require().NoError(s.Update(s.Details(), &courierID, base.Add(time.Hour)))
	suite.Require().NoError(suite.repo.Update(ctx, s))

	loaded, err := suite.repo.Get(ctx, s.ID())
	suite.Require().NoError(err)
	_, err = loaded.RecordEvent(courierID, "Picked up", "Depot", "", " ", base.Add(2*time.Hour))
	suite.Require().NoError(err)
	suite.Require().NoError(suite.repo.Update(ctx, loaded))

	final, err := suite.repo.Get(ctx, s.ID())
	suite.Require().NoError(err)
	timeline := final.Timeline()
	suite.Require().Len(timeline, 3)
	suite.Equal([]shipment.Status{shipment.Created, shipment.Assigned, shipment.PickedUp},
		[]shipment.Status{timeline[0].Status(), timeline[1].Status(), timeline[2].Status()})
	suite.Nil(timeline[2].ProofURL())
	suite.Equal(shipment.PickedUp, final.Status())
}

func (suite *ShipmentRepositoryIntegrationTestSuite) TestGetByTrackingNumber_IsExactMatch() {
	ctx := suite.T().Context()
	s := suite.newShipment("TRK-EXACT001", nil)
	suite.Require().NoError(suite.repo.Add(ctx, s))

	found, err := suite.repo.GetByTrackingNumber(ctx, s.TrackingNumber())
	suite.Require().NoError(err)
	suite.True(found.ID().IsEqual(s.ID()))

	lower, err := shipment.NewTrackingNumber("trk-exact001")
	suite.Require().NoError(err)
	_, err = suite.repo.GetByTrackingNumber(ctx, lower)
	suite.ErrorIs(err, errs.ErrObjectNotFound)

	exists, err := suite.repo.TrackingNumberExists(ctx, s.TrackingNumber())
	suite.Require().NoError(err)
	suite.True(exists)
}

func (suite *ShipmentRepositoryIntegrationTestSuite) TestGetAssigned_ScopesToCourier() {
	ctx := suite.T().Context()
	mine := kernel.NewUUID()
	s := suite.newShipment("TRK-SCOPE001", &mine)
	suite.Require().NoError(suite.repo.Add(ctx, s))

	_, err := suite.repo.GetAssigned(ctx, s.ID(), mine)
	suite.NoError(err)

	_, err = suite.repo.GetAssigned(ctx, s.ID(), kernel.NewUUID())
	suite.ErrorIs(err, errs.ErrObjectNotFound)
}

func (suite *ShipmentRepositoryIntegrationTestSuite) TestDelete_TracksRemovedShipment() {
	ctx := suite.T().Context()
	s := suite.newShipment("TRK-DELETE01", nil)
	suite.Require().NoError(suite.repo.Add(ctx, s))

	suite.Require().NoError(suite.repo.Delete(ctx, s.ID()))

	suite.tracker.AssertCalled(suite.T(), "TrackAggregate", s.ID(), ports.RemovedShipment{TrackingNumber: "TRK-DELETE01"})
	_, err := suite.repo.Get(ctx, s.ID())
	suite.ErrorIs(err, errs.ErrObjectNotFound)
	suite.ErrorIs(suite.repo.Delete(ctx, s.ID()), errs.ErrObjectNotFound)
}
