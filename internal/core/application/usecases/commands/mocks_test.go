package commands_test

import (
	"context"
	"testing"
	"time"

	"shiptrack/internal/core/application/usecases/commands"
	"shiptrack/internal/core/domain/model/admin"
	"shiptrack/internal/core/domain/model/courier"
	"shiptrack/internal/core/domain/model/customer"
	"shiptrack/internal/core/domain/model/kernel"
	"shiptrack/internal/core/domain/model/shipment"
	"shiptrack/internal/core/domain/model/support"
	"shiptrack/internal/core/ports"

	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/require"
)

// Mock implementations for testing.

type MockCustomerRepository struct {
	mock.Mock
}

func (m *MockCustomerRepository) Add(ctx context.Context, c *customer.Customer) error {
	return m.Called(ctx, c).Error(0)
}

func (m *MockCustomerRepository) Update(ctx context.Context, c *customer.Customer) error {
	return m.Called(ctx, c).Error(0)
}

func (m *MockCustomerRepository) Get(ctx context.Context, id kernel.UUID) (*customer.Customer, error) {
	args := m.Called(ctx, id)
	c, _ := args.Get(0).(*customer.Customer)
	return c, args.Error(1)
}

func (m *MockCustomerRepository) GetByEmail(ctx context.Context, email kernel.Email) (*customer.Customer, error) {
	args := m.Called(ctx, email)
	c, _ := args.Get(0).(*customer.Customer)
	return c, args.Error(1)
}

func (m *MockCustomerRepository) List(ctx context.Context) ([]*customer.Customer, error) {
	args := m.Called(ctx)
	list, _ := args.Get(0).([]*customer.Customer)
	return list, args.Error(1)
}

func (m *MockCustomerRepository) Delete(ctx context.Context, id kernel.UUID) error {
	return m.Called(ctx, id).Error(0)
}

type MockCourierRepository struct {
	mock.Mock
}

func (m *MockCourierRepository) Add(ctx context.Context, c *courier.Courier) error {
	return m.Called(ctx, c).Error(0)
}

func (m *MockCourierRepository) Update(ctx context.Context, c *courier.Courier) error {
	return m.Called(ctx, c).Error(0)
}

func (m *MockCourierRepository) Get(ctx context.Context, id kernel.UUID) (*courier.Courier, error) {
	args := m.Called(ctx, id)
	c, _ := args.Get(0).(*courier.Courier)
	return c, args.Error(1)
}

func (m *MockCourierRepository) GetByEmail(ctx context.Context, email kernel.Email) (*courier.Courier, error) {
	args := m.Called(ctx, email)
	c, _ := args.Get(0).(*courier.Courier)
	return c, args.Error(1)
}

func (m *MockCourierRepository) List(ctx context.Context) ([]*courier.Courier, error) {
	args := m.Called(ctx)
	list, _ := args.Get(0).([]*courier.Courier)
	return list, args.Error(1)
}

func (m *MockCourierRepository) Delete(ctx context.Context, id kernel.UUID) error {
	return m.Called(ctx, id).Error(0)
}

type MockAdminRepository struct {
	mock.Mock
}

func (m *MockAdminRepository) Add(ctx context.Context, a *admin.Admin) error {
	return m.Called(ctx, a).Error(0)
}

func (m *MockAdminRepository) Get(ctx context.Context, id kernel.UUID) (*admin.Admin, error) {
	args := m.Called(ctx, id)
	a, _ := args.Get(0).(*admin.Admin)
	return a, args.Error(1)
}

func (m *MockAdminRepository) GetByEmail(ctx context.Context, email kernel.Email) (*admin.Admin, error) {
	args := m.Called(ctx, email)
	a, _ := args.Get(0).(*admin.Admin)
	return a, args.Error(1)
}

type MockShipmentRepository struct {
	mock.Mock
}

func (m *MockShipmentRepository) Add(ctx context.Context, s *shipment.Shipment) error {
	return m.Called(ctx, s).Error(0)
}

func (m *MockShipmentRepository) Update(ctx context.Context, s *shipment.Shipment) error {
	return m.Called(ctx, s).Error(0)
}

func (m *MockShipmentRepository) Get(ctx context.Context, id kernel.UUID) (*shipment.Shipment, error) {
	args := m.Called(ctx, id)
	s, _ := args.Get(0).(*shipment.Shipment)
	return s, args.Error(1)
}

func (m *MockShipmentRepository) GetByTrackingNumber(ctx context.Context, n shipment.TrackingNumber) (*shipment.Shipment, error) {
	args := m.Called(ctx, n)
	s, _ := args.Get(0).(*shipment.Shipment)
	return s, args.Error(1)
}

func (m *MockShipmentRepository) GetAssigned(ctx context.Context, id, courierID kernel.UUID) (*shipment.Shipment, error) {
	args := m.Called(ctx, id, courierID)
	s, _ := args.Get(0).(*shipment.Shipment)
	return s, args.Error(1)
}

func (m *MockShipmentRepository) TrackingNumberExists(ctx context.Context, n shipment.TrackingNumber) (bool, error) {
	args := m.Called(ctx, n)
	return args.Bool(0), args.Error(1)
}

func (m *MockShipmentRepository) Delete(ctx context.Context, id kernel.UUID) error {
	return m.Called(ctx, id).Error(0)
}

func (m *MockShipmentRepository) DeleteByCustomer(ctx context.Context, customerID kernel.UUID) error {
	return m.Called(ctx, customerID).Error(0)
}

func (m *MockShipmentRepository) UnassignCourier(ctx context.Context, courierID kernel.UUID) error {
	return m.Called(ctx, courierID).Error(0)
}

type MockSupportTicketRepository struct {
	mock.Mock
}

func (m *MockSupportTicketRepository) Add(ctx context.Context, t *support.Ticket) error {
	return m.Called(ctx, t).Error(0)
}

func (m *MockSupportTicketRepository) Update(ctx context.Context, t *support.Ticket) error {
	return m.Called(ctx, t).Error(0)
}

func (m *MockSupportTicketRepository) Get(ctx context.Context, id kernel.UUID) (*support.Ticket, error) {
	args := m.Called(ctx, id)
	t, _ := args.Get(0).(*support.Ticket)
	return t, args.Error(1)
}

type MockRevokedSessionRepository struct {
	mock.Mock
}

func (m *MockRevokedSessionRepository) Revoke(ctx context.Context, tokenID string, expiresAt time.Time) error {
	return m.Called(ctx, tokenID, expiresAt).Error(0)
}

func (m *MockRevokedSessionRepository) IsRevoked(ctx context.Context, tokenID string) (bool, error) {
	args := m.Called(ctx, tokenID)
	return args.Bool(0), args.Error(1)
}

func (m *MockRevokedSessionRepository) PurgeExpired(ctx context.Context, now time.Time) (int64, error) {
	args := m.Called(ctx, now)
	return args.Get(0).(int64), args.Error(1)
}

type MockPasswordHasher struct {
	mock.Mock
}

func (m *MockPasswordHasher) Hash(password string) (string, error) {
	args := m.Called(password)
	return args.String(0), args.Error(1)
}

func (m *MockPasswordHasher) Matches(hash, password string) bool {
	return m.Called(hash, password).Bool(0)
}

// MockUoW satisfies every narrow unit of work the handlers ask for.
type MockUoW struct {
	mock.Mock
}

func (m *MockUoW) Begin(ctx context.Context) error {
	return m.Called(ctx).Error(0)
}

func (m *MockUoW) Commit(ctx context.Context) error {
	return m.Called(ctx).Error(0)
}

func (m *MockUoW) Rollback(ctx context.Context) error {
	return m.Called(ctx).Error(0)
}

func (m *MockUoW) CustomerRepository() ports.CustomerRepository {
	return m.Called().Get(0).(ports.CustomerRepository)
}

func (m *MockUoW) CourierRepository() ports.CourierRepository {
	return m.Called().Get(0).(ports.CourierRepository)
}

func (m *MockUoW) AdminRepository() ports.AdminRepository {
	return m.Called().Get(0).(ports.AdminRepository)
}

func (m *MockUoW) ShipmentRepository() ports.ShipmentRepository {
	return m.Called().Get(0).(ports.ShipmentRepository)
}

func (m *MockUoW) SupportTicketRepository() ports.SupportTicketRepository {
	return m.Called().Get(0).(ports.SupportTicketRepository)
}

// MockUoWFactory hands out the same MockUoW under every factory interface.
type MockUoWFactory struct {
	mock.Mock
}

func (m *MockUoWFactory) uow() *MockUoW {
	return m.Called().Get(0).(*MockUoW)
}

type (
	customerFactory struct{ *MockUoWFactory }
	courierFactory  struct{ *MockUoWFactory }
	adminFactory    struct{ *MockUoWFactory }
	shipmentFactory struct{ *MockUoWFactory }
	supportFactory  struct{ *MockUoWFactory }
	accountFactory  struct{ *MockUoWFactory }
)

func (f customerFactory) Create() commands.CustomerUoW { return f.uow() }
func (f courierFactory) Create() commands.CourierUoW { return f.uow() }
func (f adminFactory) Create() commands.AdminUoW { return f.uow() }
func (f shipmentFactory) Create() commands.ShipmentUoW { return f.uow() }
func (f supportFactory) Create() commands.SupportUoW { return f.uow() }
func (f accountFactory) Create() commands.AccountUoW { return f.uow() }

// Fixtures.

var fixedNow = time.Date(2025, 5, 6, 7, 8, 0, 0, time.UTC)

func customerProfile() customer.Profile {
	return customer.Profile{
		FirstName: "Ada",
		LastName:  "Lovelace",
		Email:     "ada@example.com",
		Phone:     "555-0100",
		Address:   "12 Analytical Way",
		City:      "London",
	}
}

func courierProfile() courier.Profile {
	return courier.Profile{
		FirstName: "Carl",
		LastName:  "Courier",
		Email:     "carl@example.com",
		Phone:     "555-0199",
		Region:    "North",
	}
}

func newCustomer(t *testing.T) *customer.Customer {
	t.Helper()
	c, err := customer.NewCustomer(kernel.NewUUID(), customerProfile(), fixedNow)
	require.NoError(t, err)
	return c
}

func newCourier(t *testing.T) *courier.Courier {
	t.Helper()
	c, err := courier.NewCourier(kernel.NewUUID(), courierProfile(), "hash", fixedNow)
	require.NoError(t, err)
	return c
}

func newAdmin(t *testing.T) *admin.Admin {
	t.Helper()
	a, err := admin.NewAdmin(kernel.NewUUID(), admin.Profile{
		FirstName: "Grace",
		LastName:  "Hopper",
		Email:     "grace@example.com",
		Phone:     "555-0111",
	}, "hash", fixedNow)
	require.NoError(t, err)
	return a
}

// newStoredShipment returns a shipment as a repository would load it.
func newStoredShipment(t *testing.T, customerID kernel.UUID, courierID *kernel.UUID) *shipment.Shipment {
	t.Helper()
	number, err := shipment.NewTrackingNumber("TRK-TEST0001")
	require.NoError(t, err)
	s, err := shipment.NewShipment(kernel.NewUUID(), number, shipment.Details{
		CustomerID:      customerID,
		SenderAddress:   "1 Sender St",
		ReceiverAddress: "2 Receiver Ave",
		City:            "Springfield",
		RequestedDate:   fixedNow,
	}, courierID, fixedNow)
	require.NoError(t, err)
	s.MarkCommitted()
	return s
}
