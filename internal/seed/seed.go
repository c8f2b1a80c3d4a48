// Package seed loads development fixtures into an empty or partially
// seeded database. Everything goes through the command handlers, so seeded
// data obeys the same rules as data entered over the API. Applying the same
// fixtures twice creates nothing new: accounts and customers are keyed by
// email, and shipments are only seeded together with their customer.
package seed

import (
	"bytes"
	"context"
	_ "embed"
	"errors"
	"fmt"
	"time"

	"shiptrack/internal/core/application/usecases/commands"
	"shiptrack/internal/core/domain/model/admin"
	"shiptrack/internal/core/domain/model/courier"
	"shiptrack/internal/core/domain/model/customer"
	"shiptrack/internal/core/domain/model/kernel"
	"shiptrack/internal/core/ports"
	"shiptrack/internal/pkg/errs"

	"go.uber.org/zap"
	"gopkg.in/yaml.v3"
)

const requestedDateLayout = "2006-01-02"

//go:embed fixtures.yaml
var defaultFixtures []byte

type AdminFixture struct {
	FirstName string `yaml:"first_name"`
	LastName  string `yaml:"last_name"`
	Email     string `yaml:"email"`
	Phone     string `yaml:"phone"`
	Password  string `yaml:"password"`
}

type CourierFixture struct {
	FirstName string `yaml:"first_name"`
	LastName  string `yaml:"last_name"`
	Email     string `yaml:"email"`
	Phone     string `yaml:"phone"`
	Region    string `yaml:"region"`
	HireDate  string `yaml:"hire_date"`
	Password  string `yaml:"password"`
}

type EventFixture struct {
	Status   string `yaml:"status"`
	Location string `yaml:"location"`
	Notes    string `yaml:"notes"`
}

// ShipmentFixture events are recorded by the assigned courier, in order.
type ShipmentFixture struct {
	SenderAddress   string         `yaml:"sender_address"`
	ReceiverAddress string         `yaml:"receiver_address"`
	City            string         `yaml:"city"`
	RequestedDate   string         `yaml:"requested_date"`
	CourierEmail    string         `yaml:"courier_email"`
	Events          []EventFixture `yaml:"events"`
}

type CustomerFixture struct {
	FirstName string            `yaml:"first_name"`
	LastName  string            `yaml:"last_name"`
	Email     string            `yaml:"email"`
	Phone     string            `yaml:"phone"`
	Address   string            `yaml:"address"`
	City      string            `yaml:"city"`
	Shipments []ShipmentFixture `yaml:"shipments"`
}

type Fixtures struct {
	Admins    []AdminFixture    `yaml:"admins"`
	Couriers  []CourierFixture  `yaml:"couriers"`
	Customers []CustomerFixture `yaml:"customers"`
}

// Parse decodes fixtures and rejects unknown keys.
func Parse(data []byte) (Fixtures, error) {
	var f Fixtures
	decoder := yaml.NewDecoder(bytes.NewReader(data))
	decoder.KnownFields(true)
	if err := decoder.Decode(&f); err != nil {
		return Fixtures{}, fmt.Errorf("decode fixtures: %w", err)
	}
	return f, nil
}

// Default returns the fixtures shipped with the binary.
func Default() (Fixtures, error) {
	return Parse(defaultFixtures)
}

// Handlers are the use cases the seeder drives.
type Handlers struct {
	CreateAdmin    commands.CreateAdminCommandHandler
	CreateCourier  commands.CreateCourierCommandHandler
	CreateCustomer commands.CreateCustomerCommandHandler
	CreateShipment commands.CreateShipmentCommandHandler
	RecordEvent    commands.RecordTrackingEventCommandHandler
}

// Summary counts what one Apply did.
type Summary struct {
	Admins    int
	Couriers  int
	Customers int
	Shipments int
	Events    int
	Skipped   int
}

type Seeder struct {
	handlers Handlers
	lookup   ports.UnitOfWorkFactory
	logger   *zap.Logger
}

// NewSeeder creates a seeder. lookup resolves couriers seeded by an earlier
// run.
func NewSeeder(handlers Handlers, lookup ports.UnitOfWorkFactory, logger *zap.Logger) *Seeder {
	return &Seeder{
		handlers: handlers,
		lookup:   lookup,
		logger:   logger.With(zap.String("component", "seed")),
	}
}

// Apply creates whatever in f does not exist yet.
func (s *Seeder) Apply(ctx context.Context, f Fixtures) (Summary, error) {
	var summary Summary

	for _, a := range f.Admins {
		created, err := s.admin(ctx, a)
		if err != nil {
			return summary, fmt.Errorf("admin %s: %w", a.Email, err)
		}
		summary.count(created, &summary.Admins)
	}

	for _, c := range f.Couriers {
		created, err := s.courier(ctx, c)
		if err != nil {
			return summary, fmt.Errorf("courier %s: %w", c.Email, err)
		}
		summary.count(created, &summary.Couriers)
	}

	for _, c := range f.Customers {
		customerID, created, err := s.customer(ctx, c)
		if err != nil {
			return summary, fmt.Errorf("customer %s: %w", c.Email, err)
		}
		summary.count(created, &summary.Customers)
		if !created {
			continue
		}

		for i, sh := range c.Shipments {
			events, err := s.shipment(ctx, customerID, sh)
			if err != nil {
				return summary, fmt.Errorf("customer %s shipment %d: %w", c.Email, i+1, err)
			}
			summary.Shipments++
			summary.Events += events
		}
	}

	s.logger.Info("Seed applied",
		zap.Int("admins", summary.Admins),
		zap.Int("couriers", summary.Couriers),
		zap.Int("customers", summary.Customers),
		zap.Int("shipments", summary.Shipments),
		zap.Int("events", summary.Events),
		zap.Int("skipped", summary.Skipped),
	)
	return summary, nil
}

func (s *Summary) count(created bool, counter *int) {
	if created {
		*counter++
		return
	}
	s.Skipped++
}

func (s *Seeder) admin(ctx context.Context, f AdminFixture) (bool, error) {
	cmd, err := commands.NewCreateAdminCommand(admin.Profile{
		FirstName: f.FirstName,
		LastName:  f.LastName,
		Email:     f.Email,
		Phone:     f.Phone,
	}, f.Password)
	if err != nil {
		return false, err
	}
	return created(s.handlers.CreateAdmin.Handle(ctx, cmd))
}

func (s *Seeder) courier(ctx context.Context, f CourierFixture) (bool, error) {
	profile := courier.Profile{
		FirstName: f.FirstName,
		LastName:  f.LastName,
		Email:     f.Email,
		Phone:     f.Phone,
		Region:    f.Region,
	}
	if f.HireDate != "" {
		hired, err := time.Parse(courier.HireDateLayout, f.HireDate)
		if err != nil {
			return false, errs.NewValueIsInvalidErrorWithCause("hire_date", err)
		}
		profile.HireDate = hired
	}

	cmd, err := commands.NewCreateCourierCommand(profile, f.Password)
	if err != nil {
		return false, err
	}
	_, err = s.handlers.CreateCourier.Handle(ctx, cmd)
	return created(err)
}

func (s *Seeder) customer(ctx context.Context, f CustomerFixture) (kernel.UUID, bool, error) {
	cmd, err := commands.NewCreateCustomerCommand(customer.Profile{
		FirstName: f.FirstName,
		LastName:  f.LastName,
		Email:     f.Email,
		Phone:     f.Phone,
		Address:   f.Address,
		City:      f.City,
	})
	if err != nil {
		return kernel.UUID{}, false, err
	}
	ok, err := created(s.handlers.CreateCustomer.Handle(ctx, cmd))
	return cmd.CustomerID(), ok, err
}

func (s *Seeder) shipment(ctx context.Context, customerID kernel.UUID, f ShipmentFixture) (int, error) {
	input := commands.ShipmentInput{
		CustomerID:      customerID,
		SenderAddress:   f.SenderAddress,
		ReceiverAddress: f.ReceiverAddress,
		City:            f.City,
	}
	if f.RequestedDate != "" {
		requested, err := time.Parse(requestedDateLayout, f.RequestedDate)
		if err != nil {
			return 0, errs.NewValueIsInvalidErrorWithCause("requested_date", err)
		}
		input.RequestedDate = &requested
	}

	if f.CourierEmail != "" {
		courierID, err := s.courierID(ctx, f.CourierEmail)
		if err != nil {
			return 0, err
		}
		input.CourierID = &courierID
	} else if len(f.Events) > 0 {
		return 0, errs.NewValueIsRequiredError("courier_email")
	}

	cmd, err := commands.NewCreateShipmentCommand(input)
	if err != nil {
		return 0, err
	}
	result, err := s.handlers.CreateShipment.Handle(ctx, cmd)
	if err != nil {
		return 0, err
	}

	for _, e := range f.Events {
		record, err := commands.NewRecordTrackingEventCommand(result.ShipmentID, *input.CourierID, commands.TrackingEventInput{
			Status:   e.Status,
			Location: e.Location,
			Notes:    e.Notes,
		})
		if err != nil {
			return 0, err
		}
		if err := s.handlers.RecordEvent.Handle(ctx, record); err != nil {
			return 0, err
		}
	}
	return len(f.Events), nil
}

func (s *Seeder) courierID(ctx context.Context, rawEmail string) (kernel.UUID, error) {
	email, err := kernel.NewEmail(rawEmail)
	if err != nil {
		return kernel.UUID{}, err
	}
	found, err := s.lookup.Create().CourierRepository().GetByEmail(ctx, email)
	if err != nil {
		return kernel.UUID{}, err
	}
	return found.ID(), nil
}

// created treats a duplicate as already seeded.
func created(err error) (bool, error) {
	if errors.Is(err, errs.ErrObjectAlreadyExists) {
		return false, nil
	}
	return err == nil, err
}
