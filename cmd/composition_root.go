package cmd

import (
	"context"
	"crypto/rand"

	"shiptrack/api"
	httpin "shiptrack/internal/adapters/in/http"
	"shiptrack/internal/adapters/out/pdf"
	"shiptrack/internal/adapters/out/postgres"
	"shiptrack/internal/adapters/out/postgres/sessionrepo"
	"shiptrack/internal/core/application/usecases/commands"
	"shiptrack/internal/core/application/usecases/queries"
	"shiptrack/internal/core/domain/services"
	"shiptrack/internal/core/ports"
	"shiptrack/internal/jobs"
	"shiptrack/internal/pkg/auth"
	"shiptrack/internal/seed"

	"github.com/labstack/echo/v4"
	"go.uber.org/zap"
	"gorm.io/gorm"
)

type CompositionRoot struct {
	cfg        Config
	gormDB     *gorm.DB
	cache      ports.TrackingCache
	uowFactory *postgres.GormUnitOfWorkFactory
	hasher     auth.BcryptHasher
	logger     *zap.Logger
}

// NewCompositionRoot wires use cases over gormDB. Every unit of work reports
// its commits to the tracking cache invalidator.
func NewCompositionRoot(cfg Config, gormDB *gorm.DB, cache ports.TrackingCache, logger *zap.Logger) *CompositionRoot {
	return &CompositionRoot{
		cfg:        cfg,
		gormDB:     gormDB,
		cache:      cache,
		uowFactory: postgres.NewGormUnitOfWorkFactory(gormDB, queries.NewTrackingCacheInvalidator(cache, logger)),
		hasher:     auth.NewBcryptHasher(cfg.PasswordCost),
		logger:     logger,
	}
}

func (c *CompositionRoot) customerUoWs() commands.CustomerUoWFactory {
	return FuncCustomerUoWFactory(func() commands.CustomerUoW {
		return c.uowFactory.Create()
	})
}

func (c *CompositionRoot) courierUoWs() commands.CourierUoWFactory {
	return FuncCourierUoWFactory(func() commands.CourierUoW {
		return c.uowFactory.Create()
	})
}

func (c *CompositionRoot) adminUoWs() commands.AdminUoWFactory {
	return FuncAdminUoWFactory(func() commands.AdminUoW {
		return c.uowFactory.Create()
	})
}

func (c *CompositionRoot) shipmentUoWs() commands.ShipmentUoWFactory {
	return FuncShipmentUoWFactory(func() commands.ShipmentUoW {
		return c.uowFactory.Create()
	})
}

func (c *CompositionRoot) supportUoWs() commands.SupportUoWFactory {
	return FuncSupportUoWFactory(func() commands.SupportUoW {
		return c.uowFactory.Create()
	})
}

func (c *CompositionRoot) accountUoWs() commands.AccountUoWFactory {
	return FuncAccountUoWFactory(func() commands.AccountUoW {
		return c.uowFactory.Create()
	})
}

func (c *CompositionRoot) revokedSessions() ports.RevokedSessionRepository {
	return sessionrepo.NewGormRevokedSessionRepository(c.gormDB)
}

// SessionManager fails when no session secret is configured.
func (c *CompositionRoot) SessionManager() (*auth.SessionManager, error) {
	return auth.NewSessionManager(c.cfg.SessionSecret, c.cfg.SessionTTL, nil)
}

func (c *CompositionRoot) CreateCreateCustomerCommandHandler() commands.CreateCustomerCommandHandler {
	return commands.NewCreateCustomerCommandHandler(c.customerUoWs())
}

func (c *CompositionRoot) CreateUpdateCustomerCommandHandler() commands.UpdateCustomerCommandHandler {
	return commands.NewUpdateCustomerCommandHandler(c.customerUoWs())
}

func (c *CompositionRoot) CreateDeleteCustomerCommandHandler() commands.DeleteCustomerCommandHandler {
	return commands.NewDeleteCustomerCommandHandler(c.customerUoWs())
}

func (c *CompositionRoot) CreateCreateCourierCommandHandler() commands.CreateCourierCommandHandler {
	return commands.NewCreateCourierCommandHandler(c.courierUoWs(), c.hasher, auth.TempPassword)
}

func (c *CompositionRoot) CreateUpdateCourierCommandHandler() commands.UpdateCourierCommandHandler {
	return commands.NewUpdateCourierCommandHandler(c.courierUoWs())
}

func (c *CompositionRoot) CreateDeleteCourierCommandHandler() commands.DeleteCourierCommandHandler {
	return commands.NewDeleteCourierCommandHandler(c.courierUoWs())
}

func (c *CompositionRoot) CreateCreateAdminCommandHandler() commands.CreateAdminCommandHandler {
	return commands.NewCreateAdminCommandHandler(c.adminUoWs(), c.hasher)
}

func (c *CompositionRoot) CreateCreateShipmentCommandHandler() commands.CreateShipmentCommandHandler {
	return commands.NewCreateShipmentCommandHandler(c.shipmentUoWs(), services.NewTrackingNumberGenerator(rand.Reader))
}

func (c *CompositionRoot) CreateUpdateShipmentCommandHandler() commands.UpdateShipmentCommandHandler {
	return commands.NewUpdateShipmentCommandHandler(c.shipmentUoWs())
}

func (c *CompositionRoot) CreateDeleteShipmentCommandHandler() commands.DeleteShipmentCommandHandler {
	return commands.NewDeleteShipmentCommandHandler(c.shipmentUoWs())
}

func (c *CompositionRoot) CreateRecordTrackingEventCommandHandler() commands.RecordTrackingEventCommandHandler {
	return commands.NewRecordTrackingEventCommandHandler(c.shipmentUoWs())
}

func (c *CompositionRoot) CreateSubmitSupportTicketCommandHandler() commands.SubmitSupportTicketCommandHandler {
	return commands.NewSubmitSupportTicketCommandHandler(c.supportUoWs())
}

func (c *CompositionRoot) CreateCommentSupportTicketCommandHandler() commands.CommentSupportTicketCommandHandler {
	return commands.NewCommentSupportTicketCommandHandler(c.supportUoWs())
}

func (c *CompositionRoot) CreateChangeSupportTicketStatusCommandHandler() commands.ChangeSupportTicketStatusCommandHandler {
	return commands.NewChangeSupportTicketStatusCommandHandler(c.supportUoWs())
}

func (c *CompositionRoot) CreateLoginCommandHandler(sessions commands.SessionIssuer) commands.LoginCommandHandler {
	return commands.NewLoginCommandHandler(c.accountUoWs(), c.hasher, sessions)
}

func (c *CompositionRoot) CreateLogoutCommandHandler() commands.LogoutCommandHandler {
	return commands.NewLogoutCommandHandler(c.revokedSessions())
}

func (c *CompositionRoot) CreatePurgeExpiredSessionsCommandHandler() commands.PurgeExpiredSessionsCommandHandler {
	return commands.NewPurgeExpiredSessionsCommandHandler(c.revokedSessions())
}

func (c *CompositionRoot) CreateDashboardQueryHandler() queries.DashboardQueryHandler {
	return queries.NewDashboardQueryHandler(c.gormDB)
}

func (c *CompositionRoot) CreateListShipmentsQueryHandler() queries.ListShipmentsQueryHandler {
	return queries.NewListShipmentsQueryHandler(c.gormDB)
}

func (c *CompositionRoot) CreateTrackShipmentQueryHandler() queries.TrackShipmentQueryHandler {
	return queries.NewTrackShipmentQueryHandler(c.uowFactory, c.cache, c.cfg.CacheTTL, c.logger)
}

func (c *CompositionRoot) CreateShipmentDocumentQueryHandler() queries.ShipmentDocumentQueryHandler {
	return queries.NewShipmentDocumentQueryHandler(c.uowFactory, services.NewDocumentBuilder(nil), pdf.NewRenderer())
}

// NewHTTPServer builds the echo instance serving the API and its swagger UI.
func (c *CompositionRoot) NewHTTPServer(ctx context.Context) (*echo.Echo, error) {
	doc, err := api.Load(ctx)
	if err != nil {
		return nil, err
	}
	if err = api.RegisterSwagger(doc); err != nil {
		return nil, err
	}
	sessions, err := c.SessionManager()
	if err != nil {
		return nil, err
	}

	server := httpin.NewServer(
		httpin.Commands{
			CreateCustomer:     c.CreateCreateCustomerCommandHandler(),
			UpdateCustomer:     c.CreateUpdateCustomerCommandHandler(),
			DeleteCustomer:     c.CreateDeleteCustomerCommandHandler(),
			CreateCourier:      c.CreateCreateCourierCommandHandler(),
			UpdateCourier:      c.CreateUpdateCourierCommandHandler(),
			DeleteCourier:      c.CreateDeleteCourierCommandHandler(),
			CreateShipment:     c.CreateCreateShipmentCommandHandler(),
			UpdateShipment:     c.CreateUpdateShipmentCommandHandler(),
			DeleteShipment:     c.CreateDeleteShipmentCommandHandler(),
			RecordEvent:        c.CreateRecordTrackingEventCommandHandler(),
			SubmitTicket:       c.CreateSubmitSupportTicketCommandHandler(),
			CommentTicket:      c.CreateCommentSupportTicketCommandHandler(),
			ChangeTicketStatus: c.CreateChangeSupportTicketStatusCommandHandler(),
			Login:              c.CreateLoginCommandHandler(sessions),
			Logout:             c.CreateLogoutCommandHandler(),
		},
		httpin.Queries{
			Dashboard:        c.CreateDashboardQueryHandler(),
			ListCustomers:    queries.NewListCustomersQueryHandler(c.uowFactory),
			GetCustomer:      queries.NewGetCustomerQueryHandler(c.uowFactory),
			ListCouriers:     queries.NewListCouriersQueryHandler(c.uowFactory),
			GetCourier:       queries.NewGetCourierQueryHandler(c.uowFactory),
			ListShipments:    c.CreateListShipmentsQueryHandler(),
			GetShipment:      queries.NewGetShipmentQueryHandler(c.uowFactory),
			Documents:        c.CreateShipmentDocumentQueryHandler(),
			Report:           queries.NewReportQueryHandler(c.gormDB),
			TrackShipment:    c.CreateTrackShipmentQueryHandler(),
			CourierDashboard: queries.NewCourierDashboardQueryHandler(c.gormDB),
			ListTickets:      queries.NewListSupportTicketsQueryHandler(c.gormDB),
			GetTicket:        queries.NewGetSupportTicketQueryHandler(c.uowFactory),
			SessionRevoked:   queries.NewIsSessionRevokedQueryHandler(c.revokedSessions()),
		},
		sessions,
		c.logger,
	)
	return httpin.NewRouter(server, doc)
}

func (c *CompositionRoot) NewJobManager() *jobs.JobManager {
	purge := c.CreatePurgeExpiredSessionsCommandHandler()
	return jobs.NewJobManager(&purge, c.cfg.SessionPurgeSchedule, c.logger)
}

func (c *CompositionRoot) NewSeeder() *seed.Seeder {
	return seed.NewSeeder(seed.Handlers{
		CreateAdmin:    c.CreateCreateAdminCommandHandler(),
		CreateCourier:  c.CreateCreateCourierCommandHandler(),
		CreateCustomer: c.CreateCreateCustomerCommandHandler(),
		CreateShipment: c.CreateCreateShipmentCommandHandler(),
		RecordEvent:    c.CreateRecordTrackingEventCommandHandler(),
	}, c.uowFactory, c.logger)
}

type FuncCustomerUoWFactory func() commands.CustomerUoW

func (f FuncCustomerUoWFactory) Create() commands.CustomerUoW {
	return f()
}

type FuncCourierUoWFactory func() commands.CourierUoW

func (f FuncCourierUoWFactory) Create() commands.CourierUoW {
	return f()
}

type FuncAdminUoWFactory func() commands.AdminUoW

func (f FuncAdminUoWFactory) Create() commands.AdminUoW {
	return f()
}

type FuncShipmentUoWFactory func() commands.ShipmentUoW

func (f FuncShipmentUoWFactory) Create() commands.ShipmentUoW {
	return f()
}

type FuncSupportUoWFactory func() commands.SupportUoW

func (f FuncSupportUoWFactory) Create() commands.SupportUoW {
	return f()
}

type FuncAccountUoWFactory func() commands.AccountUoW

func (f FuncAccountUoWFactory) Create() commands.AccountUoW {
	return f()
}
