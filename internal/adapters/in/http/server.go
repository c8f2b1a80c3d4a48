package http

import (
	"shiptrack/internal/core/application/usecases/commands"
	"shiptrack/internal/core/application/usecases/queries"
	"shiptrack/internal/pkg/auth"

	"go.uber.org/zap"
)

// SessionVerifier checks session tokens carried by the session cookie.
type SessionVerifier interface {
	Parse(token string) (*auth.Claims, error)
}

// Commands are the state-changing use cases reachable over HTTP.
type Commands struct {
	CreateCustomer commands.CreateCustomerCommandHandler
	UpdateCustomer commands.UpdateCustomerCommandHandler
	DeleteCustomer commands.DeleteCustomerCommandHandler

	CreateCourier commands.CreateCourierCommandHandler
	UpdateCourier commands.UpdateCourierCommandHandler
	DeleteCourier commands.DeleteCourierCommandHandler

	CreateShipment commands.CreateShipmentCommandHandler
	UpdateShipment commands.UpdateShipmentCommandHandler
	DeleteShipment commands.DeleteShipmentCommandHandler
	RecordEvent    commands.RecordTrackingEventCommandHandler

	SubmitTicket       commands.SubmitSupportTicketCommandHandler
	CommentTicket      commands.CommentSupportTicketCommandHandler
	ChangeTicketStatus commands.ChangeSupportTicketStatusCommandHandler

	Login  commands.LoginCommandHandler
	Logout commands.LogoutCommandHandler
}

// Queries are the read use cases reachable over HTTP.
type Queries struct {
	Dashboard        queries.DashboardQueryHandler
	ListCustomers    queries.ListCustomersQueryHandler
	GetCustomer      queries.GetCustomerQueryHandler
	ListCouriers     queries.ListCouriersQueryHandler
	GetCourier       queries.GetCourierQueryHandler
	ListShipments    queries.ListShipmentsQueryHandler
	GetShipment      queries.GetShipmentQueryHandler
	Documents        queries.ShipmentDocumentQueryHandler
	Report           queries.ReportQueryHandler
	TrackShipment    queries.TrackShipmentQueryHandler
	CourierDashboard queries.CourierDashboardQueryHandler
	ListTickets      queries.ListSupportTicketsQueryHandler
	GetTicket        queries.GetSupportTicketQueryHandler
	SessionRevoked   queries.IsSessionRevokedQueryHandler
}

// Server maps HTTP requests onto application use cases.
type Server struct {
	commands Commands
	queries  Queries
	sessions SessionVerifier
	logger   *zap.Logger
}

// NewServer creates a new HTTP server with the required command and query handlers.
func NewServer(cmds Commands, qrs Queries, sessions SessionVerifier, logger *zap.Logger) *Server {
	return &Server{
		commands: cmds,
		queries:  qrs,
		sessions: sessions,
		logger:   logger.With(zap.String("component", "http")),
	}
}
