package http

import (
	"shiptrack/internal/core/domain/model/access"

	"github.com/getkin/kin-openapi/openapi3"
	"github.com/labstack/echo/v4"
	"github.com/labstack/echo/v4/middleware"
	echoSwagger "github.com/swaggo/echo-swagger"
	"go.uber.org/zap"
)

// NewRouter builds the echo instance serving s. Every route described by
// doc is validated against it after the access check.
func NewRouter(s *Server, doc *openapi3.T) (*echo.Echo, error) {
	validate, err := requestValidator(doc)
	if err != nil {
		return nil, err
	}

	e := echo.New()
	e.HideBanner = true
	e.HidePort = true
	e.HTTPErrorHandler = s.HandleError

	e.Use(s.requestLogger())
	e.Use(middleware.Recover())
	e.Use(s.authenticate)

	e.GET("/health", s.Health)
	e.GET("/swagger/*", echoSwagger.WrapHandler)

	e.GET("/api/v1/track", s.TrackShipment, validate)
	e.POST("/api/v1/support/tickets", s.SubmitSupportTicket, validate)
	e.POST("/api/v1/auth/admin/login", s.AdminLogin, validate)
	e.POST("/api/v1/auth/courier/login", s.CourierLogin, validate)
	e.POST("/api/v1/auth/logout", s.Logout, s.require(access.RequireAuthenticated))

	admin := e.Group("/api/v1/admin", s.require(access.RequireAdmin), validate)
	admin.GET("/dashboard", s.AdminDashboard)
	admin.GET("/customers", s.ListCustomers)
	admin.POST("/customers", s.CreateCustomer)
	admin.GET("/customers/:id", s.GetCustomer)
	admin.PUT("/customers/:id", s.UpdateCustomer)
	admin.DELETE("/customers/:id", s.DeleteCustomer)
	admin.GET("/couriers", s.ListCouriers)
	admin.POST("/couriers", s.CreateCourier)
	admin.GET("/couriers/:id", s.GetCourier)
	admin.PUT("/couriers/:id", s.UpdateCourier)
	admin.DELETE("/couriers/:id", s.DeleteCourier)
	admin.GET("/shipments", s.ListShipments)
	admin.POST("/shipments", s.CreateShipment)
	admin.GET("/shipments/:id", s.GetShipment)
	admin.PUT("/shipments/:id", s.UpdateShipment)
	admin.DELETE("/shipments/:id", s.DeleteShipment)
	admin.GET("/shipments/:id/print", s.PrintShipment)
	admin.GET("/shipments/:id/receipt", s.ShipmentReceipt)
	admin.GET("/reports", s.Report)
	admin.GET("/support/tickets", s.ListSupportTickets)
	admin.GET("/support/tickets/:id", s.GetSupportTicket)
	admin.POST("/support/tickets/:id", s.ActOnSupportTicket)

	courier := e.Group("/api/v1/courier", s.require(access.RequireCourier), validate)
	courier.GET("/dashboard", s.CourierDashboard)
	courier.GET("/shipments/:id", s.GetShipment)
	courier.POST("/shipments/:id/events", s.RecordTrackingEvent)
	courier.GET("/shipments/:id/print", s.PrintShipment)
	courier.GET("/shipments/:id/receipt", s.ShipmentReceipt)

	return e, nil
}

func (s *Server) requestLogger() echo.MiddlewareFunc {
	return middleware.RequestLoggerWithConfig(middleware.RequestLoggerConfig{
		LogMethod:   true,
		LogURI:      true,
		LogStatus:   true,
		LogLatency:  true,
		LogError:    true,
		HandleError: true,
		LogValuesFunc: func(_ echo.Context, v middleware.RequestLoggerValues) error {
			fields := []zap.Field{
				zap.String("method", v.Method),
				zap.String("uri", v.URI),
				zap.Int("status", v.Status),
				zap.Duration("latency", v.Latency),
			}
			if v.Error != nil {
				s.logger.Warn("request", append(fields, zap.Error(v.Error))...)
				return nil
			}
			s.logger.Info("request", fields...)
			return nil
		},
	})
}
