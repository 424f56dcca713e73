package router // package router defines how HTTP routes are registered for the portal

import (
	"github.com/labstack/echo/v4"

	"github.com/expohall/stall-reservation-portal/internal/handler"
	"github.com/expohall/stall-reservation-portal/internal/middleware"
	"github.com/expohall/stall-reservation-portal/internal/model"
	"github.com/expohall/stall-reservation-portal/internal/session"
)

// RegisterRoutes registers routes that do not require authentication on
// the provided Echo instance.  Currently it exposes only a health check.
func RegisterRoutes(e *echo.Echo) {
	// Load balancers and monitoring probes hit this endpoint to verify
	// that the portal is up.
	e.GET("/healthz", handler.Health)
}

// RegisterAuth registers the authentication routes.  Login and register
// live under /v1/auth and need no session; the profile and logout
// endpoints require a valid one.
func RegisterAuth(e *echo.Echo, a *handler.AuthHandler, store *session.Store) {
	g := e.Group("/v1/auth")
	g.POST("/register", a.Register)
	g.POST("/login", a.Login)

	auth := e.Group("/v1")
	auth.Use(middleware.SessionAuth(store))
	auth.GET("/me", a.Me)
	auth.PUT("/me", a.UpdateProfile)
	auth.POST("/logout", a.Logout)
}

// RegisterPublic registers the unauthenticated browse and search
// endpoints.  Guests can inspect the floor plan and search stalls
// before logging in, so no middleware applies here.
func RegisterPublic(e *echo.Echo, s *handler.StallHandler) {
	e.GET("/v1/stalls", s.Browse)
	e.GET("/v1/stalls/search", s.CombinedSearch)
	e.GET("/v1/stalls/filter/size", s.FilterBySize)
	e.GET("/v1/stalls/filter/status", s.FilterByStatus)
	e.GET("/v1/stalls/code/:code", s.GetByCode)
}

// RegisterStalls registers the session-protected stall routes.  Reserve
// is open to any authenticated user; create and update are restricted
// to administrators.
func RegisterStalls(e *echo.Echo, s *handler.StallHandler, store *session.Store) {
	auth := e.Group("/v1")
	auth.Use(middleware.SessionAuth(store))
	auth.PUT("/stalls/:id/reserve", s.Reserve)

	admin := e.Group("/v1")
	admin.Use(middleware.SessionAuth(store))
	admin.Use(middleware.RequireRole(model.RoleAdmin))
	admin.POST("/stalls", s.Create)
	admin.PUT("/stalls/:id", s.Update)
}

// RegisterReservations registers the reservation workflow and dashboard
// routes.  Users manage their own reservations; listing everything,
// confirming and verifying QR codes are administrator operations.
func RegisterReservations(e *echo.Echo, r *handler.ReservationHandler, d *handler.DashboardHandler, store *session.Store) {
	auth := e.Group("/v1")
	auth.Use(middleware.SessionAuth(store))
	auth.GET("/reservations/mine", r.My)
	auth.DELETE("/reservations/:id", r.Cancel)
	auth.GET("/reservations/:id/qr-code", r.QRCode)
	auth.GET("/dashboard/me", d.UserDashboard)
	auth.GET("/dashboard/stalls", d.StallSummary)

	admin := e.Group("/v1")
	admin.Use(middleware.SessionAuth(store))
	admin.Use(middleware.RequireRole(model.RoleAdmin))
	admin.GET("/reservations", r.List)
	admin.PUT("/reservations/:id/confirm", r.Confirm)
	admin.GET("/reservations/verify-qr", r.Verify)
	admin.GET("/dashboard/reservations", d.ReservationSummary)
}
