package server

import "github.com/swiftship/courier-web/session"

func (s *Server) initRoutes() {
	// Public pages
	s.RegisterRouteFunc("GET "+RouteIndex, ChainMiddleware(s.IndexHandler(), s.HTMLMiddleware()...))
	s.RegisterRouteFunc("GET "+RouteTrack, ChainMiddleware(s.TrackHandler(), s.HTMLMiddleware()...))

	// Login / registration / logout
	s.RegisterRouteFunc("GET "+RouteLogin, ChainMiddleware(s.LoginPageHandler(), s.HTMLMiddleware()...))
	s.RegisterRouteFunc("POST "+RouteLogin, ChainMiddleware(s.LoginSubmissionHandler(), s.HTMLMiddleware()...))
	s.RegisterRouteFunc("GET "+RouteRegister, ChainMiddleware(s.RegisterPageHandler(), s.HTMLMiddleware()...))
	s.RegisterRouteFunc("POST "+RouteRegister, ChainMiddleware(s.RegisterSubmissionHandler(), s.HTMLMiddleware()...))
	s.RegisterRouteFunc("GET "+RouteLogout, ChainMiddleware(s.LogoutHandler(), s.HTMLMiddleware()...))

	// Client area (session + client role required)
	s.RegisterRouteFunc("GET "+RouteClientDashboard, ChainMiddleware(s.ClientDashboardHandler(), s.HTMLMiddleware(s.RequireRole(session.RoleClient))...))
	s.RegisterRouteFunc("POST "+RouteClientShipments, ChainMiddleware(s.ShipmentCreateHandler(), s.HTMLMiddleware(s.RequireRole(session.RoleClient))...))
	s.RegisterRouteFunc("GET "+RouteClientProfile, ChainMiddleware(s.ProfilePageHandler(), s.HTMLMiddleware(s.RequireRole(session.RoleClient))...))
	s.RegisterRouteFunc("POST "+RouteClientProfile, ChainMiddleware(s.ProfileUpdateHandler(), s.HTMLMiddleware(s.RequireRole(session.RoleClient))...))

	// Admin area (session + admin role required)
	s.RegisterRouteFunc("GET "+RouteAdminDashboard, ChainMiddleware(s.AdminDashboardHandler(), s.HTMLMiddleware(s.RequireRole(session.RoleAdmin))...))
	s.RegisterRouteFunc("POST "+RouteAdminShipmentStatus, ChainMiddleware(s.ShipmentStatusHandler(), s.HTMLMiddleware(s.RequireRole(session.RoleAdmin))...))
	s.RegisterRouteFunc("POST "+RouteAdminShipmentDelete, ChainMiddleware(s.ShipmentDeleteHandler(), s.HTMLMiddleware(s.RequireRole(session.RoleAdmin))...))
}
