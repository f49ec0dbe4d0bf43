package server

import "github.com/swiftship/courier-web/session"

// Route path constants
// All application routes are defined here to ensure consistency and prevent typos
const (
	RouteIndex = "/"
	RouteTrack = "/track"

	// Auth Routes
	RouteLogin    = session.PathLogin
	RouteRegister = "/register"
	RouteLogout   = "/logout"

	// Client area
	RouteClientDashboard = session.PathClientHome
	RouteClientShipments = "/client/shipments"
	RouteClientProfile   = "/client/profile"

	// Admin area
	RouteAdminDashboard      = session.PathAdminHome
	RouteAdminShipmentStatus = "/admin/shipments/{id}/status"
	RouteAdminShipmentDelete = "/admin/shipments/{id}/delete"
)
