package server

import (
	"net/http"
	"net/url"
	"strconv"

	"github.com/pkg/errors"
	"github.com/rs/zerolog/log"
	"github.com/swiftship/courier-web/courierapi"
	"github.com/swiftship/courier-web/session"
)

// ClientDashboardData is the view model for the client dashboard.
type ClientDashboardData struct {
	AppName   string
	User      session.Identity
	Shipments []courierapi.Shipment
	Page      int
	PageSize  int
	Error     string
	Notice    string
	Statuses  []string
}

// ClientDashboardHandler shows the logged-in client's shipments and the
// create-shipment form (GET /client/dashboard).
func (s *Server) ClientDashboardHandler() http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		sess := SessionFromContext(r.Context())
		ts := s.sessions.TokenSource(sess.ID)

		page := queryInt(r, "page", 1)
		pageSize := queryInt(r, "pageSize", 10)

		shipments, err := s.api.MyShipments(r.Context(), ts, page, pageSize)
		if err != nil {
			s.handleAPIError(w, r, err, "failed to fetch shipments")
			return
		}

		s.render(w, "client_dashboard.html", ClientDashboardData{
			AppName:   s.config.GetAppName(),
			User:      sess.Identity,
			Shipments: shipments,
			Page:      page,
			PageSize:  pageSize,
			Error:     r.URL.Query().Get("error"),
			Notice:    r.URL.Query().Get("notice"),
			Statuses:  courierapi.ShipmentStatuses,
		})
	}
}

// AdminDashboardData is the view model for the admin dashboard.
type AdminDashboardData struct {
	AppName   string
	User      session.Identity
	Stats     *courierapi.ShipmentStats
	Shipments []courierapi.Shipment
	Error     string
	Notice    string
	Statuses  []string
}

// AdminDashboardHandler shows system-wide stats and every shipment with
// status controls (GET /admin/dashboard).
func (s *Server) AdminDashboardHandler() http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		sess := SessionFromContext(r.Context())
		ts := s.sessions.TokenSource(sess.ID)

		stats, err := s.api.ShipmentStats(r.Context(), ts)
		if err != nil {
			s.handleAPIError(w, r, err, "failed to fetch shipment stats")
			return
		}

		shipments, err := s.api.Shipments(r.Context(), ts)
		if err != nil {
			s.handleAPIError(w, r, err, "failed to fetch shipments")
			return
		}

		s.render(w, "admin_dashboard.html", AdminDashboardData{
			AppName:   s.config.GetAppName(),
			User:      sess.Identity,
			Stats:     stats,
			Shipments: shipments,
			Error:     r.URL.Query().Get("error"),
			Notice:    r.URL.Query().Get("notice"),
			Statuses:  courierapi.ShipmentStatuses,
		})
	}
}

// handleAPIError maps a failed remote call onto the right user response.
// An expired session goes back to login; 403 stays on a permission error;
// anything else is a generic failure with the detail kept in the log.
func (s *Server) handleAPIError(w http.ResponseWriter, r *http.Request, err error, logMsg string) {
	if errors.Is(err, session.SessionExpiredErr) || errors.Is(err, session.NotAuthenticatedErr) {
		s.clearSessionCookie(w)
		http.Redirect(w, r, RouteLogin+"?error="+url.QueryEscape("Session expired"), http.StatusSeeOther)
		return
	}
	if courierapi.IsForbidden(err) {
		http.Error(w, "You do not have permission to do that", http.StatusForbidden)
		return
	}
	log.Err(err).Str("path", r.URL.Path).Msg(logMsg)
	http.Error(w, "Something went wrong", http.StatusInternalServerError)
}

// redirectWith sends the browser back to path with a flash-style query
// parameter ("notice" or "error").
func redirectWith(w http.ResponseWriter, r *http.Request, path, param, msg string) {
	http.Redirect(w, r, path+"?"+param+"="+url.QueryEscape(msg), http.StatusSeeOther)
}

func queryInt(r *http.Request, name string, defaultValue int) int {
	raw := r.URL.Query().Get(name)
	if raw == "" {
		return defaultValue
	}
	value, err := strconv.Atoi(raw)
	if err != nil || value < 1 {
		return defaultValue
	}
	return value
}
