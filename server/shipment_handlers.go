package server

import (
	"net/http"
	"slices"
	"strconv"

	"github.com/pkg/errors"
	"github.com/rs/zerolog/log"
	"github.com/swiftship/courier-web/courierapi"
	"github.com/swiftship/courier-web/session"
)

// ShipmentCreateHandler registers a new shipment for the logged-in client
// (POST /client/shipments).
func (s *Server) ShipmentCreateHandler() http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		sess := SessionFromContext(r.Context())

		if err := r.ParseForm(); err != nil {
			http.Error(w, "Invalid form data", http.StatusBadRequest)
			return
		}

		req, formErr := shipmentRequestFromForm(r)
		if formErr != "" {
			redirectWith(w, r, RouteClientDashboard, "error", formErr)
			return
		}

		created, err := s.api.CreateShipment(r.Context(), s.sessions.TokenSource(sess.ID), req)
		if err != nil {
			var apiErr *courierapi.APIError
			if errors.As(err, &apiErr) && apiErr.Message != "" {
				redirectWith(w, r, RouteClientDashboard, "error", apiErr.Message)
				return
			}
			s.handleAPIError(w, r, err, "failed to create shipment")
			return
		}

		redirectWith(w, r, RouteClientDashboard, "notice", "Shipment created, tracking number "+created.TrackingNumber)
	}
}

func shipmentRequestFromForm(r *http.Request) (courierapi.CreateShipmentRequest, string) {
	req := courierapi.CreateShipmentRequest{
		SenderName:        r.FormValue("senderName"),
		SenderAddress:     r.FormValue("senderAddress"),
		SenderCity:        r.FormValue("senderCity"),
		SenderZipCode:     r.FormValue("senderZipCode"),
		SenderCountry:     r.FormValue("senderCountry"),
		ReceiverName:      r.FormValue("receiverName"),
		ReceiverAddress:   r.FormValue("receiverAddress"),
		ReceiverCity:      r.FormValue("receiverCity"),
		ReceiverZipCode:   r.FormValue("receiverZipCode"),
		ReceiverCountry:   r.FormValue("receiverCountry"),
		PackageType:       r.FormValue("packageType"),
		Description:       r.FormValue("description"),
		EstimatedDelivery: r.FormValue("estimatedDelivery"),
	}

	if req.SenderName == "" || req.SenderAddress == "" || req.ReceiverName == "" || req.ReceiverAddress == "" {
		return req, "Sender and receiver details are required"
	}

	weight, err := strconv.ParseFloat(r.FormValue("packageWeight"), 64)
	if err != nil || weight <= 0 {
		return req, "Package weight must be a positive number"
	}
	req.PackageWeight = weight

	if req.PackageType == "" {
		return req, "Package type is required"
	}
	return req, ""
}

// ShipmentStatusHandler transitions a shipment's status
// (POST /admin/shipments/{id}/status).
func (s *Server) ShipmentStatusHandler() http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		sess := SessionFromContext(r.Context())
		shipmentID := r.PathValue("id")

		if err := r.ParseForm(); err != nil {
			http.Error(w, "Invalid form data", http.StatusBadRequest)
			return
		}

		status := r.FormValue("status")
		if !slices.Contains(courierapi.ShipmentStatuses, status) {
			redirectWith(w, r, RouteAdminDashboard, "error", "Unknown shipment status")
			return
		}

		if _, err := s.api.UpdateShipmentStatus(r.Context(), s.sessions.TokenSource(sess.ID), shipmentID, status); err != nil {
			var apiErr *courierapi.APIError
			if errors.As(err, &apiErr) && apiErr.Message != "" {
				redirectWith(w, r, RouteAdminDashboard, "error", apiErr.Message)
				return
			}
			s.handleAPIError(w, r, err, "failed to update shipment status")
			return
		}

		redirectWith(w, r, RouteAdminDashboard, "notice", "Shipment status updated")
	}
}

// ShipmentDeleteHandler removes a shipment
// (POST /admin/shipments/{id}/delete).
func (s *Server) ShipmentDeleteHandler() http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		sess := SessionFromContext(r.Context())
		shipmentID := r.PathValue("id")

		if err := s.api.DeleteShipment(r.Context(), s.sessions.TokenSource(sess.ID), shipmentID); err != nil {
			var apiErr *courierapi.APIError
			if errors.As(err, &apiErr) && apiErr.Message != "" {
				redirectWith(w, r, RouteAdminDashboard, "error", apiErr.Message)
				return
			}
			s.handleAPIError(w, r, err, "failed to delete shipment")
			return
		}

		redirectWith(w, r, RouteAdminDashboard, "notice", "Shipment deleted")
	}
}

// TrackPageData is the view model for the public tracking page.
type TrackPageData struct {
	AppName        string
	TrackingNumber string
	Shipment       *courierapi.Shipment
	Error          string
}

// TrackHandler looks up a shipment by tracking number without auth
// (GET /track?number=...).
func (s *Server) TrackHandler() http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		data := TrackPageData{
			AppName:        s.config.GetAppName(),
			TrackingNumber: r.URL.Query().Get("number"),
		}

		if data.TrackingNumber != "" {
			shipment, err := s.api.Track(r.Context(), data.TrackingNumber)
			switch {
			case err == nil:
				data.Shipment = shipment
			default:
				var apiErr *courierapi.APIError
				if errors.As(err, &apiErr) {
					data.Error = "Shipment not found"
				} else {
					log.Err(err).Msg("tracking lookup failed")
					data.Error = "Something went wrong, please try again"
				}
			}
		}

		s.render(w, "track.html", data)
	}
}

// IndexHandler renders the public landing page (GET /).
func (s *Server) IndexHandler() http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		// ServeMux routes every unmatched path to "/"
		if r.URL.Path != RouteIndex {
			http.Error(w, "404 - Page Not Found", http.StatusNotFound)
			return
		}

		sess := s.sessionFromRequest(w, r)
		data := struct {
			AppName  string
			LoggedIn bool
			HomePath string
		}{AppName: s.config.GetAppName()}

		if sess.Active() {
			data.LoggedIn = true
			data.HomePath = session.HomePath(sess.Identity.Role)
		}
		s.render(w, "index.html", data)
	}
}
