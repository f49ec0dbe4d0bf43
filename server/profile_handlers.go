package server

import (
	"net/http"
	"strings"

	"github.com/pkg/errors"
	"github.com/swiftship/courier-web/courierapi"
	"github.com/swiftship/courier-web/session"
)

// ProfilePageData is the view model for the client profile page.
type ProfilePageData struct {
	AppName string
	User    session.Identity
	Profile *courierapi.UserProfile
	Error   string
	Notice  string
}

// ProfilePageHandler shows the logged-in client's profile
// (GET /client/profile).
func (s *Server) ProfilePageHandler() http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		sess := SessionFromContext(r.Context())

		profile, err := s.api.Profile(r.Context(), s.sessions.TokenSource(sess.ID))
		if err != nil {
			s.handleAPIError(w, r, err, "failed to fetch profile")
			return
		}

		s.render(w, "profile.html", ProfilePageData{
			AppName: s.config.GetAppName(),
			User:    sess.Identity,
			Profile: profile,
			Error:   r.URL.Query().Get("error"),
			Notice:  r.URL.Query().Get("notice"),
		})
	}
}

// ProfileUpdateHandler applies edits to the client's profile
// (POST /client/profile).
func (s *Server) ProfileUpdateHandler() http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		sess := SessionFromContext(r.Context())

		if err := r.ParseForm(); err != nil {
			http.Error(w, "Invalid form data", http.StatusBadRequest)
			return
		}

		req := courierapi.UpdateProfileRequest{
			Name:    strings.TrimSpace(r.FormValue("name")),
			Phone:   strings.TrimSpace(r.FormValue("phone")),
			Address: strings.TrimSpace(r.FormValue("address")),
		}
		if req.Name == "" && req.Phone == "" && req.Address == "" {
			redirectWith(w, r, RouteClientProfile, "error", "Nothing to update")
			return
		}

		if _, err := s.api.UpdateProfile(r.Context(), s.sessions.TokenSource(sess.ID), req); err != nil {
			var apiErr *courierapi.APIError
			if errors.As(err, &apiErr) && apiErr.Message != "" {
				redirectWith(w, r, RouteClientProfile, "error", apiErr.Message)
				return
			}
			s.handleAPIError(w, r, err, "failed to update profile")
			return
		}

		redirectWith(w, r, RouteClientProfile, "notice", "Profile updated")
	}
}
