package server

import (
	"net/http"
	"net/url"

	"github.com/pkg/errors"
	"github.com/rs/zerolog/log"
	"github.com/swiftship/courier-web/courierapi"
	"github.com/swiftship/courier-web/session"
)

// LoginPageData contains data for rendering the login page
type LoginPageData struct {
	AppName    string
	Error      string
	Notice     string
	Email      string // Preserve email on error
	Registered bool
}

// LoginPageHandler displays the login page (GET /login)
func (s *Server) LoginPageHandler() http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		// Already logged in: straight to the role's home
		if sess := s.sessionFromRequest(w, r); sess.Active() {
			http.Redirect(w, r, session.HomePath(sess.Identity.Role), http.StatusSeeOther)
			return
		}

		s.render(w, "login.html", LoginPageData{
			AppName:    s.config.GetAppName(),
			Error:      r.URL.Query().Get("error"),
			Notice:     r.URL.Query().Get("notice"),
			Email:      r.URL.Query().Get("email"),
			Registered: r.URL.Query().Get("registered") == "1",
		})
	}
}

// LoginSubmissionHandler processes the login form submission
func (s *Server) LoginSubmissionHandler() http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		if err := r.ParseForm(); err != nil {
			http.Error(w, "Invalid form data", http.StatusBadRequest)
			return
		}

		email := r.FormValue("email")
		password := r.FormValue("password")

		sess, err := s.sessions.Login(r.Context(), email, password)
		if err != nil {
			if errors.Is(err, courierapi.InvalidCredentialsErr) || errors.Is(err, courierapi.MalformedResponseErr) {
				s.redirectLoginError(w, r, "Invalid email or password", email)
				return
			}
			log.Err(err).Msg("login request failed")
			s.redirectLoginError(w, r, "Something went wrong, please try again", email)
			return
		}

		s.setSessionCookie(w, sess)
		http.Redirect(w, r, session.HomePath(sess.Identity.Role), http.StatusSeeOther)
	}
}

// LogoutHandler clears the session locally and notifies the remote API.
// Local state is cleared even when the notify fails.
func (s *Server) LogoutHandler() http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		cookie, err := r.Cookie(sessionCookieName)
		if err == nil && cookie.Value != "" {
			if err := s.sessions.Logout(r.Context(), cookie.Value); err != nil {
				log.Err(err).Msg("logout failed")
			}
		}
		s.clearSessionCookie(w)
		http.Redirect(w, r, RouteIndex, http.StatusSeeOther)
	}
}

// RegisterPageData contains data for rendering the registration page
type RegisterPageData struct {
	AppName string
	Error   string
	Form    courierapi.RegisterRequest
}

// RegisterPageHandler displays the registration form (GET /register)
func (s *Server) RegisterPageHandler() http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		s.render(w, "register.html", RegisterPageData{
			AppName: s.config.GetAppName(),
			Error:   r.URL.Query().Get("error"),
		})
	}
}

// RegisterSubmissionHandler processes the registration form submission
func (s *Server) RegisterSubmissionHandler() http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		if err := r.ParseForm(); err != nil {
			http.Error(w, "Invalid form data", http.StatusBadRequest)
			return
		}

		form := courierapi.RegisterRequest{
			Username:             r.FormValue("username"),
			Name:                 r.FormValue("name"),
			Email:                r.FormValue("email"),
			Usertype:             string(session.RoleClient),
			Password:             r.FormValue("password"),
			PasswordConfirmation: r.FormValue("password_confirmation"),
		}

		if msg := validateRegistration(form); msg != "" {
			s.renderRegisterError(w, form, msg)
			return
		}

		if err := s.api.Register(r.Context(), form); err != nil {
			var apiErr *courierapi.APIError
			if errors.As(err, &apiErr) && apiErr.Message != "" {
				s.renderRegisterError(w, form, apiErr.Message)
				return
			}
			log.Err(err).Msg("registration request failed")
			s.renderRegisterError(w, form, "Something went wrong, please try again")
			return
		}

		http.Redirect(w, r, RouteLogin+"?registered=1", http.StatusSeeOther)
	}
}

func validateRegistration(form courierapi.RegisterRequest) string {
	if form.Username == "" || form.Name == "" || form.Email == "" {
		return "All fields are required"
	}
	if err := courierapi.ValidateCredentials(form.Email, form.Password); err != nil {
		return "A valid email and password are required"
	}
	if len(form.Password) < 8 {
		return "Password must be at least 8 characters"
	}
	if form.Password != form.PasswordConfirmation {
		return "Passwords do not match"
	}
	return ""
}

func (s *Server) renderRegisterError(w http.ResponseWriter, form courierapi.RegisterRequest, msg string) {
	form.Password = ""
	form.PasswordConfirmation = ""
	s.render(w, "register.html", RegisterPageData{
		AppName: s.config.GetAppName(),
		Error:   msg,
		Form:    form,
	})
}

// redirectLoginError sends the browser back to the login page with an error
// message, preserving the typed email.
func (s *Server) redirectLoginError(w http.ResponseWriter, r *http.Request, errorMsg, email string) {
	redirectURL := RouteLogin + "?error=" + url.QueryEscape(errorMsg)
	if email != "" {
		redirectURL += "&email=" + url.QueryEscape(email)
	}
	http.Redirect(w, r, redirectURL, http.StatusSeeOther)
}
