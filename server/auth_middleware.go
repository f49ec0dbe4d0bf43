package server

import (
	"context"
	"net/http"
	"time"

	"github.com/pkg/errors"
	"github.com/swiftship/courier-web/session"
)

// ContextKey is a custom type for context keys to avoid collisions
type ContextKey string

// ContextKeySession stores the authenticated *session.Session
const ContextKeySession ContextKey = "session"

const sessionCookieName = "courier_session"

// SessionFromContext retrieves the session injected by RequireRole.
func SessionFromContext(ctx context.Context) *session.Session {
	sess, _ := ctx.Value(ContextKeySession).(*session.Session)
	return sess
}

// RequireRole gates a route on an active session with the given role.
// Reading the session through the manager triggers a proactive token
// refresh when needed; an expired or missing session redirects to login,
// the wrong role redirects to that role's own home.
func (s *Server) RequireRole(required session.Role) func(http.HandlerFunc) http.HandlerFunc {
	return func(next http.HandlerFunc) http.HandlerFunc {
		return func(w http.ResponseWriter, r *http.Request) {
			sess := s.sessionFromRequest(w, r)

			decision := session.Authorize(sess, required)
			if !decision.Allowed {
				http.Redirect(w, r, decision.RedirectTo, http.StatusSeeOther)
				return
			}

			ctx := context.WithValue(r.Context(), ContextKeySession, sess)
			next(w, r.WithContext(ctx))
		}
	}
}

// sessionFromRequest resolves the cookie to a session record, clearing the
// cookie when the session is gone or terminally expired. Returns nil when
// there is no usable session.
func (s *Server) sessionFromRequest(w http.ResponseWriter, r *http.Request) *session.Session {
	cookie, err := r.Cookie(sessionCookieName)
	if err != nil || cookie.Value == "" {
		return nil
	}

	sess, err := s.sessions.Current(r.Context(), cookie.Value)
	if err != nil {
		if errors.Is(err, session.SessionExpiredErr) || errors.Is(err, session.NotAuthenticatedErr) {
			s.clearSessionCookie(w)
		}
		return nil
	}
	return sess
}

func (s *Server) setSessionCookie(w http.ResponseWriter, sess *session.Session) {
	http.SetCookie(w, &http.Cookie{
		Name:     sessionCookieName,
		Value:    sess.ID,
		Path:     "/",
		HttpOnly: true,
		Secure:   s.config.GetSecureCookies(),
		SameSite: http.SameSiteLaxMode,
		Expires:  time.Now().Add(s.config.GetMaxSessionAge()),
	})
}

func (s *Server) clearSessionCookie(w http.ResponseWriter) {
	http.SetCookie(w, &http.Cookie{
		Name:     sessionCookieName,
		Value:    "",
		Path:     "/",
		HttpOnly: true,
		MaxAge:   -1,
	})
}
