// Package session owns the local record of an authenticated user: identity,
// bearer access token, and token expiry. The Manager is the single source of
// truth for the token; no other component reads or writes it directly.
package session

import "time"

type Role string

const (
	RoleAdmin  Role = "admin"
	RoleClient Role = "client"
)

// ParseRole maps the API's usertype claim onto a Role.
func ParseRole(usertype string) (Role, bool) {
	switch Role(usertype) {
	case RoleAdmin, RoleClient:
		return Role(usertype), true
	}
	return "", false
}

// RefreshFailedMarker is the terminal error marker set when a token refresh
// fails. Once set, the session is invalid until the user logs in again.
const RefreshFailedMarker = "RefreshAccessTokenError"

// Identity is the user behind a session. Role is fixed for the session's
// lifetime; a role change server-side requires a fresh login.
type Identity struct {
	ID       string
	Email    string
	Username string
	Name     string
	Role     Role
	Address  *string
	Phone    *string
}

// Session pairs an identity with its live access token. ExpiresAt is always
// derived from the token's own exp claim, never set independently.
type Session struct {
	ID          string
	Identity    Identity
	AccessToken string
	ExpiresAt   time.Time
	Err         string
	CreatedAt   time.Time
}

// Active reports whether the session can authorize API calls: a token is
// present and no terminal error has been recorded.
func (s *Session) Active() bool {
	return s != nil && s.AccessToken != "" && s.Err == ""
}

// Paths the role gate redirects to.
const (
	PathLogin      = "/login"
	PathAdminHome  = "/admin/dashboard"
	PathClientHome = "/client/dashboard"
)

// HomePath is where a role lands after login or a wrong-area redirect.
func HomePath(role Role) string {
	if role == RoleAdmin {
		return PathAdminHome
	}
	return PathClientHome
}

// Decision is the outcome of a role-gate check.
type Decision struct {
	Allowed    bool
	RedirectTo string
}

// Authorize gates entry to a role-restricted area. A nil, errored, or
// tokenless session redirects to login; a valid session of the other role
// redirects to that role's own home.
func Authorize(s *Session, required Role) Decision {
	if !s.Active() {
		return Decision{RedirectTo: PathLogin}
	}
	if s.Identity.Role != required {
		return Decision{RedirectTo: HomePath(s.Identity.Role)}
	}
	return Decision{Allowed: true}
}
