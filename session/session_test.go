package session_test

import (
	"testing"

	"github.com/stretchr/testify/require"
	"github.com/swiftship/courier-web/session"
)

func TestParseRole(t *testing.T) {
	role, ok := session.ParseRole("admin")
	require.True(t, ok)
	require.Equal(t, session.RoleAdmin, role)

	role, ok = session.ParseRole("client")
	require.True(t, ok)
	require.Equal(t, session.RoleClient, role)

	for _, invalid := range []string{"", "superuser", "Admin", "CLIENT"} {
		_, ok := session.ParseRole(invalid)
		require.False(t, ok, "usertype %q should not parse", invalid)
	}
}

func TestHomePath(t *testing.T) {
	require.Equal(t, session.PathAdminHome, session.HomePath(session.RoleAdmin))
	require.Equal(t, session.PathClientHome, session.HomePath(session.RoleClient))
}

func TestSessionActive(t *testing.T) {
	var nilSession *session.Session
	require.False(t, nilSession.Active())

	require.False(t, (&session.Session{}).Active())
	require.False(t, (&session.Session{AccessToken: "tok", Err: session.RefreshFailedMarker}).Active())
	require.True(t, (&session.Session{AccessToken: "tok"}).Active())
}

func TestAuthorize(t *testing.T) {
	clientSession := &session.Session{
		AccessToken: "tok",
		Identity:    session.Identity{Role: session.RoleClient},
	}
	adminSession := &session.Session{
		AccessToken: "tok",
		Identity:    session.Identity{Role: session.RoleAdmin},
	}
	expiredSession := &session.Session{
		AccessToken: "tok",
		Identity:    session.Identity{Role: session.RoleAdmin},
		Err:         session.RefreshFailedMarker,
	}

	tests := []struct {
		name     string
		sess     *session.Session
		required session.Role
		want     session.Decision
	}{
		{"no session goes to login", nil, session.RoleClient, session.Decision{RedirectTo: session.PathLogin}},
		{"expired session goes to login", expiredSession, session.RoleAdmin, session.Decision{RedirectTo: session.PathLogin}},
		{"client in client area", clientSession, session.RoleClient, session.Decision{Allowed: true}},
		{"admin in admin area", adminSession, session.RoleAdmin, session.Decision{Allowed: true}},
		{"client in admin area goes home", clientSession, session.RoleAdmin, session.Decision{RedirectTo: session.PathClientHome}},
		{"admin in client area goes home", adminSession, session.RoleClient, session.Decision{RedirectTo: session.PathAdminHome}},
	}

	for _, tc := range tests {
		t.Run(tc.name, func(t *testing.T) {
			require.Equal(t, tc.want, session.Authorize(tc.sess, tc.required))
		})
	}
}
