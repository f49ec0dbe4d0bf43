package courierapi

import (
	"context"
	"net/http"
	"strings"

	"github.com/pkg/errors"
)

// Remote auth endpoints.
const (
	loginPath    = "/api/auth/dashboard/login"
	logoutPath   = "/api/auth/dashboard/logout"
	refreshPath  = "/api/dashboard/refresh"
	registerPath = "/api/auth/register"
)

type loginRequest struct {
	Email    string `json:"email"`
	Password string `json:"password"`
}

// Login exchanges credentials for an access token and identity payload.
// Rejected credentials come back as InvalidCredentialsErr; a 2xx without a
// token in the payload is MalformedResponseErr. Only transport failures
// propagate as wrapped errors.
func (c *Client) Login(ctx context.Context, email, password string) (*AuthResponse, error) {
	if err := ValidateCredentials(email, password); err != nil {
		return nil, errors.Wrap(InvalidCredentialsErr, err.Error())
	}

	resp, err := c.Do(ctx, http.MethodPost, loginPath, RequestOptions{
		Body: loginRequest{Email: email, Password: password},
	})
	if err != nil {
		return nil, errors.Wrap(err, "[Client.Login]")
	}

	var auth AuthResponse
	if err := decode(resp, &auth); err != nil {
		var apiErr *APIError
		if errors.As(err, &apiErr) {
			return nil, InvalidCredentialsErr
		}
		return nil, err
	}

	if auth.AccessToken == "" {
		return nil, MalformedResponseErr
	}
	return &auth, nil
}

type refreshResponse struct {
	AccessToken string `json:"access_token"`
}

// Refresh exchanges a stale token for a fresh one, authenticating with the
// stale token itself. A single call, never retried here: the caller owns
// what a failed refresh means for its session.
func (c *Client) Refresh(ctx context.Context, staleToken string) (string, error) {
	if staleToken == "" {
		return "", MissingTokenErr
	}

	resp, err := c.Do(ctx, http.MethodPost, refreshPath, RequestOptions{Token: staleToken})
	if err != nil {
		return "", errors.Wrap(err, "[Client.Refresh]")
	}

	var refreshed refreshResponse
	if err := decode(resp, &refreshed); err != nil {
		return "", errors.Wrap(err, "[Client.Refresh]")
	}
	if refreshed.AccessToken == "" {
		return "", MalformedResponseErr
	}
	return refreshed.AccessToken, nil
}

// LogoutNotify asks the remote API to invalidate the server-side token.
// Best-effort: callers clear local state regardless of the outcome.
func (c *Client) LogoutNotify(ctx context.Context, rawToken string) error {
	if rawToken == "" {
		return nil
	}
	resp, err := c.Do(ctx, http.MethodPost, logoutPath, RequestOptions{Token: rawToken})
	if err != nil {
		return errors.Wrap(err, "[Client.LogoutNotify]")
	}
	return decode(resp, nil)
}

// Register creates an account. No session is produced; the caller sends the
// user through the login flow afterwards.
func (c *Client) Register(ctx context.Context, req RegisterRequest) error {
	resp, err := c.Do(ctx, http.MethodPost, registerPath, RequestOptions{Body: req})
	if err != nil {
		return errors.Wrap(err, "[Client.Register]")
	}
	return decode(resp, nil)
}

// ValidateCredentials rejects empty or malformed login input before it
// reaches the network. The forms validate too; this is the contract's
// defensive floor.
func ValidateCredentials(email, password string) error {
	email = strings.TrimSpace(email)
	if email == "" {
		return errors.New("email is required")
	}
	if !strings.Contains(email, "@") || !strings.Contains(email, ".") {
		return errors.New("invalid email format")
	}
	if password == "" {
		return errors.New("password is required")
	}
	return nil
}
