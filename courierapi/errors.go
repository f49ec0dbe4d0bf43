package courierapi

import (
	"fmt"

	"github.com/pkg/errors"
)

var (
	InvalidCredentialsErr = errors.New("invalid email or password")
	MalformedResponseErr  = errors.New("malformed response from courier API")
	MissingTokenErr       = errors.New("no access token available")
)

// APIError is a non-2xx response carrying the server's message. 401/403 are
// surfaced to the calling view through this type, never auto-redirected here.
type APIError struct {
	StatusCode int
	Message    string
}

func (e *APIError) Error() string {
	if e.Message == "" {
		return fmt.Sprintf("courier API returned status %d", e.StatusCode)
	}
	return fmt.Sprintf("courier API returned status %d: %s", e.StatusCode, e.Message)
}

// IsUnauthorized reports whether err is an APIError with status 401.
func IsUnauthorized(err error) bool {
	var apiErr *APIError
	return errors.As(err, &apiErr) && apiErr.StatusCode == 401
}

// IsForbidden reports whether err is an APIError with status 403.
func IsForbidden(err error) bool {
	var apiErr *APIError
	return errors.As(err, &apiErr) && apiErr.StatusCode == 403
}
