package session

import "errors"

var (
	NotAuthenticatedErr = errors.New("not authenticated")
	SessionExpiredErr   = errors.New("session expired")
	NotFoundErr         = errors.New("session not found")
)
