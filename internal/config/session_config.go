package config

import "time"

type SessionConfig interface {
	GetRefreshMargin() time.Duration
	GetMaxSessionAge() time.Duration
	GetSessionDBPath() string
	GetSecureCookies() bool
}

type Sessions struct{}

var _ SessionConfig = Sessions{}

// GetRefreshMargin is how long before token expiry a refresh is attempted.
func (Sessions) GetRefreshMargin() time.Duration {
	return 10 * time.Minute
}

func (Sessions) GetMaxSessionAge() time.Duration {
	return 24 * time.Hour
}

// GetSessionDBPath is the bbolt file backing the session store.
// An empty value keeps sessions in memory only.
func (Sessions) GetSessionDBPath() string {
	return GetEnv("SESSION_DB", "./data/sessions.db")
}

func (s Sessions) GetSecureCookies() bool {
	return GetEnv(envVar, "DEV") != "DEV"
}
