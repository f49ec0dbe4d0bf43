package config

import "time"

// UpstreamConfig describes the remote courier API this application fronts.
type UpstreamConfig interface {
	GetAPIBaseURL() string
	GetAPITimeout() time.Duration
}

type Upstream struct{}

var _ UpstreamConfig = Upstream{}

func (Upstream) GetAPIBaseURL() string {
	return GetEnv(apiBaseURLVar, "http://localhost:8080")
}

func (Upstream) GetAPITimeout() time.Duration {
	return 30 * time.Second
}
