package config

type Config interface {
	EnvConfig
	UpstreamConfig
	SessionConfig
}

type EnvConfig interface {
	GetPort() string
	GetAppName() string
	GetEnv() string
}

type mainConfig struct {
	EnvVars
	Upstream
	Sessions
}

func New() Config {
	return mainConfig{}
}
