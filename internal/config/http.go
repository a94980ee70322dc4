package config

import "time"

type HTTP struct {
	ListenAddress     string        `env:"HTTP_LISTEN_ADDRESS" envDefault:":8080"`
	ProbeAddress      string        `env:"HTTP_PROBE_ADDRESS" envDefault:":8081"`
	MetricsAddress    string        `env:"HTTP_METRICS_ADDRESS" envDefault:":9090"`
	ShutdownTimeout   time.Duration `env:"HTTP_SHUTDOWN_TIMEOUT" envDefault:"10s"`
	ReadHeaderTimeout time.Duration `env:"HTTP_READ_HEADER_TIMEOUT" envDefault:"5s"`
	LogFieldMaxLength int           `env:"HTTP_LOG_FIELD_MAX_LENGTH" envDefault:"2048"`
	AllowedOrigins    []string      `env:"HTTP_ALLOWED_ORIGINS" envSeparator:","`
}
