package config

import "time"

type Simulation struct {
	Resolution     time.Duration `env:"SIM_RESOLUTION" envDefault:"250ms"`
	Seed           int64         `env:"SIM_SEED"`
	WidgetIdleTTL  time.Duration `env:"SIM_WIDGET_IDLE_TTL" envDefault:"10m"`
	StreamInterval time.Duration `env:"SIM_STREAM_INTERVAL" envDefault:"1s"`
	// CatalogFile replaces the embedded product and seller pools.
	CatalogFile string `env:"SIM_CATALOG_FILE"`
	// FetchLatency delays every synthetic negotiation fetch.
	FetchLatency time.Duration `env:"SIM_FETCH_LATENCY" envDefault:"0s"`
}
