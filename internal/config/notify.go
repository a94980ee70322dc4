package config

type Notify struct {
	Enabled bool    `env:"NOTIFY_ENABLED" envDefault:"false"`
	Rate    float64 `env:"NOTIFY_RATE" envDefault:"1"`
	Burst   int     `env:"NOTIFY_BURST" envDefault:"5"`
	Buffer  int     `env:"NOTIFY_BUFFER" envDefault:"100"`
	// MinUrgency filters out events below this level.
	MinUrgency string `env:"NOTIFY_MIN_URGENCY" envDefault:"high"`
	// ViaQueue routes Telegram deliveries through the asynq queue.
	ViaQueue bool   `env:"NOTIFY_VIA_QUEUE" envDefault:"false"`
	Channel  string `env:"NOTIFY_REDIS_CHANNEL"`
	Queue    string `env:"NOTIFY_QUEUE" envDefault:"notifications"`
}
