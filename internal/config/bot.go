package config

type Bot struct {
	Token string `env:"BOT_TOKEN" json:"-"`
	// ChatID receives notifications.
	ChatID int64 `env:"BOT_CHAT_ID"`
	// AdminID is the only user allowed to control widgets.
	AdminID int64 `env:"BOT_ADMIN_ID"`
}

func (b Bot) Enabled() bool {
	return b.Token != ""
}
