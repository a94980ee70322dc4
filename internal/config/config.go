package config

import (
	"fmt"
	"log/slog"
	"strings"

	"github.com/caarlos0/env/v10"
	"github.com/joho/godotenv"
)

type Config struct {
	App        App
	HTTP       HTTP
	Simulation Simulation
	Notify     Notify
	Redis      Redis
	Bot        Bot
}

type App struct {
	Name     string     `env:"APP_NAME" envDefault:"gb-market"`
	Version  string     `env:"APP_VERSION" envDefault:"dev"`
	LogLevel slog.Level `env:"LOG_LEVEL" envDefault:"info"`
	LogFile  string     `env:"LOG_FILE"`
}

// Load reads the environment, optionally seeded from a .env file.
func Load() (Config, error) {
	_ = godotenv.Load()

	return Parse()
}

func Parse() (Config, error) {
	var config Config

	if err := env.Parse(&config); err != nil {
		return Config{}, fmt.Errorf("env.Parse: %w", err)
	}

	config.Bot.Token = correctNewlines(config.Bot.Token)

	return config, nil
}

func correctNewlines(s string) string {
	return strings.NewReplacer(`"`, "", `\n`, "\n").Replace(s)
}
