package config

import (
	"time"

	"pronostico/internal/ai"
	"pronostico/internal/integration"
	"pronostico/internal/repository"

	"github.com/caarlos0/env/v11"
)

type Config struct {
	Repo   repository.Config       `envPrefix:"REPO_"`
	Gemini ai.Config               `envPrefix:"GEMINI_"`
	Fetch  integration.FetchConfig `envPrefix:"FETCH_"`

	GeminiKey    string `env:"GEMINI_KEY" envDefault:""`
	LogLevel     string `env:"LOGGER_LEVEL" envDefault:"debug"`
	HistoryLimit int    `env:"HISTORY_LIMIT" envDefault:"10"`

	AnalysisTimeout time.Duration `env:"ANALYSIS_TIMEOUT" envDefault:"3m"`

	TelegramToken   string `env:"TELEGRAM_TOKEN" envDefault:""`
	TelegramOwnerID int64  `env:"TELEGRAM_OWNER_ID" envDefault:"0"`

	DiscordToken   string   `env:"DISCORD_TOKEN" envDefault:""`
	DiscordGuildID string   `env:"DISCORD_GUILD_ID" envDefault:""`
	AdminUserIDs   []string `env:"ADMIN_USER_IDS" envSeparator:"," envDefault:""`

	GoogleCredentials string `env:"GOOGLE_CREDENTIALS" envDefault:""`
	GoogleOwnerEmail  string `env:"GOOGLE_OWNER_EMAIL" envDefault:""`
	SpreadsheetID     string `env:"SPREADSHEET_ID" envDefault:""`
}

func ReadEnvConfig(cfg *Config) error {
	return env.Parse(cfg)
}
