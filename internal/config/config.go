package config

import (
	"os"
	"time"

	"github.com/joho/godotenv"
)

// Config holds all configuration for the application.
type Config struct {
	Port string
	Env  string

	// Slack credentials
	SlackVerifyToken string // shared-secret token carried on slash commands
	SlackTeamID      string // workspace ID the bot is bound to
	SlackBotToken    string // bot OAuth token for Web API calls
	AdminUserID      string // Slack user allowed to delete any bot message
	BotUserID        string // named in the "invite the bot" hint

	// Upstream services
	ServersFile   string // ordered JSON list of Minecraft servers
	NicknameDir   string // directory of per-UUID nickname documents
	NicknameURL   string // HTTP nickname store base URL (overrides NicknameDir)
	MojangBaseURL string
	RedisURL      string // optional UUID lookup cache

	// Timeouts for blocking upstream calls
	QueryTimeout time.Duration
	SlackTimeout time.Duration
}

// Load reads configuration from environment variables.
// In development, it loads from .env file if present.
// In production, it panics on missing required variables.
func Load() *Config {
	// Load .env file if it exists (for development)
	_ = godotenv.Load()

	cfg := &Config{
		Port:             getEnv("PORT", "8080"),
		Env:              getEnv("ENV", "development"),
		SlackVerifyToken: os.Getenv("TOKEN"),
		SlackTeamID:      os.Getenv("TEAM_ID"),
		SlackBotToken:    os.Getenv("BOT_OAUTH_TOKEN"),
		AdminUserID:      os.Getenv("ADMIN_USER_ID"),
		BotUserID:        os.Getenv("BOT_USER_ID"),
		ServersFile:      getEnv("SERVERS_FILE", "servers.json"),
		NicknameDir:      getEnv("NICKNAME_DIR", "HCCore/players"),
		NicknameURL:      os.Getenv("NICKNAME_URL"),
		MojangBaseURL:    getEnv("MOJANG_BASE_URL", "https://api.mojang.com"),
		RedisURL:         os.Getenv("REDIS_URL"),
		QueryTimeout:     getDuration("QUERY_TIMEOUT", 5*time.Second),
		SlackTimeout:     getDuration("SLACK_TIMEOUT", 10*time.Second),
	}

	// In production, require the Slack secrets
	if cfg.Env == "production" {
		if cfg.SlackVerifyToken == "" {
			panic("TOKEN is required in production")
		}
		if cfg.SlackTeamID == "" {
			panic("TEAM_ID is required in production")
		}
		if cfg.SlackBotToken == "" {
			panic("BOT_OAUTH_TOKEN is required in production")
		}
	}

	return cfg
}

// IsDevelopment returns true if running in development mode.
func (c *Config) IsDevelopment() bool {
	return c.Env == "development"
}

func getEnv(key, defaultValue string) string {
	if value := os.Getenv(key); value != "" {
		return value
	}
	return defaultValue
}

func getDuration(key string, defaultValue time.Duration) time.Duration {
	if value := os.Getenv(key); value != "" {
		if d, err := time.ParseDuration(value); err == nil {
			return d
		}
	}
	return defaultValue
}
