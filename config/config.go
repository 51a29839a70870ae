package config

import (
	"fmt"
	"os"
	"strconv"

	"github.com/joho/godotenv"
)

// Config holds the full application configuration, populated from
// environment variables (optionally seeded from a .env file).
type Config struct {
	App         AppConfig
	Store       StoreConfig
	OpenAI      OpenAIConfig
	Syndication SyndicationConfig
	Scheduler   SchedulerConfig
}

type AppConfig struct {
	Name        string
	Environment string // development, staging, production
	Addr        string
}

type StoreConfig struct {
	Path string // Badger data directory; empty means in-memory
}

type OpenAIConfig struct {
	APIKey         string
	WriterModel    string // blog generation
	PersonaModel   string // persona generation
	TimeoutSeconds int
}

type SyndicationConfig struct {
	WebhookURL string
}

type SchedulerConfig struct {
	CronSpec string
}

// Load reads configuration from the environment. A .env file in the working
// directory is loaded first when present.
func Load() (*Config, error) {
	_ = godotenv.Load()

	cfg := &Config{
		App: AppConfig{
			Name:        getEnv("APP_NAME", "bylines"),
			Environment: getEnv("APP_ENV", "development"),
			Addr:        getEnv("APP_ADDR", ":8080"),
		},
		Store: StoreConfig{
			Path: getEnv("STORE_PATH", "data/badger"),
		},
		OpenAI: OpenAIConfig{
			APIKey:         getEnv("OPENAI_API_KEY", ""),
			WriterModel:    getEnv("OPENAI_WRITER_MODEL", "gpt-4.1-nano"),
			PersonaModel:   getEnv("OPENAI_PERSONA_MODEL", "gpt-3.5-turbo"),
			TimeoutSeconds: getEnvInt("OPENAI_TIMEOUT_SECONDS", 90),
		},
		Syndication: SyndicationConfig{
			WebhookURL: getEnv("SYNDICATION_WEBHOOK_URL", ""),
		},
		Scheduler: SchedulerConfig{
			CronSpec: getEnv("GENERATE_CRON", "0 */6 * * *"),
		},
	}

	if err := cfg.Validate(); err != nil {
		return nil, fmt.Errorf("config validation failed: %w", err)
	}

	return cfg, nil
}

// Validate checks settings that cannot be defaulted.
func (c *Config) Validate() error {
	if c.App.Environment == "production" {
		if c.OpenAI.APIKey == "" {
			return fmt.Errorf("OPENAI_API_KEY must be set in production")
		}
		if c.Syndication.WebhookURL == "" {
			fmt.Println("WARNING: SYNDICATION_WEBHOOK_URL not set - posts will not be syndicated")
		}
	}
	return nil
}

func getEnv(key, defaultValue string) string {
	value := os.Getenv(key)
	if value == "" {
		return defaultValue
	}
	return value
}

func getEnvInt(key string, defaultValue int) int {
	valueStr := os.Getenv(key)
	if valueStr == "" {
		return defaultValue
	}
	value, err := strconv.Atoi(valueStr)
	if err != nil {
		return defaultValue
	}
	return value
}
