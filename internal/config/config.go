package config

import (
	"fmt"
	"strings"

	"github.com/spf13/viper"
)

// Config holds all application configuration.
type Config struct {
	Server   ServerConfig
	Database DatabaseConfig
	Auth     AuthConfig
	Telegram TelegramConfig
	Cycle    CycleConfig
	Logging  LoggingConfig
}

type ServerConfig struct {
	Port     string
	Timezone string
}

type DatabaseConfig struct {
	Path string
}

type AuthConfig struct {
	Secret string
}

type TelegramConfig struct {
	BotToken string
	ChatID   string
}

// CycleConfig overrides engine tuning where a deployment needs to localize
// or adjust heuristics.
type CycleConfig struct {
	DetectionKeywords []string
}

type LoggingConfig struct {
	Level  string
	Format string
}

// Load reads configuration from config.yaml (optional) and ALUNA_* environment
// variables, with safe defaults for local runs.
func Load() (*Config, error) {
	v := viper.New()

	v.SetDefault("server.port", "8080")
	v.SetDefault("server.timezone", "UTC")
	v.SetDefault("database.path", "data/aluna.db")
	v.SetDefault("auth.secret", "")
	v.SetDefault("telegram.bot_token", "")
	v.SetDefault("telegram.chat_id", "")
	v.SetDefault("cycle.detection_keywords", []string{})
	v.SetDefault("logging.level", "info")
	v.SetDefault("logging.format", "json")

	v.SetConfigName("config")
	v.SetConfigType("yaml")
	v.AddConfigPath(".")
	v.AddConfigPath("./config")

	v.SetEnvPrefix("ALUNA")
	v.SetEnvKeyReplacer(strings.NewReplacer(".", "_"))
	v.AutomaticEnv()

	if err := v.ReadInConfig(); err != nil {
		if _, notFound := err.(viper.ConfigFileNotFoundError); !notFound {
			return nil, fmt.Errorf("read config file: %w", err)
		}
	}

	cfg := &Config{
		Server: ServerConfig{
			Port:     v.GetString("server.port"),
			Timezone: v.GetString("server.timezone"),
		},
		Database: DatabaseConfig{
			Path: v.GetString("database.path"),
		},
		Auth: AuthConfig{
			Secret: v.GetString("auth.secret"),
		},
		Telegram: TelegramConfig{
			BotToken: v.GetString("telegram.bot_token"),
			ChatID:   v.GetString("telegram.chat_id"),
		},
		Cycle: CycleConfig{
			DetectionKeywords: v.GetStringSlice("cycle.detection_keywords"),
		},
		Logging: LoggingConfig{
			Level:  v.GetString("logging.level"),
			Format: v.GetString("logging.format"),
		},
	}
	return cfg, nil
}
