package config

import (
	"fmt"
	"strings"
	"time"

	"github.com/spf13/viper"
)

type Config struct {
	// Server
	Port     string `mapstructure:"PORT"`
	Env      string `mapstructure:"ENV"`
	LogLevel string `mapstructure:"LOG_LEVEL"`

	// Season
	SeasonYear       int `mapstructure:"SEASON_YEAR"`
	RecentFormWindow int `mapstructure:"RECENT_FORM_WINDOW"`

	// Redis
	RedisURL     string `mapstructure:"REDIS_URL"`
	RedisEnabled bool   `mapstructure:"REDIS_ENABLED"`

	// Leaderboard cache
	LeadersCacheTTL     time.Duration `mapstructure:"LEADERS_CACHE_TTL"`
	LeadersRefreshCron  string        `mapstructure:"LEADERS_REFRESH_CRON"`
	LeadersRefreshStats []string      `mapstructure:"LEADERS_REFRESH_STATS"`
	LeadersMinGames     int           `mapstructure:"LEADERS_MIN_GAMES"`

	// Export
	ExportPath string `mapstructure:"EXPORT_PATH"`
}

func LoadConfig() (*Config, error) {
	viper.SetConfigName(".env")
	viper.SetConfigType("env")
	viper.AddConfigPath(".")
	viper.AddConfigPath("..")

	// Set defaults
	viper.SetDefault("PORT", "8080")
	viper.SetDefault("ENV", "development")
	viper.SetDefault("LOG_LEVEL", "")
	viper.SetDefault("SEASON_YEAR", 2024)
	viper.SetDefault("RECENT_FORM_WINDOW", 4)
	viper.SetDefault("REDIS_URL", "redis://localhost:6379/0")
	viper.SetDefault("REDIS_ENABLED", false)
	viper.SetDefault("LEADERS_CACHE_TTL", "5m")
	viper.SetDefault("LEADERS_REFRESH_CRON", "@every 15m")
	viper.SetDefault("LEADERS_REFRESH_STATS", "pass_yards,rush_yards,receiving_yards,tackles")
	viper.SetDefault("LEADERS_MIN_GAMES", 1)
	viper.SetDefault("EXPORT_PATH", "season_data.json")

	// Read from environment
	viper.AutomaticEnv()

	// Read config file if exists
	if err := viper.ReadInConfig(); err != nil {
		if _, ok := err.(viper.ConfigFileNotFoundError); !ok {
			return nil, fmt.Errorf("error reading config file: %w", err)
		}
	}

	var config Config
	if err := viper.Unmarshal(&config); err != nil {
		return nil, fmt.Errorf("unable to decode config: %w", err)
	}

	// Parse refresh stat list from comma-separated string
	if statsStr := viper.GetString("LEADERS_REFRESH_STATS"); statsStr != "" {
		config.LeadersRefreshStats = strings.Split(statsStr, ",")
	}

	return &config, nil
}

func (c *Config) IsDevelopment() bool {
	return c.Env == "development"
}

func (c *Config) IsProduction() bool {
	return c.Env == "production"
}
