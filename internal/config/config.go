package config

import (
	"fmt"
	"time"

	"github.com/spf13/viper"

	"github.com/tradepulse/momentum-scanner/internal/aggregator"
)

// Config represents the complete application configuration
type Config struct {
	Feed     FeedConfig     `mapstructure:"feed"`
	Scanner  ScannerConfig  `mapstructure:"scanner"`
	Server   ServerConfig   `mapstructure:"server"`
	Telegram TelegramConfig `mapstructure:"telegram"`
	Logging  LoggingConfig  `mapstructure:"logging"`
}

// FeedConfig holds market-data websocket configuration
type FeedConfig struct {
	URL             string        `mapstructure:"url"`
	ClientID        string        `mapstructure:"client_id"`
	AccessTokenFile string        `mapstructure:"access_token_file"`
	BufferSize      int           `mapstructure:"buffer_size"`
	ReconnectDelay  time.Duration `mapstructure:"reconnect_delay"`
	PingInterval    time.Duration `mapstructure:"ping_interval"`
}

// ScannerConfig holds the watchlist location and detection parameters
type ScannerConfig struct {
	SymbolsFile      string  `mapstructure:"symbols_file"`
	LookbackSeconds  int     `mapstructure:"lookback_seconds"`
	ThresholdPercent float64 `mapstructure:"threshold_percent"`
}

// ServerConfig holds the dashboard HTTP server configuration
type ServerConfig struct {
	Enabled    bool   `mapstructure:"enabled"`
	ListenAddr string `mapstructure:"listen_addr"`
}

// TelegramConfig holds Telegram notification configuration
type TelegramConfig struct {
	Enabled        bool          `mapstructure:"enabled"`
	BotToken       string        `mapstructure:"bot_token"`
	ChatID         string        `mapstructure:"chat_id"`
	MaxRetries     int           `mapstructure:"max_retries"`
	RetryDelayBase time.Duration `mapstructure:"retry_delay_base"`
}

// LoggingConfig holds logging configuration
type LoggingConfig struct {
	Level  string `mapstructure:"level"`
	Format string `mapstructure:"format"`
}

// Load reads configuration from file and environment variables
func Load(path string) (*Config, error) {
	v := viper.New()

	// Set config file
	v.SetConfigFile(path)

	// Set defaults
	setDefaults(v)

	// Enable environment variable override
	v.SetEnvPrefix("SCANNER")
	v.AutomaticEnv()

	// Read config file
	if err := v.ReadInConfig(); err != nil {
		return nil, fmt.Errorf("failed to read config file: %w", err)
	}

	// Unmarshal into Config struct
	var cfg Config
	if err := v.Unmarshal(&cfg); err != nil {
		return nil, fmt.Errorf("failed to unmarshal config: %w", err)
	}

	return &cfg, nil
}

// setDefaults configures default values for all configuration options
func setDefaults(v *viper.Viper) {
	// Feed defaults
	v.SetDefault("feed.access_token_file", "./access_token.txt")
	v.SetDefault("feed.buffer_size", 256)
	v.SetDefault("feed.reconnect_delay", "5s")
	v.SetDefault("feed.ping_interval", "20s")

	// Scanner defaults mirror the reference scanner: 60s window, 1% threshold
	v.SetDefault("scanner.symbols_file", "./symbols.txt")
	v.SetDefault("scanner.lookback_seconds", 60)
	v.SetDefault("scanner.threshold_percent", 1.0)

	// Server defaults
	v.SetDefault("server.enabled", true)
	v.SetDefault("server.listen_addr", ":8087")

	// Telegram defaults
	v.SetDefault("telegram.enabled", false)
	v.SetDefault("telegram.max_retries", 3)
	v.SetDefault("telegram.retry_delay_base", "1s")

	// Logging defaults
	v.SetDefault("logging.level", "info")
	v.SetDefault("logging.format", "text")
}

// Validate checks that all configuration values are valid
func (c *Config) Validate() error {
	// Validate Feed config
	if c.Feed.URL == "" {
		return fmt.Errorf("feed.url is required")
	}
	if c.Feed.ClientID == "" {
		return fmt.Errorf("feed.client_id is required")
	}
	if c.Feed.BufferSize < 1 {
		return fmt.Errorf("feed.buffer_size must be at least 1")
	}
	if c.Feed.ReconnectDelay < time.Second {
		return fmt.Errorf("feed.reconnect_delay must be at least 1 second")
	}
	if c.Feed.PingInterval < time.Second {
		return fmt.Errorf("feed.ping_interval must be at least 1 second")
	}

	// Validate Scanner config; the detection bounds live with the aggregator
	if c.Scanner.SymbolsFile == "" {
		return fmt.Errorf("scanner.symbols_file is required")
	}
	if err := c.DetectionConfig().Validate(); err != nil {
		return fmt.Errorf("scanner: %w", err)
	}

	// Validate Server config
	if c.Server.Enabled && c.Server.ListenAddr == "" {
		return fmt.Errorf("server.listen_addr is required when server is enabled")
	}

	// Validate Telegram config
	if c.Telegram.Enabled {
		if c.Telegram.BotToken == "" {
			return fmt.Errorf("telegram.bot_token is required when telegram is enabled")
		}
		if c.Telegram.ChatID == "" {
			return fmt.Errorf("telegram.chat_id is required when telegram is enabled")
		}
	}

	// Validate Logging config
	validLogLevels := map[string]bool{"debug": true, "info": true, "warn": true, "error": true}
	if !validLogLevels[c.Logging.Level] {
		return fmt.Errorf("logging.level must be one of: debug, info, warn, error")
	}
	validFormats := map[string]bool{"json": true, "text": true}
	if !validFormats[c.Logging.Format] {
		return fmt.Errorf("logging.format must be one of: json, text")
	}

	return nil
}

// DetectionConfig returns the aggregator parameters from the scanner section.
func (c *Config) DetectionConfig() aggregator.Config {
	return aggregator.Config{
		LookbackSeconds:  c.Scanner.LookbackSeconds,
		ThresholdPercent: c.Scanner.ThresholdPercent,
	}
}
