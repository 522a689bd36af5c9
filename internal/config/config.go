// Package config provides configuration management for the analyzer.
package config

import (
	"fmt"
	"os"
	"path/filepath"

	"github.com/spf13/viper"
)

// Config holds all application configuration.
type Config struct {
	Benchmark   BenchmarkConfig `mapstructure:"benchmark"`
	Server      ServerConfig    `mapstructure:"server"`
	UI          UIConfig        `mapstructure:"ui"`
	Credentials Credentials     `mapstructure:"-"` // Loaded separately
	AI          AIConfig        `mapstructure:"ai"`
}

// BenchmarkConfig holds the fixed-income comparison defaults.
type BenchmarkConfig struct {
	CDIAnnualRate float64 `mapstructure:"cdi_annual_rate"` // percent per year
	DefaultDays   int     `mapstructure:"default_days"`
	WithTax       bool    `mapstructure:"with_tax"`
}

// ServerConfig holds the JSON API settings.
type ServerConfig struct {
	Addr           string   `mapstructure:"addr"`
	AllowedOrigins []string `mapstructure:"allowed_origins"`
}

// UIConfig holds terminal output settings.
type UIConfig struct {
	ColorEnabled bool   `mapstructure:"color_enabled"`
	DateFormat   string `mapstructure:"date_format"`
}

// AIConfig holds the AI collaborator settings.
type AIConfig struct {
	Model       string `mapstructure:"model"`
	VisionModel string `mapstructure:"vision_model"`
}

// Credentials holds API credentials, kept out of the main config file.
type Credentials struct {
	OpenAI OpenAICredentials `mapstructure:"openai"`
}

// OpenAICredentials holds the OpenAI API key.
type OpenAICredentials struct {
	APIKey string `mapstructure:"api_key"`
}

// DefaultConfigDir returns the default configuration directory.
func DefaultConfigDir() string {
	home, err := os.UserHomeDir()
	if err != nil {
		return ".config/b3-analyzer"
	}
	return filepath.Join(home, ".config", "b3-analyzer")
}

// Load loads configuration from the specified directory, falling back to
// the default directory when empty. Missing files produce defaults, not
// errors; credentials may also arrive via OPENAI_API_KEY.
func Load(configDir string) (*Config, error) {
	if configDir == "" {
		configDir = DefaultConfigDir()
	}

	cfg := &Config{}
	if err := loadConfigFile(configDir, cfg); err != nil {
		return nil, fmt.Errorf("loading config.yaml: %w", err)
	}
	if err := loadCredentials(configDir, &cfg.Credentials); err != nil {
		return nil, fmt.Errorf("loading credentials.yaml: %w", err)
	}

	if v := os.Getenv("OPENAI_API_KEY"); v != "" {
		cfg.Credentials.OpenAI.APIKey = v
	}

	if err := cfg.Validate(); err != nil {
		return nil, fmt.Errorf("validating config: %w", err)
	}
	return cfg, nil
}

func loadConfigFile(configDir string, target *Config) error {
	v := viper.New()
	v.SetConfigName("config")
	v.SetConfigType("yaml")
	v.AddConfigPath(configDir)
	setDefaults(v)

	if err := v.ReadInConfig(); err != nil {
		if _, ok := err.(viper.ConfigFileNotFoundError); !ok {
			return err
		}
	}
	return v.Unmarshal(target)
}

func loadCredentials(configDir string, creds *Credentials) error {
	v := viper.New()
	v.SetConfigName("credentials")
	v.SetConfigType("yaml")
	v.AddConfigPath(configDir)

	if err := v.ReadInConfig(); err != nil {
		if _, ok := err.(viper.ConfigFileNotFoundError); ok {
			return nil
		}
		return err
	}
	return v.Unmarshal(creds)
}

func setDefaults(v *viper.Viper) {
	v.SetDefault("benchmark.cdi_annual_rate", 10.65)
	v.SetDefault("benchmark.default_days", 30)
	v.SetDefault("benchmark.with_tax", false)
	v.SetDefault("server.addr", ":8742")
	v.SetDefault("server.allowed_origins", []string{"http://localhost:5173"})
	v.SetDefault("ui.color_enabled", true)
	v.SetDefault("ui.date_format", "02/01/2006")
	v.SetDefault("ai.model", "gpt-4o")
	v.SetDefault("ai.vision_model", "gpt-4o")
}

// Validate checks configuration consistency.
func (c *Config) Validate() error {
	if c.Benchmark.CDIAnnualRate < 0 {
		return fmt.Errorf("benchmark.cdi_annual_rate must not be negative")
	}
	if c.Benchmark.DefaultDays < 0 {
		return fmt.Errorf("benchmark.default_days must not be negative")
	}
	if c.Server.Addr == "" {
		return fmt.Errorf("server.addr must not be empty")
	}
	return nil
}
