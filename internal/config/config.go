package config

import (
	"fmt"
	"path/filepath"

	"github.com/spf13/viper"
)

// Config holds all application configuration
type Config struct {
	App     AppConfig
	Store   StoreConfig
	Gemini  GeminiConfig
	Logging LoggingConfig
}

// AppConfig holds general application configuration
type AppConfig struct {
	Environment     string
	DefaultLanguage string
	// Passphrase used to encrypt the stored Gemini API key. Optional;
	// when empty the key is stored as plain text.
	EncryptionPassphrase string
}

// StoreConfig holds local store configuration
type StoreConfig struct {
	DataDir string
	DBFile  string
}

// GeminiConfig holds Gemini API configuration
type GeminiConfig struct {
	BaseURL string
	APIKey  string
	Model   string
}

// LoggingConfig holds logging configuration
type LoggingConfig struct {
	Level  string
	Format string // json or console
}

// Load reads configuration from environment variables and config files
func Load() (*Config, error) {
	v := viper.New()

	// Set default values
	setDefaults(v)

	// Read from environment variables
	v.AutomaticEnv()

	// Bind specific environment variables
	bindEnvVars(v)

	// Unmarshal into config struct
	var cfg Config
	if err := v.Unmarshal(&cfg); err != nil {
		return nil, fmt.Errorf("failed to unmarshal config: %w", err)
	}

	// Validate configuration
	if err := cfg.Validate(); err != nil {
		return nil, fmt.Errorf("invalid configuration: %w", err)
	}

	return &cfg, nil
}

// DBPath returns the full path of the sqlite database file.
func (c *Config) DBPath() string {
	return filepath.Join(c.Store.DataDir, c.Store.DBFile)
}

// setDefaults sets default configuration values
func setDefaults(v *viper.Viper) {
	// App defaults
	v.SetDefault("app.environment", "development")
	v.SetDefault("app.defaultlanguage", "en-US")

	// Store defaults
	v.SetDefault("store.datadir", ".")
	v.SetDefault("store.dbfile", "aarogyavani.db")

	// Gemini defaults
	v.SetDefault("gemini.baseurl", "https://generativelanguage.googleapis.com/v1beta/openai/")
	v.SetDefault("gemini.model", "gemini-3-flash-preview")

	// Logging defaults
	v.SetDefault("logging.level", "info")
	v.SetDefault("logging.format", "json")
}

// bindEnvVars binds environment variables to config keys
func bindEnvVars(v *viper.Viper) {
	// App
	v.BindEnv("app.environment", "ENV", "ENVIRONMENT")
	v.BindEnv("app.defaultlanguage", "DEFAULT_LANGUAGE")
	v.BindEnv("app.encryptionpassphrase", "ENCRYPTION_PASSPHRASE")

	// Store
	v.BindEnv("store.datadir", "DATA_DIR")
	v.BindEnv("store.dbfile", "DB_FILE")

	// Gemini
	v.BindEnv("gemini.baseurl", "GEMINI_BASE_URL")
	v.BindEnv("gemini.apikey", "GEMINI_API_KEY")
	v.BindEnv("gemini.model", "GEMINI_MODEL")

	// Logging
	v.BindEnv("logging.level", "LOG_LEVEL")
	v.BindEnv("logging.format", "LOG_FORMAT")
}

// Validate checks if the configuration is valid
func (c *Config) Validate() error {
	if c.Store.DataDir == "" {
		return fmt.Errorf("store.datadir is required")
	}

	if c.Store.DBFile == "" {
		return fmt.Errorf("store.dbfile is required")
	}

	if c.Gemini.BaseURL == "" {
		return fmt.Errorf("gemini.baseurl is required")
	}

	if c.Gemini.Model == "" {
		return fmt.Errorf("gemini.model is required")
	}

	// The API key is intentionally not required here: the scan flow reports
	// a missing credential at submit time so the rest of the app stays usable.

	return nil
}
