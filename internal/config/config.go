package config

import (
	"errors"
	"fmt"
	"strings"

	"github.com/spf13/viper"
)

// EnvPrefix is prepended to every environment override, e.g. BLOG_SERVER_PORT.
const EnvPrefix = "BLOG"

// Config holds the application configuration
type Config struct {
	Server  ServerConfig  `mapstructure:"server"`
	Storage StorageConfig `mapstructure:"storage"`
	Log     LogConfig     `mapstructure:"log"`
	Debug   DebugConfig   `mapstructure:"debug"`
}

// ServerConfig holds HTTP server configuration
type ServerConfig struct {
	Host string `mapstructure:"host"`
	Port string `mapstructure:"port"`
	// ExpectedHost enables Host header validation when set.
	ExpectedHost string `mapstructure:"expected_host"`
	// Mode is the gin mode: debug, release or test.
	Mode string `mapstructure:"mode"`
}

// StorageConfig holds post storage configuration
type StorageConfig struct {
	Dir string `mapstructure:"dir"`
	// RequireDir makes a failure to prepare Dir fatal at startup.
	// When false the server logs the failure and keeps serving.
	RequireDir bool `mapstructure:"require_dir"`
}

// LogConfig holds logging configuration
type LogConfig struct {
	Level  string `mapstructure:"level"`
	Format string `mapstructure:"format"`
}

// DebugConfig holds diagnostics settings
type DebugConfig struct {
	Gops bool `mapstructure:"gops"`
}

// Addr returns the listen address.
func (s ServerConfig) Addr() string {
	return s.Host + ":" + s.Port
}

// Load loads configuration from an optional config.yaml and environment
// variables. With no paths given it looks in "." and "./config".
func Load(paths ...string) (*Config, error) {
	v := viper.New()
	v.SetConfigName("config")
	v.SetConfigType("yaml")
	if len(paths) == 0 {
		paths = []string{".", "./config"}
	}
	for _, p := range paths {
		v.AddConfigPath(p)
	}

	// Set defaults
	v.SetDefault("server.host", "0.0.0.0")
	v.SetDefault("server.port", "3000")
	v.SetDefault("server.expected_host", "")
	v.SetDefault("server.mode", "release")
	v.SetDefault("storage.dir", "blogs")
	v.SetDefault("storage.require_dir", false)
	v.SetDefault("log.level", "info")
	v.SetDefault("log.format", "text")
	v.SetDefault("debug.gops", false)

	// Environment variable bindings
	v.SetEnvPrefix(EnvPrefix)
	v.SetEnvKeyReplacer(strings.NewReplacer(".", "_"))
	v.AutomaticEnv()

	if err := v.ReadInConfig(); err != nil {
		var notFound viper.ConfigFileNotFoundError
		if !errors.As(err, &notFound) {
			return nil, fmt.Errorf("failed to read config file: %w", err)
		}
	}

	var cfg Config
	if err := v.Unmarshal(&cfg); err != nil {
		return nil, fmt.Errorf("failed to decode config: %w", err)
	}

	if err := cfg.Validate(); err != nil {
		return nil, err
	}

	return &cfg, nil
}

// Validate checks values viper cannot check for us.
func (c *Config) Validate() error {
	if c.Storage.Dir == "" {
		return errors.New("storage.dir cannot be empty")
	}
	if c.Server.Port == "" {
		return errors.New("server.port cannot be empty")
	}
	switch c.Server.Mode {
	case "debug", "release", "test":
	default:
		return fmt.Errorf("unsupported server mode: %s (available: debug, release, test)", c.Server.Mode)
	}
	switch c.Log.Format {
	case "text", "json":
	default:
		return fmt.Errorf("unsupported log format: %s", c.Log.Format)
	}
	return nil
}
