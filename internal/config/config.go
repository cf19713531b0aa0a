package config

import (
	"fmt"
	"net/url"
	"strings"
	"time"

	"github.com/charmbracelet/log"
	"github.com/jon4hz/artfolio/internal/session"
	"github.com/jon4hz/artfolio/pkg/artfolio"
	"github.com/spf13/viper"
)

// Config holds the configuration for the artfolio CLI.
type Config struct {
	// BackendURL is the base URL of the portfolio backend.
	BackendURL string `yaml:"backend_url" mapstructure:"backend_url"`
	// Timeout bounds every request to the backend.
	Timeout time.Duration `yaml:"timeout" mapstructure:"timeout"`
	// LogLevel is one of debug, info, warn or error.
	LogLevel string `yaml:"log_level" mapstructure:"log_level"`
	// Session holds where admin credentials are kept.
	Session *SessionConfig `yaml:"session" mapstructure:"session"`
	// Upload holds the image preparation settings.
	Upload *UploadConfig `yaml:"upload" mapstructure:"upload"`
}

// SessionConfig holds the credential file settings.
type SessionConfig struct {
	// Path is the credentials file. A leading ~ is expanded.
	Path string `yaml:"path" mapstructure:"path"`
}

// UploadConfig holds the image preparation settings applied before upload.
type UploadConfig struct {
	// Resize enables downscaling before upload.
	Resize bool `yaml:"resize" mapstructure:"resize"`
	// MaxWidth is the largest width in pixels sent to the backend.
	MaxWidth int `yaml:"max_width" mapstructure:"max_width"`
	// MaxHeight is the largest height in pixels sent to the backend.
	MaxHeight int `yaml:"max_height" mapstructure:"max_height"`
	// Quality is the JPEG quality (1-100) used when re-encoding.
	Quality int `yaml:"quality" mapstructure:"quality"`
}

// Load reads the configuration from the specified path and returns a Config struct.
// If path is empty, it will use default search paths for config files.
// A missing config file is not an error; defaults and env vars apply.
func Load(path string) (*Config, error) {
	v := viper.New()

	// the frontend build used BACKEND_URL, keep accepting it
	v.MustBindEnv("backend_url", "ARTFOLIO_BACKEND_URL", "BACKEND_URL")

	setDefaults(v)

	v.SetConfigType("yaml")
	v.SetEnvPrefix("ARTFOLIO")
	v.SetEnvKeyReplacer(strings.NewReplacer(".", "_"))
	v.AutomaticEnv()

	var configFileFound bool
	if path != "" {
		v.SetConfigFile(path)
	} else {
		v.SetConfigName("config")
		v.AddConfigPath(".")
		v.AddConfigPath("$HOME/.artfolio")
		v.AddConfigPath("/etc/artfolio")
	}

	if err := v.ReadInConfig(); err != nil {
		if _, ok := err.(viper.ConfigFileNotFoundError); !ok {
			return nil, fmt.Errorf("failed to read config file: %w", err)
		}
	} else {
		configFileFound = true
	}

	if configFileFound {
		log.Debug("Using config file", "file", v.ConfigFileUsed())
		log.Debug("Environment variables with the ARTFOLIO_ prefix override config file values")
	}

	var c Config
	if err := v.Unmarshal(&c); err != nil {
		return nil, fmt.Errorf("failed to unmarshal config: %w", err)
	}

	sanitizeConfig(&c)

	if err := validateConfig(&c); err != nil {
		return nil, err
	}

	return &c, nil
}

// setDefaults sets default values for the configuration.
func setDefaults(v *viper.Viper) {
	v.SetDefault("backend_url", artfolio.DefaultBaseURL)
	v.SetDefault("timeout", artfolio.DefaultTimeout)
	v.SetDefault("log_level", "info")

	v.SetDefault("session.path", session.DefaultPath)

	// matches the thumbnailing the backend applies to uploads
	v.SetDefault("upload.resize", false)
	v.SetDefault("upload.max_width", 1200)
	v.SetDefault("upload.max_height", 800)
	v.SetDefault("upload.quality", 85)
}

// validateConfig validates the configuration.
func validateConfig(c *Config) error {
	if c == nil {
		return fmt.Errorf("missing config")
	}

	if c.BackendURL == "" {
		return fmt.Errorf("backend_url is required")
	}
	u, err := url.Parse(c.BackendURL)
	if err != nil {
		return fmt.Errorf("invalid backend_url: %w", err)
	}
	if u.Scheme != "http" && u.Scheme != "https" {
		return fmt.Errorf("backend_url must use http or https, got %q", c.BackendURL)
	}
	if u.Host == "" {
		return fmt.Errorf("backend_url has no host: %q", c.BackendURL)
	}

	if c.Timeout <= 0 {
		return fmt.Errorf("timeout must be positive, got %s", c.Timeout)
	}

	if c.Session == nil || c.Session.Path == "" {
		return fmt.Errorf("session.path is required")
	}

	if c.Upload == nil {
		return fmt.Errorf("missing upload config")
	}
	if c.Upload.MaxWidth <= 0 || c.Upload.MaxHeight <= 0 {
		return fmt.Errorf("upload dimensions must be positive, got %dx%d", c.Upload.MaxWidth, c.Upload.MaxHeight)
	}
	if c.Upload.Quality < 1 || c.Upload.Quality > 100 {
		return fmt.Errorf("upload.quality must be between 1 and 100, got %d", c.Upload.Quality)
	}

	return nil
}

// sanitizeConfig sanitizes the configuration values.
func sanitizeConfig(c *Config) {
	if c == nil {
		return
	}

	c.BackendURL = urlSanitize(c.BackendURL)
	if c.BackendURL != "" && !strings.Contains(c.BackendURL, "://") {
		c.BackendURL = "http://" + c.BackendURL
	}
	c.LogLevel = strings.ToLower(strings.TrimSpace(c.LogLevel))

	if c.Session != nil {
		c.Session.Path = strings.TrimSpace(c.Session.Path)
	}
}

func urlSanitize(url string) string {
	return strings.TrimSuffix(strings.TrimSpace(url), "/")
}
