package config

import (
	"errors"
	"fmt"
	"io/fs"
	"strings"

	"github.com/charmbracelet/log"
	"github.com/joho/godotenv"
	"github.com/spf13/viper"
)

// DefaultAPIBaseURL is the backend used when no base URL is configured.
const DefaultAPIBaseURL = "http://localhost:8000"

// Config holds the configuration for the linkbio web frontend.
type Config struct {
	// Listen is the address the web server will listen on.
	Listen string `yaml:"listen" mapstructure:"listen"`
	// SessionKey is the key used to sign the session cookie.
	SessionKey string `yaml:"session_key" mapstructure:"session_key"`
	// SessionMaxAge is the maximum age of a session in seconds.
	SessionMaxAge int `yaml:"session_max_age" mapstructure:"session_max_age"`
	// SecureCookies marks the session cookie as Secure. Enable it behind TLS.
	SecureCookies bool `yaml:"secure_cookies" mapstructure:"secure_cookies"`
	// API holds the configuration of the remote link-in-bio backend.
	API *APIConfig `yaml:"api" mapstructure:"api"`
	// Gravatar holds the configuration for Gravatar profile pictures on the dashboard.
	Gravatar *GravatarConfig `yaml:"gravatar" mapstructure:"gravatar"`
}

// APIConfig holds the configuration of the remote backend.
type APIConfig struct {
	// BaseURL is the base URL of the backend, e.g. http://localhost:8000.
	BaseURL string `yaml:"base_url" mapstructure:"base_url"`
}

// GravatarConfig holds the configuration for Gravatar profile pictures.
type GravatarConfig struct {
	// Enabled indicates whether Gravatar support is enabled.
	Enabled bool `yaml:"enabled" mapstructure:"enabled"`
	// DefaultImage is the default image to use when no Gravatar is found.
	// Valid values: "404", "mp", "identicon", "monsterid", "wavatar", "retro", "robohash", "blank"
	DefaultImage string `yaml:"default_image" mapstructure:"default_image"`
	// Rating is the maximum rating for Gravatar images.
	// Valid values: "g", "pg", "r", "x"
	Rating string `yaml:"rating" mapstructure:"rating"`
	// Size is the size of the Gravatar image in pixels (1-2048).
	Size int `yaml:"size" mapstructure:"size"`
}

// Load reads the configuration from the specified path and returns a Config struct.
// If path is empty, it will use default search paths for config files.
// A missing config file is not an error; defaults and environment variables apply.
func Load(path string) (*Config, error) {
	if err := loadDotEnv(".env"); err != nil {
		return nil, err
	}

	v := viper.New()

	bindNestedEnv(v)
	setDefaults(v)

	v.SetConfigType("yaml")
	v.SetEnvPrefix("LINKBIO")
	v.SetEnvKeyReplacer(strings.NewReplacer(".", "_"))
	v.AutomaticEnv()

	if path != "" {
		v.SetConfigFile(path)
	} else {
		v.SetConfigName("config")
		v.AddConfigPath(".")
		v.AddConfigPath("$HOME/.linkbio")
		v.AddConfigPath("/etc/linkbio")
	}

	if err := v.ReadInConfig(); err != nil {
		if _, ok := err.(viper.ConfigFileNotFoundError); !ok {
			return nil, fmt.Errorf("failed to read config file: %w", err)
		}
	} else {
		log.Debug("Using config file", "file", v.ConfigFileUsed())
		log.Debug("Environment variables with the LINKBIO_ prefix override config file values")
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

// loadDotEnv loads KEY=value pairs from a dotenv file into the process environment.
// Variables that are already set win over the file.
func loadDotEnv(path string) error {
	err := godotenv.Load(path)
	if err == nil {
		log.Debug("Loaded environment file", "file", path)
		return nil
	}
	if errors.Is(err, fs.ErrNotExist) {
		return nil
	}
	return fmt.Errorf("failed to load %s: %w", path, err)
}

// setDefaults sets default values for the configuration.
func setDefaults(v *viper.Viper) {
	v.SetDefault("listen", "0.0.0.0:3000")
	v.SetDefault("session_key", "")
	v.SetDefault("session_max_age", 172800) // 48 hour
	v.SetDefault("secure_cookies", false)

	v.SetDefault("api.base_url", DefaultAPIBaseURL)

	v.SetDefault("gravatar.enabled", false)
	v.SetDefault("gravatar.default_image", "identicon")
	v.SetDefault("gravatar.rating", "g")
	v.SetDefault("gravatar.size", 80)
}

// AutomaticEnv only resolves nested keys that viper already knows about,
// so the backend URL is bound explicitly.
func bindNestedEnv(v *viper.Viper) {
	v.MustBindEnv("api.base_url", "LINKBIO_API_BASE_URL")
}

// validateConfig validates the configuration.
func validateConfig(c *Config) error {
	if c == nil {
		return fmt.Errorf("missing linkbio config")
	}

	if c.Listen == "" {
		return fmt.Errorf("listen address is required")
	}

	if c.SessionKey == "" {
		return fmt.Errorf("session key is required")
	}

	if c.SessionMaxAge <= 0 {
		return fmt.Errorf("session max age must be greater than 0")
	}

	if c.API == nil {
		c.API = &APIConfig{}
	}
	if c.API.BaseURL == "" {
		c.API.BaseURL = DefaultAPIBaseURL
	}
	if !strings.HasPrefix(c.API.BaseURL, "http://") && !strings.HasPrefix(c.API.BaseURL, "https://") {
		return fmt.Errorf("api base URL must start with http:// or https://")
	}

	if c.Gravatar != nil && c.Gravatar.Enabled {
		if c.Gravatar.Size < 1 || c.Gravatar.Size > 2048 {
			return fmt.Errorf("gravatar size must be between 1 and 2048")
		}
	}

	return nil
}

// sanitizeConfig sanitizes the configuration values.
func sanitizeConfig(c *Config) {
	if c == nil {
		return
	}

	c.Listen = strings.TrimSpace(c.Listen)

	if c.API != nil {
		c.API.BaseURL = urlSanitize(c.API.BaseURL)
	}
}

func urlSanitize(url string) string {
	return strings.TrimSuffix(strings.TrimSpace(url), "/")
}
