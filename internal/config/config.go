package config

import (
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"time"

	"github.com/spf13/viper"

	"github.com/matthieukhl/toposhop/internal/models"
)

// Fixed endpoints per run mode. There is deliberately no runtime override:
// development talks to the local stack, everything else to production.
const (
	devAPIBaseURL  = "http://localhost:3001"
	prodAPIBaseURL = "https://otp.babynounu.com"

	devAuthBaseURL  = "http://localhost:3000"
	prodAuthBaseURL = "https://api.oeil-du-topo-consulting.com"
)

type Config struct {
	Mode string          `mapstructure:"mode"`
	API  APIConfig       `mapstructure:"api"`
	Auth AuthConfig      `mapstructure:"auth"`
	Site models.SiteData `mapstructure:"site"`
}

type APIConfig struct {
	Timeout time.Duration `mapstructure:"timeout"`
}

type AuthConfig struct {
	TokenFile string `mapstructure:"token_file"`
}

// APIBaseURL returns the shop API endpoint for the configured mode.
func (c *Config) APIBaseURL() string {
	if c.Mode == "development" {
		return devAPIBaseURL
	}
	return prodAPIBaseURL
}

// AuthBaseURL returns the authentication endpoint for the configured mode.
func (c *Config) AuthBaseURL() string {
	if c.Mode == "development" {
		return devAuthBaseURL
	}
	return prodAuthBaseURL
}

// TokenFilePath resolves the token file location, defaulting to
// $HOME/.toposhop/token when not configured.
func (c *Config) TokenFilePath() (string, error) {
	if c.Auth.TokenFile != "" {
		return c.Auth.TokenFile, nil
	}
	home, err := os.UserHomeDir()
	if err != nil {
		return "", fmt.Errorf("failed to resolve home directory: %w", err)
	}
	return filepath.Join(home, ".toposhop", "token"), nil
}

// SiteData returns the configured site content, falling back to the shop's
// built-in defaults for any section the config leaves empty.
func (c *Config) SiteData() models.SiteData {
	site := models.DefaultSiteData()
	if c.Site.CompanyName != "" {
		site.CompanyName = c.Site.CompanyName
	}
	if c.Site.Slogan != "" {
		site.Slogan = c.Site.Slogan
	}
	if c.Site.Contact.Phone != "" {
		site.Contact.Phone = c.Site.Contact.Phone
	}
	if c.Site.Contact.Email != "" {
		site.Contact.Email = c.Site.Contact.Email
	}
	if c.Site.Contact.Address != "" {
		site.Contact.Address = c.Site.Contact.Address
	}
	if len(c.Site.Services) > 0 {
		site.Services = c.Site.Services
	}
	return site
}

// LoadConfig loads configuration from config.yaml and environment variables.
// A missing config file is not an error, defaults apply.
func LoadConfig() (*Config, error) {
	v := viper.New()

	// Set config file locations
	v.SetConfigName("config")
	v.SetConfigType("yaml")
	v.AddConfigPath("./deploy/")
	v.AddConfigPath("./")
	v.AddConfigPath("$HOME/.toposhop/")
	v.AddConfigPath("/etc/toposhop/")

	// Enable environment variable override with TOPOSHOP_ prefix
	v.SetEnvPrefix("TOPOSHOP")
	v.AutomaticEnv()

	v.SetDefault("mode", "production")
	v.SetDefault("api.timeout", 30*time.Second)

	if err := v.ReadInConfig(); err != nil {
		var notFound viper.ConfigFileNotFoundError
		if !errors.As(err, &notFound) {
			return nil, fmt.Errorf("failed to read config file: %w", err)
		}
	}

	var config Config
	if err := v.Unmarshal(&config); err != nil {
		return nil, fmt.Errorf("failed to unmarshal config: %w", err)
	}

	return &config, nil
}
