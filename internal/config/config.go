package config

import (
	"errors"
	"fmt"
	"io/fs"
	"time"

	"github.com/spf13/viper"
)

type Config struct {
	Port        string        `mapstructure:"PORT"`
	Env         string        `mapstructure:"ENV"`
	APIBaseURL  string        `mapstructure:"HOME_ASSIGNMENT_API_BASE"`
	HTTPTimeout time.Duration `mapstructure:"HTTP_TIMEOUT"`
	// QuoteTimeout bounds the venue fetches of one quote.
	QuoteTimeout time.Duration `mapstructure:"QUOTE_TIMEOUT"`
	// MaxDeliveryDistance is the hard cap in meters, 0 derives it from the
	// venue's distance ranges.
	MaxDeliveryDistance int     `mapstructure:"MAX_DELIVERY_DISTANCE"`
	UpstreamRPS         float64 `mapstructure:"UPSTREAM_RPS"`
	UpstreamBurst       int     `mapstructure:"UPSTREAM_BURST"`
	// VenueFixtures, when set, serves venues from a YAML file instead of the API.
	VenueFixtures string `mapstructure:"VENUE_FIXTURES"`

	LogLevel      string `mapstructure:"LOG_LEVEL"`
	LogFormat     string `mapstructure:"LOG_FORMAT"`
	LogOutput     string `mapstructure:"LOG_OUTPUT"`
	LogMaxSizeMB  int    `mapstructure:"LOG_MAX_SIZE_MB"`
	LogMaxAgeDays int    `mapstructure:"LOG_MAX_AGE_DAYS"`
}

var defaults = map[string]any{
	"PORT":                     "8000",
	"ENV":                      "development",
	"HOME_ASSIGNMENT_API_BASE": "https://consumer-api.development.dev.woltapi.com",
	"HTTP_TIMEOUT":             "8s",
	"QUOTE_TIMEOUT":            "5s",
	"MAX_DELIVERY_DISTANCE":    2000,
	"UPSTREAM_RPS":             20.0,
	"UPSTREAM_BURST":           40,
	"VENUE_FIXTURES":           "",
	"LOG_LEVEL":                "info",
	"LOG_FORMAT":               "json",
	"LOG_OUTPUT":               "stdout",
	"LOG_MAX_SIZE_MB":          100,
	"LOG_MAX_AGE_DAYS":         7,
}

// Load reads .env when present, then the environment, over the defaults.
func Load() (Config, error) {
	return load(".env")
}

func load(file string) (Config, error) {
	v := viper.New()
	v.SetConfigFile(file)
	v.SetConfigType("env")
	v.AutomaticEnv()

	for k, val := range defaults {
		v.SetDefault(k, val)
	}

	if err := v.ReadInConfig(); err != nil {
		var notFound viper.ConfigFileNotFoundError
		if !errors.As(err, &notFound) && !errors.Is(err, fs.ErrNotExist) {
			return Config{}, fmt.Errorf("read %s: %w", file, err)
		}
	}

	var cfg Config
	if err := v.Unmarshal(&cfg); err != nil {
		return Config{}, err
	}
	return cfg, cfg.Validate()
}

func (c Config) Validate() error {
	switch {
	case c.Port == "":
		return errors.New("PORT is required")
	case c.VenueFixtures == "" && c.APIBaseURL == "":
		return errors.New("HOME_ASSIGNMENT_API_BASE is required")
	case c.HTTPTimeout <= 0:
		return errors.New("HTTP_TIMEOUT must be positive")
	case c.QuoteTimeout <= 0:
		return errors.New("QUOTE_TIMEOUT must be positive")
	case c.MaxDeliveryDistance < 0:
		return errors.New("MAX_DELIVERY_DISTANCE cannot be negative")
	case c.UpstreamRPS < 0 || c.UpstreamBurst < 0:
		return errors.New("UPSTREAM_RPS and UPSTREAM_BURST cannot be negative")
	}
	return nil
}
