// Package config loads and validates runner configuration via Viper.
package config

import (
	"errors"
	"fmt"
	"strings"
	"time"

	"github.com/spf13/viper"
)

// Config captures all runner knobs loaded via Viper.
type Config struct {
	Regions   []string        `mapstructure:"regions"`
	Collector CollectorConfig `mapstructure:"collector"`
	Pacing    PacingConfig    `mapstructure:"pacing"`
	Log       LogConfig       `mapstructure:"log"`
	Metrics   MetricsConfig   `mapstructure:"metrics"`
}

// CollectorConfig points at the external per-region collection command.
type CollectorConfig struct {
	Command        string `mapstructure:"command"`
	TimeoutMinutes int    `mapstructure:"timeout_minutes"`
}

// PacingConfig controls the pause between consecutive regions.
type PacingConfig struct {
	IntervalSeconds int `mapstructure:"interval_seconds"`
}

// LogConfig configures the durable run log.
type LogConfig struct {
	File        string `mapstructure:"file"`
	Development bool   `mapstructure:"development"`
}

// MetricsConfig configures end-of-run metrics export.
type MetricsConfig struct {
	Textfile string `mapstructure:"textfile"`
}

// Load builds a Config from disk and environment. When path is empty the
// usual locations are searched and a missing file is tolerated; with an
// explicit path a read failure is fatal.
func Load(path string) (Config, error) {
	v := viper.New()
	v.SetEnvPrefix("REGIONHARVEST")
	v.SetEnvKeyReplacer(strings.NewReplacer(".", "_"))
	v.AutomaticEnv()

	setDefaults(v)

	if path != "" {
		v.SetConfigFile(path)
		if err := v.ReadInConfig(); err != nil {
			return Config{}, fmt.Errorf("read config: %w", err)
		}
	} else {
		v.SetConfigName("regionharvest")
		v.AddConfigPath(".")
		v.AddConfigPath("/etc/regionharvest")
		if err := v.ReadInConfig(); err != nil {
			var notFound viper.ConfigFileNotFoundError
			if !errors.As(err, &notFound) {
				return Config{}, fmt.Errorf("read config: %w", err)
			}
		}
	}

	var cfg Config
	if err := v.Unmarshal(&cfg); err != nil {
		return Config{}, fmt.Errorf("unmarshal config: %w", err)
	}

	if err := cfg.Validate(); err != nil {
		return Config{}, err
	}

	return cfg, nil
}

func setDefaults(v *viper.Viper) {
	v.SetDefault("regions", []string{
		"pays-de-la-loire",
		"bretagne",
		"normandie",
		"nouvelle-aquitaine",
	})
	v.SetDefault("collector.command", "")
	v.SetDefault("collector.timeout_minutes", 45)
	v.SetDefault("pacing.interval_seconds", 30)
	v.SetDefault("log.file", "regionharvest.log")
	v.SetDefault("log.development", true)
	v.SetDefault("metrics.textfile", "")
}

// Validate enforces required values and reasonable limits.
func (c Config) Validate() error {
	if len(c.Regions) == 0 {
		return fmt.Errorf("regions must list at least one region")
	}
	seen := make(map[string]struct{}, len(c.Regions))
	for _, r := range c.Regions {
		if strings.TrimSpace(r) == "" {
			return fmt.Errorf("regions must not contain empty names")
		}
		if _, dup := seen[r]; dup {
			return fmt.Errorf("regions contains duplicate %q", r)
		}
		seen[r] = struct{}{}
	}
	if c.Collector.Command == "" {
		return fmt.Errorf("collector.command must be set")
	}
	if c.Collector.TimeoutMinutes < 0 {
		return fmt.Errorf("collector.timeout_minutes must be >= 0")
	}
	if c.Pacing.IntervalSeconds < 0 {
		return fmt.Errorf("pacing.interval_seconds must be >= 0")
	}
	return nil
}

// CollectorTimeout converts the configured timeout into a duration; zero
// means no per-invocation deadline.
func (c Config) CollectorTimeout() time.Duration {
	return time.Duration(c.Collector.TimeoutMinutes) * time.Minute
}

// PacingInterval converts the configured inter-region pause into a duration.
func (c Config) PacingInterval() time.Duration {
	return time.Duration(c.Pacing.IntervalSeconds) * time.Second
}
