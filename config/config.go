// Package config loads server configuration from defaults, an optional
// YAML file and ATTENDANCE_* environment variables, in increasing priority.
package config

import (
	"fmt"
	"strings"

	"github.com/spf13/viper"

	"github.com/warp/attendance-engine/generic"
)

type Config struct {
	Server      ServerConfig      `mapstructure:"server"`
	Database    DatabaseConfig    `mapstructure:"db"`
	Log         LogConfig         `mapstructure:"log"`
	Entitlement EntitlementConfig `mapstructure:"entitlement"`
}

type ServerConfig struct {
	Port         int      `mapstructure:"port"`
	AllowOrigins []string `mapstructure:"allow_origins"`
}

// DatabaseConfig selects the record store. Driver is "sqlite" or "memory".
type DatabaseConfig struct {
	Driver string `mapstructure:"driver"`
	Path   string `mapstructure:"path"`
}

// LogConfig drives logger.New. An empty File logs to stderr only.
type LogConfig struct {
	Level      string `mapstructure:"level"`
	Format     string `mapstructure:"format"`
	File       string `mapstructure:"file"`
	MaxSizeMB  int    `mapstructure:"max_size_mb"`
	MaxBackups int    `mapstructure:"max_backups"`
	MaxAgeDays int    `mapstructure:"max_age_days"`
}

// EntitlementConfig holds the balance conversion unit and how computed
// figures are rounded for callers that do not ask for a mode.
type EntitlementConfig struct {
	HoursPerDay   int    `mapstructure:"hours_per_day"`
	RoundingMode  string `mapstructure:"rounding_mode"`
	RoundingScale int32  `mapstructure:"rounding_scale"`
}

// Load reads configuration. path may be empty, in which case config.yaml is
// looked up in ./config and the working directory and may be absent.
func Load(path string) (*Config, error) {
	v := viper.New()

	v.SetDefault("server.port", 8080)
	v.SetDefault("server.allow_origins", []string{"http://localhost:5173", "http://localhost:8080"})

	v.SetDefault("db.driver", "sqlite")
	v.SetDefault("db.path", "./attendance.db")

	v.SetDefault("log.level", "info")
	v.SetDefault("log.format", "json")
	v.SetDefault("log.file", "")
	v.SetDefault("log.max_size_mb", 10)
	v.SetDefault("log.max_backups", 3)
	v.SetDefault("log.max_age_days", 28)

	v.SetDefault("entitlement.hours_per_day", 8)
	v.SetDefault("entitlement.rounding_mode", string(generic.RoundHalfUp))
	v.SetDefault("entitlement.rounding_scale", 2)

	if path != "" {
		v.SetConfigFile(path)
	} else {
		v.SetConfigName("config")
		v.SetConfigType("yaml")
		v.AddConfigPath("./config")
		v.AddConfigPath(".")
	}

	v.SetEnvPrefix("ATTENDANCE")
	v.SetEnvKeyReplacer(strings.NewReplacer(".", "_"))
	v.AutomaticEnv()

	if err := v.ReadInConfig(); err != nil {
		if _, ok := err.(viper.ConfigFileNotFoundError); !ok {
			return nil, fmt.Errorf("read config: %w", err)
		}
	}

	var cfg Config
	if err := v.Unmarshal(&cfg); err != nil {
		return nil, fmt.Errorf("decode config: %w", err)
	}

	if err := cfg.Validate(); err != nil {
		return nil, err
	}
	return &cfg, nil
}

// Validate rejects settings the server cannot start with.
func (c *Config) Validate() error {
	if c.Server.Port <= 0 || c.Server.Port > 65535 {
		return fmt.Errorf("invalid config: server.port must be within 1-65535, got %d", c.Server.Port)
	}
	switch c.Database.Driver {
	case "sqlite", "memory":
	default:
		return fmt.Errorf("invalid config: db.driver must be sqlite or memory, got %q", c.Database.Driver)
	}
	if c.Entitlement.HoursPerDay < 0 {
		return fmt.Errorf("invalid config: entitlement.hours_per_day must not be negative")
	}
	if _, err := generic.ParseRoundingMode(c.Entitlement.RoundingMode); err != nil {
		return fmt.Errorf("invalid config: entitlement.rounding_mode: %w", err)
	}
	return nil
}

// RoundingMode is the validated entitlement rounding mode.
func (c *Config) RoundingMode() generic.RoundingMode {
	mode, _ := generic.ParseRoundingMode(c.Entitlement.RoundingMode)
	return mode
}
