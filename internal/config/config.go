package config

import (
	"errors"
	"fmt"
	"strings"

	"github.com/spf13/viper"
)

// Config is the resolved CLI configuration.
type Config struct {
	Format   string `mapstructure:"format"`
	Out      string `mapstructure:"out"`
	Tables   string `mapstructure:"tables"`
	LogLevel string `mapstructure:"log_level"`
	Seed     int64  `mapstructure:"seed"`
	// HasSeed is true when a seed was set by a flag, the environment or the
	// config file. Without it generation is not reproducible.
	HasSeed bool `mapstructure:"-"`
}

// Load resolves configuration with priority: values already bound on v
// (flags), environment variables (KPISYNTH_*), the config file, defaults.
// path selects an explicit config file; when empty, kpisynth.yaml is looked
// up in the working directory and its absence is not an error.
func Load(v *viper.Viper, path string) (*Config, error) {
	if path != "" {
		v.SetConfigFile(path)
	} else {
		v.SetConfigName("kpisynth")
		v.SetConfigType("yaml")
		v.AddConfigPath(".")
	}

	v.SetEnvPrefix("KPISYNTH")
	v.SetEnvKeyReplacer(strings.NewReplacer(".", "_", "-", "_"))
	v.AutomaticEnv()
	for _, key := range keys {
		if err := v.BindEnv(key); err != nil {
			return nil, fmt.Errorf("binding env for %s: %w", key, err)
		}
	}

	setDefaults(v)

	if err := v.ReadInConfig(); err != nil {
		var notFound viper.ConfigFileNotFoundError
		if path != "" || !errors.As(err, &notFound) {
			return nil, fmt.Errorf("failed to read config file: %w", err)
		}
	}

	var cfg Config
	if err := v.Unmarshal(&cfg); err != nil {
		return nil, fmt.Errorf("failed to unmarshal config: %w", err)
	}
	cfg.HasSeed = v.IsSet("seed")

	if err := validateConfig(&cfg); err != nil {
		return nil, fmt.Errorf("config validation failed: %w", err)
	}
	return &cfg, nil
}

// keys are bound to the environment explicitly so Unmarshal sees them even
// when they have no default.
var keys = []string{"format", "out", "tables", "log_level", "seed"}

func setDefaults(v *viper.Viper) {
	v.SetDefault("format", "json")
	v.SetDefault("log_level", "warn")
	v.SetDefault("out", "")
	v.SetDefault("tables", "")
}

func validateConfig(cfg *Config) error {
	switch cfg.Format {
	case "json", "md":
	default:
		return fmt.Errorf("format must be json or md, got %q", cfg.Format)
	}
	switch cfg.LogLevel {
	case "debug", "info", "warn", "error":
	default:
		return fmt.Errorf("log_level must be debug, info, warn or error, got %q", cfg.LogLevel)
	}
	return nil
}
