package config

import (
	"errors"
	"fmt"
	"os"
	"strings"

	"github.com/joho/godotenv"
	"github.com/spf13/pflag"
	"github.com/spf13/viper"
)

// EnvPrefix prefixes every environment override.
const EnvPrefix = "QUICKDOCS"

// Options controls where Load looks.
type Options struct {
	// ConfigFile is an explicit config file. When empty, quickdocs.yaml is
	// searched for and a missing file is not an error.
	ConfigFile string

	// EnvFile is loaded into the environment before reading variables.
	// Defaults to ".env"; a missing file is ignored. Variables already set
	// in the environment are not overwritten.
	EnvFile string

	// Flags are bound over every other source. See FlagKeys.
	Flags *pflag.FlagSet
}

// FlagKeys maps command-line flag names to config keys.
var FlagKeys = map[string]string{
	"db":           "store.dsn",
	"driver":       "store.driver",
	"timeout":      "query.timeout",
	"catalog":      "catalog.path",
	"log-level":    "logging.level",
	"log-format":   "logging.format",
	"metrics-addr": "metrics.addr",
}

// Load builds the configuration from defaults, file, environment and flags.
func Load(opts Options) (*Config, error) {
	if err := loadEnvFile(opts.EnvFile); err != nil {
		return nil, err
	}

	v := viper.New()
	setDefaults(v)

	if opts.ConfigFile != "" {
		v.SetConfigFile(opts.ConfigFile)
	} else {
		v.SetConfigName("quickdocs")
		v.SetConfigType("yaml")
		v.AddConfigPath(".")
		v.AddConfigPath("./configs")
	}

	if err := v.ReadInConfig(); err != nil {
		var notFound viper.ConfigFileNotFoundError
		if opts.ConfigFile != "" || !errors.As(err, &notFound) {
			return nil, fmt.Errorf("read config: %w", err)
		}
	}

	v.SetEnvPrefix(EnvPrefix)
	v.SetEnvKeyReplacer(strings.NewReplacer(".", "_", "-", "_"))
	v.AutomaticEnv()

	if opts.Flags != nil {
		for name, key := range FlagKeys {
			if f := opts.Flags.Lookup(name); f != nil {
				if err := v.BindPFlag(key, f); err != nil {
					return nil, fmt.Errorf("bind flag %s: %w", name, err)
				}
			}
		}
	}

	var cfg Config
	if err := v.Unmarshal(&cfg); err != nil {
		return nil, fmt.Errorf("unmarshal config: %w", err)
	}

	if err := cfg.Validate(); err != nil {
		return nil, fmt.Errorf("invalid configuration: %w", err)
	}
	return &cfg, nil
}

// Default returns the configuration with only built-in defaults applied.
func Default() *Config {
	return &Config{
		Store: StoreConfig{
			Driver:       DefaultDriver,
			DSN:          DefaultDSN,
			MaxOpenConns: DefaultMaxOpenConns,
		},
		Query:   QueryConfig{Timeout: DefaultTimeout},
		Logging: LoggingConfig{Level: DefaultLogLevel, Format: DefaultLogFormat},
	}
}

func setDefaults(v *viper.Viper) {
	d := Default()
	v.SetDefault("store.driver", d.Store.Driver)
	v.SetDefault("store.dsn", d.Store.DSN)
	v.SetDefault("store.max_open_conns", d.Store.MaxOpenConns)
	v.SetDefault("query.timeout", d.Query.Timeout)
	v.SetDefault("catalog.path", "")
	v.SetDefault("logging.level", d.Logging.Level)
	v.SetDefault("logging.format", d.Logging.Format)
	v.SetDefault("metrics.addr", "")
}

func loadEnvFile(path string) error {
	if path == "" {
		path = ".env"
	}
	if _, err := os.Stat(path); err != nil {
		if errors.Is(err, os.ErrNotExist) {
			return nil
		}
		return fmt.Errorf("stat env file: %w", err)
	}
	if err := godotenv.Load(path); err != nil {
		return fmt.Errorf("load env file %s: %w", path, err)
	}
	return nil
}
