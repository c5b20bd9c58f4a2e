package config

import (
	"os"
	"time"

	"github.com/spf13/pflag"
	"github.com/spf13/viper"

	"codeberg.org/mutker/oserr/internal/errors"
)

const (
	DefaultLogLevel            = LogLevelWarning
	DefaultJournalDB           = "/var/lib/oserr/journal.db"
	DefaultJournalBatchSize    = 16
	DefaultJournalBatchTimeout = 2 * time.Second

	defaultEnvPrefix = "OSERR"
	configEnv        = "OSERR_CONFIG"
)

var errFactory = errors.New()

type Config struct {
	LogLevel            LogLevel      `mapstructure:"log_level"`
	JSON                bool          `mapstructure:"json"`
	Journal             bool          `mapstructure:"journal"`
	JournalDB           string        `mapstructure:"journal_db"`
	JournalBatchSize    int           `mapstructure:"journal_batch_size"`
	JournalBatchTimeout time.Duration `mapstructure:"journal_batch_timeout"`
}

// flagKeys maps command line flags to configuration keys.
var flagKeys = map[string]string{
	"log-level":  "log_level",
	"json":       "json",
	"journal":    "journal",
	"journal-db": "journal_db",
}

// RegisterFlags adds the configuration flags to fs.
func RegisterFlags(fs *pflag.FlagSet) {
	fs.String("log-level", string(DefaultLogLevel), "Log level (debug, info, warning, error)")
	fs.Bool("json", false, "Print results as JSON")
	fs.Bool("journal", false, "Record failures in the journal database")
	fs.String("journal-db", DefaultJournalDB, "Path to the journal database")
}

// Load reads the configuration file, environment and flags, in increasing
// order of precedence. fs may be nil.
func Load(fs *pflag.FlagSet, opts ...Option) (*Config, error) {
	o := options{
		configPath: os.Getenv(configEnv),
		envPrefix:  defaultEnvPrefix,
	}
	for _, opt := range opts {
		if err := opt(&o); err != nil {
			return nil, errFactory.Wrap(errors.ErrInvalidConfig, err)
		}
	}

	v := viper.New()
	v.SetDefault("log_level", string(DefaultLogLevel))
	v.SetDefault("json", false)
	v.SetDefault("journal", false)
	v.SetDefault("journal_db", DefaultJournalDB)
	v.SetDefault("journal_batch_size", DefaultJournalBatchSize)
	v.SetDefault("journal_batch_timeout", DefaultJournalBatchTimeout)

	v.SetEnvPrefix(o.envPrefix)
	v.AutomaticEnv()

	v.SetConfigType("toml")
	if o.configPath != "" {
		v.SetConfigFile(o.configPath)
	} else {
		v.SetConfigName("oserr")
		v.AddConfigPath("/etc")
	}

	if err := v.ReadInConfig(); err != nil {
		if _, ok := err.(viper.ConfigFileNotFoundError); !ok {
			return nil, errFactory.Wrap(errors.ErrReadConfig, err)
		}
	}

	if fs != nil {
		for name, key := range flagKeys {
			f := fs.Lookup(name)
			if f == nil {
				continue
			}
			if err := v.BindPFlag(key, f); err != nil {
				return nil, errFactory.Wrap(errors.ErrBindFlags, err)
			}
		}
	}

	cfg := &Config{}
	if err := v.Unmarshal(cfg); err != nil {
		return nil, errFactory.Wrap(errors.ErrInvalidConfig, err)
	}

	if err := cfg.Validate(); err != nil {
		return nil, err
	}

	return cfg, nil
}

// Validate checks value ranges. "warn" is accepted as an alias of "warning".
func (c *Config) Validate() error {
	if c.LogLevel == "warn" {
		c.LogLevel = LogLevelWarning
	}
	if !c.LogLevel.IsValid() {
		return errFactory.WithData(errors.ErrInvalidLogLevel, c.LogLevel)
	}

	if c.JournalBatchSize < 1 {
		return errFactory.WithData(errors.ErrInvalidConfig, "journal_batch_size must be positive")
	}

	if c.JournalBatchTimeout <= 0 {
		return errFactory.WithData(errors.ErrInvalidInterval, c.JournalBatchTimeout)
	}

	return nil
}
