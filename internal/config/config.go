// Package config defines the application configuration and loads it from a
// YAML file with environment overrides.
package config

import (
	"fmt"
	"io"
	"strings"

	"github.com/iwvelando/mortgage-calculator/pkg/constants"
	"github.com/iwvelando/mortgage-calculator/pkg/validation"
	"github.com/spf13/viper"
	"go.uber.org/multierr"
)

// Configuration holds all configuration for mortgage-calculator.
type Configuration struct {
	InterestRate InterestRateConfig `yaml:"interestRate"`
	Redis        RedisConfig        `yaml:"redis,omitempty"`
	Logging      LoggingConfig      `yaml:"logging,omitempty"`
	Output       OutputConfig       `yaml:"output,omitempty"`
}

// InterestRateConfig controls the process-wide default rate.
type InterestRateConfig struct {
	Default float64 `yaml:"default"`
	Store   string  `yaml:"store"` // memory, redis
}

// RedisConfig locates the Redis instance backing the rate store.
type RedisConfig struct {
	Address  string `yaml:"address"`
	Password string `yaml:"password,omitempty"`
	DB       int    `yaml:"db"`
	Key      string `yaml:"key"`
}

// LoggingConfig holds logging configuration options
type LoggingConfig struct {
	Level      string `yaml:"level,omitempty"`      // debug, info, warn, error
	Format     string `yaml:"format,omitempty"`     // json, console
	OutputFile string `yaml:"outputFile,omitempty"` // optional file output
}

// OutputConfig holds output format configuration options
type OutputConfig struct {
	Format string `yaml:"format,omitempty"` // pretty, csv
}

func newViper() *viper.Viper {
	v := viper.New()
	v.SetConfigType("yml")
	v.SetEnvPrefix(constants.EnvPrefix)
	v.SetEnvKeyReplacer(strings.NewReplacer(".", "_"))
	v.AutomaticEnv()

	// Defaults register every key so environment overrides apply even when
	// the file omits them.
	v.SetDefault("interestRate.default", constants.DefaultInterestRate)
	v.SetDefault("interestRate.store", constants.RateStoreMemory)
	v.SetDefault("redis.address", "localhost:6379")
	v.SetDefault("redis.password", "")
	v.SetDefault("redis.db", 0)
	v.SetDefault("redis.key", constants.DefaultRedisRateKey)
	v.SetDefault("logging.level", "")
	v.SetDefault("logging.format", "")
	v.SetDefault("logging.outputFile", "")
	v.SetDefault("output.format", "")
	return v
}

// LoadConfiguration takes a file path as input and loads the YAML-formatted
// configuration there. An empty path yields defaults plus environment
// overrides.
func LoadConfiguration(configPath string) (*Configuration, error) {
	v := newViper()
	if configPath != "" {
		v.SetConfigFile(configPath)
		if err := v.ReadInConfig(); err != nil {
			return nil, fmt.Errorf("error reading config file, %s", err)
		}
	}
	return decode(v)
}

// LoadConfigurationFromReader loads the YAML-formatted configuration from r.
func LoadConfigurationFromReader(r io.Reader) (*Configuration, error) {
	v := newViper()
	if err := v.ReadConfig(r); err != nil {
		return nil, fmt.Errorf("error reading config data, %s", err)
	}
	return decode(v)
}

func decode(v *viper.Viper) (*Configuration, error) {
	var configuration Configuration
	if err := v.Unmarshal(&configuration); err != nil {
		return nil, fmt.Errorf("unable to decode into struct, %s", err)
	}
	configuration.InterestRate.Store = strings.ToLower(strings.TrimSpace(configuration.InterestRate.Store))
	return &configuration, nil
}

// Validate reports every problem in the configuration at once.
func (c *Configuration) Validate() error {
	var err error

	if !validation.InterestRateInBounds(c.InterestRate.Default) {
		err = multierr.Append(err, fmt.Errorf("interestRate.default %.3f must be greater than 0 and at most 100", c.InterestRate.Default))
	}

	err = multierr.Append(err, validation.ValidateRateStore(c.InterestRate.Store))
	if c.InterestRate.Store == constants.RateStoreRedis && strings.TrimSpace(c.Redis.Address) == "" {
		err = multierr.Append(err, fmt.Errorf("redis.address is required when interestRate.store is %s", constants.RateStoreRedis))
	}

	if c.Redis.DB < 0 {
		err = multierr.Append(err, fmt.Errorf("redis.db must not be negative, got %d", c.Redis.DB))
	}

	if lerr := c.Logging.Validate(); lerr != nil {
		err = multierr.Append(err, lerr)
	}

	if c.Output.Format != "" {
		err = multierr.Append(err, validation.ValidateOutputFormat(c.Output.Format))
	}

	return err
}

// Validate checks the level and format names.
func (l LoggingConfig) Validate() error {
	var err error
	switch strings.ToLower(l.Level) {
	case "", "debug", "info", "warn", "warning", "error":
	default:
		err = multierr.Append(err, fmt.Errorf("invalid log level: %s", l.Level))
	}
	switch l.Format {
	case "", "json", "console":
	default:
		err = multierr.Append(err, fmt.Errorf("invalid log format: %s", l.Format))
	}
	return err
}
