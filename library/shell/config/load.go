package config

import (
	"errors"
	"strings"

	"github.com/go-playground/validator/v10"
	"github.com/spf13/viper"
)

// EnvPrefix is the prefix of all environment variables read by Load.
const EnvPrefix = "LOANDESK"

var (
	ErrReadingConfigFileFailed = errors.New("reading config file failed")
	ErrDecodingConfigFailed    = errors.New("decoding config failed")
	ErrInvalidConfig           = errors.New("invalid config")
)

// Load reads the configuration from the optional YAML file at path and from the environment.
// Environment variables take precedence over values from the file; unset keys keep their defaults.
func Load(path string) (Config, error) {
	v := viper.New()
	setDefaults(v)

	v.SetEnvPrefix(EnvPrefix)
	v.SetEnvKeyReplacer(strings.NewReplacer(".", "_"))
	v.AutomaticEnv()

	if path != "" {
		v.SetConfigFile(path)

		if err := v.ReadInConfig(); err != nil {
			return Config{}, errors.Join(ErrReadingConfigFileFailed, err)
		}
	}

	var cfg Config
	if err := v.Unmarshal(&cfg); err != nil {
		return Config{}, errors.Join(ErrDecodingConfigFailed, err)
	}

	cfg.Log.Level = strings.ToLower(cfg.Log.Level)
	cfg.Auth.Strategy = strings.ToLower(cfg.Auth.Strategy)
	cfg.Database.Driver = strings.ToLower(cfg.Database.Driver)

	if err := validator.New().Struct(cfg); err != nil {
		return Config{}, errors.Join(ErrInvalidConfig, err)
	}

	return cfg, nil
}

// setDefaults registers every key, which also makes AutomaticEnv see it during Unmarshal.
func setDefaults(v *viper.Viper) {
	v.SetDefault("data.dir", "data")
	v.SetDefault("database.url", "")
	v.SetDefault("database.driver", DriverPGX)
	v.SetDefault("policy.fine_per_day", 0.50)
	v.SetDefault("policy.max_renewals", 2)
	v.SetDefault("policy.renewal_days", 7)
	v.SetDefault("policy.initial_loan_days", 7)
	v.SetDefault("auth.strategy", AuthStrategyPlaintext)
	v.SetDefault("log.level", "info")
}
