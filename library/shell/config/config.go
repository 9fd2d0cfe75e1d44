package config

import (
	"github.com/AntonStoeckl/library-lending-go/library/core"
)

const (
	DriverPGX  = "pgx"
	DriverSQL  = "sql"
	DriverSQLX = "sqlx"

	AuthStrategyPlaintext = "plaintext"
	AuthStrategyBcrypt    = "bcrypt"
)

// Config holds all application configuration.
type Config struct {
	Data     DataConfig     `mapstructure:"data" validate:"required"`
	Database DatabaseConfig `mapstructure:"database"`
	Policy   PolicyConfig   `mapstructure:"policy" validate:"required"`
	Auth     AuthConfig     `mapstructure:"auth" validate:"required"`
	Log      LogConfig      `mapstructure:"log" validate:"required"`
}

// DataConfig locates the text record files.
type DataConfig struct {
	Dir string `mapstructure:"dir" validate:"required"`
}

// DatabaseConfig selects the PostgreSQL loan store. An empty URL selects the in-memory store.
type DatabaseConfig struct {
	URL    string `mapstructure:"url" validate:"omitempty,url"`
	Driver string `mapstructure:"driver" validate:"required,oneof=pgx sql sqlx"`
}

// PolicyConfig carries the fine and renewal rules. FinePerDay is in currency units, e.g. 0.50.
type PolicyConfig struct {
	FinePerDay      float64 `mapstructure:"fine_per_day" validate:"gte=0"`
	MaxRenewals     int     `mapstructure:"max_renewals" validate:"gte=0"`
	RenewalDays     int     `mapstructure:"renewal_days" validate:"gt=0"`
	InitialLoanDays int     `mapstructure:"initial_loan_days" validate:"gt=0"`
}

// AuthConfig selects how stored secrets are compared.
type AuthConfig struct {
	Strategy string `mapstructure:"strategy" validate:"required,oneof=plaintext bcrypt"`
}

// LogConfig contains the logging settings.
type LogConfig struct {
	Level string `mapstructure:"level" validate:"required,oneof=debug info warn error"`
}

// UsesPostgres reports whether a database URL is configured.
func (c Config) UsesPostgres() bool {
	return c.Database.URL != ""
}

// Policy converts the policy section into a core.Policy.
func (c PolicyConfig) Policy() core.Policy {
	return core.Policy{
		FinePerDay:      core.MoneyFromFloat(c.FinePerDay),
		MaxRenewals:     c.MaxRenewals,
		RenewalDays:     c.RenewalDays,
		InitialLoanDays: c.InitialLoanDays,
	}
}
