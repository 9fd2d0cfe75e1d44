// Package config loads the loandesk configuration and builds PostgreSQL connections from it.
//
// Configuration is read with viper from an optional YAML file and from environment variables
// prefixed with LOANDESK_ (a dot in a key becomes an underscore, e.g. LOANDESK_DATABASE_URL),
// then validated with go-playground/validator.
//
// This package is part of the shell (infrastructure) layer.
package config
