// Package config loads folio settings with viper: defaults, an optional
// folio.yaml, .env files, FOLIO_* environment variables and command-line
// flags, in increasing precedence.
package config
