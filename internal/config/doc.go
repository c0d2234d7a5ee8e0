// Package config manages user-level settings stored at
// ~/.config/project/config.json. It bootstraps an empty file on first use,
// layers environment variables and command-line flags over the file through
// Viper, and validates the file against an embedded JSON schema.
package config
