// Package config loads application configuration from environment variables
// and an optional .env file. Defaults are declared as struct tags on the
// per-package config types and bound into viper by reflection.
package config
