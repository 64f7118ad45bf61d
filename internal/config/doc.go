// Package config resolves the reporter's configuration from its three
// sources: command-line flags, CLOVER_* environment variables (optionally via
// a .env file), and an optional config.yaml. Precedence is flags over env
// over file, with typed defaults underneath.
package config
