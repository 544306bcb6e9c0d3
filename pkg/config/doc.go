// Package config loads environment-backed configuration structs using
// github.com/caarlos0/env field tags, with optional .env file support for
// local development via godotenv.
package config
