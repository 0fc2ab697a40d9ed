// SPDX-License-Identifier: Apache-2.0
// Copyright 2026 Rasul Khiriev

package config

import (
	"os"
	"time"
)

// StructuredConfig is the top-level configuration of the sync server. It is
// populated by merging environment variables, command-line flags, an
// optional JSON file and built-in defaults.
//
// Struct tags:
//   - envPrefix: prefix applied to all nested env tag lookups (caarlos0/env).
//   - env:       direct environment variable name for scalar fields.
type StructuredConfig struct {
	// App holds session token and request integrity settings.
	App App `envPrefix:"APP_"`

	// Sync holds the synchronization engine settings.
	Sync Sync `envPrefix:"SYNC_"`

	// Storage holds the relational database settings.
	Storage Storage `envPrefix:"STORAGE_"`

	// Server holds listen addresses and timeouts.
	Server Server `envPrefix:"SERVER_"`

	// Log holds log level and optional file sink settings.
	Log Log `envPrefix:"LOG_"`

	// JSONFilePath is the optional path to a JSON configuration file.
	// Populated via the CONFIG environment variable or the -c / -config flag.
	JSONFilePath string `env:"CONFIG"`
}

// App holds application-level configuration values that control session
// tokens, request integrity and versioning.
type App struct {
	// TokenSignKey is the HMAC key used to sign and verify session JWTs.
	// Env: APP_TOKEN_SIGN_KEY
	TokenSignKey string `env:"TOKEN_SIGN_KEY"`

	// TokenIssuer is the "iss" claim embedded in every issued JWT.
	// Env: APP_TOKEN_ISSUER
	TokenIssuer string `env:"TOKEN_ISSUER"`

	// TokenDuration is how long a session JWT stays valid.
	// Env: APP_TOKEN_DURATION
	TokenDuration time.Duration `env:"TOKEN_DURATION"`

	// HashKey enables the HashSHA256 request/response integrity header
	// when non-empty.
	// Env: APP_HASH_KEY
	HashKey string `env:"HASH_KEY"`

	// Version overrides the linker-provided build version reported by the
	// version endpoint.
	// Env: APP_VERSION
	Version string `env:"VERSION"`
}

// Sync holds settings of the synchronization engine.
type Sync struct {
	// TokenSecret and TokenSalt derive the sync cursor sealing key.
	// Changing either invalidates every outstanding cursor.
	// Env: SYNC_TOKEN_SECRET, SYNC_TOKEN_SALT
	TokenSecret string `env:"TOKEN_SECRET"`
	TokenSalt   string `env:"TOKEN_SALT"`

	// KeyIterations is the PBKDF2 iteration count for the sealing key.
	// Env: SYNC_KEY_ITERATIONS
	KeyIterations int `env:"KEY_ITERATIONS"`

	// MaxLimit caps the number of items retrieved by one sync. It is also
	// the page size used when a request omits the limit.
	// Env: SYNC_MAX_LIMIT
	MaxLimit int `env:"MAX_LIMIT"`

	// MaxItems caps the number of submissions accepted in one sync.
	// Env: SYNC_MAX_ITEMS
	MaxItems int `env:"MAX_ITEMS"`

	// GateWait bounds how long a sync waits for another sync of the same
	// account to finish. Zero is unset and takes the default; a negative
	// value fails immediately instead.
	// Env: SYNC_GATE_WAIT
	GateWait time.Duration `env:"GATE_WAIT"`
}

// Storage groups the configuration for the persistence backend.
type Storage struct {
	// DB holds the relational database connection settings.
	DB DB `envPrefix:"DB_"`
}

// DB holds connection settings for the relational database backend.
type DB struct {
	// DSN selects both the backend and the connection. PostgreSQL URLs
	// ("postgres://...") use pgx; "file:" URIs and paths ending in ".db"
	// use SQLite.
	// Env: STORAGE_DB_DATABASE_URI
	DSN string `env:"DATABASE_URI"`
}

// Server holds network and timeout settings for the inbound transport layer.
type Server struct {
	// HTTPAddress is the TCP address of the HTTP API ("host:port").
	// Env: SERVER_ADDRESS
	HTTPAddress string `env:"ADDRESS"`

	// GRPCAddress is the TCP address of the gRPC API ("host:port").
	// Env: SERVER_GRPC_ADDRESS
	GRPCAddress string `env:"GRPC_ADDRESS"`

	// RequestTimeout is the maximum duration of a single inbound request.
	// Env: SERVER_REQUEST_TIMEOUT
	RequestTimeout time.Duration `env:"REQUEST_TIMEOUT"`
}

// Log holds logging settings.
type Log struct {
	// Level is a zerolog level name ("debug", "info", ...).
	// Env: LOG_LEVEL
	Level string `env:"LEVEL"`

	// File enables a rotating JSON log file in addition to stdout.
	// Env: LOG_FILE
	File string `env:"FILE"`

	// MaxSizeMB and MaxBackups tune rotation of File.
	// Env: LOG_MAX_SIZE_MB, LOG_MAX_BACKUPS
	MaxSizeMB  int `env:"MAX_SIZE_MB"`
	MaxBackups int `env:"MAX_BACKUPS"`
}

// GetStructuredConfig loads, merges, and validates the server configuration.
// For every field the first non-zero value wins, in this order:
//  1. Environment variables
//  2. Command-line flags
//  3. JSON file (path resolved from sources 1 and 2)
//  4. Built-in defaults
func GetStructuredConfig() (*StructuredConfig, error) {
	return newConfigBuilder().
		withEnv().
		withFlags(os.Args[1:]).
		withJSON().
		withDefaults().
		build()
}
