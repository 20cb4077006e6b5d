// SPDX-License-Identifier: Apache-2.0
// Copyright 2026 Rasul Khiriev

package config

import (
	"time"

	restlite "github.com/MKhiriev/go-rest-lite"
)

// StructuredConfig is the top-level configuration container for a RestLite
// server process. It is populated by merging values from environment
// variables, command-line flags, and an optional JSON or YAML file.
//
// Struct tags:
//   - envPrefix: prefix applied to all nested env tag lookups (caarlos0/env).
//   - env: direct environment variable name for scalar fields.
type StructuredConfig struct {
	// Server holds the listener address and dispatch settings.
	Server Server `envPrefix:"SERVER_"`

	// Proxy holds settings of the outbound relay used by forward routes.
	Proxy Proxy `envPrefix:"PROXY_"`

	// Log selects the logging mode and an optional rotating log file.
	Log Log `envPrefix:"LOG_"`

	// Metrics controls the Prometheus endpoint.
	Metrics Metrics `envPrefix:"METRICS_"`

	// Auth holds the bearer token settings used by JWT guards.
	Auth Auth `envPrefix:"AUTH_"`

	// Forwards lists gateway routes registered at startup.
	// Env: FORWARD_0_PATH, FORWARD_0_TO, FORWARD_0_SWAP, FORWARD_1_PATH, ...
	Forwards []Forward `envPrefix:"FORWARD_"`

	// DocsFile is where the route documentation is written at startup.
	// Empty disables generation.
	// Env: DOCS_FILE
	DocsFile string `env:"DOCS_FILE"`

	// ConfigFilePath is the optional path to a JSON or YAML configuration
	// file. When non-empty, the file is parsed and merged on top of the
	// values already loaded from environment variables and flags.
	// Populated via the CONFIG environment variable or the -c / -config flag.
	ConfigFilePath string `env:"CONFIG"`
}

// Server holds network and dispatch settings.
type Server struct {
	// Host is the interface the listener binds to.
	// Env: SERVER_HOST
	Host string `env:"HOST"`

	// Port is the TCP port of the listener.
	// Env: SERVER_PORT
	Port int `env:"PORT"`

	// ServiceName is printed in the startup banner.
	// Env: SERVER_SERVICE_NAME
	ServiceName string `env:"SERVICE_NAME"`

	// ResponseType selects how Response.Send serializes data: "json" or
	// anything else for raw passthrough.
	// Env: SERVER_RESPONSE_TYPE
	ResponseType string `env:"RESPONSE_TYPE"`

	// KeepWildcardCase keeps the case of captured path parameters.
	// Env: SERVER_KEEP_WILDCARD_CASE
	KeepWildcardCase bool `env:"KEEP_WILDCARD_CASE"`

	// GatewayMatch is "prefix" or "substring".
	// Env: SERVER_GATEWAY_MATCH
	GatewayMatch string `env:"GATEWAY_MATCH"`

	// BodyLimit caps the JSON request body read by the dispatcher, in bytes.
	// Env: SERVER_BODY_LIMIT
	BodyLimit int64 `env:"BODY_LIMIT"`
}

// Proxy holds settings of the outbound relay.
type Proxy struct {
	// Timeout bounds a single relayed request (e.g. "30s").
	// Env: PROXY_TIMEOUT
	Timeout time.Duration `env:"TIMEOUT"`

	// TempDir receives multipart uploads while they are relayed.
	// Env: PROXY_TEMP_DIR
	TempDir string `env:"TEMP_DIR"`
}

// Log holds logging settings.
type Log struct {
	// Level is one of "off", "gateway", "debug" or "error". "true" and
	// "false" are accepted as "gateway" and "off".
	// Env: LOG_LEVEL
	Level string `env:"LEVEL"`

	// File, when set, receives a copy of every entry with size based
	// rotation.
	// Env: LOG_FILE
	File string `env:"FILE"`
}

// Metrics holds the Prometheus endpoint settings.
type Metrics struct {
	// Path mounts the metrics handler, e.g. "/metrics". Empty disables it.
	// Env: METRICS_PATH
	Path string `env:"PATH"`
}

// Auth holds the JWT settings used by bearer token guards.
type Auth struct {
	// TokenSignKey is the HMAC key tokens are verified with.
	// Env: AUTH_TOKEN_SIGN_KEY
	TokenSignKey string `env:"TOKEN_SIGN_KEY"`

	// TokenIssuer is the expected "iss" claim.
	// Env: AUTH_TOKEN_ISSUER
	TokenIssuer string `env:"TOKEN_ISSUER"`

	// TokenDuration is the lifetime of tokens issued by the demo login route.
	// Env: AUTH_TOKEN_DURATION
	TokenDuration time.Duration `env:"TOKEN_DURATION"`
}

// Forward is a gateway route: requests under Path are relayed to To, with
// the path prefix optionally replaced by Swap.
type Forward struct {
	Path string `env:"PATH"`
	To   string `env:"TO"`
	Swap string `env:"SWAP"`
}

// GetStructuredConfig loads, merges, and validates the configuration from
// all available sources in the following priority order (last source wins
// for non-zero fields):
//  1. Environment variables
//  2. Command-line flags (args, usually os.Args[1:])
//  3. JSON or YAML file (path resolved from sources 1 and 2)
//
// Unset fields are filled with defaults before validation.
func GetStructuredConfig(args []string) (*StructuredConfig, error) {
	return newConfigBuilder().
		withEnv().
		withFlags(args).
		withFile().
		build()
}

// RestLite converts the loaded configuration into the server's own config.
func (cfg *StructuredConfig) RestLite() restlite.Config {
	return restlite.Config{
		ResponseType:     cfg.Server.ResponseType,
		Host:             cfg.Server.Host,
		Port:             cfg.Server.Port,
		ServiceName:      cfg.Server.ServiceName,
		KeepWildcardCase: cfg.Server.KeepWildcardCase,
		Logging:          cfg.Log.Level,
		LogFile:          cfg.Log.File,
		GatewayMatch:     cfg.Server.GatewayMatch,
		BodyLimit:        cfg.Server.BodyLimit,
		ProxyTimeout:     cfg.Proxy.Timeout,
		TempDir:          cfg.Proxy.TempDir,
		MetricsPath:      cfg.Metrics.Path,
	}
}
