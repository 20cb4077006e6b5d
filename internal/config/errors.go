package config

import "errors"

// Validation errors returned by [StructuredConfig.validate] when a
// configuration group is incomplete or invalid.
var (
	// ErrInvalidServerConfigs indicates invalid listener or dispatch settings
	// (for example, a port out of range or an unknown gateway match mode).
	ErrInvalidServerConfigs = errors.New("invalid server configuration")
	// ErrInvalidProxyConfigs indicates invalid relay settings or an
	// incomplete forward route.
	ErrInvalidProxyConfigs = errors.New("invalid proxy configuration")
	// ErrInvalidLogConfigs indicates an unknown logging mode.
	ErrInvalidLogConfigs = errors.New("invalid log configuration")
	// ErrInvalidMetricsConfigs indicates a malformed metrics path.
	ErrInvalidMetricsConfigs = errors.New("invalid metrics configuration")
	// ErrUnsupportedConfigFile is returned for config files that are neither
	// JSON nor YAML.
	ErrUnsupportedConfigFile = errors.New("unsupported config file format")
)
