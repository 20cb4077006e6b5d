package restlite

import (
	"net"
	"strconv"
	"time"
)

// ResponseJSON makes Response.Send encode data as JSON. Any other
// Config.ResponseType writes data as is.
const ResponseJSON = "json"

// Config holds the settings of a [Server]. Zero fields take the values of
// [DefaultConfig].
type Config struct {
	// ResponseType selects the serialization of Response.Send.
	ResponseType string

	// Host and Port form the listen address used by Serve.
	Host string
	Port int

	// ServiceName is printed in the startup banner.
	ServiceName string

	// KeepWildcardCase keeps captured path parameters in the case they were
	// sent in. Literal segments are always compared case-insensitively.
	KeepWildcardCase bool

	// Logging is "off", "gateway", "debug" or "error". "true" and "false"
	// are accepted as "gateway" and "off".
	Logging string

	// LogFile, when set, receives a copy of the log with rotation.
	LogFile string

	// GatewayMatch decides how forward keys are compared with request
	// paths: "prefix" requires the key to start the path on a segment
	// boundary, "substring" accepts the key anywhere in the path.
	GatewayMatch string

	// BodyLimit caps the size of a decoded JSON body in bytes.
	BodyLimit int64

	// ProxyTimeout bounds a relayed request. A negative value disables the
	// limit.
	ProxyTimeout time.Duration

	// TempDir receives multipart uploads while they are relayed. Empty means
	// the system temporary directory.
	TempDir string

	// MetricsPath, when set, serves Prometheus metrics on GET requests.
	MetricsPath string
}

// DefaultConfig returns the configuration used for unset fields.
func DefaultConfig() Config {
	return Config{
		ResponseType: ResponseJSON,
		Host:         "localhost",
		Port:         3000,
		ServiceName:  "RestLight Server",
		Logging:      "off",
		GatewayMatch: "prefix",
		BodyLimit:    2 << 20,
		ProxyTimeout: 30 * time.Second,
	}
}

func (c Config) withDefaults() Config {
	d := DefaultConfig()
	if c.ResponseType == "" {
		c.ResponseType = d.ResponseType
	}
	if c.Host == "" {
		c.Host = d.Host
	}
	if c.Port == 0 {
		c.Port = d.Port
	}
	if c.ServiceName == "" {
		c.ServiceName = d.ServiceName
	}
	if c.Logging == "" {
		c.Logging = d.Logging
	}
	if c.GatewayMatch == "" {
		c.GatewayMatch = d.GatewayMatch
	}
	if c.BodyLimit <= 0 {
		c.BodyLimit = d.BodyLimit
	}
	if c.ProxyTimeout == 0 {
		c.ProxyTimeout = d.ProxyTimeout
	}
	return c
}

// Addr returns the host:port the server listens on.
func (c Config) Addr() string {
	return net.JoinHostPort(c.Host, strconv.Itoa(c.Port))
}
