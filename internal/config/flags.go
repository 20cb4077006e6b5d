package config

import (
	"errors"
	"flag"
	"net"
	"strconv"
	"strings"
	"time"
)

// NetAddress holds structured network address data for host and port.
// It implements the flag.Value interface.
type NetAddress struct {
	Host string
	Port int
}

// ForwardList collects repeated -forward flags.
// It implements the flag.Value interface.
type ForwardList []Forward

// ParseFlags parses all configuration flags from args.
//
// Flags:
//
//	-a server address in format [host]:[port]
//	-service-name name printed in the startup banner
//	-response-type json or raw
//	-keep-wildcard-case keep the case of captured path parameters
//	-gateway-match prefix or substring
//	-body-limit JSON body limit in bytes
//	-proxy-timeout relay timeout (e.g., "30s", "1m")
//	-temp-dir directory for relayed uploads
//	-log-level off, gateway, debug or error
//	-log-file rotating log file path
//	-metrics-path Prometheus endpoint path
//	-token-sign-key JWT signing key
//	-token-issuer JWT issuer
//	-token-duration JWT lifetime (e.g., "1h")
//	-forward gateway route in format path=target[,swap] (repeatable)
//	-docs route documentation output file
//	-c/-config json or yaml file path with configs
func ParseFlags(args []string) (*StructuredConfig, error) {
	var serverAddress NetAddress
	var forwards ForwardList
	var serviceName, responseType, gatewayMatch string
	var keepWildcardCase bool
	var bodyLimit int64
	var proxyTimeout, tokenDuration time.Duration
	var tempDir string
	var logLevel, logFile string
	var metricsPath string
	var tokenSignKey, tokenIssuer string
	var docsFile string
	var configPath string

	fs := flag.NewFlagSet("restlite", flag.ContinueOnError)

	fs.Var(&serverAddress, "a", "Net address host:port")
	fs.StringVar(&serviceName, "service-name", "", "Service name")
	fs.StringVar(&responseType, "response-type", "", "Response type (json or raw)")
	fs.BoolVar(&keepWildcardCase, "keep-wildcard-case", false, "Keep the case of captured path parameters")
	fs.StringVar(&gatewayMatch, "gateway-match", "", "Gateway match mode (prefix or substring)")
	fs.Int64Var(&bodyLimit, "body-limit", 0, "JSON body limit in bytes")
	fs.DurationVar(&proxyTimeout, "proxy-timeout", 0, "Relay timeout (e.g., 30s, 1m)")
	fs.StringVar(&tempDir, "temp-dir", "", "Directory for relayed uploads")
	fs.StringVar(&logLevel, "log-level", "", "Logging mode (off, gateway, debug, error)")
	fs.StringVar(&logFile, "log-file", "", "Rotating log file path")
	fs.StringVar(&metricsPath, "metrics-path", "", "Prometheus endpoint path")
	fs.StringVar(&tokenSignKey, "token-sign-key", "", "Token signing key")
	fs.StringVar(&tokenIssuer, "token-issuer", "", "Token issuer")
	fs.DurationVar(&tokenDuration, "token-duration", 0, "Token duration (e.g., 1h, 30m)")
	fs.Var(&forwards, "forward", "Gateway route path=target[,swap], repeatable")
	fs.StringVar(&docsFile, "docs", "", "Route documentation output file")
	fs.StringVar(&configPath, "c", "", "JSON or YAML config file path")
	fs.StringVar(&configPath, "config", "", "JSON or YAML config file path (alias)")

	if err := fs.Parse(args); err != nil {
		return nil, err
	}

	return &StructuredConfig{
		Server: Server{
			Host:             serverAddress.Host,
			Port:             serverAddress.Port,
			ServiceName:      serviceName,
			ResponseType:     responseType,
			KeepWildcardCase: keepWildcardCase,
			GatewayMatch:     gatewayMatch,
			BodyLimit:        bodyLimit,
		},
		Proxy: Proxy{
			Timeout: proxyTimeout,
			TempDir: tempDir,
		},
		Log: Log{
			Level: logLevel,
			File:  logFile,
		},
		Metrics: Metrics{
			Path: metricsPath,
		},
		Auth: Auth{
			TokenSignKey:  tokenSignKey,
			TokenIssuer:   tokenIssuer,
			TokenDuration: tokenDuration,
		},
		Forwards:       forwards,
		DocsFile:       docsFile,
		ConfigFilePath: configPath,
	}, nil
}

// String returns a canonical host:port string for a NetAddress.
// If neither Host nor Port are set, it returns an empty string.
func (a *NetAddress) String() string {
	if a.Host == "" && a.Port == 0 {
		return ""
	}

	return a.Host + ":" + strconv.Itoa(a.Port)
}

// Set parses the input string of form host:port and populates the NetAddress.
// It validates the port range, checks IP correctness unless host is
// "localhost" or empty, and returns an error if the format or values are
// invalid.
func (a *NetAddress) Set(s string) error {
	hostAndPort := strings.Split(s, ":")
	if len(hostAndPort) != 2 {
		return errors.New("need address in a form `host:port`")
	}

	host := hostAndPort[0]
	port, err := strconv.Atoi(hostAndPort[1])
	if err != nil {
		return err
	}

	if port < 1 || port > 65535 {
		return errors.New("port number must be in range 1-65535")
	}

	if host != "localhost" && host != "" {
		ip := net.ParseIP(host)
		if ip == nil {
			return errors.New("incorrect IP-address provided")
		}
	}

	a.Host = host
	a.Port = port
	return nil
}

// String joins the collected routes back into flag form.
func (l *ForwardList) String() string {
	parts := make([]string, 0, len(*l))
	for _, f := range *l {
		s := f.Path + "=" + f.To
		if f.Swap != "" {
			s += "," + f.Swap
		}
		parts = append(parts, s)
	}
	return strings.Join(parts, " ")
}

// Set parses "path=target[,swap]" and appends the route.
func (l *ForwardList) Set(s string) error {
	path, rest, ok := strings.Cut(s, "=")
	if !ok || path == "" || rest == "" {
		return errors.New("need forward in a form `path=target[,swap]`")
	}

	target, swap, _ := strings.Cut(rest, ",")
	if target == "" {
		return errors.New("forward target is empty")
	}

	*l = append(*l, Forward{Path: path, To: target, Swap: swap})
	return nil
}
