package config

import (
	"encoding/json"
	"fmt"
	"os"
	"path/filepath"
	"strings"
	"time"

	"gopkg.in/yaml.v3"
)

// fileConfig is the on-disk shape shared by JSON and YAML files.
type fileConfig struct {
	Server struct {
		Host             string `json:"host" yaml:"host"`
		Port             int    `json:"port" yaml:"port"`
		ServiceName      string `json:"service_name" yaml:"service_name"`
		ResponseType     string `json:"response_type" yaml:"response_type"`
		KeepWildcardCase bool   `json:"keep_wildcard_case" yaml:"keep_wildcard_case"`
		GatewayMatch     string `json:"gateway_match" yaml:"gateway_match"`
		BodyLimit        int64  `json:"body_limit" yaml:"body_limit"`
	} `json:"server,omitempty" yaml:"server,omitempty"`

	Proxy struct {
		Timeout Duration `json:"timeout" yaml:"timeout"`
		TempDir string   `json:"temp_dir" yaml:"temp_dir"`
	} `json:"proxy,omitempty" yaml:"proxy,omitempty"`

	Log struct {
		Level string `json:"level" yaml:"level"`
		File  string `json:"file" yaml:"file"`
	} `json:"log,omitempty" yaml:"log,omitempty"`

	Metrics struct {
		Path string `json:"path" yaml:"path"`
	} `json:"metrics,omitempty" yaml:"metrics,omitempty"`

	Auth struct {
		TokenSignKey  string   `json:"token_sign_key" yaml:"token_sign_key"`
		TokenIssuer   string   `json:"token_issuer" yaml:"token_issuer"`
		TokenDuration Duration `json:"token_duration" yaml:"token_duration"`
	} `json:"auth,omitempty" yaml:"auth,omitempty"`

	Forwards []struct {
		Path string `json:"path" yaml:"path"`
		To   string `json:"to" yaml:"to"`
		Swap string `json:"swap" yaml:"swap"`
	} `json:"forwards,omitempty" yaml:"forwards,omitempty"`

	DocsFile string `json:"docs_file" yaml:"docs_file"`
}

// parseFile reads a config file, picking the decoder by extension:
// .json, or .yaml/.yml.
func parseFile(path string) (*StructuredConfig, error) {
	switch strings.ToLower(filepath.Ext(path)) {
	case ".json":
		return parseJSON(path)
	case ".yaml", ".yml":
		return parseYAML(path)
	default:
		return nil, fmt.Errorf("%w: %s", ErrUnsupportedConfigFile, path)
	}
}

func parseJSON(jsonFilePath string) (*StructuredConfig, error) {
	jsonFile, err := os.Open(jsonFilePath)
	if err != nil {
		return nil, fmt.Errorf("error reading a json file: %w", err)
	}
	defer jsonFile.Close()

	var fileCfg fileConfig
	if err := json.NewDecoder(jsonFile).Decode(&fileCfg); err != nil {
		return nil, fmt.Errorf("error decoding json configs: %w", err)
	}

	return fileCfg.structured(), nil
}

func parseYAML(yamlFilePath string) (*StructuredConfig, error) {
	yamlFile, err := os.Open(yamlFilePath)
	if err != nil {
		return nil, fmt.Errorf("error reading a yaml file: %w", err)
	}
	defer yamlFile.Close()

	var fileCfg fileConfig
	if err := yaml.NewDecoder(yamlFile).Decode(&fileCfg); err != nil {
		return nil, fmt.Errorf("error decoding yaml configs: %w", err)
	}

	return fileCfg.structured(), nil
}

func (f *fileConfig) structured() *StructuredConfig {
	cfg := &StructuredConfig{
		Server: Server{
			Host:             f.Server.Host,
			Port:             f.Server.Port,
			ServiceName:      f.Server.ServiceName,
			ResponseType:     f.Server.ResponseType,
			KeepWildcardCase: f.Server.KeepWildcardCase,
			GatewayMatch:     f.Server.GatewayMatch,
			BodyLimit:        f.Server.BodyLimit,
		},
		Proxy: Proxy{
			Timeout: time.Duration(f.Proxy.Timeout),
			TempDir: f.Proxy.TempDir,
		},
		Log: Log{
			Level: f.Log.Level,
			File:  f.Log.File,
		},
		Metrics: Metrics{
			Path: f.Metrics.Path,
		},
		Auth: Auth{
			TokenSignKey:  f.Auth.TokenSignKey,
			TokenIssuer:   f.Auth.TokenIssuer,
			TokenDuration: time.Duration(f.Auth.TokenDuration),
		},
		DocsFile: f.DocsFile,
	}

	for _, fw := range f.Forwards {
		cfg.Forwards = append(cfg.Forwards, Forward{Path: fw.Path, To: fw.To, Swap: fw.Swap})
	}

	return cfg
}

// Duration is a wrapper around time.Duration that supports JSON and YAML
// unmarshaling from strings like "1h", "30s" as well as plain nanoseconds.
type Duration time.Duration

func (d *Duration) UnmarshalJSON(b []byte) error {
	var v interface{}
	if err := json.Unmarshal(b, &v); err != nil {
		return err
	}

	switch value := v.(type) {
	case float64:
		*d = Duration(time.Duration(value))
		return nil
	case string:
		tmp, err := time.ParseDuration(value)
		if err != nil {
			return err
		}
		*d = Duration(tmp)
		return nil
	default:
		return json.Unmarshal(b, (*time.Duration)(d))
	}
}

func (d Duration) MarshalJSON() ([]byte, error) {
	return json.Marshal(time.Duration(d).String())
}

func (d *Duration) UnmarshalYAML(node *yaml.Node) error {
	var n int64
	if err := node.Decode(&n); err == nil {
		*d = Duration(n)
		return nil
	}

	var s string
	if err := node.Decode(&s); err != nil {
		return err
	}
	tmp, err := time.ParseDuration(s)
	if err != nil {
		return err
	}
	*d = Duration(tmp)
	return nil
}
