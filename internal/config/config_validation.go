// SPDX-License-Identifier: Apache-2.0
// Copyright 2026 Rasul Khiriev

package config

import (
	"fmt"
	"strings"

	"github.com/MKhiriev/go-rest-lite/internal/gateway"
	"github.com/MKhiriev/go-rest-lite/internal/logger"
)

// validate checks that the final merged [StructuredConfig] satisfies all
// invariants before it is used at startup.
//
// Returns nil if the configuration is valid, or an error wrapping one of
// the ErrInvalid*Configs sentinels otherwise.
func (cfg *StructuredConfig) validate() error {
	if cfg.Server.Port < 1 || cfg.Server.Port > 65535 {
		return fmt.Errorf("%w: port %d out of range", ErrInvalidServerConfigs, cfg.Server.Port)
	}
	if cfg.Server.BodyLimit <= 0 {
		return fmt.Errorf("%w: body limit must be positive", ErrInvalidServerConfigs)
	}
	if _, err := gateway.ParseMatchMode(cfg.Server.GatewayMatch); err != nil {
		return fmt.Errorf("%w: %w", ErrInvalidServerConfigs, err)
	}

	if cfg.Proxy.Timeout < 0 {
		return fmt.Errorf("%w: negative timeout", ErrInvalidProxyConfigs)
	}
	for i, fw := range cfg.Forwards {
		if fw.Path == "" || fw.To == "" {
			return fmt.Errorf("%w: forward #%d needs both path and target", ErrInvalidProxyConfigs, i)
		}
	}

	if _, err := logger.ParseMode(cfg.Log.Level); err != nil {
		return fmt.Errorf("%w: %w", ErrInvalidLogConfigs, err)
	}

	if cfg.Metrics.Path != "" && !strings.HasPrefix(cfg.Metrics.Path, "/") {
		return fmt.Errorf("%w: path must start with '/'", ErrInvalidMetricsConfigs)
	}

	return nil
}
