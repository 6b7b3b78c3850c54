// Copyright 2026 Canonical Ltd.
// SPDX-License-Identifier: AGPL-3.0

package tracing

import (
	"github.com/canonical/academy-service/internal/logging"
)

const defaultServiceName = "academy-service"

type Config struct {
	ServiceName string

	OtelHTTPEndpoint string
	OtelGRPCEndpoint string
	// SampleRatio is the share of root spans kept, child spans follow their parent.
	// Anything outside (0, 1] samples every trace.
	SampleRatio float64

	Logger logging.LoggerInterface

	Enabled bool
}

func (c *Config) service() string {
	if c.ServiceName == "" {
		return defaultServiceName
	}
	return c.ServiceName
}

func NewConfig(enabled bool, otelGRPCEndpoint, otelHTTPEndpoint string, sampleRatio float64, logger logging.LoggerInterface) *Config {
	c := new(Config)

	c.ServiceName = defaultServiceName
	c.OtelGRPCEndpoint = otelGRPCEndpoint
	c.OtelHTTPEndpoint = otelHTTPEndpoint
	c.SampleRatio = sampleRatio
	c.Logger = logger
	c.Enabled = enabled

	return c
}

func NewNoopConfig() *Config {
	c := new(Config)
	c.Enabled = false
	return c
}
