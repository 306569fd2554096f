// SPDX-License-Identifier: Apache-2.0
// Copyright Authors of Cilium

package defaults

import "time"

const (
	// ConfigFilePath is where the ipmerge config file is read from, if it
	// exists
	ConfigFilePath = "/etc/ipmerge/config.yaml"

	// EnvPrefix prefixes environment variables overriding flags, for
	// example IPMERGE_LISTEN_ADDRESS
	EnvPrefix = "ipmerge"

	// ListenAddress is the address the API server listens on
	ListenAddress = ":4250"

	// EnableMetrics controls whether /metrics is served
	EnableMetrics = true

	// ReadHeaderTimeout bounds the time to read request headers
	ReadHeaderTimeout = 10 * time.Second

	// ShutdownTimeout bounds the graceful shutdown of the API server
	ShutdownTimeout = 15 * time.Second

	// OutputFormat is the default output format of batch merges
	OutputFormat = "yaml"

	// PprofAddress is the default address pprof listens on
	PprofAddress = "localhost"

	// PprofPort is the default port pprof listens on
	PprofPort = 6062

	// EnableGops controls whether the gops agent runs next to the server
	EnableGops = true

	// GopsPort is the default port for the gops agent
	GopsPort = 9895
)
