// SPDX-License-Identifier: Apache-2.0
// Copyright Authors of Cilium

// Package gops runs the gops agent, a tool to list and diagnose Go
// processes. See https://github.com/google/gops.
package gops

import (
	"fmt"

	gopsAgent "github.com/google/gops/agent"
	"github.com/spf13/pflag"

	"github.com/cilium/ipmerge/pkg/logging"
	"github.com/cilium/ipmerge/pkg/logging/logfields"
)

const (
	// Gops is the flag to run the gops agent
	Gops = "gops"

	// GopsPort is the flag to set the port the gops agent listens on
	GopsPort = "gops-port"
)

// Config contains the configuration of the gops agent.
type Config struct {
	Gops     bool
	GopsPort uint16
}

// Flags registers the gops flags with def as defaults.
func (def Config) Flags(flags *pflag.FlagSet) {
	flags.Bool(Gops, def.Gops, "Run gops agent")
	flags.Uint16(GopsPort, def.GopsPort, "Port for gops server to listen on")
}

// Agent is a running gops agent.
type Agent struct {
	log logging.FieldLogger
}

// Start starts the gops agent on localhost. It returns nil if gops is
// disabled.
func Start(cfg Config, log logging.FieldLogger) (*Agent, error) {
	if !cfg.Gops {
		return nil, nil
	}
	addr := fmt.Sprintf("127.0.0.1:%d", cfg.GopsPort)
	log = log.With(logfields.LogSubsys, "gops", logfields.ListenAddress, addr)
	if err := gopsAgent.Listen(gopsAgent.Options{
		Addr:                   addr,
		ReuseSocketAddrAndPort: true,
	}); err != nil {
		return nil, fmt.Errorf("failed to start gops agent: %w", err)
	}
	log.Info("Started gops server")
	return &Agent{log: log}, nil
}

// Stop closes the agent.
func (a *Agent) Stop() {
	gopsAgent.Close()
	a.log.Info("Stopped gops server")
}
