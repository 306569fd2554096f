// SPDX-License-Identifier: Apache-2.0
// Copyright Authors of Cilium

// Package pprof serves runtime profiling data in the format expected by the
// pprof visualization tool.
package pprof

import (
	"context"
	"errors"
	"net"
	"net/http"
	"net/http/pprof"
	"strconv"

	"github.com/spf13/pflag"

	"github.com/cilium/ipmerge/pkg/logging"
	"github.com/cilium/ipmerge/pkg/logging/logfields"
)

const (
	// Pprof is the flag to enable the registration of pprof HTTP handlers
	Pprof = "pprof"

	// PprofAddress is the flag to set the address that pprof listens on
	PprofAddress = "pprof-address"

	// PprofPort is the flag to set the port that pprof listens on
	PprofPort = "pprof-port"
)

// Config contains the configuration of the pprof server.
type Config struct {
	Pprof        bool
	PprofAddress string
	PprofPort    uint16
}

// Flags registers the pprof flags with def as defaults.
func (def Config) Flags(flags *pflag.FlagSet) {
	flags.Bool(Pprof, def.Pprof, "Enable serving pprof debugging API")
	flags.String(PprofAddress, def.PprofAddress, "Address that pprof listens on")
	flags.Uint16(PprofPort, def.PprofPort, "Port that pprof listens on")
}

// Server is a pprof HTTP server.
type Server struct {
	logger logging.FieldLogger

	address string
	port    uint16

	httpSrv  *http.Server
	listener net.Listener
}

// New returns a server for cfg, or nil if pprof is disabled.
func New(cfg Config, logger logging.FieldLogger) *Server {
	if !cfg.Pprof {
		return nil
	}
	return &Server{
		logger:  logger.With(logfields.LogSubsys, "pprof"),
		address: cfg.PprofAddress,
		port:    cfg.PprofPort,
	}
}

// Start listens and serves in the background until Stop is called.
func (s *Server) Start() error {
	listener, err := net.Listen("tcp", net.JoinHostPort(s.address, strconv.FormatUint(uint64(s.port), 10)))
	if err != nil {
		return err
	}
	s.listener = listener
	s.logger = s.logger.With(logfields.ListenAddress, listener.Addr().String())

	mux := http.NewServeMux()
	mux.HandleFunc("/debug/pprof/", pprof.Index)
	mux.HandleFunc("/debug/pprof/cmdline", pprof.Cmdline)
	mux.HandleFunc("/debug/pprof/profile", pprof.Profile)
	mux.HandleFunc("/debug/pprof/symbol", pprof.Symbol)
	mux.HandleFunc("/debug/pprof/trace", pprof.Trace)

	s.httpSrv = &http.Server{
		Handler: mux,
	}
	go func() {
		if err := s.httpSrv.Serve(s.listener); !errors.Is(err, http.ErrServerClosed) {
			s.logger.Error("pprof server stopped unexpectedly", logfields.Error, err)
		}
	}()
	s.logger.Info("Started pprof server")

	return nil
}

// Stop shuts the server down.
func (s *Server) Stop(ctx context.Context) error {
	s.logger.Info("Stopped pprof server")
	return s.httpSrv.Shutdown(ctx)
}

// Port returns the port at which the server is listening.
func (s *Server) Port() int {
	return s.listener.Addr().(*net.TCPAddr).Port
}
