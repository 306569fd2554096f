// SPDX-License-Identifier: Apache-2.0
// Copyright Authors of Cilium

// Package server exposes address block parsing and merging over HTTP.
package server

import (
	"context"
	"fmt"
	"net"
	"net/http"
	"strconv"
	"time"

	"github.com/gorilla/mux"

	"github.com/cilium/ipmerge/pkg/logging"
	"github.com/cilium/ipmerge/pkg/logging/logfields"
	"github.com/cilium/ipmerge/pkg/metrics"
)

// Server serves the ipmerge HTTP API.
type Server struct {
	srv    *http.Server
	router *mux.Router
	log    logging.FieldLogger
	opts   options
}

// New creates a new Server.
func New(options ...Option) (*Server, error) {
	opts := defaultOptions
	for _, opt := range options {
		if err := opt(&opts); err != nil {
			return nil, fmt.Errorf("failed to apply option: %w", err)
		}
	}
	if opts.log == nil {
		opts.log = logging.DefaultSlogLogger.With(logfields.LogSubsys, "server")
	}

	s := &Server{
		log:  opts.log,
		opts: opts,
	}
	s.router = s.newRouter()
	s.srv = &http.Server{
		Addr:              opts.listenAddress,
		Handler:           s.router,
		ReadHeaderTimeout: opts.readHeaderTimeout,
	}
	return s, nil
}

func (s *Server) newRouter() *mux.Router {
	r := mux.NewRouter()
	r.HandleFunc("/v1/parse", s.handleParse).Methods(http.MethodGet)
	r.HandleFunc("/v1/merge", s.handleMerge).Methods(http.MethodGet)
	r.HandleFunc("/healthz", s.handleHealthz).Methods(http.MethodGet)
	if s.opts.enableMetrics {
		r.Handle("/metrics", metrics.Handler()).Methods(http.MethodGet)
		r.Use(s.instrument)
	}
	return r
}

// Handler returns the HTTP handler serving the API.
func (s *Server) Handler() http.Handler {
	return s.router
}

// Serve starts the server. Serve does not return unless listening fails
// with fatal errors, or Stop is called in which case http.ErrServerClosed
// is returned.
func (s *Server) Serve() error {
	s.log.Info("Starting server",
		logfields.ListenAddress, s.opts.listenAddress,
		"metrics", s.opts.enableMetrics,
	)
	socket, err := net.Listen("tcp", s.opts.listenAddress)
	if err != nil {
		return fmt.Errorf("failed to listen on tcp socket %s: %w", s.opts.listenAddress, err)
	}
	return s.srv.Serve(socket)
}

// Stop gracefully shuts the server down, waiting at most the configured
// shutdown timeout for in-flight requests.
func (s *Server) Stop() error {
	s.log.Info("Stopping server")
	ctx, cancel := context.WithTimeout(context.Background(), s.opts.shutdownTimeout)
	defer cancel()
	if err := s.srv.Shutdown(ctx); err != nil {
		return fmt.Errorf("failed to shut down server: %w", err)
	}
	s.log.Info("Server stopped")
	return nil
}

type statusRecorder struct {
	http.ResponseWriter
	code int
}

func (r *statusRecorder) WriteHeader(code int) {
	r.code = code
	r.ResponseWriter.WriteHeader(code)
}

// instrument records the duration of every request served by a route.
func (s *Server) instrument(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		path := r.URL.Path
		if route := mux.CurrentRoute(r); route != nil {
			if tmpl, err := route.GetPathTemplate(); err == nil {
				path = tmpl
			}
		}
		rec := &statusRecorder{ResponseWriter: w, code: http.StatusOK}
		start := time.Now()
		next.ServeHTTP(rec, r)
		duration := time.Since(start)
		metrics.APIRequestDuration.
			WithLabelValues(path, strconv.Itoa(rec.code)).
			Observe(duration.Seconds())
		s.log.Debug("Served request",
			"path", path,
			"code", rec.code,
			logfields.Duration, duration,
		)
	})
}
