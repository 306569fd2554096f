// SPDX-License-Identifier: Apache-2.0
// Copyright Authors of Cilium

package server

import (
	"errors"
	"time"

	"github.com/cilium/ipmerge/pkg/defaults"
	"github.com/cilium/ipmerge/pkg/logging"
)

// Option customizes the configuration of the server.
type Option func(o *options) error

type options struct {
	listenAddress     string
	log               logging.FieldLogger
	enableMetrics     bool
	readHeaderTimeout time.Duration
	shutdownTimeout   time.Duration
}

var defaultOptions = options{
	listenAddress:     defaults.ListenAddress,
	enableMetrics:     defaults.EnableMetrics,
	readHeaderTimeout: defaults.ReadHeaderTimeout,
	shutdownTimeout:   defaults.ShutdownTimeout,
}

// WithListenAddress sets the address the server listens on.
func WithListenAddress(a string) Option {
	return func(o *options) error {
		if a == "" {
			return errors.New("listen address must not be empty")
		}
		o.listenAddress = a
		return nil
	}
}

// WithLogger sets the logger to use for logging.
func WithLogger(l logging.FieldLogger) Option {
	return func(o *options) error {
		o.log = l
		return nil
	}
}

// WithMetrics controls whether /metrics is served and API requests are
// instrumented.
func WithMetrics(enabled bool) Option {
	return func(o *options) error {
		o.enableMetrics = enabled
		return nil
	}
}

// WithShutdownTimeout bounds how long Stop waits for in-flight requests.
func WithShutdownTimeout(d time.Duration) Option {
	return func(o *options) error {
		if d <= 0 {
			return errors.New("shutdown timeout must be positive")
		}
		o.shutdownTimeout = d
		return nil
	}
}
