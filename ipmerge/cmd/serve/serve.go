// SPDX-License-Identifier: Apache-2.0
// Copyright Authors of Cilium

package serve

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"net/http"
	"os"
	"os/signal"

	"github.com/spf13/cobra"
	"github.com/spf13/viper"
	"golang.org/x/sys/unix"

	"github.com/cilium/ipmerge/pkg/defaults"
	"github.com/cilium/ipmerge/pkg/gops"
	"github.com/cilium/ipmerge/pkg/logging"
	"github.com/cilium/ipmerge/pkg/logging/logfields"
	"github.com/cilium/ipmerge/pkg/metrics"
	"github.com/cilium/ipmerge/pkg/pprof"
	"github.com/cilium/ipmerge/pkg/server"
)

const (
	keyListenAddress   = "listen-address"
	keyEnableMetrics   = "enable-metrics"
	keyShutdownTimeout = "shutdown-timeout"
)

// New creates a new serve command.
func New(vp *viper.Viper) *cobra.Command {
	cmd := &cobra.Command{
		Use:   "serve",
		Short: "Run the HTTP API server",
		Long:  `Run the HTTP API server answering parse and merge requests.`,
		Args:  cobra.NoArgs,
		RunE: func(_ *cobra.Command, _ []string) error {
			return runServe(vp)
		},
	}
	flags := cmd.Flags()
	flags.String(
		keyListenAddress,
		defaults.ListenAddress,
		"Address on which to listen")
	flags.Bool(
		keyEnableMetrics,
		defaults.EnableMetrics,
		"Serve prometheus metrics on /metrics")
	flags.Duration(
		keyShutdownTimeout,
		defaults.ShutdownTimeout,
		"Time to wait for in-flight requests on shutdown")
	pprof.Config{
		PprofAddress: defaults.PprofAddress,
		PprofPort:    defaults.PprofPort,
	}.Flags(flags)
	gops.Config{
		Gops:     defaults.EnableGops,
		GopsPort: defaults.GopsPort,
	}.Flags(flags)
	vp.BindPFlags(flags)

	return cmd
}

func runServe(vp *viper.Viper) error {
	enableMetrics := vp.GetBool(keyEnableMetrics)
	handler := logging.DefaultSlogLogger.Handler()
	if enableMetrics {
		logging.DefaultLogger.AddHook(metrics.NewLoggingHook())
		handler = metrics.NewLoggingHandler(handler)
	}
	base := slog.New(handler)
	logger := base.With(logfields.LogSubsys, "ipmerge-server")

	srv, err := server.New(
		server.WithListenAddress(vp.GetString(keyListenAddress)),
		server.WithShutdownTimeout(vp.GetDuration(keyShutdownTimeout)),
		server.WithMetrics(enableMetrics),
		server.WithLogger(logger),
	)
	if err != nil {
		return fmt.Errorf("cannot create ipmerge server: %w", err)
	}

	if profiler := pprof.New(pprof.Config{
		Pprof:        vp.GetBool(pprof.Pprof),
		PprofAddress: vp.GetString(pprof.PprofAddress),
		PprofPort:    vp.GetUint16(pprof.PprofPort),
	}, base); profiler != nil {
		if err := profiler.Start(); err != nil {
			return fmt.Errorf("failed to start pprof server: %w", err)
		}
		defer profiler.Stop(context.Background())
	}
	agent, err := gops.Start(gops.Config{
		Gops:     vp.GetBool(gops.Gops),
		GopsPort: vp.GetUint16(gops.GopsPort),
	}, base)
	if err != nil {
		return err
	}
	if agent != nil {
		defer agent.Stop()
	}

	sigs := make(chan os.Signal, 1)
	signal.Notify(sigs, unix.SIGINT, unix.SIGTERM)
	defer signal.Stop(sigs)
	done := make(chan struct{})
	defer close(done)
	stopped := make(chan error, 1)
	go func() {
		select {
		case sig := <-sigs:
			logger.Info("Received signal, shutting down", logfields.Signal, sig)
			stopped <- srv.Stop()
		case <-done:
		}
	}()

	if err := srv.Serve(); !errors.Is(err, http.ErrServerClosed) {
		return err
	}
	return <-stopped
}
