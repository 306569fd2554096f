// SPDX-License-Identifier: Apache-2.0
// Copyright Authors of Cilium

package gops

import (
	"io"
	"log/slog"
	"testing"

	"github.com/spf13/pflag"
	"github.com/stretchr/testify/require"
)

func testLogger() *slog.Logger {
	return slog.New(slog.NewTextHandler(io.Discard, nil))
}

func TestFlags(t *testing.T) {
	flags := pflag.NewFlagSet("test", pflag.ContinueOnError)
	Config{Gops: true, GopsPort: 9895}.Flags(flags)
	require.NoError(t, flags.Parse([]string{"--gops=false"}))

	enabled, err := flags.GetBool(Gops)
	require.NoError(t, err)
	require.False(t, enabled)
	port, err := flags.GetUint16(GopsPort)
	require.NoError(t, err)
	require.Equal(t, uint16(9895), port)
}

func TestDisabled(t *testing.T) {
	a, err := Start(Config{Gops: false}, testLogger())
	require.NoError(t, err)
	require.Nil(t, a)
}

func TestStartStop(t *testing.T) {
	a, err := Start(Config{Gops: true, GopsPort: 0}, testLogger())
	require.NoError(t, err)
	require.NotNil(t, a)
	a.Stop()
}
