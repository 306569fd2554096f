// SPDX-License-Identifier: Apache-2.0
// Copyright Authors of Cilium

package logging

import (
	"context"
	"log/slog"
	"os"
	"path/filepath"
	"reflect"
	"strings"
	"testing"

	"github.com/sirupsen/logrus"
	. "gopkg.in/check.v1"
)

// Hook up gocheck into the "go test" runner.
func Test(t *testing.T) {
	TestingT(t)
}

type LoggingSuite struct{}

var _ = Suite(&LoggingSuite{})

func (s *LoggingSuite) TearDownTest(c *C) {
	SetupLogging(LogOptions{}, false)
}

func (s *LoggingSuite) TestGetLogLevel(c *C) {
	opts := LogOptions{}
	c.Assert(opts.GetLogLevel(), Equals, DefaultLogLevel)

	// case doesn't matter with log options
	opts[LevelOpt] = "DeBuG"
	c.Assert(opts.GetLogLevel(), Equals, logrus.DebugLevel)

	opts[LevelOpt] = "Invalid"
	c.Assert(opts.GetLogLevel(), Equals, DefaultLogLevel)
}

func (s *LoggingSuite) TestGetLogFormat(c *C) {
	opts := LogOptions{}
	c.Assert(opts.GetLogFormat(), Equals, DefaultLogFormat)

	// case doesn't matter with log options
	opts[FormatOpt] = "JsOn"
	c.Assert(opts.GetLogFormat(), Equals, LogFormatJSON)

	opts[FormatOpt] = "text-ts"
	c.Assert(opts.GetLogFormat(), Equals, LogFormatTextTimestamp)

	opts[FormatOpt] = "Invalid"
	c.Assert(opts.GetLogFormat(), Equals, DefaultLogFormat)
}

func (s *LoggingSuite) TestSetLogLevel(c *C) {
	oldLevel := DefaultLogger.GetLevel()
	defer DefaultLogger.SetLevel(oldLevel)

	SetLogLevel(logrus.TraceLevel)
	c.Assert(DefaultLogger.GetLevel(), Equals, logrus.TraceLevel)
}

func (s *LoggingSuite) TestConfigureLogLevel(c *C) {
	oldLevel := DefaultLogger.GetLevel()
	defer DefaultLogger.SetLevel(oldLevel)

	ConfigureLogLevel(true)
	c.Assert(DefaultLogger.GetLevel(), Equals, logrus.DebugLevel)
	ConfigureLogLevel(false)
	c.Assert(DefaultLogger.GetLevel(), Equals, DefaultLogLevel)
}

func (s *LoggingSuite) TestSetLogFormat(c *C) {
	oldFormatter := DefaultLogger.Formatter
	defer DefaultLogger.SetFormatter(oldFormatter)

	SetLogFormat(LogFormatJSON)
	c.Assert(reflect.TypeOf(DefaultLogger.Formatter).String(), Equals, "*logrus.JSONFormatter")
}

func (s *LoggingSuite) TestSetDefaultLogFormat(c *C) {
	oldFormatter := DefaultLogger.Formatter
	defer DefaultLogger.SetFormatter(oldFormatter)

	SetDefaultLogFormat()
	c.Assert(reflect.TypeOf(DefaultLogger.Formatter).String(), Equals, "*logrus.TextFormatter")
}

func (s *LoggingSuite) TestSetupLogging(c *C) {
	// Validates that we configure the DefaultLogger correctly
	logOpts := LogOptions{
		"format": "json",
		"level":  "error",
	}

	SetupLogging(logOpts, false)
	c.Assert(DefaultLogger.GetLevel(), Equals, logrus.ErrorLevel)
	c.Assert(reflect.TypeOf(DefaultLogger.Formatter).String(), Equals, "*logrus.JSONFormatter")
	c.Assert(DefaultSlogLogger.Enabled(context.Background(), slog.LevelWarn), Equals, false)
	c.Assert(DefaultSlogLogger.Enabled(context.Background(), slog.LevelError), Equals, true)

	// Validate that the 'debug' flag/arg overrides the logOptions
	SetupLogging(logOpts, true)
	c.Assert(DefaultLogger.GetLevel(), Equals, logrus.DebugLevel)
	c.Assert(DefaultSlogLogger.Enabled(context.Background(), slog.LevelDebug), Equals, true)
	// and leaves the caller's options untouched
	c.Assert(logOpts[LevelOpt], Equals, "error")
}

func (s *LoggingSuite) TestSetupLoggingFile(c *C) {
	fileName := filepath.Join(c.MkDir(), "ipmerge.log")
	SetupLogging(LogOptions{FileOpt: fileName}, false)

	DefaultLogger.Info("from logrus")
	DefaultLogger.Debug("filtered")
	DefaultSlogLogger.Info("from slog")

	content, err := os.ReadFile(fileName)
	c.Assert(err, IsNil)
	c.Assert(strings.Contains(string(content), "from logrus"), Equals, true)
	c.Assert(strings.Contains(string(content), "from slog"), Equals, true)
	c.Assert(strings.Contains(string(content), "filtered"), Equals, false)
}

func (s *LoggingSuite) TestReplaceAttrFnWithoutTimestamp(c *C) {
	a := ReplaceAttrFnWithoutTimestamp(nil, slog.String(slog.TimeKey, "now"))
	c.Assert(a.Equal(slog.Attr{}), Equals, true)

	a = ReplaceAttrFnWithoutTimestamp(nil, slog.Any(slog.LevelKey, slog.LevelWarn))
	c.Assert(a.Value.String(), Equals, "warn")

	a = ReplaceAttrFnWithoutTimestamp(nil, slog.String("err", "boom"))
	c.Assert(a.Key, Equals, "error")
}
