// SPDX-License-Identifier: Apache-2.0
// Copyright Authors of Cilium

package logging

import (
	"io"
	"log/slog"
	"maps"
	"strings"
	"time"

	"github.com/sirupsen/logrus"

	"github.com/cilium/ipmerge/pkg/logging/hooks"
)

type LogFormat string

const (
	LevelOpt  = "level"
	FormatOpt = "format"
	// FileOpt names a file receiving a copy of all log output. The file
	// is rotated once it grows past 100MB.
	FileOpt = "file"

	// LogFormatText is a text output format without timestamps
	LogFormatText LogFormat = "text"
	// LogFormatTextTimestamp is a text output format with timestamps
	LogFormatTextTimestamp LogFormat = "text-ts"
	// LogFormatJSON is a JSON output format without timestamps
	LogFormatJSON LogFormat = "json"
	// LogFormatJSONTimestamp is a JSON output format with timestamps
	LogFormatJSONTimestamp LogFormat = "json-ts"

	// DefaultLogFormat is the string representation of the default logrus.Formatter
	// we want to use (possible values: text or json)
	DefaultLogFormat LogFormat = LogFormatText

	// DefaultLogLevel is the default log level we want to use for our logrus.Formatter
	DefaultLogLevel logrus.Level = logrus.InfoLevel
)

// DefaultLogger is the base logrus logger. It is different from the logrus
// default to avoid external dependencies from writing out unexpectedly
var DefaultLogger = initializeDefaultLogger()

// rotated is the log file writer installed by the last SetupLogging call.
var rotated io.WriteCloser

func initializeDefaultLogger() *logrus.Logger {
	logger := logrus.New()
	logger.SetFormatter(GetFormatter(DefaultLogFormat))
	logger.SetLevel(DefaultLogLevel)
	return logger
}

// LogOptions maps configuration key-value pairs related to logging.
type LogOptions map[string]string

// GetLogLevel returns the log level specified in the provided LogOptions. If
// it is not set in the options, it will return the default level.
func (o LogOptions) GetLogLevel() (level logrus.Level) {
	levelOpt, ok := o[LevelOpt]
	if !ok {
		return DefaultLogLevel
	}

	var err error
	if level, err = logrus.ParseLevel(strings.ToLower(levelOpt)); err != nil {
		return DefaultLogLevel
	}
	return level
}

// GetLogFormat returns the log format specified in the provided LogOptions. If
// it is not set in the options or is invalid, it will return the default format.
func (o LogOptions) GetLogFormat() LogFormat {
	formatOpt, ok := o[FormatOpt]
	if !ok {
		return DefaultLogFormat
	}

	switch f := LogFormat(strings.ToLower(formatOpt)); f {
	case LogFormatText, LogFormatTextTimestamp, LogFormatJSON, LogFormatJSONTimestamp:
		return f
	}
	return DefaultLogFormat
}

// SetLogLevel updates the DefaultLogger with a new logrus.Level
func SetLogLevel(logLevel logrus.Level) {
	DefaultLogger.SetLevel(logLevel)
}

// SetDefaultLogLevel updates the DefaultLogger with the DefaultLogLevel
func SetDefaultLogLevel() {
	DefaultLogger.SetLevel(DefaultLogLevel)
}

// SetLogLevelToDebug updates the DefaultLogger with the logrus.DebugLevel
func SetLogLevelToDebug() {
	DefaultLogger.SetLevel(logrus.DebugLevel)
}

// ConfigureLogLevel sets the debug level if debug is set, the default
// level otherwise.
func ConfigureLogLevel(debug bool) {
	if debug {
		SetLogLevelToDebug()
	} else {
		SetDefaultLogLevel()
	}
}

// SetLogFormat updates the DefaultLogger with a new LogFormat
func SetLogFormat(logFormat LogFormat) {
	DefaultLogger.SetFormatter(GetFormatter(logFormat))
}

// SetDefaultLogFormat updates the DefaultLogger with the DefaultLogFormat
func SetDefaultLogFormat() {
	DefaultLogger.SetFormatter(GetFormatter(DefaultLogFormat))
}

// GetFormatter returns a configured logrus.Formatter with some specific values
// we want to have
func GetFormatter(format LogFormat) logrus.Formatter {
	switch format {
	case LogFormatTextTimestamp:
		return &logrus.TextFormatter{
			DisableColors:   true,
			FullTimestamp:   true,
			TimestampFormat: time.RFC3339Nano,
		}
	case LogFormatJSON:
		return &logrus.JSONFormatter{
			DisableTimestamp: true,
		}
	case LogFormatJSONTimestamp:
		return &logrus.JSONFormatter{
			TimestampFormat: time.RFC3339Nano,
		}
	}
	return &logrus.TextFormatter{
		DisableTimestamp: true,
		DisableColors:    true,
	}
}

// SetupLogging configures DefaultLogger and DefaultSlogLogger from
// logOpts. If debug is set, the level is forced to debug regardless of
// logOpts.
func SetupLogging(logOpts LogOptions, debug bool) {
	opts := maps.Clone(logOpts)
	if opts == nil {
		opts = LogOptions{}
	}
	if debug {
		opts[LevelOpt] = logrus.DebugLevel.String()
	}

	format := opts.GetLogFormat()
	level := opts.GetLogLevel()
	SetLogFormat(format)
	SetLogLevel(level)

	if rotated != nil {
		rotated.Close()
		rotated = nil
	}
	DefaultLogger.ReplaceHooks(make(logrus.LevelHooks))

	var extra []slog.Handler
	if fileName := opts[FileOpt]; fileName != "" {
		rotated = hooks.NewFileRotationWriter(fileName)
		DefaultLogger.AddHook(hooks.NewWriterHook(rotated, GetFormatter(format), level))
		extra = append(extra, hooks.NewFileRotationLogHook(slogLevel(level), rotated))
	}
	initializeSlog(opts, extra)
}
