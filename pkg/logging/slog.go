// SPDX-License-Identifier: Apache-2.0
// Copyright Authors of Cilium

package logging

import (
	"context"
	"log/slog"
	"os"
	"strings"
	"time"

	"github.com/sirupsen/logrus"

	"github.com/cilium/ipmerge/pkg/logging/logfields"
)

// shortErrorKey is renamed to logfields.Error so both loggers agree on the
// key errors are logged under.
const shortErrorKey = "err"

var slogHandlerOpts = &slog.HandlerOptions{
	AddSource:   false,
	Level:       slog.LevelInfo,
	ReplaceAttr: ReplaceAttrFnWithoutTimestamp,
}

// Default slog logger. Will be overwritten once SetupLogging is called.
var DefaultSlogLogger *slog.Logger = slog.New(slog.NewTextHandler(
	os.Stderr,
	slogHandlerOpts,
))

func slogLevel(l logrus.Level) slog.Level {
	switch l {
	case logrus.DebugLevel, logrus.TraceLevel:
		return slog.LevelDebug
	case logrus.InfoLevel:
		return slog.LevelInfo
	case logrus.WarnLevel:
		return slog.LevelWarn
	case logrus.ErrorLevel, logrus.PanicLevel, logrus.FatalLevel:
		return slog.LevelError
	default:
		return slog.LevelInfo
	}
}

// Approximates the logrus output via slog. Records are written to stderr
// and, if given, to the extra handlers.
func initializeSlog(logOpts LogOptions, extra []slog.Handler) {
	opts := *slogHandlerOpts
	opts.Level = slogLevel(logOpts.GetLogLevel())
	if opts.Level == slog.LevelDebug {
		opts.AddSource = true
	}

	logFormat := logOpts.GetLogFormat()
	switch logFormat {
	case LogFormatJSON, LogFormatText:
		opts.ReplaceAttr = ReplaceAttrFnWithoutTimestamp
	case LogFormatJSONTimestamp, LogFormatTextTimestamp:
		opts.ReplaceAttr = replaceAttrFn
	}

	var handler slog.Handler
	switch logFormat {
	case LogFormatJSON, LogFormatJSONTimestamp:
		handler = slog.NewJSONHandler(os.Stderr, &opts)
	default:
		handler = slog.NewTextHandler(os.Stderr, &opts)
	}
	if len(extra) > 0 {
		handler = NewMultiSlogHandler(handler).AddHandlers(extra...)
	}
	DefaultSlogLogger = slog.New(handler)
}

func replaceAttrFn(groups []string, a slog.Attr) slog.Attr {
	switch a.Key {
	case slog.TimeKey:
		// Adjust to timestamp format that logrus uses; except that we can't
		// force slog to quote the value like logrus does...
		return slog.String(slog.TimeKey, a.Value.Time().Format(time.RFC3339))
	case slog.LevelKey:
		// Lower-case the log level
		return slog.Attr{
			Key:   a.Key,
			Value: slog.StringValue(strings.ToLower(a.Value.String())),
		}
	case shortErrorKey:
		// Uniform the attribute identifying the error
		return slog.Attr{
			Key:   logfields.Error,
			Value: a.Value,
		}
	}
	return a
}

func ReplaceAttrFnWithoutTimestamp(groups []string, a slog.Attr) slog.Attr {
	switch a.Key {
	case slog.TimeKey:
		// Drop timestamps
		return slog.Attr{}
	default:
		return replaceAttrFn(groups, a)
	}
}

// FieldLogger is the subset of *slog.Logger accepted by the server,
// pprof and gops components.
type FieldLogger interface {
	With(args ...any) *slog.Logger
	Enabled(ctx context.Context, level slog.Level) bool
	Debug(msg string, args ...any)
	Info(msg string, args ...any)
	Warn(msg string, args ...any)
	Error(msg string, args ...any)
}
