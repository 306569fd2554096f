// SPDX-License-Identifier: Apache-2.0
// Copyright Authors of Cilium

package metrics

import (
	"context"
	"log/slog"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/sirupsen/logrus"
)

// LoggingHook is a hook for logrus which counts error and warning messages as a
// Prometheus metric.
type LoggingHook struct {
	metric *prometheus.CounterVec
}

// NewLoggingHook returns a new instance of LoggingHook counting into
// ErrorsWarnings.
func NewLoggingHook() *LoggingHook {
	return &LoggingHook{metric: ErrorsWarnings}
}

// Levels returns the list of logging levels on which the hook is triggered.
func (h *LoggingHook) Levels() []logrus.Level {
	return []logrus.Level{
		logrus.ErrorLevel,
		logrus.WarnLevel,
	}
}

// Fire is the main method which is called every time when logger has an error
// or warning message.
func (h *LoggingHook) Fire(entry *logrus.Entry) error {
	h.metric.WithLabelValues(entry.Level.String()).Inc()
	return nil
}

// loggingHandler is the slog counterpart of LoggingHook.
type loggingHandler struct {
	slog.Handler
	metric *prometheus.CounterVec
}

// NewLoggingHandler wraps next, counting error and warning records into
// ErrorsWarnings with the same level labels as LoggingHook.
func NewLoggingHandler(next slog.Handler) slog.Handler {
	return &loggingHandler{Handler: next, metric: ErrorsWarnings}
}

func (h *loggingHandler) Handle(ctx context.Context, r slog.Record) error {
	switch {
	case r.Level >= slog.LevelError:
		h.metric.WithLabelValues(logrus.ErrorLevel.String()).Inc()
	case r.Level >= slog.LevelWarn:
		h.metric.WithLabelValues(logrus.WarnLevel.String()).Inc()
	}
	return h.Handler.Handle(ctx, r)
}

func (h *loggingHandler) WithAttrs(attrs []slog.Attr) slog.Handler {
	return &loggingHandler{Handler: h.Handler.WithAttrs(attrs), metric: h.metric}
}

func (h *loggingHandler) WithGroup(name string) slog.Handler {
	return &loggingHandler{Handler: h.Handler.WithGroup(name), metric: h.metric}
}
