// SPDX-License-Identifier: Apache-2.0
// Copyright Authors of Cilium

package logging

import (
	"context"
	"errors"
	"log/slog"
)

// NewMultiSlogHandler creates a slog.Handler fanning records out to
// several handlers, such as stderr and a log file.
func NewMultiSlogHandler(handler slog.Handler) *multiSlogHandler {
	return &multiSlogHandler{
		handlers: []slog.Handler{handler},
	}
}

type multiSlogHandler struct {
	handlers []slog.Handler
}

// Enabled reports whether any of the handlers accepts level.
func (m *multiSlogHandler) Enabled(ctx context.Context, level slog.Level) bool {
	for _, h := range m.handlers {
		if h.Enabled(ctx, level) {
			return true
		}
	}
	return false
}

// Handle passes record to every handler accepting its level.
func (m *multiSlogHandler) Handle(ctx context.Context, record slog.Record) error {
	var errs []error
	for _, h := range m.handlers {
		if !h.Enabled(ctx, record.Level) {
			continue
		}
		if err := h.Handle(ctx, record.Clone()); err != nil {
			errs = append(errs, err)
		}
	}
	return errors.Join(errs...)
}

func (m *multiSlogHandler) WithAttrs(attrs []slog.Attr) slog.Handler {
	return m.each(func(h slog.Handler) slog.Handler { return h.WithAttrs(attrs) })
}

func (m *multiSlogHandler) WithGroup(name string) slog.Handler {
	return m.each(func(h slog.Handler) slog.Handler { return h.WithGroup(name) })
}

// AddHandlers returns a handler additionally writing to handlers.
func (m *multiSlogHandler) AddHandlers(handlers ...slog.Handler) *multiSlogHandler {
	all := make([]slog.Handler, 0, len(m.handlers)+len(handlers))
	all = append(all, m.handlers...)
	return &multiSlogHandler{handlers: append(all, handlers...)}
}

func (m *multiSlogHandler) each(fn func(slog.Handler) slog.Handler) *multiSlogHandler {
	out := make([]slog.Handler, 0, len(m.handlers))
	for _, h := range m.handlers {
		out = append(out, fn(h))
	}
	return &multiSlogHandler{handlers: out}
}
