// SPDX-License-Identifier: Apache-2.0
// Copyright Authors of Cilium

package hooks

import (
	"io"
	"log/slog"

	"github.com/sirupsen/logrus"
	"gopkg.in/natefinch/lumberjack.v2"
)

// FileRotationOption provides all parameters for file rotation
type FileRotationOption struct {
	FileName   string
	MaxSize    int
	MaxAge     int
	MaxBackups int
	LocalTime  bool
	Compress   bool
}

type Option func(*FileRotationOption)

// WithMaxSize provides way to adjust maxSize (in MBs). Defaults to
// 100 MBs.
func WithMaxSize(maxSize int) Option {
	return func(option *FileRotationOption) {
		option.MaxSize = maxSize
	}
}

// WithMaxAge provides way to adjust max age (in days). The default is
// not to remove old log files based on age.
func WithMaxAge(maxAge int) Option {
	return func(option *FileRotationOption) {
		option.MaxAge = maxAge
	}
}

// WithMaxBackups provides way to adjust max number of backups. Defaults
// to retain all old log files though MaxAge may still cause them to get
// deleted.
func WithMaxBackups(MaxBackups int) Option {
	return func(option *FileRotationOption) {
		option.MaxBackups = MaxBackups
	}
}

// EnableCompression is to enable old log file gzip compression. Defaults
// to false.
func EnableCompression() Option {
	return func(option *FileRotationOption) {
		option.Compress = true
	}
}

// NewFileRotationWriter returns a writer appending to fileName and rotating
// it once it grows past the configured size.
func NewFileRotationWriter(fileName string, opts ...Option) io.WriteCloser {
	options := &FileRotationOption{
		FileName:  fileName,
		MaxSize:   100,   // MBs
		LocalTime: false, // UTC
		Compress:  false, // no compression with gzip
	}

	for _, opt := range opts {
		opt(options)
	}

	return &lumberjack.Logger{
		Filename:   options.FileName,
		MaxSize:    options.MaxSize,
		MaxAge:     options.MaxAge,
		MaxBackups: options.MaxBackups,
		LocalTime:  options.LocalTime,
		Compress:   options.Compress,
	}
}

// NewFileRotationLogHook creates a slog handler writing text records of at
// least logLevel to w, usually a writer from NewFileRotationWriter.
func NewFileRotationLogHook(logLevel slog.Level, w io.Writer) slog.Handler {
	return slog.NewTextHandler(w, &slog.HandlerOptions{
		Level: logLevel,
	})
}

// WriterHook is a logrus hook formatting every entry of the given levels
// onto Writer.
type WriterHook struct {
	Writer    io.Writer
	Formatter logrus.Formatter
	LogLevels []logrus.Level
}

// NewWriterHook returns a hook for every level up to and including level.
func NewWriterHook(w io.Writer, formatter logrus.Formatter, level logrus.Level) *WriterHook {
	levels := make([]logrus.Level, 0, len(logrus.AllLevels))
	for _, l := range logrus.AllLevels {
		if l <= level {
			levels = append(levels, l)
		}
	}
	return &WriterHook{
		Writer:    w,
		Formatter: formatter,
		LogLevels: levels,
	}
}

func (h *WriterHook) Levels() []logrus.Level {
	return h.LogLevels
}

func (h *WriterHook) Fire(entry *logrus.Entry) error {
	line, err := h.Formatter.Format(entry)
	if err != nil {
		return err
	}
	_, err = h.Writer.Write(line)
	return err
}
