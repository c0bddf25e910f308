/*
 * Copyright 2024 The Ascendore Authors
 *
 * Licensed under the Apache License, Version 2.0 (the "License");
 * you may not use this file except in compliance with the License.
 * You may obtain a copy of the License at
 *
 *     http://www.apache.org/licenses/LICENSE-2.0
 *
 * Unless required by applicable law or agreed to in writing, software
 * distributed under the License is distributed on an "AS IS" BASIS,
 * WITHOUT WARRANTIES OR CONDITIONS OF ANY KIND, either express or implied.
 * See the License for the specific language governing permissions and
 * limitations under the License.
 */

// Package logging provides leveled logfmt event logging for the attachment
// cache and its stores
package logging

import (
	"fmt"
	"io"
	"os"
	"strings"
	"sync"

	"github.com/go-kit/log"
	"github.com/go-kit/log/level"
	"github.com/go-stack/stack"
	lumberjack "gopkg.in/natefinch/lumberjack.v2"
)

// Pairs represents the key=value pairs that describe a log event
type Pairs map[string]any

// Options is a collection of logging configurations
type Options struct {
	// LogFile defines the file location to store logs; empty means stdout
	LogFile string `yaml:"log_file,omitempty"`
	// LogLevel defines the minimum log level: debug, info, warn or error
	LogLevel string `yaml:"log_level,omitempty"`
}

// NewOptions returns a new logging Options with default values
func NewOptions() *Options {
	return &Options{LogLevel: "info"}
}

// Logger is a container for the underlying log provider
type Logger struct {
	logger log.Logger
	closer io.Closer
	level  string
}

// New returns a Logger for the provided logging configuration
func New(o *Options) *Logger {
	if o == nil {
		o = NewOptions()
	}
	var wr io.Writer
	if o.LogFile == "" {
		wr = os.Stdout
	} else {
		wr = &lumberjack.Logger{
			Filename:   o.LogFile,
			MaxSize:    256, // megabytes
			MaxBackups: 80,
			MaxAge:     7, // days
			Compress:   true,
		}
	}
	l := newLogger(wr, o.LogLevel)
	if c, ok := wr.(io.Closer); ok {
		l.closer = c
	}
	return l
}

// ConsoleLogger returns a Logger that prints log events to stdout
func ConsoleLogger(logLevel string) *Logger {
	return newLogger(os.Stdout, logLevel)
}

// NoopLogger returns a Logger that discards all log events
func NoopLogger() *Logger {
	return &Logger{logger: log.NewNopLogger(), level: "error"}
}

func newLogger(wr io.Writer, logLevel string) *Logger {
	l := &Logger{level: strings.ToLower(logLevel)}
	logger := log.NewLogfmtLogger(log.NewSyncWriter(wr))
	logger = log.With(logger,
		"time", log.DefaultTimestampUTC,
		"app", "attachment-cache",
		"caller", log.Valuer(func() any {
			return pkgCaller{stack.Caller(6)}
		}),
	)

	switch l.level {
	case "debug":
		logger = level.NewFilter(logger, level.AllowDebug())
	case "warn":
		logger = level.NewFilter(logger, level.AllowWarn())
	case "error":
		logger = level.NewFilter(logger, level.AllowError())
	default:
		logger = level.NewFilter(logger, level.AllowInfo())
	}

	l.logger = logger
	return l
}

func mapToArray(event string, detail Pairs) []any {
	a := make([]any, (len(detail)*2)+2)
	a[0] = "event"
	a[1] = event
	i := 2
	for k, v := range detail {
		a[i] = k
		a[i+1] = v
		i += 2
	}
	return a
}

// Debug sends a "DEBUG" event to the Logger
func (l *Logger) Debug(event string, detail Pairs) {
	level.Debug(l.logger).Log(mapToArray(event, detail)...)
}

// Info sends an "INFO" event to the Logger
func (l *Logger) Info(event string, detail Pairs) {
	level.Info(l.logger).Log(mapToArray(event, detail)...)
}

// Warn sends a "WARN" event to the Logger
func (l *Logger) Warn(event string, detail Pairs) {
	level.Warn(l.logger).Log(mapToArray(event, detail)...)
}

// Error sends an "ERROR" event to the Logger
func (l *Logger) Error(event string, detail Pairs) {
	level.Error(l.logger).Log(mapToArray(event, detail)...)
}

// Log implements the go-kit log.Logger interface
func (l *Logger) Log(keyvals ...any) error {
	return l.logger.Log(keyvals...)
}

// Close closes any file handles that were opened for logging
func (l *Logger) Close() {
	if l.closer != nil {
		l.closer.Close()
	}
}

var (
	defaultLogger = ConsoleLogger("info")
	mtx           sync.RWMutex
)

// SetLogger replaces the process-default Logger used by the package-level funcs
func SetLogger(l *Logger) {
	if l == nil {
		return
	}
	mtx.Lock()
	defaultLogger = l
	mtx.Unlock()
}

func current() *Logger {
	mtx.RLock()
	l := defaultLogger
	mtx.RUnlock()
	return l
}

// Debug sends a "DEBUG" event to the default Logger
func Debug(event string, detail Pairs) { current().Debug(event, detail) }

// Info sends an "INFO" event to the default Logger
func Info(event string, detail Pairs) { current().Info(event, detail) }

// Warn sends a "WARN" event to the default Logger
func Warn(event string, detail Pairs) { current().Warn(event, detail) }

// Error sends an "ERROR" event to the default Logger
func Error(event string, detail Pairs) { current().Error(event, detail) }

// pkgCaller wraps a stack.Call so the default string output includes the package path
type pkgCaller struct {
	c stack.Call
}

func (pc pkgCaller) String() string {
	return strings.TrimPrefix(fmt.Sprintf("%+v", pc.c),
		"github.com/andrewjsmart-S55/AscendoreAI-Email-UX-sub003/")
}
