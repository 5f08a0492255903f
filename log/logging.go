/*************************************************************************
 * Copyright 2017 Gravwell, Inc. All rights reserved.
 * Contact: <legal@gravwell.io>
 *
 * This software may be modified and distributed under the terms of the
 * BSD 2-clause license. See the LICENSE file for details.
 **************************************************************************/

// Package log wraps sirupsen/logrus behind the small, stable API this
// codebase's call sites expect (New, NewFile, Info, Warn, Error,
// Critical, AddWriter), while delegating the actual wire format to
// one of two custom logrus.Formatter implementations: logfmt and
// JSON, selected by SetFormat / LOG_FORMAT.
package log

import (
	"io"
	"os"
	"sync"

	"github.com/sirupsen/logrus"
)

const defaultTarget = "geocore"

// StderrCallback is invoked with the newly opened override file when
// newStderrLogger redirects the process's stderr to a file on disk.
type StderrCallback func(*os.File)

// Logger is a thread-safe, leveled, formatted logger. The zero value
// is not usable; construct one with New or NewFile.
type Logger struct {
	mu      sync.Mutex
	log     *logrus.Logger
	writers []io.Writer
	target  string
	enabled bool
	closer  io.Closer
}

// New builds a Logger writing logfmt-formatted records to w.
func New(w io.Writer) *Logger {
	l := logrus.New()
	l.SetLevel(logrus.TraceLevel)
	l.ExitFunc = func(int) {} // Critical uses FatalLevel without exiting the process
	lg := &Logger{
		log:     l,
		writers: []io.Writer{w},
		target:  defaultTarget,
		enabled: true,
	}
	l.SetOutput(w)
	l.SetFormatter(&logfmtFormatter{target: &lg.target})
	return lg
}

// NewFile opens (creating if needed) the file at p in append mode and
// returns a Logger that writes to it. Close releases the file.
func NewFile(p string) (*Logger, error) {
	f, err := os.OpenFile(p, os.O_CREATE|os.O_WRONLY|os.O_APPEND, 0640)
	if err != nil {
		return nil, err
	}
	lg := New(f)
	lg.closer = f
	return lg, nil
}

// SetTarget sets the "target" field rendered with every record.
func (lg *Logger) SetTarget(t string) {
	lg.mu.Lock()
	defer lg.mu.Unlock()
	lg.target = t
}

// SetFormat selects the wire format: "json" or anything else for
// logfmt.
func (lg *Logger) SetFormat(format string) {
	lg.mu.Lock()
	defer lg.mu.Unlock()
	if format == "json" {
		lg.log.SetFormatter(&jsonFormatter{target: &lg.target})
	} else {
		lg.log.SetFormatter(&logfmtFormatter{target: &lg.target})
	}
}

// SetLevel parses a RUST_LOG-style level string
// (off|error|warn|info|debug|trace) and filters records below it.
func (lg *Logger) SetLevel(level string) error {
	lg.mu.Lock()
	defer lg.mu.Unlock()
	if level == "off" {
		lg.enabled = false
		return nil
	}
	lvl, err := logrus.ParseLevel(level)
	if err != nil {
		return err
	}
	lg.enabled = true
	lg.log.SetLevel(lvl)
	return nil
}

// AddWriter fans subsequent records out to an additional writer
// alongside the existing ones.
func (lg *Logger) AddWriter(w io.Writer) {
	lg.mu.Lock()
	defer lg.mu.Unlock()
	lg.writers = append(lg.writers, w)
	lg.log.SetOutput(io.MultiWriter(lg.writers...))
}

// Close releases the file Logger was constructed with via NewFile. It
// is a no-op for a Logger built with New.
func (lg *Logger) Close() error {
	if lg.closer != nil {
		return lg.closer.Close()
	}
	return nil
}

func (lg *Logger) emit(level logrus.Level, pairs []interface{}, format string, args []interface{}) error {
	lg.mu.Lock()
	enabled := lg.enabled
	lg.mu.Unlock()
	if !enabled {
		return nil
	}
	entry := lg.log.WithFields(fieldsFromKV(pairs))
	entry.Logf(level, format, args...)
	return nil
}

// kv is one structured field passed to InfoKV/WarnKV/ErrorKV, kept in
// call order rather than folded into a map, so the formatters can
// render fields in the order the caller wrote them.
type kv struct {
	key string
	val interface{}
}

// orderedFieldsKey is the single logrus.Fields entry fieldsFromKV
// populates; the formatters read it back with orderedFields and never
// see the raw pairs as individual map keys.
const orderedFieldsKey = "_kv"

func fieldsFromKV(pairs []interface{}) logrus.Fields {
	if len(pairs) == 0 {
		return nil
	}
	ordered := make([]kv, 0, len(pairs)/2)
	for i := 0; i+1 < len(pairs); i += 2 {
		key, ok := pairs[i].(string)
		if !ok {
			continue
		}
		ordered = append(ordered, kv{key: key, val: pairs[i+1]})
	}
	if len(ordered) == 0 {
		return nil
	}
	return logrus.Fields{orderedFieldsKey: ordered}
}

// Info logs at info level.
func (lg *Logger) Info(format string, args ...interface{}) error {
	return lg.emit(logrus.InfoLevel, nil, format, args)
}

// Warn logs at warn level.
func (lg *Logger) Warn(format string, args ...interface{}) error {
	return lg.emit(logrus.WarnLevel, nil, format, args)
}

// Error logs at error level.
func (lg *Logger) Error(format string, args ...interface{}) error {
	return lg.emit(logrus.ErrorLevel, nil, format, args)
}

// Critical logs at the highest severity level without terminating the
// process.
func (lg *Logger) Critical(format string, args ...interface{}) error {
	return lg.emit(logrus.FatalLevel, nil, format, args)
}

// InfoKV logs at info level with structured key/value pairs appended
// after msg.
func (lg *Logger) InfoKV(msg string, kv ...interface{}) error {
	return lg.emit(logrus.InfoLevel, kv, msg, nil)
}

// WarnKV logs at warn level with structured key/value pairs.
func (lg *Logger) WarnKV(msg string, kv ...interface{}) error {
	return lg.emit(logrus.WarnLevel, kv, msg, nil)
}

// ErrorKV logs at error level with structured key/value pairs.
func (lg *Logger) ErrorKV(msg string, kv ...interface{}) error {
	return lg.emit(logrus.ErrorLevel, kv, msg, nil)
}
