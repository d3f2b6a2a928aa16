// Copyright 2026 The My-Kernel-Mutex Authors.
//
// Licensed under the Apache License, Version 2.0 (the "License");
// you may not use this file except in compliance with the License.
// You may obtain a copy of the License at
//
//     http://www.apache.org/licenses/LICENSE-2.0
//
// Unless required by applicable law or agreed to in writing, software
// distributed under the License is distributed on an "AS IS" BASIS,
// WITHOUT WARRANTIES OR CONDITIONS OF ANY KIND, either express or implied.
// See the License for the specific language governing permissions and
// limitations under the License.

// Package log provides a minimal leveled logging facility.
//
// The package-level logger is replaced atomically, so SetTarget and
// SetLevel may be called at any time, including while other goroutines
// are logging.
package log

import (
	"fmt"
	"io"
	"os"
	"sync"
	"sync/atomic"
	"time"
)

// Level specifies the log level.
type Level uint32

// The following levels are fixed, and can never be changed. Since some
// control is necessary over the verbosity of the scheduler trace, the
// Debug level is exposed as a knob while the others are not.
const (
	// Warning indicates that output should always be emitted.
	Warning Level = iota

	// Info indicates that output should normally be emitted.
	Info

	// Debug indicates that output should not normally be emitted.
	Debug
)

func (l Level) String() string {
	switch l {
	case Warning:
		return "Warning"
	case Info:
		return "Info"
	case Debug:
		return "Debug"
	default:
		return fmt.Sprintf("Invalid level: %d", l)
	}
}

// Emitter is the final destination for log lines.
type Emitter interface {
	// Emit emits the given log statement. This allows for control over
	// the timestamp used for logging.
	Emit(level Level, timestamp time.Time, format string, v ...any)
}

// Writer writes formatted log lines to an underlying io.Writer.
type Writer struct {
	// Next is where output is written.
	Next io.Writer

	// mu protects Next against interleaved writes.
	mu sync.Mutex
}

// Emit emits the message to the underlying writer.
func (w *Writer) Emit(level Level, timestamp time.Time, format string, args ...any) {
	w.mu.Lock()
	defer w.mu.Unlock()
	fmt.Fprintf(w.Next, "%s %s: %s\n", level, timestamp.Format("15:04:05.000000"), fmt.Sprintf(format, args...))
}

// BasicLogger logs messages at or below a fixed level through an Emitter.
type BasicLogger struct {
	Level
	Emitter
}

// Debugf logs a debug statement.
func (l *BasicLogger) Debugf(format string, v ...any) {
	if l.IsLogging(Debug) {
		l.Emit(Debug, time.Now(), format, v...)
	}
}

// Infof logs an informational statement.
func (l *BasicLogger) Infof(format string, v ...any) {
	if l.IsLogging(Info) {
		l.Emit(Info, time.Now(), format, v...)
	}
}

// Warningf logs a warning statement.
func (l *BasicLogger) Warningf(format string, v ...any) {
	if l.IsLogging(Warning) {
		l.Emit(Warning, time.Now(), format, v...)
	}
}

// IsLogging returns whether the given level would be logged.
func (l *BasicLogger) IsLogging(level Level) bool {
	return level <= l.Level
}

// logger is the default logger, swapped atomically.
var logger atomic.Pointer[BasicLogger]

func init() {
	logger.Store(&BasicLogger{
		Level:   Info,
		Emitter: &Writer{Next: os.Stderr},
	})
}

// Log retrieves the global logger.
func Log() *BasicLogger {
	return logger.Load()
}

// SetTarget sets the log target. The level is preserved.
func SetTarget(target Emitter) {
	logger.Store(&BasicLogger{
		Level:   Log().Level,
		Emitter: target,
	})
}

// SetLevel sets the log level. The target is preserved.
func SetLevel(newLevel Level) {
	logger.Store(&BasicLogger{
		Level:   newLevel,
		Emitter: Log().Emitter,
	})
}

// Debugf logs to the global logger.
func Debugf(format string, v ...any) {
	Log().Debugf(format, v...)
}

// Infof logs to the global logger.
func Infof(format string, v ...any) {
	Log().Infof(format, v...)
}

// Warningf logs to the global logger.
func Warningf(format string, v ...any) {
	Log().Warningf(format, v...)
}

// IsLogging returns whether the global logger would log the given level.
func IsLogging(level Level) bool {
	return Log().IsLogging(level)
}
