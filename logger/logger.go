// Copyright (c) 2024, The Network Simulator Authors.
// All rights reserved.
//
// Redistribution and use in source and binary forms, with or without
// modification, are permitted provided that the following conditions are met:
// 1. Redistributions of source code must retain the above copyright
//    notice, this list of conditions and the following disclaimer.
// 2. Redistributions in binary form must reproduce the above copyright
//    notice, this list of conditions and the following disclaimer in the
//    documentation and/or other materials provided with the distribution.
// 3. Neither the name of the copyright holder nor the
//    names of its contributors may be used to endorse or promote products
//    derived from this software without specific prior written permission.
//
// THIS SOFTWARE IS PROVIDED BY THE COPYRIGHT HOLDERS AND CONTRIBUTORS "AS IS"
// AND ANY EXPRESS OR IMPLIED WARRANTIES, INCLUDING, BUT NOT LIMITED TO, THE
// IMPLIED WARRANTIES OF MERCHANTABILITY AND FITNESS FOR A PARTICULAR PURPOSE
// ARE DISCLAIMED. IN NO EVENT SHALL THE COPYRIGHT HOLDER OR CONTRIBUTORS BE
// LIABLE FOR ANY DIRECT, INDIRECT, INCIDENTAL, SPECIAL, EXEMPLARY, OR
// CONSEQUENTIAL DAMAGES (INCLUDING, BUT NOT LIMITED TO, PROCUREMENT OF
// SUBSTITUTE GOODS OR SERVICES; LOSS OF USE, DATA, OR PROFITS; OR BUSINESS
// INTERRUPTION) HOWEVER CAUSED AND ON ANY THEORY OF LIABILITY, WHETHER IN
// CONTRACT, STRICT LIABILITY, OR TORT (INCLUDING NEGLIGENCE OR OTHERWISE)
// ARISING IN ANY WAY OUT OF THE USE OF THIS SOFTWARE, EVEN IF ADVISED OF THE
// POSSIBILITY OF SUCH DAMAGE.

// Package logger provides leveled logging for the simulator. Once a
// simulation is running, record timestamps carry the logical clock rather
// than wall-clock time.
package logger

import (
	"encoding/json"
	"fmt"
	"strings"
	"time"

	"github.com/stretchr/testify/assert"
	"go.uber.org/zap"
	"go.uber.org/zap/zapcore"
)

// Level is the log-level for logging what happens in the simulation as a whole.
type Level int8

const (
	TraceLevel   Level = 6
	DebugLevel   Level = 5
	InfoLevel    Level = 4
	WarnLevel    Level = 2
	ErrorLevel   Level = 1
	PanicLevel   Level = 0
	FatalLevel   Level = -1
	OffLevel     Level = -2
	MinLevel           = OffLevel
	DefaultLevel       = InfoLevel
)

var (
	cfg          zap.Config
	zaplogger    *zap.Logger
	currentLevel Level
	timeSource   func() float64
	zapLevels    = []zapcore.Level{zapcore.FatalLevel + 1, zapcore.FatalLevel, zapcore.PanicLevel,
		zapcore.ErrorLevel, zapcore.WarnLevel, zapcore.WarnLevel, zapcore.InfoLevel, zapcore.DebugLevel,
		zapcore.DebugLevel}
)

func init() {
	cfgJson := []byte(`{
		"level": "debug",
		"outputPaths": ["stderr"],
		"errorOutputPaths": ["stderr"],
		"encoding": "console",
		"encoderConfig": {
			"messageKey": "message",
			"levelKey": "level",
			"levelEncoder": "lowercase"
		}
	}`)
	currentLevel = DefaultLevel

	if err := json.Unmarshal(cfgJson, &cfg); err != nil {
		panic(err)
	}
	cfg.EncoderConfig.EncodeTime = zapcore.ISO8601TimeEncoder
	rebuildLoggerFromCfg()
}

// SetLevel sets the log level.
func SetLevel(lv Level) {
	currentLevel = lv
}

// GetLevel gets the current log level.
func GetLevel() Level {
	return currentLevel
}

// ParseLevel parses a level name as accepted on the command line.
func ParseLevel(level string) Level {
	switch strings.ToLower(level) {
	case "trace", "t":
		return TraceLevel
	case "debug", "d":
		return DebugLevel
	case "info", "i":
		return InfoLevel
	case "warn", "warning", "w":
		return WarnLevel
	case "error", "e":
		return ErrorLevel
	case "off", "none":
		return OffLevel
	default:
		return DefaultLevel
	}
}

// SetTimeSource installs the simulation clock; formatted records substitute
// its value for wall-clock timestamps.
func SetTimeSource(ts func() float64) {
	timeSource = ts
}

// SetOutput sets the output writers, e.g. []string{"stderr", "sim.log"}.
func SetOutput(outputs []string) {
	cfg.OutputPaths = outputs
	rebuildLoggerFromCfg()
}

func rebuildLoggerFromCfg() {
	if newLogger, err := cfg.Build(); err == nil {
		if zaplogger != nil {
			_ = zaplogger.Sync()
		}
		zaplogger = newLogger
	} else {
		panic(err)
	}
}

// getMessage formats a string efficiently with Sprint, Sprintf, or neither.
func getMessage(template string, fmtArgs []interface{}) string {
	if len(fmtArgs) == 0 {
		return template
	}
	if template != "" {
		return fmt.Sprintf(template, fmtArgs...)
	}
	if len(fmtArgs) == 1 {
		if str, ok := fmtArgs[0].(string); ok {
			return str
		}
	}
	return fmt.Sprint(fmtArgs...)
}

func timePrefix() string {
	if timeSource != nil {
		return fmt.Sprintf("t=%-12.3f - ", timeSource())
	}
	return time.Now().Format("2006-01-02 15:04:05.000") + " - "
}

// Log outputs the log message/object at the specified level.
func Log(level Level, msg interface{}) {
	if level > currentLevel {
		return
	}
	Logf(level, "", []interface{}{msg})
}

// Logf outputs a formatted log message at the specified level.
func Logf(level Level, format string, args []interface{}) {
	if level > currentLevel {
		return
	}
	zaplogger.Log(zapLevels[level-MinLevel], timePrefix()+getMessage(format, args))
}

func Tracef(format string, args ...interface{}) {
	Logf(TraceLevel, format, args)
}

func Debugf(format string, args ...interface{}) {
	Logf(DebugLevel, format, args)
}

func Infof(format string, args ...interface{}) {
	Logf(InfoLevel, format, args)
}

func Warnf(format string, args ...interface{}) {
	Logf(WarnLevel, format, args)
}

func Errorf(format string, args ...interface{}) {
	Logf(ErrorLevel, format, args)
}

// Panicf logs at panic level and panics; use for fatal caller bugs.
func Panicf(format string, args ...interface{}) {
	zaplogger.Log(zapcore.PanicLevel, timePrefix()+getMessage(format, args))
}

func Fatalf(format string, args ...interface{}) {
	zaplogger.Log(zapcore.FatalLevel, timePrefix()+getMessage(format, args))
}

func Error(args ...interface{}) {
	Log(ErrorLevel, args)
}

func Panic(args ...interface{}) {
	zaplogger.Log(zapcore.PanicLevel, timePrefix()+getMessage("", args))
}

func PanicIfError(err error, args ...interface{}) {
	if len(args) == 0 {
		args = []interface{}{err}
	}
	if err != nil {
		Panic(args...)
	}
}

func PanicfIfError(err error, format string, args ...interface{}) {
	if err != nil {
		Panicf(format, args...)
	}
}

type assertLogger struct{}

func (t assertLogger) Errorf(format string, args ...interface{}) {
	Panicf(format, args...)
}

func AssertEqual(expected, actual interface{}, msgAndArgs ...interface{}) bool {
	return assert.Equal(assertLogger{}, expected, actual, msgAndArgs...)
}

func AssertNil(object interface{}, msgAndArgs ...interface{}) bool {
	return assert.Nil(assertLogger{}, object, msgAndArgs...)
}

func AssertNotNil(object interface{}, msgAndArgs ...interface{}) bool {
	return assert.NotNil(assertLogger{}, object, msgAndArgs...)
}

func AssertTrue(value bool, msgAndArgs ...interface{}) bool {
	return assert.True(assertLogger{}, value, msgAndArgs...)
}

func AssertFalse(value bool, msgAndArgs ...interface{}) bool {
	return assert.False(assertLogger{}, value, msgAndArgs...)
}

func AssertTruef(value bool, msg string, args ...interface{}) bool {
	return assert.Truef(assertLogger{}, value, msg, args...)
}
