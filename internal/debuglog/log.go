// Package debuglog writes leveled diagnostics to a rotating file. The TUI
// owns the terminal, so nothing here may touch stdout or stderr.
package debuglog

import (
	"strings"

	"go.uber.org/zap"
	"go.uber.org/zap/zapcore"
	"gopkg.in/natefinch/lumberjack.v2"
)

var (
	logger  *zap.SugaredLogger
	rotator *lumberjack.Logger
)

// ParseLevel maps a config string to a zap level. "off" (and anything
// unrecognized) disables logging entirely.
func ParseLevel(s string) (zapcore.Level, bool) {
	switch strings.ToLower(strings.TrimSpace(s)) {
	case "debug":
		return zapcore.DebugLevel, true
	case "info":
		return zapcore.InfoLevel, true
	case "warn", "warning":
		return zapcore.WarnLevel, true
	case "error":
		return zapcore.ErrorLevel, true
	default:
		return zapcore.InvalidLevel, false
	}
}

// Setup configures the package logger. An unrecognized or "off" level leaves
// logging disabled, which is the default state.
func Setup(level, filePath string) error {
	zapLevel, enabled := ParseLevel(level)
	if !enabled || filePath == "" {
		Close()
		return nil
	}

	rotator = &lumberjack.Logger{
		Filename:   filePath,
		MaxSize:    8, // MB
		MaxBackups: 2,
		MaxAge:     14, // days
	}

	encoderCfg := zapcore.EncoderConfig{
		TimeKey:        "T",
		LevelKey:       "L",
		MessageKey:     "M",
		LineEnding:     zapcore.DefaultLineEnding,
		EncodeLevel:    zapcore.CapitalLevelEncoder,
		EncodeTime:     zapcore.ISO8601TimeEncoder,
		EncodeDuration: zapcore.StringDurationEncoder,
	}

	core := zapcore.NewCore(
		zapcore.NewConsoleEncoder(encoderCfg),
		zapcore.AddSync(rotator),
		zapLevel,
	)

	logger = zap.New(core).Sugar()
	return nil
}

// Close flushes and disables the logger.
func Close() {
	if logger != nil {
		_ = logger.Sync()
		logger = nil
	}
	if rotator != nil {
		_ = rotator.Close()
		rotator = nil
	}
}

func Debugf(format string, args ...any) {
	if logger != nil {
		logger.Debugf(format, args...)
	}
}

func Infof(format string, args ...any) {
	if logger != nil {
		logger.Infof(format, args...)
	}
}

func Warnf(format string, args ...any) {
	if logger != nil {
		logger.Warnf(format, args...)
	}
}

func Errorf(format string, args ...any) {
	if logger != nil {
		logger.Errorf(format, args...)
	}
}
