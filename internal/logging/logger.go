package logging

import (
	"os"
	"path/filepath"

	"go.uber.org/zap"
	"go.uber.org/zap/zapcore"
	"gopkg.in/natefinch/lumberjack.v2"
)

// NewLogger always logs to stderr in console form. When logDir is set it also
// writes JSON lines to a rotating file there. level is one of debug, info,
// warn, error; anything else falls back to info.
//
// Logging problems never stop the watchdog: they are reported as warnings on
// stderr instead.
func NewLogger(logDir, level string) *zap.Logger {
	return newLogger(logDir, level, zapcore.Lock(os.Stderr))
}

func newLogger(logDir, level string, console zapcore.WriteSyncer) *zap.Logger {
	var warnings []zap.Field

	lvl := zap.InfoLevel
	if level != "" {
		parsed, err := zapcore.ParseLevel(level)
		if err != nil {
			warnings = append(warnings, zap.String("log_level", level), zap.NamedError("level_error", err))
		} else {
			lvl = parsed
		}
	}

	consoleCfg := zap.NewDevelopmentEncoderConfig()
	consoleCfg.TimeKey = "ts"
	cores := []zapcore.Core{zapcore.NewCore(zapcore.NewConsoleEncoder(consoleCfg), console, lvl)}

	if logDir != "" {
		if err := os.MkdirAll(logDir, 0o755); err != nil {
			warnings = append(warnings, zap.String("log_dir", logDir), zap.NamedError("file_error", err))
		} else {
			w := zapcore.AddSync(&lumberjack.Logger{
				Filename:   filepath.Join(logDir, "watchdog.log"),
				MaxSize:    10, // MB
				MaxBackups: 5,
				MaxAge:     14, // days
				Compress:   true,
			})
			cfg := zap.NewProductionEncoderConfig()
			cfg.TimeKey = "ts"
			cores = append(cores, zapcore.NewCore(zapcore.NewJSONEncoder(cfg), w, lvl))
		}
	}

	logger := zap.New(zapcore.NewTee(cores...))
	if len(warnings) > 0 {
		logger.Warn("logging_degraded", warnings...)
	}
	return logger
}
