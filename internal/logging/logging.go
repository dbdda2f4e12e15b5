// Package logging builds the session log stream: one human-readable line per
// event, "<timestamp> - <LEVEL> - <message>", written to a rotated file and
// optionally mirrored to the console.
package logging

import (
	"io"
	"os"

	"go.uber.org/zap"
	"go.uber.org/zap/zapcore"
	"gopkg.in/natefinch/lumberjack.v2"

	"github.com/stigoleg/noafk/internal/config"
)

// TimeLayout matches the timestamps of the classic Python-style log line.
const TimeLayout = "2006-01-02 15:04:05,000"

// EncoderConfig returns the line format shared by every sink.
func EncoderConfig() zapcore.EncoderConfig {
	return zapcore.EncoderConfig{
		TimeKey:          "time",
		LevelKey:         "level",
		MessageKey:       "msg",
		LineEnding:       zapcore.DefaultLineEnding,
		EncodeTime:       zapcore.TimeEncoderOfLayout(TimeLayout),
		EncodeLevel:      zapcore.CapitalLevelEncoder,
		EncodeDuration:   zapcore.StringDurationEncoder,
		ConsoleSeparator: " - ",
	}
}

// New returns a logger for cfg. Console output goes to stdout.
func New(cfg config.LogConfig) (*zap.Logger, error) {
	return NewWithConsole(cfg, os.Stdout)
}

// NewWithConsole is New with an explicit console writer.
func NewWithConsole(cfg config.LogConfig, console io.Writer) (*zap.Logger, error) {
	level := zap.NewAtomicLevelAt(zap.InfoLevel)
	if cfg.Level != "" {
		if err := level.UnmarshalText([]byte(cfg.Level)); err != nil {
			return nil, err
		}
	}

	encoder := zapcore.NewConsoleEncoder(EncoderConfig())
	var cores []zapcore.Core

	if cfg.File != "" {
		fileWriter := zapcore.AddSync(&lumberjack.Logger{
			Filename:   cfg.File,
			MaxSize:    cfg.MaxSizeMB,
			MaxBackups: cfg.MaxBackups,
			MaxAge:     cfg.MaxAgeDays,
			Compress:   cfg.Compress,
		})
		cores = append(cores, zapcore.NewCore(encoder, fileWriter, level))
	}
	if cfg.Console && console != nil {
		cores = append(cores, zapcore.NewCore(encoder.Clone(), zapcore.Lock(zapcore.AddSync(console)), level))
	}
	if len(cores) == 0 {
		return zap.NewNop(), nil
	}

	return zap.New(zapcore.NewTee(cores...)), nil
}

// RedirectStdLog routes the standard library logger into l at info level and
// returns a function restoring the previous output.
func RedirectStdLog(l *zap.Logger) func() {
	return zap.RedirectStdLog(l)
}
