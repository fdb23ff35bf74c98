// logging/logging.go

// Package logging holds the host's HTTP logging middleware and the rolling
// file sink. Logger construction lives in logging/zaplog.
package logging

import (
	"strings"

	"github.com/natefinch/lumberjack"
	"go.uber.org/zap"
	"go.uber.org/zap/zapcore"
)

// FileOptions controls the rolling log file.
type FileOptions struct {
	MaxSizeMB  int // default 50
	MaxBackups int // default 7
	MaxAgeDays int // default 14
	Compress   bool
}

// WithFile tees logger into a JSON log file rotated by lumberjack, at the
// same level as logger. An empty path returns logger unchanged. The
// returned close func flushes and closes the file.
func WithFile(logger *zap.Logger, path string, opts FileOptions) (*zap.Logger, func() error) {
	if strings.TrimSpace(path) == "" {
		return logger, func() error { return nil }
	}
	if opts.MaxSizeMB == 0 {
		opts.MaxSizeMB = 50
	}
	if opts.MaxBackups == 0 {
		opts.MaxBackups = 7
	}
	if opts.MaxAgeDays == 0 {
		opts.MaxAgeDays = 14
	}
	sink := &lumberjack.Logger{
		Filename:   path,
		MaxSize:    opts.MaxSizeMB,
		MaxBackups: opts.MaxBackups,
		MaxAge:     opts.MaxAgeDays,
		Compress:   opts.Compress,
	}

	enc := zap.NewProductionEncoderConfig()
	enc.EncodeTime = zapcore.ISO8601TimeEncoder
	fileCore := zapcore.NewCore(zapcore.NewJSONEncoder(enc), zapcore.AddSync(sink), logger.Core())

	tee := logger.WithOptions(zap.WrapCore(func(c zapcore.Core) zapcore.Core {
		return zapcore.NewTee(c, fileCore)
	}))
	return tee, func() error {
		_ = tee.Sync()
		return sink.Close()
	}
}
