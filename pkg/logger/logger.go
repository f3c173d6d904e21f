package logger

import (
	"os"

	"github.com/natefinch/lumberjack"
	"github.com/pkg/errors"
	"go.uber.org/zap"
	"go.uber.org/zap/zapcore"

	"github.com/huynhanx03/go-observe/pkg/settings"
)

const (
	defaultMaxSize    = 100 // megabytes
	defaultMaxBackups = 3
	defaultMaxAge     = 28 // days
)

// New builds a JSON zap logger from cfg.
// With FileLogName set, entries go to a rotated file and to stdout; otherwise to stderr only.
func New(cfg settings.Logger) (*zap.Logger, error) {
	if err := settings.Validate(cfg); err != nil {
		return nil, err
	}

	level := zapcore.InfoLevel
	if cfg.LogLevel != "" {
		if err := level.Set(cfg.LogLevel); err != nil {
			return nil, errors.Wrapf(err, "logger: parse level %q", cfg.LogLevel)
		}
	}

	encoderCfg := zap.NewProductionEncoderConfig()
	encoderCfg.TimeKey = "time"
	encoderCfg.EncodeTime = zapcore.ISO8601TimeEncoder
	encoder := zapcore.NewJSONEncoder(encoderCfg)

	var sink zapcore.WriteSyncer
	if cfg.FileLogName == "" {
		sink = zapcore.Lock(os.Stderr)
	} else {
		sink = zapcore.NewMultiWriteSyncer(
			zapcore.AddSync(newRotator(cfg)),
			zapcore.Lock(os.Stdout),
		)
	}

	core := zapcore.NewCore(encoder, sink, zap.NewAtomicLevelAt(level))
	return zap.New(core, zap.AddCaller(), zap.AddStacktrace(zapcore.ErrorLevel)), nil
}

func newRotator(cfg settings.Logger) *lumberjack.Logger {
	r := &lumberjack.Logger{
		Filename:   cfg.FileLogName,
		MaxSize:    cfg.MaxSize,
		MaxBackups: cfg.MaxBackups,
		MaxAge:     cfg.MaxAge,
		Compress:   cfg.Compress,
	}
	if r.MaxSize == 0 {
		r.MaxSize = defaultMaxSize
	}
	if r.MaxBackups == 0 {
		r.MaxBackups = defaultMaxBackups
	}
	if r.MaxAge == 0 {
		r.MaxAge = defaultMaxAge
	}
	return r
}
