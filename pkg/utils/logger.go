package utils

import (
	"os"
	"path/filepath"

	"go.uber.org/zap"
	"go.uber.org/zap/zapcore"
	"gopkg.in/natefinch/lumberjack.v2"
)

// InitLogger tees JSON logs to stdout and a rotated file under dir.
// Debug mode switches to the console encoder at debug level.
func InitLogger(dir, name string, debug bool) (*zap.Logger, error) {
	if name == "" {
		name = "chakai-booking"
	}
	if dir != "" {
		if err := os.MkdirAll(dir, 0o755); err != nil {
			return nil, err
		}
	}

	level := zap.NewAtomicLevelAt(zapcore.InfoLevel)
	encCfg := zap.NewProductionEncoderConfig()
	if debug {
		level.SetLevel(zapcore.DebugLevel)
		encCfg = zap.NewDevelopmentEncoderConfig()
	}
	encCfg.TimeKey = "ts"
	encCfg.EncodeTime = zapcore.ISO8601TimeEncoder
	encCfg.EncodeDuration = zapcore.MillisDurationEncoder
	encCfg.EncodeCaller = zapcore.ShortCallerEncoder

	var encoder zapcore.Encoder = zapcore.NewJSONEncoder(encCfg)
	if debug {
		encoder = zapcore.NewConsoleEncoder(encCfg)
	}

	rotated := &lumberjack.Logger{
		Filename:   filepath.Join(dir, name+".log"),
		MaxSize:    20,
		MaxBackups: 10,
		MaxAge:     30,
		LocalTime:  true,
		Compress:   true,
	}

	core := zapcore.NewTee(
		zapcore.NewCore(encoder, zapcore.Lock(os.Stdout), level),
		zapcore.NewCore(encoder, zapcore.AddSync(rotated), level),
	)

	return zap.New(core, zap.AddCaller(), zap.AddStacktrace(zapcore.ErrorLevel)).
		With(zap.String("service", name)), nil
}
