package logging

import (
	"io"
	"os"
	"path/filepath"

	"github.com/multiblog/internal/config"
	"github.com/sirupsen/logrus"
	"gopkg.in/natefinch/lumberjack.v2"
)

// Init 配置全局 logrus：JSON 格式输出到标准输出，配置了文件时同时写入滚动日志。
func Init(cfg config.LogConfig) {
	level, err := logrus.ParseLevel(cfg.Level)
	if err != nil {
		level = logrus.InfoLevel
	}
	logrus.SetLevel(level)

	logrus.SetFormatter(&logrus.JSONFormatter{
		TimestampFormat: "2006-01-02 15:04:05",
	})

	logrus.SetOutput(output(cfg))
	logrus.WithField("level", level.String()).Info("logger initialized")
}

func output(cfg config.LogConfig) io.Writer {
	if cfg.File == "" {
		return os.Stdout
	}

	if err := os.MkdirAll(filepath.Dir(cfg.File), 0o755); err != nil {
		logrus.WithError(err).Warn("cannot create log directory, logging to stdout only")
		return os.Stdout
	}

	return io.MultiWriter(os.Stdout, &lumberjack.Logger{
		Filename:   cfg.File,
		MaxSize:    cfg.MaxSize,
		MaxAge:     cfg.MaxAge,
		MaxBackups: cfg.MaxBackups,
		LocalTime:  true,
		Compress:   true,
	})
}
