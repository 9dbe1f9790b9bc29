// internal/logging/logging.go
package logging

import (
	"io"
	"os"
	"strings"

	"github.com/sirupsen/logrus"
	"gopkg.in/natefinch/lumberjack.v2"

	"github.com/haspco/safety-catalog/internal/config"
)

// Setup configures the standard logrus logger from cfg and returns it. When
// a log file is configured, output goes to stdout and a rotating file.
func Setup(cfg config.LogConfig) (*logrus.Logger, io.Closer) {
	log := logrus.StandardLogger()
	closer := Configure(log, cfg, os.Stdout)
	return log, closer
}

// Configure applies cfg to log, writing to stdout plus the optional file.
func Configure(log *logrus.Logger, cfg config.LogConfig, stdout io.Writer) io.Closer {
	level, err := logrus.ParseLevel(strings.TrimSpace(cfg.Level))
	if err != nil {
		level = logrus.InfoLevel
	}
	log.SetLevel(level)

	if strings.EqualFold(cfg.Format, "json") {
		log.SetFormatter(&logrus.JSONFormatter{})
	} else {
		log.SetFormatter(&logrus.TextFormatter{FullTimestamp: true})
	}

	if cfg.File == "" {
		log.SetOutput(stdout)
		return nopCloser{}
	}

	file := &lumberjack.Logger{
		Filename:   cfg.File,
		MaxSize:    cfg.MaxSizeMB,
		MaxBackups: cfg.MaxBackups,
		MaxAge:     7,
	}
	log.SetOutput(io.MultiWriter(stdout, file))
	return file
}

type nopCloser struct{}

func (nopCloser) Close() error { return nil }
