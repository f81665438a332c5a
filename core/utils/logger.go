package utils

import (
	"os"
	"strings"

	"github.com/sirupsen/logrus"
)

// Logger wraps logrus so handlers and middleware depend on one injected
// value instead of the global logger.
type Logger struct {
	*logrus.Logger
}

func NewLogger() *Logger {
	l := logrus.New()
	l.SetOutput(os.Stdout)
	l.SetLevel(logrus.InfoLevel)
	l.SetFormatter(&logrus.TextFormatter{
		FullTimestamp:   true,
		TimestampFormat: "2006-01-02 15:04:05",
	})
	return &Logger{Logger: l}
}

// NewLoggerForEnv configures level and format from the deployment mode:
// production and staging log JSON, everything else logs human-readable text.
func NewLoggerForEnv(env, level string) *Logger {
	logger := NewLogger()
	if parsed, err := logrus.ParseLevel(strings.ToLower(strings.TrimSpace(level))); err == nil {
		logger.SetLevel(parsed)
	}
	switch strings.ToLower(strings.TrimSpace(env)) {
	case "production", "staging":
		logger.SetFormatter(&logrus.JSONFormatter{
			TimestampFormat: "2006-01-02T15:04:05.000Z07:00",
		})
	}
	return logger
}
