package logging

import (
	"os"

	"github.com/sirupsen/logrus"
)

// Logger is the logger type used across the pipeline.
type Logger = *logrus.Logger

// Fields represents structured logging fields.
type Fields = logrus.Fields

// New creates a configured JSON logger. The level comes from LOG_LEVEL
// and defaults to info.
func New() Logger {
	logger := logrus.New()
	logger.SetFormatter(&logrus.JSONFormatter{})

	level, err := logrus.ParseLevel(os.Getenv("LOG_LEVEL"))
	if err != nil {
		level = logrus.InfoLevel
	}
	logger.SetLevel(level)

	return logger
}
