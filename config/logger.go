package config

import (
	"os"

	"github.com/sirupsen/logrus"
)

// InitLogger builds the JSON logger shared by every component.
func InitLogger(level string) *logrus.Logger {
	log := logrus.New()

	log.SetFormatter(&logrus.JSONFormatter{})
	log.SetOutput(os.Stdout)

	parsed, err := logrus.ParseLevel(level)
	if err != nil {
		parsed = logrus.InfoLevel
		log.Warnf("Unknown log level %q, falling back to info", level)
	}
	log.SetLevel(parsed)

	return log
}
