package logging

import (
	"github.com/sirupsen/logrus"

	"docintel/internal/config"
)

// New builds a logrus logger from config. Unknown levels fall back to info;
// format is "json" or console text.
func New(cfg *config.LogConfig) *logrus.Logger {
	log := logrus.New()

	level, err := logrus.ParseLevel(cfg.Level)
	if err != nil {
		level = logrus.InfoLevel
	}
	log.SetLevel(level)

	if cfg.Format == "json" {
		log.SetFormatter(&logrus.JSONFormatter{})
	} else {
		log.SetFormatter(&logrus.TextFormatter{FullTimestamp: true})
	}

	return log
}
