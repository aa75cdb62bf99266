package logging

import (
	"fmt"

	"github.com/Goodidea-backend-camp/hpb-blog-files/internal/config"
	log "github.com/sirupsen/logrus"
)

// Configure applies level and format from cfg to logger.
func Configure(logger *log.Logger, cfg config.LogConfig) error {
	level, err := log.ParseLevel(cfg.Level)
	if err != nil {
		return fmt.Errorf("invalid log level %q: %w", cfg.Level, err)
	}
	logger.SetLevel(level)

	switch cfg.Format {
	case "json":
		logger.SetFormatter(&log.JSONFormatter{})
	case "text", "":
		logger.SetFormatter(&log.TextFormatter{FullTimestamp: true})
	default:
		return fmt.Errorf("unsupported log format: %s", cfg.Format)
	}

	return nil
}
