package redact

import (
	"github.com/sirupsen/logrus"

	"github.com/gardar/pdfredact/pkg/flatten"
)

// Config holds the options of a Session.
type Config struct {
	ViewerWidth int                // Width in pixels every page is rendered to
	Logger      logrus.FieldLogger // Custom logger (nil = logrus standard logger)
	Export      flatten.Config     // Options for the flattened output
}

// DefaultViewerWidth is an 800 px viewer minus 40 px of padding.
const DefaultViewerWidth = 760

// DefaultConfig returns a config with sensible defaults
func DefaultConfig() Config {
	return Config{
		ViewerWidth: DefaultViewerWidth,
		Logger:      nil, // logrus standard logger
		Export:      flatten.DefaultConfig(),
	}
}

// getLogger returns the configured logger, defaulting to the logrus standard logger.
func getLogger(config Config) logrus.FieldLogger {
	if config.Logger == nil {
		return logrus.StandardLogger()
	}
	return config.Logger
}
