package flatten

import (
	"time"

	"github.com/pdfcpu/pdfcpu/pkg/pdfcpu/model"
	"github.com/sirupsen/logrus"
)

// Config holds the options for assembling a flattened PDF.
type Config struct {
	Quality      int                  // JPEG quality for page images (1-100)
	PageSize     string               // Output page size name understood by fpdf ("A4", "Letter", ...)
	Orientation  string               // "P" or "L"
	Unit         string               // Unit for page geometry ("pt", "mm", "cm", "in")
	Title        string               // Output document title (empty = derived from the output name)
	Author       string               // Output document author
	Creator      string               // Output document creator
	CreationDate time.Time            // Fixed creation date (zero = now)
	Verify       bool                 // Re-read the assembled PDF and check its page count
	PDFConfig    *model.Configuration // pdfcpu configuration for Verify (nil = pdfcpu defaults)
	Logger       logrus.FieldLogger   // Custom logger (nil = logrus standard logger)
}

// DefaultQuality is the JPEG quality for flattened pages. Recompression
// artifacts are accepted in exchange for a smaller file.
const DefaultQuality = 80

// DefaultConfig returns a config with sensible defaults
func DefaultConfig() Config {
	return Config{
		Quality:     DefaultQuality,
		PageSize:    "A4",
		Orientation: "P",
		Unit:        "pt",
		Creator:     "pdfredact",
		Verify:      true,
		Logger:      nil, // logrus standard logger
	}
}

// getLogger returns the configured logger, defaulting to the logrus standard logger.
func getLogger(config Config) logrus.FieldLogger {
	if config.Logger == nil {
		return logrus.StandardLogger()
	}
	return config.Logger
}
