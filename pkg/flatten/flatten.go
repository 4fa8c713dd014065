// Package flatten assembles a new PDF purely from page images.
//
// Every page image is compressed as JPEG and placed, letterboxed, on a page of
// a fixed standard size. Nothing of the source document other than its pixels
// reaches the output, so text and vector content hidden under a redaction
// cannot be recovered from the result.
//
// Key Features:
//
// - One output page per input image, in order
// - Fixed output page size (A4 by default) with aspect-preserving fit
// - Output naming as "<name>_REDACTED.pdf"
// - Optional re-read of the assembled document to confirm its page count
//
// Main Functions:
//
// - Assemble: Builds the flattened PDF bytes from page images
// - Export: Assemble plus output naming
// - Fit: Letterbox placement of an image on a page
package flatten

import (
	"errors"
	"fmt"
	"image"

	"github.com/sirupsen/logrus"
)

var (
	// ErrNoPages is returned when there is nothing to assemble.
	ErrNoPages = errors.New("no page images provided")
	// ErrInvalidQuality is returned for a JPEG quality outside 1-100.
	ErrInvalidQuality = errors.New("JPEG quality must be between 1 and 100")
)

// Result is a flattened document ready to be handed to the caller.
type Result struct {
	Name  string // File name for the flattened document
	Data  []byte // Serialized PDF
	Pages int    // Number of pages in Data
}

// Assemble is a high-level function for creating a flattened PDF from page
// images. Any failure aborts the whole document; no partial output is returned.
func Assemble(pages []image.Image, config Config) ([]byte, error) {
	// Validate inputs
	if len(pages) == 0 {
		return nil, ErrNoPages
	}
	if config.Quality < 1 || config.Quality > 100 {
		return nil, fmt.Errorf("%w, got %d", ErrInvalidQuality, config.Quality)
	}
	for i, img := range pages {
		if img == nil || img.Bounds().Empty() {
			return nil, fmt.Errorf("page %d is empty", i+1)
		}
	}

	encoded, err := encodePages(pages, config.Quality)
	if err != nil {
		return nil, err
	}

	finalPDF, err := createPDFFromImages(encoded, config.Title, config)
	if err != nil {
		return nil, fmt.Errorf("error creating PDF from images: %w", err)
	}

	if config.Verify {
		if err := verifyPageCount(finalPDF, len(pages), config.PDFConfig); err != nil {
			return nil, err
		}
	}

	getLogger(config).WithFields(logrus.Fields{
		"pages": len(pages),
		"bytes": len(finalPDF),
	}).Debug("assembled flattened PDF")
	return finalPDF, nil
}

// Export assembles the flattened document and names it after baseName.
func Export(pages []image.Image, baseName string, config Config) (*Result, error) {
	name := OutputName(baseName)
	if config.Title == "" {
		config.Title = name
	}
	data, err := Assemble(pages, config)
	if err != nil {
		return nil, err
	}
	return &Result{Name: name, Data: data, Pages: len(pages)}, nil
}
