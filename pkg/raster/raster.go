// Package raster renders PDF pages onto fixed-size pixel surfaces and burns
// redaction rectangles into them.
//
// A Surface is created once per page at a display scale chosen so the page fills
// the viewer width. The scale never changes afterwards, which keeps pixel-space
// rectangles stable for the lifetime of a loaded document.
//
// The package does not decode PDFs itself. It drives a Decoder, the contract a
// PDF rendering backend (see package mupdf) has to satisfy:
//
//   - Decoder.Open turns raw bytes into a Document or fails
//   - Document.Page returns a page by 1-based number
//   - Page.Size reports the page geometry in points at scale 1
//   - Page.Render rasterizes the page at a scale onto a surface
package raster

import (
	"errors"
	"image"
)

// ErrPageRange is returned for page numbers outside the document.
var ErrPageRange = errors.New("page number out of range")

// Decoder opens PDF documents from memory.
type Decoder interface {
	Open(data []byte) (Document, error)
}

// Document is a decoded PDF.
type Document interface {
	PageCount() int
	// Page returns page n, counting from 1.
	Page(n int) (Page, error)
	Close() error
}

// Page is one decoded page of a Document.
type Page interface {
	// Size returns the page width and height in points at scale 1.
	Size() (width, height float64)
	// Render rasterizes the page at scale into dst, covering all of dst's bounds.
	Render(dst *image.RGBA, scale float64) error
}
