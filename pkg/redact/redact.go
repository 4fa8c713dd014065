// Package redact tracks user-drawn redaction rectangles on the rendered pages
// of a PDF and produces a flattened copy in which those regions are blacked out.
//
// A Session owns one loaded document: its page surfaces, the store of committed
// rectangles and the drag gesture in progress. Callers feed it PointerEvents;
// a completed drag of at least MinRectSize pixels in both directions is burned
// into the page pixels and recorded. Export rasterizes nothing new: it takes
// the final pixels of every surface and hands them to package flatten, so the
// output carries no text or vector content from the source.
//
// Rectangles live in the pixel space of their page surface. Surfaces are never
// rescaled after load, which keeps those coordinates valid until the next Load.
//
// Main Functions:
//
// - NewSession: Creates a session bound to a PDF decoder
// - Session.Load: Admits, decodes and renders a document
// - Session.Handle: Drives the marking state machine with one pointer event
// - Session.Export: Builds the flattened, redacted PDF
package redact

import (
	"errors"
	"fmt"
)

var (
	// ErrFileTooLarge is returned by Load for input above MaxFileSize.
	ErrFileTooLarge = errors.New("file exceeds size limit")
	// ErrDecode is returned by Load when the input is not a readable PDF.
	ErrDecode = errors.New("failed to decode PDF")
	// ErrNoDocument is returned by Export when no document is fully loaded.
	ErrNoDocument = errors.New("no document loaded")
	// ErrNoRedactions is returned by Export when nothing has been marked.
	ErrNoRedactions = errors.New("mark at least one area for blackout")
	// ErrStaleDocument is returned by a Load that a newer Load or Close superseded.
	ErrStaleDocument = errors.New("document was replaced while loading")
	// ErrRectTooSmall is returned when committing a rectangle below MinRectSize.
	ErrRectTooSmall = errors.New("rectangle below minimum size")
)

const (
	// MaxFileSize is the largest accepted input, inclusive.
	MaxFileSize = 20 * 1024 * 1024
	// MinRectSize is the smallest width and height in pixels of a committed rectangle.
	MinRectSize = 5
)

// CheckSize admits an input of n bytes. It runs before any decode attempt.
func CheckSize(n int64) error {
	if n > MaxFileSize {
		return fmt.Errorf("%w: %d bytes, limit is %dMB", ErrFileTooLarge, n, MaxFileSize/1024/1024)
	}
	return nil
}
