package redact

import (
	"fmt"
	"image"
)

// Store is the ordered, append-only list of committed rectangles of one
// document. It is not safe for concurrent use; Session serializes access.
type Store struct {
	rects []Rect
}

// Add appends r. Rectangles below MinRectSize are refused.
func (s *Store) Add(r Rect) error {
	if !r.Valid() {
		return fmt.Errorf("%w: %gx%g", ErrRectTooSmall, r.Width, r.Height)
	}
	s.rects = append(s.rects, r)
	return nil
}

// Page returns the rectangles of one page in commit order.
func (s *Store) Page(page int) []Rect {
	var out []Rect
	for _, r := range s.rects {
		if r.Page == page {
			out = append(out, r)
		}
	}
	return out
}

// PagePixels returns the pixel areas of one page's rectangles.
func (s *Store) PagePixels(page int) []image.Rectangle {
	var out []image.Rectangle
	for _, r := range s.rects {
		if r.Page == page {
			out = append(out, r.Pixels())
		}
	}
	return out
}

// All returns a copy of every rectangle in commit order.
func (s *Store) All() []Rect {
	return append([]Rect(nil), s.rects...)
}

// Len returns the number of committed rectangles.
func (s *Store) Len() int { return len(s.rects) }

// Reset drops every rectangle. Only a new document load does this.
func (s *Store) Reset() { s.rects = nil }
