package raster

import (
	"image"
	"math"
)

// Surface holds the current pixel content of one rendered page.
type Surface struct {
	PageIndex  int     // 0-based page index
	Scale      float64 // display scale, fixed when the surface was created
	PageWidth  float64 // native page width in points
	PageHeight float64 // native page height in points
	Pixels     *image.RGBA
}

// NewSurface allocates a blank surface for a page of the given native size
// rendered at scale.
func NewSurface(pageIndex int, scale, pageWidth, pageHeight float64) *Surface {
	w := pixelExtent(pageWidth * scale)
	h := pixelExtent(pageHeight * scale)
	return &Surface{
		PageIndex:  pageIndex,
		Scale:      scale,
		PageWidth:  pageWidth,
		PageHeight: pageHeight,
		Pixels:     image.NewRGBA(image.Rect(0, 0, w, h)),
	}
}

// Width returns the surface width in pixels.
func (s *Surface) Width() int { return s.Pixels.Bounds().Dx() }

// Height returns the surface height in pixels.
func (s *Surface) Height() int { return s.Pixels.Bounds().Dy() }

// Bounds returns the pixel bounds of the surface.
func (s *Surface) Bounds() image.Rectangle { return s.Pixels.Bounds() }

// Clone returns a deep copy of the surface.
func (s *Surface) Clone() *Surface {
	pix := make([]uint8, len(s.Pixels.Pix))
	copy(pix, s.Pixels.Pix)
	c := *s
	c.Pixels = &image.RGBA{
		Pix:    pix,
		Stride: s.Pixels.Stride,
		Rect:   s.Pixels.Rect,
	}
	return &c
}

// Redact burns an opaque black rectangle into the surface pixels.
func (s *Surface) Redact(r image.Rectangle) {
	fillOpaque(s.Pixels, r, Redaction)
}

// PixelRect converts a fractional pixel rectangle to the smallest whole-pixel
// rectangle covering it.
func PixelRect(x, y, w, h float64) image.Rectangle {
	return image.Rect(
		int(math.Floor(x)),
		int(math.Floor(y)),
		int(math.Ceil(x+w)),
		int(math.Ceil(y+h)),
	)
}

// pixelExtent truncates a scaled extent to whole pixels the way a canvas
// dimension is assigned, tolerating float noise just below an integer.
func pixelExtent(v float64) int {
	n := int(math.Floor(v + 1e-6))
	if n < 1 {
		return 1
	}
	return n
}
