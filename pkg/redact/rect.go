package redact

import (
	"fmt"
	"image"

	"github.com/golang/geo/r1"
	"github.com/golang/geo/r2"

	"github.com/gardar/pdfredact/pkg/coords"
	"github.com/gardar/pdfredact/pkg/raster"
)

// Rect is a committed redaction in the pixel space of its page surface.
type Rect struct {
	Page   int     `json:"pageIndex"` // 0-based page index
	MinX   float64 `json:"minX_px"`
	MinY   float64 `json:"minY_px"`
	Width  float64 `json:"width_px"`
	Height float64 `json:"height_px"`
}

// Normalize returns the rectangle spanned by two drag corners, whatever the
// drag direction.
func Normalize(page int, start, end r2.Point) Rect {
	b := r2.RectFromPoints(start, end)
	return Rect{
		Page:   page,
		MinX:   b.X.Lo,
		MinY:   b.Y.Lo,
		Width:  b.X.Length(),
		Height: b.Y.Length(),
	}
}

// Valid reports whether r is large enough to be committed.
func (r Rect) Valid() bool {
	return r.Width >= MinRectSize && r.Height >= MinRectSize
}

// R2 returns r as an r2.Rect in pixel space.
func (r Rect) R2() r2.Rect {
	return r2.Rect{
		X: r1.Interval{Lo: r.MinX, Hi: r.MinX + r.Width},
		Y: r1.Interval{Lo: r.MinY, Hi: r.MinY + r.Height},
	}
}

// Pixels returns the whole pixels r covers.
func (r Rect) Pixels() image.Rectangle {
	return raster.PixelRect(r.MinX, r.MinY, r.Width, r.Height)
}

// Document maps r onto document points for a surface rendered at scale from a
// page pageHeight points tall.
func (r Rect) Document(scale, pageHeight float64) r2.Rect {
	return coords.RectToDocument(r.R2(), scale, pageHeight)
}

func (r Rect) String() string {
	return fmt.Sprintf("page %d [%g,%g %gx%g]", r.Page+1, r.MinX, r.MinY, r.Width, r.Height)
}
