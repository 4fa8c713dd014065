// Package coords converts between the pixel space of a rendered page surface and
// the point space of the PDF page it was rendered from.
//
// Pixel space has its origin at the top-left corner of the surface with y growing
// downward. Document space has its origin at the bottom-left corner of the page
// with y growing upward, measured in points at scale 1.
//
// The export path flattens pages pixel-for-pixel and does not consult this
// package. It is used for reporting redactions in document coordinates and for
// any export path that plots rectangles in point space.
package coords

import (
	"github.com/golang/geo/r1"
	"github.com/golang/geo/r2"
)

// ToDocument converts a pixel position on a surface rendered at scale to a
// position in document points. pageHeight is the page height at scale 1.
func ToDocument(px r2.Point, scale, pageHeight float64) r2.Point {
	return r2.Point{
		X: px.X / scale,
		Y: pageHeight - px.Y/scale,
	}
}

// ToPixel is the inverse of ToDocument.
func ToPixel(pt r2.Point, scale, pageHeight float64) r2.Point {
	return r2.Point{
		X: pt.X * scale,
		Y: (pageHeight - pt.Y) * scale,
	}
}

// RectToDocument maps a pixel-space rectangle to document space. The y axis
// flips, so the rectangle's top edge in pixels becomes its upper bound in points.
func RectToDocument(r r2.Rect, scale, pageHeight float64) r2.Rect {
	lo := ToDocument(r.Lo(), scale, pageHeight)
	hi := ToDocument(r.Hi(), scale, pageHeight)
	return r2.Rect{
		X: r1.Interval{Lo: lo.X, Hi: hi.X},
		Y: r1.Interval{Lo: hi.Y, Hi: lo.Y},
	}
}

// Scale returns the render scale that maps a page of nativeWidth points onto
// a surface viewerWidth pixels wide.
func Scale(viewerWidth, nativeWidth float64) float64 {
	return viewerWidth / nativeWidth
}
