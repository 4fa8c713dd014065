package raster

import (
	"image"
	"image/color"

	colorful "github.com/lucasb-eyer/go-colorful"
	"golang.org/x/image/draw"
)

// Redaction is the fill used for committed rectangles.
var Redaction = color.RGBA{A: 0xff}

var (
	previewHue = colorful.Color{R: 1}

	// PreviewStroke outlines the rectangle being dragged.
	PreviewStroke = toNRGBA(previewHue, 1)
	// PreviewFill tints the inside of the rectangle being dragged.
	PreviewFill = toNRGBA(previewHue, 0.3)
)

// previewLineWidth is the outline width in pixels, centred on the rectangle edge.
const previewLineWidth = 2

func toNRGBA(c colorful.Color, alpha float64) color.NRGBA {
	r, g, b := c.Clamped().RGB255()
	return color.NRGBA{R: r, G: g, B: b, A: uint8(alpha*255 + 0.5)}
}

func fillOpaque(dst *image.RGBA, r image.Rectangle, c color.Color) {
	r = r.Intersect(dst.Bounds())
	if r.Empty() {
		return
	}
	draw.Draw(dst, r, image.NewUniform(c), image.Point{}, draw.Src)
}

func blend(dst *image.RGBA, r image.Rectangle, c color.Color) {
	r = r.Intersect(dst.Bounds())
	if r.Empty() {
		return
	}
	draw.Draw(dst, r, image.NewUniform(c), image.Point{}, draw.Over)
}

// paintPreview draws the non-committed drag feedback: an outline followed by a
// translucent fill over the same area.
func paintPreview(dst *image.RGBA, r image.Rectangle) {
	if r.Dx() == 0 && r.Dy() == 0 {
		return
	}
	half := previewLineWidth / 2
	outer := r.Inset(-half)
	inner := r.Inset(half)
	if inner.Empty() {
		blend(dst, outer, PreviewStroke)
	} else {
		blend(dst, image.Rect(outer.Min.X, outer.Min.Y, outer.Max.X, inner.Min.Y), PreviewStroke)
		blend(dst, image.Rect(outer.Min.X, inner.Max.Y, outer.Max.X, outer.Max.Y), PreviewStroke)
		blend(dst, image.Rect(outer.Min.X, inner.Min.Y, inner.Min.X, inner.Max.Y), PreviewStroke)
		blend(dst, image.Rect(inner.Max.X, inner.Min.Y, outer.Max.X, inner.Max.Y), PreviewStroke)
	}
	blend(dst, r, PreviewFill)
}

// Fit copies src onto all of dst, resampling when the sizes differ. Decoders
// use it to land a rendered page on the exact surface dimensions.
func Fit(dst *image.RGBA, src image.Image) {
	if src.Bounds().Size() == dst.Bounds().Size() {
		draw.Draw(dst, dst.Bounds(), src, src.Bounds().Min, draw.Src)
		return
	}
	draw.CatmullRom.Scale(dst, dst.Bounds(), src, src.Bounds(), draw.Src, nil)
}

func wipe(dst *image.RGBA) {
	draw.Draw(dst, dst.Bounds(), image.White, image.Point{}, draw.Src)
}
