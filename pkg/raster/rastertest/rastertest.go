// Package rastertest provides an in-memory raster.Decoder for tests.
package rastertest

import (
	"bytes"
	"errors"
	"fmt"
	"image"
	"image/color"
	"sync"

	"golang.org/x/image/draw"

	"github.com/gardar/pdfredact/pkg/raster"
)

var (
	// ErrNotPDF is returned by Decoder.Open for data without a PDF header.
	ErrNotPDF = errors.New("not a PDF")
	// ErrRender is returned by page renders past Decoder.FailAfter.
	ErrRender = errors.New("render failed")
)

// Ink is the colour of the content band painted on every page.
var Ink = color.RGBA{R: 0x40, G: 0x40, B: 0x40, A: 0xff}

// Size is a page size in points.
type Size struct{ W, H float64 }

// Letter is a US Letter page.
var Letter = Size{W: 612, H: 792}

// Decoder opens any data starting with "%PDF-" as a document with the
// configured page sizes.
type Decoder struct {
	Pages []Size
	// FailAfter makes every page render after the first FailAfter renders
	// fail with ErrRender (0 = never fail).
	FailAfter int

	mu      sync.Mutex
	opened  []*Document
	renders int
}

// NewDecoder returns a Decoder producing documents with the given pages.
func NewDecoder(pages ...Size) *Decoder {
	return &Decoder{Pages: pages}
}

// Open implements raster.Decoder.
func (d *Decoder) Open(data []byte) (raster.Document, error) {
	if !bytes.HasPrefix(data, []byte("%PDF-")) {
		return nil, ErrNotPDF
	}
	doc := &Document{dec: d, pages: append([]Size(nil), d.Pages...)}
	d.mu.Lock()
	d.opened = append(d.opened, doc)
	d.mu.Unlock()
	return doc, nil
}

// Renders returns how many page renders all documents performed.
func (d *Decoder) Renders() int {
	d.mu.Lock()
	defer d.mu.Unlock()
	return d.renders
}

// Opened returns the documents opened so far.
func (d *Decoder) Opened() []*Document {
	d.mu.Lock()
	defer d.mu.Unlock()
	return append([]*Document(nil), d.opened...)
}

// Document is a fake decoded document.
type Document struct {
	dec    *Decoder
	pages  []Size
	closed bool
}

// PageCount implements raster.Document.
func (d *Document) PageCount() int { return len(d.pages) }

// Page implements raster.Document.
func (d *Document) Page(n int) (raster.Page, error) {
	if n < 1 || n > len(d.pages) {
		return nil, fmt.Errorf("page %d: %w", n, raster.ErrPageRange)
	}
	return &page{dec: d.dec, number: n, size: d.pages[n-1]}, nil
}

// Close implements raster.Document.
func (d *Document) Close() error {
	d.dec.mu.Lock()
	d.closed = true
	d.dec.mu.Unlock()
	return nil
}

// IsClosed reports whether Close was called.
func (d *Document) IsClosed() bool {
	d.dec.mu.Lock()
	defer d.dec.mu.Unlock()
	return d.closed
}

type page struct {
	dec    *Decoder
	number int
	size   Size
}

func (p *page) Size() (float64, float64) { return p.size.W, p.size.H }

// Render paints a white page with a horizontal band of Ink between 72 and 144
// points from the top, and a notch whose width encodes the page number.
func (p *page) Render(dst *image.RGBA, scale float64) error {
	p.dec.mu.Lock()
	p.dec.renders++
	fail := p.dec.FailAfter > 0 && p.dec.renders > p.dec.FailAfter
	p.dec.mu.Unlock()
	if fail {
		// Leave dst half painted, like a backend that dies mid-render.
		draw.Draw(dst, dst.Bounds(), image.White, image.Point{}, draw.Src)
		return fmt.Errorf("page %d: %w", p.number, ErrRender)
	}

	b := dst.Bounds()
	draw.Draw(dst, b, image.White, image.Point{}, draw.Src)
	band := image.Rect(b.Min.X, int(72*scale), b.Max.X, int(144*scale))
	draw.Draw(dst, band.Intersect(b), image.NewUniform(Ink), image.Point{}, draw.Src)
	notch := image.Rect(0, b.Max.Y-int(10*scale), int(float64(p.number)*10*scale), b.Max.Y)
	draw.Draw(dst, notch.Intersect(b), image.NewUniform(Ink), image.Point{}, draw.Src)
	return nil
}

// IsBlack reports whether c is pure opaque black.
func IsBlack(c color.Color) bool {
	r, g, b, a := c.RGBA()
	return r == 0 && g == 0 && b == 0 && a == 0xffff
}

// CountBlack counts pure black pixels of img inside r.
func CountBlack(img image.Image, r image.Rectangle) int {
	n := 0
	r = r.Intersect(img.Bounds())
	for y := r.Min.Y; y < r.Max.Y; y++ {
		for x := r.Min.X; x < r.Max.X; x++ {
			if IsBlack(img.At(x, y)) {
				n++
			}
		}
	}
	return n
}
