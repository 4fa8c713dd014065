// Package mupdf implements raster.Decoder on top of MuPDF through go-fitz.
package mupdf

import (
	"bytes"
	"fmt"
	"image"
	"math"

	"github.com/gen2brain/go-fitz"
	"github.com/pdfcpu/pdfcpu/pkg/api"
	"github.com/pdfcpu/pdfcpu/pkg/pdfcpu/model"
	"github.com/pdfcpu/pdfcpu/pkg/pdfcpu/types"

	"github.com/gardar/pdfredact/pkg/raster"
)

// pointsPerInch maps a render scale onto the DPI MuPDF expects.
const pointsPerInch = 72

// boundSlack is how far exact page dimensions may differ from MuPDF's
// whole-point bounds and still describe the same box.
const boundSlack = 2

// Decoder opens PDFs with MuPDF.
type Decoder struct {
	// PDFConfig is used to read exact page dimensions with pdfcpu
	// (nil = pdfcpu default configuration).
	PDFConfig *model.Configuration
}

// NewDecoder returns a MuPDF backed decoder.
func NewDecoder() *Decoder {
	return &Decoder{}
}

// Open decodes data as a PDF document.
func (d Decoder) Open(data []byte) (raster.Document, error) {
	doc, err := fitz.NewFromMemory(data)
	if err != nil {
		return nil, fmt.Errorf("unable to open PDF document: %w", err)
	}
	if doc.NumPage() < 1 {
		doc.Close()
		return nil, fmt.Errorf("PDF document has no pages")
	}
	return &Document{doc: doc, dims: d.pageDims(data, doc.NumPage())}, nil
}

// pageDims reads fractional page sizes, which MuPDF only reports truncated to
// whole points. Documents pdfcpu cannot read fall back to MuPDF's bounds.
func (d Decoder) pageDims(data []byte, pages int) []types.Dim {
	conf := d.PDFConfig
	if conf == nil {
		conf = model.NewDefaultConfiguration()
	} else {
		c := *conf
		conf = &c
	}
	conf.ValidationMode = model.ValidationRelaxed

	dims, err := api.PageDims(bytes.NewReader(data), conf)
	if err != nil || len(dims) != pages {
		return nil
	}
	return dims
}

// Document wraps a MuPDF document.
type Document struct {
	doc  *fitz.Document
	dims []types.Dim // exact page sizes in points, nil when unavailable
}

// PageCount returns the number of pages.
func (d *Document) PageCount() int {
	return d.doc.NumPage()
}

// Page returns page n, counting from 1.
func (d *Document) Page(n int) (raster.Page, error) {
	if n < 1 || n > d.doc.NumPage() {
		return nil, fmt.Errorf("page %d of %d: %w", n, d.doc.NumPage(), raster.ErrPageRange)
	}
	bounds, err := d.doc.Bound(n - 1)
	if err != nil {
		return nil, fmt.Errorf("unable to read bounds of page %d: %w", n, err)
	}
	w, h := float64(bounds.Dx()), float64(bounds.Dy())
	if n <= len(d.dims) {
		dim := d.dims[n-1]
		if math.Abs(dim.Width-w) < boundSlack && math.Abs(dim.Height-h) < boundSlack {
			w, h = dim.Width, dim.Height
		}
	}
	return &Page{doc: d.doc, index: n - 1, width: w, height: h}, nil
}

// Close releases the MuPDF document.
func (d *Document) Close() error {
	return d.doc.Close()
}

// Page is one page of a MuPDF document.
type Page struct {
	doc           *fitz.Document
	index         int
	width, height float64
}

// Size returns the page size in points.
func (p *Page) Size() (float64, float64) {
	return p.width, p.height
}

// Render rasterizes the page at scale and lands it on dst. MuPDF rounds the
// pixmap to whole pixels, so the result is resampled when it is off by one.
func (p *Page) Render(dst *image.RGBA, scale float64) error {
	img, err := p.doc.ImageDPI(p.index, scale*pointsPerInch)
	if err != nil {
		return fmt.Errorf("unable to render page %d: %w", p.index+1, err)
	}
	raster.Fit(dst, img)
	return nil
}
