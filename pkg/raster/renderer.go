package raster

import (
	"context"
	"fmt"
	"image"

	"github.com/sirupsen/logrus"
	"golang.org/x/image/draw"

	"github.com/gardar/pdfredact/pkg/coords"
)

// Renderer rasterizes the pages of one Document at the viewer width.
type Renderer struct {
	doc         Document
	viewerWidth int
	log         logrus.FieldLogger
}

// NewRenderer returns a Renderer for doc. A nil logger uses the logrus standard logger.
func NewRenderer(doc Document, viewerWidth int, log logrus.FieldLogger) *Renderer {
	if log == nil {
		log = logrus.StandardLogger()
	}
	return &Renderer{doc: doc, viewerWidth: viewerWidth, log: log}
}

// RenderPage decodes the page at pageIndex (0-based) and renders it onto a new
// surface scaled to fill the viewer width.
func (r *Renderer) RenderPage(ctx context.Context, pageIndex int) (*Surface, error) {
	if err := ctx.Err(); err != nil {
		return nil, err
	}
	page, err := r.page(pageIndex)
	if err != nil {
		return nil, err
	}

	w, h := page.Size()
	if w <= 0 || h <= 0 {
		return nil, fmt.Errorf("page %d has invalid size %gx%g", pageIndex+1, w, h)
	}
	scale := coords.Scale(float64(r.viewerWidth), w)
	s := NewSurface(pageIndex, scale, w, h)

	wipe(s.Pixels)
	if err := page.Render(s.Pixels, scale); err != nil {
		return nil, fmt.Errorf("unable to render page %d: %w", pageIndex+1, err)
	}

	r.log.WithFields(logrus.Fields{
		"page":   pageIndex + 1,
		"scale":  scale,
		"width":  s.Width(),
		"height": s.Height(),
	}).Debug("rendered page")
	return s, nil
}

// Redraw restores the original page content on s, discarding every earlier
// pixel change, then burns in the committed rectangles and finally paints the
// drag preview if one is given. The preview is never committed state.
//
// The page is rendered off-surface first; if that fails s is left unchanged.
func (r *Renderer) Redraw(s *Surface, committed []image.Rectangle, preview *image.Rectangle) error {
	page, err := r.page(s.PageIndex)
	if err != nil {
		return err
	}

	scratch := image.NewRGBA(s.Pixels.Rect)
	wipe(scratch)
	if err := page.Render(scratch, s.Scale); err != nil {
		return fmt.Errorf("unable to render page %d: %w", s.PageIndex+1, err)
	}
	draw.Draw(s.Pixels, s.Pixels.Rect, scratch, scratch.Rect.Min, draw.Src)

	for _, rect := range committed {
		s.Redact(rect)
	}
	if preview != nil {
		paintPreview(s.Pixels, *preview)
	}
	return nil
}

func (r *Renderer) page(pageIndex int) (Page, error) {
	if pageIndex < 0 || pageIndex >= r.doc.PageCount() {
		return nil, fmt.Errorf("page %d of %d: %w", pageIndex+1, r.doc.PageCount(), ErrPageRange)
	}
	page, err := r.doc.Page(pageIndex + 1)
	if err != nil {
		return nil, fmt.Errorf("failed to get page %d: %w", pageIndex+1, err)
	}
	return page, nil
}
