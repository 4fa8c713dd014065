package redact

import (
	"context"
	"fmt"
	"image"
	"sync"

	"github.com/sirupsen/logrus"
	"golang.org/x/sync/semaphore"

	"github.com/gardar/pdfredact/pkg/flatten"
	"github.com/gardar/pdfredact/pkg/raster"
)

// Session is one viewer session: at most one loaded document, its page
// surfaces, its committed rectangles and the gesture in progress.
//
// All state is guarded by a single mutex held for the duration of each
// mutation. Page rendering during Load runs outside the lock so a newer Load
// can supersede it without waiting.
type Session struct {
	decoder raster.Decoder
	config  Config
	log     logrus.FieldLogger

	mu       sync.Mutex
	gen      uint64 // bumped by every Load and Close
	ready    bool   // every page of the current document is rendered
	name     string
	doc      raster.Document
	renderer *raster.Renderer
	surfaces []*raster.Surface
	store    Store
	gesture  gesture

	exporting *semaphore.Weighted
}

// NewSession returns an empty session that decodes documents with decoder.
func NewSession(decoder raster.Decoder, config Config) *Session {
	if config.ViewerWidth <= 0 {
		config.ViewerWidth = DefaultViewerWidth
	}
	log := getLogger(config)
	if config.Export.Logger == nil {
		config.Export.Logger = log
	}
	return &Session{
		decoder:   decoder,
		config:    config,
		log:       log,
		exporting: semaphore.NewWeighted(1),
	}
}

// Load replaces the session's document with the PDF in data.
//
// Input above MaxFileSize is refused before anything changes. Otherwise the
// previous document, surfaces and rectangles are discarded, the new document is
// decoded and every page is rendered in order. On failure the session is left
// empty and export stays unavailable.
func (s *Session) Load(ctx context.Context, name string, data []byte) error {
	if err := CheckSize(int64(len(data))); err != nil {
		s.log.WithField("file", name).Warn(err)
		return err
	}

	s.mu.Lock()
	s.gen++
	gen := s.gen
	s.resetLocked()
	s.name = name
	s.mu.Unlock()

	doc, err := s.decoder.Open(data)
	if err != nil {
		s.log.WithField("file", name).WithError(err).Error("error loading PDF")
		s.clear(gen)
		return fmt.Errorf("%w: %w", ErrDecode, err)
	}

	renderer := raster.NewRenderer(doc, s.config.ViewerWidth, s.log)
	s.mu.Lock()
	if s.gen != gen {
		s.mu.Unlock()
		doc.Close()
		return ErrStaleDocument
	}
	s.doc = doc
	s.renderer = renderer
	s.mu.Unlock()

	pageCount := doc.PageCount()
	for i := 0; i < pageCount; i++ {
		surf, err := renderer.RenderPage(ctx, i)
		if err != nil {
			s.abandon(gen, doc)
			return fmt.Errorf("failed to load page %d: %w", i+1, err)
		}

		s.mu.Lock()
		if s.gen != gen {
			s.mu.Unlock()
			doc.Close()
			return ErrStaleDocument
		}
		s.surfaces = append(s.surfaces, surf)
		s.mu.Unlock()
	}

	s.mu.Lock()
	defer s.mu.Unlock()
	if s.gen != gen {
		doc.Close()
		return ErrStaleDocument
	}
	s.ready = true

	s.log.WithFields(logrus.Fields{
		"file":  name,
		"pages": pageCount,
		"width": s.config.ViewerWidth,
	}).Info("PDF loaded")
	return nil
}

// clear empties the session if no newer Load has started since gen.
func (s *Session) clear(gen uint64) {
	s.mu.Lock()
	defer s.mu.Unlock()
	if s.gen == gen {
		s.resetLocked()
	}
}

// abandon drops a document whose load failed part way.
func (s *Session) abandon(gen uint64, doc raster.Document) {
	s.clear(gen)
	doc.Close()
}

// resetLocked clears all per-document state. A document still being loaded is
// closed by its loader once it notices the generation change.
func (s *Session) resetLocked() {
	if s.doc != nil && s.ready {
		if err := s.doc.Close(); err != nil {
			s.log.WithError(err).Warn("failed to close previous document")
		}
	}
	s.ready = false
	s.name = ""
	s.doc = nil
	s.renderer = nil
	s.surfaces = nil
	s.store.Reset()
	s.gesture = gesture{}
}

// Close discards the loaded document and abandons any load in progress.
func (s *Session) Close() error {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.gen++
	s.resetLocked()
	return nil
}

// Export flattens every page surface, in page order, into a new PDF named
// after the loaded file. It is refused while no document is loaded or nothing
// has been marked. Any failure aborts the whole export.
func (s *Session) Export(ctx context.Context) (*flatten.Result, error) {
	if err := s.exporting.Acquire(ctx, 1); err != nil {
		return nil, err
	}
	defer s.exporting.Release(1)

	pages, name, err := s.snapshot()
	if err != nil {
		return nil, err
	}
	if err := ctx.Err(); err != nil {
		return nil, err
	}

	res, err := flatten.Export(pages, name, s.config.Export)
	if err != nil {
		s.log.WithError(err).Error("error during rasterization and PDF generation")
		return nil, fmt.Errorf("failed to create flattened PDF: %w", err)
	}

	s.log.WithFields(logrus.Fields{
		"file":  res.Name,
		"pages": res.Pages,
		"bytes": len(res.Data),
	}).Info("blackout complete")
	return res, nil
}

// snapshot copies the final pixels of every surface with all committed
// rectangles burned in. A page under an active drag is redrawn without its
// preview first.
func (s *Session) snapshot() ([]image.Image, string, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	if !s.ready {
		return nil, "", ErrNoDocument
	}
	if s.store.Len() == 0 {
		return nil, "", ErrNoRedactions
	}

	pages := make([]image.Image, 0, len(s.surfaces))
	for _, surf := range s.surfaces {
		page := surf.Clone()
		committed := s.store.PagePixels(surf.PageIndex)
		if s.gesture.active && s.gesture.page == surf.PageIndex {
			if err := s.renderer.Redraw(page, committed, nil); err != nil {
				return nil, "", fmt.Errorf("failed to redraw page %d: %w", surf.PageIndex+1, err)
			}
		} else {
			for _, r := range committed {
				page.Redact(r)
			}
		}
		pages = append(pages, page.Pixels)
	}
	return pages, s.name, nil
}

// Name returns the file name of the loaded document.
func (s *Session) Name() string {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.name
}

// Ready reports whether a document is fully loaded.
func (s *Session) Ready() bool {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.ready
}

// PageCount returns the number of rendered page surfaces.
func (s *Session) PageCount() int {
	s.mu.Lock()
	defer s.mu.Unlock()
	return len(s.surfaces)
}

// Surfaces returns the rendered page surfaces in page order. The surfaces are
// live; callers must not modify them.
func (s *Session) Surfaces() []*raster.Surface {
	s.mu.Lock()
	defer s.mu.Unlock()
	return append([]*raster.Surface(nil), s.surfaces...)
}

// Redactions returns the committed rectangles in commit order.
func (s *Session) Redactions() []Rect {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.store.All()
}

// Dragging reports whether a gesture is in progress.
func (s *Session) Dragging() bool {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.gesture.active
}
