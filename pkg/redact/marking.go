package redact

import (
	"github.com/golang/geo/r2"
	"github.com/sirupsen/logrus"

	"github.com/gardar/pdfredact/pkg/raster"
)

// Button identifies the pointer button of an event.
type Button int

const (
	Primary Button = iota
	Auxiliary
	Secondary
)

// Phase is the stage of a pointer interaction an event reports.
type Phase int

const (
	PointerDown Phase = iota
	PointerMove
	PointerUp
	PointerCancel
)

func (p Phase) String() string {
	switch p {
	case PointerDown:
		return "down"
	case PointerMove:
		return "move"
	case PointerUp:
		return "up"
	case PointerCancel:
		return "cancel"
	}
	return "unknown"
}

// PointerEvent is a pointer interaction on one page surface. X and Y are in
// the surface's pixel space, origin top-left.
type PointerEvent struct {
	Page   int // 0-based index of the surface under the pointer
	X, Y   float64
	Button Button
	Phase  Phase
}

func (e PointerEvent) point() r2.Point { return r2.Point{X: e.X, Y: e.Y} }

// Outcome is what the state machine did with an event.
type Outcome int

const (
	Ignored   Outcome = iota // no document, no gesture, or not applicable
	Started                  // a drag began
	Previewed                // the drag preview was redrawn
	Committed                // a rectangle was burned in and stored
	Discarded                // the drag ended without committing
)

func (o Outcome) String() string {
	switch o {
	case Ignored:
		return "ignored"
	case Started:
		return "started"
	case Previewed:
		return "previewed"
	case Committed:
		return "committed"
	case Discarded:
		return "discarded"
	}
	return "unknown"
}

// gesture is the drag in progress. At most one exists per session.
type gesture struct {
	active bool
	page   int
	start  r2.Point
}

// Handle feeds one pointer event to the marking state machine.
//
// IDLE --down(primary)--> DRAGGING --move--> DRAGGING (preview redraw)
// DRAGGING --up--> IDLE, committing the rectangle if it is at least
// MinRectSize in both directions and clearing the preview otherwise.
//
// A gesture is bound to the surface it started on: moves over another page are
// ignored and an up or cancel elsewhere abandons the drag.
func (s *Session) Handle(ev PointerEvent) (Outcome, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	if s.renderer == nil {
		return Ignored, nil
	}
	switch ev.Phase {
	case PointerDown:
		return s.pointerDown(ev)
	case PointerMove:
		return s.pointerMove(ev)
	case PointerUp:
		return s.pointerUp(ev)
	case PointerCancel:
		return s.pointerCancel()
	}
	return Ignored, nil
}

func (s *Session) pointerDown(ev PointerEvent) (Outcome, error) {
	if ev.Button != Primary {
		return Ignored, nil
	}
	if s.surface(ev.Page) == nil {
		return Ignored, nil
	}
	if s.gesture.active {
		// A lost up event; drop the old preview before starting over.
		if _, err := s.pointerCancel(); err != nil {
			return Ignored, err
		}
	}
	s.gesture = gesture{active: true, page: ev.Page, start: ev.point()}
	return Started, nil
}

func (s *Session) pointerMove(ev PointerEvent) (Outcome, error) {
	if !s.gesture.active || ev.Page != s.gesture.page {
		return Ignored, nil
	}
	candidate := Normalize(s.gesture.page, s.gesture.start, ev.point())
	if err := s.preview(candidate); err != nil {
		return Ignored, err
	}
	return Previewed, nil
}

func (s *Session) pointerUp(ev PointerEvent) (Outcome, error) {
	if !s.gesture.active {
		return Ignored, nil
	}
	g := s.gesture
	s.gesture = gesture{}

	if ev.Page != g.page {
		return Discarded, s.clearPreview(g.page)
	}

	candidate := Normalize(g.page, g.start, ev.point())
	if !candidate.Valid() {
		s.log.WithField("rect", candidate.String()).Debug("discarded redaction below minimum size")
		return Discarded, s.clearPreview(g.page)
	}
	if err := s.commit(candidate); err != nil {
		return Discarded, err
	}
	return Committed, nil
}

func (s *Session) pointerCancel() (Outcome, error) {
	if !s.gesture.active {
		return Ignored, nil
	}
	page := s.gesture.page
	s.gesture = gesture{}
	return Discarded, s.clearPreview(page)
}

// preview redraws the page with committed rectangles and the candidate outline.
// Committed state is left untouched.
func (s *Session) preview(candidate Rect) error {
	surf := s.surface(candidate.Page)
	if surf == nil {
		return nil
	}
	area := candidate.Pixels()
	return s.renderer.Redraw(surf, s.store.PagePixels(candidate.Page), &area)
}

// clearPreview redraws the page with only its committed rectangles.
func (s *Session) clearPreview(page int) error {
	surf := s.surface(page)
	if surf == nil {
		return nil
	}
	return s.renderer.Redraw(surf, s.store.PagePixels(page), nil)
}

// commit burns r into its surface and appends it to the store.
func (s *Session) commit(r Rect) error {
	surf := s.surface(r.Page)
	if surf == nil {
		return nil
	}
	// Remove the drag outline first so no preview pixels survive next to the fill.
	if err := s.clearPreview(r.Page); err != nil {
		return err
	}
	surf.Redact(r.Pixels())
	if err := s.store.Add(r); err != nil {
		return err
	}
	s.log.WithFields(logrus.Fields{
		"page": r.Page + 1,
		"rect": r.String(),
	}).Debug("committed redaction")
	return nil
}

func (s *Session) surface(page int) *raster.Surface {
	if page < 0 || page >= len(s.surfaces) {
		return nil
	}
	return s.surfaces[page]
}
