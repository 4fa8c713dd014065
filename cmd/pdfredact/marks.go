package main

import (
	"fmt"
	"os"

	"gopkg.in/yaml.v3"

	"github.com/gardar/pdfredact/pkg/redact"
)

// marksFile lists the drags to replay against a loaded document.
type marksFile struct {
	ViewerWidth int    `yaml:"viewer_width"` // width the coordinates were captured at
	Marks       []mark `yaml:"marks"`
}

// mark is one drag in surface pixels. Page counts from 1.
type mark struct {
	Page int        `yaml:"page"`
	From [2]float64 `yaml:"from"`
	To   [2]float64 `yaml:"to"`
}

func loadMarks(path string) (*marksFile, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, err
	}
	var mf marksFile
	if err := yaml.Unmarshal(data, &mf); err != nil {
		return nil, fmt.Errorf("failed to parse marks %s: %w", path, err)
	}
	if mf.ViewerWidth < 0 {
		return nil, fmt.Errorf("viewer_width must be positive, got %d", mf.ViewerWidth)
	}
	if len(mf.Marks) == 0 {
		return nil, fmt.Errorf("marks file %s lists no marks", path)
	}
	for i, m := range mf.Marks {
		if m.Page < 1 {
			return nil, fmt.Errorf("mark %d: page must be 1 or more, got %d", i+1, m.Page)
		}
	}
	return &mf, nil
}

// events turns a mark into the pointer events of a primary-button drag.
func (m mark) events() []redact.PointerEvent {
	page := m.Page - 1
	return []redact.PointerEvent{
		{Page: page, X: m.From[0], Y: m.From[1], Phase: redact.PointerDown},
		{Page: page, X: m.To[0], Y: m.To[1], Phase: redact.PointerMove},
		{Page: page, X: m.To[0], Y: m.To[1], Phase: redact.PointerUp},
	}
}

// replay feeds every mark through the session's marking state machine and
// returns how many were committed. Marks on pages the document does not have
// are an error; marks below the minimum size are skipped.
func replay(s *redact.Session, marks []mark) (int, error) {
	pages := s.PageCount()
	committed := 0
	for i, m := range marks {
		if m.Page > pages {
			return committed, fmt.Errorf("mark %d: page %d of %d", i+1, m.Page, pages)
		}
		var out redact.Outcome
		for _, ev := range m.events() {
			var err error
			if out, err = s.Handle(ev); err != nil {
				return committed, fmt.Errorf("failed to apply mark %d: %w", i+1, err)
			}
		}
		if out == redact.Committed {
			committed++
		} else {
			fmt.Printf("Skipping mark %d on page %d: smaller than %dx%d pixels\n", i+1, m.Page, redact.MinRectSize, redact.MinRectSize)
		}
	}
	return committed, nil
}
