package main

import (
	"encoding/json"
	"fmt"

	"github.com/gardar/pdfredact/pkg/redact"
)

// report is the JSON manifest of the committed redactions.
type report struct {
	Source      string        `json:"source"`
	Output      string        `json:"output"`
	ViewerWidth int           `json:"viewerWidth"`
	Redactions  []reportEntry `json:"redactions"`
}

type reportEntry struct {
	Page   int    `json:"page"` // 1-based
	Pixels box    `json:"pixels"`
	Points box    `json:"points"` // PDF user space, origin bottom-left
	Label  string `json:"label"`
}

type box struct {
	X      float64 `json:"x"`
	Y      float64 `json:"y"`
	Width  float64 `json:"width"`
	Height float64 `json:"height"`
}

func buildReport(s *redact.Session, source, output string, viewerWidth int) (*report, error) {
	surfaces := s.Surfaces()
	rep := &report{
		Source:      source,
		Output:      output,
		ViewerWidth: viewerWidth,
		Redactions:  []reportEntry{},
	}
	for _, r := range s.Redactions() {
		if r.Page < 0 || r.Page >= len(surfaces) {
			return nil, fmt.Errorf("redaction %s has no page surface", r)
		}
		surf := surfaces[r.Page]
		doc := r.Document(surf.Scale, surf.PageHeight)
		rep.Redactions = append(rep.Redactions, reportEntry{
			Page:   r.Page + 1,
			Pixels: box{X: r.MinX, Y: r.MinY, Width: r.Width, Height: r.Height},
			Points: box{X: doc.X.Lo, Y: doc.Y.Lo, Width: doc.X.Length(), Height: doc.Y.Length()},
			Label:  r.String(),
		})
	}
	return rep, nil
}

func (r *report) marshal() ([]byte, error) {
	data, err := json.MarshalIndent(r, "", "  ")
	if err != nil {
		return nil, fmt.Errorf("failed to encode report: %w", err)
	}
	return append(data, '\n'), nil
}
