package main

import (
	"bytes"
	"context"
	"encoding/json"
	"io"
	"os"
	"path/filepath"
	"testing"

	"github.com/google/go-cmp/cmp"
	"github.com/pdfcpu/pdfcpu/pkg/pdfcpu/model"
	"github.com/sirupsen/logrus"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/gardar/pdfredact/pkg/raster/rastertest"
	"github.com/gardar/pdfredact/pkg/redact"
)

func TestMain(m *testing.M) {
	model.ConfigPath = "disable"
	os.Exit(m.Run())
}

func writeFile(t *testing.T, dir, name, content string) string {
	t.Helper()
	path := filepath.Join(dir, name)
	require.NoError(t, os.WriteFile(path, []byte(content), 0666))
	return path
}

func quietLogger() logrus.FieldLogger {
	log := logrus.New()
	log.SetOutput(io.Discard)
	return log
}

const sampleMarks = `viewer_width: 760
marks:
  - page: 1
    from: [100, 100]
    to: [200, 150]
  - page: 2
    from: [50, 60]
    to: [52, 62]
  - page: 2
    from: [300, 400]
    to: [250, 350]
`

func TestLoadConfig(t *testing.T) {
	dir := t.TempDir()
	path := writeFile(t, dir, "config.yml", `viewer_width: 1200
quality: 65
page_size: Letter
title: Public copy
verify: false
`)
	cfg, err := loadConfig(path, redact.DefaultConfig())
	require.NoError(t, err)

	assert.Equal(t, 1200, cfg.ViewerWidth)
	assert.Equal(t, 65, cfg.Export.Quality)
	assert.Equal(t, "Letter", cfg.Export.PageSize)
	assert.Equal(t, "Public copy", cfg.Export.Title)
	assert.False(t, cfg.Export.Verify)
	assert.Equal(t, "P", cfg.Export.Orientation)
	assert.Equal(t, "pdfredact", cfg.Export.Creator)
}

func TestLoadConfigKeepsDefaults(t *testing.T) {
	path := writeFile(t, t.TempDir(), "config.yml", "author: Records office\n")
	cfg, err := loadConfig(path, redact.DefaultConfig())
	require.NoError(t, err)

	want := redact.DefaultConfig()
	want.Export.Author = "Records office"
	assert.Equal(t, want, cfg)
}

func TestLoadConfigErrors(t *testing.T) {
	dir := t.TempDir()
	_, err := loadConfig(filepath.Join(dir, "missing.yml"), redact.DefaultConfig())
	assert.Error(t, err)

	_, err = loadConfig(writeFile(t, dir, "bad.yml", "viewer_width: [1"), redact.DefaultConfig())
	assert.Error(t, err)

	_, err = loadConfig(writeFile(t, dir, "neg.yml", "viewer_width: -5"), redact.DefaultConfig())
	assert.Error(t, err)
}

func TestLoadMarks(t *testing.T) {
	path := writeFile(t, t.TempDir(), "marks.yml", sampleMarks)
	mf, err := loadMarks(path)
	require.NoError(t, err)

	want := &marksFile{
		ViewerWidth: 760,
		Marks: []mark{
			{Page: 1, From: [2]float64{100, 100}, To: [2]float64{200, 150}},
			{Page: 2, From: [2]float64{50, 60}, To: [2]float64{52, 62}},
			{Page: 2, From: [2]float64{300, 400}, To: [2]float64{250, 350}},
		},
	}
	if diff := cmp.Diff(want, mf); diff != "" {
		t.Errorf("loadMarks mismatch (-want +got):\n%s", diff)
	}
}

func TestLoadMarksErrors(t *testing.T) {
	dir := t.TempDir()
	for name, content := range map[string]string{
		"empty.yml": "viewer_width: 760\n",
		"page0.yml": "marks:\n  - page: 0\n    from: [1, 1]\n    to: [20, 20]\n",
		"bad.yml":   "marks: {",
		"neg.yml":   "viewer_width: -1\nmarks:\n  - page: 1\n    from: [1, 1]\n    to: [20, 20]\n",
	} {
		_, err := loadMarks(writeFile(t, dir, name, content))
		assert.Error(t, err, name)
	}
}

func TestMarkEvents(t *testing.T) {
	evs := mark{Page: 2, From: [2]float64{1, 2}, To: [2]float64{30, 40}}.events()
	require.Len(t, evs, 3)
	assert.Equal(t, redact.PointerDown, evs[0].Phase)
	assert.Equal(t, redact.PointerUp, evs[2].Phase)
	for _, ev := range evs {
		assert.Equal(t, 1, ev.Page)
		assert.Equal(t, redact.Primary, ev.Button)
	}
}

func loadedSession(t *testing.T, pages int) *redact.Session {
	t.Helper()
	sizes := make([]rastertest.Size, pages)
	for i := range sizes {
		sizes[i] = rastertest.Letter
	}
	cfg := redact.DefaultConfig()
	cfg.Logger = quietLogger()
	s := redact.NewSession(rastertest.NewDecoder(sizes...), cfg)
	require.NoError(t, s.Load(context.Background(), "in.pdf", []byte("%PDF-1.7")))
	return s
}

func TestReplay(t *testing.T) {
	path := writeFile(t, t.TempDir(), "marks.yml", sampleMarks)
	mf, err := loadMarks(path)
	require.NoError(t, err)

	s := loadedSession(t, 2)
	n, err := replay(s, mf.Marks)
	require.NoError(t, err)
	assert.Equal(t, 2, n)

	want := []redact.Rect{
		{Page: 0, MinX: 100, MinY: 100, Width: 100, Height: 50},
		{Page: 1, MinX: 250, MinY: 350, Width: 50, Height: 50},
	}
	if diff := cmp.Diff(want, s.Redactions()); diff != "" {
		t.Errorf("Redactions mismatch (-want +got):\n%s", diff)
	}
}

func TestReplayRejectsMissingPage(t *testing.T) {
	s := loadedSession(t, 1)
	_, err := replay(s, []mark{{Page: 3, From: [2]float64{1, 1}, To: [2]float64{20, 20}}})
	assert.Error(t, err)
	assert.Empty(t, s.Redactions())
}

func TestBuildReport(t *testing.T) {
	s := loadedSession(t, 1)
	_, err := replay(s, []mark{{Page: 1, From: [2]float64{100, 100}, To: [2]float64{200, 150}}})
	require.NoError(t, err)

	rep, err := buildReport(s, "in.pdf", "in_REDACTED.pdf", 760)
	require.NoError(t, err)
	require.Len(t, rep.Redactions, 1)

	e := rep.Redactions[0]
	assert.Equal(t, 1, e.Page)
	assert.Equal(t, box{X: 100, Y: 100, Width: 100, Height: 50}, e.Pixels)
	scale := 760.0 / 612.0
	assert.InDelta(t, 100/scale, e.Points.X, 1e-9)
	assert.InDelta(t, 792-150/scale, e.Points.Y, 1e-9)
	assert.InDelta(t, 100/scale, e.Points.Width, 1e-9)
	assert.InDelta(t, 50/scale, e.Points.Height, 1e-9)

	data, err := rep.marshal()
	require.NoError(t, err)
	var decoded map[string]any
	require.NoError(t, json.Unmarshal(data, &decoded))
	assert.Equal(t, "in_REDACTED.pdf", decoded["output"])
}

func TestCheckOutput(t *testing.T) {
	dir := t.TempDir()
	input := writeFile(t, dir, "in.pdf", "%PDF-1.7")
	existing := writeFile(t, dir, "out.pdf", "old")

	assert.ErrorIs(t, checkOutput(input, input, true), errSameFile)
	assert.ErrorIs(t, checkOutput(input, filepath.Join(dir, ".", "in.pdf"), true), errSameFile)
	assert.Error(t, checkOutput(input, existing, false))
	assert.NoError(t, checkOutput(input, existing, true))
	assert.NoError(t, checkOutput(input, filepath.Join(dir, "new.pdf"), false))
}

func TestRun(t *testing.T) {
	dir := t.TempDir()
	input := writeFile(t, dir, "Contract.PDF", "%PDF-1.7 fake")
	args := cli{
		Marks:  writeFile(t, dir, "marks.yml", sampleMarks),
		Report: filepath.Join(dir, "report.json"),
		Input:  input,
	}

	require.NoError(t, run(context.Background(), args, rastertest.NewDecoder(rastertest.Letter, rastertest.Letter), quietLogger()))

	out, err := os.ReadFile(filepath.Join(dir, "Contract_REDACTED.pdf"))
	require.NoError(t, err)
	assert.True(t, bytes.HasPrefix(out, []byte("%PDF-")))

	data, err := os.ReadFile(args.Report)
	require.NoError(t, err)
	var rep report
	require.NoError(t, json.Unmarshal(data, &rep))
	assert.Len(t, rep.Redactions, 2)
	assert.Equal(t, 760, rep.ViewerWidth)

	// A second run refuses to replace the output.
	err = run(context.Background(), args, rastertest.NewDecoder(rastertest.Letter, rastertest.Letter), quietLogger())
	assert.Error(t, err)

	args.Overwrite = true
	assert.NoError(t, run(context.Background(), args, rastertest.NewDecoder(rastertest.Letter, rastertest.Letter), quietLogger()))
}

func TestRunWithoutCommittedMarks(t *testing.T) {
	dir := t.TempDir()
	args := cli{
		Marks: writeFile(t, dir, "marks.yml", "marks:\n  - page: 1\n    from: [10, 10]\n    to: [12, 12]\n"),
		Input: writeFile(t, dir, "in.pdf", "%PDF-1.7"),
	}
	err := run(context.Background(), args, rastertest.NewDecoder(rastertest.Letter), quietLogger())
	assert.ErrorIs(t, err, redact.ErrNoRedactions)
	_, statErr := os.Stat(filepath.Join(dir, "in_REDACTED.pdf"))
	assert.True(t, os.IsNotExist(statErr))
}
