package coords

import (
	"math"
	"testing"

	"github.com/golang/geo/r2"
	"github.com/stretchr/testify/assert"
)

func TestToDocument(t *testing.T) {
	// Letter page rendered 760 px wide.
	scale := 760.0 / 612.0
	got := ToDocument(r2.Point{X: 100, Y: 100}, scale, 792)

	assert.Equal(t, 100/scale, got.X)
	assert.Equal(t, 792-100/scale, got.Y)
}

func TestToDocumentCorners(t *testing.T) {
	tests := []struct {
		name string
		px   r2.Point
		want r2.Point
	}{
		{"top-left", r2.Point{X: 0, Y: 0}, r2.Point{X: 0, Y: 792}},
		{"bottom-left", r2.Point{X: 0, Y: 1584}, r2.Point{X: 0, Y: 0}},
		{"bottom-right", r2.Point{X: 1224, Y: 1584}, r2.Point{X: 612, Y: 0}},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.want, ToDocument(tt.px, 2, 792))
		})
	}
}

func TestRoundTrip(t *testing.T) {
	const (
		nativeW = 612.0
		nativeH = 792.0
	)
	for _, viewer := range []float64{300, 760, 1013, 2048} {
		scale := Scale(viewer, nativeW)
		width := int(viewer)
		height := int(nativeH * scale)
		for x := 0; x < width; x += 7 {
			for y := 0; y < height; y += 11 {
				px := r2.Point{X: float64(x), Y: float64(y)}
				back := ToPixel(ToDocument(px, scale, nativeH), scale, nativeH)
				if math.Abs(back.X-px.X) > 1e-9 || math.Abs(back.Y-px.Y) > 1e-9 {
					t.Fatalf("viewer %v: round trip of %v gave %v", viewer, px, back)
				}
			}
		}
	}
}

func TestRectToDocument(t *testing.T) {
	r := r2.RectFromPoints(r2.Point{X: 100, Y: 100}, r2.Point{X: 200, Y: 150})
	got := RectToDocument(r, 2, 792)

	assert.Equal(t, 50.0, got.X.Lo)
	assert.Equal(t, 100.0, got.X.Hi)
	assert.Equal(t, 717.0, got.Y.Lo)
	assert.Equal(t, 742.0, got.Y.Hi)
	assert.True(t, got.IsValid())
}

func TestScale(t *testing.T) {
	assert.Equal(t, 2.0, Scale(1224, 612))
}
