package flatten

import (
	"math"
	"regexp"
)

// Placement is where a page image lands on an output page, in page units
// measured from the top-left corner.
type Placement struct {
	X, Y, W, H float64
}

// Fit scales an image of imgW x imgH to fit a page of pageW x pageH without
// distortion or cropping and centres it, leaving equal margins on the two
// sides that do not touch the page edge.
func Fit(pageW, pageH, imgW, imgH float64) Placement {
	ratio := math.Min(pageW/imgW, pageH/imgH)
	w := imgW * ratio
	h := imgH * ratio
	return Placement{
		X: (pageW - w) / 2,
		Y: (pageH - h) / 2,
		W: w,
		H: h,
	}
}

// FallbackName is used when the source document has no name.
const FallbackName = "document.pdf"

var pdfSuffix = regexp.MustCompile(`(?i)\.pdf$`)

// OutputName derives the file name of the flattened document from the name of
// its source: a trailing ".pdf" (any case) is replaced by "_REDACTED.pdf".
func OutputName(baseName string) string {
	if baseName == "" {
		baseName = FallbackName
	}
	return pdfSuffix.ReplaceAllString(baseName, "") + "_REDACTED.pdf"
}
