package flatten

import (
	"bytes"
	"fmt"

	"github.com/pdfcpu/pdfcpu/pkg/api"
	"github.com/pdfcpu/pdfcpu/pkg/pdfcpu/model"
)

// verifyPageCount re-reads an assembled document and checks that it holds
// exactly want pages.
func verifyPageCount(data []byte, want int, base *model.Configuration) error {
	var conf *model.Configuration
	if base == nil {
		conf = model.NewDefaultConfiguration()
	} else {
		c := *base
		conf = &c
	}
	conf.ValidationMode = model.ValidationRelaxed

	got, err := api.PageCount(bytes.NewReader(data), conf)
	if err != nil {
		return fmt.Errorf("failed to read assembled PDF: %w", err)
	}
	if got != want {
		return fmt.Errorf("assembled PDF has %d pages, expected %d", got, want)
	}
	return nil
}
