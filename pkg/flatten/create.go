package flatten

import (
	"bytes"
	"fmt"
	"image"
	"image/jpeg"
	"strings"

	"codeberg.org/go-pdf/fpdf"
	"golang.org/x/text/encoding/charmap"
)

// encodedPage is one page image ready to be placed in the output document.
type encodedPage struct {
	data   []byte
	width  int
	height int
}

// encodePages compresses every page image as JPEG.
func encodePages(pages []image.Image, quality int) ([]encodedPage, error) {
	encoded := make([]encodedPage, 0, len(pages))
	for i, img := range pages {
		var buf bytes.Buffer
		if err := jpeg.Encode(&buf, img, &jpeg.Options{Quality: quality}); err != nil {
			return nil, fmt.Errorf("failed to encode page %d: %w", i+1, err)
		}
		b := img.Bounds()
		encoded = append(encoded, encodedPage{data: buf.Bytes(), width: b.Dx(), height: b.Dy()})
	}
	return encoded, nil
}

// createPDFFromImages builds a new PDF with one fixed-size page per image, each
// image letterboxed onto its page.
// This function assumes inputs have been validated by the caller.
func createPDFFromImages(pages []encodedPage, title string, config Config) ([]byte, error) {
	pdf := fpdf.New(config.Orientation, config.Unit, config.PageSize, "")
	if err := pdf.Error(); err != nil {
		return nil, fmt.Errorf("failed to create document: %w", err)
	}
	setMetadata(pdf, title, config)

	for i, page := range pages {
		pdf.AddPage()
		pageW, pageH := pdf.GetPageSize()

		imageName := fmt.Sprintf("page%d", i)
		imageType, err := detectImageType(page.data)
		if err != nil {
			return nil, fmt.Errorf("failed to detect image type for page %d: %w", i+1, err)
		}

		opts := fpdf.ImageOptions{ReadDpi: false, ImageType: imageType}
		pdf.RegisterImageOptionsReader(imageName, opts, bytes.NewReader(page.data))

		at := Fit(pageW, pageH, float64(page.width), float64(page.height))
		pdf.ImageOptions(imageName, at.X, at.Y, at.W, at.H, false, opts, 0, "")

		if err := pdf.Error(); err != nil {
			return nil, fmt.Errorf("failed to place page %d: %w", i+1, err)
		}
	}

	// Generate final PDF
	var buf bytes.Buffer
	if err := pdf.Output(&buf); err != nil {
		return nil, fmt.Errorf("failed to generate PDF: %w", err)
	}
	return buf.Bytes(), nil
}

// setMetadata writes the document information. Strings are stored as Latin-1
// when they fit and as UTF-8 otherwise.
func setMetadata(pdf *fpdf.Fpdf, title string, config Config) {
	if title != "" {
		text, isUTF8 := pdfText(title)
		pdf.SetTitle(text, isUTF8)
	}
	if config.Author != "" {
		text, isUTF8 := pdfText(config.Author)
		pdf.SetAuthor(text, isUTF8)
	}
	if config.Creator != "" {
		text, isUTF8 := pdfText(config.Creator)
		pdf.SetCreator(text, isUTF8)
	}
	if !config.CreationDate.IsZero() {
		pdf.SetCreationDate(config.CreationDate)
		pdf.SetModificationDate(config.CreationDate)
	}
}

func pdfText(s string) (string, bool) {
	latin1, err := charmap.ISO8859_1.NewEncoder().String(s)
	if err != nil {
		return s, true
	}
	return latin1, false
}

// detectImageType tries to figure out whether the data is PNG, JPEG, etc.
func detectImageType(data []byte) (string, error) {
	_, format, err := image.DecodeConfig(bytes.NewReader(data))
	if err != nil {
		return "", fmt.Errorf("failed to decode image config: %w", err)
	}
	return strings.ToUpper(format), nil
}
