package preprocess

import (
	"errors"
	"fmt"
	"math"
	"os"
	"strings"

	"github.com/ledongthuc/pdf"

	"docextract/internal/domain"
)

// Letter size in points, used when a page carries no MediaBox.
const (
	defaultPageWidth  = 612.0
	defaultPageHeight = 792.0
)

// PDFAnchorBuilder implements port.AnchorTextBuilder by reading the page's
// MediaBox and positioned text rows directly from the PDF.
type PDFAnchorBuilder struct{}

// NewPDFAnchorBuilder creates a PDFAnchorBuilder.
func NewPDFAnchorBuilder() *PDFAnchorBuilder {
	return &PDFAnchorBuilder{}
}

// AnchorText returns the page dimensions followed by one "[XxY]text" line per
// text row, stopping before the result would exceed maxLen characters.
// A maxLen of zero or less disables the bound.
func (b *PDFAnchorBuilder) AnchorText(pdfPath string, page, maxLen int) (text string, err error) {
	// the pdf reader panics on malformed content streams
	defer func() {
		if rec := recover(); rec != nil {
			text = ""
			err = fmt.Errorf("reading page %d layout: %v", page, rec)
		}
	}()

	f, r, err := pdf.Open(pdfPath)
	if err != nil {
		if errors.Is(err, os.ErrNotExist) {
			return "", fmt.Errorf("%w: %s", domain.ErrNotFound, pdfPath)
		}
		return "", fmt.Errorf("opening pdf: %w", err)
	}
	defer f.Close()

	if page < 1 || page > r.NumPage() {
		return "", fmt.Errorf("%w: page %d of %d", domain.ErrPageOutOfRange, page, r.NumPage())
	}

	p := r.Page(page)
	if p.V.IsNull() {
		return "", fmt.Errorf("%w: page %d", domain.ErrPageOutOfRange, page)
	}

	w, h := mediaBox(p.V)
	var sb strings.Builder
	sb.WriteString(fmt.Sprintf("Page dimensions: %.1fx%.1f\n", w, h))

	rows, err := p.GetTextByRow()
	if err != nil {
		return "", fmt.Errorf("reading page %d text: %w", page, err)
	}
	for _, row := range rows {
		if len(row.Content) == 0 {
			continue
		}
		var line strings.Builder
		for _, t := range row.Content {
			line.WriteString(t.S)
		}
		s := strings.TrimSpace(line.String())
		if s == "" {
			continue
		}
		entry := fmt.Sprintf("[%dx%d]%s\n", int(math.Round(row.Content[0].X)), row.Position, s)
		if maxLen > 0 && sb.Len()+len(entry) > maxLen {
			break
		}
		sb.WriteString(entry)
	}

	return strings.TrimRight(sb.String(), "\n"), nil
}

// mediaBox resolves the page's MediaBox, following inherited values up the page tree.
func mediaBox(v pdf.Value) (float64, float64) {
	for i := 0; i < 32 && !v.IsNull(); i++ {
		box := v.Key("MediaBox")
		if box.Kind() == pdf.Array && box.Len() == 4 {
			w := box.Index(2).Float64() - box.Index(0).Float64()
			h := box.Index(3).Float64() - box.Index(1).Float64()
			if w > 0 && h > 0 {
				return w, h
			}
		}
		v = v.Key("Parent")
	}
	return defaultPageWidth, defaultPageHeight
}
