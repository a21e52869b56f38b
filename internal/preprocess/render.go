package preprocess

import (
	"context"
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"strconv"
	"strings"

	"docextract/internal/domain"
)

// PdftoppmRenderer implements port.PageRenderer with poppler's pdftoppm.
type PdftoppmRenderer struct {
	bin    string
	runner Runner
}

// NewPdftoppmRenderer creates a renderer invoking bin (default "pdftoppm").
func NewPdftoppmRenderer(bin string) *PdftoppmRenderer {
	return NewPdftoppmRendererWithRunner(bin, ExecRunner{})
}

// NewPdftoppmRendererWithRunner creates a renderer with a custom Runner (for testing).
func NewPdftoppmRendererWithRunner(bin string, runner Runner) *PdftoppmRenderer {
	if bin == "" {
		bin = "pdftoppm"
	}
	return &PdftoppmRenderer{bin: bin, runner: runner}
}

// RenderPage rasterizes a single 1-indexed page scaled so its longest edge is longestDim.
func (r *PdftoppmRenderer) RenderPage(ctx context.Context, pdfPath string, page, longestDim int) ([]byte, error) {
	if page < 1 {
		return nil, fmt.Errorf("%w: page %d", domain.ErrPageOutOfRange, page)
	}

	tmpDir, err := os.MkdirTemp("", "docextract-render-*")
	if err != nil {
		return nil, fmt.Errorf("%w: creating render dir: %w", domain.ErrFileIO, err)
	}
	defer os.RemoveAll(tmpDir)

	prefix := filepath.Join(tmpDir, "page")
	p := strconv.Itoa(page)
	// pdftoppm -f N -l N -png -scale-to D -singlefile <in.pdf> <tmp/page>
	_, errb, err := r.runner.Run(ctx, r.bin,
		"-f", p, "-l", p,
		"-png",
		"-scale-to", strconv.Itoa(longestDim),
		"-singlefile",
		pdfPath, prefix,
	)
	if err != nil {
		if ctxErr := ctx.Err(); ctxErr != nil {
			return nil, ctxErr
		}
		stderr := strings.TrimSpace(string(errb))
		if isPageRangeError(stderr) {
			return nil, fmt.Errorf("%w: page %d: %s", domain.ErrPageOutOfRange, page, stderr)
		}
		return nil, fmt.Errorf("rendering page %d: %w: %s", page, err, domain.Truncate(stderr, 500))
	}

	data, err := os.ReadFile(prefix + ".png")
	if err != nil {
		if errors.Is(err, os.ErrNotExist) {
			// pdftoppm exits cleanly on some builds when the range is empty
			return nil, fmt.Errorf("%w: page %d produced no image", domain.ErrPageOutOfRange, page)
		}
		return nil, fmt.Errorf("%w: reading rendered page: %w", domain.ErrFileIO, err)
	}
	return data, nil
}

func isPageRangeError(stderr string) bool {
	s := strings.ToLower(stderr)
	return strings.Contains(s, "wrong page range") || strings.Contains(s, "can not be after the last page")
}
