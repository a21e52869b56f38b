package preprocess

import (
	"bytes"
	"encoding/base64"
	"fmt"
	"image"
	"image/color"
	"image/draw"
	_ "image/gif"
	_ "image/jpeg"
	"image/png"
	"io"

	_ "golang.org/x/image/bmp"
	xdraw "golang.org/x/image/draw"
	_ "golang.org/x/image/tiff"
	_ "golang.org/x/image/webp"

	"docextract/internal/domain"
)

// ScaledSize returns the size whose longest edge equals longestDim with the
// other edge scaled proportionally and rounded down, never below one pixel.
func ScaledSize(width, height, longestDim int) (int, int) {
	if width >= height {
		h := height * longestDim / width
		if h < 1 {
			h = 1
		}
		return longestDim, h
	}
	w := width * longestDim / height
	if w < 1 {
		w = 1
	}
	return w, longestDim
}

// ImageAnchorText is the synthetic anchor for raster input, which carries no
// layout metadata: the original size and the resized bounding box.
func ImageAnchorText(origW, origH, newW, newH int) string {
	return fmt.Sprintf("Page dimensions: %d.0x%d.0\n[Image 0x0 to %dx%d]", origW, origH, newW, newH)
}

// DefaultMaxImagePixels is the decoded-size cap applied when none is configured.
const DefaultMaxImagePixels int64 = 89478485

// PrepareImage decodes a raster, flattens it onto an opaque white RGB canvas
// resized to longestDim and returns it as base64 PNG with its anchor text.
// Images larger than maxPixels are rejected from their header alone.
func PrepareImage(r io.ReadSeeker, longestDim int, maxPixels int64) (*domain.PreparedInput, error) {
	if maxPixels <= 0 {
		maxPixels = DefaultMaxImagePixels
	}
	hdr, _, err := image.DecodeConfig(r)
	if err != nil {
		return nil, fmt.Errorf("%w: decoding image header: %w", domain.ErrUnsupportedFormat, err)
	}
	if pixels := int64(hdr.Width) * int64(hdr.Height); pixels > maxPixels {
		return nil, fmt.Errorf("%w: %dx%d image exceeds %d pixels", domain.ErrFileTooLarge, hdr.Width, hdr.Height, maxPixels)
	}
	if _, err := r.Seek(0, io.SeekStart); err != nil {
		return nil, fmt.Errorf("%w: %w", domain.ErrFileIO, err)
	}

	src, format, err := image.Decode(r)
	if err != nil {
		return nil, fmt.Errorf("%w: decoding image: %w", domain.ErrUnsupportedFormat, err)
	}

	b := src.Bounds()
	origW, origH := b.Dx(), b.Dy()
	if origW == 0 || origH == 0 {
		return nil, fmt.Errorf("%w: empty %s image", domain.ErrUnsupportedFormat, format)
	}
	newW, newH := ScaledSize(origW, origH, longestDim)

	dst := image.NewRGBA(image.Rect(0, 0, newW, newH))
	draw.Draw(dst, dst.Bounds(), &image.Uniform{C: color.White}, image.Point{}, draw.Src)
	xdraw.CatmullRom.Scale(dst, dst.Bounds(), src, b, xdraw.Over, nil)

	encoded, err := encodePNG(dst)
	if err != nil {
		return nil, err
	}

	return &domain.PreparedInput{
		ImageBase64: encoded,
		AnchorText:  ImageAnchorText(origW, origH, newW, newH),
		Width:       newW,
		Height:      newH,
	}, nil
}

func encodePNG(img image.Image) (string, error) {
	var buf bytes.Buffer
	if err := png.Encode(&buf, img); err != nil {
		return "", fmt.Errorf("encoding png: %w", err)
	}
	return base64.StdEncoding.EncodeToString(buf.Bytes()), nil
}
