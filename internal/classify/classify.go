// Package classify decides whether an upload is a PDF or a raster image.
package classify

import (
	"bytes"
	"io"
	"path/filepath"
	"strings"

	"docextract/internal/domain"
)

// HeaderLen is the number of leading bytes needed to recognize every
// supported signature (WEBP needs 12).
const HeaderLen = 12

var imageExtensions = map[string]bool{
	".png":  true,
	".jpg":  true,
	".jpeg": true,
	".gif":  true,
	".bmp":  true,
	".tiff": true,
	".tif":  true,
	".webp": true,
}

var (
	magicPDF    = []byte("%PDF")
	magicPNG    = []byte("\x89PNG\r\n\x1a\n")
	magicJPEG   = []byte{0xFF, 0xD8, 0xFF}
	magicGIF87  = []byte("GIF87a")
	magicGIF89  = []byte("GIF89a")
	magicBMP    = []byte("BM")
	magicTIFFLE = []byte("II*\x00")
	magicTIFFBE = []byte("MM\x00*")
	magicRIFF   = []byte("RIFF")
	magicWEBP   = []byte("WEBP")
)

// Classify returns the document kind from the filename extension, falling
// back to magic bytes in header when the extension is absent or unknown.
func Classify(filename string, header []byte) domain.DocumentKind {
	if kind := byExtension(filename); kind != domain.DocumentKindUnsupported {
		return kind
	}
	return bySignature(header)
}

// Reader reads up to HeaderLen bytes from r and classifies them. The read
// error is returned only when nothing could be read at all.
func Reader(filename string, r io.Reader) (domain.DocumentKind, error) {
	if kind := byExtension(filename); kind != domain.DocumentKindUnsupported {
		return kind, nil
	}
	header := make([]byte, HeaderLen)
	n, err := io.ReadFull(r, header)
	if n == 0 && err != nil && err != io.EOF {
		return domain.DocumentKindUnsupported, err
	}
	return bySignature(header[:n]), nil
}

// Extension reports the lower-cased extension of filename, including the dot.
func Extension(filename string) string {
	return strings.ToLower(filepath.Ext(filename))
}

func byExtension(filename string) domain.DocumentKind {
	ext := Extension(filename)
	switch {
	case ext == ".pdf":
		return domain.DocumentKindPDF
	case imageExtensions[ext]:
		return domain.DocumentKindImage
	}
	return domain.DocumentKindUnsupported
}

func bySignature(header []byte) domain.DocumentKind {
	if bytes.HasPrefix(header, magicPDF) {
		return domain.DocumentKindPDF
	}
	if isImageSignature(header) {
		return domain.DocumentKindImage
	}
	return domain.DocumentKindUnsupported
}

func isImageSignature(h []byte) bool {
	switch {
	case bytes.HasPrefix(h, magicPNG),
		bytes.HasPrefix(h, magicJPEG),
		bytes.HasPrefix(h, magicGIF87),
		bytes.HasPrefix(h, magicGIF89),
		bytes.HasPrefix(h, magicTIFFLE),
		bytes.HasPrefix(h, magicTIFFBE):
		return true
	case bytes.HasPrefix(h, magicBMP) && len(h) >= 6:
		return true
	case len(h) >= 12 && bytes.HasPrefix(h, magicRIFF) && bytes.Equal(h[8:12], magicWEBP):
		return true
	}
	return false
}
