// Package export renders extracted tables as downloadable CSV or XLSX files.
package export

import (
	"bytes"
	"errors"
	"fmt"
	"path/filepath"
	"regexp"
	"strings"
	"time"

	"docextract/internal/domain"
)

// Format is a table export file format.
type Format string

const (
	FormatCSV  Format = "csv"
	FormatXLSX Format = "xlsx"
)

// ErrUnknownFormat is returned for formats other than csv and xlsx.
var ErrUnknownFormat = errors.New("unknown export format")

// ParseFormat accepts "csv" or "xlsx" in any case; empty selects xlsx.
func ParseFormat(s string) (Format, error) {
	switch Format(strings.ToLower(strings.TrimSpace(s))) {
	case "", FormatXLSX:
		return FormatXLSX, nil
	case FormatCSV:
		return FormatCSV, nil
	}
	return "", fmt.Errorf("%w: %q", ErrUnknownFormat, s)
}

// ContentType returns the MIME type for the format.
func (f Format) ContentType() string {
	if f == FormatCSV {
		return "text/csv; charset=utf-8"
	}
	return "application/vnd.openxmlformats-officedocument.spreadsheetml.sheet"
}

// Render encodes tables in format.
func Render(format Format, tables domain.Tables) ([]byte, error) {
	switch format {
	case FormatXLSX:
		return XLSX(tables)
	case FormatCSV:
		var buf bytes.Buffer
		buf.Write(BOM)
		w := NewCSVWriter(&buf)
		if err := w.WriteTables(tables); err != nil {
			return nil, fmt.Errorf("csv write: %w", err)
		}
		w.Flush()
		if err := w.Error(); err != nil {
			return nil, fmt.Errorf("csv flush: %w", err)
		}
		return buf.Bytes(), nil
	}
	return nil, fmt.Errorf("%w: %q", ErrUnknownFormat, format)
}

// nonAlphanumeric matches characters that are not alphanumeric, hyphen, or underscore.
var nonAlphanumeric = regexp.MustCompile(`[^a-zA-Z0-9_-]+`)

// multiUnderscore matches consecutive underscores.
var multiUnderscore = regexp.MustCompile(`_{2,}`)

// SanitizeFilename cleans a name for use in Content-Disposition.
// Replaces non-alphanumeric chars (except - _) with _, collapses consecutive
// underscores, and truncates to 100 chars.
func SanitizeFilename(name string) string {
	s := nonAlphanumeric.ReplaceAllString(name, "_")
	s = multiUnderscore.ReplaceAllString(s, "_")
	s = strings.Trim(s, "_")
	if len(s) > 100 {
		s = s[:100]
	}
	return s
}

// BuildFilename returns {sanitized_source_name}_tables_{YYYY-MM-DD}.{format}.
func BuildFilename(sourceName string, format Format) string {
	base := SanitizeFilename(strings.TrimSuffix(sourceName, filepath.Ext(sourceName)))
	if base == "" {
		base = "document"
	}
	date := time.Now().Format("2006-01-02")
	return fmt.Sprintf("%s_tables_%s.%s", base, date, format)
}
