package domain

import (
	"fmt"
	"strings"
)

// DocumentKind is the sniffed or declared kind of an uploaded document.
type DocumentKind string

const (
	DocumentKindPDF         DocumentKind = "pdf"
	DocumentKindImage       DocumentKind = "image"
	DocumentKindUnsupported DocumentKind = "unsupported"
)

// ExtractionKind selects one structured-extraction prompt and its result shape.
type ExtractionKind string

const (
	KindEntities   ExtractionKind = "entities"
	KindTables     ExtractionKind = "tables"
	KindFormFields ExtractionKind = "form_fields"
	KindStructure  ExtractionKind = "structure"
	KindNames      ExtractionKind = "names"
	KindPhones     ExtractionKind = "phones"
	// KindAllTables asks for every table in the document at once; the
	// two-phase tables route uses it.
	KindAllTables ExtractionKind = "all_tables"
)

// CompositeKinds are the kinds fanned out by a full extraction, in response order.
var CompositeKinds = []ExtractionKind{KindEntities, KindTables, KindFormFields, KindStructure}

// AllExtractionKinds lists every kind with a prompt template.
var AllExtractionKinds = []ExtractionKind{KindEntities, KindTables, KindFormFields, KindStructure, KindNames, KindPhones, KindAllTables}

// NumPredict is the output-token budget sent to the backend for each kind.
var NumPredict = map[ExtractionKind]int{
	KindEntities:   700,
	KindTables:     1000,
	KindFormFields: 700,
	KindStructure:  1000,
	KindNames:      300,
	KindPhones:     300,
	KindAllTables:  700,
}

// ParseExtractionKind validates a kind name; matching is case-insensitive
// and accepts "form-fields" as an alias.
func ParseExtractionKind(s string) (ExtractionKind, error) {
	k := ExtractionKind(strings.ReplaceAll(strings.ToLower(strings.TrimSpace(s)), "-", "_"))
	for _, known := range AllExtractionKinds {
		if k == known {
			return k, nil
		}
	}
	return "", fmt.Errorf("%w: %q", ErrInvalidExtractionKind, s)
}
