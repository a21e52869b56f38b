package domain

import (
	"time"

	"github.com/google/uuid"
)

// PreparedInput is the canonical OCR model input for one document page.
type PreparedInput struct {
	ImageBase64 string `json:"image_base64"`
	AnchorText  string `json:"anchor_text"`
	Width       int    `json:"width"`
	Height      int    `json:"height"`
}

// PageResponse is the structured page description emitted by olmOCR checkpoints.
type PageResponse struct {
	PrimaryLanguage    string `json:"primary_language"`
	IsRotationValid    bool   `json:"is_rotation_valid"`
	RotationCorrection int    `json:"rotation_correction"`
	IsTable            bool   `json:"is_table"`
	IsDiagram          bool   `json:"is_diagram"`
	NaturalText        string `json:"natural_text"`
}

// OCRResult is the transcription of one page. Text is the natural text when
// the model answered with a page response, otherwise the raw completion.
type OCRResult struct {
	Text string        `json:"text"`
	Raw  string        `json:"raw"`
	Page *PageResponse `json:"page,omitempty"`
}

// ExtractionResult is one decoded extraction, discriminated by Kind.
type ExtractionResult interface {
	Kind() ExtractionKind
}

// Entities holds the entity lists found in a document. Every list is always present.
type Entities struct {
	Names         []string `json:"names"`
	Dates         []string `json:"dates"`
	Addresses     []string `json:"addresses"`
	Emails        []string `json:"emails"`
	PhoneNumbers  []string `json:"phone_numbers"`
	Organizations []string `json:"organizations"`
	Amounts       []string `json:"amounts"`
}

func (Entities) Kind() ExtractionKind { return KindEntities }

// Table is a header row plus data rows. Row arity is not enforced.
type Table struct {
	Headers []string   `json:"headers"`
	Rows    [][]string `json:"rows"`
}

type Tables []Table

func (Tables) Kind() ExtractionKind { return KindTables }

// AllTables is every table found in one document.
type AllTables []Table

func (AllTables) Kind() ExtractionKind { return KindAllTables }

// FormFields maps a field label to its value; unfilled fields map to "".
type FormFields map[string]string

func (FormFields) Kind() ExtractionKind { return KindFormFields }

type Section struct {
	Heading string `json:"heading"`
	Content string `json:"content"`
	Table   *Table `json:"table,omitempty"`
}

type PageInfo struct {
	PageNumber int    `json:"page_number"`
	Header     string `json:"header"`
	Footer     string `json:"footer"`
}

// Structure is the heading/section/list hierarchy of a page.
type Structure struct {
	Sections []Section   `json:"sections"`
	Lists    [][]string `json:"lists"`
	PageInfo PageInfo   `json:"page_info"`
}

func (Structure) Kind() ExtractionKind { return KindStructure }

type NameList struct {
	Names []string `json:"names"`
}

func (NameList) Kind() ExtractionKind { return KindNames }

type PhoneList struct {
	Phones []string `json:"phones"`
}

func (PhoneList) Kind() ExtractionKind { return KindPhones }

// EmptyResult returns the typed empty default for a kind.
func EmptyResult(kind ExtractionKind) ExtractionResult {
	switch kind {
	case KindEntities:
		return Entities{
			Names:         []string{},
			Dates:         []string{},
			Addresses:     []string{},
			Emails:        []string{},
			PhoneNumbers:  []string{},
			Organizations: []string{},
			Amounts:       []string{},
		}
	case KindTables:
		return Tables{}
	case KindFormFields:
		return FormFields{}
	case KindStructure:
		return Structure{Sections: []Section{}, Lists: [][]string{}}
	case KindNames:
		return NameList{Names: []string{}}
	case KindPhones:
		return PhoneList{Phones: []string{}}
	case KindAllTables:
		return AllTables{}
	}
	return nil
}

// CompositeExtraction is the fan-out result for one document.
type CompositeExtraction struct {
	Entities   Entities   `json:"entities"`
	Tables     Tables     `json:"tables"`
	FormFields FormFields `json:"form_fields"`
	Structure  Structure  `json:"structure"`
}

// EmptyComposite returns a composite where every kind holds its empty default.
func EmptyComposite() CompositeExtraction {
	return CompositeExtraction{
		Entities:   EmptyResult(KindEntities).(Entities),
		Tables:     EmptyResult(KindTables).(Tables),
		FormFields: EmptyResult(KindFormFields).(FormFields),
		Structure:  EmptyResult(KindStructure).(Structure),
	}
}

// Set stores a result in the slot matching its kind. Kinds outside the
// composite are ignored.
func (c *CompositeExtraction) Set(r ExtractionResult) {
	switch v := r.(type) {
	case Entities:
		c.Entities = v
	case Tables:
		c.Tables = v
	case FormFields:
		c.FormFields = v
	case Structure:
		c.Structure = v
	}
}

// BatchItem is one slot of a batch response. Error is set when the whole
// document failed; the extraction fields then hold empty defaults.
type BatchItem struct {
	CompositeExtraction
	Filename    string `json:"filename"`
	Fingerprint string `json:"fingerprint,omitempty"`
	Error       string `json:"error,omitempty"`
}

// TranscribedDocument is the OCR output for one uploaded document.
type TranscribedDocument struct {
	OCRResult
	Filename    string `json:"filename"`
	Fingerprint string `json:"fingerprint"`
}

// PipelineResult pairs the OCR stage output with the extraction built from it.
type PipelineResult struct {
	OCR        OCRResult           `json:"ocr"`
	Extraction CompositeExtraction `json:"extraction"`
}

// UploadRecord is the persisted OCR output of the first phase of the
// two-phase flow.
type UploadRecord struct {
	ID          uuid.UUID `db:"id" json:"id"`
	Filename    string    `db:"filename" json:"filename"`
	Fingerprint string    `db:"fingerprint" json:"fingerprint"`
	OCR         OCRResult `db:"-" json:"ocr"`
	CreatedAt   time.Time `db:"created_at" json:"created_at"`
	ExpiresAt   time.Time `db:"expires_at" json:"expires_at"`
}

// Expired reports whether the record is past its expiry at now.
func (r *UploadRecord) Expired(now time.Time) bool {
	return !r.ExpiresAt.After(now)
}

// UploadReceipt is returned from the upload call; Token addresses the record.
type UploadReceipt struct {
	Token     string    `json:"upload_token"`
	UploadID  uuid.UUID `json:"upload_id"`
	Filename  string    `json:"filename"`
	ExpiresAt time.Time `json:"expires_at"`
}
