package extraction

import (
	"bytes"
	"embed"
	"errors"
	"fmt"
	"io/fs"
	"os"
	"path/filepath"
	"text/template"

	"docextract/internal/domain"
)

//go:embed prompts/*.tmpl
var promptFS embed.FS

const embeddedSource = "embedded"

// PromptData is the value every prompt template is executed against.
type PromptData struct {
	OCRText string
}

// Templates maps each extraction kind to its prompt template. The mapping is
// the only thing the extractor knows about prompt wording.
type Templates struct {
	byKind  map[domain.ExtractionKind]*template.Template
	sources map[domain.ExtractionKind]string
}

// LoadTemplates parses the built-in prompts. When overrideDir is non-empty,
// any <kind>.tmpl file found there replaces the built-in prompt for that kind.
func LoadTemplates(overrideDir string) (*Templates, error) {
	t := &Templates{
		byKind:  make(map[domain.ExtractionKind]*template.Template, len(domain.AllExtractionKinds)),
		sources: make(map[domain.ExtractionKind]string, len(domain.AllExtractionKinds)),
	}
	for _, kind := range domain.AllExtractionKinds {
		name := string(kind) + ".tmpl"
		text, source, err := readTemplate(overrideDir, name)
		if err != nil {
			return nil, fmt.Errorf("loading %s prompt: %w", kind, err)
		}
		tmpl, err := template.New(name).Option("missingkey=error").Parse(text)
		if err != nil {
			return nil, fmt.Errorf("parsing %s prompt from %s: %w", kind, source, err)
		}
		t.byKind[kind] = tmpl
		t.sources[kind] = source
	}
	return t, nil
}

func readTemplate(overrideDir, name string) (text, source string, err error) {
	if overrideDir != "" {
		path := filepath.Join(overrideDir, name)
		b, err := os.ReadFile(path)
		if err == nil {
			return string(b), path, nil
		}
		if !errors.Is(err, fs.ErrNotExist) {
			return "", "", err
		}
	}
	b, err := promptFS.ReadFile("prompts/" + name)
	if err != nil {
		return "", "", err
	}
	return string(b), embeddedSource, nil
}

// Render builds the prompt for kind with ocrText interpolated.
func (t *Templates) Render(kind domain.ExtractionKind, ocrText string) (string, error) {
	tmpl, ok := t.byKind[kind]
	if !ok {
		return "", fmt.Errorf("%w: %q", domain.ErrInvalidExtractionKind, kind)
	}
	var buf bytes.Buffer
	if err := tmpl.Execute(&buf, PromptData{OCRText: ocrText}); err != nil {
		return "", fmt.Errorf("rendering %s prompt: %w", kind, err)
	}
	return buf.String(), nil
}

// Source reports where the template for kind was loaded from: "embedded" or
// the override file path.
func (t *Templates) Source(kind domain.ExtractionKind) string {
	return t.sources[kind]
}
