package extraction_test

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"docextract/internal/domain"
	"docextract/internal/extraction"
)

func TestLoadTemplates_Embedded(t *testing.T) {
	tmpls, err := extraction.LoadTemplates("")
	require.NoError(t, err)

	for _, kind := range domain.AllExtractionKinds {
		prompt, err := tmpls.Render(kind, "Invoice No: 42\nName: John Doe")
		require.NoError(t, err, kind)
		assert.Contains(t, prompt, "Invoice No: 42\nName: John Doe", kind)
		assert.Contains(t, prompt, "ONLY valid JSON", kind)
		assert.Equal(t, "embedded", tmpls.Source(kind))
	}
}

func TestLoadTemplates_FewShotExamplesPresent(t *testing.T) {
	tmpls, err := extraction.LoadTemplates("")
	require.NoError(t, err)

	entities, err := tmpls.Render(domain.KindEntities, "x")
	require.NoError(t, err)
	assert.Contains(t, entities, `"names": ["Dr. Alan Turing"]`)
	assert.Contains(t, entities, `"organizations"`)
	assert.Contains(t, entities, `"amounts"`)

	forms, err := tmpls.Render(domain.KindFormFields, "x")
	require.NoError(t, err)
	assert.Contains(t, forms, `"Checkbox": "Yes"`)

	allTables, err := tmpls.Render(domain.KindAllTables, "x")
	require.NoError(t, err)
	assert.Contains(t, allTables, `{"tables": [{"headers": [...], "rows": [...]}]}`)

	structure, err := tmpls.Render(domain.KindStructure, "x")
	require.NoError(t, err)
	assert.Contains(t, structure, `"page_info": {"page_number": 1, "header": "", "footer": ""}`)
}

func TestLoadTemplates_OverrideDirectory(t *testing.T) {
	dir := t.TempDir()
	require.NoError(t, os.WriteFile(filepath.Join(dir, "tables.tmpl"), []byte("TABLES v2 :: {{.OCRText}}"), 0o600))

	tmpls, err := extraction.LoadTemplates(dir)
	require.NoError(t, err)

	prompt, err := tmpls.Render(domain.KindTables, "row data")
	require.NoError(t, err)
	assert.Equal(t, "TABLES v2 :: row data", prompt)
	assert.Equal(t, filepath.Join(dir, "tables.tmpl"), tmpls.Source(domain.KindTables))
	assert.Equal(t, "embedded", tmpls.Source(domain.KindEntities))
}

func TestLoadTemplates_BrokenOverride(t *testing.T) {
	dir := t.TempDir()
	require.NoError(t, os.WriteFile(filepath.Join(dir, "names.tmpl"), []byte("{{.OCRText"), 0o600))

	_, err := extraction.LoadTemplates(dir)
	assert.Error(t, err)
}

func TestTemplates_RenderUnknownKind(t *testing.T) {
	tmpls, err := extraction.LoadTemplates("")
	require.NoError(t, err)

	_, err = tmpls.Render("signatures", "x")
	assert.ErrorIs(t, err, domain.ErrInvalidExtractionKind)
}
