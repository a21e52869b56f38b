package preprocess_test

import (
	"context"
	"errors"
	"os"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"docextract/internal/domain"
	"docextract/internal/preprocess"
)

type fakeRunner struct {
	name   string
	args   []string
	output []byte
	stderr []byte
	err    error
}

// Run records the invocation and, on success, writes output where
// pdftoppm -singlefile would put it.
func (f *fakeRunner) Run(ctx context.Context, name string, args ...string) ([]byte, []byte, error) {
	f.name = name
	f.args = args
	if f.err != nil {
		return nil, f.stderr, f.err
	}
	if f.output != nil {
		prefix := args[len(args)-1]
		if err := os.WriteFile(prefix+".png", f.output, 0o600); err != nil {
			return nil, nil, err
		}
	}
	return nil, nil, nil
}

func TestPdftoppmRenderer_RenderPage(t *testing.T) {
	runner := &fakeRunner{output: []byte("png-bytes")}
	r := preprocess.NewPdftoppmRendererWithRunner("", runner)

	data, err := r.RenderPage(context.Background(), "/tmp/in.pdf", 3, 1024)

	require.NoError(t, err)
	assert.Equal(t, []byte("png-bytes"), data)
	assert.Equal(t, "pdftoppm", runner.name)
	require.Len(t, runner.args, 10)
	assert.Equal(t, []string{"-f", "3", "-l", "3", "-png", "-scale-to", "1024", "-singlefile", "/tmp/in.pdf"}, runner.args[:9])

	// the render dir is removed afterwards
	_, statErr := os.Stat(runner.args[9] + ".png")
	assert.True(t, os.IsNotExist(statErr))
}

func TestPdftoppmRenderer_PageOutOfRange(t *testing.T) {
	runner := &fakeRunner{
		err:    errors.New("exit status 99"),
		stderr: []byte("Wrong page range given: the first page (2) can not be after the last page (1)."),
	}
	r := preprocess.NewPdftoppmRendererWithRunner("pdftoppm", runner)

	_, err := r.RenderPage(context.Background(), "/tmp/in.pdf", 2, 1024)
	assert.ErrorIs(t, err, domain.ErrPageOutOfRange)
}

func TestPdftoppmRenderer_NoOutput(t *testing.T) {
	r := preprocess.NewPdftoppmRendererWithRunner("pdftoppm", &fakeRunner{})

	_, err := r.RenderPage(context.Background(), "/tmp/in.pdf", 5, 1024)
	assert.ErrorIs(t, err, domain.ErrPageOutOfRange)
}

func TestPdftoppmRenderer_OtherFailure(t *testing.T) {
	runner := &fakeRunner{err: errors.New("exit status 1"), stderr: []byte("Syntax Error: Couldn't read xref table")}
	r := preprocess.NewPdftoppmRendererWithRunner("pdftoppm", runner)

	_, err := r.RenderPage(context.Background(), "/tmp/in.pdf", 1, 1024)
	require.Error(t, err)
	assert.NotErrorIs(t, err, domain.ErrPageOutOfRange)
	assert.Contains(t, err.Error(), "xref")
}

func TestPdftoppmRenderer_InvalidPage(t *testing.T) {
	runner := &fakeRunner{}
	r := preprocess.NewPdftoppmRendererWithRunner("pdftoppm", runner)

	_, err := r.RenderPage(context.Background(), "/tmp/in.pdf", 0, 1024)
	assert.ErrorIs(t, err, domain.ErrPageOutOfRange)
	assert.Empty(t, runner.name)
}
