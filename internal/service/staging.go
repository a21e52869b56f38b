package service

import (
	"encoding/hex"
	"errors"
	"fmt"
	"io"
	"log"
	"os"
	"sync"

	"golang.org/x/crypto/blake2b"

	"docextract/internal/classify"
	"docextract/internal/domain"
)

// stagedFile is an upload copied to request-scoped temp storage.
type stagedFile struct {
	Path        string
	Filename    string
	Kind        domain.DocumentKind
	Fingerprint string

	once sync.Once
}

// Release removes the temp file. It is safe to call more than once; only the
// first call touches the filesystem.
func (f *stagedFile) Release() {
	f.once.Do(func() {
		if err := os.Remove(f.Path); err != nil && !errors.Is(err, os.ErrNotExist) {
			log.Printf("service.stagedFile: failed to remove %s: %v", f.Path, err)
		}
	})
}

// stageFile copies body to a temp file while hashing it, then classifies it.
// Unsupported or oversized documents are removed before returning. A
// maxBytes of zero or less disables the size check.
func stageFile(filename string, body io.Reader, maxBytes int64) (*stagedFile, error) {
	tmp, err := os.CreateTemp("", "docextract-*"+classify.Extension(filename))
	if err != nil {
		return nil, fmt.Errorf("%w: creating temp file: %w", domain.ErrFileIO, err)
	}
	staged := &stagedFile{Path: tmp.Name(), Filename: filename}

	hasher, _ := blake2b.New256(nil)
	src := body
	if maxBytes > 0 {
		src = io.LimitReader(body, maxBytes+1)
	}
	n, err := io.Copy(io.MultiWriter(tmp, hasher), src)
	if closeErr := tmp.Close(); err == nil {
		err = closeErr
	}
	if err != nil {
		staged.Release()
		return nil, fmt.Errorf("%w: writing temp file: %w", domain.ErrFileIO, err)
	}
	if maxBytes > 0 && n > maxBytes {
		staged.Release()
		return nil, fmt.Errorf("%w: %s exceeds %d bytes", domain.ErrFileTooLarge, filename, maxBytes)
	}
	staged.Fingerprint = hex.EncodeToString(hasher.Sum(nil))

	kind, err := classifyStaged(staged.Path, filename)
	if err != nil {
		staged.Release()
		return nil, err
	}
	if kind == domain.DocumentKindUnsupported {
		staged.Release()
		return nil, fmt.Errorf("%w: %s", domain.ErrUnsupportedFormat, filename)
	}
	staged.Kind = kind

	return staged, nil
}

func classifyStaged(path, filename string) (domain.DocumentKind, error) {
	f, err := os.Open(path)
	if err != nil {
		return domain.DocumentKindUnsupported, fmt.Errorf("%w: %w", domain.ErrFileIO, err)
	}
	defer f.Close()

	kind, err := classify.Reader(filename, f)
	if err != nil {
		return domain.DocumentKindUnsupported, fmt.Errorf("%w: reading header: %w", domain.ErrFileIO, err)
	}
	return kind, nil
}
