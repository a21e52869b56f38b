// Package blob stores two-phase uploads as JSON objects in object storage,
// one object per upload under a shared key prefix.
package blob

import (
	"bytes"
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"log"
	"strings"
	"time"

	"github.com/google/uuid"

	"docextract/internal/domain"
	"docextract/internal/port"
)

type uploadRepo struct {
	storage port.ObjectStorage
	prefix  string
}

// NewUploadRepo creates an UploadRepository over storage, keeping objects under prefix.
func NewUploadRepo(storage port.ObjectStorage, prefix string) port.UploadRepository {
	if prefix != "" && !strings.HasSuffix(prefix, "/") {
		prefix += "/"
	}
	return &uploadRepo{storage: storage, prefix: prefix}
}

func (r *uploadRepo) key(id uuid.UUID) string {
	return r.prefix + id.String() + ".json"
}

func (r *uploadRepo) Save(ctx context.Context, rec *domain.UploadRecord) error {
	data, err := json.Marshal(rec)
	if err != nil {
		return fmt.Errorf("blob.uploadRepo.Save marshal: %w", err)
	}
	_, err = r.storage.Upload(ctx, port.UploadInput{
		Key:         r.key(rec.ID),
		Body:        bytes.NewReader(data),
		ContentType: "application/json",
		Size:        int64(len(data)),
	})
	if err != nil {
		return fmt.Errorf("blob.uploadRepo.Save: %w", err)
	}
	return nil
}

func (r *uploadRepo) Get(ctx context.Context, id uuid.UUID) (*domain.UploadRecord, error) {
	return r.read(ctx, r.key(id))
}

func (r *uploadRepo) read(ctx context.Context, key string) (*domain.UploadRecord, error) {
	data, err := r.storage.Download(ctx, key)
	if err != nil {
		if errors.Is(err, domain.ErrNotFound) {
			return nil, domain.ErrUploadNotFound
		}
		return nil, fmt.Errorf("blob.uploadRepo.Get: %w", err)
	}
	var rec domain.UploadRecord
	if err := json.Unmarshal(data, &rec); err != nil {
		return nil, fmt.Errorf("blob.uploadRepo.Get unmarshal %s: %w", key, err)
	}
	return &rec, nil
}

// DeleteExpired reads every record under the prefix; unreadable objects are
// skipped and left for the next sweep.
func (r *uploadRepo) DeleteExpired(ctx context.Context, now time.Time) (int, error) {
	objects, err := r.storage.List(ctx, r.prefix)
	if err != nil {
		return 0, fmt.Errorf("blob.uploadRepo.DeleteExpired list: %w", err)
	}

	n := 0
	for _, obj := range objects {
		if !strings.HasSuffix(obj.Key, ".json") {
			continue
		}
		rec, err := r.read(ctx, obj.Key)
		if err != nil {
			if !errors.Is(err, domain.ErrUploadNotFound) {
				log.Printf("blob.uploadRepo.DeleteExpired: skipping %s: %v", obj.Key, err)
			}
			continue
		}
		if !rec.Expired(now) {
			continue
		}
		if err := r.storage.Delete(ctx, obj.Key); err != nil {
			return n, fmt.Errorf("blob.uploadRepo.DeleteExpired: %w", err)
		}
		n++
	}
	return n, nil
}

func (r *uploadRepo) Ping(ctx context.Context) error {
	return r.storage.Ping(ctx)
}
