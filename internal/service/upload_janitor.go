package service

import (
	"context"
	"log"
	"time"

	"docextract/internal/port"
)

// UploadJanitor periodically purges expired two-phase uploads.
type UploadJanitor struct {
	repo     port.UploadRepository
	interval time.Duration
	now      func() time.Time
}

// NewUploadJanitor creates a new UploadJanitor.
func NewUploadJanitor(repo port.UploadRepository, interval time.Duration) *UploadJanitor {
	if interval <= 0 {
		interval = 5 * time.Minute
	}
	return &UploadJanitor{repo: repo, interval: interval, now: time.Now}
}

// Start runs the sweep loop until ctx is canceled.
func (j *UploadJanitor) Start(ctx context.Context) {
	ticker := time.NewTicker(j.interval)
	defer ticker.Stop()

	log.Printf("uploadJanitor: started (interval=%s)", j.interval)

	for {
		select {
		case <-ctx.Done():
			log.Printf("uploadJanitor: shutdown complete")
			return
		case <-ticker.C:
			if _, err := j.Sweep(ctx); err != nil && ctx.Err() == nil {
				log.Printf("uploadJanitor: sweep error: %v", err)
			}
		}
	}
}

// Sweep deletes every upload expired as of now and reports how many were removed.
func (j *UploadJanitor) Sweep(ctx context.Context) (int, error) {
	n, err := j.repo.DeleteExpired(ctx, j.now())
	if err != nil {
		return 0, err
	}
	if n > 0 {
		log.Printf("uploadJanitor: purged %d expired uploads", n)
	}
	return n, nil
}
