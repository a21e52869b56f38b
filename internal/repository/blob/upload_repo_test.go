package blob_test

import (
	"context"
	"encoding/json"
	"errors"
	"io"
	"testing"
	"time"

	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/require"

	"docextract/internal/domain"
	"docextract/internal/port"
	"docextract/internal/repository/blob"
	"docextract/mocks"
)

func encoded(t *testing.T, rec *domain.UploadRecord) []byte {
	t.Helper()
	data, err := json.Marshal(rec)
	require.NoError(t, err)
	return data
}

func TestUploadRepo_Save(t *testing.T) {
	storage := new(mocks.MockObjectStorage)
	repo := blob.NewUploadRepo(storage, "uploads")
	rec := &domain.UploadRecord{
		ID:        uuid.New(),
		Filename:  "a.pdf",
		OCR:       domain.OCRResult{Text: "hello"},
		ExpiresAt: time.Now().Add(time.Hour).UTC(),
	}

	var captured port.UploadInput
	storage.On("Upload", mock.Anything, mock.AnythingOfType("port.UploadInput")).
		Run(func(args mock.Arguments) { captured = args.Get(1).(port.UploadInput) }).
		Return(&port.UploadOutput{}, nil)

	require.NoError(t, repo.Save(context.Background(), rec))

	assert.Equal(t, "uploads/"+rec.ID.String()+".json", captured.Key)
	assert.Equal(t, "application/json", captured.ContentType)
	body, err := io.ReadAll(captured.Body)
	require.NoError(t, err)
	assert.Equal(t, int64(len(body)), captured.Size)
	var got domain.UploadRecord
	require.NoError(t, json.Unmarshal(body, &got))
	assert.Equal(t, "hello", got.OCR.Text)
}

func TestUploadRepo_Get(t *testing.T) {
	storage := new(mocks.MockObjectStorage)
	repo := blob.NewUploadRepo(storage, "uploads/")
	rec := &domain.UploadRecord{ID: uuid.New(), Filename: "a.pdf", OCR: domain.OCRResult{Text: "hello", Raw: "hello"}}

	storage.On("Download", mock.Anything, "uploads/"+rec.ID.String()+".json").Return(encoded(t, rec), nil)

	got, err := repo.Get(context.Background(), rec.ID)
	require.NoError(t, err)
	assert.Equal(t, "hello", got.OCR.Text)
	assert.Equal(t, rec.ID, got.ID)
}

func TestUploadRepo_GetNotFound(t *testing.T) {
	storage := new(mocks.MockObjectStorage)
	repo := blob.NewUploadRepo(storage, "uploads/")
	storage.On("Download", mock.Anything, mock.Anything).Return(nil, domain.ErrNotFound)

	_, err := repo.Get(context.Background(), uuid.New())
	assert.ErrorIs(t, err, domain.ErrUploadNotFound)
}

func TestUploadRepo_DeleteExpired(t *testing.T) {
	storage := new(mocks.MockObjectStorage)
	repo := blob.NewUploadRepo(storage, "uploads/")
	now := time.Now()

	live := &domain.UploadRecord{ID: uuid.New(), ExpiresAt: now.Add(time.Hour)}
	expired := &domain.UploadRecord{ID: uuid.New(), ExpiresAt: now.Add(-time.Hour)}
	liveKey := "uploads/" + live.ID.String() + ".json"
	expiredKey := "uploads/" + expired.ID.String() + ".json"

	storage.On("List", mock.Anything, "uploads/").Return([]port.ObjectInfo{
		{Key: liveKey}, {Key: expiredKey}, {Key: "uploads/readme.txt"}, {Key: "uploads/broken.json"},
	}, nil)
	storage.On("Download", mock.Anything, liveKey).Return(encoded(t, live), nil)
	storage.On("Download", mock.Anything, expiredKey).Return(encoded(t, expired), nil)
	storage.On("Download", mock.Anything, "uploads/broken.json").Return([]byte("{not json"), nil)
	storage.On("Delete", mock.Anything, expiredKey).Return(nil)

	n, err := repo.DeleteExpired(context.Background(), now)

	require.NoError(t, err)
	assert.Equal(t, 1, n)
	storage.AssertNotCalled(t, "Delete", mock.Anything, liveKey)
	storage.AssertNotCalled(t, "Download", mock.Anything, "uploads/readme.txt")
}

func TestUploadRepo_DeleteExpired_ListError(t *testing.T) {
	storage := new(mocks.MockObjectStorage)
	storage.On("List", mock.Anything, "uploads/").Return(nil, errors.New("access denied"))

	_, err := blob.NewUploadRepo(storage, "uploads/").DeleteExpired(context.Background(), time.Now())
	assert.ErrorContains(t, err, "access denied")
}

func TestUploadRepo_Ping(t *testing.T) {
	storage := new(mocks.MockObjectStorage)
	storage.On("Ping", mock.Anything).Return(nil)

	assert.NoError(t, blob.NewUploadRepo(storage, "").Ping(context.Background()))
}
