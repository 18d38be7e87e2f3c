package services

import (
	"bytes"
	"context"
	"errors"
	"mime/multipart"
	"net/http"
	"testing"

	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap"

	"hr-system/internal/entities"
	apperrors "hr-system/pkg/errors"
)

var pngHeader = []byte("\x89PNG\r\n\x1a\n\x00\x00\x00\rIHDR")

// multipartFiles собирает настоящую multipart-форму и возвращает её файлы.
func multipartFiles(t *testing.T, files map[string][]byte) []*multipart.FileHeader {
	t.Helper()
	body := &bytes.Buffer{}
	w := multipart.NewWriter(body)
	for name, content := range files {
		part, err := w.CreateFormFile("files", name)
		require.NoError(t, err)
		_, err = part.Write(content)
		require.NoError(t, err)
	}
	require.NoError(t, w.Close())

	form, err := multipart.NewReader(body, w.Boundary()).ReadForm(10 << 20)
	require.NoError(t, err)
	t.Cleanup(func() { _ = form.RemoveAll() })
	return form.File["files"]
}

func TestAttachmentUpload(t *testing.T) {
	ownerID := uuid.New()
	repo := newMemAttachmentRepo(ownerID)
	storage := newMemStorage()
	svc := NewAttachmentService(repo, storage, zap.NewNop())

	files := multipartFiles(t, map[string][]byte{
		"Паспорт.PNG": pngHeader,
		"scan.png":    pngHeader,
	})
	created, err := svc.Upload(context.Background(), entities.OwnerUsers, ownerID, files)
	require.NoError(t, err)
	require.Len(t, created, 2)

	for _, a := range created {
		assert.Equal(t, "png", a.Extension)
		assert.Equal(t, "image/png", a.MimeType)
		assert.Equal(t, "users", a.EntityType)
		assert.Equal(t, ownerID.String(), a.EntityID)
		assert.NotEmpty(t, a.StoragePath)
	}
	assert.Equal(t, 2, storage.count())

	fetched, err := svc.Fetch(context.Background(), entities.OwnerUsers, ownerID)
	require.NoError(t, err)
	assert.Len(t, fetched, 2)
}

func TestAttachmentUploadUnknownOwner(t *testing.T) {
	storage := newMemStorage()
	svc := NewAttachmentService(newMemAttachmentRepo(), storage, zap.NewNop())

	_, err := svc.Upload(context.Background(), entities.OwnerAssets, uuid.New(), multipartFiles(t, map[string][]byte{"a.png": pngHeader}))
	assert.Equal(t, http.StatusNotFound, apperrors.StatusCode(err))
	assert.Zero(t, storage.count())
}

func TestAttachmentUploadRejectsWholeBatch(t *testing.T) {
	ownerID := uuid.New()
	storage := newMemStorage()
	svc := NewAttachmentService(newMemAttachmentRepo(ownerID), storage, zap.NewNop())

	_, err := svc.Upload(context.Background(), entities.OwnerUsers, ownerID, multipartFiles(t, map[string][]byte{
		"photo.png": pngHeader,
		"notes.txt": []byte("просто текст"),
	}))
	require.Error(t, err)
	assert.Equal(t, http.StatusBadRequest, apperrors.StatusCode(err))

	var httpErr *apperrors.HttpError
	require.True(t, errors.As(err, &httpErr))
	require.Len(t, httpErr.Details, 1)
	assert.Contains(t, httpErr.Details[0], "notes.txt")
	assert.Zero(t, storage.count())

	_, err = svc.Upload(context.Background(), entities.OwnerUsers, ownerID, nil)
	assert.Equal(t, http.StatusBadRequest, apperrors.StatusCode(err))
}

func TestAttachmentUploadCleansUpOnFailure(t *testing.T) {
	ownerID := uuid.New()

	t.Run("сбой записи в БД", func(t *testing.T) {
		repo := newMemAttachmentRepo(ownerID)
		repo.createErr = errors.New("connection reset")
		storage := newMemStorage()
		svc := NewAttachmentService(repo, storage, zap.NewNop())

		_, err := svc.Upload(context.Background(), entities.OwnerAssets, ownerID, multipartFiles(t, map[string][]byte{
			"a.png": pngHeader, "b.png": pngHeader,
		}))
		require.Error(t, err)
		assert.Zero(t, storage.count())
		assert.Len(t, storage.removed, 2)
	})

	t.Run("сбой хранилища", func(t *testing.T) {
		repo := newMemAttachmentRepo(ownerID)
		storage := newMemStorage()
		storage.failOn = "b.png"
		svc := NewAttachmentService(repo, storage, zap.NewNop())

		_, err := svc.Upload(context.Background(), entities.OwnerAssets, ownerID, multipartFiles(t, map[string][]byte{
			"a.png": pngHeader, "b.png": pngHeader,
		}))
		require.Error(t, err)
		assert.Zero(t, storage.count())
		assert.Empty(t, repo.items)
	})
}

func TestAttachmentDelete(t *testing.T) {
	ownerID := uuid.New()
	repo := newMemAttachmentRepo(ownerID)
	storage := newMemStorage()
	svc := NewAttachmentService(repo, storage, zap.NewNop())

	created, err := svc.Upload(context.Background(), entities.OwnerUsers, ownerID,
		multipartFiles(t, map[string][]byte{"a.png": pngHeader}))
	require.NoError(t, err)

	deleted, err := svc.Delete(context.Background(), []uuid.UUID{created[0].ID, uuid.New()})
	require.NoError(t, err)
	assert.EqualValues(t, 1, deleted)
	assert.Zero(t, storage.count())

	_, err = svc.Delete(context.Background(), []uuid.UUID{created[0].ID})
	assert.Equal(t, http.StatusNotFound, apperrors.StatusCode(err))
}

func TestAttachmentFetchBatchKeysByOwner(t *testing.T) {
	first, second := uuid.New(), uuid.New()
	repo := newMemAttachmentRepo(first, second)
	svc := NewAttachmentService(repo, newMemStorage(), zap.NewNop())

	_, err := svc.Upload(context.Background(), entities.OwnerAssets, first, multipartFiles(t, map[string][]byte{"a.png": pngHeader}))
	require.NoError(t, err)

	batch, err := svc.FetchBatch(context.Background(), entities.OwnerAssets, []uuid.UUID{first, second})
	require.NoError(t, err)
	assert.Len(t, batch[first], 1)
	assert.NotContains(t, batch, second)
}
