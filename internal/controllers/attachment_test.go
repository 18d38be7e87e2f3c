package controllers

import (
	"bytes"
	"context"
	"mime/multipart"
	"net/http"
	"testing"

	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap"

	"hr-system/internal/dto"
	"hr-system/internal/entities"
)

type fakeAttachmentService struct {
	uploadedOwner entities.AttachmentOwner
	uploadedID    uuid.UUID
	uploadedNames []string
	deletedIDs    []uuid.UUID
}

func (f *fakeAttachmentService) Upload(_ context.Context, owner entities.AttachmentOwner, ownerID uuid.UUID, files []*multipart.FileHeader) ([]dto.AttachmentDTO, error) {
	f.uploadedOwner, f.uploadedID = owner, ownerID
	res := make([]dto.AttachmentDTO, 0, len(files))
	for _, fh := range files {
		f.uploadedNames = append(f.uploadedNames, fh.Filename)
		res = append(res, dto.AttachmentDTO{ID: uuid.New(), Name: fh.Filename, Size: fh.Size})
	}
	return res, nil
}

func (f *fakeAttachmentService) Fetch(_ context.Context, _ entities.AttachmentOwner, _ uuid.UUID) ([]dto.AttachmentDTO, error) {
	return []dto.AttachmentDTO{}, nil
}

func (f *fakeAttachmentService) FetchBatch(_ context.Context, _ entities.AttachmentOwner, _ []uuid.UUID) (map[uuid.UUID][]entities.Attachment, error) {
	return nil, nil
}

func (f *fakeAttachmentService) Delete(_ context.Context, ids []uuid.UUID) (int64, error) {
	f.deletedIDs = ids
	return int64(len(ids)), nil
}

func TestUploadAttachmentsForOwner(t *testing.T) {
	svc := &fakeAttachmentService{}
	e := newTestEcho()
	ctrl := NewAttachmentController(svc, zap.NewNop())
	e.POST("/assets/:id/attachments", ctrl.Upload(entities.OwnerAssets))

	var buf bytes.Buffer
	writer := multipart.NewWriter(&buf)
	for _, name := range []string{"invoice.pdf", "photo.png"} {
		part, err := writer.CreateFormFile("files", name)
		require.NoError(t, err)
		_, err = part.Write([]byte("content"))
		require.NoError(t, err)
	}
	require.NoError(t, writer.Close())

	ownerID := uuid.New()
	rec := doRequest(e, http.MethodPost, "/assets/"+ownerID.String()+"/attachments", &buf, writer.FormDataContentType())
	require.Equal(t, http.StatusCreated, rec.Code, rec.Body.String())

	assert.Equal(t, entities.OwnerAssets, svc.uploadedOwner)
	assert.Equal(t, ownerID, svc.uploadedID)
	assert.Equal(t, []string{"invoice.pdf", "photo.png"}, svc.uploadedNames)
	assert.Len(t, decodeBody(t, rec)["attachments"], 2)
}

func TestUploadRequiresMultipart(t *testing.T) {
	e := newTestEcho()
	ctrl := NewAttachmentController(&fakeAttachmentService{}, zap.NewNop())
	e.POST("/users/:id/attachments", ctrl.Upload(entities.OwnerUsers))

	rec := doJSON(e, http.MethodPost, "/users/"+uuid.NewString()+"/attachments", `{}`)
	assert.Equal(t, http.StatusBadRequest, rec.Code)
}

func TestDeleteAttachments(t *testing.T) {
	svc := &fakeAttachmentService{}
	e := newTestEcho()
	ctrl := NewAttachmentController(svc, zap.NewNop())
	e.DELETE("/attachments", ctrl.Delete)

	rec := doJSON(e, http.MethodDelete, "/attachments", `{"ids": []}`)
	assert.Equal(t, http.StatusBadRequest, rec.Code)

	id := uuid.New()
	rec = doJSON(e, http.MethodDelete, "/attachments", `{"ids": ["`+id.String()+`"]}`)
	require.Equal(t, http.StatusOK, rec.Code)
	assert.Equal(t, []uuid.UUID{id}, svc.deletedIDs)
	assert.EqualValues(t, 1, decodeBody(t, rec)["deleted"])
}
