package dto

import (
	"time"

	"github.com/google/uuid"
)

type DeleteAttachmentsDTO struct {
	IDs []uuid.UUID `json:"ids" validate:"required,min=1,max=100"`
}

type AttachmentDTO struct {
	ID          uuid.UUID `json:"id"`
	EntityID    string    `json:"entity_id"`
	EntityType  string    `json:"entity_type"`
	Name        string    `json:"name"`
	MimeType    string    `json:"mime_type"`
	Extension   string    `json:"extension"`
	StoragePath string    `json:"storage_path"`
	Size        int64     `json:"size"`
	CreatedAt   time.Time `json:"created_at"`
}
