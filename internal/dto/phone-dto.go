package dto

import (
	"time"

	"github.com/google/uuid"

	"hr-system/pkg/types"
)

type CreatePhoneDTO struct {
	UserID    uuid.UUID `json:"user_id" validate:"required"`
	Number    string    `json:"number" validate:"required,phone_number"`
	PhoneType string    `json:"phone_type" validate:"required,phone_type"`
	IsPrimary bool      `json:"is_primary"`
}

type UpdatePhoneDTO struct {
	UserID    *uuid.UUID `json:"user_id"`
	Number    *string    `json:"number" validate:"omitempty,phone_number"`
	PhoneType *string    `json:"phone_type" validate:"omitempty,phone_type"`
	IsPrimary *bool      `json:"is_primary"`
}

type PhoneDTO struct {
	ID        uuid.UUID `json:"id"`
	UserID    uuid.UUID `json:"user_id"`
	Number    string    `json:"number"`
	PhoneType string    `json:"phone_type"`
	IsPrimary bool      `json:"is_primary"`
	CreatedAt time.Time `json:"created_at"`
	UpdatedAt time.Time `json:"updated_at"`
	types.SoftDelete
}
