package dto

import (
	"time"

	"github.com/aarondl/null/v8"
	"github.com/google/uuid"

	"hr-system/pkg/types"
)

// Роли, отделы и должности устроены одинаково: имя, уникальное среди активных, и описание.

type CreateDictionaryDTO struct {
	Name        string      `json:"name" validate:"required,min=2,max=100"`
	Description null.String `json:"description" validate:"omitempty,max=500"`
}

type UpdateDictionaryDTO struct {
	Name        *string              `json:"name" validate:"omitempty,min=2,max=100"`
	Description types.OptionalString `json:"description" validate:"omitempty,max=500"`
}

type RoleDTO struct {
	ID          uuid.UUID   `json:"id"`
	Name        string      `json:"name"`
	Description null.String `json:"description"`
	CreatedAt   time.Time   `json:"created_at"`
	UpdatedAt   time.Time   `json:"updated_at"`
	types.SoftDelete
}

type DepartmentDTO struct {
	ID          uuid.UUID   `json:"id"`
	Name        string      `json:"name"`
	Description null.String `json:"description"`
	CreatedAt   time.Time   `json:"created_at"`
	UpdatedAt   time.Time   `json:"updated_at"`
	types.SoftDelete
}

type ShortDepartmentDTO struct {
	ID   uuid.UUID `json:"id"`
	Name string    `json:"name"`
}

type TitleDTO struct {
	ID          uuid.UUID   `json:"id"`
	Name        string      `json:"name"`
	Description null.String `json:"description"`
	CreatedAt   time.Time   `json:"created_at"`
	UpdatedAt   time.Time   `json:"updated_at"`
	types.SoftDelete
}
