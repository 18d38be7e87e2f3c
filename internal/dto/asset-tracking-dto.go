package dto

import (
	"time"

	"github.com/aarondl/null/v8"
	"github.com/google/uuid"

	"hr-system/pkg/types"
)

// CreateAssetTrackingDTO: assigned_at по умолчанию - текущее время, removed_at - null.
type CreateAssetTrackingDTO struct {
	AssetID    uuid.UUID          `json:"asset_id" validate:"required"`
	UserID     uuid.UUID          `json:"user_id" validate:"required"`
	AssignedAt types.OptionalTime `json:"assigned_at"`
	RemovedAt  types.OptionalTime `json:"removed_at"`
	Notes      null.String        `json:"notes" validate:"omitempty,max=1000"`
}

// UpdateAssetTrackingDTO: пустая строка или null очищают дату.
type UpdateAssetTrackingDTO struct {
	AssetID    *uuid.UUID           `json:"asset_id"`
	UserID     *uuid.UUID           `json:"user_id"`
	AssignedAt types.OptionalTime   `json:"assigned_at"`
	RemovedAt  types.OptionalTime   `json:"removed_at"`
	Notes      types.OptionalString `json:"notes" validate:"omitempty,max=1000"`
}

type AssetTrackingDTO struct {
	ID         uuid.UUID      `json:"id"`
	AssetID    uuid.UUID      `json:"asset_id"`
	UserID     uuid.UUID      `json:"user_id"`
	AssignedAt time.Time      `json:"assigned_at"`
	RemovedAt  null.Time      `json:"removed_at"`
	Notes      null.String    `json:"notes"`
	Asset      *ShortAssetDTO `json:"asset,omitempty"`
	User       *ShortUserDTO  `json:"user,omitempty"`
	CreatedAt  time.Time      `json:"created_at"`
	UpdatedAt  time.Time      `json:"updated_at"`
	types.SoftDelete
}
