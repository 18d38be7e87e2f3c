package entities

import (
	"time"

	"github.com/aarondl/null/v8"
	"github.com/google/uuid"

	"hr-system/pkg/types"
)

// AssetTracking - интервал выдачи техники сотруднику. RemovedAt == null значит,
// что техника у сотрудника сейчас. Это не то же самое, что мягкое удаление записи.
type AssetTracking struct {
	ID         uuid.UUID       `db:"id"`
	AssetID    uuid.UUID       `db:"asset_id"`
	UserID     uuid.UUID       `db:"user_id"`
	AssignedAt time.Time       `db:"assigned_at"`
	RemovedAt  null.Time       `db:"removed_at"`
	Notes      null.String     `db:"notes"`
	Lifecycle  types.Lifecycle `db:"-"`

	types.BaseEntity

	// Сводки читаются без фильтра is_active, чтобы удалённая техника оставалась в истории
	Asset *AssetSummary `db:"-"`
	User  *UserSummary  `db:"-"`
}

func (t *AssetTracking) IsOpen() bool {
	return !t.RemovedAt.Valid
}

type AssetSummary struct {
	ID           uuid.UUID
	Name         string
	AssetType    string
	SerialNumber null.String
	IsActive     bool
}

type UserSummary struct {
	ID         uuid.UUID
	UserNumber string
	FirstName  string
	LastName   string
	IsActive   bool
}
