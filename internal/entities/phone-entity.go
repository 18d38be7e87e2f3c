package entities

import (
	"github.com/google/uuid"

	"hr-system/pkg/types"
)

type Phone struct {
	ID        uuid.UUID       `db:"id"`
	UserID    uuid.UUID       `db:"user_id"`
	Number    string          `db:"number"`
	PhoneType string          `db:"phone_type"`
	IsPrimary bool            `db:"is_primary"`
	Lifecycle types.Lifecycle `db:"-"`

	types.BaseEntity
}
