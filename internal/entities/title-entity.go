package entities

import (
	"github.com/aarondl/null/v8"
	"github.com/google/uuid"

	"hr-system/pkg/types"
)

type Title struct {
	ID          uuid.UUID       `db:"id"`
	Name        string          `db:"name"`
	Description null.String     `db:"description"`
	Lifecycle   types.Lifecycle `db:"-"`

	types.BaseEntity
}
