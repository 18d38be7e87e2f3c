package entities

import (
	"time"

	"github.com/aarondl/null/v8"
	"github.com/google/uuid"

	"hr-system/pkg/types"
)

type Department struct {
	ID          uuid.UUID       `db:"id"`
	Name        string          `db:"name"`
	Description null.String     `db:"description"`
	Lifecycle   types.Lifecycle `db:"-"`

	types.BaseEntity
}

// UserDepartment - связь пользователя с отделом. Снятая связь мягко удаляется.
type UserDepartment struct {
	ID           uuid.UUID       `db:"id"`
	UserID       uuid.UUID       `db:"user_id"`
	DepartmentID uuid.UUID       `db:"department_id"`
	Lifecycle    types.Lifecycle `db:"-"`
	CreatedAt    time.Time       `db:"created_at"`
}
