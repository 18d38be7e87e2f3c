package entities

import (
	"github.com/aarondl/null/v8"
	"github.com/google/uuid"

	"hr-system/pkg/types"
)

type User struct {
	ID           uuid.UUID       `db:"id"`
	UserNumber   string          `db:"user_number"`
	Username     null.String     `db:"username"`
	PasswordHash null.String     `db:"password_hash"`
	FirstName    string          `db:"first_name"`
	LastName     string          `db:"last_name"`
	Email        null.String     `db:"email"`
	RoleID       uuid.UUID       `db:"role_id"`
	TitleID      *uuid.UUID      `db:"title_id"`
	Title        null.String     `db:"title"`
	Lifecycle    types.Lifecycle `db:"-"`

	types.BaseEntity

	// Заполняются сервисом при чтении
	Role        *Role        `db:"-"`
	Phones      []Phone      `db:"-"`
	Departments []Department `db:"-"`
}

func (u *User) FullName() string {
	return u.FirstName + " " + u.LastName
}
