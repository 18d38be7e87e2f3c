package dto

import (
	"time"

	"github.com/aarondl/null/v8"
	"github.com/google/uuid"

	"hr-system/pkg/types"
)

type CreateUserPhoneDTO struct {
	Number    string `json:"number" validate:"required,phone_number"`
	PhoneType string `json:"phone_type" validate:"required,phone_type"`
	IsPrimary bool   `json:"is_primary"`
}

type CreateUserDTO struct {
	UserNumber    string               `json:"user_number" validate:"required,user_number"`
	Username      null.String          `json:"username" validate:"omitempty,min=3,max=50"`
	Password      null.String          `json:"password" validate:"omitempty,min=8"`
	FirstName     string               `json:"first_name" validate:"required,max=100"`
	LastName      string               `json:"last_name" validate:"required,max=100"`
	Email         null.String          `json:"email" validate:"omitempty,email"`
	RoleID        uuid.UUID            `json:"role_id" validate:"required"`
	TitleID       *uuid.UUID           `json:"title_id"`
	Title         null.String          `json:"title" validate:"omitempty,max=150"`
	DepartmentIDs []uuid.UUID          `json:"department_ids"`
	Phones        []CreateUserPhoneDTO `json:"phones" validate:"omitempty,dive"`
}

// UpdateUserDTO: nil-указатель значит "не менять"; для nullable-полей явный null
// очищает значение. DepartmentIDs, если передан, полностью заменяет связи.
type UpdateUserDTO struct {
	UserNumber    *string              `json:"user_number" validate:"omitempty,user_number"`
	Username      types.OptionalString `json:"username" validate:"omitempty,min=3,max=50"`
	FirstName     *string              `json:"first_name" validate:"omitempty,min=1,max=100"`
	LastName      *string              `json:"last_name" validate:"omitempty,min=1,max=100"`
	Email         types.OptionalString `json:"email" validate:"omitempty,email"`
	RoleID        *uuid.UUID           `json:"role_id"`
	TitleID       types.OptionalString `json:"title_id" validate:"omitempty,uuid"`
	Title         types.OptionalString `json:"title" validate:"omitempty,max=150"`
	DepartmentIDs *[]uuid.UUID         `json:"department_ids"`
}

type UserDTO struct {
	ID          uuid.UUID            `json:"id"`
	UserNumber  string               `json:"user_number"`
	Username    null.String          `json:"username"`
	FirstName   string               `json:"first_name"`
	LastName    string               `json:"last_name"`
	Email       null.String          `json:"email"`
	RoleID      uuid.UUID            `json:"role_id"`
	Role        *RoleDTO             `json:"role,omitempty"`
	TitleID     *uuid.UUID           `json:"title_id"`
	Title       null.String          `json:"title"`
	Phones      []PhoneDTO           `json:"phones"`
	Departments []ShortDepartmentDTO `json:"departments"`
	CreatedAt   time.Time            `json:"created_at"`
	UpdatedAt   time.Time            `json:"updated_at"`
	types.SoftDelete
}

type ShortUserDTO struct {
	ID         uuid.UUID `json:"id"`
	UserNumber string    `json:"user_number"`
	FirstName  string    `json:"first_name"`
	LastName   string    `json:"last_name"`
	IsActive   bool      `json:"is_active"`
}
