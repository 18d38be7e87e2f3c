package dto

import "github.com/google/uuid"

// UserClaims - данные пользователя из access-токена, доступные в контексте запроса.
type UserClaims struct {
	UserID uuid.UUID
	Role   string
}
