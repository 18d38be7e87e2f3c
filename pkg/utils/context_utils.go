package utils

import (
	"context"

	"github.com/google/uuid"
	"github.com/labstack/echo/v4"

	"hr-system/internal/dto"
	"hr-system/pkg/contextkeys"
	apperrors "hr-system/pkg/errors"
)

func GetClaimsFromContext(ctx context.Context) (*dto.UserClaims, error) {
	claims, ok := ctx.Value(contextkeys.UserClaimsKey).(*dto.UserClaims)
	if !ok || claims == nil {
		return nil, apperrors.ErrUnauthorized
	}
	return claims, nil
}

func ContextWithClaims(ctx context.Context, claims *dto.UserClaims) context.Context {
	return context.WithValue(ctx, contextkeys.UserClaimsKey, claims)
}

// ParseIDParam читает UUID из параметра пути.
func ParseIDParam(c echo.Context, name string) (uuid.UUID, error) {
	raw := c.Param(name)
	id, err := uuid.Parse(raw)
	if err != nil {
		return uuid.Nil, apperrors.NewInvalidIDError(raw)
	}
	return id, nil
}
