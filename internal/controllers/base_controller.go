package controllers

import (
	"net/http"

	"github.com/labstack/echo/v4"

	apperrors "hr-system/pkg/errors"
	"hr-system/pkg/types"
	"hr-system/pkg/utils"
)

// PermissionChecker - точечная проверка прав внутри обработчика.
type PermissionChecker interface {
	Allowed(c echo.Context, permission string) bool
}

func bindAndValidate(ctx echo.Context, payload interface{}) error {
	if err := ctx.Bind(payload); err != nil {
		return apperrors.NewHttpError(
			http.StatusBadRequest,
			"Неверный формат данных в теле запроса",
			err,
			nil,
		)
	}
	return ctx.Validate(payload)
}

// listResponse отвечает конвертом списка. Без пагинации вся выборка считается одной страницей.
func listResponse(ctx echo.Context, message, key string, items interface{}, count int, total uint64, filter types.Filter) error {
	page, limit := filter.Page, filter.Limit
	if !filter.WithPagination {
		page, limit = 1, total
	}
	return utils.SuccessList(ctx, message, key, items, count, utils.NewPagination(total, page, limit))
}
