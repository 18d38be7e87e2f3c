package controllers

import (
	"net/http"
	"strconv"

	"github.com/labstack/echo/v4"
	"go.uber.org/zap"

	"hr-system/internal/authz"
	"hr-system/internal/dto"
	"hr-system/internal/services"
	apperrors "hr-system/pkg/errors"
	"hr-system/pkg/utils"
)

type AssetController struct {
	assetService services.AssetServiceInterface
	permissions  PermissionChecker
	logger       *zap.Logger
}

func NewAssetController(assetService services.AssetServiceInterface, permissions PermissionChecker, logger *zap.Logger) *AssetController {
	return &AssetController{assetService: assetService, permissions: permissions, logger: logger}
}

func (c *AssetController) GetAssets(ctx echo.Context) error {
	filter := utils.ParseFilterFromQuery(ctx.Request().URL.Query())
	res, total, err := c.assetService.GetAssets(ctx.Request().Context(), filter)
	if err != nil {
		return utils.ErrorResponse(ctx, err, c.logger)
	}
	return listResponse(ctx, "Успешно", "assets", res, len(res), total, filter)
}

// FindAsset: ?unscoped=true отдаёт и удалённую технику, только с правом unscoped:view.
func (c *AssetController) FindAsset(ctx echo.Context) error {
	id, err := utils.ParseIDParam(ctx, "id")
	if err != nil {
		return utils.ErrorResponse(ctx, err, c.logger)
	}

	unscoped := false
	if raw := ctx.QueryParam("unscoped"); raw != "" {
		unscoped, err = strconv.ParseBool(raw)
		if err != nil {
			return utils.ErrorResponse(ctx, apperrors.NewBadRequestError("Параметр 'unscoped' должен быть true или false"), c.logger)
		}
	}
	if unscoped && !c.permissions.Allowed(ctx, authz.UnscopedView) {
		return utils.ErrorResponse(ctx, apperrors.ErrForbidden, c.logger)
	}

	res, err := c.assetService.FindAsset(ctx.Request().Context(), id, unscoped)
	if err != nil {
		return utils.ErrorResponse(ctx, err, c.logger)
	}
	return utils.SuccessOne(ctx, http.StatusOK, "Техника найдена", "asset", res)
}

func (c *AssetController) CreateAsset(ctx echo.Context) error {
	var payload dto.CreateAssetDTO
	if err := bindAndValidate(ctx, &payload); err != nil {
		c.logger.Warn("CreateAsset: некорректный запрос", zap.Error(err))
		return utils.ErrorResponse(ctx, err, c.logger)
	}
	res, err := c.assetService.CreateAsset(ctx.Request().Context(), payload)
	if err != nil {
		return utils.ErrorResponse(ctx, err, c.logger)
	}
	return utils.SuccessOne(ctx, http.StatusCreated, "Техника добавлена", "asset", res)
}

func (c *AssetController) UpdateAsset(ctx echo.Context) error {
	id, err := utils.ParseIDParam(ctx, "id")
	if err != nil {
		return utils.ErrorResponse(ctx, err, c.logger)
	}
	var payload dto.UpdateAssetDTO
	if err := bindAndValidate(ctx, &payload); err != nil {
		c.logger.Warn("UpdateAsset: некорректный запрос", zap.Error(err))
		return utils.ErrorResponse(ctx, err, c.logger)
	}
	res, err := c.assetService.UpdateAsset(ctx.Request().Context(), id, payload)
	if err != nil {
		return utils.ErrorResponse(ctx, err, c.logger)
	}
	return utils.SuccessOne(ctx, http.StatusOK, "Техника обновлена", "asset", res)
}

func (c *AssetController) DeleteAsset(ctx echo.Context) error {
	id, err := utils.ParseIDParam(ctx, "id")
	if err != nil {
		return utils.ErrorResponse(ctx, err, c.logger)
	}
	if err := c.assetService.DeleteAsset(ctx.Request().Context(), id); err != nil {
		return utils.ErrorResponse(ctx, err, c.logger)
	}
	return utils.SuccessMessage(ctx, http.StatusOK, "Техника удалена")
}
