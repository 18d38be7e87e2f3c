package controllers

import (
	"net/http"

	"github.com/labstack/echo/v4"
	"go.uber.org/zap"

	"hr-system/internal/dto"
	"hr-system/internal/services"
	"hr-system/pkg/utils"
)

type AssetTrackingController struct {
	trackingService services.AssetTrackingServiceInterface
	logger          *zap.Logger
}

func NewAssetTrackingController(trackingService services.AssetTrackingServiceInterface, logger *zap.Logger) *AssetTrackingController {
	return &AssetTrackingController{trackingService: trackingService, logger: logger}
}

// GetAssetTrackings: activeOnly=true оставляет только текущие выдачи.
func (c *AssetTrackingController) GetAssetTrackings(ctx echo.Context) error {
	filter := utils.ParseFilterFromQuery(ctx.Request().URL.Query())
	res, total, err := c.trackingService.GetAssetTrackings(ctx.Request().Context(), filter)
	if err != nil {
		return utils.ErrorResponse(ctx, err, c.logger)
	}
	return listResponse(ctx, "Успешно", "assetTrackings", res, len(res), total, filter)
}

func (c *AssetTrackingController) FindAssetTracking(ctx echo.Context) error {
	id, err := utils.ParseIDParam(ctx, "id")
	if err != nil {
		return utils.ErrorResponse(ctx, err, c.logger)
	}
	res, err := c.trackingService.FindAssetTracking(ctx.Request().Context(), id)
	if err != nil {
		return utils.ErrorResponse(ctx, err, c.logger)
	}
	return utils.SuccessOne(ctx, http.StatusOK, "Запись о выдаче найдена", "assetTracking", res)
}

func (c *AssetTrackingController) CreateAssetTracking(ctx echo.Context) error {
	var payload dto.CreateAssetTrackingDTO
	if err := bindAndValidate(ctx, &payload); err != nil {
		c.logger.Warn("CreateAssetTracking: некорректный запрос", zap.Error(err))
		return utils.ErrorResponse(ctx, err, c.logger)
	}
	res, err := c.trackingService.CreateAssetTracking(ctx.Request().Context(), payload)
	if err != nil {
		return utils.ErrorResponse(ctx, err, c.logger)
	}
	return utils.SuccessOne(ctx, http.StatusCreated, "Техника выдана", "assetTracking", res)
}

func (c *AssetTrackingController) UpdateAssetTracking(ctx echo.Context) error {
	id, err := utils.ParseIDParam(ctx, "id")
	if err != nil {
		return utils.ErrorResponse(ctx, err, c.logger)
	}
	var payload dto.UpdateAssetTrackingDTO
	if err := bindAndValidate(ctx, &payload); err != nil {
		c.logger.Warn("UpdateAssetTracking: некорректный запрос", zap.Error(err))
		return utils.ErrorResponse(ctx, err, c.logger)
	}
	res, err := c.trackingService.UpdateAssetTracking(ctx.Request().Context(), id, payload)
	if err != nil {
		return utils.ErrorResponse(ctx, err, c.logger)
	}
	return utils.SuccessOne(ctx, http.StatusOK, "Запись о выдаче обновлена", "assetTracking", res)
}

func (c *AssetTrackingController) DeleteAssetTracking(ctx echo.Context) error {
	id, err := utils.ParseIDParam(ctx, "id")
	if err != nil {
		return utils.ErrorResponse(ctx, err, c.logger)
	}
	if err := c.trackingService.DeleteAssetTracking(ctx.Request().Context(), id); err != nil {
		return utils.ErrorResponse(ctx, err, c.logger)
	}
	return utils.SuccessMessage(ctx, http.StatusOK, "Запись о выдаче удалена")
}
