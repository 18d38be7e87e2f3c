package controllers

import (
	"net/http"

	"github.com/labstack/echo/v4"
	"go.uber.org/zap"

	"hr-system/internal/dto"
	"hr-system/internal/services"
	"hr-system/pkg/utils"
)

type TitleController struct {
	titleService services.TitleServiceInterface
	logger       *zap.Logger
}

func NewTitleController(titleService services.TitleServiceInterface, logger *zap.Logger) *TitleController {
	return &TitleController{titleService: titleService, logger: logger}
}

func (c *TitleController) GetTitles(ctx echo.Context) error {
	filter := utils.ParseFilterFromQuery(ctx.Request().URL.Query())
	res, total, err := c.titleService.GetTitles(ctx.Request().Context(), filter)
	if err != nil {
		return utils.ErrorResponse(ctx, err, c.logger)
	}
	return listResponse(ctx, "Успешно", "titles", res, len(res), total, filter)
}

func (c *TitleController) FindTitle(ctx echo.Context) error {
	id, err := utils.ParseIDParam(ctx, "id")
	if err != nil {
		return utils.ErrorResponse(ctx, err, c.logger)
	}
	res, err := c.titleService.FindTitle(ctx.Request().Context(), id)
	if err != nil {
		return utils.ErrorResponse(ctx, err, c.logger)
	}
	return utils.SuccessOne(ctx, http.StatusOK, "Должность найдена", "title", res)
}

func (c *TitleController) CreateTitle(ctx echo.Context) error {
	var payload dto.CreateDictionaryDTO
	if err := bindAndValidate(ctx, &payload); err != nil {
		c.logger.Warn("CreateTitle: некорректный запрос", zap.Error(err))
		return utils.ErrorResponse(ctx, err, c.logger)
	}
	res, err := c.titleService.CreateTitle(ctx.Request().Context(), payload)
	if err != nil {
		return utils.ErrorResponse(ctx, err, c.logger)
	}
	return utils.SuccessOne(ctx, http.StatusCreated, "Должность создана", "title", res)
}

func (c *TitleController) UpdateTitle(ctx echo.Context) error {
	id, err := utils.ParseIDParam(ctx, "id")
	if err != nil {
		return utils.ErrorResponse(ctx, err, c.logger)
	}
	var payload dto.UpdateDictionaryDTO
	if err := bindAndValidate(ctx, &payload); err != nil {
		c.logger.Warn("UpdateTitle: некорректный запрос", zap.Error(err))
		return utils.ErrorResponse(ctx, err, c.logger)
	}
	res, err := c.titleService.UpdateTitle(ctx.Request().Context(), id, payload)
	if err != nil {
		return utils.ErrorResponse(ctx, err, c.logger)
	}
	return utils.SuccessOne(ctx, http.StatusOK, "Должность обновлена", "title", res)
}

func (c *TitleController) DeleteTitle(ctx echo.Context) error {
	id, err := utils.ParseIDParam(ctx, "id")
	if err != nil {
		return utils.ErrorResponse(ctx, err, c.logger)
	}
	if err := c.titleService.DeleteTitle(ctx.Request().Context(), id); err != nil {
		return utils.ErrorResponse(ctx, err, c.logger)
	}
	return utils.SuccessMessage(ctx, http.StatusOK, "Должность удалена")
}
