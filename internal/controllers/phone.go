package controllers

import (
	"net/http"

	"github.com/labstack/echo/v4"
	"go.uber.org/zap"

	"hr-system/internal/dto"
	"hr-system/internal/services"
	"hr-system/pkg/utils"
)

type PhoneController struct {
	phoneService services.PhoneServiceInterface
	logger       *zap.Logger
}

func NewPhoneController(phoneService services.PhoneServiceInterface, logger *zap.Logger) *PhoneController {
	return &PhoneController{phoneService: phoneService, logger: logger}
}

func (c *PhoneController) GetPhones(ctx echo.Context) error {
	filter := utils.ParseFilterFromQuery(ctx.Request().URL.Query())
	res, total, err := c.phoneService.GetPhones(ctx.Request().Context(), filter)
	if err != nil {
		return utils.ErrorResponse(ctx, err, c.logger)
	}
	return listResponse(ctx, "Успешно", "phones", res, len(res), total, filter)
}

func (c *PhoneController) FindPhone(ctx echo.Context) error {
	id, err := utils.ParseIDParam(ctx, "id")
	if err != nil {
		return utils.ErrorResponse(ctx, err, c.logger)
	}
	res, err := c.phoneService.FindPhone(ctx.Request().Context(), id)
	if err != nil {
		return utils.ErrorResponse(ctx, err, c.logger)
	}
	return utils.SuccessOne(ctx, http.StatusOK, "Телефон найден", "phone", res)
}

func (c *PhoneController) CreatePhone(ctx echo.Context) error {
	var payload dto.CreatePhoneDTO
	if err := bindAndValidate(ctx, &payload); err != nil {
		c.logger.Warn("CreatePhone: некорректный запрос", zap.Error(err))
		return utils.ErrorResponse(ctx, err, c.logger)
	}
	res, err := c.phoneService.CreatePhone(ctx.Request().Context(), payload)
	if err != nil {
		return utils.ErrorResponse(ctx, err, c.logger)
	}
	return utils.SuccessOne(ctx, http.StatusCreated, "Телефон добавлен", "phone", res)
}

func (c *PhoneController) UpdatePhone(ctx echo.Context) error {
	id, err := utils.ParseIDParam(ctx, "id")
	if err != nil {
		return utils.ErrorResponse(ctx, err, c.logger)
	}
	var payload dto.UpdatePhoneDTO
	if err := bindAndValidate(ctx, &payload); err != nil {
		c.logger.Warn("UpdatePhone: некорректный запрос", zap.Error(err))
		return utils.ErrorResponse(ctx, err, c.logger)
	}
	res, err := c.phoneService.UpdatePhone(ctx.Request().Context(), id, payload)
	if err != nil {
		return utils.ErrorResponse(ctx, err, c.logger)
	}
	return utils.SuccessOne(ctx, http.StatusOK, "Телефон обновлён", "phone", res)
}

func (c *PhoneController) DeletePhone(ctx echo.Context) error {
	id, err := utils.ParseIDParam(ctx, "id")
	if err != nil {
		return utils.ErrorResponse(ctx, err, c.logger)
	}
	if err := c.phoneService.DeletePhone(ctx.Request().Context(), id); err != nil {
		return utils.ErrorResponse(ctx, err, c.logger)
	}
	return utils.SuccessMessage(ctx, http.StatusOK, "Телефон удалён")
}
