package controllers

import (
	"net/http"

	"github.com/labstack/echo/v4"
	"go.uber.org/zap"

	"hr-system/internal/dto"
	"hr-system/internal/entities"
	"hr-system/internal/services"
	apperrors "hr-system/pkg/errors"
	"hr-system/pkg/utils"
)

type AttachmentController struct {
	attachmentService services.AttachmentServiceInterface
	logger            *zap.Logger
}

func NewAttachmentController(attachmentService services.AttachmentServiceInterface, logger *zap.Logger) *AttachmentController {
	return &AttachmentController{attachmentService: attachmentService, logger: logger}
}

// Upload принимает multipart-поле "files" для владельца из пути /:id.
func (c *AttachmentController) Upload(owner entities.AttachmentOwner) echo.HandlerFunc {
	return func(ctx echo.Context) error {
		ownerID, err := utils.ParseIDParam(ctx, "id")
		if err != nil {
			return utils.ErrorResponse(ctx, err, c.logger)
		}
		form, err := ctx.MultipartForm()
		if err != nil {
			return utils.ErrorResponse(ctx, apperrors.NewHttpError(
				http.StatusBadRequest,
				"Ожидается multipart/form-data с полем 'files'",
				err,
				nil,
			), c.logger)
		}

		res, err := c.attachmentService.Upload(ctx.Request().Context(), owner, ownerID, form.File["files"])
		if err != nil {
			return utils.ErrorResponse(ctx, err, c.logger)
		}
		return utils.SuccessOne(ctx, http.StatusCreated, "Файлы загружены", "attachments", res)
	}
}

func (c *AttachmentController) List(owner entities.AttachmentOwner) echo.HandlerFunc {
	return func(ctx echo.Context) error {
		ownerID, err := utils.ParseIDParam(ctx, "id")
		if err != nil {
			return utils.ErrorResponse(ctx, err, c.logger)
		}
		res, err := c.attachmentService.Fetch(ctx.Request().Context(), owner, ownerID)
		if err != nil {
			return utils.ErrorResponse(ctx, err, c.logger)
		}
		return utils.SuccessOne(ctx, http.StatusOK, "Успешно", "attachments", res)
	}
}

func (c *AttachmentController) Delete(ctx echo.Context) error {
	var payload dto.DeleteAttachmentsDTO
	if err := bindAndValidate(ctx, &payload); err != nil {
		return utils.ErrorResponse(ctx, err, c.logger)
	}
	deleted, err := c.attachmentService.Delete(ctx.Request().Context(), payload.IDs)
	if err != nil {
		return utils.ErrorResponse(ctx, err, c.logger)
	}
	return utils.SuccessOne(ctx, http.StatusOK, "Вложения удалены", "deleted", deleted)
}
