package controllers

import (
	"net/http"

	"github.com/labstack/echo/v4"
	"go.uber.org/zap"

	"hr-system/internal/services"
	apperrors "hr-system/pkg/errors"
	"hr-system/pkg/utils"
)

type AssetImportController struct {
	importService services.AssetImportServiceInterface
	logger        *zap.Logger
}

func NewAssetImportController(importService services.AssetImportServiceInterface, logger *zap.Logger) *AssetImportController {
	return &AssetImportController{importService: importService, logger: logger}
}

// ImportAssets принимает .xlsx в multipart-поле "file".
func (c *AssetImportController) ImportAssets(ctx echo.Context) error {
	fileHeader, err := ctx.FormFile("file")
	if err != nil {
		return utils.ErrorResponse(ctx, apperrors.NewHttpError(
			http.StatusBadRequest,
			"Ожидается multipart/form-data с полем 'file'",
			err,
			nil,
		), c.logger)
	}
	file, err := fileHeader.Open()
	if err != nil {
		return utils.ErrorResponse(ctx, err, c.logger)
	}
	defer file.Close()

	res, err := c.importService.ImportAssets(ctx.Request().Context(), file)
	if err != nil {
		return utils.ErrorResponse(ctx, err, c.logger)
	}
	return utils.SuccessOne(ctx, http.StatusCreated, "Импорт завершён", "import", res)
}
