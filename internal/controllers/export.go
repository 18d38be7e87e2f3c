package controllers

import (
	"bytes"
	"context"
	"fmt"
	"io"
	"net/http"
	"time"

	"github.com/labstack/echo/v4"
	"go.uber.org/zap"

	"hr-system/internal/services"
	"hr-system/pkg/types"
	"hr-system/pkg/utils"
)

const xlsxContentType = "application/vnd.openxmlformats-officedocument.spreadsheetml.sheet"

type ExportController struct {
	exportService services.ExportServiceInterface
	logger        *zap.Logger
}

func NewExportController(exportService services.ExportServiceInterface, logger *zap.Logger) *ExportController {
	return &ExportController{exportService: exportService, logger: logger}
}

func (c *ExportController) ExportAssets(ctx echo.Context) error {
	return c.respondWithXLSX(ctx, "assets", c.exportService.ExportAssets)
}

func (c *ExportController) ExportAssetTrackings(ctx echo.Context) error {
	return c.respondWithXLSX(ctx, "asset_tracking", c.exportService.ExportAssetTrackings)
}

// Книга собирается в буфер целиком, чтобы ошибка не пришла после заголовков ответа.
func (c *ExportController) respondWithXLSX(ctx echo.Context, name string, export func(context.Context, types.Filter, io.Writer) error) error {
	filter := utils.ParseFilterFromQuery(ctx.Request().URL.Query())

	var buf bytes.Buffer
	if err := export(ctx.Request().Context(), filter, &buf); err != nil {
		return utils.ErrorResponse(ctx, err, c.logger)
	}

	fileName := fmt.Sprintf("%s_%s.xlsx", name, time.Now().Format("2006-01-02"))
	ctx.Response().Header().Set("Content-Disposition", "attachment; filename="+fileName)
	return ctx.Blob(http.StatusOK, xlsxContentType, buf.Bytes())
}
