package routes

import (
	"github.com/labstack/echo/v4"

	"hr-system/internal/authz"
	"hr-system/internal/controllers"
	"hr-system/pkg/middleware"
)

func runAttachmentRouter(secureGroup *echo.Group, attachmentCtrl *controllers.AttachmentController, authMW *middleware.AuthMiddleware) {
	secureGroup.DELETE("/attachments", attachmentCtrl.Delete, authMW.RequirePermission(authz.AttachmentsDelete))
}
