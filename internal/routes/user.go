package routes

import (
	"github.com/labstack/echo/v4"

	"hr-system/internal/authz"
	"hr-system/internal/controllers"
	"hr-system/internal/entities"
	"hr-system/pkg/middleware"
)

func runUserRouter(
	secureGroup *echo.Group,
	userCtrl *controllers.UserController,
	attachmentCtrl *controllers.AttachmentController,
	authMW *middleware.AuthMiddleware,
) {
	users := secureGroup.Group("/users")

	users.GET("", userCtrl.GetUsers, authMW.RequirePermission(authz.UsersView))
	users.POST("", userCtrl.CreateUser, authMW.RequirePermission(authz.UsersCreate))
	users.GET("/:id", userCtrl.FindUser, authMW.RequirePermission(authz.UsersView))
	users.PATCH("/:id", userCtrl.UpdateUser, authMW.RequirePermission(authz.UsersUpdate))
	users.DELETE("/:id", userCtrl.DeleteUser, authMW.RequirePermission(authz.UsersDelete))

	users.GET("/:id/attachments", attachmentCtrl.List(entities.OwnerUsers), authMW.RequirePermission(authz.AttachmentsView))
	users.POST("/:id/attachments", attachmentCtrl.Upload(entities.OwnerUsers), authMW.RequirePermission(authz.AttachmentsCreate))
}
