package routes

import (
	"github.com/labstack/echo/v4"

	"hr-system/internal/authz"
	"hr-system/internal/controllers"
	"hr-system/pkg/middleware"
)

func runPhoneRouter(secureGroup *echo.Group, ctrl *controllers.PhoneController, authMW *middleware.AuthMiddleware) {
	group := secureGroup.Group("/phones")

	group.GET("", ctrl.GetPhones, authMW.RequirePermission(authz.PhonesView))
	group.POST("", ctrl.CreatePhone, authMW.RequirePermission(authz.PhonesCreate))
	group.GET("/:id", ctrl.FindPhone, authMW.RequirePermission(authz.PhonesView))
	group.PATCH("/:id", ctrl.UpdatePhone, authMW.RequirePermission(authz.PhonesUpdate))
	group.DELETE("/:id", ctrl.DeletePhone, authMW.RequirePermission(authz.PhonesDelete))
}
