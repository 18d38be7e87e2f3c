package routes

import (
	"github.com/labstack/echo/v4"

	"hr-system/internal/authz"
	"hr-system/internal/controllers"
	"hr-system/pkg/middleware"
)

func runTitleRouter(secureGroup *echo.Group, ctrl *controllers.TitleController, authMW *middleware.AuthMiddleware) {
	group := secureGroup.Group("/titles")

	group.GET("", ctrl.GetTitles, authMW.RequirePermission(authz.TitlesView))
	group.POST("", ctrl.CreateTitle, authMW.RequirePermission(authz.TitlesCreate))
	group.GET("/:id", ctrl.FindTitle, authMW.RequirePermission(authz.TitlesView))
	group.PATCH("/:id", ctrl.UpdateTitle, authMW.RequirePermission(authz.TitlesUpdate))
	group.DELETE("/:id", ctrl.DeleteTitle, authMW.RequirePermission(authz.TitlesDelete))
}
