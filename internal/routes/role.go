package routes

import (
	"github.com/labstack/echo/v4"

	"hr-system/internal/authz"
	"hr-system/internal/controllers"
	"hr-system/pkg/middleware"
)

func runRoleRouter(secureGroup *echo.Group, ctrl *controllers.RoleController, authMW *middleware.AuthMiddleware) {
	group := secureGroup.Group("/roles")

	group.GET("", ctrl.GetRoles, authMW.RequirePermission(authz.RolesView))
	group.POST("", ctrl.CreateRole, authMW.RequirePermission(authz.RolesCreate))
	group.GET("/:id", ctrl.FindRole, authMW.RequirePermission(authz.RolesView))
	group.PATCH("/:id", ctrl.UpdateRole, authMW.RequirePermission(authz.RolesUpdate))
	group.DELETE("/:id", ctrl.DeleteRole, authMW.RequirePermission(authz.RolesDelete))
}
