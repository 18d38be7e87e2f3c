package routes

import (
	"github.com/labstack/echo/v4"

	"hr-system/internal/authz"
	"hr-system/internal/controllers"
	"hr-system/pkg/middleware"
)

func runDepartmentRouter(secureGroup *echo.Group, ctrl *controllers.DepartmentController, authMW *middleware.AuthMiddleware) {
	group := secureGroup.Group("/departments")

	group.GET("", ctrl.GetDepartments, authMW.RequirePermission(authz.DepartmentsView))
	group.POST("", ctrl.CreateDepartment, authMW.RequirePermission(authz.DepartmentsCreate))
	group.GET("/:id", ctrl.FindDepartment, authMW.RequirePermission(authz.DepartmentsView))
	group.PATCH("/:id", ctrl.UpdateDepartment, authMW.RequirePermission(authz.DepartmentsUpdate))
	group.DELETE("/:id", ctrl.DeleteDepartment, authMW.RequirePermission(authz.DepartmentsDelete))
}
