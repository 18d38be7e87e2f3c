package routes

import (
	"github.com/labstack/echo/v4"

	"hr-system/internal/controllers"
)

func runAuthRouter(api *echo.Group, secureGroup *echo.Group, authCtrl *controllers.AuthController) {
	auth := api.Group("/auth")
	auth.POST("/register", authCtrl.Register)
	auth.POST("/login", authCtrl.Login)
	auth.POST("/refresh", authCtrl.Refresh)
	auth.POST("/logout", authCtrl.Logout)

	secureGroup.GET("/auth/me", authCtrl.Me)
}

// Токен для /ws проверяет сам контроллер: браузер передаёт его в query.
func runWebSocketRouter(api *echo.Group, wsCtrl *controllers.WebSocketController) {
	api.GET("/ws", wsCtrl.ServeWs)
}
