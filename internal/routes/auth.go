package routes

import (
	"reservation-system/internal/controllers"

	"github.com/labstack/echo/v4"
)

func runAuthRouter(api *echo.Group, secure *echo.Group, ctrl *controllers.AuthController) {
	api.POST("/auth/register", ctrl.Register)
	api.POST("/auth/login", ctrl.Login)
	secure.GET("/auth/me", ctrl.Me)
}
