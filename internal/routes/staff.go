package routes

import (
	"reservation-system/internal/controllers"
	"reservation-system/internal/entities"
	"reservation-system/pkg/middleware"

	"github.com/labstack/echo/v4"
)

func runStaffRouter(secure *echo.Group, ctrl *controllers.StaffController, authMW *middleware.AuthMiddleware) {
	superadminOnly := authMW.RestrictTo(entities.RoleSuperadmin)

	secure.GET("/staff", ctrl.GetStaff, superadminOnly)
	secure.GET("/staff/:id", ctrl.FindStaff, superadminOnly)
	secure.POST("/staff", ctrl.CreateStaff, superadminOnly)
	secure.PUT("/staff/:id", ctrl.UpdateStaff, superadminOnly)
	secure.DELETE("/staff/:id", ctrl.DeleteStaff, superadminOnly)
}
