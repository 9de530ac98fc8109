package routes

import (
	"reservation-system/internal/controllers"
	"reservation-system/internal/entities"
	"reservation-system/pkg/middleware"

	"github.com/labstack/echo/v4"
)

func runEquipmentRouter(api *echo.Group, secure *echo.Group, ctrl *controllers.EquipmentController, authMW *middleware.AuthMiddleware) {
	// The catalog is public; mutations are for staff and above.
	api.GET("/equipment", ctrl.GetEquipments)
	api.GET("/equipment/:id", ctrl.FindEquipment)

	staffOnly := authMW.RestrictTo(entities.RoleStaff, entities.RoleSuperadmin)
	secure.POST("/equipment", ctrl.CreateEquipment, staffOnly)
	secure.PUT("/equipment/:id", ctrl.UpdateEquipment, staffOnly)
	secure.DELETE("/equipment/:id", ctrl.DeleteEquipment, staffOnly)
	secure.GET("/equipment/:id/stock-audit", ctrl.GetStockAudit, staffOnly)
}
