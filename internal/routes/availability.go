package routes

import (
	"reservation-system/internal/controllers"

	"github.com/labstack/echo/v4"
)

// Availability is public so borrowers can browse open dates before
// signing in.
func runAvailabilityRouter(api *echo.Group, ctrl *controllers.AvailabilityController) {
	api.GET("/availability/slots", ctrl.GetSlotAvailability)
	api.GET("/availability/equipment", ctrl.GetEquipmentAvailability)
}
