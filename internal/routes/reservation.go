package routes

import (
	"reservation-system/internal/controllers"

	"github.com/labstack/echo/v4"
)

func runReservationRouter(secure *echo.Group, ctrl *controllers.ReservationController) {
	secure.POST("/reservations", ctrl.CreateReservation)
	secure.GET("/reservations", ctrl.GetReservations)
	secure.GET("/reservations/:id", ctrl.FindReservation)
	secure.GET("/reservations/:id/items", ctrl.GetReservationItems)
	secure.PATCH("/reservations/:id", ctrl.UpdateReservationStatus)
	secure.DELETE("/reservations/:id", ctrl.DeleteReservation)
}
