package routes

import (
	"reservation-system/internal/controllers"
	"reservation-system/internal/entities"
	"reservation-system/pkg/middleware"

	"github.com/labstack/echo/v4"
)

func runReportRouter(secure *echo.Group, ctrl *controllers.ReportController, authMW *middleware.AuthMiddleware) {
	staffOnly := authMW.RestrictTo(entities.RoleStaff, entities.RoleSuperadmin)

	secure.GET("/reports/summary", ctrl.GetSummary, staffOnly)
	secure.GET("/reports/completed", ctrl.GetCompleted, staffOnly)
	secure.GET("/reports/rejected", ctrl.GetRejected, staffOnly)
	secure.GET("/reports/export", ctrl.Export, staffOnly)
}
