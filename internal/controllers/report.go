package controllers

import (
	"net/http"

	"reservation-system/internal/entities"
	"reservation-system/internal/services"
	apperrors "reservation-system/pkg/errors"
	"reservation-system/pkg/utils"

	"github.com/labstack/echo/v4"
	"go.uber.org/zap"
)

type ReportController struct {
	reportService services.ReportServiceInterface
	logger        *zap.Logger
}

func NewReportController(service services.ReportServiceInterface, logger *zap.Logger) *ReportController {
	return &ReportController{
		reportService: service,
		logger:        logger,
	}
}

func (c *ReportController) GetSummary(ctx echo.Context) error {
	res, err := c.reportService.GetSummary(ctx.Request().Context())
	if err != nil {
		c.logger.Error("GetSummary: failed to build summary", zap.Error(err))
		return utils.ErrorResponse(ctx, err, c.logger)
	}

	return utils.SuccessResponse(ctx, res, "Report summary loaded successfully", http.StatusOK)
}

func (c *ReportController) GetCompleted(ctx echo.Context) error {
	return c.byStatus(ctx, entities.StatusReturned)
}

func (c *ReportController) GetRejected(ctx echo.Context) error {
	return c.byStatus(ctx, entities.StatusRejected)
}

func (c *ReportController) byStatus(ctx echo.Context, status string) error {
	res, err := c.reportService.GetReservationsByStatus(ctx.Request().Context(), status)
	if err != nil {
		c.logger.Error("byStatus: failed to load reservations",
			zap.String("status", status), zap.Error(err))
		return utils.ErrorResponse(ctx, err, c.logger)
	}

	return utils.SuccessResponse(ctx, res, "Report loaded successfully", http.StatusOK)
}

// Export streams the full reservation history as an xlsx download.
func (c *ReportController) Export(ctx echo.Context) error {
	buf, filename, err := c.reportService.ExportReservations(ctx.Request().Context())
	if err != nil {
		c.logger.Error("Export: failed to build export", zap.Error(err))
		return utils.ErrorResponse(
			ctx,
			apperrors.NewHttpError(http.StatusInternalServerError, "Failed to build export", err, nil),
			c.logger,
		)
	}

	ctx.Response().Header().Set(echo.HeaderContentDisposition, `attachment; filename="`+filename+`"`)
	return ctx.Blob(http.StatusOK,
		"application/vnd.openxmlformats-officedocument.spreadsheetml.sheet", buf.Bytes())
}
