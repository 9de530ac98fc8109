package controllers

import (
	"net/http"
	"time"

	"reservation-system/internal/entities"
	"reservation-system/internal/services"
	apperrors "reservation-system/pkg/errors"
	"reservation-system/pkg/utils"

	"github.com/labstack/echo/v4"
	"go.uber.org/zap"
)

type AvailabilityController struct {
	availabilityService services.AvailabilityServiceInterface
	logger              *zap.Logger
}

func NewAvailabilityController(
	service services.AvailabilityServiceInterface,
	logger *zap.Logger,
) *AvailabilityController {
	return &AvailabilityController{
		availabilityService: service,
		logger:              logger,
	}
}

// GetSlotAvailability answers GET /availability/slots?date=YYYY-MM-DD: a
// coarse per-slot open/closed view of the day. Quantities are not
// considered here; use the equipment endpoint for per-item counts.
func (c *AvailabilityController) GetSlotAvailability(ctx echo.Context) error {
	date, err := parseDateQuery(ctx)
	if err != nil {
		return utils.ErrorResponse(ctx, err, c.logger)
	}

	res, err := c.availabilityService.GetSlotAvailability(ctx.Request().Context(), date)
	if err != nil {
		c.logger.Error("GetSlotAvailability: failed to compute slot availability",
			zap.String("date", ctx.QueryParam("date")), zap.Error(err))
		return utils.ErrorResponse(ctx, err, c.logger)
	}

	return utils.SuccessResponse(ctx, res, "Slot availability loaded successfully", http.StatusOK)
}

// GetEquipmentAvailability answers
// GET /availability/equipment?date=YYYY-MM-DD&slot=morning with the
// remaining quantity of every piece of equipment for that date and slot.
func (c *AvailabilityController) GetEquipmentAvailability(ctx echo.Context) error {
	date, err := parseDateQuery(ctx)
	if err != nil {
		return utils.ErrorResponse(ctx, err, c.logger)
	}

	slot := entities.TimeSlot(ctx.QueryParam("slot"))
	if !slot.Valid() {
		return utils.ErrorResponse(ctx,
			apperrors.NewInvalidInputError("slot must be one of morning, afternoon, fullday"), c.logger)
	}

	res, err := c.availabilityService.GetEquipmentAvailability(ctx.Request().Context(), date, slot)
	if err != nil {
		c.logger.Error("GetEquipmentAvailability: failed to compute equipment availability",
			zap.String("date", ctx.QueryParam("date")), zap.String("slot", string(slot)), zap.Error(err))
		return utils.ErrorResponse(ctx, err, c.logger)
	}

	return utils.SuccessResponse(ctx, res, "Equipment availability loaded successfully", http.StatusOK)
}

func parseDateQuery(ctx echo.Context) (time.Time, error) {
	raw := ctx.QueryParam("date")
	if raw == "" {
		return time.Time{}, apperrors.NewInvalidInputError("date query parameter is required")
	}
	date, err := time.Parse("2006-01-02", raw)
	if err != nil {
		return time.Time{}, apperrors.NewInvalidInputError("date must be YYYY-MM-DD")
	}
	return date, nil
}
