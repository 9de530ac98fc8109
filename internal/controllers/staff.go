package controllers

import (
	"net/http"

	"reservation-system/internal/dto"
	"reservation-system/internal/services"
	apperrors "reservation-system/pkg/errors"
	"reservation-system/pkg/utils"

	"github.com/labstack/echo/v4"
	"go.uber.org/zap"
)

type StaffController struct {
	staffService services.StaffServiceInterface
	logger       *zap.Logger
}

func NewStaffController(service services.StaffServiceInterface, logger *zap.Logger) *StaffController {
	return &StaffController{
		staffService: service,
		logger:       logger,
	}
}

func (c *StaffController) GetStaff(ctx echo.Context) error {
	filter := utils.ParseFilterFromQuery(ctx.Request().URL.Query())

	res, total, err := c.staffService.GetStaff(ctx.Request().Context(), filter)
	if err != nil {
		c.logger.Error("GetStaff: failed to list staff", zap.Error(err))
		return utils.ErrorResponse(ctx, err, c.logger)
	}

	return utils.SuccessResponse(ctx, res, "Staff list loaded successfully", http.StatusOK, total)
}

func (c *StaffController) FindStaff(ctx echo.Context) error {
	id, err := parseIDParam(ctx)
	if err != nil {
		return utils.ErrorResponse(ctx, err, c.logger)
	}

	res, err := c.staffService.FindStaff(ctx.Request().Context(), id)
	if err != nil {
		c.logger.Error("FindStaff: failed to find staff member", zap.Uint64("id", id), zap.Error(err))
		return utils.ErrorResponse(ctx, err, c.logger)
	}

	return utils.SuccessResponse(ctx, res, "Staff member found", http.StatusOK)
}

func (c *StaffController) CreateStaff(ctx echo.Context) error {
	var payload dto.CreateStaffDTO
	if err := ctx.Bind(&payload); err != nil {
		c.logger.Error("CreateStaff: failed to bind request body", zap.Error(err))
		return utils.ErrorResponse(
			ctx,
			apperrors.NewHttpError(http.StatusBadRequest, "Invalid request body", err, nil),
			c.logger,
		)
	}

	if err := ctx.Validate(&payload); err != nil {
		c.logger.Error("CreateStaff: validation failed", zap.Error(err))
		return utils.ErrorResponse(ctx, err, c.logger)
	}

	id, err := c.staffService.CreateStaff(ctx.Request().Context(), payload)
	if err != nil {
		c.logger.Error("CreateStaff: failed to create staff account", zap.String("username", payload.Username), zap.Error(err))
		return utils.ErrorResponse(ctx, err, c.logger)
	}

	return utils.SuccessResponse(ctx, map[string]uint64{"id": id}, "Staff account created successfully", http.StatusCreated)
}

func (c *StaffController) UpdateStaff(ctx echo.Context) error {
	id, err := parseIDParam(ctx)
	if err != nil {
		return utils.ErrorResponse(ctx, err, c.logger)
	}

	var payload dto.UpdateStaffDTO
	if err := ctx.Bind(&payload); err != nil {
		c.logger.Error("UpdateStaff: failed to bind request body", zap.Error(err))
		return utils.ErrorResponse(
			ctx,
			apperrors.NewHttpError(http.StatusBadRequest, "Invalid request body", err, nil),
			c.logger,
		)
	}

	if err := ctx.Validate(&payload); err != nil {
		return utils.ErrorResponse(ctx, err, c.logger)
	}

	if err := c.staffService.UpdateStaff(ctx.Request().Context(), id, payload); err != nil {
		c.logger.Error("UpdateStaff: failed to update staff account", zap.Uint64("id", id), zap.Error(err))
		return utils.ErrorResponse(ctx, err, c.logger)
	}

	return utils.SuccessResponse(ctx, nil, "Staff account updated successfully", http.StatusOK)
}

func (c *StaffController) DeleteStaff(ctx echo.Context) error {
	id, err := parseIDParam(ctx)
	if err != nil {
		return utils.ErrorResponse(ctx, err, c.logger)
	}

	if err := c.staffService.DeleteStaff(ctx.Request().Context(), id); err != nil {
		c.logger.Error("DeleteStaff: failed to delete staff account", zap.Uint64("id", id), zap.Error(err))
		return utils.ErrorResponse(ctx, err, c.logger)
	}

	return utils.SuccessResponse(ctx, nil, "Staff account deleted successfully", http.StatusOK)
}
