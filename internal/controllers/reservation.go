package controllers

import (
	"encoding/json"
	"mime/multipart"
	"net/http"

	"reservation-system/internal/dto"
	"reservation-system/internal/services"
	apperrors "reservation-system/pkg/errors"
	"reservation-system/pkg/utils"

	"github.com/labstack/echo/v4"
	"go.uber.org/zap"
)

type ReservationController struct {
	reservationService services.ReservationServiceInterface
	maxFileSize        int64
	logger             *zap.Logger
}

func NewReservationController(
	service services.ReservationServiceInterface,
	maxFileSize int64,
	logger *zap.Logger,
) *ReservationController {
	return &ReservationController{
		reservationService: service,
		maxFileSize:        maxFileSize,
		logger:             logger,
	}
}

// CreateReservation accepts a multipart form: the text fields, an "items"
// field holding a JSON array of {id, quantity}, and two image attachments
// named id_picture and selfie_picture.
func (c *ReservationController) CreateReservation(ctx echo.Context) error {
	var payload dto.CreateReservationDTO
	if err := ctx.Bind(&payload); err != nil {
		c.logger.Error("CreateReservation: failed to bind form fields", zap.Error(err))
		return utils.ErrorResponse(
			ctx,
			apperrors.NewHttpError(http.StatusBadRequest, "Invalid form data", err, nil),
			c.logger,
		)
	}

	itemsRaw := ctx.FormValue("items")
	if itemsRaw == "" {
		return utils.ErrorResponse(ctx,
			apperrors.NewInvalidInputError("items field is required"), c.logger)
	}
	if err := json.Unmarshal([]byte(itemsRaw), &payload.Items); err != nil {
		c.logger.Error("CreateReservation: failed to parse items", zap.Error(err))
		return utils.ErrorResponse(ctx,
			apperrors.NewInvalidInputError("items must be a JSON array of {id, quantity}"), c.logger)
	}

	if err := ctx.Validate(&payload); err != nil {
		c.logger.Error("CreateReservation: validation failed", zap.Error(err))
		return utils.ErrorResponse(ctx, err, c.logger)
	}

	idPicture, err := c.formFile(ctx, "id_picture")
	if err != nil {
		return utils.ErrorResponse(ctx, err, c.logger)
	}
	selfiePicture, err := c.formFile(ctx, "selfie_picture")
	if err != nil {
		return utils.ErrorResponse(ctx, err, c.logger)
	}

	idSrc, err := idPicture.Open()
	if err != nil {
		return utils.ErrorResponse(ctx, err, c.logger)
	}
	defer idSrc.Close()

	selfieSrc, err := selfiePicture.Open()
	if err != nil {
		return utils.ErrorResponse(ctx, err, c.logger)
	}
	defer selfieSrc.Close()

	res, err := c.reservationService.CreateReservation(
		ctx.Request().Context(),
		payload,
		services.UploadedFile{Reader: idSrc, Filename: idPicture.Filename},
		services.UploadedFile{Reader: selfieSrc, Filename: selfiePicture.Filename},
	)
	if err != nil {
		c.logger.Error("CreateReservation: failed to create reservation", zap.Error(err))
		return utils.ErrorResponse(ctx, err, c.logger)
	}

	return utils.SuccessResponse(ctx, res, "Reservation submitted successfully", http.StatusCreated)
}

func (c *ReservationController) GetReservations(ctx echo.Context) error {
	filter := utils.ParseFilterFromQuery(ctx.Request().URL.Query())

	res, total, err := c.reservationService.GetReservations(ctx.Request().Context(), filter)
	if err != nil {
		c.logger.Error("GetReservations: failed to list reservations", zap.Error(err))
		return utils.ErrorResponse(ctx, err, c.logger)
	}

	return utils.SuccessResponse(ctx, res, "Reservations loaded successfully", http.StatusOK, total)
}

func (c *ReservationController) FindReservation(ctx echo.Context) error {
	id, err := parseIDParam(ctx)
	if err != nil {
		return utils.ErrorResponse(ctx, err, c.logger)
	}

	res, err := c.reservationService.FindReservation(ctx.Request().Context(), id)
	if err != nil {
		c.logger.Error("FindReservation: failed to find reservation", zap.Uint64("id", id), zap.Error(err))
		return utils.ErrorResponse(ctx, err, c.logger)
	}

	return utils.SuccessResponse(ctx, res, "Reservation found", http.StatusOK)
}

func (c *ReservationController) GetReservationItems(ctx echo.Context) error {
	id, err := parseIDParam(ctx)
	if err != nil {
		return utils.ErrorResponse(ctx, err, c.logger)
	}

	res, err := c.reservationService.GetReservationItems(ctx.Request().Context(), id)
	if err != nil {
		c.logger.Error("GetReservationItems: failed to load items", zap.Uint64("id", id), zap.Error(err))
		return utils.ErrorResponse(ctx, err, c.logger)
	}

	return utils.SuccessResponse(ctx, res, "Reservation items loaded successfully", http.StatusOK)
}

func (c *ReservationController) UpdateReservationStatus(ctx echo.Context) error {
	id, err := parseIDParam(ctx)
	if err != nil {
		return utils.ErrorResponse(ctx, err, c.logger)
	}

	var payload dto.UpdateReservationStatusDTO
	if err := ctx.Bind(&payload); err != nil {
		c.logger.Error("UpdateReservationStatus: failed to bind request body", zap.Error(err))
		return utils.ErrorResponse(
			ctx,
			apperrors.NewHttpError(http.StatusBadRequest, "Invalid request body", err, nil),
			c.logger,
		)
	}

	if err := ctx.Validate(&payload); err != nil {
		return utils.ErrorResponse(ctx, err, c.logger)
	}

	if err := c.reservationService.UpdateReservationStatus(ctx.Request().Context(), id, payload.Status); err != nil {
		c.logger.Error("UpdateReservationStatus: failed to update status",
			zap.Uint64("id", id), zap.String("status", payload.Status), zap.Error(err))
		return utils.ErrorResponse(ctx, err, c.logger)
	}

	return utils.SuccessResponse(ctx, nil, "Reservation status updated successfully", http.StatusOK)
}

func (c *ReservationController) DeleteReservation(ctx echo.Context) error {
	id, err := parseIDParam(ctx)
	if err != nil {
		return utils.ErrorResponse(ctx, err, c.logger)
	}

	if err := c.reservationService.DeleteReservation(ctx.Request().Context(), id); err != nil {
		c.logger.Error("DeleteReservation: failed to delete reservation", zap.Uint64("id", id), zap.Error(err))
		return utils.ErrorResponse(ctx, err, c.logger)
	}

	return utils.SuccessResponse(ctx, nil, "Reservation deleted successfully", http.StatusOK)
}

func (c *ReservationController) formFile(ctx echo.Context, field string) (*multipart.FileHeader, error) {
	file, err := ctx.FormFile(field)
	if err != nil {
		return nil, apperrors.NewInvalidInputError("%s file is required", field)
	}
	if file.Size > c.maxFileSize {
		return nil, apperrors.NewHttpError(
			http.StatusRequestEntityTooLarge,
			"Uploaded file is too large",
			nil,
			map[string]interface{}{"field": field, "max_bytes": c.maxFileSize},
		)
	}
	return file, nil
}
