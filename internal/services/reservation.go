package services

import (
	"context"
	"fmt"
	"io"
	"net/http"
	"time"

	"reservation-system/internal/dto"
	"reservation-system/internal/entities"
	"reservation-system/internal/repositories"
	apperrors "reservation-system/pkg/errors"
	"reservation-system/pkg/filestorage"
	"reservation-system/pkg/types"
	"reservation-system/pkg/utils"

	"github.com/jackc/pgx/v5"
	"go.uber.org/zap"
)

// UploadedFile is a verification attachment handed down from the
// controller.
type UploadedFile struct {
	Reader   io.Reader
	Filename string
}

type ReservationServiceInterface interface {
	CreateReservation(ctx context.Context, data dto.CreateReservationDTO, idPicture, selfiePicture UploadedFile) (*dto.CreateReservationResponseDTO, error)
	GetReservations(ctx context.Context, filter types.Filter) ([]dto.ReservationDTO, uint64, error)
	FindReservation(ctx context.Context, id uint64) (*dto.ReservationDTO, error)
	GetReservationItems(ctx context.Context, id uint64) ([]dto.ReservationItemDTO, error)
	UpdateReservationStatus(ctx context.Context, id uint64, status string) error
	DeleteReservation(ctx context.Context, id uint64) error
}

type ReservationService struct {
	txManager       repositories.TxManagerInterface
	reservationRepo repositories.ReservationRepositoryInterface
	equipmentRepo   repositories.EquipmentRepositoryInterface
	availability    AvailabilityServiceInterface
	fileStorage     filestorage.FileStorageInterface
	logger          *zap.Logger
}

func NewReservationService(
	txManager repositories.TxManagerInterface,
	reservationRepo repositories.ReservationRepositoryInterface,
	equipmentRepo repositories.EquipmentRepositoryInterface,
	availability AvailabilityServiceInterface,
	fileStorage filestorage.FileStorageInterface,
	logger *zap.Logger,
) ReservationServiceInterface {
	return &ReservationService{
		txManager:       txManager,
		reservationRepo: reservationRepo,
		equipmentRepo:   equipmentRepo,
		availability:    availability,
		fileStorage:     fileStorage,
		logger:          logger,
	}
}

// CreateReservation persists the reservation and its items as one
// transaction. The duplicate-day rule is checked inside the same
// transaction and additionally enforced by a partial unique index, so two
// racing creates cannot both land.
func (s *ReservationService) CreateReservation(ctx context.Context, data dto.CreateReservationDTO, idPicture, selfiePicture UploadedFile) (*dto.CreateReservationResponseDTO, error) {
	userID, err := utils.UserIDFromContext(ctx)
	if err != nil {
		return nil, err
	}

	reservationDate, err := time.Parse("2006-01-02", data.ReservationDate)
	if err != nil {
		return nil, apperrors.NewInvalidInputError("reservation_date must be YYYY-MM-DD")
	}

	slot := entities.TimeSlot(data.TimeSlot)
	if !slot.Valid() {
		return nil, apperrors.NewInvalidInputError("invalid time slot %q", data.TimeSlot)
	}

	// Make sure every requested item exists before touching storage.
	for _, item := range data.Items {
		if _, err := s.equipmentRepo.FindEquipment(ctx, item.ID); err != nil {
			return nil, apperrors.NewHttpError(http.StatusBadRequest,
				fmt.Sprintf("unknown equipment id %d", item.ID), err, nil)
		}
	}

	idPicturePath, err := s.fileStorage.Save(idPicture.Reader, idPicture.Filename, "reservations")
	if err != nil {
		s.logger.Error("failed to store id picture", zap.Error(err))
		return nil, err
	}
	selfiePicturePath, err := s.fileStorage.Save(selfiePicture.Reader, selfiePicture.Filename, "reservations")
	if err != nil {
		s.logger.Error("failed to store selfie picture", zap.Error(err))
		_ = s.fileStorage.Delete(idPicturePath)
		return nil, err
	}

	var reservationID uint64
	err = s.txManager.RunInTransaction(ctx, func(tx pgx.Tx) error {
		exists, err := s.reservationRepo.HasActiveReservationOnDateInTx(ctx, tx, userID, reservationDate)
		if err != nil {
			return err
		}
		if exists {
			return apperrors.NewHttpError(http.StatusConflict,
				"You already have a reservation for this date.", nil, nil)
		}

		reservationID, err = s.reservationRepo.CreateReservationInTx(ctx, tx, repositories.CreateReservationParams{
			UserID:          userID,
			Occasion:        data.Occasion,
			Notes:           data.Notes,
			PhoneNumber:     data.PhoneNumber,
			FullAddress:     data.FullAddress,
			ReservationDate: reservationDate,
			TimeSlot:        slot,
			IDPicture:       idPicturePath,
			SelfiePicture:   selfiePicturePath,
			Items:           data.Items,
		})
		return err
	})
	if err != nil {
		// The transaction rolled back; the stored files must not outlive it.
		_ = s.fileStorage.Delete(idPicturePath)
		_ = s.fileStorage.Delete(selfiePicturePath)
		return nil, err
	}

	s.availability.InvalidateDate(ctx, reservationDate)
	s.logger.Info("reservation created",
		zap.Uint64("reservationId", reservationID),
		zap.Uint64("userId", userID),
		zap.String("date", data.ReservationDate),
		zap.String("slot", data.TimeSlot),
	)

	return &dto.CreateReservationResponseDTO{ReservationID: reservationID}, nil
}

func (s *ReservationService) GetReservations(ctx context.Context, filter types.Filter) ([]dto.ReservationDTO, uint64, error) {
	onlyUserID, err := s.scopeToBorrower(ctx)
	if err != nil {
		return nil, 0, err
	}
	return s.reservationRepo.GetReservations(ctx, filter, onlyUserID)
}

func (s *ReservationService) FindReservation(ctx context.Context, id uint64) (*dto.ReservationDTO, error) {
	onlyUserID, err := s.scopeToBorrower(ctx)
	if err != nil {
		return nil, err
	}
	return s.reservationRepo.FindReservation(ctx, id, onlyUserID)
}

func (s *ReservationService) GetReservationItems(ctx context.Context, id uint64) ([]dto.ReservationItemDTO, error) {
	// Borrowers can only reach their own reservations.
	if _, err := s.FindReservation(ctx, id); err != nil {
		return nil, err
	}
	return s.reservationRepo.GetReservationItems(ctx, id)
}

// UpdateReservationStatus flips the reservation status. Approval runs the
// conflict guard inside one transaction: the candidate's equipment rows
// are locked first, then reserved quantities among other stock-holding
// reservations are recomputed, so two concurrent approvals of the same
// equipment/date serialize instead of both passing the check.
func (s *ReservationService) UpdateReservationStatus(ctx context.Context, id uint64, status string) error {
	if !entities.IsValidStatus(status) {
		return apperrors.NewInvalidInputError(
			"invalid status %q: must be one of pending, approved, rejected, picked_up, returned", status)
	}

	role, err := utils.RoleFromContext(ctx)
	if err != nil {
		return err
	}
	userID, err := utils.UserIDFromContext(ctx)
	if err != nil {
		return err
	}

	var reservationDate time.Time
	err = s.txManager.RunInTransaction(ctx, func(tx pgx.Tx) error {
		candidate, err := s.reservationRepo.FindReservationForUpdateInTx(ctx, tx, id)
		if err != nil {
			return err
		}
		reservationDate = candidate.ReservationDate

		if role == entities.RoleBorrower && candidate.UserID != userID {
			// Same shape as a missing row so borrowers cannot probe ids.
			return apperrors.ErrNotFound
		}

		if status == entities.StatusApproved && candidate.Status != entities.StatusApproved {
			if err := s.guardApproval(ctx, tx, candidate); err != nil {
				return err
			}
		}

		return s.reservationRepo.UpdateStatusInTx(ctx, tx, id, status)
	})
	if err != nil {
		return err
	}

	s.availability.InvalidateDate(ctx, reservationDate)
	s.logger.Info("reservation status updated",
		zap.Uint64("reservationId", id),
		zap.String("status", status),
	)
	return nil
}

// guardApproval re-validates that approving the candidate cannot push any
// of its items past total stock, counting every other stock-holding
// reservation on the same date with a conflicting slot.
func (s *ReservationService) guardApproval(ctx context.Context, tx pgx.Tx, candidate *entities.Reservation) error {
	if len(candidate.Items) == 0 {
		return nil
	}

	equipmentIDs := make([]uint64, 0, len(candidate.Items))
	for _, item := range candidate.Items {
		equipmentIDs = append(equipmentIDs, item.EquipmentID)
	}

	locked, err := s.equipmentRepo.LockEquipmentInTx(ctx, tx, equipmentIDs)
	if err != nil {
		return err
	}

	reserved, err := s.reservationRepo.ReservedQuantitiesInTx(
		ctx, tx,
		candidate.ReservationDate,
		candidate.TimeSlot.ConflictingSlots(),
		candidate.ID,
	)
	if err != nil {
		return err
	}

	for _, item := range candidate.Items {
		equipment, ok := locked[item.EquipmentID]
		if !ok {
			return apperrors.NewHttpError(http.StatusConflict,
				fmt.Sprintf("equipment %d no longer exists", item.EquipmentID), nil, nil)
		}
		available := equipment.TotalQuantity - reserved[item.EquipmentID]
		if available < 0 {
			available = 0
		}
		if item.Quantity > available {
			return apperrors.NewHttpError(http.StatusConflict,
				fmt.Sprintf("Cannot approve: only %d of %q available for this date and slot.", available, equipment.Name),
				nil,
				map[string]interface{}{
					"equipment_id": item.EquipmentID,
					"available":    available,
				},
			)
		}
	}

	return nil
}

func (s *ReservationService) DeleteReservation(ctx context.Context, id uint64) error {
	onlyUserID, err := s.scopeToBorrower(ctx)
	if err != nil {
		return err
	}

	// The date is needed for cache invalidation before the row disappears.
	existing, err := s.reservationRepo.FindReservation(ctx, id, onlyUserID)
	if err != nil {
		return err
	}
	date, parseErr := time.Parse("2006-01-02", existing.ReservationDate)

	if err := s.reservationRepo.DeleteReservation(ctx, id, onlyUserID); err != nil {
		return err
	}

	if parseErr == nil {
		s.availability.InvalidateDate(ctx, date)
	}
	return nil
}

// scopeToBorrower returns the caller's user id when the caller is a
// borrower, restricting queries to their own rows; staff and superadmin
// see everything.
func (s *ReservationService) scopeToBorrower(ctx context.Context) (*uint64, error) {
	role, err := utils.RoleFromContext(ctx)
	if err != nil {
		return nil, err
	}
	if role != entities.RoleBorrower {
		return nil, nil
	}
	userID, err := utils.UserIDFromContext(ctx)
	if err != nil {
		return nil, err
	}
	return &userID, nil
}
