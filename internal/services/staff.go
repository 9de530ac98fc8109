package services

import (
	"context"
	"errors"
	"net/http"

	"reservation-system/internal/dto"
	"reservation-system/internal/entities"
	"reservation-system/internal/repositories"
	"reservation-system/pkg/config"
	apperrors "reservation-system/pkg/errors"
	"reservation-system/pkg/types"

	"go.uber.org/zap"
	"golang.org/x/crypto/bcrypt"
)

type StaffServiceInterface interface {
	GetStaff(ctx context.Context, filter types.Filter) ([]dto.ShortUserDTO, uint64, error)
	FindStaff(ctx context.Context, id uint64) (*dto.ShortUserDTO, error)
	CreateStaff(ctx context.Context, data dto.CreateStaffDTO) (uint64, error)
	UpdateStaff(ctx context.Context, id uint64, data dto.UpdateStaffDTO) error
	DeleteStaff(ctx context.Context, id uint64) error
}

type StaffService struct {
	userRepo repositories.UserRepositoryInterface
	cfg      *config.Config
	logger   *zap.Logger
}

func NewStaffService(userRepo repositories.UserRepositoryInterface, cfg *config.Config, logger *zap.Logger) StaffServiceInterface {
	return &StaffService{userRepo: userRepo, cfg: cfg, logger: logger}
}

func (s *StaffService) GetStaff(ctx context.Context, filter types.Filter) ([]dto.ShortUserDTO, uint64, error) {
	return s.userRepo.GetStaff(ctx, filter)
}

func (s *StaffService) FindStaff(ctx context.Context, id uint64) (*dto.ShortUserDTO, error) {
	return s.userRepo.FindStaff(ctx, id)
}

func (s *StaffService) CreateStaff(ctx context.Context, data dto.CreateStaffDTO) (uint64, error) {
	if _, err := s.userRepo.FindUserByUsername(ctx, data.Username); err == nil {
		return 0, apperrors.NewHttpError(http.StatusConflict, "Username is already taken.", nil, nil)
	} else if !errors.Is(err, apperrors.ErrNotFound) {
		return 0, err
	}

	hash, err := bcrypt.GenerateFromPassword([]byte(data.Password), s.cfg.Auth.BcryptCost)
	if err != nil {
		return 0, err
	}

	id, err := s.userRepo.CreateUser(ctx, entities.User{
		Username:     data.Username,
		PasswordHash: string(hash),
		Role:         entities.RoleStaff,
		Email:        data.Email,
		FirstName:    data.FirstName,
		LastName:     data.LastName,
	})
	if err != nil {
		return 0, err
	}

	s.logger.Info("staff account created", zap.Uint64("userId", id), zap.String("username", data.Username))
	return id, nil
}

func (s *StaffService) UpdateStaff(ctx context.Context, id uint64, data dto.UpdateStaffDTO) error {
	if data.Username != nil {
		existing, err := s.userRepo.FindUserByUsername(ctx, *data.Username)
		if err == nil && existing.ID != id {
			return apperrors.NewHttpError(http.StatusConflict, "Username is already taken.", nil, nil)
		}
		if err != nil && !errors.Is(err, apperrors.ErrNotFound) {
			return err
		}
	}
	return s.userRepo.UpdateStaff(ctx, id, data)
}

func (s *StaffService) DeleteStaff(ctx context.Context, id uint64) error {
	if err := s.userRepo.DeleteStaff(ctx, id); err != nil {
		return err
	}
	s.logger.Info("staff account deleted", zap.Uint64("userId", id))
	return nil
}
