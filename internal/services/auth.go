package services

import (
	"context"
	"errors"
	"fmt"
	"net/http"
	"strconv"

	"reservation-system/internal/dto"
	"reservation-system/internal/entities"
	"reservation-system/internal/repositories"
	"reservation-system/pkg/config"
	apperrors "reservation-system/pkg/errors"
	"reservation-system/pkg/service"

	"go.uber.org/zap"
	"golang.org/x/crypto/bcrypt"
)

type AuthServiceInterface interface {
	Register(ctx context.Context, data dto.RegisterDTO) (*dto.ShortUserDTO, error)
	Login(ctx context.Context, data dto.LoginDTO) (*dto.LoginResponseDTO, error)
	Me(ctx context.Context, userID uint64) (*dto.ShortUserDTO, error)
}

type AuthService struct {
	userRepo   repositories.UserRepositoryInterface
	cacheRepo  repositories.CacheRepositoryInterface
	jwtService service.JWTService
	cfg        *config.Config
	logger     *zap.Logger
}

func NewAuthService(
	userRepo repositories.UserRepositoryInterface,
	cacheRepo repositories.CacheRepositoryInterface,
	jwtService service.JWTService,
	cfg *config.Config,
	logger *zap.Logger,
) AuthServiceInterface {
	return &AuthService{
		userRepo:   userRepo,
		cacheRepo:  cacheRepo,
		jwtService: jwtService,
		cfg:        cfg,
		logger:     logger,
	}
}

func loginAttemptsKey(username string) string {
	return fmt.Sprintf("login_attempts:%s", username)
}

// Register creates a borrower account. Staff and superadmin accounts are
// never self-registered; they come from staff management or the seeder.
func (s *AuthService) Register(ctx context.Context, data dto.RegisterDTO) (*dto.ShortUserDTO, error) {
	if _, err := s.userRepo.FindUserByUsername(ctx, data.Username); err == nil {
		return nil, apperrors.NewHttpError(http.StatusConflict, "Username is already taken.", nil, nil)
	} else if !errors.Is(err, apperrors.ErrNotFound) {
		return nil, err
	}

	hash, err := bcrypt.GenerateFromPassword([]byte(data.Password), s.cfg.Auth.BcryptCost)
	if err != nil {
		return nil, err
	}

	user := entities.User{
		Username:     data.Username,
		PasswordHash: string(hash),
		Role:         entities.RoleBorrower,
		Email:        data.Email,
		FirstName:    data.FirstName,
		LastName:     data.LastName,
	}

	id, err := s.userRepo.CreateUser(ctx, user)
	if err != nil {
		return nil, err
	}

	s.logger.Info("user registered", zap.Uint64("userId", id), zap.String("username", data.Username))

	return &dto.ShortUserDTO{
		ID:        id,
		Username:  user.Username,
		Role:      user.Role,
		Email:     user.Email,
		FirstName: user.FirstName,
		LastName:  user.LastName,
	}, nil
}

func (s *AuthService) Login(ctx context.Context, data dto.LoginDTO) (*dto.LoginResponseDTO, error) {
	if err := s.checkLockout(ctx, data.Username); err != nil {
		return nil, err
	}

	user, err := s.userRepo.FindUserByUsername(ctx, data.Username)
	if err != nil {
		if errors.Is(err, apperrors.ErrNotFound) {
			s.recordFailedAttempt(ctx, data.Username)
			return nil, apperrors.ErrInvalidCredentials
		}
		return nil, err
	}

	if err := bcrypt.CompareHashAndPassword([]byte(user.PasswordHash), []byte(data.Password)); err != nil {
		s.recordFailedAttempt(ctx, data.Username)
		return nil, apperrors.ErrInvalidCredentials
	}

	if err := s.cacheRepo.Del(ctx, loginAttemptsKey(data.Username)); err != nil {
		s.logger.Warn("failed to reset login attempts", zap.Error(err))
	}

	token, err := s.jwtService.GenerateToken(user.ID, user.Username, user.Role)
	if err != nil {
		return nil, err
	}

	s.logger.Info("user logged in", zap.Uint64("userId", user.ID), zap.String("role", user.Role))

	return &dto.LoginResponseDTO{
		Token: token,
		User: dto.ShortUserDTO{
			ID:        user.ID,
			Username:  user.Username,
			Role:      user.Role,
			Email:     user.Email,
			FirstName: user.FirstName,
			LastName:  user.LastName,
		},
	}, nil
}

func (s *AuthService) Me(ctx context.Context, userID uint64) (*dto.ShortUserDTO, error) {
	user, err := s.userRepo.FindUserByID(ctx, userID)
	if err != nil {
		return nil, err
	}
	return &dto.ShortUserDTO{
		ID:        user.ID,
		Username:  user.Username,
		Role:      user.Role,
		Email:     user.Email,
		FirstName: user.FirstName,
		LastName:  user.LastName,
	}, nil
}

// checkLockout rejects logins for usernames that burned through their
// attempt budget. A redis outage fails open: login still works, only the
// throttle is lost.
func (s *AuthService) checkLockout(ctx context.Context, username string) error {
	raw, err := s.cacheRepo.Get(ctx, loginAttemptsKey(username))
	if err != nil {
		return nil
	}
	attempts, err := strconv.Atoi(raw)
	if err != nil {
		return nil
	}
	if attempts >= s.cfg.Auth.MaxLoginAttempts {
		return apperrors.NewHttpError(http.StatusTooManyRequests,
			"Too many failed login attempts. Try again later.", nil, nil)
	}
	return nil
}

func (s *AuthService) recordFailedAttempt(ctx context.Context, username string) {
	key := loginAttemptsKey(username)
	attempts, err := s.cacheRepo.Incr(ctx, key)
	if err != nil {
		s.logger.Warn("failed to record login attempt", zap.Error(err))
		return
	}
	if attempts == 1 {
		if _, err := s.cacheRepo.Expire(ctx, key, s.cfg.Auth.LockoutDuration); err != nil {
			s.logger.Warn("failed to set lockout expiry", zap.Error(err))
		}
	}
}
