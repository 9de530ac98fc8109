package services

import (
	"context"
	"encoding/json"
	"fmt"
	"time"

	"reservation-system/internal/dto"
	"reservation-system/internal/entities"
	"reservation-system/internal/repositories"

	"go.uber.org/zap"
)

type AvailabilityServiceInterface interface {
	GetSlotAvailability(ctx context.Context, date time.Time) (*dto.SlotAvailabilityDTO, error)
	GetEquipmentAvailability(ctx context.Context, date time.Time, slot entities.TimeSlot) ([]dto.EquipmentAvailabilityDTO, error)
	InvalidateDate(ctx context.Context, date time.Time)
}

type AvailabilityService struct {
	equipmentRepo   repositories.EquipmentRepositoryInterface
	reservationRepo repositories.ReservationRepositoryInterface
	cacheRepo       repositories.CacheRepositoryInterface
	logger          *zap.Logger
	cacheTTL        time.Duration
}

func NewAvailabilityService(
	equipmentRepo repositories.EquipmentRepositoryInterface,
	reservationRepo repositories.ReservationRepositoryInterface,
	cacheRepo repositories.CacheRepositoryInterface,
	logger *zap.Logger,
	cacheTTL time.Duration,
) AvailabilityServiceInterface {
	return &AvailabilityService{
		equipmentRepo:   equipmentRepo,
		reservationRepo: reservationRepo,
		cacheRepo:       cacheRepo,
		logger:          logger,
		cacheTTL:        cacheTTL,
	}
}

func slotCacheKey(date time.Time) string {
	return fmt.Sprintf("availability:slots:%s", date.Format("2006-01-02"))
}

func equipmentCacheKey(date time.Time, slot entities.TimeSlot) string {
	return fmt.Sprintf("availability:equipment:%s:%s", date.Format("2006-01-02"), slot)
}

func (s *AvailabilityService) GetSlotAvailability(ctx context.Context, date time.Time) (*dto.SlotAvailabilityDTO, error) {
	key := slotCacheKey(date)
	if cached, err := s.cacheRepo.Get(ctx, key); err == nil {
		var result dto.SlotAvailabilityDTO
		if err := json.Unmarshal([]byte(cached), &result); err == nil {
			return &result, nil
		}
	}

	reservations, err := s.reservationRepo.GetStockHoldingByDate(ctx, date)
	if err != nil {
		return nil, err
	}

	result := ComputeSlotAvailability(date, reservations)
	s.cache(ctx, key, result)
	return &result, nil
}

func (s *AvailabilityService) GetEquipmentAvailability(ctx context.Context, date time.Time, slot entities.TimeSlot) ([]dto.EquipmentAvailabilityDTO, error) {
	key := equipmentCacheKey(date, slot)
	if cached, err := s.cacheRepo.Get(ctx, key); err == nil {
		var result []dto.EquipmentAvailabilityDTO
		if err := json.Unmarshal([]byte(cached), &result); err == nil {
			return result, nil
		}
	}

	equipment, err := s.equipmentRepo.GetAllEquipment(ctx)
	if err != nil {
		return nil, err
	}
	reservations, err := s.reservationRepo.GetStockHoldingByDate(ctx, date)
	if err != nil {
		return nil, err
	}

	result := ComputeAvailability(date, slot, equipment, reservations)
	s.cache(ctx, key, result)
	return result, nil
}

// InvalidateDate drops the cached answers for a date after any
// reservation write touching it. The cache is only a read shortcut; the
// approval guard never consults it.
func (s *AvailabilityService) InvalidateDate(ctx context.Context, date time.Time) {
	keys := []string{
		slotCacheKey(date),
		equipmentCacheKey(date, entities.SlotMorning),
		equipmentCacheKey(date, entities.SlotAfternoon),
		equipmentCacheKey(date, entities.SlotFullday),
	}
	if err := s.cacheRepo.Del(ctx, keys...); err != nil {
		s.logger.Warn("failed to invalidate availability cache", zap.Error(err))
	}
}

func (s *AvailabilityService) cache(ctx context.Context, key string, value interface{}) {
	payload, err := json.Marshal(value)
	if err != nil {
		return
	}
	if err := s.cacheRepo.Set(ctx, key, string(payload), s.cacheTTL); err != nil {
		s.logger.Warn("failed to cache availability", zap.String("key", key), zap.Error(err))
	}
}
