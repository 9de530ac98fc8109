package services

import (
	"context"
	"testing"
	"time"

	"reservation-system/internal/entities"
	"reservation-system/internal/repositories"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap"
)

type countingEquipmentRepo struct {
	repositories.EquipmentRepositoryInterface

	equipment []entities.Equipment
	calls     int
}

func (r *countingEquipmentRepo) GetAllEquipment(ctx context.Context) ([]entities.Equipment, error) {
	r.calls++
	return r.equipment, nil
}

type countingReservationRepo struct {
	repositories.ReservationRepositoryInterface

	reservations []entities.Reservation
	calls        int
}

func (r *countingReservationRepo) GetStockHoldingByDate(ctx context.Context, date time.Time) ([]entities.Reservation, error) {
	r.calls++
	return r.reservations, nil
}

func newCachedAvailabilityService(eqRepo *countingEquipmentRepo, resRepo *countingReservationRepo, cache *memoryCache) AvailabilityServiceInterface {
	return NewAvailabilityService(eqRepo, resRepo, cache, zap.NewNop(), time.Second*30)
}

func TestEquipmentAvailabilityIsCached(t *testing.T) {
	eqRepo := &countingEquipmentRepo{equipment: chairInventory(2)}
	resRepo := &countingReservationRepo{}
	svc := newCachedAvailabilityService(eqRepo, resRepo, newMemoryCache())

	first, err := svc.GetEquipmentAvailability(context.Background(), testDate, entities.SlotMorning)
	require.NoError(t, err)
	second, err := svc.GetEquipmentAvailability(context.Background(), testDate, entities.SlotMorning)
	require.NoError(t, err)

	assert.Equal(t, first, second)
	assert.Equal(t, 1, eqRepo.calls, "second read must come from cache")
	assert.Equal(t, 1, resRepo.calls)
}

func TestEquipmentAvailabilityCacheIsPerSlot(t *testing.T) {
	eqRepo := &countingEquipmentRepo{equipment: chairInventory(2)}
	resRepo := &countingReservationRepo{}
	svc := newCachedAvailabilityService(eqRepo, resRepo, newMemoryCache())

	_, err := svc.GetEquipmentAvailability(context.Background(), testDate, entities.SlotMorning)
	require.NoError(t, err)
	_, err = svc.GetEquipmentAvailability(context.Background(), testDate, entities.SlotAfternoon)
	require.NoError(t, err)

	assert.Equal(t, 2, eqRepo.calls)
}

func TestInvalidateDateDropsCachedAnswers(t *testing.T) {
	eqRepo := &countingEquipmentRepo{equipment: chairInventory(2)}
	resRepo := &countingReservationRepo{}
	svc := newCachedAvailabilityService(eqRepo, resRepo, newMemoryCache())

	_, err := svc.GetEquipmentAvailability(context.Background(), testDate, entities.SlotMorning)
	require.NoError(t, err)
	_, err = svc.GetSlotAvailability(context.Background(), testDate)
	require.NoError(t, err)

	svc.InvalidateDate(context.Background(), testDate)

	_, err = svc.GetEquipmentAvailability(context.Background(), testDate, entities.SlotMorning)
	require.NoError(t, err)

	assert.Equal(t, 2, eqRepo.calls, "cache was invalidated, repo hit again")
}

func TestSlotAvailabilityReflectsReservations(t *testing.T) {
	resRepo := &countingReservationRepo{reservations: []entities.Reservation{
		chairReservation(entities.StatusApproved, entities.SlotMorning, 1),
	}}
	svc := newCachedAvailabilityService(&countingEquipmentRepo{}, resRepo, newMemoryCache())

	result, err := svc.GetSlotAvailability(context.Background(), testDate)

	require.NoError(t, err)
	assert.False(t, result.Morning)
	assert.True(t, result.Afternoon)
	assert.False(t, result.Fullday)
}
