package services

import (
	"time"

	"reservation-system/internal/dto"
	"reservation-system/internal/entities"
)

// sameDay compares calendar dates; time-of-day is irrelevant for
// reservations.
func sameDay(a, b time.Time) bool {
	ay, am, ad := a.Date()
	by, bm, bd := b.Date()
	return ay == by && am == bm && ad == bd
}

// ComputeAvailability answers, for every piece of equipment, how many
// units can still be booked on the given date and slot. Only reservations
// whose status holds stock count; a reservation counts when its slot
// conflicts with the requested one. Fully booked equipment stays in the
// output with available_quantity 0.
func ComputeAvailability(date time.Time, slot entities.TimeSlot, equipment []entities.Equipment, reservations []entities.Reservation) []dto.EquipmentAvailabilityDTO {
	reserved := make(map[uint64]int)
	for _, res := range reservations {
		if !entities.HoldsStock(res.Status) {
			continue
		}
		if !sameDay(res.ReservationDate, date) {
			continue
		}
		if !res.TimeSlot.ConflictsWith(slot) {
			continue
		}
		for _, item := range res.Items {
			reserved[item.EquipmentID] += item.Quantity
		}
	}

	result := make([]dto.EquipmentAvailabilityDTO, 0, len(equipment))
	for _, e := range equipment {
		r := reserved[e.ID]
		available := e.TotalQuantity - r
		if available < 0 {
			available = 0
		}
		result = append(result, dto.EquipmentAvailabilityDTO{
			EquipmentID:       e.ID,
			Name:              e.Name,
			Description:       e.Description,
			TotalQuantity:     e.TotalQuantity,
			ReservedQuantity:  r,
			AvailableQuantity: available,
		})
	}
	return result
}

// ComputeSlotAvailability is the coarse whole-day gate: any stock-holding
// reservation on the date closes its own slot and fullday, and a fullday
// reservation closes everything. It ignores quantities entirely and is
// only a pre-filter; admission decisions use ComputeAvailability and the
// approval guard.
func ComputeSlotAvailability(date time.Time, reservations []entities.Reservation) dto.SlotAvailabilityDTO {
	availability := dto.SlotAvailabilityDTO{Morning: true, Afternoon: true, Fullday: true}

	for _, res := range reservations {
		if !entities.HoldsStock(res.Status) {
			continue
		}
		if !sameDay(res.ReservationDate, date) {
			continue
		}
		switch res.TimeSlot {
		case entities.SlotFullday:
			availability.Morning = false
			availability.Afternoon = false
			availability.Fullday = false
		case entities.SlotMorning:
			availability.Morning = false
			availability.Fullday = false
		case entities.SlotAfternoon:
			availability.Afternoon = false
			availability.Fullday = false
		}
	}

	return availability
}
