package dto

import "github.com/aarondl/null/v8"

// SlotAvailabilityDTO is the coarse whole-day gate served by
// GET /api/availability/slots.
type SlotAvailabilityDTO struct {
	Morning   bool `json:"morning"`
	Afternoon bool `json:"afternoon"`
	Fullday   bool `json:"fullday"`
}

// EquipmentAvailabilityDTO is one row of the item-level availability
// answer. Fully booked equipment is included with available_quantity 0.
type EquipmentAvailabilityDTO struct {
	EquipmentID       uint64      `json:"equipment_id"`
	Name              string      `json:"name"`
	Description       null.String `json:"description"`
	TotalQuantity     int         `json:"total_quantity"`
	ReservedQuantity  int         `json:"reserved_quantity"`
	AvailableQuantity int         `json:"available_quantity"`
}
