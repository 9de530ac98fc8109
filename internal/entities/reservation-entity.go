package entities

import (
	"time"

	"reservation-system/pkg/types"

	"github.com/aarondl/null/v8"
)

// TimeSlot is the reservation window within a day.
type TimeSlot string

const (
	SlotMorning   TimeSlot = "morning"
	SlotAfternoon TimeSlot = "afternoon"
	SlotFullday   TimeSlot = "fullday"
)

// ConflictsWith reports whether two slots overlap. fullday overlaps
// everything; morning and afternoon only overlap themselves and fullday.
func (s TimeSlot) ConflictsWith(other TimeSlot) bool {
	if s == SlotFullday || other == SlotFullday {
		return true
	}
	return s == other
}

// ConflictingSlots lists every slot that overlaps s, including s itself.
func (s TimeSlot) ConflictingSlots() []TimeSlot {
	if s == SlotFullday {
		return []TimeSlot{SlotMorning, SlotAfternoon, SlotFullday}
	}
	return []TimeSlot{s, SlotFullday}
}

func (s TimeSlot) Valid() bool {
	switch s {
	case SlotMorning, SlotAfternoon, SlotFullday:
		return true
	}
	return false
}

// Reservation status values. Case-sensitive string enum shared with the
// frontend.
const (
	StatusPending  = "pending"
	StatusApproved = "approved"
	StatusRejected = "rejected"
	StatusPickedUp = "picked_up"
	StatusReturned = "returned"
)

// StockHoldingStatuses are the statuses that hold equipment stock for
// availability purposes. rejected and returned release it.
var StockHoldingStatuses = []string{StatusPending, StatusApproved, StatusPickedUp}

func IsValidStatus(status string) bool {
	switch status {
	case StatusPending, StatusApproved, StatusRejected, StatusPickedUp, StatusReturned:
		return true
	}
	return false
}

func HoldsStock(status string) bool {
	for _, s := range StockHoldingStatuses {
		if s == status {
			return true
		}
	}
	return false
}

type Reservation struct {
	ID              uint64      `json:"id"`
	UserID          uint64      `json:"user_id"`
	Occasion        string      `json:"occasion"`
	Notes           null.String `json:"notes"`
	PhoneNumber     string      `json:"phone_number"`
	FullAddress     string      `json:"full_address"`
	ReservationDate time.Time   `json:"reservation_date"`
	TimeSlot        TimeSlot    `json:"time_slot"`
	Status          string      `json:"status"`
	IDPicture       string      `json:"id_picture"`
	SelfiePicture   string      `json:"selfie_picture"`

	Items []ReservationItem `json:"items,omitempty"`

	types.BaseEntity
}

type ReservationItem struct {
	ID            uint64 `json:"id"`
	ReservationID uint64 `json:"reservation_id"`
	EquipmentID   uint64 `json:"equipment_id"`
	Quantity      int    `json:"quantity"`
}
