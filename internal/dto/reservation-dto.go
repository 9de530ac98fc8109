package dto

import "github.com/aarondl/null/v8"

// CreateReservationDTO is bound from the multipart form fields; the two
// picture files are handled separately by the controller.
type CreateReservationDTO struct {
	Occasion        string      `form:"occasion" validate:"required,min=3,max=255"`
	Notes           null.String `form:"notes" validate:"omitempty,max=1000"`
	PhoneNumber     string      `form:"phone_number" validate:"required,e164_PH"`
	FullAddress     string      `form:"full_address" validate:"required,min=5,max=500"`
	ReservationDate string      `form:"reservation_date" validate:"required,date_not_past"`
	TimeSlot        string      `form:"time_slot" validate:"required,time_slot"`
	// Items arrives as a JSON array string in the form; the controller
	// unmarshals it here before validation.
	Items []ReservationItemRequestDTO `form:"-" validate:"required,min=1,dive"`
}

type ReservationItemRequestDTO struct {
	ID       uint64 `json:"id" validate:"required,gt=0"`
	Quantity int    `json:"quantity" validate:"required,gt=0"`
}

type UpdateReservationStatusDTO struct {
	Status string `json:"status" validate:"required,oneof=pending approved rejected picked_up returned"`
}

type CreateReservationResponseDTO struct {
	ReservationID uint64 `json:"reservationId"`
}

type ReservationItemDTO struct {
	EquipmentID   uint64      `json:"equipment_id"`
	EquipmentName string      `json:"equipment_name"`
	Description   null.String `json:"description"`
	Quantity      int         `json:"quantity"`
}

type ReservationDTO struct {
	ID              uint64               `json:"id"`
	User            ShortUserDTO         `json:"user"`
	Occasion        string               `json:"occasion"`
	Notes           null.String          `json:"notes"`
	PhoneNumber     string               `json:"phone_number"`
	FullAddress     string               `json:"full_address"`
	ReservationDate string               `json:"reservation_date"`
	TimeSlot        string               `json:"time_slot"`
	Status          string               `json:"status"`
	IDPicture       string               `json:"id_picture"`
	SelfiePicture   string               `json:"selfie_picture"`
	Items           []ReservationItemDTO `json:"items,omitempty"`
	ItemsDisplay    string               `json:"items_display,omitempty"`
	CreatedAt       string               `json:"created_at"`
	UpdatedAt       string               `json:"updated_at"`
}
