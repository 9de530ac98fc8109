package dto

import "github.com/aarondl/null/v8"

type CreateEquipmentDTO struct {
	Name          string      `json:"name" validate:"required,min=2,max=255"`
	Description   null.String `json:"description" validate:"omitempty,max=1000"`
	TotalQuantity int         `json:"total_quantity" validate:"gte=0"`
}

type UpdateEquipmentDTO struct {
	Name          *string     `json:"name,omitempty" validate:"omitempty,min=2,max=255"`
	Description   null.String `json:"description" validate:"omitempty,max=1000"`
	TotalQuantity *int        `json:"total_quantity,omitempty" validate:"omitempty,gte=0"`
	// Reason is recorded in the stock audit log when TotalQuantity changes.
	Reason *string `json:"reason,omitempty" validate:"omitempty,max=255"`
}

type EquipmentDTO struct {
	ID            uint64      `json:"id"`
	Name          string      `json:"name"`
	Description   null.String `json:"description"`
	TotalQuantity int         `json:"total_quantity"`
	CreatedAt     string      `json:"created_at"`
	UpdatedAt     string      `json:"updated_at"`
}

type StockAuditDTO struct {
	ID          uint64 `json:"id"`
	EquipmentID uint64 `json:"equipment_id"`
	OldQuantity int    `json:"old_quantity"`
	NewQuantity int    `json:"new_quantity"`
	Reason      string `json:"reason"`
	ActorID     uint64 `json:"actor_id"`
	ActorName   string `json:"actor_name"`
	CreatedAt   string `json:"created_at"`
}
