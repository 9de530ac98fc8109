package entities

import (
	"time"

	"reservation-system/pkg/types"

	"github.com/aarondl/null/v8"
)

type Equipment struct {
	ID            uint64      `json:"id"`
	Name          string      `json:"name"`
	Description   null.String `json:"description"`
	TotalQuantity int         `json:"total_quantity"`

	types.BaseEntity
}

// StockAudit records a total_quantity change on a piece of equipment.
type StockAudit struct {
	ID          uint64    `json:"id"`
	EquipmentID uint64    `json:"equipment_id"`
	OldQuantity int       `json:"old_quantity"`
	NewQuantity int       `json:"new_quantity"`
	Reason      string    `json:"reason"`
	ActorID     uint64    `json:"actor_id"`
	CreatedAt   time.Time `json:"created_at"`
}
