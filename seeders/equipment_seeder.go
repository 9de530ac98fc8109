package seeders

import (
	"context"
	"log"

	"github.com/jackc/pgx/v5/pgxpool"
)

type equipmentSeed struct {
	Name        string
	Description string
	Quantity    int
}

// The starting barangay inventory. Quantities are only applied on first
// insert; staff adjust them afterwards through the API.
var defaultEquipment = []equipmentSeed{
	{"Monoblock Chair", "White plastic chair", 200},
	{"Folding Table", "6ft rectangular folding table", 30},
	{"Event Tent", "10x10ft collapsible tent", 10},
	{"Sound System", "Portable speaker set with two microphones", 2},
	{"Projector", "HD projector with tripod screen", 2},
	{"Extension Cord", "25m heavy duty extension reel", 8},
}

func SeedEquipment(db *pgxpool.Pool) error {
	ctx := context.Background()
	log.Println("  - running equipment seeder...")

	for _, e := range defaultEquipment {
		_, err := db.Exec(ctx, `
			INSERT INTO equipment (name, description, total_quantity)
			VALUES ($1, $2, $3)
			ON CONFLICT (name) DO NOTHING
		`, e.Name, e.Description, e.Quantity)
		if err != nil {
			return err
		}
	}

	log.Printf("    %d equipment rows ensured", len(defaultEquipment))
	return nil
}
