package main

import (
	"flag"
	"log"

	"reservation-system/pkg/config"
	"reservation-system/pkg/database/postgresql"
	"reservation-system/seeders"
)

func main() {
	runAdmin := flag.Bool("admin", false, "create the superadmin account from SEED_ADMIN_* env vars")
	runEquipment := flag.Bool("equipment", false, "insert the default equipment inventory")
	runAll := flag.Bool("all", false, "run every seeder")
	flag.Parse()

	if !*runAdmin && !*runEquipment && !*runAll {
		log.Println("no seeder selected")
		flag.PrintDefaults()
		return
	}

	cfg := config.New()

	if err := postgresql.Migrate(cfg.Postgres.DSN); err != nil {
		log.Fatalf("migrations failed: %v", err)
	}

	dbPool := postgresql.ConnectDB(cfg.Postgres.DSN)
	defer dbPool.Close()

	if *runAll || *runAdmin {
		if err := seeders.SeedSuperAdmin(dbPool, cfg); err != nil {
			log.Fatalf("superadmin seeder failed: %v", err)
		}
	}
	if *runAll || *runEquipment {
		if err := seeders.SeedEquipment(dbPool); err != nil {
			log.Fatalf("equipment seeder failed: %v", err)
		}
	}

	log.Println("seeding complete")
}
