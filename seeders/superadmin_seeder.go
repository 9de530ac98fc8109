package seeders

import (
	"context"
	"log"

	"reservation-system/internal/entities"
	"reservation-system/pkg/config"

	"github.com/jackc/pgx/v5/pgxpool"
	"golang.org/x/crypto/bcrypt"
)

// SeedSuperAdmin creates the first superadmin account from
// SEED_ADMIN_USERNAME / SEED_ADMIN_PASSWORD. Skipped when either is
// empty, idempotent when the account already exists.
func SeedSuperAdmin(db *pgxpool.Pool, cfg *config.Config) error {
	ctx := context.Background()
	log.Println("  - running superadmin seeder...")

	username := cfg.Seeder.AdminUsername
	password := cfg.Seeder.AdminPassword

	if username == "" || password == "" {
		log.Println("    SEED_ADMIN_USERNAME or SEED_ADMIN_PASSWORD not set, skipping.")
		return nil
	}

	tx, err := db.Begin(ctx)
	if err != nil {
		return err
	}
	defer tx.Rollback(ctx)

	var userID uint64
	if err := tx.QueryRow(ctx, "SELECT id FROM users WHERE username = $1", username).Scan(&userID); err == nil {
		log.Println("    superadmin account already exists, leaving it alone.")
		return tx.Commit(ctx)
	}

	hash, err := bcrypt.GenerateFromPassword([]byte(password), cfg.Auth.BcryptCost)
	if err != nil {
		return err
	}

	err = tx.QueryRow(ctx, `
		INSERT INTO users (username, password_hash, role, email, first_name, last_name)
		VALUES ($1, $2, $3, $4, $5, $6)
		RETURNING id
	`, username, string(hash), entities.RoleSuperadmin,
		cfg.Seeder.AdminEmail, "System", "Administrator").Scan(&userID)
	if err != nil {
		return err
	}

	log.Printf("    superadmin created with id %d", userID)
	return tx.Commit(ctx)
}
