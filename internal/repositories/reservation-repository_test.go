package repositories

import (
	"context"
	"log"
	"os"
	"testing"
	"time"

	"reservation-system/internal/dto"
	"reservation-system/internal/entities"
	"reservation-system/pkg/database/postgresql"

	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgxpool"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap"
)

var testPool *pgxpool.Pool

// TestMain connects to the database named by TEST_DATABASE_URL and applies
// the migrations. Without the variable the database-backed tests skip.
func TestMain(m *testing.M) {
	dsn := os.Getenv("TEST_DATABASE_URL")
	if dsn != "" {
		if err := postgresql.Migrate(dsn); err != nil {
			log.Fatalf("failed to migrate test database: %v", err)
		}
		var err error
		testPool, err = pgxpool.New(context.Background(), dsn)
		if err != nil {
			log.Fatalf("failed to connect to test database: %v", err)
		}
		defer testPool.Close()
	}
	os.Exit(m.Run())
}

func requireTestDB(t *testing.T) {
	t.Helper()
	if testPool == nil {
		t.Skip("TEST_DATABASE_URL is not set")
	}
}

func cleanupTables(t *testing.T) {
	t.Helper()
	_, err := testPool.Exec(context.Background(),
		`TRUNCATE TABLE reservation_items, reservations, equipment_stock_audit, equipment, users RESTART IDENTITY CASCADE`)
	require.NoError(t, err)
}

func seedBorrowerAndChairs(t *testing.T) (userID, equipmentID uint64) {
	t.Helper()
	ctx := context.Background()
	err := testPool.QueryRow(ctx, `
		INSERT INTO users (username, password_hash, role, email, first_name, last_name)
		VALUES ('juan.delacruz', 'x', 'borrower', 'juan@example.com', 'Juan', 'Dela Cruz')
		RETURNING id
	`).Scan(&userID)
	require.NoError(t, err)

	err = testPool.QueryRow(ctx, `
		INSERT INTO equipment (name, description, total_quantity)
		VALUES ('Monoblock Chair', 'White plastic chair', 2)
		RETURNING id
	`).Scan(&equipmentID)
	require.NoError(t, err)
	return userID, equipmentID
}

func inTx(t *testing.T, fn func(tx pgx.Tx) error) error {
	t.Helper()
	ctx := context.Background()
	tx, err := testPool.Begin(ctx)
	require.NoError(t, err)
	if err := fn(tx); err != nil {
		_ = tx.Rollback(ctx)
		return err
	}
	return tx.Commit(ctx)
}

func createChairReservation(t *testing.T, repo ReservationRepositoryInterface, userID, equipmentID uint64, date time.Time, slot entities.TimeSlot) uint64 {
	t.Helper()
	var id uint64
	err := inTx(t, func(tx pgx.Tx) error {
		var err error
		id, err = repo.CreateReservationInTx(context.Background(), tx, CreateReservationParams{
			UserID:          userID,
			Occasion:        "Birthday party",
			Notes:           nil,
			PhoneNumber:     "09171234567",
			FullAddress:     "123 Sampaguita St",
			ReservationDate: date,
			TimeSlot:        slot,
			IDPicture:       "/uploads/id.jpg",
			SelfiePicture:   "/uploads/selfie.jpg",
			Items:           []dto.ReservationItemRequestDTO{{ID: equipmentID, Quantity: 2}},
		})
		return err
	})
	require.NoError(t, err)
	return id
}

func TestCreateAndFindReservation(t *testing.T) {
	requireTestDB(t)
	cleanupTables(t)

	repo := NewReservationRepository(testPool, zap.NewNop())
	userID, equipmentID := seedBorrowerAndChairs(t)
	date := time.Date(2026, 9, 15, 0, 0, 0, 0, time.UTC)

	id := createChairReservation(t, repo, userID, equipmentID, date, entities.SlotMorning)

	found, err := repo.FindReservation(context.Background(), id, nil)
	require.NoError(t, err)
	assert.Equal(t, "2026-09-15", found.ReservationDate)
	assert.Equal(t, "morning", found.TimeSlot)
	assert.Equal(t, entities.StatusPending, found.Status)
	require.Len(t, found.Items, 1)
	assert.Equal(t, 2, found.Items[0].Quantity)
	assert.Contains(t, found.ItemsDisplay, "Monoblock Chair (2)")
}

func TestOneActiveReservationPerDayIndex(t *testing.T) {
	requireTestDB(t)
	cleanupTables(t)

	repo := NewReservationRepository(testPool, zap.NewNop())
	userID, equipmentID := seedBorrowerAndChairs(t)
	date := time.Date(2026, 9, 15, 0, 0, 0, 0, time.UTC)

	createChairReservation(t, repo, userID, equipmentID, date, entities.SlotMorning)

	// A second active reservation on the same date must hit the partial
	// unique index even without the service-level pre-check.
	err := inTx(t, func(tx pgx.Tx) error {
		_, err := repo.CreateReservationInTx(context.Background(), tx, CreateReservationParams{
			UserID:          userID,
			Occasion:        "Second event",
			PhoneNumber:     "09171234567",
			FullAddress:     "123 Sampaguita St",
			ReservationDate: date,
			TimeSlot:        entities.SlotAfternoon,
			IDPicture:       "/uploads/id2.jpg",
			SelfiePicture:   "/uploads/selfie2.jpg",
			Items:           []dto.ReservationItemRequestDTO{{ID: equipmentID, Quantity: 1}},
		})
		return err
	})
	assert.Error(t, err)
}

func TestRejectedReservationFreesTheDay(t *testing.T) {
	requireTestDB(t)
	cleanupTables(t)

	repo := NewReservationRepository(testPool, zap.NewNop())
	userID, equipmentID := seedBorrowerAndChairs(t)
	date := time.Date(2026, 9, 15, 0, 0, 0, 0, time.UTC)

	id := createChairReservation(t, repo, userID, equipmentID, date, entities.SlotMorning)

	require.NoError(t, inTx(t, func(tx pgx.Tx) error {
		return repo.UpdateStatusInTx(context.Background(), tx, id, entities.StatusRejected)
	}))

	err := inTx(t, func(tx pgx.Tx) error {
		exists, err := repo.HasActiveReservationOnDateInTx(context.Background(), tx, userID, date)
		require.NoError(t, err)
		assert.False(t, exists)
		return nil
	})
	require.NoError(t, err)

	// And a fresh reservation on the same date is accepted again.
	createChairReservation(t, repo, userID, equipmentID, date, entities.SlotAfternoon)
}

func TestReservedQuantitiesGroupsBySlotConflict(t *testing.T) {
	requireTestDB(t)
	cleanupTables(t)

	repo := NewReservationRepository(testPool, zap.NewNop())
	userID, equipmentID := seedBorrowerAndChairs(t)
	date := time.Date(2026, 9, 15, 0, 0, 0, 0, time.UTC)

	// A second borrower so the one-per-day rule does not interfere.
	var otherUserID uint64
	require.NoError(t, testPool.QueryRow(context.Background(), `
		INSERT INTO users (username, password_hash, role, email, first_name, last_name)
		VALUES ('maria.santos', 'x', 'borrower', 'maria@example.com', 'Maria', 'Santos')
		RETURNING id
	`).Scan(&otherUserID))

	morningID := createChairReservation(t, repo, userID, equipmentID, date, entities.SlotMorning)
	createChairReservation(t, repo, otherUserID, equipmentID, date, entities.SlotAfternoon)

	err := inTx(t, func(tx pgx.Tx) error {
		// Morning view: only the morning reservation counts.
		reserved, err := repo.ReservedQuantitiesInTx(context.Background(), tx, date,
			entities.SlotMorning.ConflictingSlots(), 0)
		require.NoError(t, err)
		assert.Equal(t, 2, reserved[equipmentID])

		// Fullday view sees both halves.
		reserved, err = repo.ReservedQuantitiesInTx(context.Background(), tx, date,
			entities.SlotFullday.ConflictingSlots(), 0)
		require.NoError(t, err)
		assert.Equal(t, 4, reserved[equipmentID])

		// Excluding the candidate removes its own quantities.
		reserved, err = repo.ReservedQuantitiesInTx(context.Background(), tx, date,
			entities.SlotFullday.ConflictingSlots(), morningID)
		require.NoError(t, err)
		assert.Equal(t, 2, reserved[equipmentID])
		return nil
	})
	require.NoError(t, err)
}

func TestGetStockHoldingByDateLoadsItems(t *testing.T) {
	requireTestDB(t)
	cleanupTables(t)

	repo := NewReservationRepository(testPool, zap.NewNop())
	userID, equipmentID := seedBorrowerAndChairs(t)
	date := time.Date(2026, 9, 15, 0, 0, 0, 0, time.UTC)

	id := createChairReservation(t, repo, userID, equipmentID, date, entities.SlotMorning)

	list, err := repo.GetStockHoldingByDate(context.Background(), date)
	require.NoError(t, err)
	require.Len(t, list, 1)
	assert.Equal(t, id, list[0].ID)
	require.Len(t, list[0].Items, 1)
	assert.Equal(t, equipmentID, list[0].Items[0].EquipmentID)

	// Rejected reservations drop out of the snapshot.
	require.NoError(t, inTx(t, func(tx pgx.Tx) error {
		return repo.UpdateStatusInTx(context.Background(), tx, id, entities.StatusRejected)
	}))
	list, err = repo.GetStockHoldingByDate(context.Background(), date)
	require.NoError(t, err)
	assert.Empty(t, list)
}
