package repositories

import (
	"context"
	"errors"
	"fmt"
	"time"

	"reservation-system/internal/dto"
	"reservation-system/internal/entities"
	apperrors "reservation-system/pkg/errors"
	"reservation-system/pkg/types"

	sq "github.com/Masterminds/squirrel"
	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgxpool"
	"go.uber.org/zap"
)

const dateLayout = "2006-01-02"

// CreateReservationParams is everything the insert needs; the picture
// values are the stored file paths.
type CreateReservationParams struct {
	UserID          uint64
	Occasion        string
	Notes           interface{}
	PhoneNumber     string
	FullAddress     string
	ReservationDate time.Time
	TimeSlot        entities.TimeSlot
	IDPicture       string
	SelfiePicture   string
	Items           []dto.ReservationItemRequestDTO
}

type ReservationRepositoryInterface interface {
	CreateReservationInTx(ctx context.Context, tx pgx.Tx, params CreateReservationParams) (uint64, error)
	HasActiveReservationOnDateInTx(ctx context.Context, tx pgx.Tx, userID uint64, date time.Time) (bool, error)
	GetReservations(ctx context.Context, filter types.Filter, onlyUserID *uint64) ([]dto.ReservationDTO, uint64, error)
	FindReservation(ctx context.Context, id uint64, onlyUserID *uint64) (*dto.ReservationDTO, error)
	GetReservationItems(ctx context.Context, reservationID uint64) ([]dto.ReservationItemDTO, error)
	FindReservationForUpdateInTx(ctx context.Context, tx pgx.Tx, id uint64) (*entities.Reservation, error)
	UpdateStatusInTx(ctx context.Context, tx pgx.Tx, id uint64, status string) error
	DeleteReservation(ctx context.Context, id uint64, onlyUserID *uint64) error
	GetStockHoldingByDate(ctx context.Context, date time.Time) ([]entities.Reservation, error)
	ReservedQuantitiesInTx(ctx context.Context, tx pgx.Tx, date time.Time, slots []entities.TimeSlot, excludeReservationID uint64) (map[uint64]int, error)
}

type ReservationRepository struct {
	storage *pgxpool.Pool
	logger  *zap.Logger
}

func NewReservationRepository(storage *pgxpool.Pool, logger *zap.Logger) ReservationRepositoryInterface {
	return &ReservationRepository{storage: storage, logger: logger}
}

// CreateReservationInTx inserts the reservation row and its item rows as
// one unit; the caller owns the transaction so either both land or neither
// does.
func (r *ReservationRepository) CreateReservationInTx(ctx context.Context, tx pgx.Tx, params CreateReservationParams) (uint64, error) {
	var reservationID uint64
	err := tx.QueryRow(ctx, `
		INSERT INTO reservations
			(user_id, occasion, notes, phone_number, full_address, reservation_date, time_slot, id_picture, selfie_picture, status)
		VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9, $10)
		RETURNING id
	`,
		params.UserID,
		params.Occasion,
		params.Notes,
		params.PhoneNumber,
		params.FullAddress,
		params.ReservationDate,
		params.TimeSlot,
		params.IDPicture,
		params.SelfiePicture,
		entities.StatusPending,
	).Scan(&reservationID)
	if err != nil {
		return 0, fmt.Errorf("failed to insert reservation: %w", err)
	}

	for _, item := range params.Items {
		_, err := tx.Exec(ctx, `
			INSERT INTO reservation_items (reservation_id, equipment_id, quantity)
			VALUES ($1, $2, $3)
		`, reservationID, item.ID, item.Quantity)
		if err != nil {
			return 0, fmt.Errorf("failed to insert reservation item: %w", err)
		}
	}

	return reservationID, nil
}

func (r *ReservationRepository) HasActiveReservationOnDateInTx(ctx context.Context, tx pgx.Tx, userID uint64, date time.Time) (bool, error) {
	var exists bool
	err := tx.QueryRow(ctx, `
		SELECT EXISTS (
			SELECT 1 FROM reservations
			WHERE user_id = $1 AND reservation_date = $2 AND status = ANY($3)
		)
	`, userID, date, entities.StockHoldingStatuses).Scan(&exists)
	return exists, err
}

const itemsDisplaySubquery = `(
	SELECT COALESCE(string_agg(e.name || ' (' || ri.quantity || ')', ', '), '')
	FROM reservation_items ri
	JOIN equipment e ON e.id = ri.equipment_id
	WHERE ri.reservation_id = r.id
)`

var reservationSortColumns = map[string]string{
	"reservation_date": "r.reservation_date",
	"status":           "r.status",
	"created_at":       "r.created_at",
}

func (r *ReservationRepository) GetReservations(ctx context.Context, filter types.Filter, onlyUserID *uint64) ([]dto.ReservationDTO, uint64, error) {
	builder := psql.
		Select(
			"r.id", "r.occasion", "r.notes", "r.phone_number", "r.full_address",
			"r.reservation_date", "r.time_slot", "r.status", "r.id_picture", "r.selfie_picture",
			"r.created_at", "r.updated_at",
			"u.id", "u.username", "u.role", "u.email", "u.first_name", "u.last_name",
			itemsDisplaySubquery+" AS items_display",
		).
		From("reservations r").
		Join("users u ON u.id = r.user_id")
	builder = applySort(builder, filter.Sort, reservationSortColumns, "r.reservation_date DESC, r.id DESC")

	countBuilder := psql.Select("COUNT(*)").From("reservations r")

	if onlyUserID != nil {
		builder = builder.Where(sq.Eq{"r.user_id": *onlyUserID})
		countBuilder = countBuilder.Where(sq.Eq{"r.user_id": *onlyUserID})
	}
	if status, ok := filter.Filter["status"]; ok {
		builder = builder.Where(sq.Eq{"r.status": status})
		countBuilder = countBuilder.Where(sq.Eq{"r.status": status})
	}
	if date, ok := filter.Filter["reservation_date"]; ok {
		builder = builder.Where(sq.Eq{"r.reservation_date": date})
		countBuilder = countBuilder.Where(sq.Eq{"r.reservation_date": date})
	}
	if filter.WithPagination {
		builder = builder.Limit(uint64(filter.Limit)).Offset(uint64(filter.Offset))
	}

	query, args, err := builder.ToSql()
	if err != nil {
		return nil, 0, err
	}

	rows, err := r.storage.Query(ctx, query, args...)
	if err != nil {
		return nil, 0, err
	}
	defer rows.Close()

	var list []dto.ReservationDTO
	for rows.Next() {
		res, err := scanReservationRow(rows)
		if err != nil {
			return nil, 0, err
		}
		list = append(list, *res)
	}
	if err := rows.Err(); err != nil {
		return nil, 0, err
	}

	countQuery, countArgs, err := countBuilder.ToSql()
	if err != nil {
		return nil, 0, err
	}
	var total uint64
	if err := r.storage.QueryRow(ctx, countQuery, countArgs...).Scan(&total); err != nil {
		return nil, 0, err
	}

	return list, total, nil
}

func (r *ReservationRepository) FindReservation(ctx context.Context, id uint64, onlyUserID *uint64) (*dto.ReservationDTO, error) {
	builder := psql.
		Select(
			"r.id", "r.occasion", "r.notes", "r.phone_number", "r.full_address",
			"r.reservation_date", "r.time_slot", "r.status", "r.id_picture", "r.selfie_picture",
			"r.created_at", "r.updated_at",
			"u.id", "u.username", "u.role", "u.email", "u.first_name", "u.last_name",
			itemsDisplaySubquery+" AS items_display",
		).
		From("reservations r").
		Join("users u ON u.id = r.user_id").
		Where(sq.Eq{"r.id": id})

	if onlyUserID != nil {
		builder = builder.Where(sq.Eq{"r.user_id": *onlyUserID})
	}

	query, args, err := builder.ToSql()
	if err != nil {
		return nil, err
	}

	res, err := scanReservationRow(r.storage.QueryRow(ctx, query, args...))
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, apperrors.ErrNotFound
		}
		return nil, err
	}

	items, err := r.GetReservationItems(ctx, res.ID)
	if err != nil {
		return nil, err
	}
	res.Items = items
	return res, nil
}

func (r *ReservationRepository) GetReservationItems(ctx context.Context, reservationID uint64) ([]dto.ReservationItemDTO, error) {
	rows, err := r.storage.Query(ctx, `
		SELECT ri.equipment_id, e.name, e.description, ri.quantity
		FROM reservation_items ri
		JOIN equipment e ON e.id = ri.equipment_id
		WHERE ri.reservation_id = $1
		ORDER BY e.name
	`, reservationID)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var items []dto.ReservationItemDTO
	for rows.Next() {
		var item dto.ReservationItemDTO
		if err := rows.Scan(&item.EquipmentID, &item.EquipmentName, &item.Description, &item.Quantity); err != nil {
			return nil, err
		}
		items = append(items, item)
	}
	return items, rows.Err()
}

// FindReservationForUpdateInTx locks the reservation row and loads its
// items for the approval guard.
func (r *ReservationRepository) FindReservationForUpdateInTx(ctx context.Context, tx pgx.Tx, id uint64) (*entities.Reservation, error) {
	var res entities.Reservation
	err := tx.QueryRow(ctx, `
		SELECT id, user_id, occasion, notes, phone_number, full_address,
			reservation_date, time_slot, status, id_picture, selfie_picture,
			created_at, updated_at
		FROM reservations
		WHERE id = $1
		FOR UPDATE
	`, id).Scan(
		&res.ID, &res.UserID, &res.Occasion, &res.Notes, &res.PhoneNumber, &res.FullAddress,
		&res.ReservationDate, &res.TimeSlot, &res.Status, &res.IDPicture, &res.SelfiePicture,
		&res.CreatedAt, &res.UpdatedAt,
	)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, apperrors.ErrNotFound
		}
		return nil, err
	}

	rows, err := tx.Query(ctx, `
		SELECT id, reservation_id, equipment_id, quantity
		FROM reservation_items
		WHERE reservation_id = $1
		ORDER BY equipment_id
	`, id)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	for rows.Next() {
		var item entities.ReservationItem
		if err := rows.Scan(&item.ID, &item.ReservationID, &item.EquipmentID, &item.Quantity); err != nil {
			return nil, err
		}
		res.Items = append(res.Items, item)
	}
	return &res, rows.Err()
}

func (r *ReservationRepository) UpdateStatusInTx(ctx context.Context, tx pgx.Tx, id uint64, status string) error {
	tag, err := tx.Exec(ctx, `
		UPDATE reservations SET status = $1, updated_at = now() WHERE id = $2
	`, status, id)
	if err != nil {
		return err
	}
	if tag.RowsAffected() == 0 {
		return apperrors.ErrNotFound
	}
	return nil
}

func (r *ReservationRepository) DeleteReservation(ctx context.Context, id uint64, onlyUserID *uint64) error {
	builder := psql.Delete("reservations").Where(sq.Eq{"id": id})
	if onlyUserID != nil {
		builder = builder.Where(sq.Eq{"user_id": *onlyUserID})
	}

	query, args, err := builder.ToSql()
	if err != nil {
		return err
	}

	tag, err := r.storage.Exec(ctx, query, args...)
	if err != nil {
		return err
	}
	if tag.RowsAffected() == 0 {
		return apperrors.ErrNotFound
	}
	return nil
}

// GetStockHoldingByDate returns every reservation on the date whose status
// holds stock, items included. This is the snapshot input of the
// availability calculator.
func (r *ReservationRepository) GetStockHoldingByDate(ctx context.Context, date time.Time) ([]entities.Reservation, error) {
	rows, err := r.storage.Query(ctx, `
		SELECT id, user_id, reservation_date, time_slot, status
		FROM reservations
		WHERE reservation_date = $1 AND status = ANY($2)
	`, date, entities.StockHoldingStatuses)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var list []entities.Reservation
	ids := make([]int64, 0)
	index := make(map[uint64]int)
	for rows.Next() {
		var res entities.Reservation
		if err := rows.Scan(&res.ID, &res.UserID, &res.ReservationDate, &res.TimeSlot, &res.Status); err != nil {
			return nil, err
		}
		index[res.ID] = len(list)
		list = append(list, res)
		ids = append(ids, int64(res.ID))
	}
	if err := rows.Err(); err != nil {
		return nil, err
	}
	if len(list) == 0 {
		return list, nil
	}

	itemRows, err := r.storage.Query(ctx, `
		SELECT id, reservation_id, equipment_id, quantity
		FROM reservation_items
		WHERE reservation_id = ANY($1)
	`, ids)
	if err != nil {
		return nil, err
	}
	defer itemRows.Close()

	for itemRows.Next() {
		var item entities.ReservationItem
		if err := itemRows.Scan(&item.ID, &item.ReservationID, &item.EquipmentID, &item.Quantity); err != nil {
			return nil, err
		}
		if i, ok := index[item.ReservationID]; ok {
			list[i].Items = append(list[i].Items, item)
		}
	}
	return list, itemRows.Err()
}

// ReservedQuantitiesInTx sums reserved quantities per equipment among
// stock-holding reservations on the date whose slot is in slots, excluding
// the candidate reservation itself. Run after the equipment rows are
// locked so the answer stays valid until commit.
func (r *ReservationRepository) ReservedQuantitiesInTx(ctx context.Context, tx pgx.Tx, date time.Time, slots []entities.TimeSlot, excludeReservationID uint64) (map[uint64]int, error) {
	slotStrings := make([]string, len(slots))
	for i, s := range slots {
		slotStrings[i] = string(s)
	}

	rows, err := tx.Query(ctx, `
		SELECT ri.equipment_id, COALESCE(SUM(ri.quantity), 0)
		FROM reservation_items ri
		JOIN reservations r ON r.id = ri.reservation_id
		WHERE r.reservation_date = $1
			AND r.time_slot = ANY($2)
			AND r.status = ANY($3)
			AND r.id <> $4
		GROUP BY ri.equipment_id
	`, date, slotStrings, entities.StockHoldingStatuses, excludeReservationID)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	reserved := make(map[uint64]int)
	for rows.Next() {
		var equipmentID uint64
		var quantity int
		if err := rows.Scan(&equipmentID, &quantity); err != nil {
			return nil, err
		}
		reserved[equipmentID] = quantity
	}
	return reserved, rows.Err()
}

type rowScanner interface {
	Scan(dest ...any) error
}

func scanReservationRow(row rowScanner) (*dto.ReservationDTO, error) {
	var res dto.ReservationDTO
	var e entities.Reservation
	err := row.Scan(
		&res.ID, &res.Occasion, &res.Notes, &res.PhoneNumber, &res.FullAddress,
		&e.ReservationDate, &res.TimeSlot, &res.Status, &res.IDPicture, &res.SelfiePicture,
		&e.CreatedAt, &e.UpdatedAt,
		&res.User.ID, &res.User.Username, &res.User.Role, &res.User.Email, &res.User.FirstName, &res.User.LastName,
		&res.ItemsDisplay,
	)
	if err != nil {
		return nil, err
	}

	res.ReservationDate = e.ReservationDate.Format(dateLayout)
	if e.CreatedAt != nil {
		res.CreatedAt = e.CreatedAt.Format(dateTimeLayout)
	}
	if e.UpdatedAt != nil {
		res.UpdatedAt = e.UpdatedAt.Format(dateTimeLayout)
	}
	return &res, nil
}
