package repositories

import (
	"context"
	"errors"
	"fmt"

	"reservation-system/internal/dto"
	"reservation-system/internal/entities"
	apperrors "reservation-system/pkg/errors"
	"reservation-system/pkg/types"

	sq "github.com/Masterminds/squirrel"
	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgxpool"
)

const dateTimeLayout = "2006-01-02, 15:04:05"

type EquipmentRepositoryInterface interface {
	GetEquipments(ctx context.Context, filter types.Filter) ([]dto.EquipmentDTO, uint64, error)
	GetAllEquipment(ctx context.Context) ([]entities.Equipment, error)
	FindEquipment(ctx context.Context, id uint64) (*entities.Equipment, error)
	CreateEquipment(ctx context.Context, data dto.CreateEquipmentDTO) (uint64, error)
	UpdateEquipmentInTx(ctx context.Context, tx pgx.Tx, id uint64, data dto.UpdateEquipmentDTO) error
	FindEquipmentForUpdateInTx(ctx context.Context, tx pgx.Tx, id uint64) (*entities.Equipment, error)
	LockEquipmentInTx(ctx context.Context, tx pgx.Tx, ids []uint64) (map[uint64]entities.Equipment, error)
	DeleteEquipment(ctx context.Context, id uint64) error
	InsertStockAuditInTx(ctx context.Context, tx pgx.Tx, audit entities.StockAudit) error
	GetStockAudit(ctx context.Context, equipmentID uint64) ([]dto.StockAuditDTO, error)
}

type EquipmentRepository struct {
	storage *pgxpool.Pool
}

func NewEquipmentRepository(storage *pgxpool.Pool) EquipmentRepositoryInterface {
	return &EquipmentRepository{storage: storage}
}

var equipmentSortColumns = map[string]string{
	"name":           "name",
	"total_quantity": "total_quantity",
	"created_at":     "created_at",
}

func (r *EquipmentRepository) GetEquipments(ctx context.Context, filter types.Filter) ([]dto.EquipmentDTO, uint64, error) {
	builder := psql.
		Select("id", "name", "description", "total_quantity", "created_at", "updated_at").
		From("equipment")
	builder = applySort(builder, filter.Sort, equipmentSortColumns, "name")

	if filter.Search != "" {
		builder = builder.Where(sq.Expr("name ILIKE ?", "%"+filter.Search+"%"))
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

	var list []dto.EquipmentDTO
	for rows.Next() {
		var e entities.Equipment
		if err := rows.Scan(&e.ID, &e.Name, &e.Description, &e.TotalQuantity, &e.CreatedAt, &e.UpdatedAt); err != nil {
			return nil, 0, err
		}
		list = append(list, equipmentToDTO(e))
	}
	if err := rows.Err(); err != nil {
		return nil, 0, err
	}

	var total uint64
	if err := r.storage.QueryRow(ctx, "SELECT COUNT(*) FROM equipment").Scan(&total); err != nil {
		return nil, 0, err
	}

	return list, total, nil
}

func (r *EquipmentRepository) GetAllEquipment(ctx context.Context) ([]entities.Equipment, error) {
	rows, err := r.storage.Query(ctx, `
		SELECT id, name, description, total_quantity, created_at, updated_at
		FROM equipment
		ORDER BY name
	`)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var list []entities.Equipment
	for rows.Next() {
		var e entities.Equipment
		if err := rows.Scan(&e.ID, &e.Name, &e.Description, &e.TotalQuantity, &e.CreatedAt, &e.UpdatedAt); err != nil {
			return nil, err
		}
		list = append(list, e)
	}
	return list, rows.Err()
}

func (r *EquipmentRepository) FindEquipment(ctx context.Context, id uint64) (*entities.Equipment, error) {
	return scanEquipment(r.storage.QueryRow(ctx, `
		SELECT id, name, description, total_quantity, created_at, updated_at
		FROM equipment
		WHERE id = $1
	`, id))
}

func (r *EquipmentRepository) FindEquipmentForUpdateInTx(ctx context.Context, tx pgx.Tx, id uint64) (*entities.Equipment, error) {
	return scanEquipment(tx.QueryRow(ctx, `
		SELECT id, name, description, total_quantity, created_at, updated_at
		FROM equipment
		WHERE id = $1
		FOR UPDATE
	`, id))
}

// LockEquipmentInTx takes row locks on the given equipment ids and returns
// the locked rows keyed by id. Locking in id order keeps concurrent
// approvals from deadlocking against each other.
func (r *EquipmentRepository) LockEquipmentInTx(ctx context.Context, tx pgx.Tx, ids []uint64) (map[uint64]entities.Equipment, error) {
	int64IDs := make([]int64, len(ids))
	for i, id := range ids {
		int64IDs[i] = int64(id)
	}

	rows, err := tx.Query(ctx, `
		SELECT id, name, description, total_quantity, created_at, updated_at
		FROM equipment
		WHERE id = ANY($1)
		ORDER BY id
		FOR UPDATE
	`, int64IDs)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	result := make(map[uint64]entities.Equipment, len(ids))
	for rows.Next() {
		var e entities.Equipment
		if err := rows.Scan(&e.ID, &e.Name, &e.Description, &e.TotalQuantity, &e.CreatedAt, &e.UpdatedAt); err != nil {
			return nil, err
		}
		result[e.ID] = e
	}
	return result, rows.Err()
}

func (r *EquipmentRepository) CreateEquipment(ctx context.Context, data dto.CreateEquipmentDTO) (uint64, error) {
	var id uint64
	err := r.storage.QueryRow(ctx, `
		INSERT INTO equipment (name, description, total_quantity)
		VALUES ($1, $2, $3)
		RETURNING id
	`, data.Name, data.Description, data.TotalQuantity).Scan(&id)
	if err != nil {
		return 0, fmt.Errorf("failed to insert equipment: %w", err)
	}
	return id, nil
}

func (r *EquipmentRepository) UpdateEquipmentInTx(ctx context.Context, tx pgx.Tx, id uint64, data dto.UpdateEquipmentDTO) error {
	builder := psql.Update("equipment").
		Set("updated_at", sq.Expr("now()")).
		Where(sq.Eq{"id": id})

	if data.Name != nil {
		builder = builder.Set("name", *data.Name)
	}
	if data.Description.Valid {
		builder = builder.Set("description", data.Description)
	}
	if data.TotalQuantity != nil {
		builder = builder.Set("total_quantity", *data.TotalQuantity)
	}

	query, args, err := builder.ToSql()
	if err != nil {
		return err
	}

	tag, err := tx.Exec(ctx, query, args...)
	if err != nil {
		return err
	}
	if tag.RowsAffected() == 0 {
		return apperrors.ErrNotFound
	}
	return nil
}

func (r *EquipmentRepository) DeleteEquipment(ctx context.Context, id uint64) error {
	tag, err := r.storage.Exec(ctx, "DELETE FROM equipment WHERE id = $1", id)
	if err != nil {
		return err
	}
	if tag.RowsAffected() == 0 {
		return apperrors.ErrNotFound
	}
	return nil
}

func (r *EquipmentRepository) InsertStockAuditInTx(ctx context.Context, tx pgx.Tx, audit entities.StockAudit) error {
	_, err := tx.Exec(ctx, `
		INSERT INTO equipment_stock_audit (equipment_id, old_quantity, new_quantity, reason, actor_id)
		VALUES ($1, $2, $3, $4, $5)
	`, audit.EquipmentID, audit.OldQuantity, audit.NewQuantity, audit.Reason, audit.ActorID)
	return err
}

func (r *EquipmentRepository) GetStockAudit(ctx context.Context, equipmentID uint64) ([]dto.StockAuditDTO, error) {
	rows, err := r.storage.Query(ctx, `
		SELECT a.id, a.equipment_id, a.old_quantity, a.new_quantity, a.reason, a.actor_id,
			u.first_name || ' ' || u.last_name, a.created_at
		FROM equipment_stock_audit a
		JOIN users u ON u.id = a.actor_id
		WHERE a.equipment_id = $1
		ORDER BY a.created_at DESC
	`, equipmentID)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var list []dto.StockAuditDTO
	for rows.Next() {
		var a entities.StockAudit
		var actorName string
		if err := rows.Scan(&a.ID, &a.EquipmentID, &a.OldQuantity, &a.NewQuantity, &a.Reason, &a.ActorID, &actorName, &a.CreatedAt); err != nil {
			return nil, err
		}
		list = append(list, dto.StockAuditDTO{
			ID:          a.ID,
			EquipmentID: a.EquipmentID,
			OldQuantity: a.OldQuantity,
			NewQuantity: a.NewQuantity,
			Reason:      a.Reason,
			ActorID:     a.ActorID,
			ActorName:   actorName,
			CreatedAt:   a.CreatedAt.Format(dateTimeLayout),
		})
	}
	return list, rows.Err()
}

func scanEquipment(row pgx.Row) (*entities.Equipment, error) {
	var e entities.Equipment
	err := row.Scan(&e.ID, &e.Name, &e.Description, &e.TotalQuantity, &e.CreatedAt, &e.UpdatedAt)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, apperrors.ErrNotFound
		}
		return nil, err
	}
	return &e, nil
}

func equipmentToDTO(e entities.Equipment) dto.EquipmentDTO {
	d := dto.EquipmentDTO{
		ID:            e.ID,
		Name:          e.Name,
		Description:   e.Description,
		TotalQuantity: e.TotalQuantity,
	}
	if e.CreatedAt != nil {
		d.CreatedAt = e.CreatedAt.Format(dateTimeLayout)
	}
	if e.UpdatedAt != nil {
		d.UpdatedAt = e.UpdatedAt.Format(dateTimeLayout)
	}
	return d
}
