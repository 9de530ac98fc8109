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
	"go.uber.org/zap"
)

var psql = sq.StatementBuilder.PlaceholderFormat(sq.Dollar)

type UserRepositoryInterface interface {
	CreateUser(ctx context.Context, user entities.User) (uint64, error)
	FindUserByUsername(ctx context.Context, username string) (*entities.User, error)
	FindUserByID(ctx context.Context, id uint64) (*entities.User, error)
	GetStaff(ctx context.Context, filter types.Filter) ([]dto.ShortUserDTO, uint64, error)
	FindStaff(ctx context.Context, id uint64) (*dto.ShortUserDTO, error)
	UpdateStaff(ctx context.Context, id uint64, data dto.UpdateStaffDTO) error
	DeleteStaff(ctx context.Context, id uint64) error
}

type UserRepository struct {
	storage *pgxpool.Pool
	logger  *zap.Logger
}

func NewUserRepository(storage *pgxpool.Pool, logger *zap.Logger) UserRepositoryInterface {
	return &UserRepository{storage: storage, logger: logger}
}

const userFields = "id, username, password_hash, role, email, first_name, last_name, created_at, updated_at"

func (r *UserRepository) CreateUser(ctx context.Context, user entities.User) (uint64, error) {
	query := `
		INSERT INTO users (username, password_hash, role, email, first_name, last_name)
		VALUES ($1, $2, $3, $4, $5, $6)
		RETURNING id
	`
	var id uint64
	err := r.storage.QueryRow(ctx, query,
		user.Username,
		user.PasswordHash,
		user.Role,
		user.Email,
		user.FirstName,
		user.LastName,
	).Scan(&id)
	if err != nil {
		return 0, fmt.Errorf("failed to insert user: %w", err)
	}
	return id, nil
}

func (r *UserRepository) FindUserByUsername(ctx context.Context, username string) (*entities.User, error) {
	return r.scanUser(r.storage.QueryRow(ctx,
		fmt.Sprintf("SELECT %s FROM users WHERE username = $1", userFields), username))
}

func (r *UserRepository) FindUserByID(ctx context.Context, id uint64) (*entities.User, error) {
	return r.scanUser(r.storage.QueryRow(ctx,
		fmt.Sprintf("SELECT %s FROM users WHERE id = $1", userFields), id))
}

func (r *UserRepository) scanUser(row pgx.Row) (*entities.User, error) {
	var user entities.User
	err := row.Scan(
		&user.ID,
		&user.Username,
		&user.PasswordHash,
		&user.Role,
		&user.Email,
		&user.FirstName,
		&user.LastName,
		&user.CreatedAt,
		&user.UpdatedAt,
	)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, apperrors.ErrNotFound
		}
		return nil, err
	}
	return &user, nil
}

var staffSortColumns = map[string]string{
	"username":   "username",
	"first_name": "first_name",
	"last_name":  "last_name",
}

func (r *UserRepository) GetStaff(ctx context.Context, filter types.Filter) ([]dto.ShortUserDTO, uint64, error) {
	builder := psql.
		Select("id", "username", "role", "email", "first_name", "last_name").
		From("users").
		Where(sq.Eq{"role": entities.RoleStaff})
	builder = applySort(builder, filter.Sort, staffSortColumns, "id")

	if filter.Search != "" {
		pattern := "%" + filter.Search + "%"
		builder = builder.Where(sq.Or{
			sq.Expr("username ILIKE ?", pattern),
			sq.Expr("first_name ILIKE ?", pattern),
			sq.Expr("last_name ILIKE ?", pattern),
		})
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

	var list []dto.ShortUserDTO
	for rows.Next() {
		var u dto.ShortUserDTO
		if err := rows.Scan(&u.ID, &u.Username, &u.Role, &u.Email, &u.FirstName, &u.LastName); err != nil {
			return nil, 0, err
		}
		list = append(list, u)
	}
	if err := rows.Err(); err != nil {
		return nil, 0, err
	}

	var total uint64
	if err := r.storage.QueryRow(ctx, "SELECT COUNT(*) FROM users WHERE role = $1", entities.RoleStaff).Scan(&total); err != nil {
		return nil, 0, err
	}

	return list, total, nil
}

func (r *UserRepository) FindStaff(ctx context.Context, id uint64) (*dto.ShortUserDTO, error) {
	var u dto.ShortUserDTO
	err := r.storage.QueryRow(ctx, `
		SELECT id, username, role, email, first_name, last_name
		FROM users
		WHERE id = $1 AND role = $2
	`, id, entities.RoleStaff).Scan(&u.ID, &u.Username, &u.Role, &u.Email, &u.FirstName, &u.LastName)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, apperrors.ErrNotFound
		}
		return nil, err
	}
	return &u, nil
}

func (r *UserRepository) UpdateStaff(ctx context.Context, id uint64, data dto.UpdateStaffDTO) error {
	builder := psql.Update("users").
		Set("updated_at", sq.Expr("now()")).
		Where(sq.Eq{"id": id, "role": entities.RoleStaff})

	if data.Username != nil {
		builder = builder.Set("username", *data.Username)
	}
	if data.Email != nil {
		builder = builder.Set("email", *data.Email)
	}
	if data.FirstName != nil {
		builder = builder.Set("first_name", *data.FirstName)
	}
	if data.LastName != nil {
		builder = builder.Set("last_name", *data.LastName)
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

func (r *UserRepository) DeleteStaff(ctx context.Context, id uint64) error {
	tag, err := r.storage.Exec(ctx, "DELETE FROM users WHERE id = $1 AND role = $2", id, entities.RoleStaff)
	if err != nil {
		return err
	}
	if tag.RowsAffected() == 0 {
		return apperrors.ErrNotFound
	}
	return nil
}
